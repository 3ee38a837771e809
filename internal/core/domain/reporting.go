package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// StatementName identifies a financial statement.
type StatementName string

const (
	StatementProfitAndLoss  StatementName = "profit-loss"
	StatementCashFlow       StatementName = "cash-flow"
	StatementEquity         StatementName = "equity"
	StatementROI            StatementName = "roi"
	StatementKPIs           StatementName = "kpis"
	StatementIncomeSummary  StatementName = "income-summary"
	StatementExpenseSummary StatementName = "expense-summary"
	StatementMonthlyTrend   StatementName = "monthly-trend"
)

// StatementResult is implemented by every statement variant.
type StatementResult interface {
	Statement() StatementName
}

// ProfitAndLoss excludes build-phase spend and every loan/debt movement.
type ProfitAndLoss struct {
	Period            DateRange       `json:"period"`
	TotalIncome       decimal.Decimal `json:"totalIncome"`
	DirectCosts       decimal.Decimal `json:"directCosts"`
	GrossProfit       decimal.Decimal `json:"grossProfit"`
	GrossMarginPct    decimal.Decimal `json:"grossMarginPct"`
	OperatingExpenses decimal.Decimal `json:"operatingExpenses"`
	NetProfit         decimal.Decimal `json:"netProfit"`
	NetMarginPct      decimal.Decimal `json:"netMarginPct"`
	BuildingExpenses  decimal.Decimal `json:"buildingExpenses"` // informational, never subtracted
}

func (ProfitAndLoss) Statement() StatementName { return StatementProfitAndLoss }

// CashFlow includes loans, loan payments and every expense phase.
type CashFlow struct {
	Period        DateRange       `json:"period"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	LoansReceived decimal.Decimal `json:"loansReceived"`
	CashIn        decimal.Decimal `json:"cashIn"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	LoanPayments  decimal.Decimal `json:"loanPayments"`
	CashOut       decimal.Decimal `json:"cashOut"`
	NetCashFlow   decimal.Decimal `json:"netCashFlow"`
}

func (CashFlow) Statement() StatementName { return StatementCashFlow }

// Equity mixes point-in-time balances with all-time sums.
type Equity struct {
	OwnerCapital     decimal.Decimal `json:"ownerCapital"`
	RetainedEarnings decimal.Decimal `json:"retainedEarnings"`
	LoanLiabilities  decimal.Decimal `json:"loanLiabilities"`
	DebtLiabilities  decimal.Decimal `json:"debtLiabilities"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	NetProjectValue  decimal.Decimal `json:"netProjectValue"`
	TotalBalance     decimal.Decimal `json:"totalBalance"`
	Receivables      decimal.Decimal `json:"receivables"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
}

func (Equity) Statement() StatementName { return StatementEquity }

// ROI relates all-time operating profit to capital invested.
type ROI struct {
	OwnerCapital     decimal.Decimal `json:"ownerCapital"`
	BuildingExpenses decimal.Decimal `json:"buildingExpenses"`
	TotalInvestment  decimal.Decimal `json:"totalInvestment"`
	NetProfit        decimal.Decimal `json:"netProfit"`
	ROIPct           decimal.Decimal `json:"roiPct"`
}

func (ROI) Statement() StatementName { return StatementROI }

// Runway is the number of months of cash left at the current burn rate.
// Infinite is set when nothing is being burned.
type Runway struct {
	Months   decimal.Decimal
	Infinite bool
}

// InfiniteRunway is the runway when the burn rate is zero.
var InfiniteRunway = Runway{Infinite: true}

// MarshalJSON renders an infinite runway as the string "infinite".
func (r Runway) MarshalJSON() ([]byte, error) {
	if r.Infinite {
		return json.Marshal("infinite")
	}
	return json.Marshal(r.Months)
}

// UnmarshalJSON accepts either "infinite" or a decimal.
func (r *Runway) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil && s == "infinite" {
		*r = InfiniteRunway
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*r = Runway{Months: d}
	return nil
}

// String renders the runway for logs.
func (r Runway) String() string {
	if r.Infinite {
		return "infinite"
	}
	return r.Months.StringFixed(MoneyScale)
}

// KPIs are all-time indicators plus a trailing burn rate.
type KPIs struct {
	BurnRate       decimal.Decimal `json:"burnRate"`
	BurnWindow     DateRange       `json:"burnWindow"`
	ActiveMonths   int             `json:"activeMonths"`
	TotalCash      decimal.Decimal `json:"totalCash"`
	RunwayMonths   Runway          `json:"runwayMonths"`
	GrossMarginPct decimal.Decimal `json:"grossMarginPct"`
	NetMarginPct   decimal.Decimal `json:"netMarginPct"`
	ROIPct         decimal.Decimal `json:"roiPct"`
}

func (KPIs) Statement() StatementName { return StatementKPIs }

// CategorySummary lists totals per category for one side of the ledger.
type CategorySummary struct {
	Name       StatementName    `json:"name"`
	Period     DateRange        `json:"period"`
	Categories []CategoryAmount `json:"categories"`
	Total      decimal.Decimal  `json:"total"`
}

func (s CategorySummary) Statement() StatementName { return s.Name }

// MonthlyTrend lists income and expense totals per month.
type MonthlyTrend struct {
	Period   DateRange     `json:"period"`
	Income   []MonthAmount `json:"income"`
	Expenses []MonthAmount `json:"expenses"`
}

func (MonthlyTrend) Statement() StatementName { return StatementMonthlyTrend }

// Dashboard is the landing view of a project for a period.
type Dashboard struct {
	Period        DateRange       `json:"period"`
	TotalBalance  decimal.Decimal `json:"totalBalance"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	ProfitLoss    decimal.Decimal `json:"profitLoss"`
	UpcomingDebts []Debt          `json:"upcomingDebts"`
}
