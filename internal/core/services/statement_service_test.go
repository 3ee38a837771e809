package services_test

import (
	"time"

	"github.com/SscSPs/project_books/internal/apperrors"
	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/SscSPs/project_books/internal/dto"
)

var thisMonth = dto.PeriodQuery{Period: "month"}

func (suite *LedgerSuite) TestProfitAndLoss_ExcludesBuildingPhase() {
	suite.income(suite.cash.AccountID, "200", day(time.March, 2))
	suite.expense(suite.cash.AccountID, "100", domain.PhaseBuilding, false, day(time.March, 3))
	suite.expense(suite.cash.AccountID, "50", domain.PhaseOperating, true, day(time.March, 4))
	suite.expense(suite.cash.AccountID, "30", domain.PhaseOperating, false, day(time.March, 5))

	pl, err := suite.svc.Statements.ProfitAndLoss(suite.ctx, suite.project.ProjectID, thisMonth)
	suite.Require().NoError(err)

	suite.assertDecimal("200", pl.TotalIncome)
	suite.assertDecimal("50", pl.DirectCosts)
	suite.assertDecimal("150", pl.GrossProfit)
	suite.assertDecimal("75", pl.GrossMarginPct)
	suite.assertDecimal("30", pl.OperatingExpenses)
	suite.assertDecimal("120", pl.NetProfit)
	suite.assertDecimal("60", pl.NetMarginPct)
	suite.assertDecimal("100", pl.BuildingExpenses)
	suite.True(pl.Period.Start.Equal(*day(time.March, 1)))
	suite.True(pl.Period.End.Equal(*day(time.March, 15)))
}

func (suite *LedgerSuite) TestProfitAndLoss_ZeroIncomeHasZeroMargins() {
	suite.expense(suite.cash.AccountID, "30", domain.PhaseOperating, false, day(time.March, 5))

	pl, err := suite.svc.Statements.ProfitAndLoss(suite.ctx, suite.project.ProjectID, thisMonth)
	suite.Require().NoError(err)
	suite.assertDecimal("-30", pl.NetProfit)
	suite.assertDecimal("0", pl.GrossMarginPct)
	suite.assertDecimal("0", pl.NetMarginPct)
}

func (suite *LedgerSuite) TestProfitAndLoss_CustomPeriod() {
	suite.income(suite.cash.AccountID, "70", day(time.February, 10))
	suite.income(suite.cash.AccountID, "5", day(time.March, 10))

	q := dto.PeriodQuery{Period: "custom", StartDate: day(time.February, 1), EndDate: day(time.February, 28)}
	pl, err := suite.svc.Statements.ProfitAndLoss(suite.ctx, suite.project.ProjectID, q)
	suite.Require().NoError(err)
	suite.assertDecimal("70", pl.TotalIncome)
}

func (suite *LedgerSuite) TestCashFlow_IncludesLoans() {
	pid := suite.project.ProjectID
	suite.income(suite.cash.AccountID, "200", day(time.March, 2))
	suite.expense(suite.cash.AccountID, "50", domain.PhaseOperating, false, day(time.March, 3))
	suite.expense(suite.cash.AccountID, "30", domain.PhaseBuilding, false, day(time.March, 4))
	loan, err := suite.svc.Loan.CreateLoan(suite.ctx, pid, dto.CreateLoanRequest{
		LenderName: "Bank of Uncle", Amount: dec("500"), ReceivedDate: day(time.March, 5), AccountID: suite.bank.AccountID,
	})
	suite.Require().NoError(err)
	_, err = suite.svc.Loan.RecordPayment(suite.ctx, pid, loan.LoanID, dto.LoanPaymentRequest{Amount: dec("50"), PaymentDate: day(time.March, 10)})
	suite.Require().NoError(err)

	cf, err := suite.svc.Statements.CashFlow(suite.ctx, pid, thisMonth)
	suite.Require().NoError(err)
	suite.assertDecimal("700", cf.CashIn)
	suite.assertDecimal("130", cf.CashOut)
	suite.assertDecimal("570", cf.NetCashFlow)
	suite.assertDecimal("500", cf.LoansReceived)
	suite.assertDecimal("50", cf.LoanPayments)
}

func (suite *LedgerSuite) TestEquityAndROI() {
	pid := suite.project.ProjectID
	suite.income(suite.cash.AccountID, "200", day(time.March, 2))
	suite.expense(suite.cash.AccountID, "50", domain.PhaseOperating, true, day(time.March, 3))
	suite.expense(suite.cash.AccountID, "30", domain.PhaseOperating, false, day(time.March, 3))
	suite.expense(suite.bank.AccountID, "100", domain.PhaseBuilding, false, day(time.January, 3))
	loan, err := suite.svc.Loan.CreateLoan(suite.ctx, pid, dto.CreateLoanRequest{LenderName: "Uncle", Amount: dec("500"), AccountID: suite.bank.AccountID})
	suite.Require().NoError(err)
	_, err = suite.svc.Loan.RecordPayment(suite.ctx, pid, loan.LoanID, dto.LoanPaymentRequest{Amount: dec("50")})
	suite.Require().NoError(err)
	_, err = suite.svc.Debt.CreateDebt(suite.ctx, pid, dto.CreateDebtRequest{DebtType: domain.DebtOwedByUs, PersonName: "Supplier", Amount: dec("120"), AccountID: strPtr(suite.bank.AccountID)})
	suite.Require().NoError(err)
	_, err = suite.svc.Debt.CreateDebt(suite.ctx, pid, dto.CreateDebtRequest{DebtType: domain.DebtOwedToUs, PersonName: "Customer", Amount: dec("40"), AccountID: strPtr(suite.cash.AccountID)})
	suite.Require().NoError(err)

	eq, err := suite.svc.Statements.Equity(suite.ctx, pid)
	suite.Require().NoError(err)
	suite.assertDecimal("1000", eq.OwnerCapital)
	suite.assertDecimal("120", eq.RetainedEarnings)
	suite.assertDecimal("450", eq.LoanLiabilities)
	suite.assertDecimal("120", eq.DebtLiabilities)
	suite.assertDecimal("570", eq.TotalLiabilities)
	suite.assertDecimal("550", eq.NetProjectValue)
	suite.assertDecimal("800", eq.TotalBalance) // cash 80 + bank 720
	suite.assertDecimal("40", eq.Receivables)
	suite.assertDecimal("840", eq.TotalAssets)

	roi, err := suite.svc.Statements.ROI(suite.ctx, pid)
	suite.Require().NoError(err)
	suite.assertDecimal("1100", roi.TotalInvestment)
	suite.assertDecimal("120", roi.NetProfit)
	suite.assertDecimal("10.91", roi.ROIPct)
}

func (suite *LedgerSuite) TestKPIs_TrailingBurnRate() {
	suite.income(suite.cash.AccountID, "3000", day(time.March, 1))
	suite.expense(suite.bank.AccountID, "60", domain.PhaseOperating, false, day(time.January, 20))
	suite.expense(suite.bank.AccountID, "90", domain.PhaseOperating, false, day(time.March, 2))
	suite.expense(suite.bank.AccountID, "500", domain.PhaseBuilding, false, day(time.February, 2))
	old := time.Date(2025, time.September, 30, 0, 0, 0, 0, time.UTC)
	suite.expense(suite.bank.AccountID, "1000", domain.PhaseOperating, false, &old)

	kpis, err := suite.svc.Statements.KPIs(suite.ctx, suite.project.ProjectID)
	suite.Require().NoError(err)

	suite.Equal(2, kpis.ActiveMonths)
	suite.assertDecimal("75", kpis.BurnRate)
	suite.assertDecimal("1600", kpis.TotalCash)
	suite.False(kpis.RunwayMonths.Infinite)
	suite.assertDecimal("21.33", kpis.RunwayMonths.Months)
	suite.assertDecimal("100", kpis.GrossMarginPct)
	suite.assertDecimal("61.67", kpis.NetMarginPct)
	suite.assertDecimal("123.33", kpis.ROIPct)
	suite.True(kpis.BurnWindow.Start.Equal(time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)))
}

func (suite *LedgerSuite) TestKPIs_NoBurnMeansInfiniteRunway() {
	suite.income(suite.cash.AccountID, "10", nil)

	kpis, err := suite.svc.Statements.KPIs(suite.ctx, suite.project.ProjectID)
	suite.Require().NoError(err)
	suite.assertDecimal("0", kpis.BurnRate)
	suite.True(kpis.RunwayMonths.Infinite)
	suite.Equal("infinite", kpis.RunwayMonths.String())
}

func (suite *LedgerSuite) TestIncomeSummary_OnlyCategoriesWithRows() {
	suite.income(suite.cash.AccountID, "100", day(time.March, 2))
	_, err := suite.svc.Income.CreateIncome(suite.ctx, suite.project.ProjectID, dto.CreateIncomeRequest{
		AccountID: suite.cash.AccountID, CategoryID: serviceCategoryID, Amount: dec("30"), TransactionDate: day(time.March, 3),
	})
	suite.Require().NoError(err)

	summary, err := suite.svc.Statements.IncomeSummary(suite.ctx, suite.project.ProjectID, thisMonth)
	suite.Require().NoError(err)
	suite.Require().Len(summary.Categories, 2)
	suite.Equal(salesCategoryID, summary.Categories[0].CategoryID)
	suite.Equal("sales", summary.Categories[0].CategoryName)
	suite.assertDecimal("100", summary.Categories[0].Total)
	suite.Equal(serviceCategoryID, summary.Categories[1].CategoryID)
	suite.assertDecimal("130", summary.Total)

	expenses, err := suite.svc.Statements.ExpenseSummary(suite.ctx, suite.project.ProjectID, thisMonth)
	suite.Require().NoError(err)
	suite.Empty(expenses.Categories)
	suite.assertDecimal("0", expenses.Total)
}

func (suite *LedgerSuite) TestMonthlyTrend() {
	suite.income(suite.cash.AccountID, "10", day(time.January, 5))
	suite.income(suite.cash.AccountID, "20", day(time.March, 5))
	suite.income(suite.cash.AccountID, "5", day(time.March, 6))
	suite.expense(suite.cash.AccountID, "7", domain.PhaseOperating, false, day(time.February, 5))

	trend, err := suite.svc.Statements.MonthlyTrend(suite.ctx, suite.project.ProjectID)
	suite.Require().NoError(err)
	suite.Require().Len(trend.Income, 2)
	suite.Equal(time.January, trend.Income[0].Month)
	suite.assertDecimal("25", trend.Income[1].Total)
	suite.Require().Len(trend.Expenses, 1)
	suite.Equal(time.February, trend.Expenses[0].Month)
}

func (suite *LedgerSuite) TestGetStatement_Dispatch() {
	suite.income(suite.cash.AccountID, "10", nil)

	result, err := suite.svc.Statements.GetStatement(suite.ctx, suite.project.ProjectID, domain.StatementProfitAndLoss, thisMonth)
	suite.Require().NoError(err)
	suite.Equal(domain.StatementProfitAndLoss, result.Statement())
	pl, ok := result.(*domain.ProfitAndLoss)
	suite.Require().True(ok)
	suite.assertDecimal("10", pl.TotalIncome)

	result, err = suite.svc.Statements.GetStatement(suite.ctx, suite.project.ProjectID, domain.StatementExpenseSummary, thisMonth)
	suite.Require().NoError(err)
	suite.Equal(domain.StatementExpenseSummary, result.Statement())

	_, err = suite.svc.Statements.GetStatement(suite.ctx, suite.project.ProjectID, "balance-sheet", thisMonth)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerSuite) TestGetStatement_FailureReturnsNilResult() {
	result, err := suite.svc.Statements.GetStatement(suite.ctx, "missing", domain.StatementEquity, thisMonth)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.True(result == nil)

	result, err = suite.svc.Statements.GetStatement(suite.ctx, "missing", domain.StatementProfitAndLoss, thisMonth)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.True(result == nil)
}

func (suite *LedgerSuite) TestStatements_UnknownProjectIsNotFound() {
	_, err := suite.svc.Statements.Equity(suite.ctx, "missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerSuite) TestDashboard() {
	pid := suite.project.ProjectID
	suite.income(suite.cash.AccountID, "200", day(time.March, 2))
	suite.expense(suite.cash.AccountID, "80", domain.PhaseBuilding, false, day(time.March, 3))
	for _, d := range []struct {
		debtType domain.DebtType
		due      *time.Time
		person   string
	}{
		{domain.DebtOwedByUs, day(time.March, 18), "due soon"},
		{domain.DebtOwedByUs, day(time.April, 30), "due later"},
		{domain.DebtOwedToUs, day(time.March, 16), "owed to us"},
	} {
		_, err := suite.svc.Debt.CreateDebt(suite.ctx, pid, dto.CreateDebtRequest{DebtType: d.debtType, PersonName: d.person, Amount: dec("10"), DueDate: d.due})
		suite.Require().NoError(err)
	}

	dash, err := suite.svc.Statements.Dashboard(suite.ctx, pid, thisMonth)
	suite.Require().NoError(err)
	suite.assertDecimal("200", dash.TotalIncome)
	suite.assertDecimal("80", dash.TotalExpenses)
	suite.assertDecimal("120", dash.ProfitLoss)
	suite.assertDecimal("370", dash.TotalBalance)
	suite.Require().Len(dash.UpcomingDebts, 1)
	suite.Equal("due soon", dash.UpcomingDebts[0].PersonName)
}
