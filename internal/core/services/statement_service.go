package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/project_books/internal/apperrors"
	"github.com/SscSPs/project_books/internal/core/domain"
	portsrepo "github.com/SscSPs/project_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/project_books/internal/core/ports/services"
	"github.com/SscSPs/project_books/internal/dto"
	"github.com/SscSPs/project_books/internal/utils/accounting"
	"github.com/SscSPs/project_books/internal/utils/period"
	"github.com/shopspring/decimal"
)

const trendMonths = 12

// statementService composes the financial statements. Every figure comes from
// a LedgerQueryRepository aggregate; nothing here touches individual rows.
type statementService struct {
	BaseService
	projectRepo portsrepo.ProjectReader
	ledgerRepo  portsrepo.LedgerQueryRepository
	debtRepo    portsrepo.DebtRepositoryFacade
}

// NewStatementService creates the statement service.
func NewStatementService(repos portsrepo.RepositoryProvider, options ...Option) portssvc.StatementSvc {
	return &statementService{
		BaseService: newBaseService(options...),
		projectRepo: repos.ProjectRepo,
		ledgerRepo:  repos.LedgerRepo,
		debtRepo:    repos.DebtRepo,
	}
}

var _ portssvc.StatementSvc = (*statementService)(nil)

// profitFigures are the profit-and-loss building blocks over one filter.
type profitFigures struct {
	income      decimal.Decimal
	directCosts decimal.Decimal
	operating   decimal.Decimal // operating-phase indirect costs
	building    decimal.Decimal
}

func (f profitFigures) grossProfit() decimal.Decimal { return f.income.Sub(f.directCosts) }

func (f profitFigures) netProfit() decimal.Decimal { return f.grossProfit().Sub(f.operating) }

func (s *statementService) profitFigures(ctx context.Context, filter domain.LedgerFilter) (profitFigures, error) {
	var (
		figures   profitFigures
		err       error
		operating = domain.PhaseOperating
		building  = domain.PhaseBuilding
		direct    = true
		indirect  = false
	)

	if figures.income, err = s.ledgerRepo.SumAmount(ctx, domain.SetIncome, filter); err != nil {
		return figures, fmt.Errorf("failed to sum income: %w", err)
	}

	f := filter
	f.Phase, f.IsDirectCost = &operating, &direct
	if figures.directCosts, err = s.ledgerRepo.SumAmount(ctx, domain.SetExpense, f); err != nil {
		return figures, fmt.Errorf("failed to sum direct costs: %w", err)
	}

	f.IsDirectCost = &indirect
	if figures.operating, err = s.ledgerRepo.SumAmount(ctx, domain.SetExpense, f); err != nil {
		return figures, fmt.Errorf("failed to sum operating expenses: %w", err)
	}

	f.Phase, f.IsDirectCost = &building, nil
	if figures.building, err = s.ledgerRepo.SumAmount(ctx, domain.SetExpense, f); err != nil {
		return figures, fmt.Errorf("failed to sum building expenses: %w", err)
	}
	return figures, nil
}

// periodFilter resolves the period of q against today.
func (s *statementService) periodFilter(projectID string, q dto.PeriodQuery) domain.LedgerFilter {
	r := period.Resolve(period.ParseToken(q.Period), q.StartDate, q.EndDate, s.today())
	return domain.LedgerFilter{ProjectID: projectID, AccountID: optionalID(q.AccountID), Range: &r}
}

func (s *statementService) ProfitAndLoss(ctx context.Context, projectID string, q dto.PeriodQuery) (*domain.ProfitAndLoss, error) {
	if _, err := loadActiveProject(ctx, s.projectRepo, projectID); err != nil {
		return nil, err
	}
	filter := s.periodFilter(projectID, q)
	figures, err := s.profitFigures(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to compose profit and loss", slog.String("project_id", projectID))
		return nil, err
	}

	gross := figures.grossProfit()
	net := figures.netProfit()
	return &domain.ProfitAndLoss{
		Period:            *filter.Range,
		TotalIncome:       figures.income,
		DirectCosts:       figures.directCosts,
		GrossProfit:       gross,
		GrossMarginPct:    accounting.Percent(gross, figures.income),
		OperatingExpenses: figures.operating,
		NetProfit:         net,
		NetMarginPct:      accounting.Percent(net, figures.income),
		BuildingExpenses:  figures.building,
	}, nil
}

func (s *statementService) CashFlow(ctx context.Context, projectID string, q dto.PeriodQuery) (*domain.CashFlow, error) {
	if _, err := loadActiveProject(ctx, s.projectRepo, projectID); err != nil {
		return nil, err
	}
	filter := s.periodFilter(projectID, q)

	sums := make(map[domain.EntitySet]decimal.Decimal, 4)
	for _, set := range []domain.EntitySet{domain.SetIncome, domain.SetLoanReceived, domain.SetExpense, domain.SetLoanRepaid} {
		total, err := s.ledgerRepo.SumAmount(ctx, set, filter)
		if err != nil {
			s.LogError(ctx, err, "Failed to compose cash flow", slog.String("project_id", projectID), slog.String("set", string(set)))
			return nil, fmt.Errorf("failed to sum %s: %w", set, err)
		}
		sums[set] = total
	}

	cashIn := sums[domain.SetIncome].Add(sums[domain.SetLoanReceived])
	cashOut := sums[domain.SetExpense].Add(sums[domain.SetLoanRepaid])
	return &domain.CashFlow{
		Period:        *filter.Range,
		TotalIncome:   sums[domain.SetIncome],
		LoansReceived: sums[domain.SetLoanReceived],
		CashIn:        cashIn,
		TotalExpenses: sums[domain.SetExpense],
		LoanPayments:  sums[domain.SetLoanRepaid],
		CashOut:       cashOut,
		NetCashFlow:   cashIn.Sub(cashOut),
	}, nil
}

// outstanding sums the unpaid remainder of a set, optionally for one debt side.
func (s *statementService) outstanding(ctx context.Context, projectID string, set domain.EntitySet, debtType *domain.DebtType) (decimal.Decimal, error) {
	unpaid := false
	total, err := s.ledgerRepo.SumAmount(ctx, set, domain.LedgerFilter{ProjectID: projectID, DebtType: debtType, Paid: &unpaid})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s: %w", set, err)
	}
	return total, nil
}

func (s *statementService) Equity(ctx context.Context, projectID string) (*domain.Equity, error) {
	project, err := loadActiveProject(ctx, s.projectRepo, projectID)
	if err != nil {
		return nil, err
	}
	allTime, err := s.profitFigures(ctx, domain.LedgerFilter{ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	loans, err := s.outstanding(ctx, projectID, domain.SetLoanOutstanding, nil)
	if err != nil {
		return nil, err
	}
	byUs, toUs := domain.DebtOwedByUs, domain.DebtOwedToUs
	debtsByUs, err := s.outstanding(ctx, projectID, domain.SetDebtOutstanding, &byUs)
	if err != nil {
		return nil, err
	}
	receivables, err := s.outstanding(ctx, projectID, domain.SetDebtOutstanding, &toUs)
	if err != nil {
		return nil, err
	}
	balance, err := s.ledgerRepo.SumAccountBalances(ctx, projectID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to sum balances: %w", err)
	}

	retained := allTime.netProfit()
	liabilities := loans.Add(debtsByUs)
	return &domain.Equity{
		OwnerCapital:     project.OwnerCapital,
		RetainedEarnings: retained,
		LoanLiabilities:  loans,
		DebtLiabilities:  debtsByUs,
		TotalLiabilities: liabilities,
		NetProjectValue:  project.OwnerCapital.Add(retained).Sub(liabilities),
		TotalBalance:     balance,
		Receivables:      receivables,
		TotalAssets:      balance.Add(receivables),
	}, nil
}

func (s *statementService) roi(project *domain.Project, allTime profitFigures) domain.ROI {
	investment := project.OwnerCapital.Add(allTime.building)
	net := allTime.netProfit()
	return domain.ROI{
		OwnerCapital:     project.OwnerCapital,
		BuildingExpenses: allTime.building,
		TotalInvestment:  investment,
		NetProfit:        net,
		ROIPct:           accounting.Percent(net, investment),
	}
}

func (s *statementService) ROI(ctx context.Context, projectID string) (*domain.ROI, error) {
	project, err := loadActiveProject(ctx, s.projectRepo, projectID)
	if err != nil {
		return nil, err
	}
	allTime, err := s.profitFigures(ctx, domain.LedgerFilter{ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	roi := s.roi(project, allTime)
	return &roi, nil
}

func (s *statementService) KPIs(ctx context.Context, projectID string) (*domain.KPIs, error) {
	project, err := loadActiveProject(ctx, s.projectRepo, projectID)
	if err != nil {
		return nil, err
	}
	allTime, err := s.profitFigures(ctx, domain.LedgerFilter{ProjectID: projectID})
	if err != nil {
		return nil, err
	}

	window := period.TrailingMonths(s.today(), s.KPITrailingMonths)
	operating := domain.PhaseOperating
	months, err := s.ledgerRepo.MonthlyTotals(ctx, domain.SetExpense, domain.LedgerFilter{ProjectID: projectID, Range: &window, Phase: &operating})
	if err != nil {
		return nil, fmt.Errorf("failed to total monthly burn: %w", err)
	}
	cash, err := s.ledgerRepo.SumAccountBalances(ctx, projectID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to sum balances: %w", err)
	}

	burn := accounting.BurnRate(months)
	runway := accounting.RunwayMonths(cash, burn)
	s.LogDebug(ctx, "KPIs computed",
		slog.String("project_id", projectID),
		slog.String("burn_rate", burn.String()),
		slog.String("runway", runway.String()))

	return &domain.KPIs{
		BurnRate:       burn,
		BurnWindow:     window,
		ActiveMonths:   len(months),
		TotalCash:      cash,
		RunwayMonths:   runway,
		GrossMarginPct: accounting.Percent(allTime.grossProfit(), allTime.income),
		NetMarginPct:   accounting.Percent(allTime.netProfit(), allTime.income),
		ROIPct:         s.roi(project, allTime).ROIPct,
	}, nil
}

func (s *statementService) categorySummary(ctx context.Context, projectID string, name domain.StatementName, set domain.EntitySet, q dto.PeriodQuery) (*domain.CategorySummary, error) {
	if _, err := loadActiveProject(ctx, s.projectRepo, projectID); err != nil {
		return nil, err
	}
	filter := s.periodFilter(projectID, q)
	categories, err := s.ledgerRepo.GroupByCategory(ctx, set, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to group by category", slog.String("project_id", projectID), slog.String("set", string(set)))
		return nil, fmt.Errorf("failed to group %s by category: %w", set, err)
	}
	if categories == nil {
		categories = []domain.CategoryAmount{}
	}
	total := decimal.Zero
	for _, c := range categories {
		total = total.Add(c.Total)
	}
	return &domain.CategorySummary{Name: name, Period: *filter.Range, Categories: categories, Total: total}, nil
}

func (s *statementService) IncomeSummary(ctx context.Context, projectID string, q dto.PeriodQuery) (*domain.CategorySummary, error) {
	return s.categorySummary(ctx, projectID, domain.StatementIncomeSummary, domain.SetIncome, q)
}

func (s *statementService) ExpenseSummary(ctx context.Context, projectID string, q dto.PeriodQuery) (*domain.CategorySummary, error) {
	return s.categorySummary(ctx, projectID, domain.StatementExpenseSummary, domain.SetExpense, q)
}

func (s *statementService) MonthlyTrend(ctx context.Context, projectID string) (*domain.MonthlyTrend, error) {
	if _, err := loadActiveProject(ctx, s.projectRepo, projectID); err != nil {
		return nil, err
	}
	window := period.TrailingMonths(s.today(), trendMonths)
	filter := domain.LedgerFilter{ProjectID: projectID, Range: &window}

	income, err := s.ledgerRepo.MonthlyTotals(ctx, domain.SetIncome, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to total monthly income: %w", err)
	}
	expenses, err := s.ledgerRepo.MonthlyTotals(ctx, domain.SetExpense, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to total monthly expenses: %w", err)
	}
	if income == nil {
		income = []domain.MonthAmount{}
	}
	if expenses == nil {
		expenses = []domain.MonthAmount{}
	}
	return &domain.MonthlyTrend{Period: window, Income: income, Expenses: expenses}, nil
}

func (s *statementService) GetStatement(ctx context.Context, projectID string, name domain.StatementName, q dto.PeriodQuery) (domain.StatementResult, error) {
	s.LogDebug(ctx, "Composing statement", slog.String("project_id", projectID), slog.String("statement", string(name)))
	switch name {
	case domain.StatementProfitAndLoss:
		return asStatement(s.ProfitAndLoss(ctx, projectID, q))
	case domain.StatementCashFlow:
		return asStatement(s.CashFlow(ctx, projectID, q))
	case domain.StatementEquity:
		return asStatement(s.Equity(ctx, projectID))
	case domain.StatementROI:
		return asStatement(s.ROI(ctx, projectID))
	case domain.StatementKPIs:
		return asStatement(s.KPIs(ctx, projectID))
	case domain.StatementIncomeSummary:
		return asStatement(s.IncomeSummary(ctx, projectID, q))
	case domain.StatementExpenseSummary:
		return asStatement(s.ExpenseSummary(ctx, projectID, q))
	case domain.StatementMonthlyTrend:
		return asStatement(s.MonthlyTrend(ctx, projectID))
	default:
		return nil, fmt.Errorf("%w: unknown statement %q", apperrors.ErrValidation, name)
	}
}

// asStatement widens a typed statement, returning a nil interface on error.
func asStatement[T domain.StatementResult](r T, err error) (domain.StatementResult, error) {
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Dashboard reports period income against period expenses of every phase,
// the current total balance and debts owed by the project falling due soon.
func (s *statementService) Dashboard(ctx context.Context, projectID string, q dto.PeriodQuery) (*domain.Dashboard, error) {
	if _, err := loadActiveProject(ctx, s.projectRepo, projectID); err != nil {
		return nil, err
	}
	filter := s.periodFilter(projectID, q)

	income, err := s.ledgerRepo.SumAmount(ctx, domain.SetIncome, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to sum income: %w", err)
	}
	expenses, err := s.ledgerRepo.SumAmount(ctx, domain.SetExpense, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}
	balance, err := s.ledgerRepo.SumAccountBalances(ctx, projectID, filter.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum balances: %w", err)
	}
	upcoming, err := upcomingDebts(ctx, s.debtRepo, projectID, s.today(), s.DebtWarningDays)
	if err != nil {
		return nil, err
	}

	return &domain.Dashboard{
		Period:        *filter.Range,
		TotalBalance:  balance,
		TotalIncome:   income,
		TotalExpenses: expenses,
		ProfitLoss:    income.Sub(expenses),
		UpcomingDebts: upcoming,
	}, nil
}
