package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/project_books/internal/apperrors"
	"github.com/SscSPs/project_books/internal/core/domain"
	portssvc "github.com/SscSPs/project_books/internal/core/ports/services"
	"github.com/SscSPs/project_books/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockStatementService struct {
	mock.Mock
}

func (m *MockStatementService) ProfitAndLoss(ctx context.Context, projectID string, q dto.PeriodQuery) (*domain.ProfitAndLoss, error) {
	args := m.Called(ctx, projectID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfitAndLoss), args.Error(1)
}
func (m *MockStatementService) CashFlow(ctx context.Context, projectID string, q dto.PeriodQuery) (*domain.CashFlow, error) {
	args := m.Called(ctx, projectID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashFlow), args.Error(1)
}
func (m *MockStatementService) Equity(ctx context.Context, projectID string) (*domain.Equity, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equity), args.Error(1)
}
func (m *MockStatementService) ROI(ctx context.Context, projectID string) (*domain.ROI, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ROI), args.Error(1)
}
func (m *MockStatementService) KPIs(ctx context.Context, projectID string) (*domain.KPIs, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KPIs), args.Error(1)
}
func (m *MockStatementService) IncomeSummary(ctx context.Context, projectID string, q dto.PeriodQuery) (*domain.CategorySummary, error) {
	args := m.Called(ctx, projectID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategorySummary), args.Error(1)
}
func (m *MockStatementService) ExpenseSummary(ctx context.Context, projectID string, q dto.PeriodQuery) (*domain.CategorySummary, error) {
	args := m.Called(ctx, projectID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategorySummary), args.Error(1)
}
func (m *MockStatementService) MonthlyTrend(ctx context.Context, projectID string) (*domain.MonthlyTrend, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyTrend), args.Error(1)
}
func (m *MockStatementService) GetStatement(ctx context.Context, projectID string, name domain.StatementName, q dto.PeriodQuery) (domain.StatementResult, error) {
	args := m.Called(ctx, projectID, name, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.StatementResult), args.Error(1)
}
func (m *MockStatementService) Dashboard(ctx context.Context, projectID string, q dto.PeriodQuery) (*domain.Dashboard, error) {
	args := m.Called(ctx, projectID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dashboard), args.Error(1)
}

var _ portssvc.StatementSvc = (*MockStatementService)(nil)

func (suite *HandlerTestSuite) statementPath(suffix string) string {
	return fmt.Sprintf("/api/v1/projects/%s%s", suite.testProjectID, suffix)
}

func (suite *HandlerTestSuite) TestGetStatement_PassesPeriodQuery() {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	pl := &domain.ProfitAndLoss{
		Period:      domain.DateRange{Start: start, End: end},
		TotalIncome: decimal.NewFromInt(1000),
		NetProfit:   decimal.NewFromInt(400),
	}
	suite.mockStatementSvc.On("GetStatement", mock.Anything, suite.testProjectID, domain.StatementProfitAndLoss,
		mock.MatchedBy(func(q dto.PeriodQuery) bool {
			return q.Period == "custom" && q.StartDate != nil && q.StartDate.Equal(start) && q.EndDate != nil && q.EndDate.Equal(end)
		})).Return(pl, nil).Once()

	w := suite.do(http.MethodGet, suite.statementPath("/statements/profit-loss?period=custom&start_date=2024-01-01&end_date=2024-01-31"), suite.sessionToken, nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var got domain.ProfitAndLoss
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.True(got.NetProfit.Equal(decimal.NewFromInt(400)))
	suite.mockStatementSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetStatement_UnknownName() {
	suite.mockStatementSvc.On("GetStatement", mock.Anything, suite.testProjectID, domain.StatementName("balance-sheet"), mock.Anything).
		Return(nil, fmt.Errorf("%w: unknown statement %q", apperrors.ErrValidation, "balance-sheet")).Once()

	w := suite.do(http.MethodGet, suite.statementPath("/statements/balance-sheet"), suite.sessionToken, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "unknown statement")
}

func (suite *HandlerTestSuite) TestGetStatement_BadDate() {
	w := suite.do(http.MethodGet, suite.statementPath("/statements/cash-flow?period=custom&start_date=01/02/2024"), suite.sessionToken, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockStatementSvc.AssertNotCalled(suite.T(), "GetStatement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestDashboard() {
	dashboard := &domain.Dashboard{
		TotalBalance:  decimal.NewFromInt(900),
		TotalIncome:   decimal.NewFromInt(300),
		TotalExpenses: decimal.NewFromInt(100),
		ProfitLoss:    decimal.NewFromInt(200),
	}
	suite.mockStatementSvc.On("Dashboard", mock.Anything, suite.testProjectID, mock.MatchedBy(func(q dto.PeriodQuery) bool {
		return q.Period == "week"
	})).Return(dashboard, nil).Once()

	w := suite.do(http.MethodGet, suite.statementPath("/dashboard?period=week"), suite.sessionToken, nil)

	suite.Equal(http.StatusOK, w.Code)
	var got domain.Dashboard
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.True(got.ProfitLoss.Equal(decimal.NewFromInt(200)))
}
