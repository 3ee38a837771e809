package services_test

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/project_books/internal/apperrors"
	"github.com/SscSPs/project_books/internal/core/domain"
	portsrepo "github.com/SscSPs/project_books/internal/core/ports/repositories"
	"github.com/SscSPs/project_books/internal/core/services"
	"github.com/SscSPs/project_books/internal/dto"
	"github.com/stretchr/testify/mock"
)

// failingEmployeeRepo delegates to the real store except for salary payments.
type failingEmployeeRepo struct {
	portsrepo.EmployeeRepositoryFacade
	mock.Mock
}

func (m *failingEmployeeRepo) SaveSalaryPayment(ctx context.Context, payment domain.SalaryPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (suite *LedgerSuite) newEmployee(name, salary string) *domain.Employee {
	employee, err := suite.svc.Employee.CreateEmployee(suite.ctx, suite.project.ProjectID, dto.CreateEmployeeRequest{
		Name: name, BaseSalary: dec(salary), ContractType: domain.ContractFullTime,
	})
	suite.Require().NoError(err)
	return employee
}

func (suite *LedgerSuite) TestPaySalary_CreatesLinkedExpense() {
	pid := suite.project.ProjectID
	employee := suite.newEmployee("Mona", "1000")

	resp, err := suite.svc.Employee.PaySalary(suite.ctx, pid, employee.EmployeeID, dto.PaySalaryRequest{
		AccountID:   suite.bank.AccountID,
		PaymentDate: day(time.March, 1),
		Deductions:  dec("50.24"),
		Bonus:       dec("25"),
		Notes:       "March",
	})
	suite.Require().NoError(err)

	suite.assertDecimal("974.76", resp.Payment.NetSalary)
	suite.Equal(resp.Expense.TransactionID, resp.Payment.ExpenseTransactionID)
	suite.Equal(salaryCategoryID, resp.Expense.CategoryID)
	suite.Equal(domain.PhaseOperating, resp.Expense.Phase)
	suite.True(resp.Expense.IsSalary)
	suite.Require().NotNil(resp.Expense.EmployeeID)
	suite.Equal(employee.EmployeeID, *resp.Expense.EmployeeID)
	suite.Equal("Salary Mona - March", resp.Expense.Notes)
	suite.assertDecimal("-724.76", suite.cachedBalance(suite.bank.AccountID))

	payments, err := suite.svc.Employee.ListSalaryPayments(suite.ctx, pid, employee.EmployeeID)
	suite.Require().NoError(err)
	suite.Len(payments, 1)

	_, err = suite.svc.Expense.UpdateExpense(suite.ctx, pid, resp.Expense.TransactionID, dto.UpdateExpenseRequest{Amount: decPtr("1")})
	suite.ErrorIs(err, services.ErrSalaryExpenseReadOnly)
	err = suite.svc.Expense.DeleteExpense(suite.ctx, pid, resp.Expense.TransactionID)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.assertReconciled()
}

func (suite *LedgerSuite) TestPaySalary_RejectsNonPositiveNet() {
	pid := suite.project.ProjectID
	employee := suite.newEmployee("Omar", "100")

	_, err := suite.svc.Employee.PaySalary(suite.ctx, pid, employee.EmployeeID, dto.PaySalaryRequest{
		AccountID:  suite.cash.AccountID,
		Deductions: dec("100"),
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	expenses, err := suite.svc.Expense.ListExpenses(suite.ctx, pid, dto.ListTransactionsParams{})
	suite.Require().NoError(err)
	suite.Empty(expenses.Transactions)
}

func (suite *LedgerSuite) TestPaySalary_RollsBackWhenPaymentCannotBeStored() {
	pid := suite.project.ProjectID
	employee := suite.newEmployee("Lina", "500")

	failing := &failingEmployeeRepo{EmployeeRepositoryFacade: suite.repos.EmployeeRepo}
	storageErr := apperrors.Storage("insert salary payment", errors.New("connection reset"))
	failing.On("SaveSalaryPayment", mock.Anything, mock.AnythingOfType("domain.SalaryPayment")).Return(storageErr).Once()

	repos := suite.repos
	repos.EmployeeRepo = failing
	svc := services.NewServiceContainer(repos, services.WithClock(func() time.Time { return fixedNow }))

	_, err := svc.Employee.PaySalary(suite.ctx, pid, employee.EmployeeID, dto.PaySalaryRequest{AccountID: suite.cash.AccountID})
	suite.ErrorIs(err, apperrors.ErrStorage)
	failing.AssertExpectations(suite.T())

	expenses, err := suite.svc.Expense.ListExpenses(suite.ctx, pid, dto.ListTransactionsParams{})
	suite.Require().NoError(err)
	suite.Empty(expenses.Transactions, "salary expense must not survive the failed payment")
	suite.assertDecimal("0", suite.cachedBalance(suite.cash.AccountID))
}

func (suite *LedgerSuite) TestCreateExpense_EmployeeMustBelongToProject() {
	other, err := suite.svc.Project.CreateProject(suite.ctx, dto.CreateProjectRequest{Name: "Other"})
	suite.Require().NoError(err)
	stranger, err := suite.svc.Employee.CreateEmployee(suite.ctx, other.ProjectID, dto.CreateEmployeeRequest{Name: "Stranger", BaseSalary: dec("1")})
	suite.Require().NoError(err)

	_, err = suite.svc.Expense.CreateExpense(suite.ctx, suite.project.ProjectID, dto.CreateExpenseRequest{
		AccountID: suite.cash.AccountID, CategoryID: rentCategoryID, Amount: dec("5"), EmployeeID: &stranger.EmployeeID,
	})
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerSuite) TestDeactivateProject_RefusedWhileItOwnsAccounts() {
	err := suite.svc.Project.DeactivateProject(suite.ctx, suite.project.ProjectID)
	suite.ErrorIs(err, services.ErrProjectHasDependents)
	suite.ErrorIs(err, apperrors.ErrValidation)

	empty, err := suite.svc.Project.CreateProject(suite.ctx, dto.CreateProjectRequest{Name: "Empty"})
	suite.Require().NoError(err)
	suite.Equal(domain.PhaseBuilding, empty.Phase)
	suite.Require().NoError(suite.svc.Project.DeactivateProject(suite.ctx, empty.ProjectID))

	_, err = suite.svc.Project.GetProject(suite.ctx, empty.ProjectID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerSuite) TestProjectPIN() {
	pid := suite.project.ProjectID
	suite.NoError(suite.svc.Project.VerifyPIN(suite.ctx, pid, "anything"))

	suite.Require().NoError(suite.svc.Project.SetPIN(suite.ctx, pid, "2468"))
	suite.NoError(suite.svc.Project.VerifyPIN(suite.ctx, pid, "2468"))
	suite.ErrorIs(suite.svc.Project.VerifyPIN(suite.ctx, pid, "1357"), apperrors.ErrUnauthorized)

	suite.Require().NoError(suite.svc.Project.SetPIN(suite.ctx, pid, ""))
	suite.NoError(suite.svc.Project.VerifyPIN(suite.ctx, pid, ""))
}

func (suite *LedgerSuite) TestProjectSummary() {
	pid := suite.project.ProjectID
	suite.income(suite.cash.AccountID, "100", nil)
	suite.newEmployee("Active", "10")
	gone := suite.newEmployee("Gone", "10")
	suite.Require().NoError(suite.svc.Employee.DeactivateEmployee(suite.ctx, pid, gone.EmployeeID))
	_, err := suite.svc.Debt.CreateDebt(suite.ctx, pid, dto.CreateDebtRequest{DebtType: domain.DebtOwedToUs, PersonName: "a", Amount: dec("30")})
	suite.Require().NoError(err)
	_, err = suite.svc.Debt.CreateDebt(suite.ctx, pid, dto.CreateDebtRequest{DebtType: domain.DebtOwedByUs, PersonName: "b", Amount: dec("45")})
	suite.Require().NoError(err)

	summary, err := suite.svc.Project.GetProjectSummary(suite.ctx, pid)
	suite.Require().NoError(err)
	suite.assertDecimal("350", summary.TotalBalance)
	suite.Equal(1, summary.EmployeeCount)
	suite.Equal(2, summary.AccountCount)
	suite.assertDecimal("30", summary.DebtsToUs)
	suite.assertDecimal("45", summary.DebtsByUs)
}
