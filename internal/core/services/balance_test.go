package services_test

import (
	"time"

	"github.com/SscSPs/project_books/internal/apperrors"
	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/SscSPs/project_books/internal/dto"
	"github.com/shopspring/decimal"
)

func (suite *LedgerSuite) TestCreateAccount_CurrentEqualsInitial() {
	suite.assertDecimal("250", suite.bank.CurrentBalance)
	suite.assertDecimal("250", suite.bank.InitialBalance)
}

func (suite *LedgerSuite) TestBalanceStaysReconciledAcrossMutations() {
	pid := suite.project.ProjectID
	steps := []struct {
		name string
		run  func() error
	}{
		{"income", func() error { suite.income(suite.cash.AccountID, "300", nil); return nil }},
		{"expense", func() error {
			suite.expense(suite.cash.AccountID, "45.50", domain.PhaseOperating, false, nil)
			return nil
		}},
		{"loan", func() error {
			_, err := suite.svc.Loan.CreateLoan(suite.ctx, pid, dto.CreateLoanRequest{LenderName: "Uncle", Amount: dec("500"), AccountID: suite.bank.AccountID})
			return err
		}},
		{"debt owed to us", func() error {
			_, err := suite.svc.Debt.CreateDebt(suite.ctx, pid, dto.CreateDebtRequest{DebtType: domain.DebtOwedToUs, PersonName: "Sami", Amount: dec("80"), AccountID: strPtr(suite.cash.AccountID)})
			return err
		}},
		{"debt owed by us", func() error {
			_, err := suite.svc.Debt.CreateDebt(suite.ctx, pid, dto.CreateDebtRequest{DebtType: domain.DebtOwedByUs, PersonName: "Supplier", Amount: dec("120"), AccountID: strPtr(suite.bank.AccountID)})
			return err
		}},
		{"edit income across accounts", func() error {
			txn := suite.income(suite.cash.AccountID, "10", nil)
			_, err := suite.svc.Income.UpdateIncome(suite.ctx, pid, txn.TransactionID, dto.UpdateIncomeRequest{AccountID: strPtr(suite.bank.AccountID), Amount: decPtr("15")})
			return err
		}},
		{"delete expense", func() error {
			txn := suite.expense(suite.bank.AccountID, "99", domain.PhaseBuilding, false, nil)
			return suite.svc.Expense.DeleteExpense(suite.ctx, pid, txn.TransactionID)
		}},
	}

	for _, step := range steps {
		suite.Require().NoError(step.run(), step.name)
		suite.assertReconciled()
	}

	// cash: 0 + 300 - 45.50 - 80 = 174.50
	suite.assertDecimal("174.50", suite.cachedBalance(suite.cash.AccountID))
	// bank: 250 + 500 + 120 + 15 = 885
	suite.assertDecimal("885", suite.cachedBalance(suite.bank.AccountID))
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func (suite *LedgerSuite) TestUpdateIncome_ReconcilesOldAndNewAccount() {
	txn := suite.income(suite.cash.AccountID, "100", nil)
	suite.assertDecimal("100", suite.cachedBalance(suite.cash.AccountID))

	_, err := suite.svc.Income.UpdateIncome(suite.ctx, suite.project.ProjectID, txn.TransactionID, dto.UpdateIncomeRequest{AccountID: strPtr(suite.bank.AccountID)})
	suite.Require().NoError(err)

	suite.assertDecimal("0", suite.cachedBalance(suite.cash.AccountID))
	suite.assertDecimal("350", suite.cachedBalance(suite.bank.AccountID))
}

func (suite *LedgerSuite) TestRebuildBalances_RepairsDriftedCache() {
	suite.income(suite.cash.AccountID, "40", nil)
	drifted := map[string]decimal.Decimal{suite.cash.AccountID: dec("999")}
	suite.Require().NoError(suite.store.UpdateAccountBalances(suite.ctx, drifted, time.Now()))

	resp, err := suite.svc.Account.GetAccountBalance(suite.ctx, suite.project.ProjectID, suite.cash.AccountID)
	suite.Require().NoError(err)
	suite.assertDecimal("40", resp.Balance)
	suite.assertDecimal("999", resp.CachedBalance)

	suite.Require().NoError(suite.svc.Account.RebuildBalances(suite.ctx, suite.project.ProjectID))
	suite.assertDecimal("40", suite.cachedBalance(suite.cash.AccountID))
}

func (suite *LedgerSuite) TestCrossProjectAccountIsNotFound() {
	other, err := suite.svc.Project.CreateProject(suite.ctx, dto.CreateProjectRequest{Name: "Other"})
	suite.Require().NoError(err)

	_, err = suite.svc.Income.CreateIncome(suite.ctx, other.ProjectID, dto.CreateIncomeRequest{
		AccountID:  suite.cash.AccountID,
		CategoryID: salesCategoryID,
		Amount:     dec("10"),
	})
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.assertDecimal("0", suite.cachedBalance(suite.cash.AccountID))
}

func (suite *LedgerSuite) TestInactiveAccountRejectsWrites() {
	suite.Require().NoError(suite.svc.Account.DeactivateAccount(suite.ctx, suite.project.ProjectID, suite.cash.AccountID))

	_, err := suite.svc.Income.CreateIncome(suite.ctx, suite.project.ProjectID, dto.CreateIncomeRequest{
		AccountID:  suite.cash.AccountID,
		CategoryID: salesCategoryID,
		Amount:     dec("10"),
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerSuite) TestCreateIncome_RejectsNonPositiveAmount() {
	_, err := suite.svc.Income.CreateIncome(suite.ctx, suite.project.ProjectID, dto.CreateIncomeRequest{
		AccountID:  suite.cash.AccountID,
		CategoryID: salesCategoryID,
		Amount:     dec("0"),
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerSuite) TestIncomeAndExpense_RejectSubCentAmounts() {
	pid := suite.project.ProjectID
	_, err := suite.svc.Income.CreateIncome(suite.ctx, pid, dto.CreateIncomeRequest{
		AccountID:  suite.cash.AccountID,
		CategoryID: salesCategoryID,
		Amount:     dec("0.004"),
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
	_, err = suite.svc.Expense.CreateExpense(suite.ctx, pid, dto.CreateExpenseRequest{
		AccountID:  suite.cash.AccountID,
		CategoryID: rentCategoryID,
		Amount:     dec("0.004"),
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	txn := suite.income(suite.cash.AccountID, "40", nil)
	_, err = suite.svc.Income.UpdateIncome(suite.ctx, pid, txn.TransactionID, dto.UpdateIncomeRequest{Amount: decPtr("0.004")})
	suite.ErrorIs(err, apperrors.ErrValidation)

	page, err := suite.svc.Income.ListIncome(suite.ctx, pid, dto.ListTransactionsParams{})
	suite.Require().NoError(err)
	suite.Require().Len(page.Transactions, 1)
	suite.assertDecimal("40", page.Transactions[0].Amount)
	suite.assertDecimal("40", suite.cachedBalance(suite.cash.AccountID))
	suite.assertReconciled()
}

func (suite *LedgerSuite) TestCreateExpense_DefaultsToProjectPhase() {
	txn, err := suite.svc.Expense.CreateExpense(suite.ctx, suite.project.ProjectID, dto.CreateExpenseRequest{
		AccountID:  suite.cash.AccountID,
		CategoryID: rentCategoryID,
		Amount:     dec("20"),
	})
	suite.Require().NoError(err)
	suite.Equal(domain.PhaseOperating, txn.Phase)
	suite.True(txn.TransactionDate.Equal(*day(time.March, 15)))
}

func (suite *LedgerSuite) TestListIncome_PagesNewestFirst() {
	for d := 1; d <= 5; d++ {
		suite.income(suite.cash.AccountID, "1", day(time.March, d))
	}
	params := dto.ListTransactionsParams{PeriodQuery: dto.PeriodQuery{Period: "month"}, Limit: 2}

	first, err := suite.svc.Income.ListIncome(suite.ctx, suite.project.ProjectID, params)
	suite.Require().NoError(err)
	suite.Require().Len(first.Transactions, 2)
	suite.Require().NotNil(first.NextToken)
	suite.True(first.Transactions[0].TransactionDate.Equal(*day(time.March, 5)))

	var seen int
	params.NextToken = first.NextToken
	seen += len(first.Transactions)
	for params.NextToken != nil {
		page, err := suite.svc.Income.ListIncome(suite.ctx, suite.project.ProjectID, params)
		suite.Require().NoError(err)
		seen += len(page.Transactions)
		params.NextToken = page.NextToken
	}
	suite.Equal(5, seen)
}
