package services_test

import (
	"time"

	"github.com/SscSPs/project_books/internal/apperrors"
	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/SscSPs/project_books/internal/dto"
)

func (suite *LedgerSuite) TestLoan_CreditsAccountWithoutTouchingProfit() {
	account := suite.newAccount("Loan account", bankTypeID, "0")
	_, err := suite.svc.Loan.CreateLoan(suite.ctx, suite.project.ProjectID, dto.CreateLoanRequest{
		LenderName: "Lender", Amount: dec("500"), AccountID: account.AccountID,
	})
	suite.Require().NoError(err)

	suite.assertDecimal("500", suite.cachedBalance(account.AccountID))

	pl, err := suite.svc.Statements.ProfitAndLoss(suite.ctx, suite.project.ProjectID, thisMonth)
	suite.Require().NoError(err)
	suite.assertDecimal("0", pl.TotalIncome)
	suite.assertDecimal("0", pl.NetProfit)
}

func (suite *LedgerSuite) TestLoan_PaymentsAndClamp() {
	pid := suite.project.ProjectID
	loan, err := suite.svc.Loan.CreateLoan(suite.ctx, pid, dto.CreateLoanRequest{LenderName: "Lender", Amount: dec("300"), AccountID: suite.cash.AccountID})
	suite.Require().NoError(err)

	_, err = suite.svc.Loan.RecordPayment(suite.ctx, pid, loan.LoanID, dto.LoanPaymentRequest{Amount: dec("301")})
	suite.ErrorIs(err, apperrors.ErrValidation)

	updated, err := suite.svc.Loan.RecordPayment(suite.ctx, pid, loan.LoanID, dto.LoanPaymentRequest{Amount: dec("100")})
	suite.Require().NoError(err)
	suite.False(updated.IsPaid)
	suite.assertDecimal("200", updated.RemainingAmount)

	updated, err = suite.svc.Loan.RecordPayment(suite.ctx, pid, loan.LoanID, dto.LoanPaymentRequest{Amount: dec("200")})
	suite.Require().NoError(err)
	suite.True(updated.IsPaid)
	suite.assertDecimal("0", updated.RemainingAmount)
	suite.assertDecimal("0", suite.cachedBalance(suite.cash.AccountID))

	detail, err := suite.svc.Loan.GetLoan(suite.ctx, pid, loan.LoanID)
	suite.Require().NoError(err)
	suite.Len(detail.Payments, 2)
}

func (suite *LedgerSuite) TestLoan_DeleteReversesEveryAccount() {
	pid := suite.project.ProjectID
	loan, err := suite.svc.Loan.CreateLoan(suite.ctx, pid, dto.CreateLoanRequest{LenderName: "Lender", Amount: dec("500"), AccountID: suite.cash.AccountID})
	suite.Require().NoError(err)
	_, err = suite.svc.Loan.RecordPayment(suite.ctx, pid, loan.LoanID, dto.LoanPaymentRequest{Amount: dec("100"), AccountID: strPtr(suite.bank.AccountID)})
	suite.Require().NoError(err)
	suite.assertDecimal("500", suite.cachedBalance(suite.cash.AccountID))
	suite.assertDecimal("150", suite.cachedBalance(suite.bank.AccountID))

	suite.Require().NoError(suite.svc.Loan.DeleteLoan(suite.ctx, pid, loan.LoanID))

	suite.assertDecimal("0", suite.cachedBalance(suite.cash.AccountID))
	suite.assertDecimal("250", suite.cachedBalance(suite.bank.AccountID))
	_, err = suite.svc.Loan.GetLoan(suite.ctx, pid, loan.LoanID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerSuite) TestListLoans_StatusFilterAndTotals() {
	pid := suite.project.ProjectID
	paid, err := suite.svc.Loan.CreateLoan(suite.ctx, pid, dto.CreateLoanRequest{LenderName: "A", Amount: dec("100"), AccountID: suite.cash.AccountID})
	suite.Require().NoError(err)
	_, err = suite.svc.Loan.RecordPayment(suite.ctx, pid, paid.LoanID, dto.LoanPaymentRequest{Amount: dec("100")})
	suite.Require().NoError(err)
	_, err = suite.svc.Loan.CreateLoan(suite.ctx, pid, dto.CreateLoanRequest{LenderName: "B", Amount: dec("400"), AccountID: suite.cash.AccountID})
	suite.Require().NoError(err)

	all, err := suite.svc.Loan.ListLoans(suite.ctx, pid, dto.ListLoansParams{})
	suite.Require().NoError(err)
	suite.Len(all.Loans, 2)
	suite.assertDecimal("500", all.TotalAmount)
	suite.assertDecimal("400", all.TotalRemaining)
	suite.assertDecimal("100", all.TotalPaid)

	unpaid, err := suite.svc.Loan.ListLoans(suite.ctx, pid, dto.ListLoansParams{Status: "unpaid"})
	suite.Require().NoError(err)
	suite.Require().Len(unpaid.Loans, 1)
	suite.Equal("B", unpaid.Loans[0].LenderName)

	_, err = suite.svc.Loan.ListLoans(suite.ctx, pid, dto.ListLoansParams{Status: "partial"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerSuite) TestDebt_PaymentLifecycle() {
	pid := suite.project.ProjectID
	debt, err := suite.svc.Debt.CreateDebt(suite.ctx, pid, dto.CreateDebtRequest{
		DebtType: domain.DebtOwedToUs, PersonName: "Sami", Amount: dec("100"), AccountID: strPtr(suite.cash.AccountID),
	})
	suite.Require().NoError(err)
	suite.Equal(domain.StatusUnpaid, debt.PaymentStatus)
	suite.assertDecimal("-100", suite.cachedBalance(suite.cash.AccountID))

	updated, err := suite.svc.Debt.RecordPayment(suite.ctx, pid, debt.DebtID, dto.DebtPaymentRequest{Amount: dec("30")})
	suite.Require().NoError(err)
	suite.Equal(domain.StatusPartial, updated.PaymentStatus)
	suite.assertDecimal("-70", suite.cachedBalance(suite.cash.AccountID))

	_, err = suite.svc.Debt.RecordPayment(suite.ctx, pid, debt.DebtID, dto.DebtPaymentRequest{Amount: dec("70.01")})
	suite.ErrorIs(err, apperrors.ErrValidation)
	detail, err := suite.svc.Debt.GetDebt(suite.ctx, pid, debt.DebtID)
	suite.Require().NoError(err)
	suite.assertDecimal("70", detail.Debt.RemainingAmount)
	suite.Len(detail.Payments, 1)

	updated, err = suite.svc.Debt.RecordPayment(suite.ctx, pid, debt.DebtID, dto.DebtPaymentRequest{Amount: dec("70")})
	suite.Require().NoError(err)
	suite.Equal(domain.StatusPaid, updated.PaymentStatus)
	suite.True(updated.IsPaid)
	suite.assertDecimal("0", suite.cachedBalance(suite.cash.AccountID))
	suite.assertReconciled()
}

func (suite *LedgerSuite) TestDebt_WithoutAccountMovesNoCash() {
	pid := suite.project.ProjectID
	debt, err := suite.svc.Debt.CreateDebt(suite.ctx, pid, dto.CreateDebtRequest{DebtType: domain.DebtOwedByUs, PersonName: "Landlord", Amount: dec("60")})
	suite.Require().NoError(err)
	_, err = suite.svc.Debt.RecordPayment(suite.ctx, pid, debt.DebtID, dto.DebtPaymentRequest{Amount: dec("10")})
	suite.Require().NoError(err)

	suite.assertDecimal("0", suite.cachedBalance(suite.cash.AccountID))
	suite.assertDecimal("250", suite.cachedBalance(suite.bank.AccountID))
}

func (suite *LedgerSuite) TestDebt_DeleteReconcilesDebtAndPaymentAccounts() {
	pid := suite.project.ProjectID
	debt, err := suite.svc.Debt.CreateDebt(suite.ctx, pid, dto.CreateDebtRequest{
		DebtType: domain.DebtOwedByUs, PersonName: "Supplier", Amount: dec("90"), AccountID: strPtr(suite.cash.AccountID),
	})
	suite.Require().NoError(err)
	_, err = suite.svc.Debt.RecordPayment(suite.ctx, pid, debt.DebtID, dto.DebtPaymentRequest{Amount: dec("40"), AccountID: strPtr(suite.bank.AccountID)})
	suite.Require().NoError(err)
	suite.assertDecimal("90", suite.cachedBalance(suite.cash.AccountID))
	suite.assertDecimal("210", suite.cachedBalance(suite.bank.AccountID))

	suite.Require().NoError(suite.svc.Debt.DeleteDebt(suite.ctx, pid, debt.DebtID))
	suite.assertDecimal("0", suite.cachedBalance(suite.cash.AccountID))
	suite.assertDecimal("250", suite.cachedBalance(suite.bank.AccountID))
}

func (suite *LedgerSuite) TestListDebts_TotalsAndFilters() {
	pid := suite.project.ProjectID
	create := func(t domain.DebtType, amount string) *domain.Debt {
		d, err := suite.svc.Debt.CreateDebt(suite.ctx, pid, dto.CreateDebtRequest{DebtType: t, PersonName: "p", Amount: dec(amount)})
		suite.Require().NoError(err)
		return d
	}
	create(domain.DebtOwedToUs, "50")
	partial := create(domain.DebtOwedToUs, "30")
	paid := create(domain.DebtOwedByUs, "20")
	create(domain.DebtOwedByUs, "15")
	_, err := suite.svc.Debt.RecordPayment(suite.ctx, pid, partial.DebtID, dto.DebtPaymentRequest{Amount: dec("10")})
	suite.Require().NoError(err)
	_, err = suite.svc.Debt.RecordPayment(suite.ctx, pid, paid.DebtID, dto.DebtPaymentRequest{Amount: dec("20")})
	suite.Require().NoError(err)

	all, err := suite.svc.Debt.ListDebts(suite.ctx, pid, dto.ListDebtsParams{})
	suite.Require().NoError(err)
	suite.Len(all.Debts, 4)
	suite.assertDecimal("70", all.TotalOwedToUs)
	suite.assertDecimal("15", all.TotalOwedByUs)

	partials, err := suite.svc.Debt.ListDebts(suite.ctx, pid, dto.ListDebtsParams{Status: "partial"})
	suite.Require().NoError(err)
	suite.Require().Len(partials.Debts, 1)
	suite.Equal(partial.DebtID, partials.Debts[0].DebtID)

	byUs, err := suite.svc.Debt.ListDebts(suite.ctx, pid, dto.ListDebtsParams{Type: string(domain.DebtOwedByUs)})
	suite.Require().NoError(err)
	suite.Len(byUs.Debts, 2)

	_, err = suite.svc.Debt.ListDebts(suite.ctx, pid, dto.ListDebtsParams{Type: "sideways"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerSuite) TestDebt_UpcomingAndOverdue() {
	pid := suite.project.ProjectID
	for _, d := range []struct {
		person   string
		debtType domain.DebtType
		due      *time.Time
	}{
		{"in five days", domain.DebtOwedByUs, day(time.March, 20)},
		{"tomorrow", domain.DebtOwedByUs, day(time.March, 16)},
		{"in ten days", domain.DebtOwedByUs, day(time.March, 25)},
		{"receivable", domain.DebtOwedToUs, day(time.March, 17)},
		{"late", domain.DebtOwedToUs, day(time.March, 1)},
		{"undated", domain.DebtOwedByUs, nil},
	} {
		_, err := suite.svc.Debt.CreateDebt(suite.ctx, pid, dto.CreateDebtRequest{DebtType: d.debtType, PersonName: d.person, Amount: dec("10"), DueDate: d.due})
		suite.Require().NoError(err)
	}

	upcoming, err := suite.svc.Debt.ListUpcoming(suite.ctx, pid, 0)
	suite.Require().NoError(err)
	suite.Require().Len(upcoming, 2)
	suite.Equal("tomorrow", upcoming[0].PersonName)
	suite.Equal("in five days", upcoming[1].PersonName)

	wider, err := suite.svc.Debt.ListUpcoming(suite.ctx, pid, 10)
	suite.Require().NoError(err)
	suite.Len(wider, 3)

	overdue, err := suite.svc.Debt.ListOverdue(suite.ctx, pid)
	suite.Require().NoError(err)
	suite.Require().Len(overdue, 1)
	suite.Equal("late", overdue[0].PersonName)
}

func (suite *LedgerSuite) TestDebt_UpdateKeepsAmounts() {
	pid := suite.project.ProjectID
	debt, err := suite.svc.Debt.CreateDebt(suite.ctx, pid, dto.CreateDebtRequest{DebtType: domain.DebtOwedToUs, PersonName: "Old", Amount: dec("10")})
	suite.Require().NoError(err)

	updated, err := suite.svc.Debt.UpdateDebt(suite.ctx, pid, debt.DebtID, dto.UpdateDebtRequest{PersonName: strPtr("New"), DueDate: day(time.April, 1)})
	suite.Require().NoError(err)
	suite.Equal("New", updated.PersonName)
	suite.True(updated.DueDate.Equal(*day(time.April, 1)))
	suite.assertDecimal("10", updated.OriginalAmount)
}

func (suite *LedgerSuite) TestLoanAndDebt_RejectSubCentAmounts() {
	pid := suite.project.ProjectID
	_, err := suite.svc.Loan.CreateLoan(suite.ctx, pid, dto.CreateLoanRequest{LenderName: "Lender", Amount: dec("0.004"), AccountID: suite.cash.AccountID})
	suite.ErrorIs(err, apperrors.ErrValidation)
	_, err = suite.svc.Debt.CreateDebt(suite.ctx, pid, dto.CreateDebtRequest{
		DebtType: domain.DebtOwedToUs, PersonName: "Client", Amount: dec("0.004"), AccountID: strPtr(suite.cash.AccountID),
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	loans, err := suite.svc.Loan.ListLoans(suite.ctx, pid, dto.ListLoansParams{})
	suite.Require().NoError(err)
	suite.Empty(loans.Loans)
	debts, err := suite.svc.Debt.ListDebts(suite.ctx, pid, dto.ListDebtsParams{})
	suite.Require().NoError(err)
	suite.Empty(debts.Debts)
	suite.assertDecimal("0", suite.cachedBalance(suite.cash.AccountID))
}
