package accounting_test

import (
	"testing"
	"time"

	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/SscSPs/project_books/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleRows() []domain.LedgerRow {
	return []domain.LedgerRow{
		{Set: domain.SetIncome, ProjectID: "p1", AccountID: "a1", Date: day(2026, 1, 5), CategoryID: "c-sales", CategoryName: "Sales", Amount: dec("200")},
		{Set: domain.SetIncome, ProjectID: "p1", AccountID: "a2", Date: day(2026, 3, 9), CategoryID: "c-rent", CategoryName: "Rent", Amount: dec("80")},
		{Set: domain.SetIncome, ProjectID: "p2", AccountID: "a9", Date: day(2026, 1, 5), CategoryID: "c-sales", CategoryName: "Sales", Amount: dec("999")},
		{Set: domain.SetExpense, ProjectID: "p1", AccountID: "a1", Date: day(2026, 1, 7), CategoryID: "c-mat", CategoryName: "Materials", Phase: domain.PhaseBuilding, Amount: dec("100")},
		{Set: domain.SetExpense, ProjectID: "p1", AccountID: "a1", Date: day(2026, 1, 8), CategoryID: "c-mat", CategoryName: "Materials", Phase: domain.PhaseOperating, IsDirectCost: true, Amount: dec("50")},
		{Set: domain.SetExpense, ProjectID: "p1", AccountID: "a1", Date: day(2026, 3, 1), CategoryID: "c-util", CategoryName: "Utilities", Phase: domain.PhaseOperating, Amount: dec("30")},
		{Set: domain.SetDebtOutstanding, ProjectID: "p1", DebtType: domain.DebtOwedByUs, Amount: dec("70")},
		{Set: domain.SetDebtOutstanding, ProjectID: "p1", DebtType: domain.DebtOwedToUs, Paid: true, Amount: dec("0")},
	}
}

func TestSumAmount(t *testing.T) {
	rows := sampleRows()
	operating := domain.PhaseOperating
	direct := true
	a2 := "a2"
	byUs := domain.DebtOwedByUs
	jan := domain.DateRange{Start: day(2026, 1, 1), End: day(2026, 1, 31)}

	tests := []struct {
		name string
		set  domain.EntitySet
		f    domain.LedgerFilter
		want string
	}{
		{"project scoped", domain.SetIncome, domain.LedgerFilter{ProjectID: "p1"}, "280"},
		{"account filter", domain.SetIncome, domain.LedgerFilter{ProjectID: "p1", AccountID: &a2}, "80"},
		{"range inclusive", domain.SetExpense, domain.LedgerFilter{ProjectID: "p1", Range: &jan}, "150"},
		{"phase", domain.SetExpense, domain.LedgerFilter{ProjectID: "p1", Phase: &operating}, "80"},
		{"direct cost", domain.SetExpense, domain.LedgerFilter{ProjectID: "p1", Phase: &operating, IsDirectCost: &direct}, "50"},
		{"phase filter never matches income", domain.SetIncome, domain.LedgerFilter{ProjectID: "p1", Phase: &operating}, "0"},
		{"debt type", domain.SetDebtOutstanding, domain.LedgerFilter{ProjectID: "p1", DebtType: &byUs}, "70"},
		{"no match is zero", domain.SetLoanReceived, domain.LedgerFilter{ProjectID: "p1"}, "0"},
		{"unknown project is zero", domain.SetIncome, domain.LedgerFilter{ProjectID: "nope"}, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.SumAmount(rows, tt.set, tt.f)
			assert.True(t, dec(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestGroupByCategory_OmitsEmptyAndOrdersByTotal(t *testing.T) {
	rows := sampleRows()
	mar := domain.DateRange{Start: day(2026, 3, 1), End: day(2026, 3, 31)}

	got := accounting.GroupByCategory(rows, domain.SetExpense, domain.LedgerFilter{ProjectID: "p1"})
	require.Len(t, got, 2)
	assert.Equal(t, "Materials", got[0].CategoryName)
	assert.True(t, dec("150").Equal(got[0].Total))
	assert.Equal(t, "Utilities", got[1].CategoryName)

	got = accounting.GroupByCategory(rows, domain.SetExpense, domain.LedgerFilter{ProjectID: "p1", Range: &mar})
	require.Len(t, got, 1, "categories without rows in range must not appear")
	assert.Equal(t, "c-util", got[0].CategoryID)

	assert.Empty(t, accounting.GroupByCategory(rows, domain.SetLoanRepaid, domain.LedgerFilter{ProjectID: "p1"}))
}

func TestGroupByCategory_TiesBrokenByName(t *testing.T) {
	rows := []domain.LedgerRow{
		{Set: domain.SetIncome, ProjectID: "p", CategoryID: "2", CategoryName: "Beta", Amount: dec("10")},
		{Set: domain.SetIncome, ProjectID: "p", CategoryID: "1", CategoryName: "Alpha", Amount: dec("10")},
	}
	got := accounting.GroupByCategory(rows, domain.SetIncome, domain.LedgerFilter{ProjectID: "p"})
	require.Len(t, got, 2)
	assert.Equal(t, "Alpha", got[0].CategoryName)
	assert.Equal(t, "Beta", got[1].CategoryName)
}

func TestMonthlyTotals(t *testing.T) {
	got := accounting.MonthlyTotals(sampleRows(), domain.SetExpense, domain.LedgerFilter{ProjectID: "p1"})
	require.Len(t, got, 2, "february has no rows and is omitted")
	assert.Equal(t, time.January, got[0].Month)
	assert.True(t, dec("150").Equal(got[0].Total))
	assert.Equal(t, time.March, got[1].Month)
	assert.True(t, dec("30").Equal(got[1].Total))
}
