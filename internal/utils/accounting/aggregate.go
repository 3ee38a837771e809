package accounting

import (
	"sort"
	"time"

	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Matches reports whether row belongs to set and passes every non-nil filter field.
func Matches(row domain.LedgerRow, set domain.EntitySet, f domain.LedgerFilter) bool {
	if row.Set != set || row.ProjectID != f.ProjectID {
		return false
	}
	if f.AccountID != nil && row.AccountID != *f.AccountID {
		return false
	}
	if f.Range != nil && !f.Range.Contains(row.Date) {
		return false
	}
	if f.Phase != nil && (set != domain.SetExpense || row.Phase != *f.Phase) {
		return false
	}
	if f.IsDirectCost != nil && (set != domain.SetExpense || row.IsDirectCost != *f.IsDirectCost) {
		return false
	}
	if f.DebtType != nil && row.DebtType != *f.DebtType {
		return false
	}
	if f.Paid != nil && row.Paid != *f.Paid {
		return false
	}
	return true
}

// SumAmount totals the matching rows. No match yields zero.
func SumAmount(rows []domain.LedgerRow, set domain.EntitySet, f domain.LedgerFilter) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		if Matches(r, set, f) {
			total = total.Add(r.Amount)
		}
	}
	return total
}

// GroupByCategory totals the matching rows per category. Only categories with at
// least one matching row appear; ordering is by descending total, then name.
func GroupByCategory(rows []domain.LedgerRow, set domain.EntitySet, f domain.LedgerFilter) []domain.CategoryAmount {
	index := make(map[string]int)
	var out []domain.CategoryAmount
	for _, r := range rows {
		if !Matches(r, set, f) {
			continue
		}
		i, ok := index[r.CategoryID]
		if !ok {
			i = len(out)
			index[r.CategoryID] = i
			out = append(out, domain.CategoryAmount{CategoryID: r.CategoryID, CategoryName: r.CategoryName, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(r.Amount)
	}
	SortCategories(out)
	return out
}

// SortCategories orders by descending total, then name, then id.
func SortCategories(cats []domain.CategoryAmount) {
	sort.SliceStable(cats, func(i, j int) bool {
		if c := cats[i].Total.Cmp(cats[j].Total); c != 0 {
			return c > 0
		}
		if cats[i].CategoryName != cats[j].CategoryName {
			return cats[i].CategoryName < cats[j].CategoryName
		}
		return cats[i].CategoryID < cats[j].CategoryID
	})
}

// MonthlyTotals totals the matching rows per calendar month, ascending. Months
// without a matching row are omitted.
func MonthlyTotals(rows []domain.LedgerRow, set domain.EntitySet, f domain.LedgerFilter) []domain.MonthAmount {
	type key struct {
		y int
		m time.Month
	}
	sums := make(map[key]decimal.Decimal)
	for _, r := range rows {
		if !Matches(r, set, f) {
			continue
		}
		k := key{r.Date.Year(), r.Date.Month()}
		sums[k] = sums[k].Add(r.Amount)
	}
	out := make([]domain.MonthAmount, 0, len(sums))
	for k, v := range sums {
		out = append(out, domain.MonthAmount{Year: k.y, Month: k.m, Total: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}
