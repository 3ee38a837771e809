package memory

import "github.com/SscSPs/project_books/internal/core/domain"

// Lookup rows share their IDs with migrations/000001_init.up.sql.
var (
	seedAccountTypes = []domain.AccountType{
		{AccountTypeID: "7b0d7d2e-0c53-4b8e-9a52-3f3c0a000001", Name: "cash", NameAlt: "نقدي"},
		{AccountTypeID: "7b0d7d2e-0c53-4b8e-9a52-3f3c0a000002", Name: "bank", NameAlt: "بنك"},
		{AccountTypeID: "7b0d7d2e-0c53-4b8e-9a52-3f3c0a000003", Name: "wallet", NameAlt: "محفظة"},
	}
	seedIncomeCategories = []domain.IncomeCategory{
		{CategoryID: "7b0d7d2e-0c53-4b8e-9a52-3f3c0a000101", Name: "sales", NameAlt: "مبيعات", IsActive: true},
		{CategoryID: "7b0d7d2e-0c53-4b8e-9a52-3f3c0a000102", Name: "services", NameAlt: "خدمات", IsActive: true},
		{CategoryID: "7b0d7d2e-0c53-4b8e-9a52-3f3c0a000103", Name: "other", NameAlt: "أخرى", IsActive: true},
	}
	seedExpenseCategories = []domain.ExpenseCategory{
		{CategoryID: "7b0d7d2e-0c53-4b8e-9a52-3f3c0a000201", Name: domain.SalaryCategoryName, NameAlt: "رواتب", IsActive: true},
		{CategoryID: "7b0d7d2e-0c53-4b8e-9a52-3f3c0a000202", Name: "materials", NameAlt: "مواد", IsActive: true},
		{CategoryID: "7b0d7d2e-0c53-4b8e-9a52-3f3c0a000203", Name: "rent", NameAlt: "إيجار", IsActive: true},
		{CategoryID: "7b0d7d2e-0c53-4b8e-9a52-3f3c0a000204", Name: "utilities", NameAlt: "مرافق", IsActive: true},
		{CategoryID: "7b0d7d2e-0c53-4b8e-9a52-3f3c0a000205", Name: "marketing", NameAlt: "تسويق", IsActive: true},
		{CategoryID: "7b0d7d2e-0c53-4b8e-9a52-3f3c0a000206", Name: "other", NameAlt: "أخرى", IsActive: true},
	}
)

func seedLookups(d *dataset) {
	for _, t := range seedAccountTypes {
		d.accountTypes[t.AccountTypeID] = t
	}
	for _, c := range seedIncomeCategories {
		d.incomeCategories[c.CategoryID] = c
	}
	for _, c := range seedExpenseCategories {
		d.expenseCategories[c.CategoryID] = c
	}
}
