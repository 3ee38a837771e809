package domain

import "github.com/shopspring/decimal"

// Project is the tenant boundary: every ledger row belongs to exactly one project.
type Project struct {
	ProjectID    string          `json:"projectID"`
	Name         string          `json:"name"`
	NameAlt      string          `json:"nameAlt"` // secondary-language display name
	Phase        Phase           `json:"phase"`
	OwnerCapital decimal.Decimal `json:"ownerCapital"`
	PINHash      string          `json:"-"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}

// HasPIN reports whether access to the project is gated by a PIN.
func (p Project) HasPIN() bool {
	return p.PINHash != ""
}

// ProjectSummary is the dashboard header for a project.
type ProjectSummary struct {
	ProjectID     string          `json:"projectID"`
	TotalBalance  decimal.Decimal `json:"totalBalance"`
	EmployeeCount int             `json:"employeeCount"`
	DebtsToUs     decimal.Decimal `json:"debtsToUs"`
	DebtsByUs     decimal.Decimal `json:"debtsByUs"`
	AccountCount  int             `json:"accountCount"`
}
