package dto

import "time"

// PeriodQuery selects a reporting window and optionally one account.
type PeriodQuery struct {
	Period    string     `form:"period"` // today, week, month, year, custom
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
	AccountID *string    `form:"account_id"`
}
