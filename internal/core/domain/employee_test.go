package domain_test

import (
	"testing"

	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestSalaryPayment_CalculateNetSalary(t *testing.T) {
	p := domain.SalaryPayment{
		BaseSalary: dec("1000"),
		Deductions: dec("150.50"),
		Bonus:      dec("100"),
		Commission: dec("25.255"),
	}
	assert.Equal(t, "974.76", p.CalculateNetSalary().StringFixed(2))
}
