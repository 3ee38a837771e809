package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type amountRequest struct {
	Amount  decimal.Decimal `validate:"decimal_gt0"`
	Opening decimal.Decimal `validate:"decimal_gte0"`
	Phase   string          `validate:"omitempty,phase"`
}

func TestDecimalValidators(t *testing.T) {
	v := validator.New()
	RegisterOn(v)

	tests := []struct {
		name    string
		req     amountRequest
		wantErr bool
	}{
		{"positive", amountRequest{Amount: decimal.RequireFromString("0.01")}, false},
		{"sub-cent amount", amountRequest{Amount: decimal.RequireFromString("0.004")}, true},
		{"three decimal places", amountRequest{Amount: decimal.RequireFromString("1.234")}, true},
		{"trailing zeros", amountRequest{Amount: decimal.RequireFromString("1.500")}, false},
		{"zero amount", amountRequest{Amount: decimal.Zero}, true},
		{"negative amount", amountRequest{Amount: decimal.NewFromInt(-1)}, true},
		{"negative opening", amountRequest{Amount: decimal.NewFromInt(1), Opening: decimal.NewFromInt(-1)}, true},
		{"bad phase", amountRequest{Amount: decimal.NewFromInt(1), Phase: "demolition"}, true},
		{"good phase", amountRequest{Amount: decimal.NewFromInt(1), Phase: "operating"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
