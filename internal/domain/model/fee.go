package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fee is an immutable value object for one contract fee as extracted from the
// document. Timing is nil when the contract does not date the fee.
type Fee struct {
	Label  string
	Amount decimal.Decimal
	Timing *time.Time
}

// ValidateFees checks fee invariants: non-empty labels and non-negative amounts.
func ValidateFees(fees []Fee) error {
	for i, f := range fees {
		if f.Label == "" {
			return NewIndexedValidationError("fees", i, "label must not be empty")
		}
		if f.Amount.IsNegative() {
			return NewIndexedValidationError("fees", i, "amount must not be negative")
		}
	}
	return nil
}
