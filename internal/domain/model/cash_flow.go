package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashFlow is an immutable value object representing one dated flow of the
// credit. Positive amounts are drawdowns (money received by the borrower),
// negative amounts are repayments.
type CashFlow struct {
	Date   time.Time
	Amount decimal.Decimal
}

// IsDrawdown returns true for a positive flow.
func (cf CashFlow) IsDrawdown() bool {
	return cf.Amount.IsPositive()
}

// IsRepayment returns true for a negative flow.
func (cf CashFlow) IsRepayment() bool {
	return cf.Amount.IsNegative()
}

// ValidateCashFlows checks the schedule invariants required before any rate
// computation: at least one drawdown and one repayment, no zero amounts, and
// non-decreasing dates.
func ValidateCashFlows(flows []CashFlow) error {
	if len(flows) < 2 {
		return NewValidationError("cash_flows", "at least one drawdown and one repayment are required")
	}

	var hasDrawdown, hasRepayment bool
	for i, cf := range flows {
		if cf.Amount.IsZero() {
			return NewIndexedValidationError("cash_flows", i, "amount must be non-zero")
		}
		if cf.Date.IsZero() {
			return NewIndexedValidationError("cash_flows", i, "date is required")
		}
		if i > 0 && cf.Date.Before(flows[i-1].Date) {
			return NewIndexedValidationError("cash_flows", i, "dates must be non-decreasing")
		}
		if cf.IsDrawdown() {
			hasDrawdown = true
		} else {
			hasRepayment = true
		}
	}

	if !hasDrawdown {
		return NewValidationError("cash_flows", "no drawdown flow present")
	}
	if !hasRepayment {
		return NewValidationError("cash_flows", "no repayment flow present")
	}

	return nil
}
