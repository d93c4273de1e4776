package service

import (
	"github.com/shopspring/decimal"

	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/domain/model"
	"github.com/Pinizov/Credit-Guardian-AI-sub000/pkg/money"
)

// earlyRepaymentBasis is the statutory cap on early-repayment compensation.
const earlyRepaymentBasis = "чл. 29, ал. 3 ЗПК"

var (
	capRateOverOneYear  = decimal.NewFromFloat(0.01)  // >12 months remaining
	capRateUnderOneYear = decimal.NewFromFloat(0.005) // <=12 months remaining
	twelve              = decimal.NewFromInt(12)
	hundred             = decimal.NewFromInt(100)
)

// EarlyRepaymentCompensation is the creditor's maximum lawful claim when the
// borrower repays early.
type EarlyRepaymentCompensation struct {
	Compensation money.Money
	LostInterest money.Money
	LegalCap     money.Money
	CapRatePct   decimal.Decimal
	LegalBasis   string
}

// EarlyRepaymentCalculator computes the compensation a creditor may charge
// for early repayment: the lesser of the interest lost for the remaining
// term and the statutory cap (1% of the remaining principal, 0.5% when a
// year or less remains).
type EarlyRepaymentCalculator struct{}

// NewEarlyRepaymentCalculator returns a new calculator instance.
func NewEarlyRepaymentCalculator() *EarlyRepaymentCalculator {
	return &EarlyRepaymentCalculator{}
}

// Compensation computes the lawful compensation for repaying
// remainingPrincipal with remainingMonths left at annualRatePct interest.
func (c *EarlyRepaymentCalculator) Compensation(
	remainingPrincipal money.Money,
	remainingMonths int,
	annualRatePct decimal.Decimal,
) (EarlyRepaymentCompensation, error) {
	if !remainingPrincipal.IsPositive() {
		return EarlyRepaymentCompensation{}, model.NewValidationError("remaining_principal", "must be positive")
	}
	if remainingMonths <= 0 {
		return EarlyRepaymentCompensation{}, model.NewValidationError("remaining_months", "must be positive")
	}
	if annualRatePct.IsNegative() {
		return EarlyRepaymentCompensation{}, model.NewValidationError("annual_rate", "must not be negative")
	}

	capRate := capRateOverOneYear
	if remainingMonths <= 12 {
		capRate = capRateUnderOneYear
	}

	monthlyRate := annualRatePct.Div(hundred).Div(twelve)
	lostInterest := remainingPrincipal.
		Multiply(monthlyRate).
		Multiply(decimal.NewFromInt(int64(remainingMonths)))
	legalCap := remainingPrincipal.Multiply(capRate)

	compensation := lostInterest
	if legalCap.Amount().LessThan(lostInterest.Amount()) {
		compensation = legalCap
	}

	return EarlyRepaymentCompensation{
		Compensation: compensation,
		LostInterest: lostInterest,
		LegalCap:     legalCap,
		CapRatePct:   capRate.Mul(hundred),
		LegalBasis:   earlyRepaymentBasis,
	}, nil
}
