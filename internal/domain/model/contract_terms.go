package model

import (
	"github.com/shopspring/decimal"

	"github.com/Pinizov/Credit-Guardian-AI-sub000/pkg/money"
)

// ---------------------------------------------------------------------------
// ContractTerms aggregate
// ---------------------------------------------------------------------------

// ContractTerms is the immutable, validated input to one analysis run. It is
// produced by the external extraction layer; the engine re-validates every
// structural invariant here and must not assume the extractor did.
type ContractTerms struct {
	principal   decimal.Decimal
	declaredAPR decimal.Decimal
	currency    money.Currency
	cashFlows   []CashFlow
	fees        []Fee
}

// NewContractTerms validates and constructs ContractTerms. Any invariant
// violation is returned as a *ValidationError naming the field and, for
// sequence fields, the offending element index.
func NewContractTerms(
	principal decimal.Decimal,
	declaredAPR decimal.Decimal,
	currencyCode string,
	cashFlows []CashFlow,
	fees []Fee,
) (ContractTerms, error) {
	if !principal.IsPositive() {
		return ContractTerms{}, NewValidationError("principal", "must be positive")
	}
	if declaredAPR.IsNegative() {
		return ContractTerms{}, NewValidationError("declared_apr", "must not be negative")
	}

	currency, err := money.NewCurrency(currencyCode)
	if err != nil {
		return ContractTerms{}, NewValidationError("currency", err.Error())
	}

	if err := ValidateCashFlows(cashFlows); err != nil {
		return ContractTerms{}, err
	}
	if err := ValidateFees(fees); err != nil {
		return ContractTerms{}, err
	}

	return ContractTerms{
		principal:   principal,
		declaredAPR: declaredAPR,
		currency:    currency,
		cashFlows:   append([]CashFlow(nil), cashFlows...),
		fees:        append([]Fee(nil), fees...),
	}, nil
}

// Principal returns the loan principal.
func (t ContractTerms) Principal() decimal.Decimal {
	return t.principal
}

// DeclaredAPR returns the APR the contract declares, as a percentage.
func (t ContractTerms) DeclaredAPR() decimal.Decimal {
	return t.declaredAPR
}

// Currency returns the contract currency.
func (t ContractTerms) Currency() money.Currency {
	return t.currency
}

// CashFlows returns a copy of the ordered cash-flow schedule.
func (t ContractTerms) CashFlows() []CashFlow {
	return append([]CashFlow(nil), t.cashFlows...)
}

// Fees returns a copy of the contract fees.
func (t ContractTerms) Fees() []Fee {
	return append([]Fee(nil), t.fees...)
}
