package model

import (
	"github.com/shopspring/decimal"

	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/domain/valueobject"
	"github.com/Pinizov/Credit-Guardian-AI-sub000/pkg/money"
)

// AnalysisReport is the read-only result of one analysis run. Violations are
// ordered severity-descending, then by discovery order (APR, fees, clauses).
//
// Identical inputs and rule-set version always produce an identical report;
// run metadata (report ID, timestamps) lives on the response DTO, not here.
type AnalysisReport struct {
	CalculatedAPR     decimal.Decimal
	DeclaredAPR       decimal.Decimal
	APRDelta          decimal.Decimal
	Currency          money.Currency
	Violations        []Violation
	RiskScore         int
	RiskLevel         valueobject.RiskLevel
	RuleSetVersion    string
	ClauseScanSkipped bool
}

// TotalFinancialImpact sums the financial impact of every violation.
func (r AnalysisReport) TotalFinancialImpact() money.Money {
	total := money.Zero(r.Currency)
	for _, v := range r.Violations {
		total = total.MustAdd(v.FinancialImpact)
	}
	return total
}
