package model

import (
	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/domain/valueobject"
	"github.com/Pinizov/Credit-Guardian-AI-sub000/pkg/money"
)

// Violation is one finding in the final report. LegalBasis carries the
// statutory citation the finding rests on; FinancialImpact is the amount the
// finding puts in dispute, zero when no amount is estimable.
type Violation struct {
	Kind            valueobject.ViolationKind
	Description     string
	LegalBasis      string
	Severity        valueobject.Severity
	FinancialImpact money.Money
}
