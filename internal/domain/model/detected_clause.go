package model

import (
	"github.com/shopspring/decimal"

	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/domain/valueobject"
)

// DetectedClause is one located match of an unfair-clause pattern. Snippet is
// the verbatim contract text around the match, preserved for legal citation;
// Location is the byte offset of the match in the original text.
// EstimatedImpact is zero unless the pattern declares an estimable amount.
type DetectedClause struct {
	PatternID       string
	Snippet         string
	Location        int
	LegalBasis      string
	Severity        valueobject.Severity
	EstimatedImpact decimal.Decimal
}
