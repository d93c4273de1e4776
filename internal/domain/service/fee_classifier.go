package service

import (
	"fmt"
	"strings"

	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/domain/model"
	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/domain/valueobject"
	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/rules"
)

// FeeFinding is the classification of one contract fee against the rule
// table. LegalBasis and RuleID are empty for unclassified fees.
type FeeFinding struct {
	Fee        model.Fee
	Status     valueobject.FeeStatus
	LegalBasis string
	RuleID     string
}

type compiledFeeRule struct {
	id      string
	keyword string
	status  valueobject.FeeStatus
	basis   string
}

// FeeClassifier maps fee labels to their legality using an ordered keyword
// table; the first matching rule wins, so more specific rules must precede
// generic ones in the table.
type FeeClassifier struct {
	rules []compiledFeeRule
}

// NewFeeClassifier compiles the fee-rule table, normalizing each keyword the
// same way fee labels are normalized at classification time.
func NewFeeClassifier(rs rules.RuleSet) (*FeeClassifier, error) {
	compiled := make([]compiledFeeRule, 0, len(rs.FeeRules))
	for _, r := range rs.FeeRules {
		status, err := r.FeeStatus()
		if err != nil {
			return nil, fmt.Errorf("fee rule %q: %w", r.ID, err)
		}
		compiled = append(compiled, compiledFeeRule{
			id:      r.ID,
			keyword: NormalizeLabel(r.Keyword),
			status:  status,
			basis:   r.LegalBasis,
		})
	}
	return &FeeClassifier{rules: compiled}, nil
}

// Classify returns one finding per fee, in input order. Fees matching no
// rule are returned as UNCLASSIFIED, never silently dropped or deemed legal.
func (c *FeeClassifier) Classify(fees []model.Fee) ([]FeeFinding, error) {
	if err := model.ValidateFees(fees); err != nil {
		return nil, err
	}

	findings := make([]FeeFinding, 0, len(fees))
	for _, fee := range fees {
		label := NormalizeLabel(fee.Label)

		finding := FeeFinding{Fee: fee, Status: valueobject.FeeStatusUnclassified}
		for _, r := range c.rules {
			if strings.Contains(label, r.keyword) {
				finding.Status = r.status
				finding.LegalBasis = r.basis
				finding.RuleID = r.id
				break
			}
		}
		findings = append(findings, finding)
	}

	return findings, nil
}
