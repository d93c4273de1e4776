package rules

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Versioned rule tables
// ---------------------------------------------------------------------------
//
// A RuleSet is loaded once at process start and never mutated; every report
// records the version it was produced against so historical findings stay
// reproducible.

// FeeRule matches a normalized fee label by keyword containment. Rules are
// ordered most-specific first; the first match wins.
type FeeRule struct {
	ID         string `yaml:"id" validate:"required"`
	Keyword    string `yaml:"keyword" validate:"required"`
	Status     string `yaml:"status" validate:"required,oneof=LEGAL ILLEGAL"`
	LegalBasis string `yaml:"legal_basis" validate:"required"`
	Note       string `yaml:"note,omitempty"`
}

// ClausePattern is one unfair-clause matcher. Expr is a regular expression
// written against case- and diacritic-folded text (lowercase, marks removed);
// the detector maps matches back to the original bytes.
type ClausePattern struct {
	ID         string `yaml:"id" validate:"required"`
	Name       string `yaml:"name" validate:"required"`
	Expr       string `yaml:"expr" validate:"required"`
	LegalBasis string `yaml:"legal_basis" validate:"required"`
	Severity   string `yaml:"severity" validate:"required,oneof=LOW MEDIUM HIGH CRITICAL"`
	// EstimatedImpact is an optional decimal amount the clause puts in
	// dispute, in contract currency. Empty means no estimable impact.
	EstimatedImpact string `yaml:"estimated_impact,omitempty"`
}

// RuleSet bundles both tables under a single version.
type RuleSet struct {
	Version        string          `yaml:"version" validate:"required"`
	FeeRules       []FeeRule       `yaml:"fee_rules" validate:"required,min=1,dive"`
	ClausePatterns []ClausePattern `yaml:"clause_patterns" validate:"required,min=1,dive"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks structural constraints plus the parts struct tags cannot
// express: unique rule IDs, compilable pattern expressions, and parseable
// impact amounts.
func (rs RuleSet) Validate() error {
	if err := validate.Struct(rs); err != nil {
		return fmt.Errorf("rule set %q: %w", rs.Version, err)
	}

	seen := make(map[string]bool, len(rs.FeeRules)+len(rs.ClausePatterns))
	for _, r := range rs.FeeRules {
		if seen[r.ID] {
			return fmt.Errorf("rule set %q: duplicate rule id %q", rs.Version, r.ID)
		}
		seen[r.ID] = true
	}

	for _, p := range rs.ClausePatterns {
		if seen[p.ID] {
			return fmt.Errorf("rule set %q: duplicate rule id %q", rs.Version, p.ID)
		}
		seen[p.ID] = true

		if _, err := regexp.Compile(p.Expr); err != nil {
			return fmt.Errorf("rule set %q: pattern %q: %w", rs.Version, p.ID, err)
		}
		if _, err := p.Impact(); err != nil {
			return fmt.Errorf("rule set %q: pattern %q: %w", rs.Version, p.ID, err)
		}
	}

	return nil
}

// FeeStatus parses the rule's status into its value object.
func (r FeeRule) FeeStatus() (valueobject.FeeStatus, error) {
	return valueobject.FeeStatusFromString(r.Status)
}

// ClauseSeverity parses the pattern's severity into its value object.
func (p ClausePattern) ClauseSeverity() (valueobject.Severity, error) {
	return valueobject.NewSeverity(p.Severity)
}

// Impact parses the optional estimated impact; zero when unset.
func (p ClausePattern) Impact() (decimal.Decimal, error) {
	if p.EstimatedImpact == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(p.EstimatedImpact)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid estimated_impact %q: %w", p.EstimatedImpact, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("estimated_impact %q must not be negative", p.EstimatedImpact)
	}
	return d, nil
}
