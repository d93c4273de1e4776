package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/domain/model"
	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/domain/valueobject"
	"github.com/Pinizov/Credit-Guardian-AI-sub000/pkg/money"
)

// ---------------------------------------------------------------------------
// ComplianceAggregator – assembles the final report
// ---------------------------------------------------------------------------

// Default APR-reconciliation thresholds, in percentage points.
var (
	DefaultMaterialityPP = decimal.NewFromInt(1)
	DefaultHighDeltaPP   = decimal.NewFromInt(2)
	DefaultCriticalPP    = decimal.NewFromInt(5)
)

// aprMismatchBasis is the statutory citation attached to a declared APR
// that does not match the computed one.
const aprMismatchBasis = "чл. 10а ЗПК"

// SeverityPoints holds the risk-score contribution of one violation per
// severity.
type SeverityPoints struct {
	Low      int
	Medium   int
	High     int
	Critical int
}

// DefaultSeverityPoints returns the default weights.
func DefaultSeverityPoints() SeverityPoints {
	return SeverityPoints{
		Low:      valueobject.SeverityLow.DefaultPoints(),
		Medium:   valueobject.SeverityMedium.DefaultPoints(),
		High:     valueobject.SeverityHigh.DefaultPoints(),
		Critical: valueobject.SeverityCritical.DefaultPoints(),
	}
}

func (p SeverityPoints) points(s valueobject.Severity) int {
	switch {
	case s.Equal(valueobject.SeverityCritical):
		return p.Critical
	case s.Equal(valueobject.SeverityHigh):
		return p.High
	case s.Equal(valueobject.SeverityMedium):
		return p.Medium
	case s.Equal(valueobject.SeverityLow):
		return p.Low
	default:
		return 0
	}
}

// AggregatorConfig holds the tunable constants of report assembly. All
// fields have defaults; the zero value is usable via NewComplianceAggregator.
type AggregatorConfig struct {
	// MaterialityPP is the minimum APR delta reported as a violation.
	MaterialityPP decimal.Decimal
	// HighDeltaPP and CriticalDeltaPP raise the mismatch severity.
	HighDeltaPP     decimal.Decimal
	CriticalDeltaPP decimal.Decimal
	Points          SeverityPoints
	Bands           valueobject.RiskBands
}

// DefaultAggregatorConfig returns the stock configuration: 1pp materiality,
// 2pp high, 5pp critical, 2/8/20/40 points, 20/50/80 bands.
func DefaultAggregatorConfig() AggregatorConfig {
	return AggregatorConfig{
		MaterialityPP:   DefaultMaterialityPP,
		HighDeltaPP:     DefaultHighDeltaPP,
		CriticalDeltaPP: DefaultCriticalPP,
		Points:          DefaultSeverityPoints(),
		Bands:           valueobject.DefaultRiskBands(),
	}
}

// AggregationInput carries the upstream findings into report assembly.
type AggregationInput struct {
	DeclaredAPR       decimal.Decimal
	CalculatedAPR     decimal.Decimal
	Currency          money.Currency
	FeeFindings       []FeeFinding
	ClauseFindings    []model.DetectedClause
	ClauseScanSkipped bool
	RuleSetVersion    string
}

// ComplianceAggregator reconciles the component findings into one
// AnalysisReport. Aggregation is pure and cannot fail on well-formed input;
// upstream failures surface before it runs.
type ComplianceAggregator struct {
	cfg AggregatorConfig
}

// NewComplianceAggregator creates an aggregator, filling zero config fields
// with defaults.
func NewComplianceAggregator(cfg AggregatorConfig) *ComplianceAggregator {
	def := DefaultAggregatorConfig()
	if cfg.MaterialityPP.IsZero() {
		cfg.MaterialityPP = def.MaterialityPP
	}
	if cfg.HighDeltaPP.IsZero() {
		cfg.HighDeltaPP = def.HighDeltaPP
	}
	if cfg.CriticalDeltaPP.IsZero() {
		cfg.CriticalDeltaPP = def.CriticalDeltaPP
	}
	if cfg.Points == (SeverityPoints{}) {
		cfg.Points = def.Points
	}
	if cfg.Bands == (valueobject.RiskBands{}) {
		cfg.Bands = def.Bands
	}
	return &ComplianceAggregator{cfg: cfg}
}

// Aggregate builds the report: APR reconciliation, fee and clause
// violations, deduplication by (kind, legal basis), deterministic ordering,
// and the weighted risk score.
func (a *ComplianceAggregator) Aggregate(in AggregationInput) model.AnalysisReport {
	delta := in.CalculatedAPR.Sub(in.DeclaredAPR).Abs()

	var violations []model.Violation

	// 1. APR reconciliation.
	if delta.GreaterThan(a.cfg.MaterialityPP) {
		violations = append(violations, a.aprMismatchViolation(in, delta))
	}

	// 2. Fee findings, in discovery order.
	for _, f := range in.FeeFindings {
		switch {
		case f.Status.Equal(valueobject.FeeStatusIllegal):
			violations = append(violations, model.Violation{
				Kind:            valueobject.ViolationKindIllegalFee,
				Description:     fmt.Sprintf("недопустима такса %q (%s)", f.Fee.Label, money.New(f.Fee.Amount, in.Currency)),
				LegalBasis:      f.LegalBasis,
				Severity:        valueobject.SeverityHigh,
				FinancialImpact: money.New(f.Fee.Amount, in.Currency),
			})
		case f.Status.Equal(valueobject.FeeStatusUnclassified):
			violations = append(violations, model.Violation{
				Kind:            valueobject.ViolationKindUnclassifiedFee,
				Description:     fmt.Sprintf("непозната такса %q (%s): подлежи на ръчен преглед", f.Fee.Label, money.New(f.Fee.Amount, in.Currency)),
				LegalBasis:      "",
				Severity:        valueobject.SeverityMedium,
				FinancialImpact: money.Zero(in.Currency),
			})
		}
	}

	// 3. Clause findings, already ordered by location.
	for _, c := range in.ClauseFindings {
		violations = append(violations, model.Violation{
			Kind:            valueobject.ViolationKindUnfairClause,
			Description:     fmt.Sprintf("%s: „%s“", c.PatternID, c.Snippet),
			LegalBasis:      c.LegalBasis,
			Severity:        c.Severity,
			FinancialImpact: money.New(c.EstimatedImpact, in.Currency),
		})
	}

	// 4. Deduplicate on (kind, legal basis).
	violations = mergeViolations(violations)

	// 5. Severity-descending, discovery order within equal severity.
	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].Severity.Rank() > violations[j].Severity.Rank()
	})

	// 6. Weighted risk score, capped at 100.
	score := 0
	for _, v := range violations {
		score += a.cfg.Points.points(v.Severity)
	}
	if score > 100 {
		score = 100
	}

	return model.AnalysisReport{
		CalculatedAPR:     in.CalculatedAPR,
		DeclaredAPR:       in.DeclaredAPR,
		APRDelta:          delta,
		Currency:          in.Currency,
		Violations:        violations,
		RiskScore:         score,
		RiskLevel:         valueobject.RiskLevelFromScore(score, a.cfg.Bands),
		RuleSetVersion:    in.RuleSetVersion,
		ClauseScanSkipped: in.ClauseScanSkipped,
	}
}

func (a *ComplianceAggregator) aprMismatchViolation(in AggregationInput, delta decimal.Decimal) model.Violation {
	severity := valueobject.SeverityMedium
	switch {
	case delta.GreaterThan(a.cfg.CriticalDeltaPP):
		severity = valueobject.SeverityCritical
	case delta.GreaterThan(a.cfg.HighDeltaPP):
		severity = valueobject.SeverityHigh
	}

	return model.Violation{
		Kind: valueobject.ViolationKindAPRMismatch,
		Description: fmt.Sprintf("деклариран ГПР %s%% не съответства на изчисления %s%% (разлика %s пр.п.)",
			in.DeclaredAPR.StringFixed(2), in.CalculatedAPR.StringFixed(2), delta.StringFixed(2)),
		LegalBasis:      aprMismatchBasis,
		Severity:        severity,
		FinancialImpact: money.Zero(in.Currency),
	}
}

// mergeViolations folds violations sharing (kind, legal basis) into one:
// impacts are summed, descriptions joined, the highest severity kept.
// Ordering of first occurrences is preserved.
func mergeViolations(violations []model.Violation) []model.Violation {
	type key struct {
		kind  string
		basis string
	}

	merged := make([]model.Violation, 0, len(violations))
	index := make(map[key]int, len(violations))

	for _, v := range violations {
		k := key{kind: v.Kind.String(), basis: v.LegalBasis}
		i, ok := index[k]
		if !ok {
			index[k] = len(merged)
			merged = append(merged, v)
			continue
		}

		merged[i].FinancialImpact = merged[i].FinancialImpact.MustAdd(v.FinancialImpact)
		merged[i].Description = strings.Join([]string{merged[i].Description, v.Description}, "; ")
		if v.Severity.Rank() > merged[i].Severity.Rank() {
			merged[i].Severity = v.Severity
		}
	}

	return merged
}
