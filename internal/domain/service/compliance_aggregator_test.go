package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/domain/model"
	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/domain/service"
	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/domain/valueobject"
	"github.com/Pinizov/Credit-Guardian-AI-sub000/pkg/money"
)

func defaultAggregator() *service.ComplianceAggregator {
	return service.NewComplianceAggregator(service.DefaultAggregatorConfig())
}

func aprInput(declared, calculated float64) service.AggregationInput {
	return service.AggregationInput{
		DeclaredAPR:    decimal.NewFromFloat(declared),
		CalculatedAPR:  decimal.NewFromFloat(calculated),
		Currency:       money.BGN,
		RuleSetVersion: "test",
	}
}

func TestAggregate_APRMismatch_LargeDeltaIsCritical(t *testing.T) {
	// Declared 40%, calculated 55%: 15pp is beyond the 5pp critical bound.
	report := defaultAggregator().Aggregate(aprInput(40, 55))

	require.Len(t, report.Violations, 1)
	v := report.Violations[0]
	assert.True(t, v.Kind.Equal(valueobject.ViolationKindAPRMismatch))
	assert.True(t, v.Severity.Equal(valueobject.SeverityCritical))
	assert.True(t, report.APRDelta.Equal(decimal.NewFromInt(15)))
}

func TestAggregate_APRMismatch_SeverityBands(t *testing.T) {
	tests := []struct {
		name       string
		delta      float64
		violations int
		severity   valueobject.Severity
	}{
		{name: "below materiality", delta: 0.5, violations: 0},
		{name: "exactly at materiality", delta: 1.0, violations: 0},
		{name: "just above materiality", delta: 1.2, violations: 1, severity: valueobject.SeverityMedium},
		{name: "exactly 2pp stays medium", delta: 2.0, violations: 1, severity: valueobject.SeverityMedium},
		{name: "above 2pp is high", delta: 2.5, violations: 1, severity: valueobject.SeverityHigh},
		{name: "exactly 5pp stays high", delta: 5.0, violations: 1, severity: valueobject.SeverityHigh},
		{name: "above 5pp is critical", delta: 5.5, violations: 1, severity: valueobject.SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := defaultAggregator().Aggregate(aprInput(20, 20+tt.delta))

			require.Len(t, report.Violations, tt.violations)
			if tt.violations > 0 {
				assert.True(t, report.Violations[0].Severity.Equal(tt.severity),
					"delta %v: want %s, got %s", tt.delta, tt.severity, report.Violations[0].Severity)
			}
		})
	}
}

func TestAggregate_IllegalFeeBecomesViolation(t *testing.T) {
	in := aprInput(10, 10)
	in.FeeFindings = []service.FeeFinding{
		{
			Fee:        model.Fee{Label: "такса за бързо разглеждане", Amount: decimal.NewFromInt(120)},
			Status:     valueobject.FeeStatusIllegal,
			LegalBasis: "чл. 10а, ал. 2 ЗПК",
			RuleID:     "fee-fast-review",
		},
	}

	report := defaultAggregator().Aggregate(in)

	require.Len(t, report.Violations, 1)
	v := report.Violations[0]
	assert.True(t, v.Kind.Equal(valueobject.ViolationKindIllegalFee))
	assert.Equal(t, "чл. 10а, ал. 2 ЗПК", v.LegalBasis)
	assert.True(t, v.FinancialImpact.Equal(money.New(decimal.NewFromInt(120), money.BGN)))
}

func TestAggregate_UnclassifiedFeeIsAdvisory(t *testing.T) {
	in := aprInput(10, 10)
	in.FeeFindings = []service.FeeFinding{
		{
			Fee:    model.Fee{Label: "такса абонамент", Amount: decimal.NewFromInt(99)},
			Status: valueobject.FeeStatusUnclassified,
		},
	}

	report := defaultAggregator().Aggregate(in)

	require.Len(t, report.Violations, 1)
	v := report.Violations[0]
	assert.True(t, v.Kind.Equal(valueobject.ViolationKindUnclassifiedFee))
	assert.False(t, v.Kind.Equal(valueobject.ViolationKindIllegalFee))
	assert.True(t, v.Severity.Equal(valueobject.SeverityMedium))
	assert.True(t, v.FinancialImpact.IsZero())
}

func TestAggregate_LegalFeeProducesNoViolation(t *testing.T) {
	in := aprInput(10, 10)
	in.FeeFindings = []service.FeeFinding{
		{
			Fee:        model.Fee{Label: "застрахователна премия", Amount: decimal.NewFromInt(200)},
			Status:     valueobject.FeeStatusLegal,
			LegalBasis: "чл. 19, ал. 3, т. 2 ЗПК",
		},
	}

	report := defaultAggregator().Aggregate(in)
	assert.Empty(t, report.Violations)
	assert.Equal(t, 0, report.RiskScore)
	assert.True(t, report.RiskLevel.Equal(valueobject.RiskLevelLow))
}

func TestAggregate_ClauseFindingInheritsSeverityAndBasis(t *testing.T) {
	in := aprInput(10, 10)
	in.ClauseFindings = []model.DetectedClause{
		{
			PatternID:  "clause-early-repayment-ban",
			Snippet:    "предсрочното погасяване не се допуска",
			Location:   100,
			LegalBasis: "чл. 29 ЗПК",
			Severity:   valueobject.SeverityCritical,
		},
	}

	report := defaultAggregator().Aggregate(in)

	require.Len(t, report.Violations, 1)
	v := report.Violations[0]
	assert.True(t, v.Kind.Equal(valueobject.ViolationKindUnfairClause))
	assert.True(t, v.Severity.Equal(valueobject.SeverityCritical))
	assert.Equal(t, "чл. 29 ЗПК", v.LegalBasis)
	assert.Contains(t, v.Description, "предсрочното погасяване не се допуска")
}

func TestAggregate_DeduplicatesSameKindAndBasis(t *testing.T) {
	in := aprInput(10, 10)
	in.ClauseFindings = []model.DetectedClause{
		{
			PatternID:       "clause-a",
			Snippet:         "първа клауза",
			LegalBasis:      "чл. 143 ЗЗП",
			Severity:        valueobject.SeverityMedium,
			EstimatedImpact: decimal.NewFromInt(100),
		},
		{
			PatternID:       "clause-b",
			Snippet:         "втора клауза",
			LegalBasis:      "чл. 143 ЗЗП",
			Severity:        valueobject.SeverityHigh,
			EstimatedImpact: decimal.NewFromInt(50),
		},
	}

	report := defaultAggregator().Aggregate(in)

	require.Len(t, report.Violations, 1)
	v := report.Violations[0]
	assert.True(t, v.FinancialImpact.Equal(money.New(decimal.NewFromInt(150), money.BGN)))
	assert.Contains(t, v.Description, "първа клауза")
	assert.Contains(t, v.Description, "втора клауза")
	assert.Contains(t, v.Description, "; ")
	// Merged violations keep the highest severity of the group.
	assert.True(t, v.Severity.Equal(valueobject.SeverityHigh))
}

func TestAggregate_OrderingSeverityDescThenDiscovery(t *testing.T) {
	in := aprInput(20, 23) // 3pp: HIGH mismatch, discovered first
	in.FeeFindings = []service.FeeFinding{
		{
			Fee:    model.Fee{Label: "непозната такса", Amount: decimal.NewFromInt(10)},
			Status: valueobject.FeeStatusUnclassified, // MEDIUM
		},
		{
			Fee:        model.Fee{Label: "такса управление", Amount: decimal.NewFromInt(20)},
			Status:     valueobject.FeeStatusIllegal, // HIGH
			LegalBasis: "чл. 10а, ал. 2 ЗПК",
		},
	}
	in.ClauseFindings = []model.DetectedClause{
		{
			PatternID:  "clause-early-repayment-ban",
			Snippet:    "x",
			LegalBasis: "чл. 29 ЗПК",
			Severity:   valueobject.SeverityCritical,
		},
	}

	report := defaultAggregator().Aggregate(in)

	require.Len(t, report.Violations, 4)
	assert.True(t, report.Violations[0].Kind.Equal(valueobject.ViolationKindUnfairClause))   // CRITICAL
	assert.True(t, report.Violations[1].Kind.Equal(valueobject.ViolationKindAPRMismatch))    // HIGH, discovered before fees
	assert.True(t, report.Violations[2].Kind.Equal(valueobject.ViolationKindIllegalFee))     // HIGH
	assert.True(t, report.Violations[3].Kind.Equal(valueobject.ViolationKindUnclassifiedFee)) // MEDIUM
}

func TestAggregate_RiskScoreWeightsAndCap(t *testing.T) {
	in := aprInput(20, 30) // critical mismatch: 40 points
	in.ClauseFindings = []model.DetectedClause{
		{PatternID: "a", LegalBasis: "b1", Severity: valueobject.SeverityCritical}, // 40
		{PatternID: "b", LegalBasis: "b2", Severity: valueobject.SeverityCritical}, // 40
	}

	report := defaultAggregator().Aggregate(in)

	// 40 + 40 + 40 = 120, capped at 100.
	assert.Equal(t, 100, report.RiskScore)
	assert.True(t, report.RiskLevel.Equal(valueobject.RiskLevelCritical))
}

func TestAggregate_RiskLevelBands(t *testing.T) {
	// One medium advisory: 8 points, LOW band.
	in := aprInput(10, 10)
	in.FeeFindings = []service.FeeFinding{
		{Fee: model.Fee{Label: "х", Amount: decimal.NewFromInt(1)}, Status: valueobject.FeeStatusUnclassified},
	}
	report := defaultAggregator().Aggregate(in)
	assert.Equal(t, 8, report.RiskScore)
	assert.True(t, report.RiskLevel.Equal(valueobject.RiskLevelLow))

	// A high mismatch adds 20: 20 points alone is MEDIUM.
	report = defaultAggregator().Aggregate(aprInput(20, 23))
	assert.Equal(t, 20, report.RiskScore)
	assert.True(t, report.RiskLevel.Equal(valueobject.RiskLevelMedium))
}

func TestAggregate_CustomConfig(t *testing.T) {
	cfg := service.DefaultAggregatorConfig()
	cfg.MaterialityPP = decimal.NewFromFloat(0.1)
	cfg.Points.Medium = 50
	agg := service.NewComplianceAggregator(cfg)

	report := agg.Aggregate(aprInput(10, 10.5))

	require.Len(t, report.Violations, 1)
	assert.Equal(t, 50, report.RiskScore)
	assert.True(t, report.RiskLevel.Equal(valueobject.RiskLevelHigh))
}

func TestAggregate_Idempotent(t *testing.T) {
	in := aprInput(40, 55)
	in.FeeFindings = []service.FeeFinding{
		{
			Fee:        model.Fee{Label: "такса управление", Amount: decimal.NewFromInt(25)},
			Status:     valueobject.FeeStatusIllegal,
			LegalBasis: "чл. 10а, ал. 2 ЗПК",
		},
	}

	first := defaultAggregator().Aggregate(in)
	second := defaultAggregator().Aggregate(in)

	assert.Equal(t, first, second)
}

func TestAggregate_ClauseScanSkippedPropagated(t *testing.T) {
	in := aprInput(10, 10)
	in.ClauseScanSkipped = true

	report := defaultAggregator().Aggregate(in)
	assert.True(t, report.ClauseScanSkipped)
	assert.Equal(t, "test", report.RuleSetVersion)
}
