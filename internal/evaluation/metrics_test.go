package evaluation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/application/dto"
	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/evaluation"
)

func scoreCase(t *testing.T, expected evaluation.Expectation, resp dto.AnalysisReportResponse) evaluation.CaseResult {
	t.Helper()
	result, err := evaluation.Score(evaluation.Case{ID: "c", Expected: expected}, resp)
	require.NoError(t, err)
	return result
}

func TestScore_APRWithinTolerance(t *testing.T) {
	result := scoreCase(t,
		evaluation.Expectation{APR: "48.2", APRTolerance: "0.05"},
		dto.AnalysisReportResponse{CalculatedAPR: "48.23"},
	)

	assert.True(t, result.APRChecked)
	assert.True(t, result.APRWithin)
	assert.True(t, result.APRAbsError.Equal(decimal.NewFromFloat(0.03)), "got %s", result.APRAbsError)
	assert.True(t, result.Passed)
}

func TestScore_APROutsideTolerance(t *testing.T) {
	result := scoreCase(t,
		evaluation.Expectation{APR: "48.2"},
		dto.AnalysisReportResponse{CalculatedAPR: "48.3"},
	)

	assert.False(t, result.APRWithin)
	assert.False(t, result.Passed)
}

func TestScore_ViolationMatching(t *testing.T) {
	expected := evaluation.Expectation{
		Violations: []evaluation.ExpectedViolation{
			{Kind: "ILLEGAL_FEE", LegalBasis: "чл. 10а, ал. 2 ЗПК"},
			{Kind: "UNFAIR_CLAUSE"},
		},
	}
	resp := dto.AnalysisReportResponse{
		CalculatedAPR: "10",
		Violations: []dto.ViolationResponse{
			{Kind: "ILLEGAL_FEE", LegalBasis: "чл. 10а, ал. 2 ЗПК"},
			{Kind: "APR_MISMATCH", LegalBasis: "чл. 10а ЗПК"},
		},
	}

	result := scoreCase(t, expected, resp)

	assert.Equal(t, 1, result.TruePositives)
	assert.Equal(t, 1, result.FalseNegatives, "unfair clause was expected but not reported")
	assert.Equal(t, 1, result.FalsePositives, "apr mismatch was reported but not expected")
	assert.False(t, result.Passed)
}

func TestScore_EmptyBasisMatchesAnyBasis(t *testing.T) {
	result := scoreCase(t,
		evaluation.Expectation{Violations: []evaluation.ExpectedViolation{{Kind: "UNFAIR_CLAUSE"}}},
		dto.AnalysisReportResponse{Violations: []dto.ViolationResponse{
			{Kind: "UNFAIR_CLAUSE", LegalBasis: "чл. 29 ЗПК"},
		}},
	)

	assert.Equal(t, 1, result.TruePositives)
	assert.True(t, result.Passed)
}

func TestScore_RiskLevel(t *testing.T) {
	result := scoreCase(t,
		evaluation.Expectation{RiskLevel: "HIGH"},
		dto.AnalysisReportResponse{RiskLevel: "CRITICAL"},
	)

	assert.True(t, result.RiskChecked)
	assert.False(t, result.RiskMatch)
	assert.False(t, result.Passed)
}

func TestScore_RejectsMalformedExpectedAPR(t *testing.T) {
	_, err := evaluation.Score(
		evaluation.Case{ID: "bad", Expected: evaluation.Expectation{APR: "ten"}},
		dto.AnalysisReportResponse{CalculatedAPR: "10"},
	)
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	results := []evaluation.CaseResult{
		{
			CaseID: "a", Passed: true,
			APRChecked: true, APRWithin: true, APRAbsError: decimal.NewFromFloat(0.002),
			RiskChecked: true, RiskMatch: true,
			TruePositives: 2,
		},
		{
			CaseID:        "b",
			APRChecked:    true,
			APRAbsError:   decimal.NewFromFloat(0.008),
			RiskChecked:   true,
			TruePositives: 1, FalseNegatives: 1, FalsePositives: 1,
		},
		{CaseID: "c", Err: "solve effective rate: no sign change"},
	}

	s := evaluation.Summarize("bench", results)

	assert.Equal(t, "bench", s.Dataset)
	assert.Equal(t, 3, s.Cases)
	assert.Equal(t, 1, s.Passed)
	assert.Equal(t, 1, s.Failed)
	assert.InDelta(t, 1.0/3.0, s.PassRate, 1e-9)
	assert.InDelta(t, 0.75, s.Recall, 1e-9)    // 3 of 4 expected found
	assert.InDelta(t, 0.75, s.Precision, 1e-9) // 3 of 4 reported expected
	assert.InDelta(t, 0.5, s.RiskAgreement, 1e-9)
	assert.True(t, s.MeanAPRAbsError.Equal(decimal.NewFromFloat(0.005)), "got %s", s.MeanAPRAbsError)
}

func TestSummarize_Empty(t *testing.T) {
	s := evaluation.Summarize("empty", nil)

	assert.Equal(t, 0, s.Cases)
	assert.Zero(t, s.PassRate)
	assert.Zero(t, s.Recall)
	assert.True(t, s.MeanAPRAbsError.IsZero())
}
