package evaluation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/application/dto"
)

var defaultAPRTolerance = decimal.NewFromFloat(0.01)

// CaseResult is the scored outcome of one case.
type CaseResult struct {
	CaseID   string `json:"case_id"`
	ReportID string `json:"report_id,omitempty"`
	// Err is set when the pipeline itself failed; scored fields are then
	// zero.
	Err string `json:"error,omitempty"`

	APRChecked  bool            `json:"apr_checked"`
	APRAbsError decimal.Decimal `json:"apr_abs_error"`
	APRWithin   bool            `json:"apr_within_tolerance"`

	RiskChecked bool `json:"risk_checked"`
	RiskMatch   bool `json:"risk_match"`

	// Violation agreement on (kind, legal basis) pairs.
	TruePositives  int `json:"true_positives"`
	FalsePositives int `json:"false_positives"`
	FalseNegatives int `json:"false_negatives"`

	Passed bool `json:"passed"`
}

// Summary aggregates case results into benchmark metrics.
type Summary struct {
	Dataset   string  `json:"dataset"`
	Cases     int     `json:"cases"`
	Failed    int     `json:"failed"`
	Passed    int     `json:"passed"`
	PassRate  float64 `json:"pass_rate"`
	Recall    float64 `json:"violation_recall"`
	Precision float64 `json:"violation_precision"`
	// RiskAgreement is the share of risk-checked cases whose band matched.
	RiskAgreement float64 `json:"risk_agreement"`
	// MeanAPRAbsError averages the absolute APR error over checked cases,
	// in percentage points.
	MeanAPRAbsError decimal.Decimal `json:"mean_apr_abs_error"`
}

// Score compares one response against the case's expectation.
func Score(c Case, resp dto.AnalysisReportResponse) (CaseResult, error) {
	result := CaseResult{CaseID: c.ID, ReportID: resp.ReportID, Passed: true}

	if c.Expected.APR != "" {
		expected, err := decimal.NewFromString(c.Expected.APR)
		if err != nil {
			return CaseResult{}, fmt.Errorf("case %q: bad expected apr: %w", c.ID, err)
		}
		tolerance := defaultAPRTolerance
		if c.Expected.APRTolerance != "" {
			tolerance, err = decimal.NewFromString(c.Expected.APRTolerance)
			if err != nil {
				return CaseResult{}, fmt.Errorf("case %q: bad apr tolerance: %w", c.ID, err)
			}
		}
		actual, err := decimal.NewFromString(resp.CalculatedAPR)
		if err != nil {
			return CaseResult{}, fmt.Errorf("case %q: bad calculated apr: %w", c.ID, err)
		}
		result.APRChecked = true
		result.APRAbsError = actual.Sub(expected).Abs()
		result.APRWithin = result.APRAbsError.LessThanOrEqual(tolerance)
		result.Passed = result.Passed && result.APRWithin
	}

	if c.Expected.RiskLevel != "" {
		result.RiskChecked = true
		result.RiskMatch = resp.RiskLevel == c.Expected.RiskLevel
		result.Passed = result.Passed && result.RiskMatch
	}

	matched := make([]bool, len(resp.Violations))
	for _, want := range c.Expected.Violations {
		found := false
		for i, got := range resp.Violations {
			if matched[i] || got.Kind != want.Kind {
				continue
			}
			if want.LegalBasis != "" && got.LegalBasis != want.LegalBasis {
				continue
			}
			matched[i] = true
			found = true
			break
		}
		if found {
			result.TruePositives++
		} else {
			result.FalseNegatives++
		}
	}
	for _, hit := range matched {
		if !hit {
			result.FalsePositives++
		}
	}
	result.Passed = result.Passed && result.FalseNegatives == 0 && result.FalsePositives == 0

	return result, nil
}

// Summarize folds per-case results into dataset-level metrics.
func Summarize(name string, results []CaseResult) Summary {
	s := Summary{Dataset: name, Cases: len(results)}

	var tp, fp, fn int
	var riskChecked, riskMatched int
	var aprChecked int
	aprErrSum := decimal.Zero

	for _, r := range results {
		if r.Err != "" {
			s.Failed++
			continue
		}
		if r.Passed {
			s.Passed++
		}
		tp += r.TruePositives
		fp += r.FalsePositives
		fn += r.FalseNegatives
		if r.RiskChecked {
			riskChecked++
			if r.RiskMatch {
				riskMatched++
			}
		}
		if r.APRChecked {
			aprChecked++
			aprErrSum = aprErrSum.Add(r.APRAbsError)
		}
	}

	if s.Cases > 0 {
		s.PassRate = float64(s.Passed) / float64(s.Cases)
	}
	if tp+fn > 0 {
		s.Recall = float64(tp) / float64(tp+fn)
	}
	if tp+fp > 0 {
		s.Precision = float64(tp) / float64(tp+fp)
	}
	if riskChecked > 0 {
		s.RiskAgreement = float64(riskMatched) / float64(riskChecked)
	}
	if aprChecked > 0 {
		s.MeanAPRAbsError = aprErrSum.Div(decimal.NewFromInt(int64(aprChecked)))
	}
	return s
}
