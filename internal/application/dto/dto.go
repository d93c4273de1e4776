package dto

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/domain/model"
)

// ---------------------------------------------------------------------------
// JSON-facing request/response shapes
// ---------------------------------------------------------------------------

// CashFlowRequest is one dated flow. Positive amounts are drawdowns,
// negative amounts repayments. Date accepts ISO-8601 date or date-time.
type CashFlowRequest struct {
	Date   string          `json:"date" validate:"required"`
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// FeeRequest is one extracted contract fee.
type FeeRequest struct {
	Label  string          `json:"label" validate:"required"`
	Amount decimal.Decimal `json:"amount"`
	Date   *string         `json:"date,omitempty"`
}

// ContractTermsRequest mirrors the normalized record the extraction layer
// produces. Structural invariants beyond what tags can express (sign
// constraints, date ordering) are enforced by the domain model.
type ContractTermsRequest struct {
	Principal   decimal.Decimal   `json:"principal" validate:"required"`
	DeclaredAPR decimal.Decimal   `json:"declared_apr"`
	Currency    string            `json:"currency" validate:"required,len=3"`
	CashFlows   []CashFlowRequest `json:"cash_flows" validate:"required,min=2,dive"`
	Fees        []FeeRequest      `json:"fees" validate:"omitempty,dive"`
}

// AnalyzeContractRequest is the input to one analysis run. RawText is
// optional; without it the clause scan is skipped and the report says so.
type AnalyzeContractRequest struct {
	Terms   ContractTermsRequest `json:"terms" validate:"required"`
	RawText string               `json:"raw_text,omitempty"`
}

var requestValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate runs struct-tag validation over the request.
func Validate(req AnalyzeContractRequest) error {
	return requestValidator.Struct(req)
}

// dateFormats are accepted for cash-flow and fee dates, tried in order.
var dateFormats = []string{"2006-01-02", time.RFC3339}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateFormats {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: want ISO-8601", s)
}

// ToModel converts the request into a validated ContractTerms aggregate.
func (r ContractTermsRequest) ToModel() (model.ContractTerms, error) {
	flows := make([]model.CashFlow, 0, len(r.CashFlows))
	for i, cf := range r.CashFlows {
		ts, err := parseDate(cf.Date)
		if err != nil {
			return model.ContractTerms{}, model.NewIndexedValidationError("cash_flows", i, err.Error())
		}
		flows = append(flows, model.CashFlow{Date: ts, Amount: cf.Amount})
	}

	fees := make([]model.Fee, 0, len(r.Fees))
	for i, f := range r.Fees {
		fee := model.Fee{Label: f.Label, Amount: f.Amount}
		if f.Date != nil {
			ts, err := parseDate(*f.Date)
			if err != nil {
				return model.ContractTerms{}, model.NewIndexedValidationError("fees", i, err.Error())
			}
			fee.Timing = &ts
		}
		fees = append(fees, fee)
	}

	return model.NewContractTerms(r.Principal, r.DeclaredAPR, r.Currency, flows, fees)
}

// ViolationResponse is one report finding.
type ViolationResponse struct {
	Kind            string `json:"kind"`
	Description     string `json:"description"`
	LegalBasis      string `json:"legal_basis,omitempty"`
	Severity        string `json:"severity"`
	FinancialImpact string `json:"financial_impact"`
}

// AnalysisReportResponse is the serialized analysis result. Run metadata
// (report ID, timestamp) lives here rather than on the domain report, which
// stays deterministic for identical inputs.
type AnalysisReportResponse struct {
	ReportID             string              `json:"report_id"`
	AnalyzedAt           time.Time           `json:"analyzed_at"`
	RuleSetVersion       string              `json:"rule_set_version"`
	Currency             string              `json:"currency"`
	CalculatedAPR        string              `json:"calculated_apr"`
	DeclaredAPR          string              `json:"declared_apr"`
	APRDelta             string              `json:"apr_delta"`
	Violations           []ViolationResponse `json:"violations"`
	RiskScore            int                 `json:"risk_score"`
	RiskLevel            string              `json:"risk_level"`
	TotalFinancialImpact string              `json:"total_financial_impact"`
	ClauseScanSkipped    bool                `json:"clause_scan_skipped"`
}

// FromReport maps a domain report to the response DTO.
func FromReport(report model.AnalysisReport, reportID string, analyzedAt time.Time) AnalysisReportResponse {
	violations := make([]ViolationResponse, 0, len(report.Violations))
	for _, v := range report.Violations {
		violations = append(violations, ViolationResponse{
			Kind:            v.Kind.String(),
			Description:     v.Description,
			LegalBasis:      v.LegalBasis,
			Severity:        v.Severity.String(),
			FinancialImpact: v.FinancialImpact.Amount().StringFixed(2),
		})
	}

	return AnalysisReportResponse{
		ReportID:             reportID,
		AnalyzedAt:           analyzedAt,
		RuleSetVersion:       report.RuleSetVersion,
		Currency:             report.Currency.Code(),
		CalculatedAPR:        report.CalculatedAPR.String(),
		DeclaredAPR:          report.DeclaredAPR.String(),
		APRDelta:             report.APRDelta.String(),
		Violations:           violations,
		RiskScore:            report.RiskScore,
		RiskLevel:            report.RiskLevel.String(),
		TotalFinancialImpact: report.TotalFinancialImpact().Amount().StringFixed(2),
		ClauseScanSkipped:    report.ClauseScanSkipped,
	}
}
