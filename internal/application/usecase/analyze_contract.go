package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/application/dto"
	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/domain/model"
	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/domain/service"
	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/rules"
)

// AnalyzeContractUseCase runs the full compliance pipeline over one
// contract: effective-rate solving, fee classification, clause detection and
// report aggregation. It is safe for concurrent use.
type AnalyzeContractUseCase struct {
	solver      *service.RateSolver
	classifier  *service.FeeClassifier
	detector    *service.ClauseDetector
	aggregator  *service.ComplianceAggregator
	ruleVersion string
}

// NewAnalyzeContractUseCase wires the pipeline from a rule set and
// aggregator configuration. SnippetContext <= 0 selects the default window.
func NewAnalyzeContractUseCase(rs rules.RuleSet, cfg service.AggregatorConfig, snippetContext int) (*AnalyzeContractUseCase, error) {
	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rule set: %w", err)
	}
	if snippetContext <= 0 {
		snippetContext = service.DefaultSnippetContext
	}

	classifier, err := service.NewFeeClassifier(rs)
	if err != nil {
		return nil, fmt.Errorf("build fee classifier: %w", err)
	}
	detector, err := service.NewClauseDetector(rs, snippetContext)
	if err != nil {
		return nil, fmt.Errorf("build clause detector: %w", err)
	}

	return &AnalyzeContractUseCase{
		solver:      service.NewRateSolver(),
		classifier:  classifier,
		detector:    detector,
		aggregator:  service.NewComplianceAggregator(cfg),
		ruleVersion: rs.Version,
	}, nil
}

// Execute validates the request, runs the pipeline and returns the stamped
// report. The clause scan is skipped, and flagged as skipped, when the
// request carries no contract text.
func (uc *AnalyzeContractUseCase) Execute(ctx context.Context, req dto.AnalyzeContractRequest) (dto.AnalysisReportResponse, error) {
	if err := ctx.Err(); err != nil {
		return dto.AnalysisReportResponse{}, err
	}
	if err := dto.Validate(req); err != nil {
		return dto.AnalysisReportResponse{}, fmt.Errorf("validate request: %w", err)
	}

	terms, err := req.Terms.ToModel()
	if err != nil {
		return dto.AnalysisReportResponse{}, fmt.Errorf("build contract terms: %w", err)
	}

	report, err := uc.analyze(terms, req.RawText)
	if err != nil {
		return dto.AnalysisReportResponse{}, err
	}

	return dto.FromReport(report, uuid.New().String(), time.Now().UTC()), nil
}

// analyze is the deterministic core: no IDs, no clocks, identical inputs
// produce identical reports.
func (uc *AnalyzeContractUseCase) analyze(terms model.ContractTerms, rawText string) (model.AnalysisReport, error) {
	calculatedAPR, err := uc.solver.Solve(terms.CashFlows())
	if err != nil {
		return model.AnalysisReport{}, fmt.Errorf("solve effective rate: %w", err)
	}

	feeFindings, err := uc.classifier.Classify(terms.Fees())
	if err != nil {
		return model.AnalysisReport{}, fmt.Errorf("classify fees: %w", err)
	}

	var clauseFindings []model.DetectedClause
	skipped := rawText == ""
	if !skipped {
		clauseFindings = uc.detector.Detect(rawText)
	}

	return uc.aggregator.Aggregate(service.AggregationInput{
		DeclaredAPR:       terms.DeclaredAPR(),
		CalculatedAPR:     calculatedAPR,
		Currency:          terms.Currency(),
		FeeFindings:       feeFindings,
		ClauseFindings:    clauseFindings,
		ClauseScanSkipped: skipped,
		RuleSetVersion:    uc.ruleVersion,
	}), nil
}
