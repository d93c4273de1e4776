package evaluation

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/application/dto"
)

// Analyzer is the slice of the application layer the runner needs.
type Analyzer interface {
	Execute(ctx context.Context, req dto.AnalyzeContractRequest) (dto.AnalysisReportResponse, error)
}

// Runner scores a dataset against the pipeline with a bounded worker pool.
type Runner struct {
	analyzer Analyzer
	workers  int
	logger   *slog.Logger
}

// NewRunner creates a runner. Workers <= 0 selects a single worker.
func NewRunner(analyzer Analyzer, workers int, logger *slog.Logger) *Runner {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{analyzer: analyzer, workers: workers, logger: logger}
}

// Run executes every case and returns results in dataset order. A failing
// case is recorded in its result, not returned as an error; only context
// cancellation aborts the run early.
func (r *Runner) Run(ctx context.Context, d Dataset) ([]CaseResult, error) {
	results := make([]CaseResult, len(d.Cases))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = r.runCase(ctx, d.Cases[i])
			}
		}()
	}

	var runErr error
feed:
	for i := range d.Cases {
		select {
		case indexes <- i:
		case <-ctx.Done():
			runErr = ctx.Err()
			break feed
		}
	}
	close(indexes)
	wg.Wait()

	if runErr != nil {
		return nil, runErr
	}
	return results, nil
}

func (r *Runner) runCase(ctx context.Context, c Case) CaseResult {
	resp, err := r.analyzer.Execute(ctx, c.Request)
	if err != nil {
		r.logger.Warn("case failed", "case_id", c.ID, "error", err)
		return CaseResult{CaseID: c.ID, Err: err.Error()}
	}

	result, err := Score(c, resp)
	if err != nil {
		r.logger.Warn("case not scorable", "case_id", c.ID, "error", err)
		return CaseResult{CaseID: c.ID, ReportID: resp.ReportID, Err: err.Error()}
	}

	r.logger.Debug("case scored",
		"case_id", c.ID,
		"passed", result.Passed,
		"risk_level", resp.RiskLevel,
	)
	return result
}
