// Command evalrun scores a labelled contract dataset against the compliance
// pipeline and writes the per-case results and summary as JSON.
//
// Usage:
//
//	evalrun -dataset cases.json [-out results.json]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/application/usecase"
	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/evaluation"
	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/infrastructure/config"
	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/rules"
	"github.com/Pinizov/Credit-Guardian-AI-sub000/pkg/observability"
)

type output struct {
	Summary evaluation.Summary      `json:"summary"`
	Results []evaluation.CaseResult `json:"results"`
}

func main() {
	datasetPath := flag.String("dataset", "", "path to the labelled dataset JSON file")
	outPath := flag.String("out", "", "write results JSON here instead of stdout")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Writer: os.Stderr,
	})
	slog.SetDefault(logger)

	if *datasetPath == "" {
		logger.Error("missing required -dataset flag")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(ctx, cfg, logger, *datasetPath, *outPath); err != nil {
		logger.Error("evaluation run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, datasetPath, outPath string) error {
	ruleSet, err := rules.LoadOrDefault(cfg.RulesPath)
	if err != nil {
		return fmt.Errorf("load rule set: %w", err)
	}

	analyzer, err := usecase.NewAnalyzeContractUseCase(ruleSet, cfg.AggregatorConfig(), cfg.SnippetContext)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	dataset, err := evaluation.LoadDataset(datasetPath)
	if err != nil {
		return err
	}

	logger.Info("starting evaluation",
		"dataset", dataset.Name,
		"cases", len(dataset.Cases),
		"workers", cfg.EvalWorkers,
		"rule_set", ruleSet.Version,
	)

	results, err := evaluation.NewRunner(analyzer, cfg.EvalWorkers, logger).Run(ctx, dataset)
	if err != nil {
		return err
	}

	summary := evaluation.Summarize(dataset.Name, results)
	logger.Info("evaluation finished",
		"passed", summary.Passed,
		"failed", summary.Failed,
		"pass_rate", summary.PassRate,
		"violation_recall", summary.Recall,
		"violation_precision", summary.Precision,
		"risk_agreement", summary.RiskAgreement,
	)

	if err := writeOutput(outPath, output{Summary: summary, Results: results}); err != nil {
		return err
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d cases errored", summary.Failed, summary.Cases)
	}
	return nil
}

func writeOutput(path string, out output) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
