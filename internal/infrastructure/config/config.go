package config

import (
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/domain/service"
	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/domain/valueobject"
)

// Config holds all configuration for the compliance engine.
type Config struct {
	Environment string
	LogLevel    string
	LogFormat   string

	// RulesPath points at a YAML rule-set file; empty selects the built-in
	// tables.
	RulesPath string

	MaterialityPP   float64
	HighDeltaPP     float64
	CriticalDeltaPP float64

	PointsMedium   int
	PointsHigh     int
	PointsCritical int

	BandMedium   int
	BandHigh     int
	BandCritical int

	SnippetContext int
	EvalWorkers    int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		RulesPath:       getEnv("RULES_PATH", ""),
		MaterialityPP:   getEnvFloat("APR_MATERIALITY_PP", 1.0),
		HighDeltaPP:     getEnvFloat("APR_HIGH_DELTA_PP", 2.0),
		CriticalDeltaPP: getEnvFloat("APR_CRITICAL_DELTA_PP", 5.0),
		PointsMedium:    getEnvInt("POINTS_MEDIUM", 8),
		PointsHigh:      getEnvInt("POINTS_HIGH", 20),
		PointsCritical:  getEnvInt("POINTS_CRITICAL", 40),
		BandMedium:      getEnvInt("RISK_BAND_MEDIUM", 20),
		BandHigh:        getEnvInt("RISK_BAND_HIGH", 50),
		BandCritical:    getEnvInt("RISK_BAND_CRITICAL", 80),
		SnippetContext:  getEnvInt("SNIPPET_CONTEXT", service.DefaultSnippetContext),
		EvalWorkers:     getEnvInt("EVAL_WORKERS", 4),
	}
}

// AggregatorConfig maps the environment values onto the aggregator's
// configuration. Zero or negative overrides fall back to the stock values.
func (c *Config) AggregatorConfig() service.AggregatorConfig {
	cfg := service.DefaultAggregatorConfig()
	if c.MaterialityPP > 0 {
		cfg.MaterialityPP = decimal.NewFromFloat(c.MaterialityPP)
	}
	if c.HighDeltaPP > 0 {
		cfg.HighDeltaPP = decimal.NewFromFloat(c.HighDeltaPP)
	}
	if c.CriticalDeltaPP > 0 {
		cfg.CriticalDeltaPP = decimal.NewFromFloat(c.CriticalDeltaPP)
	}
	if c.PointsMedium > 0 && c.PointsHigh > 0 && c.PointsCritical > 0 {
		cfg.Points = service.SeverityPoints{
			Low:      cfg.Points.Low,
			Medium:   c.PointsMedium,
			High:     c.PointsHigh,
			Critical: c.PointsCritical,
		}
	}
	if c.BandMedium > 0 && c.BandHigh > c.BandMedium && c.BandCritical > c.BandHigh {
		cfg.Bands = valueobject.RiskBands{
			Medium:   c.BandMedium,
			High:     c.BandHigh,
			Critical: c.BandCritical,
		}
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
