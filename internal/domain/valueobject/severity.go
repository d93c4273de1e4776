package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// Severity – immutable value object
// ---------------------------------------------------------------------------

// Severity classifies how serious a compliance finding is.
type Severity struct {
	value string
}

const (
	severityLow      = "LOW"
	severityMedium   = "MEDIUM"
	severityHigh     = "HIGH"
	severityCritical = "CRITICAL"
)

var (
	SeverityLow      = Severity{value: severityLow}
	SeverityMedium   = Severity{value: severityMedium}
	SeverityHigh     = Severity{value: severityHigh}
	SeverityCritical = Severity{value: severityCritical}
)

var validSeverities = map[string]Severity{
	severityLow:      SeverityLow,
	severityMedium:   SeverityMedium,
	severityHigh:     SeverityHigh,
	severityCritical: SeverityCritical,
}

// NewSeverity creates a Severity from a raw string.
func NewSeverity(s string) (Severity, error) {
	v, ok := validSeverities[s]
	if !ok {
		return Severity{}, fmt.Errorf("invalid severity: %q", s)
	}
	return v, nil
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return s.value
}

// IsZero returns true if the Severity has not been set.
func (s Severity) IsZero() bool {
	return s.value == ""
}

// Equal checks equality with another Severity.
func (s Severity) Equal(other Severity) bool {
	return s.value == other.value
}

// Rank returns the ordering position of the severity, higher is more severe.
// Used to sort violations severity-descending and to resolve overlapping
// clause matches deterministically.
func (s Severity) Rank() int {
	switch s.value {
	case severityCritical:
		return 4
	case severityHigh:
		return 3
	case severityMedium:
		return 2
	case severityLow:
		return 1
	default:
		return 0
	}
}

// DefaultPoints returns the default risk-score contribution of one violation
// at this severity. The aggregator accepts overrides via configuration.
func (s Severity) DefaultPoints() int {
	switch s.value {
	case severityCritical:
		return 40
	case severityHigh:
		return 20
	case severityMedium:
		return 8
	case severityLow:
		return 2
	default:
		return 0
	}
}
