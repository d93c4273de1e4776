package valueobject

import "fmt"

// RiskLevel is an immutable value object classifying the overall compliance
// risk of a contract.
type RiskLevel struct {
	value string
}

var (
	RiskLevelLow      = RiskLevel{value: "LOW"}
	RiskLevelMedium   = RiskLevel{value: "MEDIUM"}
	RiskLevelHigh     = RiskLevel{value: "HIGH"}
	RiskLevelCritical = RiskLevel{value: "CRITICAL"}
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case "LOW":
		return RiskLevelLow, nil
	case "MEDIUM":
		return RiskLevelMedium, nil
	case "HIGH":
		return RiskLevelHigh, nil
	case "CRITICAL":
		return RiskLevelCritical, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %s", s)
	}
}

// RiskBands holds the lower score bound of each risk level above LOW.
// Scores below Medium map to LOW.
type RiskBands struct {
	Medium   int
	High     int
	Critical int
}

// DefaultRiskBands returns the statutory-report default bands:
// [0,20) LOW, [20,50) MEDIUM, [50,80) HIGH, [80,100] CRITICAL.
func DefaultRiskBands() RiskBands {
	return RiskBands{Medium: 20, High: 50, Critical: 80}
}

// RiskLevelFromScore derives the RiskLevel for a 0-100 risk score using the
// given bands.
func RiskLevelFromScore(score int, bands RiskBands) RiskLevel {
	switch {
	case score >= bands.Critical:
		return RiskLevelCritical
	case score >= bands.High:
		return RiskLevelHigh
	case score >= bands.Medium:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}
