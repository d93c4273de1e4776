package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/domain/valueobject"
)

func TestNewSeverity_RoundTrip(t *testing.T) {
	for _, s := range []string{"LOW", "MEDIUM", "HIGH", "CRITICAL"} {
		sev, err := valueobject.NewSeverity(s)
		require.NoError(t, err)
		assert.Equal(t, s, sev.String())
	}

	_, err := valueobject.NewSeverity("EXTREME")
	assert.Error(t, err)
}

func TestSeverity_Rank_Ordering(t *testing.T) {
	assert.Greater(t, valueobject.SeverityCritical.Rank(), valueobject.SeverityHigh.Rank())
	assert.Greater(t, valueobject.SeverityHigh.Rank(), valueobject.SeverityMedium.Rank())
	assert.Greater(t, valueobject.SeverityMedium.Rank(), valueobject.SeverityLow.Rank())
	assert.Equal(t, 0, valueobject.Severity{}.Rank())
}

func TestSeverity_DefaultPoints(t *testing.T) {
	assert.Equal(t, 40, valueobject.SeverityCritical.DefaultPoints())
	assert.Equal(t, 20, valueobject.SeverityHigh.DefaultPoints())
	assert.Equal(t, 8, valueobject.SeverityMedium.DefaultPoints())
	assert.Equal(t, 2, valueobject.SeverityLow.DefaultPoints())
}

func TestRiskLevelFromScore_DefaultBands(t *testing.T) {
	bands := valueobject.DefaultRiskBands()

	tests := []struct {
		score    int
		expected valueobject.RiskLevel
	}{
		{0, valueobject.RiskLevelLow},
		{19, valueobject.RiskLevelLow},
		{20, valueobject.RiskLevelMedium},
		{49, valueobject.RiskLevelMedium},
		{50, valueobject.RiskLevelHigh},
		{79, valueobject.RiskLevelHigh},
		{80, valueobject.RiskLevelCritical},
		{100, valueobject.RiskLevelCritical},
	}

	for _, tt := range tests {
		level := valueobject.RiskLevelFromScore(tt.score, bands)
		assert.True(t, level.Equal(tt.expected), "score %d should map to %s, got %s", tt.score, tt.expected, level)
	}
}

func TestFeeStatusFromString(t *testing.T) {
	st, err := valueobject.FeeStatusFromString("UNCLASSIFIED")
	require.NoError(t, err)
	assert.True(t, st.Equal(valueobject.FeeStatusUnclassified))

	_, err = valueobject.FeeStatusFromString("MAYBE")
	assert.Error(t, err)
}

func TestViolationKindFromString(t *testing.T) {
	k, err := valueobject.ViolationKindFromString("UNCLASSIFIED_FEE")
	require.NoError(t, err)
	assert.False(t, k.Equal(valueobject.ViolationKindIllegalFee))

	_, err = valueobject.ViolationKindFromString("OTHER")
	assert.Error(t, err)
}
