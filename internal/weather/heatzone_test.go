package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyHeatZone(t *testing.T) {
	cases := []struct {
		tempC int
		zone  string
		risk  RiskLevel
		color string
	}{
		{-10, "Normal", RiskLow, "#16a34a"},
		{29, "Normal", RiskLow, "#16a34a"},
		{30, "Warm", RiskMedium, "#fbbf24"},
		{34, "Warm", RiskMedium, "#fbbf24"},
		{35, "High Heat", RiskMedium, "#d97706"},
		{39, "High Heat", RiskMedium, "#d97706"},
		{40, "Severe Heat", RiskHigh, "#dc2626"},
		{44, "Severe Heat", RiskHigh, "#dc2626"},
		{45, "Extreme Danger", RiskHigh, "#b91c1c"},
		{60, "Extreme Danger", RiskHigh, "#b91c1c"},
	}

	for _, tc := range cases {
		got := ClassifyHeatZone(tc.tempC)
		assert.Equal(t, tc.zone, got.Zone, "temp %d", tc.tempC)
		assert.Equal(t, tc.risk, got.RiskLevel, "temp %d", tc.tempC)
		assert.Equal(t, tc.color, got.Color, "temp %d", tc.tempC)
	}
}

// Risk must never decrease as temperature rises.
func TestClassifyHeatZoneRiskMonotonic(t *testing.T) {
	rank := map[RiskLevel]int{RiskLow: 0, RiskMedium: 1, RiskHigh: 2}

	prev := rank[ClassifyHeatZone(-50).RiskLevel]
	for temp := -49; temp <= 70; temp++ {
		cur := rank[ClassifyHeatZone(temp).RiskLevel]
		assert.GreaterOrEqual(t, cur, prev, "risk dropped at %d", temp)
		prev = cur
	}
}
