package weather

// heat zone thresholds, evaluated highest-first; boundaries are inclusive
// lower bounds so 40°C already counts as severe heat.
var heatBands = []struct {
	minTempC int
	zone     HeatZone
}{
	{45, HeatZone{Zone: "Extreme Danger", RiskLevel: RiskHigh, Color: "#b91c1c"}},
	{40, HeatZone{Zone: "Severe Heat", RiskLevel: RiskHigh, Color: "#dc2626"}},
	{35, HeatZone{Zone: "High Heat", RiskLevel: RiskMedium, Color: "#d97706"}},
	{30, HeatZone{Zone: "Warm", RiskLevel: RiskMedium, Color: "#fbbf24"}},
}

// ClassifyHeatZone maps a temperature to its named risk band. Total over all
// integers; anything below 30°C is normal.
func ClassifyHeatZone(tempC int) HeatZone {
	for _, band := range heatBands {
		if tempC >= band.minTempC {
			return band.zone
		}
	}
	return HeatZone{Zone: "Normal", RiskLevel: RiskLow, Color: "#16a34a"}
}
