package weather

import (
	"math"
	"time"
)

// Upstream payloads routinely omit fields on forecast edges. Rather than
// fail the whole request, absent values are filled with these defaults so a
// degraded advisory is still produced.
const (
	defaultTempC      = 28
	defaultRainPct    = 0
	defaultHumidity   = 60
	defaultWindMS     = 0.0
	minTempOffsetC    = 4   // per-day min defaults to current temp minus this
	forecastDaysLimit = 3   // UI renders at most three days
	windMSToKmh       = 3.6 // meters/second to km/h
)

// RawForecast is the upstream provider payload shape. Pointer fields
// distinguish "absent" from a genuine zero so the fill table applies only to
// missing values.
type RawForecast struct {
	Timelines struct {
		Hourly []RawHourly `json:"hourly"`
		Daily  []RawDaily  `json:"daily"`
	} `json:"timelines"`
}

// RawHourly is one hourly block; the first one is treated as "now".
type RawHourly struct {
	Values struct {
		Temperature              *float64 `json:"temperature"`
		PrecipitationProbability *float64 `json:"precipitationProbability"`
		Humidity                 *float64 `json:"humidity"`
		WindSpeed                *float64 `json:"windSpeed"`
	} `json:"values"`
}

// RawDaily is one daily forecast block.
type RawDaily struct {
	Time   string `json:"time"`
	Values struct {
		TemperatureMax              *float64 `json:"temperatureMax"`
		TemperatureMin              *float64 `json:"temperatureMin"`
		PrecipitationProbabilityAvg *float64 `json:"precipitationProbabilityAvg"`
		HumidityAvg                 *float64 `json:"humidityAvg"`
	} `json:"values"`
}

// Normalize maps a raw provider payload into the current snapshot plus up to
// three forecast days, chronological order. All numeric outputs are rounded
// to integers; wind is converted from m/s to km/h.
func Normalize(raw RawForecast, now time.Time) (Snapshot, []ForecastDay) {
	var current struct {
		Temperature              *float64
		PrecipitationProbability *float64
		Humidity                 *float64
		WindSpeed                *float64
	}
	if hourly := raw.Timelines.Hourly; len(hourly) > 0 {
		v := hourly[0].Values
		current.Temperature = v.Temperature
		current.PrecipitationProbability = v.PrecipitationProbability
		current.Humidity = v.Humidity
		current.WindSpeed = v.WindSpeed
	}

	tempC := roundOr(current.Temperature, defaultTempC)
	rainProb := roundOr(current.PrecipitationProbability, defaultRainPct)
	humidity := roundOr(current.Humidity, defaultHumidity)
	windKmh := int(math.Round(valueOr(current.WindSpeed, defaultWindMS) * windMSToKmh))

	snapshot := Snapshot{
		TempC:           tempC,
		RainProbability: rainProb,
		Humidity:        humidity,
		WindKmh:         windKmh,
		HeatZone:        ClassifyHeatZone(tempC),
		CapturedAt:      now,
	}

	daily := raw.Timelines.Daily
	if len(daily) > forecastDaysLimit {
		daily = daily[:forecastDaysLimit]
	}

	forecast := make([]ForecastDay, 0, len(daily))
	for _, day := range daily {
		forecast = append(forecast, ForecastDay{
			Date:            formatDayLabel(day.Time),
			MaxTempC:        roundOr(day.Values.TemperatureMax, tempC),
			MinTempC:        roundOr(day.Values.TemperatureMin, tempC-minTempOffsetC),
			RainProbability: roundOr(day.Values.PrecipitationProbabilityAvg, rainProb),
			Humidity:        roundOr(day.Values.HumidityAvg, humidity),
		})
	}

	return snapshot, forecast
}

// formatDayLabel renders an upstream day timestamp as a short display label,
// e.g. "Mon, 2 Sep". Unparseable or absent times yield an empty label; the
// UI tolerates that.
func formatDayLabel(raw string) string {
	if raw == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return ""
	}
	return t.Format("Mon, 2 Jan")
}

func roundOr(v *float64, def int) int {
	if v == nil {
		return def
	}
	return int(math.Round(*v))
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
