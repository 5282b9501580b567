package weather

import (
	"math"
	"time"
)

// RiskLevel grades how dangerous current conditions are for field work.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// AdvisoryLevel is the severity of a farmer-facing advisory message.
type AdvisoryLevel string

const (
	AdvisoryGood    AdvisoryLevel = "good"
	AdvisoryWarning AdvisoryLevel = "warning"
	AdvisoryDanger  AdvisoryLevel = "danger"
)

// Coordinate identifies a location. It is the natural key for historical
// records, so latitude/longitude are normalized to 4 decimal places (~11m)
// before storage or lookup; otherwise repeated requests with different
// client-side float formatting would never match their own history.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewCoordinate normalizes lat/lon to the canonical key precision.
func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Latitude:  roundTo(lat, 4),
		Longitude: roundTo(lon, 4),
	}
}

// Valid reports whether the coordinate lies inside the WGS84 bounds,
// boundaries inclusive.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// HeatZone is a named temperature-risk band used for color-coding alerts.
type HeatZone struct {
	Zone      string    `json:"zone"`
	RiskLevel RiskLevel `json:"riskLevel"`
	Color     string    `json:"color"`
}

// Advisory is the plain-language risk message derived from a snapshot.
type Advisory struct {
	Level AdvisoryLevel `json:"level"`
	Text  string        `json:"text"`
}

// Snapshot is a single normalized point-in-time weather reading.
// All values are rounded integers per the UI contract.
type Snapshot struct {
	TempC           int       `json:"tempC"`
	RainProbability int       `json:"rainProbability"`
	Humidity        int       `json:"humidity"`
	WindKmh         int       `json:"windKmh"`
	HeatZone        HeatZone  `json:"heatZone"`
	CapturedAt      time.Time `json:"-"`
}

// ForecastDay is one entry of the short daily outlook, chronological order.
type ForecastDay struct {
	Date            string `json:"date"`
	MaxTempC        int    `json:"maxTempC"`
	MinTempC        int    `json:"minTempC"`
	RainProbability int    `json:"rainProbability"`
	Humidity        int    `json:"humidity"`
}

// Report is the composed response for a current-weather lookup.
type Report struct {
	Current   Snapshot      `json:"current"`
	Forecast  []ForecastDay `json:"forecast"`
	Advisory  Advisory      `json:"advisory"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Record is a persisted snapshot. JSON field names mirror the
// weather_records table columns so history responses stay wire-compatible
// with the stored rows.
type Record struct {
	ID              string    `json:"id"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	TemperatureC    int       `json:"temperature_c"`
	Humidity        int       `json:"humidity"`
	RainProbability int       `json:"rain_probability"`
	WindKmh         int       `json:"wind_kmh"`
	HeatZone        string    `json:"heat_zone"`
	RiskLevel       RiskLevel `json:"risk_level"`
	AdvisoryText    string    `json:"advisory_text"`
	CreatedAt       time.Time `json:"created_at"`
}
