package weather

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRaw(t *testing.T, payload string) RawForecast {
	t.Helper()
	var raw RawForecast
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	return raw
}

func TestNormalizeFullPayload(t *testing.T) {
	raw := decodeRaw(t, `{
		"timelines": {
			"hourly": [
				{"values": {"temperature": 42.4, "precipitationProbability": 10.2, "humidity": 55.1, "windSpeed": 5.0}}
			],
			"daily": [
				{"time": "2026-09-01T00:00:00Z", "values": {"temperatureMax": 43.6, "temperatureMin": 31.2, "precipitationProbabilityAvg": 12.0, "humidityAvg": 58.0}},
				{"time": "2026-09-02T00:00:00Z", "values": {"temperatureMax": 41.0, "temperatureMin": 30.0, "precipitationProbabilityAvg": 20.0, "humidityAvg": 60.0}}
			]
		}
	}`)

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	snap, forecast := Normalize(raw, now)

	assert.Equal(t, 42, snap.TempC)
	assert.Equal(t, 10, snap.RainProbability)
	assert.Equal(t, 55, snap.Humidity)
	assert.Equal(t, 18, snap.WindKmh) // 5 m/s * 3.6
	assert.Equal(t, "Severe Heat", snap.HeatZone.Zone)
	assert.Equal(t, now, snap.CapturedAt)

	require.Len(t, forecast, 2)
	assert.Equal(t, "Tue, 1 Sep", forecast[0].Date)
	assert.Equal(t, 44, forecast[0].MaxTempC)
	assert.Equal(t, 31, forecast[0].MinTempC)
	assert.Equal(t, 12, forecast[0].RainProbability)
	assert.Equal(t, 58, forecast[0].Humidity)
	assert.Equal(t, "Wed, 2 Sep", forecast[1].Date)
}

func TestNormalizeEmptyPayloadUsesDefaults(t *testing.T) {
	snap, forecast := Normalize(RawForecast{}, time.Now().UTC())

	assert.Equal(t, 28, snap.TempC)
	assert.Equal(t, 0, snap.RainProbability)
	assert.Equal(t, 60, snap.Humidity)
	assert.Equal(t, 0, snap.WindKmh)
	assert.Equal(t, "Normal", snap.HeatZone.Zone)
	assert.Empty(t, forecast)
}

func TestNormalizeMissingDayFieldsFallBackToCurrent(t *testing.T) {
	raw := decodeRaw(t, `{
		"timelines": {
			"hourly": [{"values": {"temperature": 33.0, "precipitationProbability": 40.0, "humidity": 70.0, "windSpeed": 2.5}}],
			"daily": [{"values": {}}]
		}
	}`)

	snap, forecast := Normalize(raw, time.Now().UTC())

	require.Len(t, forecast, 1)
	assert.Equal(t, "", forecast[0].Date)
	assert.Equal(t, snap.TempC, forecast[0].MaxTempC)
	assert.Equal(t, snap.TempC-4, forecast[0].MinTempC)
	assert.Equal(t, snap.RainProbability, forecast[0].RainProbability)
	assert.Equal(t, snap.Humidity, forecast[0].Humidity)
	assert.Equal(t, 9, snap.WindKmh) // 2.5 m/s
}

func TestNormalizeTruncatesToThreeDays(t *testing.T) {
	raw := decodeRaw(t, `{
		"timelines": {
			"hourly": [],
			"daily": [
				{"time": "2026-09-01T00:00:00Z", "values": {}},
				{"time": "2026-09-02T00:00:00Z", "values": {}},
				{"time": "2026-09-03T00:00:00Z", "values": {}},
				{"time": "2026-09-04T00:00:00Z", "values": {}},
				{"time": "2026-09-05T00:00:00Z", "values": {}}
			]
		}
	}`)

	_, forecast := Normalize(raw, time.Now().UTC())

	require.Len(t, forecast, 3)
	assert.Equal(t, "Tue, 1 Sep", forecast[0].Date)
	assert.Equal(t, "Thu, 3 Sep", forecast[2].Date)
}

// A genuine zero must not be mistaken for an absent field.
func TestNormalizeZeroIsNotAbsent(t *testing.T) {
	raw := decodeRaw(t, `{
		"timelines": {
			"hourly": [{"values": {"temperature": 0.0, "precipitationProbability": 0.0, "humidity": 0.0, "windSpeed": 0.0}}],
			"daily": []
		}
	}`)

	snap, _ := Normalize(raw, time.Now().UTC())

	assert.Equal(t, 0, snap.TempC)
	assert.Equal(t, 0, snap.Humidity)
}

func TestWindConversion(t *testing.T) {
	raw := decodeRaw(t, `{
		"timelines": {"hourly": [{"values": {"windSpeed": 10.0}}], "daily": []}
	}`)

	snap, _ := Normalize(raw, time.Now().UTC())
	assert.Equal(t, 36, snap.WindKmh)
}
