package weather

// BuildAdvisory derives the farmer-facing advisory from current conditions.
// Rules are checked in fixed priority order and the first match wins: rain
// outranks humidity outranks heat, because spoilage from an unexpected
// downpour costs more than storage humidity or heat stress.
func BuildAdvisory(rainProbability, humidity, tempC int) Advisory {
	switch {
	case rainProbability > 60:
		return Advisory{Level: AdvisoryDanger, Text: "Heavy rain expected. Avoid harvesting today."}
	case rainProbability >= 30:
		return Advisory{Level: AdvisoryWarning, Text: "Possible rain. Be cautious while working."}
	case humidity > 80:
		return Advisory{Level: AdvisoryWarning, Text: "High humidity. Storage risk is high."}
	case tempC > 38:
		return Advisory{Level: AdvisoryWarning, Text: "Extreme heat alert. Stay hydrated, rest often."}
	default:
		return Advisory{Level: AdvisoryGood, Text: "Good weather. Safe to work in the fields."}
	}
}
