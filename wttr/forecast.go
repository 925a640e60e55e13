package wttr

import "math/rand"

// DayForecast is one day of fabricated forecast data.
type DayForecast struct {
	Day       int    `json:"day"`
	HighF     int    `json:"high_f"`
	LowF      int    `json:"low_f"`
	Condition string `json:"condition"`
}

var forecastConditions = []string{"sunny", "cloudy", "rainy"}

// Forecast fabricates a multi-day outlook for demos that need plausible
// weather data without a network call. Highs fall in 60-90 F, lows in
// 40-65 F, conditions are drawn from a fixed set. Days defaults to 3.
func Forecast(city string, days int) []DayForecast {
	if days <= 0 {
		days = 3
	}

	forecast := make([]DayForecast, 0, days)
	for i := 0; i < days; i++ {
		forecast = append(forecast, DayForecast{
			Day:       i + 1,
			HighF:     60 + rand.Intn(31),
			LowF:      40 + rand.Intn(26),
			Condition: forecastConditions[rand.Intn(len(forecastConditions))],
		})
	}

	return forecast
}
