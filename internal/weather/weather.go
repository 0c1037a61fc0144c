package weather

import (
	"hash/fnv"
	"time"
)

// Mock weather: no network calls. Conditions are derived deterministically
// from the location and the day, so the widget is stable within a day and
// changes when the user moves.

type Conditions struct {
	Temp      int
	Condition string
	Icon      string
}

type ForecastDay struct {
	Day string
	Conditions
}

type Report struct {
	Location string
	Current  Conditions
	Forecast []ForecastDay
}

var conditionTable = []struct {
	name string
	icon string
}{
	{"Sunny", "☀️"},
	{"Partly Cloudy", "🌤️"},
	{"Cloudy", "☁️"},
	{"Rainy", "🌧️"},
	{"Windy", "💨"},
	{"Snowy", "🌨️"},
}

// For returns current conditions and a three-day forecast for location.
func For(location string, now time.Time) Report {
	seed := hashSeed(location, now)

	r := Report{
		Location: location,
		Current:  conditionsAt(seed),
	}

	for i := 1; i <= 3; i++ {
		day := now.AddDate(0, 0, i)
		label := day.Weekday().String()
		if i == 1 {
			label = "Tomorrow"
		}
		r.Forecast = append(r.Forecast, ForecastDay{
			Day:        label,
			Conditions: conditionsAt(hashSeed(location, day)),
		})
	}
	return r
}

func conditionsAt(seed uint32) Conditions {
	c := conditionTable[seed%uint32(len(conditionTable))]
	// 5..24 °C, enough spread to look alive without a real API.
	temp := 5 + int((seed/7)%20)
	return Conditions{Temp: temp, Condition: c.name, Icon: c.icon}
}

func hashSeed(location string, day time.Time) uint32 {
	h := fnv.New32a()
	h.Write([]byte(location))
	h.Write([]byte(day.Format("2006-01-02")))
	return h.Sum32()
}
