package aggregator

import (
	"math"
	"strings"
	"time"

	"tempstat/internal/models"
)

// Season names in the order statistics columns are emitted.
var SeasonOrder = []string{"Winter", "Spring", "Summer", "Autumn"}

// monthSeasons is the fixed Northern-hemisphere month to season assignment.
var monthSeasons = map[time.Month]string{
	time.December: "Winter", time.January: "Winter", time.February: "Winter",
	time.March: "Spring", time.April: "Spring", time.May: "Spring",
	time.June: "Summer", time.July: "Summer", time.August: "Summer",
	time.September: "Autumn", time.October: "Autumn", time.November: "Autumn",
}

// Season returns the season name for a calendar month.
func Season(month time.Month) string {
	return monthSeasons[month]
}

// metric pairs a statistics column name with its record field accessor.
type metric struct {
	name string
	get  func(r models.DailyRecord) *float64
}

var metrics = []metric{
	{"temperature_mean", func(r models.DailyRecord) *float64 { return r.TemperatureMean }},
	{"temperature_max", func(r models.DailyRecord) *float64 { return r.TemperatureMax }},
	{"temperature_min", func(r models.DailyRecord) *float64 { return r.TemperatureMin }},
	{"humidity", func(r models.DailyRecord) *float64 { return r.Humidity }},
	{"precipitation", func(r models.DailyRecord) *float64 { return r.Precipitation }},
}

// statistics computed for every metric; precipitation additionally gets sum.
var baseStats = []string{"mean", "min", "max"}

// StatColumns returns the full ordered list of seasonal statistic column
// names, e.g. "winter_temperature_mean_mean".
func StatColumns() []string {
	var columns []string
	for _, season := range SeasonOrder {
		for _, m := range metrics {
			stats := baseStats
			if m.name == "precipitation" {
				stats = append([]string{"sum"}, baseStats...)
			}
			for _, stat := range stats {
				columns = append(columns, seasonKey(season, m.name, stat))
			}
		}
	}
	return columns
}

// SeasonalStats groups records by season and computes per-metric mean, min
// and max (plus sum for precipitation), rounded to two decimal places.
// Seasons or metrics with no data contribute no keys.
func SeasonalStats(records []models.DailyRecord) map[string]float64 {
	type bucket struct {
		sum, min, max float64
		count         int
	}

	buckets := map[string]*bucket{}
	for _, r := range records {
		season := Season(r.Date.Month())
		for _, m := range metrics {
			v := m.get(r)
			if v == nil {
				continue
			}
			key := season + "/" + m.name
			b, ok := buckets[key]
			if !ok {
				b = &bucket{min: *v, max: *v}
				buckets[key] = b
			}
			b.sum += *v
			b.count++
			if *v < b.min {
				b.min = *v
			}
			if *v > b.max {
				b.max = *v
			}
		}
	}

	stats := map[string]float64{}
	for _, season := range SeasonOrder {
		for _, m := range metrics {
			b, ok := buckets[season+"/"+m.name]
			if !ok {
				continue
			}
			stats[seasonKey(season, m.name, "mean")] = round2(b.sum / float64(b.count))
			stats[seasonKey(season, m.name, "min")] = round2(b.min)
			stats[seasonKey(season, m.name, "max")] = round2(b.max)
			if m.name == "precipitation" {
				stats[seasonKey(season, m.name, "sum")] = round2(b.sum)
			}
		}
	}
	return stats
}

// MeanTemperature returns the mean of the daily mean temperatures across the
// whole period. The second return value is false when no day carries one.
func MeanTemperature(records []models.DailyRecord) (float64, bool) {
	var sum float64
	var count int
	for _, r := range records {
		if r.TemperatureMean == nil {
			continue
		}
		sum += *r.TemperatureMean
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

func seasonKey(season, metricName, stat string) string {
	return strings.ToLower(season) + "_" + metricName + "_" + stat
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
