package models

import "time"

// Location is a named geographic point loaded from the coordinates file.
// Latitude and longitude are pointers so that entries carrying only an
// address can be detected and geocoded before the pipeline runs.
type Location struct {
	ID        string   `yaml:"-" json:"id" validate:"required"`
	Address   string   `yaml:"address" json:"address"`
	Latitude  *float64 `yaml:"latitude" json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `yaml:"longitude" json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Timestamp string   `yaml:"timestamp" json:"timestamp,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are set.
func (l Location) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// DailyRecord is one day of archive weather data for a single location.
// Metric fields are pointers because the archive API returns null for days
// it has no data for; a nil value is excluded from aggregation but the day
// itself is kept.
type DailyRecord struct {
	Date            time.Time
	TemperatureMax  *float64
	TemperatureMin  *float64
	TemperatureMean *float64
	Humidity        *float64
	Precipitation   *float64
}

// LocationData bundles a location with its fetched daily records, ordered by
// date ascending.
type LocationData struct {
	Location Location
	Records  []DailyRecord
}

// LocationSummary is the pre-aggregation view of one location, used for the
// heat-map weights and the summary JSON export.
type LocationSummary struct {
	ID      string  `json:"id"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	AvgTemp float64 `json:"avg_temp"`
}
