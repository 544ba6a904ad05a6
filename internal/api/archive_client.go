package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tempstat/internal/models"
)

const defaultBaseURL = "https://archive-api.open-meteo.com/v1/archive"

// dailyFields are the archive metrics the pipeline aggregates.
var dailyFields = []string{
	"temperature_2m_max",
	"temperature_2m_min",
	"temperature_2m_mean",
	"relative_humidity_2m_mean",
	"precipitation_sum",
}

// ErrNoDailyData is returned when the archive response lacks the daily
// object. Callers treat it as "skip this location".
var ErrNoDailyData = errors.New("archive response has no daily data")

// ArchiveClient is a client for the Open-Meteo historical archive API.
type ArchiveClient struct {
	client  *http.Client
	baseURL string
}

type ArchiveParams struct {
	Latitude    float64
	Longitude   float64
	StartDate   time.Time
	EndDate     time.Time
	DailyFields []string
	Timezone    string
}

// NewArchiveClient creates a new archive API client. An empty baseURL selects
// the public Open-Meteo endpoint.
func NewArchiveClient(baseURL string) *ArchiveClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &ArchiveClient{
		client:  &http.Client{},
		baseURL: baseURL,
	}
}

// Builds the URL for an archive request
func (c *ArchiveClient) BuildURL(params ArchiveParams) string {
	if params.Timezone == "" {
		params.Timezone = "auto"
	}

	url := fmt.Sprintf("%s?latitude=%.4f&longitude=%.4f&start_date=%s&end_date=%s&timezone=%s",
		c.baseURL, params.Latitude, params.Longitude,
		params.StartDate.Format("2006-01-02"), params.EndDate.Format("2006-01-02"), params.Timezone)

	if len(params.DailyFields) > 0 {
		url += "&daily=" + strings.Join(params.DailyFields, ",")
	}

	return url
}

// GetDailyHistory fetches daily weather data for the trailing window of
// windowYears years ending today and parses it into records ordered by date
// ascending.
func (c *ArchiveClient) GetDailyHistory(ctx context.Context, latitude, longitude float64, windowYears int) ([]models.DailyRecord, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -windowYears*365)

	url := c.BuildURL(ArchiveParams{
		Latitude:    latitude,
		Longitude:   longitude,
		StartDate:   startDate,
		EndDate:     endDate,
		DailyFields: dailyFields,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build archive request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch archive data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var payload archiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if payload.Daily == nil {
		return nil, ErrNoDailyData
	}

	return payload.Daily.records()
}

type archiveResponse struct {
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Timezone  string        `json:"timezone"`
	Daily     *archiveDaily `json:"daily"`
}

// archiveDaily mirrors the parallel arrays of the archive response. Metric
// values are pointers because the API returns null for days without data.
type archiveDaily struct {
	Time                   []string   `json:"time"`
	Temperature2mMax       []*float64 `json:"temperature_2m_max"`
	Temperature2mMin       []*float64 `json:"temperature_2m_min"`
	Temperature2mMean      []*float64 `json:"temperature_2m_mean"`
	RelativeHumidity2mMean []*float64 `json:"relative_humidity_2m_mean"`
	PrecipitationSum       []*float64 `json:"precipitation_sum"`
}

func (d *archiveDaily) records() ([]models.DailyRecord, error) {
	records := make([]models.DailyRecord, 0, len(d.Time))
	for i, ts := range d.Time {
		date, err := time.Parse("2006-01-02", ts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse daily time %q: %w", ts, err)
		}

		records = append(records, models.DailyRecord{
			Date:            date,
			TemperatureMax:  at(d.Temperature2mMax, i),
			TemperatureMin:  at(d.Temperature2mMin, i),
			TemperatureMean: at(d.Temperature2mMean, i),
			Humidity:        at(d.RelativeHumidity2mMean, i),
			Precipitation:   at(d.PrecipitationSum, i),
		})
	}
	return records, nil
}

// at guards against metric arrays shorter than the time array.
func at(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}
