package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewArchiveClient(t *testing.T) {
	client := NewArchiveClient("")
	if client == nil {
		t.Fatal("NewArchiveClient() returned nil")
	}
	if client.baseURL != defaultBaseURL {
		t.Errorf("Expected default base URL '%s', got '%s'", defaultBaseURL, client.baseURL)
	}
	if client.client == nil {
		t.Error("ArchiveClient.client should not be nil")
	}
}

func TestBuildURL(t *testing.T) {
	client := NewArchiveClient("")

	tests := []struct {
		name   string
		params ArchiveParams
		want   string
	}{
		{
			name: "daily history window",
			params: ArchiveParams{
				Latitude:    54.9783,
				Longitude:   -1.5882,
				StartDate:   time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC),
				EndDate:     time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
				DailyFields: []string{"temperature_2m_max", "precipitation_sum"},
			},
			want: "https://archive-api.open-meteo.com/v1/archive?latitude=54.9783&longitude=-1.5882&start_date=2019-03-01&end_date=2024-02-29&timezone=auto&daily=temperature_2m_max,precipitation_sum",
		},
		{
			name: "explicit timezone without daily fields",
			params: ArchiveParams{
				Latitude:  37.7749,
				Longitude: -122.4194,
				StartDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
				Timezone:  "Europe/London",
			},
			want: "https://archive-api.open-meteo.com/v1/archive?latitude=37.7749&longitude=-122.4194&start_date=2023-01-01&end_date=2023-12-31&timezone=Europe/London",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := client.BuildURL(tt.params)
			if got != tt.want {
				t.Errorf("BuildURL() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetDailyHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("latitude") == "" || q.Get("start_date") == "" || q.Get("end_date") == "" {
			t.Errorf("Missing expected query parameters in %s", r.URL.RawQuery)
		}
		if !strings.Contains(q.Get("daily"), "temperature_2m_mean") {
			t.Errorf("Expected daily fields to include temperature_2m_mean, got %q", q.Get("daily"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"latitude": 54.98,
			"longitude": -1.59,
			"daily": {
				"time": ["2024-01-01", "2024-01-02", "2024-01-03"],
				"temperature_2m_max": [5.1, 6.2, null],
				"temperature_2m_min": [-1.0, 0.5, 1.1],
				"temperature_2m_mean": [2.0, 3.3, null],
				"relative_humidity_2m_mean": [81.0, 79.5, 80.0],
				"precipitation_sum": [0.0, 4.2, 1.1]
			}
		}`))
	}))
	defer server.Close()

	client := NewArchiveClient(server.URL)

	records, err := client.GetDailyHistory(context.Background(), 54.9783, -1.5882, 5)
	if err != nil {
		t.Fatalf("GetDailyHistory() error = %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	if !records[0].Date.Before(records[1].Date) || !records[1].Date.Before(records[2].Date) {
		t.Error("Expected records ordered by date ascending")
	}

	if records[0].TemperatureMax == nil || *records[0].TemperatureMax != 5.1 {
		t.Errorf("Unexpected first temperature_max: %v", records[0].TemperatureMax)
	}
	if records[2].TemperatureMax != nil {
		t.Errorf("Expected null temperature_max to stay nil, got %v", *records[2].TemperatureMax)
	}
	if records[2].TemperatureMean != nil {
		t.Errorf("Expected null temperature_mean to stay nil, got %v", *records[2].TemperatureMean)
	}
	if records[1].Precipitation == nil || *records[1].Precipitation != 4.2 {
		t.Errorf("Unexpected precipitation: %v", records[1].Precipitation)
	}
}

func TestGetDailyHistory_NoDailyKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"latitude": 54.98, "longitude": -1.59}`))
	}))
	defer server.Close()

	client := NewArchiveClient(server.URL)

	_, err := client.GetDailyHistory(context.Background(), 54.9783, -1.5882, 5)
	if !errors.Is(err, ErrNoDailyData) {
		t.Errorf("Expected ErrNoDailyData, got %v", err)
	}
}

func TestGetDailyHistory_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewArchiveClient(server.URL)

	_, err := client.GetDailyHistory(context.Background(), 54.9783, -1.5882, 5)
	if err == nil {
		t.Error("Expected error for 500 response, got nil")
	}
}

func TestGetDailyHistory_NetworkError(t *testing.T) {
	client := NewArchiveClient("http://127.0.0.1:1")

	_, err := client.GetDailyHistory(context.Background(), 54.9783, -1.5882, 5)
	if err == nil {
		t.Error("Expected error for unreachable server, got nil")
	}
}
