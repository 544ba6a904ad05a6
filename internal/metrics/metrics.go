package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchesTotal tracks archive API fetches by outcome
	FetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tempstat_fetches_total",
			Help: "Total number of archive API fetches",
		},
		[]string{"status"},
	)

	// FetchDuration tracks the duration of archive API fetches
	FetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tempstat_fetch_duration_seconds",
			Help:    "Duration of archive API fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// ExportFilesTotal tracks output files written by kind
	ExportFilesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tempstat_export_files_total",
			Help: "Total number of export files written",
		},
		[]string{"kind"},
	)

	// RunsTotal tracks completed pipeline runs
	RunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tempstat_runs_total",
			Help: "Total number of completed pipeline runs",
		},
	)

	// LastRunTimestamp records when the last pipeline run completed
	LastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tempstat_last_run_timestamp_seconds",
			Help: "Unix timestamp of the last completed pipeline run",
		},
	)

	// AppInfo provides static information about the application
	AppInfo = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tempstat_app_info",
			Help: "Application information (always 1)",
		},
	)

	// AppStartTime records when the application started
	AppStartTime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tempstat_app_start_time_seconds",
			Help: "Unix timestamp of when the application started",
		},
	)
)

func init() {
	AppInfo.Set(1)
	AppStartTime.SetToCurrentTime()
}

// RecordFetch records one archive API fetch
func RecordFetch(duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	FetchesTotal.WithLabelValues(status).Inc()
	FetchDuration.Observe(duration.Seconds())
}

// RecordRun marks a pipeline run as completed
func RecordRun() {
	RunsTotal.Inc()
	LastRunTimestamp.SetToCurrentTime()
}
