package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"tempstat/internal/aggregator"
	"tempstat/internal/api"
	"tempstat/internal/export"
	"tempstat/internal/metrics"
	"tempstat/internal/models"
)

const stampLayout = "20060102_150405"

// Pipeline runs the fetch-aggregate-export sequence over a fixed location
// list. Locations are visited strictly one at a time; a failed fetch drops
// that location from every downstream output.
type Pipeline struct {
	client      *api.ArchiveClient
	exporter    *export.Exporter
	locations   []models.Location
	windowYears int
}

// RunResult summarizes a single pipeline run.
type RunResult struct {
	RunID   string
	Stamp   string
	Fetched int
	Skipped int
	Files   []string
}

func New(client *api.ArchiveClient, exporter *export.Exporter, locations []models.Location, windowYears int) *Pipeline {
	return &Pipeline{
		client:      client,
		exporter:    exporter,
		locations:   locations,
		windowYears: windowYears,
	}
}

// Run executes one full pipeline pass. Fetch failures are logged and skipped;
// an export failure is returned to the caller. When no location fetch
// succeeds, no files are written at all.
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	result := &RunResult{
		RunID: uuid.NewString(),
		Stamp: time.Now().Format(stampLayout),
	}

	log.Printf("Starting pipeline run %s with %d locations", result.RunID, len(p.locations))

	var summaries []models.LocationSummary
	var data []models.LocationData

	for _, loc := range p.locations {
		if !loc.HasCoordinates() {
			log.Printf("Skipping %s: no coordinates", loc.ID)
			result.Skipped++
			continue
		}

		start := time.Now()
		records, err := p.client.GetDailyHistory(ctx, *loc.Latitude, *loc.Longitude, p.windowYears)
		metrics.RecordFetch(time.Since(start), err)
		if err != nil {
			log.Printf("Skipping %s: %v", loc.ID, err)
			result.Skipped++
			continue
		}

		avgTemp, ok := aggregator.MeanTemperature(records)
		if !ok {
			log.Printf("Skipping %s: archive returned no usable temperature data", loc.ID)
			result.Skipped++
			continue
		}

		summaries = append(summaries, models.LocationSummary{
			ID:      loc.ID,
			Address: loc.Address,
			Lat:     *loc.Latitude,
			Lng:     *loc.Longitude,
			AvgTemp: avgTemp,
		})
		data = append(data, models.LocationData{Location: loc, Records: records})
		result.Fetched++
	}

	if result.Fetched == 0 {
		log.Printf("Pipeline run %s fetched no data; skipping export", result.RunID)
		return result, nil
	}

	files, err := p.exporter.WriteAll(result.Stamp, summaries, data)
	result.Files = files
	if err != nil {
		return result, err
	}

	metrics.RecordRun()
	log.Printf("Pipeline run %s completed: %d locations, %d files written",
		result.RunID, result.Fetched, len(result.Files))
	return result, nil
}
