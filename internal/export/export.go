package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"tempstat/internal/aggregator"
	"tempstat/internal/metrics"
	"tempstat/internal/models"
)

// Exporter writes all pipeline outputs into one directory, every filename
// suffixed with the run timestamp so repeated runs never overwrite.
type Exporter struct {
	outputDir string
}

func NewExporter(outputDir string) *Exporter {
	return &Exporter{outputDir: outputDir}
}

// WriteAll produces the summary JSON, the per-location detail CSVs, the
// aggregate statistics CSV, the heat-map HTML and the per-location trend
// plots. It returns the paths of every file written. Nothing is written when
// data is empty.
func (e *Exporter) WriteAll(stamp string, summaries []models.LocationSummary, data []models.LocationData) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", e.outputDir, err)
	}

	var files []string

	path, err := e.writeSummaryJSON(stamp, summaries)
	if err != nil {
		return files, err
	}
	files = append(files, path)
	metrics.ExportFilesTotal.WithLabelValues("summary_json").Inc()

	for _, ld := range data {
		path, err := e.writeDetailCSV(stamp, ld)
		if err != nil {
			return files, err
		}
		files = append(files, path)
		metrics.ExportFilesTotal.WithLabelValues("detail_csv").Inc()
	}

	path, err = e.writeStatisticsCSV(stamp, data)
	if err != nil {
		return files, err
	}
	files = append(files, path)
	metrics.ExportFilesTotal.WithLabelValues("statistics_csv").Inc()

	path, err = e.writeHeatmap(stamp, summaries)
	if err != nil {
		return files, err
	}
	files = append(files, path)
	metrics.ExportFilesTotal.WithLabelValues("heatmap_html").Inc()

	for _, ld := range data {
		path, err := e.writeTrendPlot(stamp, ld)
		if err != nil {
			return files, err
		}
		files = append(files, path)
		metrics.ExportFilesTotal.WithLabelValues("trend_png").Inc()
	}

	return files, nil
}

func (e *Exporter) writeSummaryJSON(stamp string, summaries []models.LocationSummary) (string, error) {
	path := filepath.Join(e.outputDir, fmt.Sprintf("temperature_summary_%s.json", stamp))

	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write summary JSON: %w", err)
	}

	return path, nil
}

func (e *Exporter) writeDetailCSV(stamp string, ld models.LocationData) (string, error) {
	path := filepath.Join(e.outputDir, fmt.Sprintf("temperature_data_%s_%s.csv", ld.Location.ID, stamp))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create detail CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"date", "temperature_max", "temperature_min", "temperature_mean",
		"humidity", "precipitation", "id", "address", "latitude", "longitude",
		"month", "year", "season",
	}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write detail CSV header: %w", err)
	}

	loc := ld.Location
	for _, r := range ld.Records {
		row := []string{
			r.Date.Format("2006-01-02"),
			formatPtr(r.TemperatureMax),
			formatPtr(r.TemperatureMin),
			formatPtr(r.TemperatureMean),
			formatPtr(r.Humidity),
			formatPtr(r.Precipitation),
			loc.ID,
			loc.Address,
			formatPtr(loc.Latitude),
			formatPtr(loc.Longitude),
			strconv.Itoa(int(r.Date.Month())),
			strconv.Itoa(r.Date.Year()),
			aggregator.Season(r.Date.Month()),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write detail CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush detail CSV: %w", err)
	}

	return path, nil
}

func (e *Exporter) writeStatisticsCSV(stamp string, data []models.LocationData) (string, error) {
	path := filepath.Join(e.outputDir, fmt.Sprintf("temperature_statistics_%s.csv", stamp))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create statistics CSV: %w", err)
	}
	defer f.Close()

	statColumns := aggregator.StatColumns()
	header := append([]string{"id", "address", "latitude", "longitude"}, statColumns...)

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write statistics CSV header: %w", err)
	}

	for _, ld := range data {
		stats := aggregator.SeasonalStats(ld.Records)
		row := []string{
			ld.Location.ID,
			ld.Location.Address,
			formatPtr(ld.Location.Latitude),
			formatPtr(ld.Location.Longitude),
		}
		for _, col := range statColumns {
			v, ok := stats[col]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write statistics CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush statistics CSV: %w", err)
	}

	return path, nil
}

func formatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
