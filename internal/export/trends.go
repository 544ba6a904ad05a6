package export

import (
	"fmt"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"tempstat/internal/models"
)

// writeTrendPlot renders yearly mean/max/min temperature lines for one
// location.
func (e *Exporter) writeTrendPlot(stamp string, ld models.LocationData) (string, error) {
	path := filepath.Join(e.outputDir, fmt.Sprintf("temperature_trends_%s_%s.png", ld.Location.ID, stamp))

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Yearly Temperature Trends - %s", ld.Location.ID)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Temperature"

	err := plotutil.AddLinePoints(p,
		"temperature_mean", yearlyMeans(ld.Records, func(r models.DailyRecord) *float64 { return r.TemperatureMean }),
		"temperature_max", yearlyMeans(ld.Records, func(r models.DailyRecord) *float64 { return r.TemperatureMax }),
		"temperature_min", yearlyMeans(ld.Records, func(r models.DailyRecord) *float64 { return r.TemperatureMin }),
	)
	if err != nil {
		return "", fmt.Errorf("failed to build trend plot: %w", err)
	}

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return "", fmt.Errorf("failed to save trend plot: %w", err)
	}

	return path, nil
}

// yearlyMeans averages a metric per calendar year, skipping days without a
// value, and returns points ordered by year.
func yearlyMeans(records []models.DailyRecord, get func(r models.DailyRecord) *float64) plotter.XYs {
	sums := map[int]float64{}
	counts := map[int]int{}
	for _, r := range records {
		v := get(r)
		if v == nil {
			continue
		}
		year := r.Date.Year()
		sums[year] += *v
		counts[year]++
	}

	years := make([]int, 0, len(sums))
	for year := range sums {
		years = append(years, year)
	}
	sort.Ints(years)

	pts := make(plotter.XYs, 0, len(years))
	for _, year := range years {
		pts = append(pts, plotter.XY{
			X: float64(year),
			Y: sums[year] / float64(counts[year]),
		})
	}
	return pts
}
