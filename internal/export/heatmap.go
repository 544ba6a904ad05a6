package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"tempstat/internal/models"
)

// heatmapTemplate is a standalone Leaflet document with a heat layer. The
// map is centered at the arithmetic mean of all location coordinates and
// each point is weighted by its overall mean temperature. Rendered with
// text/template so coordinates and the point array are emitted verbatim.
var heatmapTemplate = template.Must(template.New("heatmap").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Temperature Heatmap</title>
  <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
  <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
  <script src="https://unpkg.com/leaflet.heat@0.2.0/dist/leaflet-heat.js"></script>
  <style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
  <div id="map"></div>
  <script>
    var map = L.map('map').setView([{{.CenterLat}}, {{.CenterLng}}], {{.Zoom}});
    L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
      attribution: '&copy; OpenStreetMap contributors'
    }).addTo(map);
    L.heatLayer({{.Points}}, {radius: 25}).addTo(map);
  </script>
</body>
</html>
`))

type heatmapData struct {
	CenterLat float64
	CenterLng float64
	Zoom      int
	Points    string
}

func (e *Exporter) writeHeatmap(stamp string, summaries []models.LocationSummary) (string, error) {
	path := filepath.Join(e.outputDir, fmt.Sprintf("temperature_heatmap_%s.html", stamp))

	var sumLat, sumLng float64
	points := make([][3]float64, 0, len(summaries))
	for _, s := range summaries {
		sumLat += s.Lat
		sumLng += s.Lng
		points = append(points, [3]float64{s.Lat, s.Lng, s.AvgTemp})
	}
	n := float64(len(summaries))

	encoded, err := json.Marshal(points)
	if err != nil {
		return "", fmt.Errorf("failed to encode heatmap points: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create heatmap file: %w", err)
	}
	defer f.Close()

	data := heatmapData{
		CenterLat: sumLat / n,
		CenterLng: sumLng / n,
		Zoom:      13,
		Points:    string(encoded),
	}
	if err := heatmapTemplate.Execute(f, data); err != nil {
		return "", fmt.Errorf("failed to render heatmap: %w", err)
	}

	return path, nil
}
