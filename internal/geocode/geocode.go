package geocode

import (
	"fmt"
	"log"
	"strings"

	"github.com/kelvins/geocoder"

	"tempstat/internal/models"
)

// ParseAddress splits a free-form "street,city,country" line into the
// structured address the Google Geocoding API expects. Missing trailing
// parts are left empty.
func ParseAddress(raw string) geocoder.Address {
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	address := geocoder.Address{Street: parts[0]}
	if len(parts) > 1 {
		address.City = parts[1]
	}
	if len(parts) > 2 {
		address.Country = parts[2]
	}
	return address
}

// Resolve geocodes a free-form address using the configured API key.
func Resolve(apiKey, address string) (float64, float64, error) {
	if apiKey == "" {
		return 0, 0, fmt.Errorf("no geocoding API key configured")
	}

	geocoder.ApiKey = apiKey
	location, err := geocoder.Geocoding(ParseAddress(address))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to geocode %q: %w", address, err)
	}

	return location.Latitude, location.Longitude, nil
}

// FillMissing resolves coordinates for locations that carry an address but
// no latitude/longitude. Locations that cannot be resolved are dropped with
// a log line; the remaining list is returned.
func FillMissing(apiKey string, locations []models.Location) []models.Location {
	filled := make([]models.Location, 0, len(locations))
	for _, loc := range locations {
		if loc.HasCoordinates() {
			filled = append(filled, loc)
			continue
		}

		if loc.Address == "" {
			log.Printf("Skipping %s: no coordinates and no address to geocode", loc.ID)
			continue
		}

		lat, lng, err := Resolve(apiKey, loc.Address)
		if err != nil {
			log.Printf("Skipping %s: %v", loc.ID, err)
			continue
		}

		loc.Latitude = &lat
		loc.Longitude = &lng
		filled = append(filled, loc)
	}
	return filled
}
