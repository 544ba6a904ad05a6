package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"tempstat/internal/models"
)

var validate = validator.New()

// LoadCoordinates reads the coordinates file: a mapping from location id to
// address, latitude, longitude and timestamp. Locations are returned sorted
// by id so runs visit them in a stable order.
func LoadCoordinates(coordinatesPath string) ([]models.Location, error) {
	data, err := os.ReadFile(coordinatesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read coordinates file %s: %w", coordinatesPath, err)
	}

	entries := map[string]models.Location{}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse coordinates file: %w", err)
	}

	locations := make([]models.Location, 0, len(entries))
	for id, loc := range entries {
		loc.ID = id
		if err := validate.Struct(loc); err != nil {
			return nil, fmt.Errorf("invalid location %q: %w", id, err)
		}
		locations = append(locations, loc)
	}

	sort.Slice(locations, func(i, j int) bool {
		return locations[i].ID < locations[j].ID
	})

	return locations, nil
}

// SaveCoordinates writes the location list back to the coordinates file,
// keyed by id. Used by the geocode tool to record resolved addresses.
func SaveCoordinates(coordinatesPath string, locations []models.Location) error {
	entries := make(map[string]models.Location, len(locations))
	for _, loc := range locations {
		entries[loc.ID] = loc
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal coordinates: %w", err)
	}

	if err := os.WriteFile(coordinatesPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write coordinates file %s: %w", coordinatesPath, err)
	}

	return nil
}
