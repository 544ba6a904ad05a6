package main

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"tempstat/internal/config"
	"tempstat/internal/geocode"
	"tempstat/internal/models"
)

const (
	defaultConfigPath      = "config.yaml"
	defaultCoordinatesPath = "coordinates.yaml"
)

// geocode resolves a street address to coordinates and records the result in
// the coordinates file for the pipeline to pick up.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	configPath := defaultConfigPath
	coordinatesPath := defaultCoordinatesPath
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	if len(os.Args) > 2 {
		coordinatesPath = os.Args[2]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	apiKey := cfg.GeocoderAPIKey()
	if apiKey == "" {
		log.Fatalf("No geocoding API key in %s or GOOGLE_MAPS_API_KEY", configPath)
	}

	fmt.Print("Enter address like (Ouseburn Road,Newcastle upon Tyne,UK): ")
	reader := bufio.NewReader(os.Stdin)
	address, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("Failed to read address: %v", err)
	}
	address = strings.TrimSpace(address)
	if address == "" {
		log.Fatal("No address entered")
	}

	lat, lng, err := geocode.Resolve(apiKey, address)
	if err != nil {
		log.Fatalf("Could not retrieve coordinates: %v", err)
	}

	fmt.Printf("Latitude: %v, Longitude: %v\n", lat, lng)

	// Append to the existing coordinates file; start a fresh one if missing.
	locations, err := config.LoadCoordinates(coordinatesPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Failed to load coordinates: %v", err)
	}

	locations = append(locations, models.Location{
		ID:        fmt.Sprintf("aim_%d", len(locations)+1),
		Address:   address,
		Latitude:  &lat,
		Longitude: &lng,
		Timestamp: time.Now().Format(time.RFC3339),
	})

	if err := config.SaveCoordinates(coordinatesPath, locations); err != nil {
		log.Fatalf("Failed to save coordinates: %v", err)
	}

	fmt.Printf("Coordinates saved to %s\n", coordinatesPath)
}
