package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tempstat/internal/api"
	"tempstat/internal/config"
	"tempstat/internal/export"
	"tempstat/internal/geocode"
	"tempstat/internal/pipeline"
	"tempstat/internal/scheduler"
)

const (
	defaultConfigPath      = "config.yaml"
	defaultCoordinatesPath = "coordinates.yaml"
)

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

	locations, err := config.LoadCoordinates(coordinatesPath)
	if err != nil {
		log.Fatalf("Failed to load coordinates: %v", err)
	}

	locations = geocode.FillMissing(cfg.GeocoderAPIKey(), locations)
	if len(locations) == 0 {
		log.Fatalf("No usable locations in %s", coordinatesPath)
	}

	client := api.NewArchiveClient(cfg.Archive.BaseURL)
	exporter := export.NewExporter(cfg.Directories.TemperatureOutput)
	pipe := pipeline.New(client, exporter, locations, cfg.Archive.WindowYears)

	if addr := cfg.Metrics.ListenAddr; addr != "" {
		go func() {
			log.Printf("Serving metrics on %s", addr)
			if err := http.ListenAndServe(addr, promhttp.Handler()); err != nil {
				log.Printf("Metrics server stopped: %v", err)
			}
		}()
	}

	if cfg.ScheduleInterval == 0 {
		if _, err := pipe.Run(context.Background()); err != nil {
			log.Fatalf("Pipeline run failed: %v", err)
		}
		return
	}

	// Scheduled mode: run once immediately, then on the configured interval
	// until interrupted.
	if _, err := pipe.Run(context.Background()); err != nil {
		log.Fatalf("Pipeline run failed: %v", err)
	}

	sched := scheduler.New(pipe, cfg.ScheduleInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("Pipeline scheduled. Press Ctrl+C to stop...")
	<-quit

	log.Println("Shutting down...")
}
