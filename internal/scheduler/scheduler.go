package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"tempstat/internal/pipeline"
)

// Scheduler runs the pipeline repeatedly at a fixed interval.
type Scheduler struct {
	scheduler *gocron.Scheduler
	pipe      *pipeline.Pipeline
	interval  time.Duration
}

// New creates a new Scheduler.
func New(pipe *pipeline.Pipeline, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		pipe:      pipe,
		interval:  interval,
	}
}

// Start schedules the periodic pipeline run and starts the underlying
// scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 60
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: starting pipeline run")
		if _, err := s.pipe.Run(context.Background()); err != nil {
			log.Printf("scheduler: pipeline run failed: %v", err)
			return
		}
		log.Println("scheduler: pipeline run completed")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future runs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
