// Package jobs runs the background maintenance tasks.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Roller starts a new metrics day.
type Roller interface {
	Rollover(ctx context.Context) error
}

// Jobs schedules the daily rollover.
type Jobs struct {
	scheduler *gocron.Scheduler
	roller    Roller
	logger    *slog.Logger
}

func New(roller Roller, loc *time.Location, logger *slog.Logger) *Jobs {
	s := gocron.NewScheduler(loc)
	s.SingletonModeAll()
	return &Jobs{
		scheduler: s,
		roller:    roller,
		logger:    logger,
	}
}

// Start schedules the rollover every day at the given "HH:MM" and an
// hourly catch-up for days the process slept through, then runs them in
// the background.
func (j *Jobs) Start(at string) error {
	if _, err := j.scheduler.Every(1).Day().At(at).Do(j.rollover); err != nil {
		return fmt.Errorf("schedule daily rollover: %w", err)
	}
	if _, err := j.scheduler.Every(1).Hour().Do(j.rollover); err != nil {
		return fmt.Errorf("schedule hourly rollover: %w", err)
	}
	j.scheduler.StartAsync()
	return nil
}

// RunNow triggers every job immediately.
func (j *Jobs) RunNow() {
	j.scheduler.RunAll()
}

func (j *Jobs) Stop() {
	j.scheduler.Stop()
}

func (j *Jobs) rollover() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := j.roller.Rollover(ctx); err != nil {
		j.logger.Error("rollover failed", "error", err)
	}
}
