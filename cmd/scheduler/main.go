package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"trendscope/internal/config"
	"trendscope/internal/pipeline"

	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.ScheduleTimezone)
	if err != nil {
		log.Fatalf("invalid schedule timezone %q: %v", cfg.ScheduleTimezone, err)
	}

	p, cleanup := pipeline.Build(cfg)
	defer cleanup()

	slog.Info("scheduler started", "hour", cfg.ScheduleHour, "minute", cfg.ScheduleMinute, "timezone", cfg.ScheduleTimezone)

	for {
		next := nextRun(time.Now().In(loc), cfg.ScheduleHour, cfg.ScheduleMinute)
		slog.Info("next run scheduled", "at", next.Format(time.RFC3339))
		time.Sleep(time.Until(next))

		if err := p.Run(context.Background()); err != nil {
			slog.Error("scheduled run failed", "error", err)
		}
	}
}

// nextRun returns the next daily tick at hour:minute strictly after now.
func nextRun(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
