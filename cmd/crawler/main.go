package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"trendscope/internal/config"
	"trendscope/internal/pipeline"

	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	p, cleanup := pipeline.Build(cfg)
	defer cleanup()

	if err := p.Run(context.Background()); err != nil {
		log.Fatalf("pipeline run failed: %v", err)
	}
}
