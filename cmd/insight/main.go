package main

import (
	"context"
	"os"

	"log/slog"

	"github.com/joho/godotenv"

	"github.com/tummybutters/wm/internal/config"
	"github.com/tummybutters/wm/internal/database"
	"github.com/tummybutters/wm/internal/insight"
	"github.com/tummybutters/wm/internal/logging"
	"github.com/tummybutters/wm/internal/metrics"
)

func main() {
	// A missing .env file is fine; real deployments set env directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to init logger", "error", err)
		os.Exit(1)
	}

	if cfg.OpenAI.APIKey == "" {
		logger.Error("OPENAI_API_KEY is required for insight generation")
		os.Exit(1)
	}

	logger.Info("starting insight generation batch")

	ctx := context.Background()

	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.Database.URL
	db, err := database.Connect(ctx, dbCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("database connected")

	if err := database.RunMigrations(db, "./migrations", logger); err != nil {
		logger.Warn("failed to run migrations, continuing anyway", "error", err)
	}

	collector, err := metrics.NewJobCollector("insight")
	if err != nil {
		logger.Error("failed to init metrics", "error", err)
		os.Exit(1)
	}

	generatorCfg := insight.DefaultOpenAIConfig()
	generatorCfg.APIKey = cfg.OpenAI.APIKey
	generatorCfg.Model = cfg.OpenAI.Model
	generatorCfg.Temperature = cfg.OpenAI.Temperature
	generatorCfg.MaxTokens = cfg.OpenAI.MaxTokens

	job := insight.NewJob(
		database.NewAggregateRepository(db),
		database.NewEntryRepository(db),
		database.NewInsightRepository(db),
		insight.NewOpenAIGenerator(generatorCfg, logger),
		logger,
	)

	summary, err := job.Run(ctx)
	if err != nil {
		logger.Error("insight run failed", "error", err)
		os.Exit(1)
	}

	collector.ObserveRun(summary.Succeeded, summary.Failed, summary.Skipped, summary.Duration)
	collector.Push(cfg.Metrics.PushgatewayURL, logger)

	logger.Info("insight batch finished",
		"day", summary.Day.String(),
		"users", summary.Users,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
	)
}
