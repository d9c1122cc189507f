package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/deepceutix/datagen/internal/adapters/otel"
	"github.com/deepceutix/datagen/internal/adapters/storage"
	"github.com/deepceutix/datagen/internal/adapters/turso"
	"github.com/deepceutix/datagen/internal/config"
	"github.com/deepceutix/datagen/internal/database"
	"github.com/deepceutix/datagen/internal/generate"
	"github.com/deepceutix/datagen/internal/llm"
	"github.com/deepceutix/datagen/internal/logging"
	"github.com/deepceutix/datagen/internal/migrate"
	"github.com/deepceutix/datagen/internal/ports"
	"github.com/deepceutix/datagen/internal/scenario"
	"github.com/deepceutix/datagen/internal/web"
)

// AppContext holds all shared dependencies for CLI commands.
type AppContext struct {
	Config    *config.Config
	DB        *sql.DB
	Logger    *logging.Logger
	Repos     *turso.Repositories
	Artifacts ports.ArtifactStore
	Metrics   *web.Metrics
	Exporter  ports.MetricsExporter
	Service   *generate.Service
}

// NewAppContext loads configuration, opens the stores and applies pending
// migrations.
func NewAppContext(ctx context.Context) (*AppContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := logging.Stderr(cfg.Level())

	db, err := database.Open(ctx, cfg.DatabaseOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := migrate.RunAll(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	artifacts, err := storage.Open(ctx, cfg.StorageConfig())
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize artifact storage: %w", err)
	}

	exporter, err := otel.Open(ctx, cfg.OtelConfig())
	if err != nil {
		logger.Error(fmt.Sprintf("otel exporter disabled: %v", err))
		exporter = otel.NewNoOpExporter()
	}
	metrics := web.NewMetrics()
	fan := web.FanOut{exporter, metrics}

	repos := turso.NewRepositories(db)
	runner := scenario.NewRunner(scenario.Builtins(), repos.Runs, artifacts, fan, logger)
	svc := generate.NewService(generate.Deps{
		Providers: llm.NewDefaultRegistry(cfg.LLMConfig()),
		Runner:    runner,
		Runs:      repos.Runs,
		Artifacts: artifacts,
		Metrics:   fan,
		Logger:    logger,
	})

	return &AppContext{
		Config:    cfg,
		DB:        db,
		Logger:    logger,
		Repos:     repos,
		Artifacts: artifacts,
		Metrics:   metrics,
		Exporter:  exporter,
		Service:   svc,
	}, nil
}

// Close flushes metrics and releases the database.
func (a *AppContext) Close(ctx context.Context) error {
	if err := a.Exporter.Close(ctx); err != nil {
		a.Logger.Error(fmt.Sprintf("failed to flush metrics: %v", err))
	}
	return a.DB.Close()
}
