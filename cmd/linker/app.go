package main

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eviction-cares/internal/audit"
	"github.com/eviction-cares/internal/config"
	"github.com/eviction-cares/internal/db"
	"github.com/eviction-cares/internal/engine"
	"github.com/eviction-cares/internal/geocode"
	"github.com/eviction-cares/internal/ingest"
	"github.com/eviction-cares/internal/logging"
	"github.com/eviction-cares/internal/normalize"
)

// app holds the wired components for one command invocation
type app struct {
	cfg          *config.Config
	logger       *zap.Logger
	conn         *db.Connection
	redis        *redis.Client
	standardizer *normalize.Standardizer
	tracker      *audit.Tracker
	runs         *engine.RunRegistry
	suggestions  *engine.SuggestionEngine
	pipeline     *engine.Pipeline
	properties   *engine.Properties
}

// newStandardizer selects the address parser backend
func newStandardizer(cfg *config.Config) (*normalize.Standardizer, error) {
	parser, err := addressParser(cfg.Matching.AddressParser)
	if err != nil {
		return nil, err
	}
	return normalize.NewStandardizer(parser), nil
}

func loadBase() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Format, "linker")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logger, nil
}

func newApp(ctx context.Context) (*app, error) {
	cfg, logger, err := loadBase()
	if err != nil {
		return nil, err
	}

	standardizer, err := newStandardizer(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:          cfg,
		logger:       logger,
		conn:         conn,
		standardizer: standardizer,
		tracker:      audit.NewTracker(conn.DB),
		runs:         engine.NewRunRegistry(conn.DB),
	}

	var cache *geocode.Cache
	if cfg.Cache.Addr != "" {
		a.redis = redis.NewClient(&redis.Options{Addr: cfg.Cache.Addr, DB: cfg.Cache.DB})
		if err := a.redis.Ping(ctx).Err(); err != nil {
			logger.Warn("geocode cache unavailable, continuing without it", zap.String("addr", cfg.Cache.Addr), zap.Error(err))
		}
		cache = geocode.NewCache(a.redis, cfg.Cache.TTL, logger)
	}

	radius := cfg.Matching.SuggestionRadiusMeters
	client := geocode.NewClient(geocode.OptionsFromConfig(cfg.Geocoder), cache, logger)

	a.suggestions = engine.NewSuggestionEngine(conn.DB, a.tracker, radius, logger)
	a.properties = engine.NewProperties(conn.DB, a.standardizer, logger)
	a.pipeline = engine.NewPipeline(conn.DB,
		ingest.NewStager(a.standardizer, logger),
		engine.NewExactLinker(logger),
		engine.NewGeocodeStep(client, cfg.Geocoder.State, logger),
		engine.NewPromoter(logger),
		a.runs,
		radius,
		logger,
	)
	return a, nil
}

func (a *app) Close() {
	if a.redis != nil {
		a.redis.Close()
	}
	a.conn.Close()
	a.logger.Sync()
}

// withApp wires the components, runs fn and releases them
func withApp(fn func(ctx context.Context, a *app, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(ctx, a, args)
	}
}
