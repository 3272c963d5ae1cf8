package cmd

import (
	"context"
	"fmt"

	"megasena-monitor/core/cache"
	"megasena-monitor/core/config"
	"megasena-monitor/core/database"
	"megasena-monitor/core/events"
	"megasena-monitor/core/logger"
	"megasena-monitor/core/provider"
	"megasena-monitor/core/reconcile"
	"megasena-monitor/core/storage"
	"megasena-monitor/feature/bets"
	betmodels "megasena-monitor/feature/bets/models"
	"megasena-monitor/feature/draws"
	drawmodels "megasena-monitor/feature/draws/models"
	"megasena-monitor/feature/integrity"
	"megasena-monitor/feature/integrity/checks"
	"megasena-monitor/feature/verification"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime holds the wired components shared by every command.
type runtime struct {
	cfg      *config.Config
	log      *zap.Logger
	db       *gorm.DB
	storage  storage.Client
	redis    *redis.Client
	provider *provider.Client
	notifier *verification.KafkaNotifier

	bets         *bets.Feature
	draws        *draws.Feature
	verification *verification.Feature
	integrity    *integrity.Feature
}

// newRuntime loads configuration and connects everything. The database is
// required; Redis, the archive bucket and Kafka are optional and only logged
// when unreachable.
func newRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required: %w", err)
	}
	logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

	rt := &runtime{cfg: cfg, log: logg, db: db, provider: provider.New(&cfg.Provider, logg)}

	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			logg.Warn("Draw archive unavailable", zap.Error(err))
		} else {
			rt.storage = client
		}
	}

	if cfg.Redis.Enabled {
		if rdb, err := cache.Connect(cfg.Redis); err != nil {
			logg.Warn("Redis unavailable, continuing without shared cache", zap.Error(err))
		} else {
			rt.redis = rdb
		}
	}

	opts := draws.Options{
		RedisPrefix: cfg.Redis.Prefix,
		Bucket:      cfg.Storage.Bucket,
		Concurrency: cfg.Reconcile.Concurrency,
	}
	if rt.redis != nil {
		opts.Redis = rt.redis
	}
	if rt.storage != nil {
		opts.Storage = rt.storage
	}

	rt.bets = bets.NewFeature(db, logg)
	rt.draws = draws.NewFeature(db, rt.provider, opts, logg)
	logg.Debug("Draw tiers", zap.Strings("tiers", rt.draws.Tiers().Tiers()))

	var notifier reconcile.Notifier
	if cfg.Kafka.Enabled() {
		rt.notifier = verification.NewKafkaNotifier(events.NewWriter(cfg.Kafka), logg)
		notifier = rt.notifier
	}

	rt.verification, err = verification.NewFeature(rt.bets.Store(), rt.draws.Cache(), rt.provider, notifier, cfg.Sync, logg)
	if err != nil {
		return nil, fmt.Errorf("invalid sync configuration: %w", err)
	}

	rt.integrity = integrity.NewFeature(rt.storage, cfg.Storage.Bucket, db, rt.draws.Store(),
		checks.MergeColumns(betmodels.Columns, drawmodels.Columns), logg)

	return rt, nil
}

// migrate creates the tables for commands that do not load the HTTP features.
func (rt *runtime) migrate() error {
	if err := rt.bets.Store().Migrate(); err != nil {
		return err
	}
	return rt.draws.Store().Migrate()
}

func (rt *runtime) close() {
	if rt.notifier != nil {
		if err := rt.notifier.Close(); err != nil {
			rt.log.Warn("Failed to close event writer", zap.Error(err))
		}
	}
	if rt.redis != nil {
		_ = rt.redis.Close()
	}
	if sqlDB, err := rt.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = rt.log.Sync()
}
