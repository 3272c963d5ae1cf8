package draws

import (
	"megasena-monitor/core/reconcile"
	"megasena-monitor/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Provider is the official results source used by the feature.
type Provider interface {
	reconcile.Provider
	LatestFetcher
}

// Options wires the optional persisted tiers.
type Options struct {
	// Redis enables the shared cache tier when set.
	Redis RedisClient
	// RedisPrefix namespaces the Redis keys.
	RedisPrefix string
	// Storage enables the bucket archive tier when set.
	Storage storage.Client
	// Bucket is the archive bucket.
	Bucket string
	// Concurrency bounds parallel draw lookups.
	Concurrency int
}

// Feature implements the loader.Feature interface.
type Feature struct {
	db      *DBStore
	tiers   *TieredStore
	cache   *reconcile.ResultCache
	service *Service
	handler *Handler
}

// NewFeature creates the draws feature. Tiers are consulted in the order
// redis, database, archive, then the provider.
func NewFeature(db *gorm.DB, provider Provider, opts Options, logger *zap.Logger) *Feature {
	dbStore := NewDBStore(db)

	tiers := NewTieredStore(logger)
	if opts.Redis != nil {
		tiers.Add("redis", NewRedisStore(opts.Redis, opts.RedisPrefix))
	}
	tiers.Add("database", dbStore)
	if opts.Storage != nil && opts.Bucket != "" {
		tiers.Add("archive", NewArchiveStore(opts.Storage, opts.Bucket))
	}

	cache := reconcile.NewResultCache(provider,
		reconcile.WithDrawStore(tiers),
		reconcile.WithConcurrency(opts.Concurrency),
		reconcile.WithLogger(logger),
	)
	svc := NewService(cache, provider, dbStore, logger)

	return &Feature{
		db:      dbStore,
		tiers:   tiers,
		cache:   cache,
		service: svc,
		handler: NewHandler(svc, logger),
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "draws"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load migrates the draws table and registers the routes.
func (f *Feature) Load(app fiber.Router) error {
	if err := f.db.Migrate(); err != nil {
		return err
	}
	f.handler.RegisterRoutes(app)
	return nil
}

// Cache returns the result cache shared with reconciliation.
func (f *Feature) Cache() *reconcile.ResultCache {
	return f.cache
}

// Service returns the draw service.
func (f *Feature) Service() *Service {
	return f.service
}

// Store returns the database tier.
func (f *Feature) Store() *DBStore {
	return f.db
}

// Tiers returns the persisted tier chain.
func (f *Feature) Tiers() *TieredStore {
	return f.tiers
}
