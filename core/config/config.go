package config

import (
	"reflect"
	"strings"

	"megasena-monitor/core/cache"
	"megasena-monitor/core/database"
	"megasena-monitor/core/events"
	"megasena-monitor/core/logger"
	"megasena-monitor/core/provider"
	"megasena-monitor/core/scheduler"
	"megasena-monitor/core/server"
	"megasena-monitor/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the bet and draw database.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the draw archive bucket.
	Storage storage.Config `mapstructure:"storage"`
	// Redis holds configuration for the shared draw cache.
	Redis cache.Config `mapstructure:"redis"`
	// Kafka holds configuration for outcome events.
	Kafka events.Config `mapstructure:"kafka"`
	// Provider holds configuration for the official results API.
	Provider provider.Config `mapstructure:"provider"`
	// Reconcile holds configuration for reconciliation passes.
	Reconcile ReconcileConfig `mapstructure:"reconcile"`
	// Sync holds configuration for automatic passes.
	Sync scheduler.Config `mapstructure:"sync"`
}

// ReconcileConfig tunes the result cache.
type ReconcileConfig struct {
	// Concurrency bounds parallel draw lookups in a pass.
	Concurrency int `mapstructure:"concurrency" default:"8"`
	// CaptureCount is how many recent draws the capture command warms by default.
	CaptureCount int `mapstructure:"capture_count" default:"36"`
	// WarmOnStartup preloads this many recent draws into memory at start. Zero disables it.
	WarmOnStartup int `mapstructure:"warm_on_startup" default:"15"`
}

// LoadConfig loads configuration from environment variables and an optional .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." || path == "" {
		envPath = ".env"
	}

	// A missing .env is fine; production sets real environment variables.
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// SYNC_MAX_AUTO_DRAWS -> sync.max_auto_draws
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues walks the struct and registers every 'mapstructure' key with its
// 'default' tag value, so AutomaticEnv can resolve nested keys.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
	}
}
