// Package config provides configuration management for megasena-monitor.
//
// Values come from environment variables, optionally loaded from a .env
// file. Every key has a default declared with a `default` struct tag next to
// its `mapstructure` name; nested keys map to upper snake case variables
// (sync.max_auto_draws -> SYNC_MAX_AUTO_DRAWS).
//
// # Sections
//
//   - server: port, API key
//   - log: level and format
//   - database: sqlite (default) or mysql
//   - storage: MinIO/S3 draw archive
//   - redis: shared draw cache
//   - kafka: outcome events
//   - provider: official results API
//   - reconcile: cache concurrency, capture and warm-up sizes
//   - sync: scheduler, policy and per pass bounds
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Sync.Policy)
package config
