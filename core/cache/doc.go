// Package cache connects to the shared Redis instance.
//
// Redis is optional. When enabled it holds confirmed draw results so several
// service instances, or a restarted one, skip the provider for draws another
// process already fetched.
//
// # Usage
//
//	rdb, err := cache.Connect(cfg.Redis)
//	key := cfg.Redis.Key("draw", "2650")
package cache
