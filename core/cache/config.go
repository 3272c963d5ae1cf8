package cache

// Config holds configuration for the shared Redis cache.
type Config struct {
	// Enabled adds Redis as a draw result tier.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Addr is the Redis host:port.
	Addr string `mapstructure:"addr" default:"localhost:6379"`
	// Password is the Redis password.
	Password string `mapstructure:"password" default:""`
	// DB is the Redis database index.
	DB int `mapstructure:"db" default:"0"`
	// Prefix is prepended to every key.
	Prefix string `mapstructure:"prefix" default:"megasena:"`
	// TimeoutSeconds bounds dialing and every command.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"5"`
}
