package scheduler

// Config holds configuration for automatic reconciliation passes.
type Config struct {
	// Enabled turns the periodic and rollover triggers on.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Schedule is a cron spec or descriptor for periodic passes. Empty disables them.
	Schedule string `mapstructure:"schedule" default:"@every 30m"`
	// Timezone is used for cron specs and date rollover detection.
	Timezone string `mapstructure:"timezone" default:"America/Sao_Paulo"`
	// Policy selects which pending draws automatic passes resolve (forward, lookback).
	Policy string `mapstructure:"policy" default:"forward"`
	// Lookback is the draw window used by the lookback policy.
	Lookback int `mapstructure:"lookback" default:"15"`
	// MaxAutoDraws bounds how many never-fetched draws an automatic pass may request.
	MaxAutoDraws int `mapstructure:"max_auto_draws" default:"12"`
	// RunOnStartup fires one automatic pass when the scheduler starts.
	RunOnStartup bool `mapstructure:"run_on_startup" default:"true"`
	// PassTimeoutSeconds bounds a single pass. Zero means no bound.
	PassTimeoutSeconds int `mapstructure:"pass_timeout_seconds" default:"300"`
}

const (
	PolicyForward  = "forward"
	PolicyLookback = "lookback"
)

// IsValidPolicy checks if the configured policy is known.
func (c Config) IsValidPolicy() bool {
	switch c.Policy {
	case PolicyForward, PolicyLookback:
		return true
	default:
		return false
	}
}
