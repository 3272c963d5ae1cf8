package events

import "strings"

// Config holds configuration for the Kafka event publisher.
type Config struct {
	// Brokers is a comma separated broker list. Empty disables publishing.
	Brokers string `mapstructure:"brokers" default:""`
	// TopicOutcomes receives merged outcomes and pass summaries.
	TopicOutcomes string `mapstructure:"topic_outcomes" default:"megasena.outcomes"`
	// WriteTimeoutSeconds bounds a single publish.
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" default:"10"`
}

// BrokerList returns the configured brokers.
func (c Config) BrokerList() []string {
	var out []string
	for _, b := range strings.Split(c.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// Enabled reports whether at least one broker is configured.
func (c Config) Enabled() bool {
	return len(c.BrokerList()) > 0
}
