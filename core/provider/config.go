package provider

// Config holds configuration for the draw result provider.
type Config struct {
	// BaseURL is the Mega-Sena results endpoint. Draws are fetched at BaseURL/{number}.
	BaseURL string `mapstructure:"base_url" default:"https://servicebus2.caixa.gov.br/portaldeloterias/api/megasena"`
	// TimeoutSeconds bounds every provider call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// RequestsPerSecond limits the outgoing request rate.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"5"`
	// Burst is the number of requests allowed above the steady rate.
	Burst int `mapstructure:"burst" default:"5"`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" default:"megasena-monitor/1.0"`
}
