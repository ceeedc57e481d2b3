package probe

// Config holds transport settings for outbound probes.
type Config struct {
	// TimeoutSeconds bounds connection setup, TLS handshake and the wait for response
	// headers. Bodies are not bounded so large bundles can stream.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// UserAgent is sent with every request when set.
	UserAgent string `mapstructure:"user_agent" default:""`
	// Concurrency limits how many regions are probed at once. Zero means unlimited.
	Concurrency int `mapstructure:"concurrency" default:"0"`
}
