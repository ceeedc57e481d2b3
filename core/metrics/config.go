package metrics

// Config holds the metrics export settings.
type Config struct {
	// PushgatewayURL receives the metrics of each run. Empty disables pushing.
	PushgatewayURL string `mapstructure:"pushgateway_url" default:""`
	// Job is the pushgateway job label.
	Job string `mapstructure:"job" default:"masterdata_monitor"`
}
