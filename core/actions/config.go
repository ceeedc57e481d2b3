package actions

// Config holds the CI output settings.
type Config struct {
	// Output is the file step outputs are appended to. Empty prints them to stdout.
	Output string `mapstructure:"output" default:""`
}
