package download

// Config holds the download stage settings.
type Config struct {
	// Dir receives raw bundles and converted databases.
	Dir string `mapstructure:"dir" default:"."`
	// KeepRaw keeps the downloaded bundle next to the converted database.
	KeepRaw bool `mapstructure:"keep_raw" default:"false"`
}
