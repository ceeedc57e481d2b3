package config

import (
	"reflect"
	"strings"

	"masterdata-monitor/core/actions"
	"masterdata-monitor/core/convert"
	"masterdata-monitor/core/database"
	"masterdata-monitor/core/logger"
	"masterdata-monitor/core/metrics"
	"masterdata-monitor/core/probe"
	"masterdata-monitor/core/server"
	"masterdata-monitor/core/state"
	"masterdata-monitor/core/storage"
	"masterdata-monitor/feature/download"
	"masterdata-monitor/feature/region"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// State holds the locations of version.json and changed.json.
	State state.Config `mapstructure:"state"`
	// Probe holds the outbound HTTP settings.
	Probe probe.Config `mapstructure:"probe"`
	// Regions selects the regions handled by a run.
	Regions region.Config `mapstructure:"regions"`
	// Download holds the download stage settings.
	Download download.Config `mapstructure:"download"`
	// Convert holds the external conversion commands.
	Convert convert.Config `mapstructure:"convert"`
	// Storage holds configuration for publishing databases (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Database holds configuration for the history database.
	Database database.Config `mapstructure:"database"`
	// Server holds configuration for the status API.
	Server server.Config `mapstructure:"server"`
	// Metrics holds the pushgateway settings.
	Metrics metrics.Config `mapstructure:"metrics"`
	// Github holds the CI step output settings.
	Github actions.Config `mapstructure:"github"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
