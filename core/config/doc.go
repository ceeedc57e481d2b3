// Package config provides configuration management for the monitor.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults are declared with `default` struct tags on every
// section and registered by walking the struct.
//
// # Configuration Structure
//
//   - Log: logging level and format
//   - State: version.json / changed.json location
//   - Probe: HTTP timeouts, user agent, region concurrency
//   - Regions: enabled region codes (REGIONS_ENABLED=CN,JP,KR,TW)
//   - Download, Convert: output directory and conversion commands
//   - Storage: optional S3/MinIO publishing
//   - Database: optional run history (MySQL or SQLite)
//   - Server: status API port and API key
//   - Metrics: optional Pushgateway
//   - Github: step output file (GITHUB_OUTPUT)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Regions.Enabled)
package config
