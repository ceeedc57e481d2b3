package region

import (
	"fmt"
	"strings"
)

// Config selects the regions handled by a run.
type Config struct {
	// Enabled is a comma separated list of region codes. EN and TH have shut
	// down and are off by default.
	Enabled string `mapstructure:"enabled" default:"CN,JP,KR,TW"`
}

// Codes returns the enabled region codes in report order.
func (c Config) Codes() ([]string, error) {
	want := make(map[string]bool)
	for _, part := range strings.Split(c.Enabled, ",") {
		code := strings.ToUpper(strings.TrimSpace(part))
		if code == "" {
			continue
		}
		if _, ok := table[code]; !ok {
			return nil, fmt.Errorf("%s: %w", code, ErrUnknownRegion)
		}
		want[code] = true
	}

	var codes []string
	for _, code := range AllCodes {
		if want[code] {
			codes = append(codes, code)
		}
	}
	return codes, nil
}
