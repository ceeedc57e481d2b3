package region

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"masterdata-monitor/core/convert"
	"masterdata-monitor/core/state"
)

// Region codes.
const (
	CN = "CN"
	EN = "EN"
	JP = "JP"
	KR = "KR"
	TH = "TH"
	TW = "TW"
)

// AllCodes lists every known region in report order.
var AllCodes = []string{CN, EN, JP, KR, TH, TW}

var (
	// ErrUnknownRegion is returned for codes outside AllCodes.
	ErrUnknownRegion = errors.New("unknown region")
	// ErrUnavailable marks a failed mandatory lookup. The region keeps its previous state.
	ErrUnavailable = errors.New("region unavailable")
	// ErrManifest marks a manifest without a usable masterdata entry.
	ErrManifest = errors.New("invalid manifest")
)

// Kind selects how a region discovers its version.
type Kind int

const (
	// KindLinear probes forward in fixed steps.
	KindLinear Kind = iota
	// KindDigit narrows a zero-padded version digit by digit.
	KindDigit
	// KindLookup reads the version from an authoritative endpoint.
	KindLookup
)

// Searched reports whether versions of this kind are found by probing.
// Probed versions never move backwards.
func (k Kind) Searched() bool {
	return k == KindLinear || k == KindDigit
}

// Settings is the immutable configuration of one region.
type Settings struct {
	Code   string
	Scheme string
	Host   string
	// PathPrefix precedes /dl/ in every resource path.
	PathPrefix string
	// Locale is the resource folder name (Jpn, Kor, Tha).
	Locale   string
	Platform string
	// ProbeFile is the manifest requested while searching versions.
	ProbeFile string

	DefaultVersion int
	Step           int
	MaxTries       int
	// LogEvery logs only guesses divisible by it at info level. Zero logs every hit only.
	LogEvery int
	// VersionWidth zero-pads versions in paths when set.
	VersionWidth int

	Kind  Kind
	Codec convert.Codec
	// RawExt is the suffix of the downloaded bundle.
	RawExt string
	// Retired regions have shut down and are not enabled by default.
	Retired bool
	// HashOnly regions can publish a new database without a new version.
	HashOnly bool
	// UsesCDN regions store a dynamically assigned CDN address.
	UsesCDN bool
}

// FileName returns the base name of the region's files, e.g. master_jp.
func (s Settings) FileName() string {
	return "master_" + strings.ToLower(s.Code)
}

// DatabaseName returns the converted database file name.
func (s Settings) DatabaseName() string {
	return s.FileName() + ".db"
}

// RawName returns the downloaded bundle file name.
func (s Settings) RawName() string {
	return s.FileName() + s.RawExt
}

// FormatVersion renders v the way the region's resource paths expect.
func (s Settings) FormatVersion(v int) string {
	if s.VersionWidth > 0 {
		return fmt.Sprintf("%0*d", s.VersionWidth, v)
	}
	return fmt.Sprintf("%d", v)
}

// Initial returns the state of a region that was never checked.
func (s Settings) Initial() state.RegionState {
	return state.RegionState{Version: s.DefaultVersion}
}

// Asset is the located master database bundle of a region.
type Asset struct {
	// Hash is the content hash of the bundle.
	Hash string
	// URL is where the bundle is downloaded from.
	URL string
}

// Adapter discovers versions of one region and locates its master database.
type Adapter interface {
	Settings() Settings
	// Discover returns the region's current state given the stored one. On
	// ErrUnavailable the returned state equals prev.
	Discover(ctx context.Context, prev state.RegionState) (state.RegionState, error)
	// Locate resolves the master database bundle for the stored state.
	Locate(ctx context.Context, st state.RegionState) (*Asset, error)
}

// HashChecker is implemented by regions whose database can change while the
// version stays the same.
type HashChecker interface {
	LatestHash(ctx context.Context, st state.RegionState) (string, error)
}
