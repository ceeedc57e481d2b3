package region

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"masterdata-monitor/core/probe"
	"masterdata-monitor/core/search"
	"masterdata-monitor/core/state"

	"go.uber.org/zap"
)

// endpoint is the scheme, host and path prefix resources are served under.
type endpoint struct {
	scheme string
	host   string
	prefix string
}

func (e endpoint) resource(s Settings, version int, file string) string {
	return fmt.Sprintf("%s/dl/Resources/%s/%s/AssetBundles/%s/%s",
		e.prefix, s.FormatVersion(version), s.Locale, s.Platform, file)
}

func (e endpoint) url(path string) string {
	return e.scheme + "://" + e.host + path
}

func parseEndpoint(raw string) (endpoint, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return endpoint{}, fmt.Errorf("invalid cdn address %q: %w", raw, ErrUnavailable)
	}
	return endpoint{
		scheme: u.Scheme,
		host:   u.Host,
		prefix: strings.TrimSuffix(u.Path, "/"),
	}, nil
}

// resourceAdapter serves regions whose versions are found by probing a resource path.
type resourceAdapter struct {
	settings Settings
	prober   probe.Prober
	logger   *zap.Logger
	strategy search.Strategy
}

func newResourceAdapter(s Settings, p probe.Prober, logger *zap.Logger) *resourceAdapter {
	var strategy search.Strategy
	switch s.Kind {
	case KindDigit:
		strategy = search.NewDigitDescent()
	default:
		strategy = search.Linear{Step: s.Step, MaxTries: s.MaxTries}
	}
	return &resourceAdapter{settings: s, prober: p, logger: logger, strategy: strategy}
}

func (a *resourceAdapter) Settings() Settings {
	return a.settings
}

func (a *resourceAdapter) home() endpoint {
	return endpoint{scheme: a.settings.Scheme, host: a.settings.Host, prefix: a.settings.PathPrefix}
}

// Discover searches forward from the stored version. Digit regions restart
// from their default version on every run.
func (a *resourceAdapter) Discover(ctx context.Context, prev state.RegionState) (state.RegionState, error) {
	return a.search(ctx, a.home(), prev), nil
}

func (a *resourceAdapter) search(ctx context.Context, e endpoint, prev state.RegionState) state.RegionState {
	start := prev.Version
	if a.settings.Kind == KindDigit {
		start = a.settings.DefaultVersion
	}

	a.logger.Info("Searching for new version", zap.Int("from", start))
	next := prev
	next.Version = a.strategy.Search(ctx, start, a.oracle(e))
	a.logger.Info("Version search complete", zap.Int("version", next.Version))
	return next
}

func (a *resourceAdapter) oracle(e endpoint) search.Oracle {
	return func(ctx context.Context, version int) bool {
		if a.settings.LogEvery > 0 && version%a.settings.LogEvery == 0 {
			a.logger.Info("Guess", zap.Int("guess", version))
		} else {
			a.logger.Debug("Guess", zap.Int("guess", version))
		}

		req := probe.Get(e.scheme, e.host, e.resource(a.settings, version, a.settings.ProbeFile))
		res, err := a.prober.Probe(ctx, req)
		if err != nil {
			a.logger.Debug("Probe failed", zap.Int("guess", version), zap.Error(err))
			return false
		}
		if !res.OK() {
			return false
		}
		a.logger.Info("Valid version", zap.Int("version", version))
		return true
	}
}

// Locate walks manifest_assetmanifest to the master database entry and reads its hash.
func (a *resourceAdapter) Locate(ctx context.Context, st state.RegionState) (*Asset, error) {
	return a.locateAt(ctx, a.home(), st)
}

func (a *resourceAdapter) locateAt(ctx context.Context, e endpoint, st state.RegionState) (*Asset, error) {
	manifest, err := a.fetch(ctx, e, e.resource(a.settings, st.Version, manifestFile))
	if err != nil {
		return nil, err
	}
	assetPath, err := FindAssetPath(manifest)
	if err != nil {
		return nil, err
	}

	meta, err := a.fetch(ctx, e, e.resource(a.settings, st.Version, assetPath))
	if err != nil {
		return nil, err
	}
	hash, err := ExtractHash(meta)
	if err != nil {
		return nil, err
	}

	pool, err := poolPath(e.prefix, hash)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Located master database", zap.String("asset", assetPath), zap.String("hash", hash))
	return &Asset{Hash: hash, URL: e.url(pool)}, nil
}

func (a *resourceAdapter) fetch(ctx context.Context, e endpoint, path string) (string, error) {
	return fetchBody(ctx, a.prober, probe.Fetch(e.scheme, e.host, path))
}

func fetchBody(ctx context.Context, p probe.Prober, req probe.Request) (string, error) {
	res, err := p.Probe(ctx, req)
	if err != nil {
		return "", err
	}
	if !res.OK() {
		return "", fmt.Errorf("%s returned %d: %w", req.URL(), res.StatusCode, probe.ErrUnexpectedStatus)
	}
	return string(res.Body), nil
}

// hashAdapter is a resource region that can replace its database without a new version.
type hashAdapter struct {
	*resourceAdapter
}

// LatestHash reads the masterdata hash served at the stored version.
func (a *hashAdapter) LatestHash(ctx context.Context, st state.RegionState) (string, error) {
	e := a.home()
	body, err := a.fetch(ctx, e, e.resource(a.settings, st.Version, masterdataFile))
	if err != nil {
		return "", err
	}
	return ExtractHash(body)
}
