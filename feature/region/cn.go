package region

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"masterdata-monitor/core/probe"
	"masterdata-monitor/core/state"
	"masterdata-monitor/core/utils"

	"go.uber.org/zap"
)

type maintenanceResponse struct {
	Data struct {
		// ManifestVer arrives as a number or a string.
		ManifestVer any      `json:"manifest_ver"`
		Resource    []string `json:"resource"`
	} `json:"data"`
}

type mirrorVersion struct {
	Hash string `json:"hash"`
}

// lookupAdapter reads the version from the maintenance status endpoint and
// downloads from a mirror of the game's database.
type lookupAdapter struct {
	settings Settings
	prober   probe.Prober
	logger   *zap.Logger

	statusURL   string
	resKey      string
	mirrorHash  string
	mirrorAsset string
}

func (a *lookupAdapter) Settings() Settings {
	return a.settings
}

func (a *lookupAdapter) Discover(ctx context.Context, prev state.RegionState) (state.RegionState, error) {
	req, err := probe.FromURL(a.statusURL)
	if err != nil {
		return prev, err
	}
	req.Method = http.MethodPost
	req.Header = map[string]string{"RES-KEY": a.resKey}

	res, err := a.prober.Probe(ctx, req)
	if err != nil {
		return prev, fmt.Errorf("%w: maintenance status: %v", ErrUnavailable, err)
	}
	if !res.OK() {
		return prev, fmt.Errorf("%w: maintenance status returned %d", ErrUnavailable, res.StatusCode)
	}

	// During maintenance the server answers with a message instead of data.
	var status maintenanceResponse
	if err := json.Unmarshal(res.Body, &status); err != nil {
		return prev, fmt.Errorf("%w: maintenance status: %v", ErrUnavailable, err)
	}
	if len(status.Data.Resource) == 0 {
		return prev, fmt.Errorf("%w: no resource in maintenance status, game under maintenance?", ErrUnavailable)
	}

	version, err := utils.ParseInt(status.Data.ManifestVer)
	if err != nil {
		return prev, fmt.Errorf("%w: manifest_ver: %v", ErrUnavailable, err)
	}
	if version <= 0 {
		return prev, fmt.Errorf("%w: manifest_ver %d", ErrUnavailable, version)
	}

	next := prev
	next.Version = version
	next.CDNAddr = status.Data.Resource[0]
	a.logger.Info("Version lookup complete", zap.Int("version", next.Version), zap.String("cdn", next.CDNAddr))
	return next, nil
}

func (a *lookupAdapter) Locate(ctx context.Context, st state.RegionState) (*Asset, error) {
	req, err := probe.FromURL(a.mirrorHash)
	if err != nil {
		return nil, err
	}
	body, err := fetchBody(ctx, a.prober, req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest hash: %w", err)
	}

	var v mirrorVersion
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		return nil, fmt.Errorf("failed to decode latest hash: %w", err)
	}
	if v.Hash == "" {
		return nil, fmt.Errorf("mirror returned no hash: %w", ErrManifest)
	}
	return &Asset{Hash: v.Hash, URL: a.mirrorAsset}, nil
}
