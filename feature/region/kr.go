package region

import (
	"context"
	"encoding/json"
	"fmt"

	"masterdata-monitor/core/probe"
	"masterdata-monitor/core/state"

	"go.uber.org/zap"
)

type infodeskResponse struct {
	Content struct {
		AppOption struct {
			CDNAddr string `json:"cdnAddr"`
		} `json:"appOption"`
	} `json:"content"`
}

// cdnAdapter resolves its CDN from an app info endpoint before probing. The CDN
// changes with every patch, so an unchanged address means an unchanged version.
type cdnAdapter struct {
	*resourceAdapter
	infoURL string
}

func (a *cdnAdapter) endpoint(st state.RegionState) (endpoint, error) {
	if st.CDNAddr == "" {
		return endpoint{}, fmt.Errorf("no cdn address: %w", ErrUnavailable)
	}
	return parseEndpoint(st.CDNAddr)
}

func (a *cdnAdapter) Discover(ctx context.Context, prev state.RegionState) (state.RegionState, error) {
	req, err := probe.FromURL(a.infoURL)
	if err != nil {
		return prev, err
	}

	res, err := a.prober.Probe(ctx, req)
	if err != nil {
		return prev, fmt.Errorf("%w: cdn lookup: %v", ErrUnavailable, err)
	}
	if !res.OK() {
		return prev, fmt.Errorf("%w: cdn lookup returned %d", ErrUnavailable, res.StatusCode)
	}

	var info infodeskResponse
	if err := json.Unmarshal(res.Body, &info); err != nil {
		return prev, fmt.Errorf("%w: cdn lookup: %v", ErrUnavailable, err)
	}
	cdn := info.Content.AppOption.CDNAddr
	if cdn == "" {
		return prev, fmt.Errorf("%w: cdn lookup returned no address", ErrUnavailable)
	}

	if cdn == prev.CDNAddr {
		a.logger.Info("CDN address unchanged, skipping search", zap.String("cdn", cdn))
		return prev, nil
	}

	e, err := parseEndpoint(cdn)
	if err != nil {
		return prev, err
	}
	a.logger.Info("CDN address changed", zap.String("old", prev.CDNAddr), zap.String("new", cdn))

	next := a.search(ctx, e, prev)
	next.CDNAddr = cdn
	return next, nil
}

func (a *cdnAdapter) Locate(ctx context.Context, st state.RegionState) (*Asset, error) {
	e, err := a.endpoint(st)
	if err != nil {
		return nil, err
	}
	return a.locateAt(ctx, e, st)
}
