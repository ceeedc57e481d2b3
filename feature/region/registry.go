package region

import (
	"masterdata-monitor/core/logger"
	"masterdata-monitor/core/probe"

	"go.uber.org/zap"
)

// New returns the adapter of a region.
func New(code string, p probe.Prober, log *zap.Logger) (Adapter, error) {
	s, err := Lookup(code)
	if err != nil {
		return nil, err
	}
	l := logger.WithRegion(log, code)

	switch code {
	case CN:
		return &lookupAdapter{
			settings:    s,
			prober:      p,
			logger:      l,
			statusURL:   cnMaintenanceURL,
			resKey:      cnResKey,
			mirrorHash:  cnMirrorVersion,
			mirrorAsset: cnMirrorDatabase,
		}, nil
	case KR:
		return &cdnAdapter{resourceAdapter: newResourceAdapter(s, p, l), infoURL: krInfodeskURL}, nil
	case EN:
		return &hashAdapter{resourceAdapter: newResourceAdapter(s, p, l)}, nil
	default:
		return newResourceAdapter(s, p, l), nil
	}
}

// ProberFunc returns the prober a region's adapter should use.
type ProberFunc func(code string) probe.Prober

// NewSet returns the adapters of codes in order.
func NewSet(codes []string, probers ProberFunc, log *zap.Logger) ([]Adapter, error) {
	adapters := make([]Adapter, 0, len(codes))
	for _, code := range codes {
		a, err := New(code, probers(code), log)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}
	return adapters, nil
}
