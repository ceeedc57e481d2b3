package update

import (
	"context"
	"errors"
	"fmt"

	"masterdata-monitor/core/state"
	"masterdata-monitor/feature/region"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RegionResult is the outcome of checking one region.
type RegionResult struct {
	Code     string
	Previous state.RegionState
	Current  state.RegionState
	// LatestHash is set for hash-only regions whose hash was read.
	LatestHash string
	Changed    bool
	// Err is the reason the region kept its previous state.
	Err error
}

// Result is the outcome of one check pass.
type Result struct {
	Regions  []RegionResult
	Versions state.Versions
	Changed  state.Changed
}

// Dirty reports whether any region changed.
func (r *Result) Dirty() bool {
	return len(r.Changed) > 0
}

// Orchestrator runs the check stage: load, probe every region, diff, persist.
type Orchestrator struct {
	store       *state.Store
	adapters    []region.Adapter
	logger      *zap.Logger
	concurrency int
}

// NewOrchestrator creates an Orchestrator. A concurrency of zero probes every
// region at once.
func NewOrchestrator(store *state.Store, adapters []region.Adapter, logger *zap.Logger, concurrency int) *Orchestrator {
	return &Orchestrator{
		store:       store,
		adapters:    adapters,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Run performs one check pass. Both documents are written once, and only when
// at least one region changed.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	current, err := o.load()
	if err != nil {
		return nil, err
	}

	results := o.probeAll(ctx, current)

	res := &Result{Regions: results, Versions: current, Changed: state.Changed{}}
	for _, r := range results {
		if r.Changed {
			res.Changed[r.Code] = true
		}
	}

	if !res.Dirty() {
		o.logger.Info("No changes detected, all regions on latest version")
		return res, nil
	}

	updated := current.Clone()
	for _, r := range results {
		updated[r.Code] = r.Current
	}
	res.Versions = updated

	o.logger.Info("Changes detected, updating version file",
		zap.Strings("regions", res.Changed.Codes(region.AllCodes)))
	if err := o.store.SaveVersions(updated); err != nil {
		return res, fmt.Errorf("failed to save versions: %w", err)
	}
	if err := o.store.SaveChanged(res.Changed); err != nil {
		return res, fmt.Errorf("failed to save changed regions: %w", err)
	}
	return res, nil
}

func (o *Orchestrator) load() (state.Versions, error) {
	versions, err := o.store.LoadVersions()
	switch {
	case errors.Is(err, state.ErrNotFound):
		o.logger.Info("Version file not found, using default versions (initial setup may take a long time)")
		versions = state.Versions{}
		for _, code := range region.AllCodes {
			s, _ := region.Lookup(code)
			versions[code] = s.Initial()
		}
	case err != nil:
		return nil, fmt.Errorf("failed to load versions: %w", err)
	default:
		o.logger.Info("Existing version file found", zap.String("path", o.store.VersionPath()))
	}

	for _, a := range o.adapters {
		s := a.Settings()
		if _, ok := versions[s.Code]; !ok {
			versions[s.Code] = s.Initial()
		}
	}
	return versions, nil
}

// probeAll checks every region concurrently. A failing region never cancels the others.
func (o *Orchestrator) probeAll(ctx context.Context, current state.Versions) []RegionResult {
	results := make([]RegionResult, len(o.adapters))

	var g errgroup.Group
	if o.concurrency > 0 {
		g.SetLimit(o.concurrency)
	}
	for i, a := range o.adapters {
		prev := current[a.Settings().Code]
		g.Go(func() error {
			results[i] = o.check(ctx, a, prev)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (o *Orchestrator) check(ctx context.Context, a region.Adapter, prev state.RegionState) RegionResult {
	s := a.Settings()
	l := o.logger.With(zap.String("region", s.Code))
	res := RegionResult{Code: s.Code, Previous: prev}

	next, err := a.Discover(ctx, prev)
	if err != nil {
		l.Warn("Region check failed, keeping previous state", zap.Error(err))
		res.Err = err
		next = prev
	}

	if s.Kind.Searched() && next.Version < prev.Version {
		l.Warn("Discovered version is older than stored, keeping stored",
			zap.Int("stored", prev.Version), zap.Int("discovered", next.Version))
		next.Version = prev.Version
	}
	// Only a successful download may replace the hash.
	next.Hash = prev.Hash
	res.Current = next

	res.Changed = next.Version != prev.Version || next.CDNAddr != prev.CDNAddr

	if checker, ok := a.(region.HashChecker); ok && s.HashOnly && !res.Changed && res.Err == nil {
		hash, err := checker.LatestHash(ctx, next)
		if err != nil {
			l.Warn("Hash check failed", zap.Error(err))
		} else {
			res.LatestHash = hash
			res.Changed = hash != prev.Hash
			l.Info("Hash check complete", zap.String("current", prev.Hash), zap.String("latest", hash))
		}
	}

	l.Info("Region checked",
		zap.Int("version", next.Version),
		zap.Bool("changed", res.Changed))
	return res
}
