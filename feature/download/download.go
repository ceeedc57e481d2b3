package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"masterdata-monitor/core/convert"
	"masterdata-monitor/core/database"
	"masterdata-monitor/core/probe"
	"masterdata-monitor/core/state"
	"masterdata-monitor/core/storage"
	"masterdata-monitor/feature/region"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrVersionFile is returned when the check stage has not run yet.
	ErrVersionFile = errors.New("version file not found, check for updates first")
	// ErrMissingPrerequisite marks a region without the stored state a download needs.
	ErrMissingPrerequisite = errors.New("missing prerequisite")
)

// Publisher uploads produced files.
type Publisher interface {
	PublishFile(ctx context.Context, localPath, contentType string) error
}

// RegionResult is the outcome of one region's download.
type RegionResult struct {
	Code string
	// Diff is set when a new database was downloaded and converted.
	Diff *DiffRecord
	// Database is the converted file path.
	Database string
	Bytes    int64
	// Skipped explains a no-op.
	Skipped error
	Err     error
}

// Result is the outcome of one download pass.
type Result struct {
	Regions  []RegionResult
	Changed  state.Changed
	Versions state.Versions
}

// Diffs returns the hash changes in report order.
func (r *Result) Diffs() []DiffRecord {
	var out []DiffRecord
	for _, rr := range r.Regions {
		if rr.Diff != nil {
			out = append(out, *rr.Diff)
		}
	}
	return out
}

// Orchestrator runs the download stage for the regions flagged by the check stage.
type Orchestrator struct {
	cfg        Config
	store      *state.Store
	adapters   []region.Adapter
	probers    region.ProberFunc
	converters convert.Registry
	verify     bool
	publisher  Publisher
	logger     *zap.Logger
}

// NewOrchestrator creates an Orchestrator. publisher may be nil.
func NewOrchestrator(
	cfg Config,
	store *state.Store,
	adapters []region.Adapter,
	probers region.ProberFunc,
	converters convert.Registry,
	verify bool,
	publisher Publisher,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		store:      store,
		adapters:   adapters,
		probers:    probers,
		converters: converters,
		verify:     verify,
		publisher:  publisher,
		logger:     logger,
	}
}

// Run downloads every flagged region whose hash moved. Hashes of successful
// regions are saved even when other regions fail; the failures are returned
// combined.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	versions, err := o.store.LoadVersions()
	if errors.Is(err, state.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrVersionFile, o.store.VersionPath())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load versions: %w", err)
	}
	changed, err := o.store.LoadChanged()
	if err != nil {
		return nil, fmt.Errorf("failed to load changed regions: %w", err)
	}

	res := &Result{
		Regions:  make([]RegionResult, len(o.adapters)),
		Changed:  changed,
		Versions: versions,
	}

	var g errgroup.Group
	for i, a := range o.adapters {
		st, ok := versions[a.Settings().Code]
		g.Go(func() error {
			res.Regions[i] = o.process(ctx, a, st, ok && changed.Has(a.Settings().Code))
			return nil
		})
	}
	_ = g.Wait()

	var errs error
	updated := false
	for _, rr := range res.Regions {
		if rr.Err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", rr.Code, rr.Err))
			continue
		}
		if rr.Diff != nil {
			st := versions[rr.Code]
			st.Hash = rr.Diff.NewHash
			versions[rr.Code] = st
			updated = true
		}
	}

	if updated {
		if err := o.store.SaveVersions(versions); err != nil {
			return res, multierr.Append(errs, fmt.Errorf("failed to save versions: %w", err))
		}
		errs = multierr.Append(errs, o.publish(ctx, res))
	}
	return res, errs
}

func (o *Orchestrator) publish(ctx context.Context, res *Result) error {
	if o.publisher == nil {
		return nil
	}
	var errs error
	for _, rr := range res.Regions {
		if rr.Diff == nil {
			continue
		}
		errs = multierr.Append(errs, o.publisher.PublishFile(ctx, rr.Database, storage.ContentTypeSQLite))
	}
	return multierr.Append(errs, o.publisher.PublishFile(ctx, o.store.VersionPath(), storage.ContentTypeJSON))
}

func (o *Orchestrator) process(ctx context.Context, a region.Adapter, st state.RegionState, flagged bool) RegionResult {
	s := a.Settings()
	l := o.logger.With(zap.String("region", s.Code))
	res := RegionResult{Code: s.Code}

	if !flagged {
		res.Skipped = errors.New("not flagged")
		return res
	}
	if err := prerequisites(s, st); err != nil {
		l.Info("Skipping download", zap.Error(err))
		res.Skipped = err
		return res
	}

	l.Info("Downloading database")
	asset, err := a.Locate(ctx, st)
	if err != nil {
		res.Err = fmt.Errorf("failed to locate database: %w", err)
		return res
	}
	if asset.Hash == st.Hash {
		l.Info("Database up to date", zap.String("hash", asset.Hash))
		res.Skipped = errors.New("hash unchanged")
		return res
	}
	l.Info("Database changes found", zap.String("old", st.Hash), zap.String("new", asset.Hash))

	raw := filepath.Join(o.cfg.Dir, s.RawName())
	n, err := o.fetch(ctx, s.Code, asset.URL, raw)
	if err != nil {
		res.Err = err
		return res
	}
	res.Bytes = n

	db := filepath.Join(o.cfg.Dir, s.DatabaseName())
	if err := o.convert(ctx, s, raw, db); err != nil {
		res.Err = err
		return res
	}
	if !o.cfg.KeepRaw {
		_ = os.Remove(raw)
	}

	l.Info("Downloaded and converted database",
		zap.String("hash", asset.Hash),
		zap.String("file", db),
		zap.Int64("bytes", n))
	res.Database = db
	res.Diff = &DiffRecord{Code: s.Code, OldHash: st.Hash, NewHash: asset.Hash}
	return res
}

func prerequisites(s region.Settings, st state.RegionState) error {
	if s.Kind == region.KindLookup {
		return nil
	}
	if st.Version <= 0 {
		return fmt.Errorf("%w: no version", ErrMissingPrerequisite)
	}
	if s.UsesCDN && st.CDNAddr == "" {
		return fmt.Errorf("%w: no cdn address", ErrMissingPrerequisite)
	}
	return nil
}

// fetch streams the bundle at rawURL into path through a temporary file.
func (o *Orchestrator) fetch(ctx context.Context, code, rawURL, path string) (int64, error) {
	req, err := probe.FromURL(rawURL)
	if err != nil {
		return 0, fmt.Errorf("invalid bundle url %q: %w", rawURL, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create download dir: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.part")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmp := f.Name()

	n, err := o.probers(code).Stream(ctx, req, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return n, fmt.Errorf("failed to download bundle: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return n, fmt.Errorf("failed to move bundle: %w", err)
	}
	return n, nil
}

func (o *Orchestrator) convert(ctx context.Context, s region.Settings, raw, db string) error {
	conv, err := o.converters.Get(s.Codec)
	if err != nil {
		return err
	}
	if err := conv.Convert(ctx, raw, db); err != nil {
		return err
	}
	if !o.verify {
		return nil
	}
	tables, err := database.VerifyFile(db)
	if err != nil {
		return fmt.Errorf("%w: %v", convert.ErrConversion, err)
	}
	o.logger.Debug("Verified database", zap.String("region", s.Code), zap.Int("tables", len(tables)))
	return nil
}
