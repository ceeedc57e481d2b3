package integrity

import (
	"context"
	"errors"
	"fmt"

	"masterdata-monitor/core/state"
	"masterdata-monitor/core/storage"
	"masterdata-monitor/feature/integrity/checks"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrNoState is returned before the first check has written version.json.
var ErrNoState = errors.New("no version file yet")

// Publisher republishes missing objects.
type Publisher interface {
	ObjectName(localPath string) string
	PublishFile(ctx context.Context, localPath, contentType string) error
}

// Artifact is a local file and the object it is published as.
type Artifact struct {
	Path        string `json:"path"`
	Object      string `json:"object"`
	ContentType string `json:"-"`
}

// Report is the combined outcome of the integrity checks.
type Report struct {
	Local          []checks.LocalResult `json:"local"`
	StorageChecked bool                 `json:"storage_checked"`
	Missing        []Artifact           `json:"missing"`
	Fixed          []Artifact           `json:"fixed,omitempty"`
}

// Healthy reports whether every local database verified and nothing is left missing.
func (r *Report) Healthy() bool {
	for _, l := range r.Local {
		if !l.OK() {
			return false
		}
	}
	return len(r.Missing) == len(r.Fixed)
}

// Service checks the produced databases against version.json and the bucket.
type Service struct {
	store     *state.Store
	dir       string
	client    storage.Client
	bucket    string
	publisher Publisher
	logger    *zap.Logger
}

// NewService creates a Service. A nil client skips the storage checks.
func NewService(store *state.Store, dir string, client storage.Client, bucket string, publisher Publisher, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		dir:       dir,
		client:    client,
		bucket:    bucket,
		publisher: publisher,
		logger:    logger,
	}
}

// StorageEnabled reports whether a bucket is configured.
func (s *Service) StorageEnabled() bool {
	return s.client != nil && s.publisher != nil
}

// CheckLocal verifies the converted database of every downloaded region.
func (s *Service) CheckLocal() ([]checks.LocalResult, error) {
	versions, err := s.store.LoadVersions()
	if errors.Is(err, state.ErrNotFound) {
		return nil, ErrNoState
	}
	if err != nil {
		return nil, err
	}
	return checks.CheckLocal(s.dir, versions), nil
}

// CheckStorage returns the artifacts whose object is missing from the bucket.
func (s *Service) CheckStorage(ctx context.Context, local []checks.LocalResult) ([]Artifact, error) {
	if !s.StorageEnabled() {
		return nil, nil
	}

	artifacts := make([]Artifact, 0, len(local)+1)
	for _, l := range local {
		artifacts = append(artifacts, s.artifact(l.Path, storage.ContentTypeSQLite))
	}
	artifacts = append(artifacts, s.artifact(s.store.VersionPath(), storage.ContentTypeJSON))

	names := make([]string, len(artifacts))
	byName := make(map[string]Artifact, len(artifacts))
	for i, a := range artifacts {
		names[i] = a.Object
		byName[a.Object] = a
	}

	missing, err := checks.CheckObjects(ctx, s.client, s.bucket, names)
	if err != nil {
		return nil, err
	}
	out := make([]Artifact, 0, len(missing))
	for _, name := range missing {
		out = append(out, byName[name])
	}
	return out, nil
}

// FixStorage republishes the missing artifacts and returns those uploaded.
func (s *Service) FixStorage(ctx context.Context, missing []Artifact) ([]Artifact, error) {
	var (
		fixed []Artifact
		errs  error
	)
	for _, a := range missing {
		if err := s.publisher.PublishFile(ctx, a.Path, a.ContentType); err != nil {
			s.logger.Error("Failed to republish", zap.String("object", a.Object), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		s.logger.Info("Republished missing object", zap.String("object", a.Object))
		fixed = append(fixed, a)
	}
	return fixed, errs
}

// Run performs every check. With fix set, missing objects whose local file
// verified are republished.
func (s *Service) Run(ctx context.Context, fix bool) (*Report, error) {
	local, err := s.CheckLocal()
	if err != nil {
		return nil, err
	}
	report := &Report{Local: local, StorageChecked: s.StorageEnabled(), Missing: []Artifact{}}

	missing, err := s.CheckStorage(ctx, local)
	if err != nil {
		return report, fmt.Errorf("storage check failed: %w", err)
	}
	if missing != nil {
		report.Missing = missing
	}
	if !fix || len(missing) == 0 {
		return report, nil
	}

	broken := make(map[string]bool)
	for _, l := range local {
		if !l.OK() {
			broken[l.Path] = true
		}
	}
	var fixable []Artifact
	for _, a := range missing {
		if !broken[a.Path] {
			fixable = append(fixable, a)
		}
	}
	report.Fixed, err = s.FixStorage(ctx, fixable)
	return report, err
}

func (s *Service) artifact(path, contentType string) Artifact {
	return Artifact{Path: path, Object: s.publisher.ObjectName(path), ContentType: contentType}
}
