package status

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"masterdata-monitor/core/state"
	"masterdata-monitor/feature/history"
	"masterdata-monitor/feature/region"

	"go.uber.org/zap"
)

var (
	// ErrNoState is returned before the first check has written version.json.
	ErrNoState = errors.New("no version file yet")
	// ErrRegionNotTracked is returned for a known region missing from version.json.
	ErrRegionNotTracked = errors.New("region not tracked")
	// ErrHistoryDisabled is returned when no history database is configured.
	ErrHistoryDisabled = errors.New("history disabled")
)

// RegionStatus is the public view of one region.
type RegionStatus struct {
	Code     string `json:"code"`
	Version  int    `json:"version"`
	Hash     string `json:"hash"`
	CDNAddr  string `json:"cdnAddr,omitempty"`
	Changed  bool   `json:"changed"`
	Database string `json:"database"`
	Retired  bool   `json:"retired"`
}

// Overview is the state of every tracked region.
type Overview struct {
	Regions []RegionStatus `json:"regions"`
	Changed []string       `json:"changed"`
}

// Service reads the persisted state and history.
type Service struct {
	store   *state.Store
	history *history.Repository
	logger  *zap.Logger
}

// NewService creates a Service. repo may be nil.
func NewService(store *state.Store, repo *history.Repository, logger *zap.Logger) *Service {
	return &Service{store: store, history: repo, logger: logger}
}

func (s *Service) load() (state.Versions, state.Changed, error) {
	versions, err := s.store.LoadVersions()
	if errors.Is(err, state.ErrNotFound) {
		return nil, nil, ErrNoState
	}
	if err != nil {
		return nil, nil, err
	}
	changed, err := s.store.LoadChanged()
	if err != nil {
		return nil, nil, err
	}
	return versions, changed, nil
}

// Overview returns every tracked region in report order.
func (s *Service) Overview() (*Overview, error) {
	versions, changed, err := s.load()
	if err != nil {
		return nil, err
	}

	out := &Overview{Regions: []RegionStatus{}, Changed: changed.Codes(region.AllCodes)}
	for _, code := range region.AllCodes {
		if st, ok := versions[code]; ok {
			out.Regions = append(out.Regions, view(code, st, changed))
		}
	}
	if out.Changed == nil {
		out.Changed = []string{}
	}
	return out, nil
}

// Region returns one region.
func (s *Service) Region(code string) (*RegionStatus, error) {
	code = strings.ToUpper(code)
	if _, err := region.Lookup(code); err != nil {
		return nil, err
	}
	versions, changed, err := s.load()
	if err != nil {
		return nil, err
	}
	st, ok := versions[code]
	if !ok {
		return nil, fmt.Errorf("%s: %w", code, ErrRegionNotTracked)
	}
	v := view(code, st, changed)
	return &v, nil
}

// History returns the latest history entries of a region.
func (s *Service) History(ctx context.Context, code string, limit int) ([]history.Entry, error) {
	code = strings.ToUpper(code)
	if _, err := region.Lookup(code); err != nil {
		return nil, err
	}
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.Recent(ctx, code, limit)
}

func view(code string, st state.RegionState, changed state.Changed) RegionStatus {
	s, _ := region.Lookup(code)
	return RegionStatus{
		Code:     code,
		Version:  st.Version,
		Hash:     st.Hash,
		CDNAddr:  st.CDNAddr,
		Changed:  changed.Has(code),
		Database: s.DatabaseName(),
		Retired:  s.Retired,
	}
}
