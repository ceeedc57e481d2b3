package update_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"masterdata-monitor/core/state"
	"masterdata-monitor/feature/region"
	"masterdata-monitor/feature/update"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAdapter struct {
	settings region.Settings
	discover func(prev state.RegionState) (state.RegionState, error)
	calls    atomic.Int32
}

func newFake(t *testing.T, code string, discover func(prev state.RegionState) (state.RegionState, error)) *fakeAdapter {
	s, err := region.Lookup(code)
	require.NoError(t, err)
	return &fakeAdapter{settings: s, discover: discover}
}

func (f *fakeAdapter) Settings() region.Settings { return f.settings }

func (f *fakeAdapter) Discover(_ context.Context, prev state.RegionState) (state.RegionState, error) {
	f.calls.Add(1)
	return f.discover(prev)
}

func (f *fakeAdapter) Locate(context.Context, state.RegionState) (*region.Asset, error) {
	return nil, errors.New("not used")
}

type fakeHashAdapter struct {
	*fakeAdapter
	hash string
}

func (f *fakeHashAdapter) LatestHash(context.Context, state.RegionState) (string, error) {
	return f.hash, nil
}

func fixed(v state.RegionState) func(state.RegionState) (state.RegionState, error) {
	return func(state.RegionState) (state.RegionState, error) { return v, nil }
}

func unchanged(prev state.RegionState) (state.RegionState, error) { return prev, nil }

func newStore(t *testing.T) *state.Store {
	return state.NewStore(state.Config{Dir: t.TempDir(), VersionFile: "version.json", ChangedFile: "changed.json"})
}

func seed(t *testing.T, store *state.Store, v state.Versions) {
	require.NoError(t, store.SaveVersions(v))
}

func TestRun_FirstRunUsesDefaults(t *testing.T) {
	store := newStore(t)
	jp := newFake(t, region.JP, func(prev state.RegionState) (state.RegionState, error) {
		prev.Version += 30
		return prev, nil
	})
	tw := newFake(t, region.TW, unchanged)

	res, err := update.NewOrchestrator(store, []region.Adapter{jp, tw}, zap.NewNop(), 0).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Dirty())
	assert.Equal(t, state.Changed{region.JP: true}, res.Changed)

	versions, err := store.LoadVersions()
	require.NoError(t, err)
	assert.Len(t, versions, len(region.AllCodes))
	assert.Equal(t, 10010830, versions[region.JP].Version)
	assert.Equal(t, -1, versions[region.CN].Version)
	assert.Equal(t, 10026400, versions[region.TH].Version)

	changed, err := store.LoadChanged()
	require.NoError(t, err)
	assert.Equal(t, state.Changed{region.JP: true}, changed)
}

func TestRun_SecondRunIsIdempotent(t *testing.T) {
	store := newStore(t)
	adapters := []region.Adapter{
		newFake(t, region.JP, fixed(state.RegionState{Version: 10010830})),
		newFake(t, region.KR, fixed(state.RegionState{Version: 10000510, CDNAddr: "https://cdn/"})),
	}
	orch := update.NewOrchestrator(store, adapters, zap.NewNop(), 0)

	first, err := orch.Run(context.Background())
	require.NoError(t, err)
	require.True(t, first.Dirty())

	before, err := os.ReadFile(store.VersionPath())
	require.NoError(t, err)
	require.NoError(t, os.Remove(store.ChangedPath()))

	second, err := orch.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, second.Dirty())

	after, err := os.ReadFile(store.VersionPath())
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.NoFileExists(t, store.ChangedPath())
}

func TestRun_Diff(t *testing.T) {
	stored := state.Versions{
		region.CN: {Version: 10025400, Hash: "cn", CDNAddr: "https://cn/"},
		region.EN: {Version: 10000120, Hash: "en-old"},
		region.JP: {Version: 10010830, Hash: "jp"},
		region.KR: {Version: 10000510, Hash: "kr", CDNAddr: "https://kr/1/"},
		region.TW: {Version: 12345, Hash: "tw"},
	}

	tests := []struct {
		name    string
		adapter func(t *testing.T) region.Adapter
		code    string
		changed bool
		want    state.RegionState
	}{
		{
			name: "UnavailableKeepsState",
			code: region.CN,
			adapter: func(t *testing.T) region.Adapter {
				return newFake(t, region.CN, func(prev state.RegionState) (state.RegionState, error) {
					return prev, region.ErrUnavailable
				})
			},
			want: stored[region.CN],
		},
		{
			name: "OlderVersionIsClamped",
			code: region.JP,
			adapter: func(t *testing.T) region.Adapter {
				return newFake(t, region.JP, fixed(state.RegionState{Version: 10010800}))
			},
			want: stored[region.JP],
		},
		{
			name: "DigitVersionIsClamped",
			code: region.TW,
			adapter: func(t *testing.T) region.Adapter {
				return newFake(t, region.TW, fixed(state.RegionState{Version: 0}))
			},
			want: stored[region.TW],
		},
		{
			name: "LookupVersionMayDrop",
			code: region.CN,
			adapter: func(t *testing.T) region.Adapter {
				return newFake(t, region.CN, fixed(state.RegionState{Version: 10025300, CDNAddr: "https://cn/"}))
			},
			changed: true,
			want:    state.RegionState{Version: 10025300, Hash: "cn", CDNAddr: "https://cn/"},
		},
		{
			name: "CDNChange",
			code: region.KR,
			adapter: func(t *testing.T) region.Adapter {
				return newFake(t, region.KR, fixed(state.RegionState{Version: 10000510, CDNAddr: "https://kr/2/"}))
			},
			changed: true,
			want:    state.RegionState{Version: 10000510, Hash: "kr", CDNAddr: "https://kr/2/"},
		},
		{
			name: "HashOnlyChange",
			code: region.EN,
			adapter: func(t *testing.T) region.Adapter {
				return &fakeHashAdapter{fakeAdapter: newFake(t, region.EN, unchanged), hash: "en-new"}
			},
			changed: true,
			want:    stored[region.EN],
		},
		{
			name: "HashOnlySameHash",
			code: region.EN,
			adapter: func(t *testing.T) region.Adapter {
				return &fakeHashAdapter{fakeAdapter: newFake(t, region.EN, unchanged), hash: "en-old"}
			},
			want: stored[region.EN],
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t)
			seed(t, store, stored)

			res, err := update.NewOrchestrator(store, []region.Adapter{tt.adapter(t)}, zap.NewNop(), 0).Run(context.Background())
			require.NoError(t, err)
			require.Len(t, res.Regions, 1)
			assert.Equal(t, tt.changed, res.Regions[0].Changed)
			assert.Equal(t, tt.want, res.Regions[0].Current)
			assert.Equal(t, tt.changed, res.Dirty())

			versions, err := store.LoadVersions()
			require.NoError(t, err)
			assert.Equal(t, tt.want, versions[tt.code])
		})
	}
}

func TestRun_AllRegionsProbed(t *testing.T) {
	store := newStore(t)
	var adapters []region.Adapter
	var fakes []*fakeAdapter
	for _, code := range []string{region.CN, region.JP, region.KR, region.TW} {
		f := newFake(t, code, func(prev state.RegionState) (state.RegionState, error) {
			return prev, region.ErrUnavailable
		})
		fakes = append(fakes, f)
		adapters = append(adapters, f)
	}

	res, err := update.NewOrchestrator(store, adapters, zap.NewNop(), 1).Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Dirty())
	for _, f := range fakes {
		assert.Equal(t, int32(1), f.calls.Load())
	}
	for _, r := range res.Regions {
		assert.ErrorIs(t, r.Err, region.ErrUnavailable)
	}
	assert.NoFileExists(t, store.VersionPath())
}

func TestRun_CorruptVersionFile(t *testing.T) {
	store := newStore(t)
	require.NoError(t, os.WriteFile(store.VersionPath(), []byte("{not json"), 0o644))

	_, err := update.NewOrchestrator(store, nil, zap.NewNop(), 0).Run(context.Background())
	assert.Error(t, err)
}

func TestRun_PersistedDocumentShape(t *testing.T) {
	store := newStore(t)
	seed(t, store, state.Versions{region.KR: {Version: 10000500, Hash: "kr", CDNAddr: "https://kr/1/"}})

	adapters := []region.Adapter{newFake(t, region.KR, fixed(state.RegionState{Version: 10000510, CDNAddr: "https://kr/2/"}))}
	_, err := update.NewOrchestrator(store, adapters, zap.NewNop(), 0).Run(context.Background())
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(filepath.Dir(store.VersionPath()), "changed.json"))
	require.NoError(t, err)
	var changed map[string]bool
	require.NoError(t, json.Unmarshal(raw, &changed))
	assert.Equal(t, map[string]bool{"KR": true}, changed)

	raw, err = os.ReadFile(store.VersionPath())
	require.NoError(t, err)
	var doc map[string]map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, float64(10000510), doc["KR"]["version"])
	assert.Equal(t, "kr", doc["KR"]["hash"])
	assert.Equal(t, "https://kr/2/", doc["KR"]["cdnAddr"])
}
