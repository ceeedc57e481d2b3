package state_test

import (
	"os"
	"path/filepath"
	"testing"

	"masterdata-monitor/core/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *state.Store {
	return state.NewStore(state.Config{
		Dir:         t.TempDir(),
		VersionFile: "version.json",
		ChangedFile: "changed.json",
	})
}

func TestStore_Versions(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		store := newStore(t)
		_, err := store.LoadVersions()
		assert.ErrorIs(t, err, state.ErrNotFound)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		store := newStore(t)
		in := state.Versions{
			"JP": {Version: 10010810, Hash: "abc"},
			"KR": {Version: 10000020, CDNAddr: "https://patch.pcr.kakaogame.com/live/Patch1234/"},
		}
		require.NoError(t, store.SaveVersions(in))

		out, err := store.LoadVersions()
		require.NoError(t, err)
		assert.Equal(t, in, out)

		_, err = os.Stat(store.VersionPath() + ".tmp")
		assert.True(t, os.IsNotExist(err), "temporary file must be renamed away")
	})

	t.Run("OmitsEmptyCDN", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.SaveVersions(state.Versions{"JP": {Version: 1, Hash: "h"}}))

		data, err := os.ReadFile(store.VersionPath())
		require.NoError(t, err)
		assert.JSONEq(t, `{"JP":{"version":1,"hash":"h"}}`, string(data))
	})

	t.Run("Corrupt", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, os.WriteFile(store.VersionPath(), []byte("{"), 0o644))
		_, err := store.LoadVersions()
		assert.Error(t, err)
		assert.NotErrorIs(t, err, state.ErrNotFound)
	})
}

func TestStore_Changed(t *testing.T) {
	t.Run("MissingIsEmpty", func(t *testing.T) {
		store := newStore(t)
		c, err := store.LoadChanged()
		require.NoError(t, err)
		assert.Empty(t, c)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.SaveChanged(state.Changed{"CN": true}))

		data, err := os.ReadFile(filepath.Join(filepath.Dir(store.VersionPath()), "changed.json"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"CN":true}`, string(data))

		c, err := store.LoadChanged()
		require.NoError(t, err)
		assert.True(t, c.Has("CN"))
		assert.False(t, c.Has("JP"))
	})
}

func TestChanged_Codes(t *testing.T) {
	c := state.Changed{"TW": true, "CN": true, "ZZ": true, "JP": false}
	assert.Equal(t, []string{"CN", "TW", "ZZ"}, c.Codes([]string{"CN", "EN", "JP", "KR", "TH", "TW"}))
}

func TestVersions_Clone(t *testing.T) {
	v := state.Versions{"JP": {Version: 1}}
	c := v.Clone()
	c["JP"] = state.RegionState{Version: 2}
	assert.Equal(t, 1, v["JP"].Version)
}
