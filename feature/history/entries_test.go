package history_test

import (
	"errors"
	"testing"

	"masterdata-monitor/core/state"
	"masterdata-monitor/feature/download"
	"masterdata-monitor/feature/history"
	"masterdata-monitor/feature/region"
	"masterdata-monitor/feature/update"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCheck(t *testing.T) {
	res := &update.Result{Regions: []update.RegionResult{
		{Code: "CN", Previous: state.RegionState{Version: 1}, Current: state.RegionState{Version: 1}, Err: region.ErrUnavailable},
		{Code: "JP", Previous: state.RegionState{Version: 10, Hash: "a"}, Current: state.RegionState{Version: 20, Hash: "a"}, Changed: true},
		{Code: "KR", Current: state.RegionState{Version: 5}},
		{Code: "TW", Err: errors.New("boom")},
	}}

	entries := history.FromCheck("run-1", res)
	require.Len(t, entries, 4)
	assert.Equal(t, history.StatusUnavailable, entries[0].Status)
	assert.NotEmpty(t, entries[0].Error)
	assert.Equal(t, history.StatusChanged, entries[1].Status)
	assert.Equal(t, 20, entries[1].Version)
	assert.Equal(t, history.StatusUnchanged, entries[2].Status)
	assert.Equal(t, history.StatusFailed, entries[3].Status)
	for _, e := range entries {
		assert.Equal(t, "run-1", e.RunID)
		assert.Equal(t, history.StageCheck, e.Stage)
	}
}

func TestFromDownload(t *testing.T) {
	res := &download.Result{
		Changed: state.Changed{"JP": true, "KR": true, "TW": true},
		Versions: state.Versions{
			"JP": {Version: 10010830, Hash: "xyz"},
			"KR": {Version: 10000510, Hash: "kr"},
			"TW": {Version: 12345, Hash: "tw"},
		},
		Regions: []download.RegionResult{
			{Code: "CN", Skipped: errors.New("not flagged")},
			{Code: "JP", Diff: &download.DiffRecord{Code: "JP", OldHash: "abc", NewHash: "xyz"}},
			{Code: "KR", Err: errors.New("timeout")},
			{Code: "TW", Skipped: errors.New("hash unchanged")},
		},
	}

	entries := history.FromDownload("run-2", res)
	require.Len(t, entries, 3)
	assert.Equal(t, history.Entry{RunID: "run-2", Stage: history.StageDownload, Region: "JP", Version: 10010830, OldHash: "abc", NewHash: "xyz", Status: history.StatusDownloaded}, entries[0])
	assert.Equal(t, history.StatusFailed, entries[1].Status)
	assert.Equal(t, "timeout", entries[1].Error)
	assert.Equal(t, history.StatusSkipped, entries[2].Status)
	assert.Equal(t, "hash unchanged", entries[2].Error)
}
