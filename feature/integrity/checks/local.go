package checks

import (
	"path/filepath"

	"masterdata-monitor/core/database"
	"masterdata-monitor/core/state"
	"masterdata-monitor/feature/region"
)

// LocalResult describes the converted database of one region on disk.
type LocalResult struct {
	Code     string   `json:"code"`
	Hash     string   `json:"hash"`
	Path     string   `json:"path"`
	Tables   int      `json:"tables"`
	Error    string   `json:"error,omitempty"`
}

// OK reports whether the database opened and holds tables.
func (r LocalResult) OK() bool {
	return r.Error == ""
}

// CheckLocal verifies the database of every region that has a recorded hash.
// Regions never downloaded are skipped.
func CheckLocal(dir string, versions state.Versions) []LocalResult {
	var out []LocalResult
	for _, code := range region.AllCodes {
		st, ok := versions[code]
		if !ok || st.Hash == "" {
			continue
		}
		settings, err := region.Lookup(code)
		if err != nil {
			continue
		}

		res := LocalResult{
			Code: code,
			Hash: st.Hash,
			Path: filepath.Join(dir, settings.DatabaseName()),
		}
		tables, err := database.VerifyFile(res.Path)
		if err != nil {
			res.Error = err.Error()
		}
		res.Tables = len(tables)
		out = append(out, res)
	}
	return out
}
