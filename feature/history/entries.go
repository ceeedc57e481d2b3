package history

import (
	"errors"

	"masterdata-monitor/feature/download"
	"masterdata-monitor/feature/region"
	"masterdata-monitor/feature/update"
)

// FromCheck builds the entries of a check pass.
func FromCheck(runID string, res *update.Result) []Entry {
	entries := make([]Entry, 0, len(res.Regions))
	for _, r := range res.Regions {
		e := Entry{
			RunID:   runID,
			Stage:   StageCheck,
			Region:  r.Code,
			Version: r.Current.Version,
			CDNAddr: r.Current.CDNAddr,
			OldHash: r.Previous.Hash,
			NewHash: r.LatestHash,
			Status:  StatusUnchanged,
		}
		switch {
		case r.Err != nil:
			e.Status = StatusUnavailable
			if !errors.Is(r.Err, region.ErrUnavailable) {
				e.Status = StatusFailed
			}
			e.Error = truncate(r.Err.Error())
		case r.Changed:
			e.Status = StatusChanged
		}
		entries = append(entries, e)
	}
	return entries
}

// FromDownload builds the entries of a download pass. Regions that were not
// flagged are left out.
func FromDownload(runID string, res *download.Result) []Entry {
	var entries []Entry
	for _, r := range res.Regions {
		if !res.Changed.Has(r.Code) {
			continue
		}
		st := res.Versions[r.Code]
		e := Entry{
			RunID:   runID,
			Stage:   StageDownload,
			Region:  r.Code,
			Version: st.Version,
			CDNAddr: st.CDNAddr,
			OldHash: st.Hash,
		}
		switch {
		case r.Err != nil:
			e.Status = StatusFailed
			e.Error = truncate(r.Err.Error())
		case r.Diff != nil:
			e.Status = StatusDownloaded
			e.OldHash = r.Diff.OldHash
			e.NewHash = r.Diff.NewHash
		default:
			e.Status = StatusSkipped
			if r.Skipped != nil {
				e.Error = truncate(r.Skipped.Error())
			}
		}
		entries = append(entries, e)
	}
	return entries
}

func truncate(s string) string {
	if len(s) > 512 {
		return s[:512]
	}
	return s
}
