package download

import (
	"fmt"
	"strings"

	"masterdata-monitor/core/state"
	"masterdata-monitor/feature/region"
)

// DiffRecord is the hash change of one downloaded region.
type DiffRecord struct {
	Code    string
	OldHash string
	NewHash string
}

// String renders the record as a report line without the newline.
func (d DiffRecord) String() string {
	return fmt.Sprintf("%s: %-8s -> %s", d.Code, d.OldHash, d.NewHash)
}

// FormatDiff renders one line per record.
func FormatDiff(diffs []DiffRecord) string {
	var b strings.Builder
	for _, d := range diffs {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Title joins the changed region codes with commas.
func Title(changed state.Changed) string {
	return strings.Join(changed.Codes(region.AllCodes), ",")
}
