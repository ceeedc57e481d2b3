package history

import "time"

// Stages.
const (
	StageCheck    = "check"
	StageDownload = "download"
)

// Statuses.
const (
	StatusChanged     = "changed"
	StatusUnchanged   = "unchanged"
	StatusUnavailable = "unavailable"
	StatusDownloaded  = "downloaded"
	StatusSkipped     = "skipped"
	StatusFailed      = "failed"
)

// Entry is one region outcome of one run.
type Entry struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	RunID     string    `gorm:"column:run_id;size:36;index" json:"runId"`
	Stage     string    `gorm:"column:stage;size:16" json:"stage"`
	Region    string    `gorm:"column:region;size:4;index" json:"region"`
	Version   int       `gorm:"column:version" json:"version"`
	CDNAddr   string    `gorm:"column:cdn_addr;size:255" json:"cdnAddr,omitempty"`
	OldHash   string    `gorm:"column:old_hash;size:64" json:"oldHash,omitempty"`
	NewHash   string    `gorm:"column:new_hash;size:64" json:"newHash,omitempty"`
	Status    string    `gorm:"column:status;size:16" json:"status"`
	Error     string    `gorm:"column:error;size:512" json:"error,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;index" json:"createdAt"`
}

// TableName overrides the table name.
func (Entry) TableName() string {
	return "masterdb_history"
}
