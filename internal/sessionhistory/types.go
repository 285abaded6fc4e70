package sessionhistory

import (
	"math"
	"time"
)

// Unknown is used for both workspace fields when no location can be resolved.
const Unknown = "Unknown"

type Stats struct {
	LinesAdded   int `json:"lines_added" yaml:"lines_added"`
	LinesRemoved int `json:"lines_removed" yaml:"lines_removed"`
	FilesChanged int `json:"files_changed" yaml:"files_changed"`
}

// Record is one session sighting normalized across providers. Timestamp is
// in epoch seconds and is the only field used for ordering; Modified,
// ModifiedDate and ModifiedTime are derived from it.
type Record struct {
	Provider      string    `json:"provider" yaml:"provider"`
	WorkspaceName string    `json:"workspace_name" yaml:"workspace_name"`
	WorkspacePath string    `json:"workspace_path" yaml:"workspace_path"`
	Title         string    `json:"title" yaml:"title"`
	Timestamp     float64   `json:"timestamp" yaml:"timestamp"`
	Modified      string    `json:"modified" yaml:"modified"`
	ModifiedDate  string    `json:"modified_date" yaml:"modified_date"`
	ModifiedTime  string    `json:"modified_time" yaml:"modified_time"`
	Stats         Stats     `json:"stats" yaml:"stats"`
	FileTypes     FileTypes `json:"file_types" yaml:"file_types"`
	MessageCount  int       `json:"message_count" yaml:"message_count"`
	Subtitle      string    `json:"subtitle" yaml:"subtitle"`
	Archived      bool      `json:"archived" yaml:"archived"`
}

func (r Record) Time() time.Time {
	return unixSeconds(r.Timestamp)
}

type dedupKey struct {
	workspace string
	title     string
}

func (r Record) key() dedupKey {
	return dedupKey{workspace: r.WorkspaceName, title: r.Title}
}

func (r *Record) setTimestamp(ts float64, loc *time.Location) {
	if loc == nil {
		loc = time.Local
	}
	r.Timestamp = ts
	t := unixSeconds(ts).In(loc)
	r.Modified = t.Format(time.RFC3339)
	r.ModifiedDate = t.Format("2006-01-02")
	r.ModifiedTime = t.Format("15:04")
}

func unixSeconds(ts float64) time.Time {
	sec, frac := math.Modf(ts)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9)))
}

func timeToSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
