package models

import "time"

// LogAction is the lifecycle event recorded by a log entry.
type LogAction string

const (
	LogLoaded    LogAction = "Loaded"
	LogOnMission LogAction = "On-Mission"
	LogUnloaded  LogAction = "Unloaded"
)

// Valid reports whether a is a known lifecycle log action.
func (a LogAction) Valid() bool {
	switch a {
	case LogLoaded, LogOnMission, LogUnloaded:
		return true
	}
	return false
}

// LogEntry is one record of the append-only audit trail. Exactly one entry
// is written per committed mutation of mover status or load-record action,
// in the same transaction as the mutation. Entries are never updated or
// deleted.
type LogEntry struct {
	ID           string    `db:"id" json:"id"`
	LoadRecordID string    `db:"load_record_id" json:"load_record_id"`
	Action       LogAction `db:"action" json:"action"`
	Timestamp    time.Time `db:"timestamp" json:"timestamp"`
}

// LogFilter encapsulates allowed search parameters for listing the audit
// trail.
type LogFilter struct {
	Action       string
	LoadRecordID string
	Page         int
	PageSize     int
}
