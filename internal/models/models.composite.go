// FilePath: internal/models/models.composite.go
package models

import "time"

// DatasetInfo summarizes the loaded dataset
type DatasetInfo struct {
	TotalRecords int      `json:"totalRecords"`
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
	DeviceNames  []string `json:"deviceNames"`
	AttackCount  int      `json:"attackCount"`
	DroppedRows  int      `json:"droppedRows"`
}

// RecordView combines a record with its predecessor and the attack active at its instant
type RecordView struct {
	Current  SensorRecord       `json:"timestampData"`
	Previous *SensorRecord      `json:"prevTimestampData"`
	Diff     map[string]Reading `json:"diff"`
	Attack   AttackStatus       `json:"attackInfo"`
}

// TimestampMatch is the record nearest to a requested time
type TimestampMatch struct {
	Index     int    `json:"index"`
	Timestamp string `json:"timestamp"`
}

// LoadState is the lifecycle of the in-memory dataset
type LoadState string

const (
	StateLoading LoadState = "loading"
	StateReady   LoadState = "ready"
	StateFailed  LoadState = "failed"
)

// LoadStatus reports loader progress for the health route
type LoadStatus struct {
	State          LoadState  `json:"state"`
	Records        int        `json:"records"`
	Attacks        int        `json:"attacks"`
	DroppedRows    int        `json:"droppedRows"`
	DroppedAttacks int        `json:"droppedAttacks"`
	Error          string     `json:"error,omitempty"`
	LoadedAt       *time.Time `json:"loadedAt,omitempty"`
	Version        string     `json:"version,omitempty"`
}
