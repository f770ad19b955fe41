package models

// HistoryMode selects how the history window is measured
type HistoryMode string

const (
	// HistoryModeIndex counts records back from endIndex (one record per second at 1 Hz).
	HistoryModeIndex HistoryMode = "index"
	// HistoryModeTime selects records by elapsed time before the endIndex instant.
	HistoryModeTime HistoryMode = "time"
)

// HistoryQuery holds the raw history query parameters. Numbers stay strings so
// the service can reject malformed integers itself.
type HistoryQuery struct {
	DeviceID string      `schema:"deviceId"`
	EndIndex string      `schema:"endIndex"`
	Seconds  string      `schema:"seconds"`
	Mode     HistoryMode `schema:"mode"`
}

// TimestampQuery holds the by-timestamp query parameter
type TimestampQuery struct {
	Time string `schema:"time"`
}
