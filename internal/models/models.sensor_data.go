// FilePath: internal/models/models.sensor_data.go
package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Reserved sensor columns. Everything else in a sensor row is a device reading.
const (
	ColumnTimestamp = "Timestamp"
	ColumnInstant   = "jsTimestamp"
	ColumnLabel     = "Normal/Attack"
)

// IsReservedColumn reports whether name is not a device identifier.
func IsReservedColumn(name string) bool {
	switch name {
	case ColumnTimestamp, ColumnInstant, ColumnLabel:
		return true
	}
	return false
}

// Reading is a single device value. Values that failed to parse are NaN and
// are encoded as JSON null.
type Reading float64

// ParseReading converts a raw cell into a Reading, NaN when it is not numeric.
func ParseReading(raw string) Reading {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return Reading(math.NaN())
	}
	return Reading(v)
}

// IsNaN reports whether the reading could not be parsed.
func (r Reading) IsNaN() bool {
	return math.IsNaN(float64(r))
}

// MarshalJSON implements json.Marshaler
func (r Reading) MarshalJSON() ([]byte, error) {
	f := float64(r)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Reading) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*r = Reading(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*r = Reading(f)
	return nil
}

// SensorRecord is one row of the dataset at its sorted position.
type SensorRecord struct {
	Index            int
	Instant          time.Time
	DisplayTimestamp string
	Label            string
	Values           map[string]Reading
}

// MarshalJSON flattens the record into the shape the dashboard reads:
// device values sit next to Timestamp and jsTimestamp.
func (s SensorRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Values)+4)
	for device, v := range s.Values {
		out[device] = v
	}
	out["index"] = s.Index
	out[ColumnTimestamp] = s.DisplayTimestamp
	out[ColumnInstant] = s.Instant.UnixMilli()
	if s.Label != "" {
		out[ColumnLabel] = s.Label
	}
	return json.Marshal(out)
}

// HistoryPoint is one chart sample.
type HistoryPoint struct {
	JSTimestamp int64   `json:"jsTimestamp"`
	Value       Reading `json:"value"`
}
