// FilePath: internal/repository/memory/memory.records.go
package memory

import (
	"sort"
	"time"

	"github.com/itsatony/swat_playback/internal/models"
	"github.com/itsatony/swat_playback/internal/repository"
	"github.com/itsatony/swat_playback/internal/timestamp"
)

type recordRow struct {
	instant time.Time
	display string
	label   string
	values  []models.Reading
}

// RecordStore holds the sensor rows sorted by instant. Device values are kept
// per row in DeviceIDs order. A built store is never mutated.
type RecordStore struct {
	devices     []string
	deviceIndex map[string]int
	rows        []recordRow
}

// RecordBuilder accumulates raw rows for a RecordStore.
type RecordBuilder struct {
	devices     []string
	deviceIndex map[string]int
	rows        []recordRow
	dropped     int
}

// NewRecordBuilder creates an empty builder
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{}
}

// Add normalizes the row timestamp and keeps the row. Rows whose timestamp does
// not normalize are dropped and counted; Add reports whether the row was kept.
// The device set is fixed by the first kept row.
func (b *RecordBuilder) Add(row models.RawRow) bool {
	raw := row.Get(models.ColumnTimestamp)
	instant, err := timestamp.Parse(raw)
	if err != nil {
		b.dropped++
		return false
	}

	if b.deviceIndex == nil {
		b.deviceIndex = make(map[string]int)
		for _, col := range row.Columns {
			if models.IsReservedColumn(col) {
				continue
			}
			if _, dup := b.deviceIndex[col]; dup {
				continue
			}
			b.deviceIndex[col] = len(b.devices)
			b.devices = append(b.devices, col)
		}
	}

	values := make([]models.Reading, len(b.devices))
	for i, device := range b.devices {
		values[i] = models.ParseReading(row.Values[device])
	}

	b.rows = append(b.rows, recordRow{
		instant: instant,
		display: raw,
		label:   row.Get(models.ColumnLabel),
		values:  values,
	})
	return true
}

// Dropped returns the number of rows rejected so far
func (b *RecordBuilder) Dropped() int {
	return b.dropped
}

// Build stable-sorts the rows by instant and returns the store. The builder
// must not be used afterwards.
func (b *RecordBuilder) Build() *RecordStore {
	rows := b.rows
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].instant.Before(rows[j].instant)
	})
	b.rows = nil

	devices := b.devices
	if devices == nil {
		devices = []string{}
	}
	return &RecordStore{
		devices:     devices,
		deviceIndex: b.deviceIndex,
		rows:        rows,
	}
}

// Len returns the number of records
func (s *RecordStore) Len() int {
	return len(s.rows)
}

// Get returns the record at index
func (s *RecordStore) Get(index int) (models.SensorRecord, error) {
	if index < 0 || index >= len(s.rows) {
		return models.SensorRecord{}, repository.ErrNotFound
	}
	return s.record(index), nil
}

// Previous returns the record before index, if any
func (s *RecordStore) Previous(index int) (models.SensorRecord, bool) {
	if index <= 0 || index >= len(s.rows) {
		return models.SensorRecord{}, false
	}
	return s.record(index - 1), true
}

// NearestIndex returns the index whose instant is closest to t. Ties go to the
// smaller index. It returns -1 for an empty store.
func (s *RecordStore) NearestIndex(t time.Time) int {
	n := len(s.rows)
	if n == 0 {
		return -1
	}

	hi := s.LowerBound(t)
	if hi == 0 {
		return 0
	}
	if hi == n {
		return s.LowerBound(s.rows[n-1].instant)
	}

	lo := hi - 1
	below := t.Sub(s.rows[lo].instant)
	above := s.rows[hi].instant.Sub(t)
	if above < below {
		return hi
	}
	// the lower candidate may be one of several equal instants; the first wins
	return s.LowerBound(s.rows[lo].instant)
}

// LowerBound returns the first index whose instant is not before t, or Len
// when every record is earlier.
func (s *RecordStore) LowerBound(t time.Time) int {
	return sort.Search(len(s.rows), func(i int) bool {
		return !s.rows[i].instant.Before(t)
	})
}

// Slice returns records start..end inclusive. start is clamped to 0 and end
// to Len-1; an empty slice is returned when nothing remains.
func (s *RecordStore) Slice(start, end int) []models.SensorRecord {
	if start < 0 {
		start = 0
	}
	if start >= len(s.rows) {
		return []models.SensorRecord{}
	}
	if end >= len(s.rows) {
		end = len(s.rows) - 1
	}
	if end < start {
		return []models.SensorRecord{}
	}

	out := make([]models.SensorRecord, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, s.record(i))
	}
	return out
}

// DeviceIDs returns the device identifiers in source column order
func (s *RecordStore) DeviceIDs() []string {
	out := make([]string, len(s.devices))
	copy(out, s.devices)
	return out
}

// HasDevice reports whether id is a known device
func (s *RecordStore) HasDevice(id string) bool {
	_, ok := s.deviceIndex[id]
	return ok
}

func (s *RecordStore) record(i int) models.SensorRecord {
	row := s.rows[i]
	values := make(map[string]models.Reading, len(s.devices))
	for j, device := range s.devices {
		values[device] = row.values[j]
	}
	return models.SensorRecord{
		Index:            i,
		Instant:          row.instant,
		DisplayTimestamp: row.display,
		Label:            row.label,
		Values:           values,
	}
}

var _ repository.RecordRepository = (*RecordStore)(nil)
