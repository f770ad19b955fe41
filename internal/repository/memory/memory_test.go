package memory

import (
	"testing"
	"time"

	"github.com/itsatony/swat_playback/internal/models"
	"github.com/itsatony/swat_playback/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sensorColumns = []string{"Timestamp", "FIT101", "MV101", "Normal/Attack"}

func sensorRow(ts, fit, mv string) models.RawRow {
	return models.RawRow{
		Columns: sensorColumns,
		Values: map[string]string{
			"Timestamp":     ts,
			"FIT101":        fit,
			"MV101":         mv,
			"Normal/Attack": "Normal",
		},
	}
}

func buildStore(t *testing.T, rows ...models.RawRow) *RecordStore {
	t.Helper()
	b := NewRecordBuilder()
	for _, r := range rows {
		b.Add(r)
	}
	return b.Build()
}

func TestRecordBuilderSortsAndDrops(t *testing.T) {
	b := NewRecordBuilder()
	assert.True(t, b.Add(sensorRow("22/12/2015 04:00:02 PM", "2.7", "2")))
	assert.False(t, b.Add(sensorRow("not a time", "9", "9")))
	assert.True(t, b.Add(sensorRow("22/12/2015 04:00:00 PM", "2.5", "2")))
	assert.True(t, b.Add(sensorRow("22/12/2015 16:00:01", "2.6", "1")))
	assert.Equal(t, 1, b.Dropped())

	s := b.Build()
	require.Equal(t, 3, s.Len())

	for i := 0; i < s.Len()-1; i++ {
		a, err := s.Get(i)
		require.NoError(t, err)
		next, err := s.Get(i + 1)
		require.NoError(t, err)
		assert.False(t, next.Instant.Before(a.Instant), "records %d and %d out of order", i, i+1)
	}

	first, err := s.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Index)
	assert.Equal(t, "22/12/2015 04:00:00 PM", first.DisplayTimestamp)
	assert.Equal(t, models.Reading(2.5), first.Values["FIT101"])
	assert.Equal(t, "Normal", first.Label)
	assert.NotContains(t, first.Values, "Normal/Attack")
}

func TestRecordBuilderStableForEqualInstants(t *testing.T) {
	s := buildStore(t,
		sensorRow("22/12/2015 16:00:00", "1", "1"),
		sensorRow("22/12/2015 16:00:00", "2", "1"),
		sensorRow("22/12/2015 15:59:59", "0", "1"),
	)
	values := []models.Reading{}
	for _, r := range s.Slice(0, s.Len()-1) {
		values = append(values, r.Values["FIT101"])
	}
	assert.Equal(t, []models.Reading{0, 1, 2}, values)
}

func TestRecordStoreGetBounds(t *testing.T) {
	s := buildStore(t, sensorRow("22/12/2015 16:00:00", "1", "1"))

	_, err := s.Get(-1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = s.Get(1)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, ok := s.Previous(0)
	assert.False(t, ok)
}

func TestRecordStorePrevious(t *testing.T) {
	s := buildStore(t,
		sensorRow("22/12/2015 04:00:00 PM", "2.5", "2"),
		sensorRow("22/12/2015 04:00:01 PM", "2.6", "2"),
	)
	prev, ok := s.Previous(1)
	require.True(t, ok)
	assert.Equal(t, 0, prev.Index)
	assert.Equal(t, models.Reading(2.5), prev.Values["FIT101"])

	_, ok = s.Previous(2)
	assert.False(t, ok)
}

func TestNearestIndexSelfLookup(t *testing.T) {
	base := time.Date(2015, 12, 22, 16, 0, 0, 0, time.UTC)
	b := NewRecordBuilder()
	for i := 0; i < 50; i++ {
		ts := base.Add(time.Duration(i*i) * time.Second).Format("02/01/2006 15:04:05")
		b.Add(sensorRow(ts, "1", "1"))
	}
	s := b.Build()

	for i := 0; i < s.Len(); i++ {
		rec, err := s.Get(i)
		require.NoError(t, err)
		assert.Equal(t, i, s.NearestIndex(rec.Instant))
	}
}

func TestNearestIndex(t *testing.T) {
	s := buildStore(t,
		sensorRow("22/12/2015 16:00:00", "1", "1"),
		sensorRow("22/12/2015 16:00:10", "1", "1"),
		sensorRow("22/12/2015 16:00:20", "1", "1"),
	)
	at := func(sec int) time.Time {
		return time.Date(2015, 12, 22, 16, 0, sec, 0, time.UTC)
	}

	assert.Equal(t, 0, s.NearestIndex(at(0).Add(-time.Hour)))
	assert.Equal(t, 2, s.NearestIndex(at(0).Add(48*time.Hour)))
	assert.Equal(t, 0, s.NearestIndex(at(4)))
	assert.Equal(t, 1, s.NearestIndex(at(6)))
	assert.Equal(t, 0, s.NearestIndex(at(5)), "ties go to the smaller index")
	assert.Equal(t, 1, s.NearestIndex(at(15)), "ties go to the smaller index")
}

func TestNearestIndexDuplicateInstants(t *testing.T) {
	s := buildStore(t,
		sensorRow("22/12/2015 16:00:00", "1", "1"),
		sensorRow("22/12/2015 16:00:00", "2", "1"),
		sensorRow("22/12/2015 16:00:02", "3", "1"),
	)
	assert.Equal(t, 0, s.NearestIndex(time.Date(2015, 12, 22, 16, 0, 1, 0, time.UTC)))
	assert.Equal(t, 2, s.NearestIndex(time.Date(2015, 12, 23, 0, 0, 0, 0, time.UTC)))

	empty := NewRecordBuilder().Build()
	assert.Equal(t, -1, empty.NearestIndex(time.Now()))
}

func TestRecordStoreSlice(t *testing.T) {
	b := NewRecordBuilder()
	base := time.Date(2015, 12, 22, 16, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		b.Add(sensorRow(base.Add(time.Duration(i)*time.Second).Format("02/01/2006 15:04:05"), "1", "1"))
	}
	s := b.Build()

	tests := []struct {
		name       string
		start, end int
		want       []int
	}{
		{"inner", 2, 4, []int{2, 3, 4}},
		{"negative start", -5, 1, []int{0, 1}},
		{"end past length", 8, 100, []int{8, 9}},
		{"start at length", 10, 12, []int{}},
		{"end before start", 5, 4, []int{}},
		{"single", 9, 9, []int{9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []int{}
			for _, r := range s.Slice(tt.start, tt.end) {
				got = append(got, r.Index)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeviceIDs(t *testing.T) {
	s := buildStore(t, sensorRow("22/12/2015 16:00:00", "1", "1"))
	assert.Equal(t, []string{"FIT101", "MV101"}, s.DeviceIDs())
	assert.True(t, s.HasDevice("MV101"))
	assert.False(t, s.HasDevice("Timestamp"))
	assert.False(t, s.HasDevice("Normal/Attack"))

	assert.Equal(t, []string{}, NewRecordBuilder().Build().DeviceIDs())
}

func TestLowerBound(t *testing.T) {
	s := buildStore(t,
		sensorRow("22/12/2015 16:00:00", "1", "1"),
		sensorRow("22/12/2015 16:00:10", "1", "1"),
	)
	assert.Equal(t, 0, s.LowerBound(time.Date(2015, 12, 22, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, s.LowerBound(time.Date(2015, 12, 22, 16, 0, 1, 0, time.UTC)))
	assert.Equal(t, 2, s.LowerBound(time.Date(2015, 12, 22, 17, 0, 0, 0, time.UTC)))
}

func attackRow(id, start, end, points string) models.RawRow {
	return models.RawRow{
		Columns: []string{"Attack #", "Attack", "Start Time", "End Time", "Attack Point"},
		Values: map[string]string{
			"Attack #":     id,
			"Attack":       "attack " + id,
			"Start Time":   start,
			"End Time":     end,
			"Attack Point": points,
		},
	}
}

func TestAttackBuilderSameDay(t *testing.T) {
	b := NewAttackBuilder()
	require.True(t, b.Add(attackRow("1", "28/12/2015 10:29:14", "10:44:53", "MV-101;P-102")))
	x := b.Build()
	require.Equal(t, 1, x.Len())

	a := x.ListSorted()[0]
	assert.Equal(t, []string{"MV101", "P102"}, a.Targets)
	assert.Equal(t, time.Date(2015, 12, 28, 10, 29, 14, 0, time.UTC), a.Start)
	assert.Equal(t, 15*time.Minute+39*time.Second, a.End.Sub(a.Start))
	assert.Equal(t, "28/12/2015 10:29:14", a.RawStart)
}

func TestAttackBuilderMidnightRollover(t *testing.T) {
	b := NewAttackBuilder()
	require.True(t, b.Add(attackRow("7", "29/12/2015 11:50:00 PM", "00:10:00", "LIT-101")))
	a := b.Build().ListSorted()[0]
	assert.Equal(t, time.Date(2015, 12, 30, 0, 10, 0, 0, time.UTC), a.End)
	assert.Equal(t, 20*time.Minute, a.End.Sub(a.Start))
}

func TestAttackBuilderDropsAndDefaults(t *testing.T) {
	b := NewAttackBuilder()
	assert.False(t, b.Add(attackRow("1", "garbage", "10:00:00", "")))
	assert.False(t, b.Add(attackRow("2", "28/12/2015 10:00:00", "", "")))
	assert.False(t, b.Add(attackRow("3", "28/12/2015 10:00:00", "99:00", "")))

	row := attackRow("", "28/12/2015 10:00:00", "10:05:00", "")
	row.Values["Attack"] = ""
	assert.True(t, b.Add(row))
	assert.Equal(t, 3, b.Dropped())

	a := b.Build().ListSorted()[0]
	assert.Equal(t, "N/A", a.ID)
	assert.Equal(t, "No description", a.Description)
	assert.Empty(t, a.Targets)
}

func TestAttackContaining(t *testing.T) {
	b := NewAttackBuilder()
	b.Add(attackRow("1", "28/12/2015 10:00:00", "10:10:00", "P-101"))
	b.Add(attackRow("2", "28/12/2015 11:00:00", "11:10:00", "P-102"))
	x := b.Build()

	at := func(h, m, s int) time.Time { return time.Date(2015, 12, 28, h, m, s, 0, time.UTC) }

	a, ok := x.Containing(at(10, 0, 0))
	require.True(t, ok)
	assert.Equal(t, "1", a.ID)

	a, ok = x.Containing(at(10, 10, 0))
	require.True(t, ok)
	assert.Equal(t, "1", a.ID)

	_, ok = x.Containing(at(10, 30, 0))
	assert.False(t, ok)

	a, ok = x.Containing(at(11, 5, 0))
	require.True(t, ok)
	assert.Equal(t, "2", a.ID)
}

func TestAttackContainingFirstMatchWins(t *testing.T) {
	b := NewAttackBuilder()
	b.Add(attackRow("9", "28/12/2015 10:00:00", "10:30:00", ""))
	b.Add(attackRow("2", "28/12/2015 10:10:00", "10:20:00", ""))
	a, ok := b.Build().Containing(time.Date(2015, 12, 28, 10, 15, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "9", a.ID)
}

func TestAttackListSorted(t *testing.T) {
	b := NewAttackBuilder()
	for _, id := range []string{"A-10", "2", "N/A", "#1", "10b"} {
		b.Add(attackRow(id, "28/12/2015 10:00:00", "10:10:00", ""))
	}
	ids := []string{}
	for _, a := range b.Build().ListSorted() {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"#1", "2", "A-10", "10b", "N/A"}, ids)
}

func TestParseTargets(t *testing.T) {
	assert.Equal(t, []string{"MV101", "P102", "LIT301"}, ParseTargets(" MV-101; P-102 ,LIT-301;"))
	assert.Equal(t, []string{}, ParseTargets(""))
	assert.Equal(t, []string{"MV101", "P102"}, ParseTargets("MV-101;MV101, P-102;MV-101"))
}
