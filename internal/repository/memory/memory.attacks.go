// FilePath: internal/repository/memory/memory.attacks.go
package memory

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/itsatony/swat_playback/internal/models"
	"github.com/itsatony/swat_playback/internal/repository"
	"github.com/itsatony/swat_playback/internal/timestamp"
)

// Attack list columns
const (
	ColumnAttackID     = "Attack #"
	ColumnAttackDesc   = "Attack"
	ColumnAttackStart  = "Start Time"
	ColumnAttackEnd    = "End Time"
	ColumnAttackPoints = "Attack Point"

	defaultAttackID   = "N/A"
	defaultAttackDesc = "No description"
)

// AttackIndex holds attack intervals in load order
type AttackIndex struct {
	intervals []models.AttackInterval
	sorted    []models.AttackInterval
}

// AttackBuilder accumulates raw attack rows
type AttackBuilder struct {
	intervals []models.AttackInterval
	dropped   int
}

// NewAttackBuilder creates an empty builder
func NewAttackBuilder() *AttackBuilder {
	return &AttackBuilder{}
}

// Add parses one attack row. Rows with an unparseable start or a missing or
// unparseable end are dropped and counted.
func (b *AttackBuilder) Add(row models.RawRow) bool {
	interval, ok := parseAttack(row)
	if !ok {
		b.dropped++
		return false
	}
	b.intervals = append(b.intervals, interval)
	return true
}

// Dropped returns the number of rows rejected so far
func (b *AttackBuilder) Dropped() int {
	return b.dropped
}

// Build returns the index. The builder must not be used afterwards.
func (b *AttackBuilder) Build() *AttackIndex {
	intervals := b.intervals
	if intervals == nil {
		intervals = []models.AttackInterval{}
	}
	b.intervals = nil

	sorted := make([]models.AttackInterval, len(intervals))
	copy(sorted, intervals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return AttackOrdinal(sorted[i].ID) < AttackOrdinal(sorted[j].ID)
	})

	return &AttackIndex{intervals: intervals, sorted: sorted}
}

// Len returns the number of intervals
func (x *AttackIndex) Len() int {
	return len(x.intervals)
}

// Containing returns the first interval in load order with start <= t <= end
func (x *AttackIndex) Containing(t time.Time) (models.AttackInterval, bool) {
	for _, a := range x.intervals {
		if a.Contains(t) {
			return a, true
		}
	}
	return models.AttackInterval{}, false
}

// ListSorted returns the intervals ordered by the number in their id
func (x *AttackIndex) ListSorted() []models.AttackInterval {
	out := make([]models.AttackInterval, len(x.sorted))
	copy(out, x.sorted)
	return out
}

// AttackOrdinal extracts the digits of an attack id as an integer. Ids without
// digits order after all numbered ones.
func AttackOrdinal(id string) int {
	var digits strings.Builder
	for _, r := range id {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return math.MaxInt
	}
	return n
}

// ParseTargets splits an attack point list on ';' or ',', strips hyphens and
// drops repeats, keeping first-seen order
func ParseTargets(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == ','
	})
	targets := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		t := strings.ReplaceAll(strings.TrimSpace(f), "-", "")
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		targets = append(targets, t)
	}
	return targets
}

func parseAttack(row models.RawRow) (models.AttackInterval, bool) {
	rawStart := row.Get(ColumnAttackStart)
	rawEnd := row.Get(ColumnAttackEnd)
	if rawEnd == "" {
		return models.AttackInterval{}, false
	}

	start, err := timestamp.Parse(rawStart)
	if err != nil {
		return models.AttackInterval{}, false
	}
	end, err := attackEnd(start, rawEnd)
	if err != nil {
		return models.AttackInterval{}, false
	}

	id := row.Get(ColumnAttackID)
	if id == "" {
		id = defaultAttackID
	}
	desc := row.Get(ColumnAttackDesc)
	if desc == "" {
		desc = defaultAttackDesc
	}

	return models.AttackInterval{
		ID:          id,
		Description: desc,
		Start:       start,
		End:         end,
		Targets:     ParseTargets(row.Get(ColumnAttackPoints)),
		RawStart:    rawStart,
		RawEnd:      rawEnd,
	}, true
}

// attackEnd places a bare end time of day on the start date, rolling over to
// the next day for attacks that span midnight. A full date-time end is parsed
// as is.
func attackEnd(start time.Time, raw string) (time.Time, error) {
	if strings.Contains(raw, "/") {
		end, err := timestamp.Parse(raw)
		if err != nil {
			return time.Time{}, err
		}
		if end.Before(start) {
			return time.Time{}, timestamp.ErrMalformedTimestamp
		}
		return end, nil
	}

	h, m, s, err := timestamp.ParseClock(raw)
	if err != nil {
		return time.Time{}, err
	}
	end := timestamp.OnDate(start, h, m, s)
	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}
	return end, nil
}

var _ repository.AttackRepository = (*AttackIndex)(nil)
