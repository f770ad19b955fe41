package service

import (
	"context"
	"strings"
	"time"

	"github.com/itsatony/swat_playback/internal/errors"
	"github.com/itsatony/swat_playback/internal/models"
	"github.com/itsatony/swat_playback/internal/timestamp"
)

// RecordService answers record-level dashboard queries
type RecordService interface {
	Info(ctx context.Context) (models.DatasetInfo, error)
	ByIndex(ctx context.Context, index int) (models.RecordView, error)
	ByTimestamp(ctx context.Context, query string) (models.TimestampMatch, error)
}

// Info summarizes the loaded dataset
func (s *Service) Info(ctx context.Context) (info models.DatasetInfo, err error) {
	defer func(started time.Time) { s.observe(OpInfo, started, err) }(time.Now())

	snap, err := s.snapshot()
	if err != nil {
		return info, err
	}
	records := snap.Records
	if records.Len() == 0 {
		return info, errors.NewDataNotReadyError("Data not loaded yet", nil)
	}

	first, err := records.Get(0)
	if err != nil {
		return info, errors.NewInternalError("failed to read first record", err)
	}
	last, err := records.Get(records.Len() - 1)
	if err != nil {
		return info, errors.NewInternalError("failed to read last record", err)
	}

	return models.DatasetInfo{
		TotalRecords: records.Len(),
		StartTime:    first.DisplayTimestamp,
		EndTime:      last.DisplayTimestamp,
		DeviceNames:  records.DeviceIDs(),
		AttackCount:  snap.Attacks.Len(),
		DroppedRows:  snap.DroppedRows,
	}, nil
}

// ByIndex returns the record at index with its predecessor, the per-device
// change between them and the attack active at the record's instant
func (s *Service) ByIndex(ctx context.Context, index int) (view models.RecordView, err error) {
	defer func(started time.Time) { s.observe(OpByIndex, started, err) }(time.Now())

	snap, err := s.snapshot()
	if err != nil {
		return view, err
	}

	current, err := snap.Records.Get(index)
	if err != nil {
		return view, errors.NewIndexOutOfRangeError("Index out of bounds", err).
			WithDetails(map[string]int{"index": index, "totalRecords": snap.Records.Len()})
	}

	view = models.RecordView{
		Current: current,
		Diff:    map[string]models.Reading{},
		Attack:  models.InactiveAttackStatus(),
	}
	if prev, ok := snap.Records.Previous(index); ok {
		view.Previous = &prev
		for device, v := range current.Values {
			view.Diff[device] = v - prev.Values[device]
		}
	}
	if attack, ok := snap.Attacks.Containing(current.Instant); ok {
		view.Attack = models.NewAttackStatus(attack)
	}
	return view, nil
}

// ByTimestamp resolves a wall-clock string to the nearest record. Queries
// outside the dataset clamp to the first or last record.
func (s *Service) ByTimestamp(ctx context.Context, query string) (match models.TimestampMatch, err error) {
	defer func(started time.Time) { s.observe(OpByTimestamp, started, err) }(time.Now())

	snap, err := s.snapshot()
	if err != nil {
		return match, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return match, errors.NewMalformedTimestampError("Missing time query parameter", timestamp.ErrMalformedTimestamp)
	}
	t, err := timestamp.Parse(query)
	if err != nil {
		return match, errors.NewMalformedTimestampError("Invalid timestamp format", err).
			WithDetails(map[string]string{"time": query})
	}

	idx := snap.Records.NearestIndex(t)
	if idx < 0 {
		return match, errors.NewDataNotReadyError("Data not loaded yet", nil)
	}
	record, err := snap.Records.Get(idx)
	if err != nil {
		return match, errors.NewInternalError("failed to read nearest record", err)
	}
	return models.TimestampMatch{Index: idx, Timestamp: record.DisplayTimestamp}, nil
}
