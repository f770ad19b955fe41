package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/itsatony/swat_playback/internal/cache"
	"github.com/itsatony/swat_playback/internal/dataset"
	"github.com/itsatony/swat_playback/internal/errors"
	"github.com/itsatony/swat_playback/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// HistoryService answers chart history queries
type HistoryService interface {
	History(ctx context.Context, q models.HistoryQuery) ([]models.HistoryPoint, error)
}

// historyRequest is a validated history query
type historyRequest struct {
	mode     models.HistoryMode
	deviceID string
	endIndex int
	seconds  int
}

// History returns the chart window of one device ending at endIndex. The
// default mode takes the seconds value as a record count: the window is
// [max(0, endIndex-seconds), endIndex]. Mode "time" selects records whose
// instant is within seconds of the record at endIndex instead.
func (s *Service) History(ctx context.Context, q models.HistoryQuery) (points []models.HistoryPoint, err error) {
	defer func(started time.Time) { s.observe(OpHistory, started, err) }(time.Now())

	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	req, err := parseHistoryQuery(q)
	if err != nil {
		return nil, err
	}
	if !snap.Records.HasDevice(req.deviceID) {
		return nil, errors.NewInvalidParameterError("Unknown deviceId", nil).
			WithDetails(map[string]string{"deviceId": req.deviceID})
	}

	key := cache.Key(snap.LoadedAt.UnixNano(), req.mode, req.deviceID, req.endIndex, req.seconds)
	if cached, ok := s.cachedHistory(ctx, key); ok {
		return cached, nil
	}

	switch req.mode {
	case models.HistoryModeTime:
		points = historyByTime(snap, req)
	default:
		points = historyByIndex(snap, req)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, points); err != nil {
			nuts.L.Warnf("[HistoryService] Failed to cache history %s: %v", key, err)
		}
	}
	return points, nil
}

// HistoryByTime is History in time mode
func (s *Service) HistoryByTime(ctx context.Context, deviceID string, endIndex, seconds int) ([]models.HistoryPoint, error) {
	return s.History(ctx, models.HistoryQuery{
		DeviceID: deviceID,
		EndIndex: strconv.Itoa(endIndex),
		Seconds:  strconv.Itoa(seconds),
		Mode:     models.HistoryModeTime,
	})
}

func (s *Service) cachedHistory(ctx context.Context, key string) ([]models.HistoryPoint, bool) {
	if s.cache == nil {
		return nil, false
	}
	points, hit, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		s.observeCache(CacheError)
		nuts.L.Warnf("[HistoryService] Cache lookup failed for %s: %v", key, err)
		return nil, false
	case !hit:
		s.observeCache(CacheMiss)
		return nil, false
	}
	s.observeCache(CacheHit)
	return points, true
}

func parseHistoryQuery(q models.HistoryQuery) (historyRequest, error) {
	req := historyRequest{deviceID: strings.TrimSpace(q.DeviceID)}
	if req.deviceID == "" {
		return req, errors.NewInvalidParameterError("Missing deviceId", nil)
	}

	var err error
	if req.endIndex, err = strictInt(q.EndIndex); err != nil {
		return req, errors.NewInvalidParameterError("endIndex must be an integer", err).
			WithDetails(map[string]string{"endIndex": q.EndIndex})
	}
	if req.seconds, err = strictInt(q.Seconds); err != nil {
		return req, errors.NewInvalidParameterError("seconds must be an integer", err).
			WithDetails(map[string]string{"seconds": q.Seconds})
	}

	switch q.Mode {
	case "", models.HistoryModeIndex:
		req.mode = models.HistoryModeIndex
	case models.HistoryModeTime:
		req.mode = models.HistoryModeTime
	default:
		return req, errors.NewInvalidParameterError("mode must be index or time", nil).
			WithDetails(map[string]string{"mode": string(q.Mode)})
	}
	return req, nil
}

// strictInt accepts an optionally signed decimal integer and nothing else
func strictInt(raw string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(raw))
}

func historyByIndex(snap *dataset.Snapshot, req historyRequest) []models.HistoryPoint {
	// a negative count puts start past endIndex; a negative endIndex selects nothing
	if req.endIndex < 0 || req.seconds < 0 {
		return []models.HistoryPoint{}
	}
	start := req.endIndex - req.seconds
	if start < 0 {
		start = 0
	}
	return toPoints(snap.Records.Slice(start, req.endIndex), req.deviceID)
}

func historyByTime(snap *dataset.Snapshot, req historyRequest) []models.HistoryPoint {
	n := snap.Records.Len()
	if n == 0 || req.endIndex < 0 || req.seconds < 0 {
		return []models.HistoryPoint{}
	}
	end := req.endIndex
	if end >= n {
		end = n - 1
	}
	first, err := snap.Records.Get(0)
	if err != nil {
		return []models.HistoryPoint{}
	}
	last, err := snap.Records.Get(end)
	if err != nil {
		return []models.HistoryPoint{}
	}
	// windows longer than the dataset are clamped to its span
	window := last.Instant.Sub(first.Instant)
	if int64(req.seconds) <= int64(window/time.Second) {
		window = time.Duration(req.seconds) * time.Second
	}
	from := last.Instant.Add(-window)
	return toPoints(snap.Records.Slice(snap.Records.LowerBound(from), end), req.deviceID)
}

func toPoints(records []models.SensorRecord, deviceID string) []models.HistoryPoint {
	points := make([]models.HistoryPoint, 0, len(records))
	for _, r := range records {
		points = append(points, models.HistoryPoint{
			JSTimestamp: r.Instant.UnixMilli(),
			Value:       r.Values[deviceID],
		})
	}
	return points
}
