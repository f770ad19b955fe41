// FilePath: internal/dataset/dataset.go
package dataset

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/itsatony/swat_playback/internal/ingest"
	"github.com/itsatony/swat_playback/internal/models"
	"github.com/itsatony/swat_playback/internal/monitoring"
	"github.com/itsatony/swat_playback/internal/repository"
	"github.com/itsatony/swat_playback/internal/repository/memory"
	nuts "github.com/vaudience/go-nuts"
)

// Lifecycle events emitted by the loader
const (
	EventAttacksLoaded = "attacks.loaded"
	EventRecordsLoaded = "records.loaded"
	EventReady         = "dataset.ready"
	EventFailed        = "dataset.failed"
)

// Snapshot is the immutable dataset published once loading completes
type Snapshot struct {
	Records        repository.RecordRepository
	Attacks        repository.AttackRepository
	DroppedRows    int
	DroppedAttacks int
	LoadedAt       time.Time
}

// Observer receives load metrics. *monitoring.Service implements it.
type Observer interface {
	RecordLoad(dataset string, kept, dropped int)
	SetReady(ready bool, took time.Duration)
}

// Loader runs the one-time load phase and owns the Loading -> Ready state
type Loader struct {
	records  ingest.Source
	attacks  ingest.Source
	observer Observer
	events   *nuts.EventEmitter

	snapshot atomic.Pointer[Snapshot]

	mu    sync.RWMutex
	state models.LoadState
	err   error
}

// Option configures a Loader
type Option func(*Loader)

// WithObserver reports load metrics to o
func WithObserver(o Observer) Option {
	return func(l *Loader) {
		l.observer = o
	}
}

// New creates a loader over the sensor and attack sources
func New(records, attacks ingest.Source, opts ...Option) *Loader {
	l := &Loader{
		records: records,
		attacks: attacks,
		events:  nuts.NewEventEmitter(),
		state:   models.StateLoading,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewReady returns a loader that already serves the given stores
func NewReady(records repository.RecordRepository, attacks repository.AttackRepository) *Loader {
	l := New(nil, nil)
	l.publish(&Snapshot{Records: records, Attacks: attacks, LoadedAt: time.Now()})
	return l
}

// Load reads attacks first, then sensor records, and publishes the snapshot.
// It must be called once.
func (l *Loader) Load(ctx context.Context) error {
	started := time.Now()

	attacks, droppedAttacks, err := l.loadAttacks(ctx)
	if err != nil {
		return l.fail(err, started)
	}
	l.events.Emit(EventAttacksLoaded, strconv.Itoa(attacks.Len()))

	records, droppedRows, err := l.loadRecords(ctx)
	if err != nil {
		return l.fail(err, started)
	}
	l.events.Emit(EventRecordsLoaded, strconv.Itoa(records.Len()))

	l.publish(&Snapshot{
		Records:        records,
		Attacks:        attacks,
		DroppedRows:    droppedRows,
		DroppedAttacks: droppedAttacks,
		LoadedAt:       time.Now(),
	})
	if l.observer != nil {
		l.observer.SetReady(true, time.Since(started))
	}

	nuts.L.Infof("[Loader] Dataset ready: %d records (%d dropped), %d attacks (%d dropped) in %v",
		records.Len(), droppedRows, attacks.Len(), droppedAttacks, time.Since(started))
	l.events.Emit(EventReady, strconv.Itoa(records.Len()))
	return nil
}

func (l *Loader) loadAttacks(ctx context.Context) (*memory.AttackIndex, int, error) {
	b := memory.NewAttackBuilder()
	err := l.attacks.Rows(ctx, func(row models.RawRow) error {
		b.Add(row)
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load attacks from %s: %w", l.attacks.Name(), err)
	}

	index := b.Build()
	if l.observer != nil {
		l.observer.RecordLoad(monitoring.DatasetAttacks, index.Len(), b.Dropped())
	}
	if b.Dropped() > 0 {
		nuts.L.Warnf("[Loader] Dropped %d attack rows from %s", b.Dropped(), l.attacks.Name())
	}
	nuts.L.Infof("[Loader] Attack data loaded: %d records", index.Len())
	return index, b.Dropped(), nil
}

func (l *Loader) loadRecords(ctx context.Context) (*memory.RecordStore, int, error) {
	b := memory.NewRecordBuilder()
	err := l.records.Rows(ctx, func(row models.RawRow) error {
		b.Add(row)
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load records from %s: %w", l.records.Name(), err)
	}

	store := b.Build()
	if l.observer != nil {
		l.observer.RecordLoad(monitoring.DatasetRecords, store.Len(), b.Dropped())
	}
	if b.Dropped() > 0 {
		nuts.L.Warnf("[Loader] Dropped %d sensor rows with unparseable timestamps from %s", b.Dropped(), l.records.Name())
	}
	nuts.L.Infof("[Loader] SWaT dataset loaded and sorted: %d records", store.Len())
	return store, b.Dropped(), nil
}

func (l *Loader) publish(s *Snapshot) {
	l.snapshot.Store(s)
	l.mu.Lock()
	l.state = models.StateReady
	l.err = nil
	l.mu.Unlock()
}

func (l *Loader) fail(err error, started time.Time) error {
	l.mu.Lock()
	l.state = models.StateFailed
	l.err = err
	l.mu.Unlock()

	if l.observer != nil {
		l.observer.SetReady(false, time.Since(started))
	}
	nuts.L.Errorf("[Loader] Dataset load failed: %v", err)
	l.events.Emit(EventFailed, err.Error())
	return err
}

// Snapshot returns the published dataset, or false while not ready
func (l *Loader) Snapshot() (*Snapshot, bool) {
	s := l.snapshot.Load()
	return s, s != nil
}

// State returns the current lifecycle state and the load error, if any
func (l *Loader) State() (models.LoadState, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state, l.err
}

// Status summarizes the loader for the health route
func (l *Loader) Status() models.LoadStatus {
	state, err := l.State()
	status := models.LoadStatus{State: state}
	if err != nil {
		status.Error = err.Error()
	}
	if s, ok := l.Snapshot(); ok {
		loadedAt := s.LoadedAt
		status.Records = s.Records.Len()
		status.Attacks = s.Attacks.Len()
		status.DroppedRows = s.DroppedRows
		status.DroppedAttacks = s.DroppedAttacks
		status.LoadedAt = &loadedAt
	}
	return status
}

// OnEvent registers a callback for loader lifecycle events
func (l *Loader) OnEvent(event string, handler func(detail string)) {
	l.events.On(event, nuts.NID("evt", 10), func(args ...interface{}) {
		if len(args) > 0 {
			if detail, ok := args[0].(string); ok {
				handler(detail)
			}
		}
	})
}
