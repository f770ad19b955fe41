// FilePath: internal/repository/repository.go
package repository

import (
	"errors"
	"time"

	"github.com/itsatony/swat_playback/internal/models"
)

// ErrNotFound indicates that a requested record does not exist
var ErrNotFound = errors.New("resource not found")

// RecordRepository is the read-only, time-sorted sensor record sequence
type RecordRepository interface {
	Len() int
	Get(index int) (models.SensorRecord, error)
	Previous(index int) (models.SensorRecord, bool)
	NearestIndex(t time.Time) int
	LowerBound(t time.Time) int
	Slice(start, end int) []models.SensorRecord
	DeviceIDs() []string
	HasDevice(id string) bool
}

// AttackRepository is the read-only attack interval index
type AttackRepository interface {
	Len() int
	Containing(t time.Time) (models.AttackInterval, bool)
	ListSorted() []models.AttackInterval
}
