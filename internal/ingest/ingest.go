package ingest

import (
	"context"

	"github.com/itsatony/swat_playback/internal/models"
)

// RowFunc receives each row of a source. Returning an error stops the read.
type RowFunc func(row models.RawRow) error

// Source produces raw rows with trimmed column names and trimmed values.
type Source interface {
	Name() string
	Rows(ctx context.Context, fn RowFunc) error
}

// ctxCheckEvery bounds how many rows are read between cancellation checks
const ctxCheckEvery = 1024
