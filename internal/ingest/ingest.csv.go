// FilePath: internal/ingest/ingest.csv.go
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/itsatony/swat_playback/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// CSVSource reads rows from a CSV stream with a header line
type CSVSource struct {
	name string
	open func() (io.ReadCloser, error)
}

// NewCSVFileSource reads the CSV file at path. The file is opened on each Rows call.
func NewCSVFileSource(path string) *CSVSource {
	return &CSVSource{
		name: path,
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// NewCSVReaderSource reads a CSV stream that can only be consumed once
func NewCSVReaderSource(name string, r io.Reader) *CSVSource {
	return &CSVSource{
		name: name,
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(r), nil
		},
	}
}

// Name returns the source name used in logs
func (c *CSVSource) Name() string {
	return c.name
}

// Rows streams every data row to fn. Lines the CSV reader cannot parse are
// skipped with a warning.
func (c *CSVSource) Rows(ctx context.Context, fn RowFunc) error {
	f, err := c.open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.name, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("failed to read csv header of %s: %w", c.name, err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	line := 1
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped++
				continue
			}
			return fmt.Errorf("failed to read %s at line %d: %w", c.name, line, err)
		}

		if line%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		values := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(record) {
				values[col] = strings.TrimSpace(record[i])
			}
		}
		if err := fn(models.RawRow{Line: line, Columns: columns, Values: values}); err != nil {
			return err
		}
	}

	if skipped > 0 {
		nuts.L.Warnf("[Ingest] Skipped %d unreadable lines in %s", skipped, c.name)
	}
	return ctx.Err()
}
