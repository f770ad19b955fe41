// FilePath: internal/ingest/ingest.postgres.go
package ingest

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/itsatony/swat_playback/internal/database"
	"github.com/itsatony/swat_playback/internal/errors"
	"github.com/itsatony/swat_playback/internal/models"
	"github.com/itsatony/swat_playback/internal/timestamp"
	"github.com/lib/pq"
)

// PostgresSource reads every row of a table that mirrors the CSV layout,
// one column per CSV header.
type PostgresSource struct {
	db    database.DB
	table string
}

// NewPostgresSource creates a source over table
func NewPostgresSource(db database.DB, table string) *PostgresSource {
	return &PostgresSource{db: db, table: table}
}

// Name returns the source name used in logs
func (p *PostgresSource) Name() string {
	return "postgres:" + p.table
}

// SelectQuery returns the statement used to read table
func SelectQuery(table string) string {
	parts := strings.Split(table, ".")
	for i, part := range parts {
		parts[i] = pq.QuoteIdentifier(part)
	}
	return "SELECT * FROM " + strings.Join(parts, ".")
}

// Rows streams the table rows to fn, converting every cell to its text form
func (p *PostgresSource) Rows(ctx context.Context, fn RowFunc) error {
	rows, err := p.db.GetDB().QueryxContext(ctx, SelectQuery(p.table))
	if err != nil {
		return errors.NewDatabaseError("failed to query "+p.table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return errors.NewDatabaseError("failed to read columns of "+p.table, err)
	}
	columns := make([]string, len(cols))
	for i, c := range cols {
		columns[i] = strings.TrimSpace(c)
	}

	line := 0
	for rows.Next() {
		line++
		cells, err := rows.SliceScan()
		if err != nil {
			return errors.NewDatabaseError(fmt.Sprintf("failed to scan %s row %d", p.table, line), err)
		}
		values := make(map[string]string, len(columns))
		for i, col := range columns {
			values[col] = CellString(cells[i])
		}
		if err := fn(models.RawRow{Line: line, Columns: columns, Values: values}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return errors.NewDatabaseError("failed to iterate "+p.table, err)
	}
	return nil
}

// CellString renders a scanned cell the way the CSV export would show it.
// Timestamps become the 24-hour dataset layout in UTC.
func CellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return strings.TrimSpace(string(t))
	case string:
		return strings.TrimSpace(t)
	case time.Time:
		return t.UTC().Format(timestamp.DisplayLayout)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
