package export

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"NewsAnalytics/internal/ports"
)

// exportedTables are written out for BI import, one CSV per table.
var exportedTables = []string{"articles", "sources", "analytics_summary"}

// CSVExporter dumps persisted tables to CSV datasets in a directory.
type CSVExporter struct {
	db  *sql.DB
	dir string
}

var _ ports.DatasetExporter = (*CSVExporter)(nil)

// NewCSVExporter wires a database handle with an output directory.
func NewCSVExporter(db *sql.DB, dir string) *CSVExporter {
	return &CSVExporter{db: db, dir: dir}
}

// ExportDatasets writes every exported table and returns the file paths.
func (e *CSVExporter) ExportDatasets(ctx context.Context) ([]string, error) {
	if e.db == nil {
		return nil, nil
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	paths := make([]string, 0, len(exportedTables))
	for _, table := range exportedTables {
		path := filepath.Join(e.dir, table+".csv")
		if err := e.exportTable(ctx, table, path); err != nil {
			return paths, fmt.Errorf("export %s: %w", table, err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}

func (e *CSVExporter) exportTable(ctx context.Context, table, path string) error {
	rows, err := e.db.QueryContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return fmt.Errorf("query table: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("read columns: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	values := make([]any, len(columns))
	scanTargets := make([]any, len(columns))
	for i := range values {
		scanTargets[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}

		record := make([]string, len(values))
		for i, value := range values {
			record[i] = formatValue(value)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	return nil
}

// formatValue renders one database cell for CSV output.
func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}
