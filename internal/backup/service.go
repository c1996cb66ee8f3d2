// Package backup archives the snapshot store as a compressed SQL dump.
// The dump is rebuildable data (snapshots are recomputed from the
// sheets on the next refresh), so backups exist for audit trails and
// for moving a database between hosts, not for disaster recovery.
package backup

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

type Service struct {
	db     *sqlx.DB
	dbPath string
}

func NewService(db *sqlx.DB, dbPath string) *Service {
	return &Service{
		db:     db,
		dbPath: dbPath,
	}
}

// BackupResult describes a completed backup file.
type BackupResult struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
}

// CreateBackup writes a gzipped SQL dump of the live database into a
// backups/ directory next to the database file. The live database is
// first consolidated into a temporary copy with VACUUM INTO so the
// dump reads a consistent point-in-time image.
func (s *Service) CreateBackup(ctx context.Context) (*BackupResult, error) {
	backupDir := filepath.Join(filepath.Dir(s.dbPath), "backups")
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return nil, fmt.Errorf("create backup directory: %w", err)
	}

	filename := time.Now().Format("2006-01-02_15.04.05") + "_fleetdump.sql.gz"
	backupPath := filepath.Join(backupDir, filename)

	tempPath := filepath.Join(backupDir, "temp_backup.db")
	defer os.Remove(tempPath)

	if _, err := s.db.ExecContext(ctx, `VACUUM INTO ?`, tempPath); err != nil {
		return nil, fmt.Errorf("vacuum into temp: %w", err)
	}

	tempDB, err := sqlx.Open("sqlite3", tempPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open temp db: %w", err)
	}
	defer tempDB.Close()

	file, err := os.Create(backupPath)
	if err != nil {
		return nil, fmt.Errorf("create backup file: %w", err)
	}
	defer file.Close()

	gz := gzip.NewWriter(file)
	if err := writeDump(ctx, tempDB, gz); err != nil {
		return nil, fmt.Errorf("write dump: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("close gzip writer: %w", err)
	}

	info, err := os.Stat(backupPath)
	if err != nil {
		return nil, fmt.Errorf("stat backup file: %w", err)
	}

	return &BackupResult{
		Filename: filename,
		Path:     backupPath,
		Size:     info.Size(),
	}, nil
}

// writeDump streams a restorable SQL script: schema objects first, then
// one INSERT per row of every user table, inside a single transaction.
func writeDump(ctx context.Context, db *sqlx.DB, w io.Writer) error {
	fmt.Fprintf(w, "-- Fleetboard snapshot store dump\n-- Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprint(w, "PRAGMA foreign_keys=OFF;\nBEGIN TRANSACTION;\n\n")

	schemas, err := schemaObjects(ctx, db)
	if err != nil {
		return err
	}
	for _, obj := range schemas {
		fmt.Fprintf(w, "%s;\n", obj.SQL)
	}
	fmt.Fprint(w, "\n")

	tables, err := userTables(ctx, db)
	if err != nil {
		return err
	}
	for _, table := range tables {
		if err := writeInserts(ctx, db, w, table); err != nil {
			return fmt.Errorf("dump table %s: %w", table, err)
		}
	}

	// The live database runs in WAL mode; restores get the same.
	fmt.Fprint(w, "COMMIT;\nPRAGMA journal_mode=WAL;\n")
	return nil
}

type schemaObject struct {
	Type string `db:"type"`
	Name string `db:"name"`
	SQL  string `db:"sql"`
}

// schemaObjects returns table, index, trigger and view definitions in
// creation-safe order.
func schemaObjects(ctx context.Context, db *sqlx.DB) ([]schemaObject, error) {
	var schemas []schemaObject
	query := `
		SELECT type, name, sql
		FROM sqlite_master
		WHERE sql IS NOT NULL
		  AND name NOT LIKE 'sqlite_%'
		ORDER BY
			CASE type
				WHEN 'table' THEN 1
				WHEN 'index' THEN 2
				WHEN 'trigger' THEN 3
				WHEN 'view' THEN 4
			END,
			name
	`
	if err := db.SelectContext(ctx, &schemas, query); err != nil {
		return nil, fmt.Errorf("query schemas: %w", err)
	}
	return schemas, nil
}

func userTables(ctx context.Context, db *sqlx.DB) ([]string, error) {
	var tables []string
	query := `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table'
		  AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`
	if err := db.SelectContext(ctx, &tables, query); err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	return tables, nil
}

func writeInserts(ctx context.Context, db *sqlx.DB, w io.Writer, table string) error {
	rows, err := db.QueryxContext(ctx, fmt.Sprintf("SELECT * FROM %q", table))
	if err != nil {
		return fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("get columns: %w", err)
	}
	columnList := strings.Join(quoteAll(columns), ", ")

	wrote := false
	for rows.Next() {
		row, err := rows.SliceScan()
		if err != nil {
			return fmt.Errorf("scan row: %w", err)
		}

		values := make([]string, len(row))
		for i, v := range row {
			values[i] = sqlLiteral(v)
		}

		fmt.Fprintf(w, "INSERT INTO %q (%s) VALUES (%s);\n",
			table, columnList, strings.Join(values, ", "))
		wrote = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate rows: %w", err)
	}
	if wrote {
		fmt.Fprint(w, "\n")
	}
	return nil
}

func quoteAll(columns []string) []string {
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = fmt.Sprintf("%q", col)
	}
	return quoted
}

// sqlLiteral renders one scanned value as a SQL literal. go-sqlite3
// scans TEXT columns as []byte; both are quoted with doubled single
// quotes, which covers the JSON payload column.
func sqlLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return "'" + strings.ReplaceAll(string(val), "'", "''") + "'"
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	case int, int32, int64, float32, float64:
		return fmt.Sprintf("%v", val)
	case bool:
		if val {
			return "1"
		}
		return "0"
	default:
		return "'" + strings.ReplaceAll(fmt.Sprintf("%v", val), "'", "''") + "'"
	}
}
