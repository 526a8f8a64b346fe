package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Manum-dev/analyze-tracker/analysis"
)

// DefaultSQLitePath is the CLI default for -store sqlite.
const DefaultSQLitePath = "analysis_history.db"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS analyses (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp TEXT NOT NULL,
    source TEXT NOT NULL,
    metrics TEXT NOT NULL
);
`

type SQLiteStore struct {
	db  *sql.DB
	log *slog.Logger
	now func() time.Time
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
func OpenSQLite(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if path == "" {
		path = DefaultSQLitePath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create dir for %s: %w", analysis.ErrStorage, path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %w", analysis.ErrStorage, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: apply schema: %w", analysis.ErrStorage, err)
	}
	return &SQLiteStore{db: db, log: componentLogger(logger), now: time.Now}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Append(ctx context.Context, source string, r analysis.Result) (int64, error) {
	metrics, err := json.Marshal(r)
	if err != nil {
		return 0, fmt.Errorf("%w: marshal metrics: %w", analysis.ErrStorage, err)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO analyses(timestamp, source, metrics) VALUES(?,?,?)`,
		s.now().Format(time.RFC3339Nano),
		source,
		string(metrics),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: insert analysis: %w", analysis.ErrStorage, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: analysis last insert id: %w", analysis.ErrStorage, err)
	}
	s.log.Debug("history_appended", slog.Int64("id", id), slog.String("source", source))
	return id, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, timestamp, source, metrics FROM analyses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: query analyses: %w", analysis.ErrStorage, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec     Record
			ts      string
			metrics string
		)
		if err := rows.Scan(&rec.ID, &ts, &rec.Source, &metrics); err != nil {
			return nil, fmt.Errorf("%w: scan analysis: %w", analysis.ErrStorage, err)
		}
		rec.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("%w: analysis %d timestamp: %w", analysis.ErrStorage, rec.ID, err)
		}
		if err := json.Unmarshal([]byte(metrics), &rec.Metrics); err != nil {
			return nil, fmt.Errorf("%w: analysis %d metrics: %w", analysis.ErrStorage, rec.ID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate analyses: %w", analysis.ErrStorage, err)
	}
	return records, nil
}
