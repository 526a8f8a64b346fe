package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/Manum-dev/analyze-tracker/analysis"
	"github.com/Manum-dev/analyze-tracker/analysis/fileutils"
)

var errCorrupt = errors.New("history file is not a JSON array of records")

// JSONStore keeps every record in a single JSON array file. An unparsable file is reset to an
// empty log on the next Append.
type JSONStore struct {
	path string
	log  *slog.Logger
	now  func() time.Time

	mu sync.Mutex
}

// NewJSONStore creates path with an empty array when it does not exist yet.
func NewJSONStore(path string, logger *slog.Logger) (*JSONStore, error) {
	if path == "" {
		path = DefaultJSONPath
	}
	s := &JSONStore{path: path, log: componentLogger(logger), now: time.Now}
	if !fileutils.FileExists(path) {
		if err := fileutils.WriteJSONFileAtomic(path, []Record{}, true); err != nil {
			return nil, fmt.Errorf("%w: init %s: %w", analysis.ErrStorage, path, err)
		}
	}
	return s, nil
}

func (s *JSONStore) Append(ctx context.Context, source string, r analysis.Result) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %w", analysis.ErrStorage, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if errors.Is(err, errCorrupt) {
		s.log.Warn("history_corrupted_resetting", slog.String("path", s.path), slog.String("error", err.Error()))
		records = nil
	} else if err != nil {
		return 0, fmt.Errorf("%w: read %s: %w", analysis.ErrStorage, s.path, err)
	}

	rec := Record{
		ID:        int64(len(records) + 1),
		Timestamp: s.now(),
		Source:    source,
		Metrics:   r,
	}
	records = append(records, rec)
	if err := fileutils.WriteJSONFileAtomic(s.path, records, true); err != nil {
		return 0, fmt.Errorf("%w: write %s: %w", analysis.ErrStorage, s.path, err)
	}

	s.log.Debug("history_appended", slog.Int64("id", rec.ID), slog.String("source", source))
	return rec.ID, nil
}

// List returns all records in insertion order. A corrupt file is reported, not reset.
func (s *JSONStore) List(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", analysis.ErrStorage, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", analysis.ErrStorage, s.path, err)
	}
	return records, nil
}

func (s *JSONStore) load() ([]Record, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var records []Record
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", errCorrupt, err)
	}
	return records, nil
}
