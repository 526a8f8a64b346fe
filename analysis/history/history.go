package history

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/Manum-dev/analyze-tracker/analysis"
)

// DefaultJSONPath is where the CLI keeps its log unless told otherwise.
const DefaultJSONPath = "analysis_history.json"

// Sink persists analysis results. Append returns the id assigned to the new record.
type Sink interface {
	Append(ctx context.Context, source string, r analysis.Result) (int64, error)
}

// Record is one persisted analysis.
type Record struct {
	ID        int64           `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Source    string          `json:"source"`
	Metrics   analysis.Result `json:"metrics"`
}

func componentLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger.With(slog.String("component", "history"))
}
