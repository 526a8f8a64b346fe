package history

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteStore_AppendAndList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := OpenSQLite(path, nil)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	const n = 4
	for i := 1; i <= n; i++ {
		id, err := s.Append(ctx, "file:doc.pdf", sampleResult(i))
		if err != nil {
			t.Fatalf("Append #%d: %v", i, err)
		}
		if id != int64(i) {
			t.Fatalf("Append #%d id=%d, want %d", i, id, i)
		}
	}

	records, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != n {
		t.Fatalf("len(records)=%d, want %d", len(records), n)
	}
	last := records[n-1]
	if last.ID != n || last.Source != "file:doc.pdf" || last.Metrics.WordCount != n {
		t.Fatalf("last=%+v", last)
	}
	if last.Metrics.SentimentScore == nil || *last.Metrics.SentimentScore != 0.5 {
		t.Fatalf("SentimentScore=%v, want 0.5", last.Metrics.SentimentScore)
	}
	if len(last.Metrics.Keywords) != 1 || last.Metrics.Keywords[0] != "go" {
		t.Fatalf("Keywords=%v", last.Metrics.Keywords)
	}
}

func TestSQLiteStore_ReopenKeepsRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := OpenSQLite(path, nil)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if _, err := s.Append(ctx, "text_input", sampleResult(1)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = OpenSQLite(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	id, err := s.Append(ctx, "text_input", sampleResult(2))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if id != 2 {
		t.Fatalf("id=%d, want 2", id)
	}
}
