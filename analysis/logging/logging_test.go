package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_ProductionWritesJSONAtInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, false)
	log.Debug("hidden_event")
	log.Info("local_analysis_completed", "word_count", 7)

	out := strings.TrimSpace(buf.String())
	if strings.Contains(out, "hidden_event") {
		t.Fatalf("debug event emitted in production mode: %s", out)
	}
	var event map[string]any
	if err := json.Unmarshal([]byte(out), &event); err != nil {
		t.Fatalf("output is not a single JSON object: %v (%s)", err, out)
	}
	if event["msg"] != "local_analysis_completed" {
		t.Fatalf("msg=%v, want local_analysis_completed", event["msg"])
	}
	if event["word_count"] != float64(7) {
		t.Fatalf("word_count=%v, want 7", event["word_count"])
	}
}

func TestNew_DebugWritesConsoleLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, true)
	log.Debug("starting_local_analysis", "text_length", 3)

	out := buf.String()
	if !strings.Contains(out, "starting_local_analysis") {
		t.Fatalf("debug event missing: %q", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("debug output should not be JSON: %q", out)
	}
}
