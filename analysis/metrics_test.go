package analysis

import (
	"strings"
	"testing"
)

func TestComputeMetrics_Counts(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text      string
		words     int
		chars     int
		sentences int
	}{
		{"", 0, 0, 0},
		{"   \t\n  ", 0, 7, 0},
		{"Hello! How are you? Fine.", 5, 25, 3},
		{"I love coding with Python and AI!", 7, 33, 1},
		{"one\ttwo\n\nthree   four", 4, 21, 1},
		{"...!?", 1, 5, 0},
		{"No terminator at all", 4, 20, 1},
		{"Ciao. Perché? Così!", 3, 19, 3},
		{"a.b.c", 1, 5, 3},
	}
	for _, tc := range cases {
		r := ComputeMetrics(tc.text)
		if r.WordCount != tc.words {
			t.Fatalf("%q: WordCount=%d, want %d", tc.text, r.WordCount, tc.words)
		}
		if r.CharCount != tc.chars {
			t.Fatalf("%q: CharCount=%d, want %d", tc.text, r.CharCount, tc.chars)
		}
		if r.SentenceCount != tc.sentences {
			t.Fatalf("%q: SentenceCount=%d, want %d", tc.text, r.SentenceCount, tc.sentences)
		}
	}
}

func TestComputeMetrics_WordCountMatchesFields(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"alpha beta",
		"  leading and trailing  ",
		"tabs\tand\nnewlines\r\nmixed",
		"unicode\u00a0nbsp\u2003emspace",
		strings.Repeat("w ", 500),
	}
	for _, in := range inputs {
		if got, want := ComputeMetrics(in).WordCount, len(strings.Fields(in)); got != want {
			t.Fatalf("%q: WordCount=%d, want %d", in, got, want)
		}
	}
}

func TestComputeMetrics_NoRemoteFieldsAndIdempotent(t *testing.T) {
	t.Parallel()

	text := "The quick brown fox. It jumps!"
	a := ComputeMetrics(text)
	b := ComputeMetrics(text)

	if a.WordCount != b.WordCount || a.CharCount != b.CharCount || a.SentenceCount != b.SentenceCount {
		t.Fatalf("counts differ between runs: %+v vs %+v", a, b)
	}
	if a.Enriched() {
		t.Fatalf("local metrics should carry no remote fields: %+v", a)
	}
	if a.Keywords == nil || len(a.Keywords) != 0 {
		t.Fatalf("Keywords=%v, want empty non-nil", a.Keywords)
	}
	if a.LatencyMS < 0 {
		t.Fatalf("LatencyMS=%v, want >= 0", a.LatencyMS)
	}
}
