package analysis

import (
	"strings"
	"time"
	"unicode/utf8"
)

var sentenceTerminators = strings.NewReplacer("!", ".", "?", ".")

// ComputeMetrics counts words, characters and sentences in text. It never fails.
//
// Words are runs of non-whitespace. Characters are Unicode code points of the raw input.
// Sentences are the non-blank fragments left after treating '!' and '?' as '.' and splitting on '.'.
func ComputeMetrics(text string) Result {
	start := time.Now()

	sentences := 0
	for _, frag := range strings.Split(sentenceTerminators.Replace(text), ".") {
		if strings.TrimSpace(frag) != "" {
			sentences++
		}
	}

	return Result{
		WordCount:     len(strings.Fields(text)),
		CharCount:     utf8.RuneCountInString(text),
		SentenceCount: sentences,
		Keywords:      []string{},
		LatencyMS:     elapsedMS(start),
	}
}

func elapsedMS(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
