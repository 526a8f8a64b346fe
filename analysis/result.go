package analysis

// Sentiment labels accepted from the model.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// moodThreshold is the score magnitude above which a text reads as non-neutral.
const moodThreshold = 0.1

// Result is the record produced by one analysis run: local metrics, plus remote insight when
// the model call succeeded.
type Result struct {
	WordCount     int `json:"word_count"`
	CharCount     int `json:"char_count"`
	SentenceCount int `json:"sentence_count"`

	// Remote fields. Nil (or empty, for Keywords) unless a model reply was applied.
	SentimentScore      *float64 `json:"sentiment_score"`
	SentimentLabel      *string  `json:"sentiment_label"`
	SentimentConfidence *float64 `json:"sentiment_confidence"`
	Summary             *string  `json:"summary"`
	Keywords            []string `json:"keywords"`

	// LatencyMS is local computation time plus model call time, in milliseconds.
	LatencyMS float64 `json:"latency_ms"`
}

// Enriched reports whether any remote field is set.
func (r Result) Enriched() bool {
	return r.SentimentScore != nil ||
		r.SentimentLabel != nil ||
		r.SentimentConfidence != nil ||
		r.Summary != nil ||
		len(r.Keywords) > 0
}

// Mood is a human label for the sentiment: derived from the score when present,
// otherwise from the label. Empty when neither is set.
func (r Result) Mood() string {
	if r.SentimentScore != nil {
		return moodForScore(*r.SentimentScore)
	}
	if r.SentimentLabel != nil {
		switch *r.SentimentLabel {
		case SentimentPositive:
			return "Positive"
		case SentimentNegative:
			return "Negative"
		default:
			return "Neutral"
		}
	}
	return ""
}

func moodForScore(score float64) string {
	switch {
	case score > moodThreshold:
		return "Positive"
	case score < -moodThreshold:
		return "Negative"
	default:
		return "Neutral"
	}
}
