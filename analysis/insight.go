package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DefaultModel         = "gpt-5-mini"
	DefaultMaxInputChars = 4000
	DefaultTimeout       = 30 * time.Second
)

// Generator is the model transport: one prompt in, one free-text reply out.
type Generator interface {
	Generate(ctx context.Context, model string, prompt string) (string, error)
}

// InsightConfig is read-only after construction.
type InsightConfig struct {
	APIKey string
	Model  string

	// MaxInputChars bounds the prefix of the text sent to the model, in code points.
	MaxInputChars int

	// Timeout bounds the model call. Expiry is a transport failure.
	Timeout time.Duration
}

// InsightClient asks a generative model for sentiment, keywords and a summary of a text.
type InsightClient struct {
	cfg InsightConfig
	gen Generator
	log *slog.Logger
}

// NewInsightClient fills zero-valued config fields with defaults. A nil logger discards events.
func NewInsightClient(cfg InsightConfig, gen Generator, logger *slog.Logger) *InsightClient {
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxInputChars <= 0 {
		cfg.MaxInputChars = DefaultMaxInputChars
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &InsightClient{
		cfg: cfg,
		gen: gen,
		log: componentLogger(logger, "insight"),
	}
}

// Insight is the decoded model reply. Nil fields were absent from the reply and must not
// overwrite anything when applied.
type Insight struct {
	SentimentLabel      *string
	SentimentScore      *float64
	SentimentConfidence *float64
	Summary             *string
	Keywords            []string

	WordCount     *int
	CharCount     *int
	SentenceCount *int

	// LatencyMS covers the model call and the decode.
	LatencyMS float64
}

// ApplyTo merges the insight into r: present fields overwrite, absent fields are left alone,
// latency is added.
func (in Insight) ApplyTo(r *Result) {
	if r == nil {
		return
	}
	if in.WordCount != nil {
		r.WordCount = *in.WordCount
	}
	if in.CharCount != nil {
		r.CharCount = *in.CharCount
	}
	if in.SentenceCount != nil {
		r.SentenceCount = *in.SentenceCount
	}
	if in.SentimentLabel != nil {
		r.SentimentLabel = in.SentimentLabel
	}
	if in.SentimentScore != nil {
		r.SentimentScore = in.SentimentScore
	}
	if in.SentimentConfidence != nil {
		r.SentimentConfidence = in.SentimentConfidence
	}
	if in.Summary != nil {
		r.Summary = in.Summary
	}
	if in.Keywords != nil {
		r.Keywords = append(make([]string, 0, len(in.Keywords)), in.Keywords...)
	}
	r.LatencyMS += in.LatencyMS
}

// WithoutCounts returns a copy that leaves the local counts untouched when applied.
func (in Insight) WithoutCounts() Insight {
	in.WordCount = nil
	in.CharCount = nil
	in.SentenceCount = nil
	return in
}

func (in Insight) sentiment() string {
	switch {
	case in.SentimentLabel != nil:
		return *in.SentimentLabel
	case in.SentimentScore != nil:
		return fmt.Sprintf("%.2f", *in.SentimentScore)
	}
	return ""
}

// Enrich makes exactly one model call for text. Every failure is wrapped in ErrConfiguration,
// ErrTransport or ErrMalformedResponse and returned with a zero Insight.
func (c *InsightClient) Enrich(ctx context.Context, text string) (Insight, error) {
	in, err := c.enrich(ctx, text)
	if err != nil {
		c.log.Error("remote_api_failed", slog.String("error", err.Error()))
		return Insight{}, err
	}
	c.log.Info("remote_analysis_completed",
		slog.Float64("latency_ms", in.LatencyMS),
		slog.String("sentiment", in.sentiment()))
	return in, nil
}

func (c *InsightClient) enrich(ctx context.Context, text string) (Insight, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return Insight{}, fmt.Errorf("%w: missing API key (set OPENAI_API_KEY or pass -api-key)", ErrConfiguration)
	}
	if c.gen == nil {
		return Insight{}, fmt.Errorf("%w: no model transport", ErrConfiguration)
	}

	c.log.Info("calling_remote_api", slog.Int("text_length", utf8.RuneCountInString(text)))
	start := time.Now()

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	prompt := buildInsightPrompt(truncateRunes(text, c.cfg.MaxInputChars))
	raw, err := c.gen.Generate(callCtx, c.cfg.Model, prompt)
	if err != nil {
		if ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return Insight{}, fmt.Errorf("%w: model call timed out after %s: %w", ErrTransport, c.cfg.Timeout, err)
		}
		return Insight{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	in, err := decodeInsight(raw)
	if err != nil {
		return Insight{}, err
	}
	in.LatencyMS = elapsedMS(start)
	return in, nil
}

// truncateRunes keeps the first max code points of s. No sentence repair.
func truncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
