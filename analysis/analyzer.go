package analysis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"unicode/utf8"
)

// Enricher is the remote phase of an analysis. *InsightClient implements it.
type Enricher interface {
	Enrich(ctx context.Context, text string) (Insight, error)
}

// Options tune how remote insight is merged.
type Options struct {
	// KeepLocalCounts ignores word/char/sentence counts echoed by the model.
	KeepLocalCounts bool
}

// Analyzer runs local metrics and then best-effort remote enrichment. It holds no per-request
// state and is safe for concurrent use.
type Analyzer struct {
	insight Enricher
	opts    Options
	log     *slog.Logger
}

// NewAnalyzer returns an Analyzer. A nil insight skips the remote phase.
func NewAnalyzer(insight Enricher, logger *slog.Logger, opts Options) *Analyzer {
	if c, ok := insight.(*InsightClient); ok && c == nil {
		insight = nil
	}
	return &Analyzer{
		insight: insight,
		opts:    opts,
		log:     componentLogger(logger, "analyzer"),
	}
}

// Analyze always returns a usable Result. Remote failures only make it less rich.
func (a *Analyzer) Analyze(ctx context.Context, text string) Result {
	r, _ := a.AnalyzeReport(ctx, text)
	return r
}

// AnalyzeReport is Analyze plus the reason the remote phase contributed nothing (nil when it
// succeeded). The Result is valid in both cases.
func (a *Analyzer) AnalyzeReport(ctx context.Context, text string) (Result, error) {
	a.log.Debug("starting_local_analysis", slog.Int("text_length", utf8.RuneCountInString(text)))
	r := ComputeMetrics(text)
	a.log.Info("local_analysis_completed",
		slog.Int("word_count", r.WordCount),
		slog.Float64("latency_ms", r.LatencyMS))

	if a.insight == nil {
		a.log.Debug("remote_analysis_skipped")
		return r, ErrRemoteSkipped
	}

	in, err := a.insight.Enrich(ctx, text)
	if err != nil {
		a.log.Warn("returning_local_metrics_only", slog.String("reason", remoteFailureKind(err)))
		return r, err
	}

	if a.opts.KeepLocalCounts {
		in = in.WithoutCounts()
	} else {
		a.logCountDisagreement(r, in)
	}
	in.ApplyTo(&r)
	return r, nil
}

func (a *Analyzer) logCountDisagreement(local Result, in Insight) {
	check := func(name string, localVal int, remote *int) {
		if remote != nil && *remote != localVal {
			a.log.Warn("remote_counts_disagree",
				slog.String("field", name),
				slog.Int("local", localVal),
				slog.Int("remote", *remote))
		}
	}
	check("word_count", local.WordCount, in.WordCount)
	check("char_count", local.CharCount, in.CharCount)
	check("sentence_count", local.SentenceCount, in.SentenceCount)
}

func remoteFailureKind(err error) string {
	switch {
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	default:
		return "unknown"
	}
}

func componentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger.With(slog.String("component", component))
}
