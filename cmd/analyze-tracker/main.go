package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/subosito/gotenv"

	"github.com/Manum-dev/analyze-tracker/analysis"
	"github.com/Manum-dev/analyze-tracker/analysis/history"
	"github.com/Manum-dev/analyze-tracker/analysis/logging"
	"github.com/Manum-dev/analyze-tracker/analysis/provider"
	"github.com/Manum-dev/analyze-tracker/analysis/source"
)

const envFileVar = "ANALYZE_ENV_FILE"

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	logger := logging.New(os.Stderr, cfg.Debug)
	loadEnv(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, cfg, logger, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// loadEnv reads .env (or $ANALYZE_ENV_FILE) into the process environment. Variables already set
// are kept. A missing file is not an error.
func loadEnv(logger *slog.Logger) {
	envFile := os.Getenv(envFileVar)
	if envFile == "" {
		envFile = ".env"
	}
	if err := gotenv.Load(envFile); err != nil {
		logger.Warn("env_file_not_loaded", slog.String("path", envFile), slog.String("error", err.Error()))
	}
}

// run performs one analysis and returns the process exit code.
func run(ctx context.Context, cfg Config, logger *slog.Logger, stdout, stderr io.Writer) int {
	text, label, err := source.Read(cfg.Text, cfg.File)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}

	analyzer := analysis.NewAnalyzer(newEnricher(cfg, logger), logger, analysis.Options{KeepLocalCounts: cfg.LocalCounts})
	result, remoteErr := analyzer.AnalyzeReport(ctx, text)
	printResult(stdout, label, result, remoteErr)

	if cfg.NoSave {
		return 0
	}
	id, err := save(ctx, cfg, logger, label, result)
	if err != nil {
		fmt.Fprintf(stderr, "warning: result not saved: %v\n", err)
		return 0
	}
	fmt.Fprintf(stdout, "Saved to history (id %d)\n", id)
	return 0
}

func newEnricher(cfg Config, logger *slog.Logger) analysis.Enricher {
	if cfg.Offline {
		return nil
	}
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	return analysis.NewInsightClient(analysis.InsightConfig{
		APIKey:        apiKey,
		Model:         cfg.Model,
		MaxInputChars: cfg.MaxInputChars,
		Timeout:       cfg.Timeout,
	}, provider.NewOpenAI(apiKey, cfg.BaseURL), logger)
}

func save(ctx context.Context, cfg Config, logger *slog.Logger, label string, r analysis.Result) (int64, error) {
	switch cfg.Store {
	case storeSQLite:
		s, err := history.OpenSQLite(cfg.HistoryPath, logger)
		if err != nil {
			return 0, err
		}
		defer s.Close()
		return s.Append(ctx, label, r)
	default:
		s, err := history.NewJSONStore(cfg.HistoryPath, logger)
		if err != nil {
			return 0, err
		}
		return s.Append(ctx, label, r)
	}
}

func printResult(w io.Writer, label string, r analysis.Result, remoteErr error) {
	fmt.Fprintln(w, "--- Analysis Results ---")
	fmt.Fprintf(w, "Source: %s\n", label)
	fmt.Fprintf(w, "Words: %d\n", r.WordCount)
	fmt.Fprintf(w, "Characters: %d\n", r.CharCount)
	fmt.Fprintf(w, "Sentences: %d\n", r.SentenceCount)

	switch {
	case !r.Enriched():
		fmt.Fprintln(w, "Sentiment: N/A (API Analysis Skipped or Failed)")
		if remoteErr != nil && !errors.Is(remoteErr, analysis.ErrRemoteSkipped) {
			fmt.Fprintf(w, "Remote analysis: %v\n", remoteErr)
		}
	case r.Mood() == "":
		fmt.Fprintln(w, "Sentiment: N/A")
	default:
		fmt.Fprintf(w, "Sentiment: %s\n", sentimentLine(r))
	}

	if len(r.Keywords) > 0 {
		fmt.Fprintf(w, "Keywords: %s\n", strings.Join(r.Keywords, ", "))
	}
	if r.Summary != nil {
		fmt.Fprintf(w, "Summary: %s\n", *r.Summary)
	}
	fmt.Fprintf(w, "Latency: %.2f ms\n", r.LatencyMS)
}

func sentimentLine(r analysis.Result) string {
	parts := []string{r.Mood()}
	if r.SentimentLabel != nil {
		parts = append(parts, "label="+*r.SentimentLabel)
	}
	if r.SentimentScore != nil {
		parts = append(parts, fmt.Sprintf("score=%.2f", *r.SentimentScore))
	}
	if r.SentimentConfidence != nil {
		parts = append(parts, fmt.Sprintf("confidence=%.2f", *r.SentimentConfidence))
	}
	return strings.Join(parts, " ")
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.Text, "text", "", "Text to analyze")
	fs.StringVar(&cfg.Text, "t", "", "Shorthand for -text")
	fs.StringVar(&cfg.File, "file", "", "Path to a UTF-8 text or PDF file to analyze")
	fs.StringVar(&cfg.File, "f", "", "Shorthand for -file")
	fs.BoolVar(&cfg.Debug, "debug", false, "Human-readable debug logging")
	fs.BoolVar(&cfg.Debug, "d", false, "Shorthand for -debug")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "OpenAI model to use (e.g. gpt-5-mini)")
	fs.StringVar(&cfg.APIKey, "api-key", "", "OpenAI API key (overrides OPENAI_API_KEY env var)")
	fs.StringVar(&cfg.BaseURL, "base-url", "", "Optional OpenAI-compatible API base URL")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Timeout for the model call")
	fs.IntVar(&cfg.MaxInputChars, "max-input-chars", cfg.MaxInputChars, "Max characters of the text sent to the model")
	fs.BoolVar(&cfg.LocalCounts, "local-counts", false, "Keep locally computed counts even if the model reports different ones")
	fs.BoolVar(&cfg.Offline, "offline", false, "Skip the remote analysis")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "History backend: json or sqlite")
	fs.StringVar(&cfg.HistoryPath, "history", "", "History file path (default: analysis_history.json or analysis_history.db)")
	fs.BoolVar(&cfg.NoSave, "no-save", false, "Do not append the result to the history")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	if cfg.File != "" {
		cfg.File = filepath.Clean(cfg.File)
	}
	if cfg.HistoryPath != "" {
		cfg.HistoryPath = filepath.Clean(cfg.HistoryPath)
	}
	return cfg, nil
}
