package analysis

import "errors"

// Remote-phase failures. These never escape Analyzer.Analyze; they are logged and the
// local metrics are returned as-is.
var (
	// ErrConfiguration means the remote phase cannot run (e.g. no API key).
	ErrConfiguration = errors.New("configuration error")
	// ErrTransport covers network, auth, rate-limit and timeout failures of the model call.
	ErrTransport = errors.New("transport error")
	// ErrMalformedResponse means the model reply did not decode into a valid insight payload.
	ErrMalformedResponse = errors.New("malformed response")
)

// Collaborator-level failures.
var (
	// ErrInput is a missing, conflicting, or unreadable input source. It is the only error
	// allowed to abort a run.
	ErrInput = errors.New("input error")
	// ErrStorage is a persistence failure. It is reported but does not retract a result.
	ErrStorage = errors.New("storage error")
)

// ErrRemoteSkipped is reported by Analyzer.AnalyzeReport when no insight client is configured.
var ErrRemoteSkipped = errors.New("remote analysis skipped")
