// Package metrics provides observability hooks for translation runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so one-shot CLI invocations carry zero overhead. Watch mode
// swaps in the Prometheus recorder and serves the registry from the preview
// server.
package metrics

import "time"

// Recorder defines observability hooks for translation runs.
type Recorder interface {
	ObserveRunDuration(operation string, d time.Duration)
	IncRunOutcome(operation, outcome string) // outcome: success|failed
	AddTemplatesProcessed(n int)
	SetMissingTranslations(language string, n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRunDuration(string, time.Duration) {}
func (NoopRecorder) IncRunOutcome(string, string)             {}
func (NoopRecorder) AddTemplatesProcessed(int)                {}
func (NoopRecorder) SetMissingTranslations(string, int)       {}
