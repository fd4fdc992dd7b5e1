package rpc

import (
	"github.com/getsentry/sentry-go"
)

// SentryReporter forwards System-category evaluator failures to Sentry
// (spec §7.1), following this pack's web-service teacher's own
// sentry.CaptureException usage for its top-level error path. It
// implements eval.ErrorReporter without importing eval (narrow interface,
// defined on the eval side).
type SentryReporter struct{}

// NewSentryReporter returns a reporter that calls the package-level Sentry
// client; the caller is responsible for sentry.Init with its DSN.
func NewSentryReporter() *SentryReporter {
	return &SentryReporter{}
}

// ReportError sends err to Sentry with a breadcrumb identifying it as a
// scadcore system-category evaluator failure.
func (r *SentryReporter) ReportError(err error) {
	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Category: "scadcore.eval",
		Message:  "system-category evaluator failure",
		Level:    sentry.LevelError,
	})
	sentry.CaptureException(err)
}

// NoopReporter discards every error; the default when no Sentry DSN is
// configured (tests, embedded use).
type NoopReporter struct{}

func (NoopReporter) ReportError(error) {}
