// Package sentryutil reports terminal report failures to Sentry. Every call
// is a no-op when SENTRY_DSN is empty.
package sentryutil

import (
	"log/slog"
	"time"

	"opencoesione/internal/config"

	"github.com/getsentry/sentry-go"
)

// Init configures the Sentry client from config.Cfg and reports whether
// events will be sent.
func Init(logger *slog.Logger) bool {
	dsn := config.Cfg.SentryDSN
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: config.Cfg.SentryEnvironment,
		Release:     config.Cfg.SentryRelease,
		BeforeSend:  scrub,
	})
	if err != nil {
		logger.Warn("sentry init failed, error tracking disabled", "err", err)
		return false
	}
	if dsn == "" {
		logger.Debug("SENTRY_DSN empty, error tracking disabled")
		return false
	}
	logger.Debug("sentry enabled", "environment", config.Cfg.SentryEnvironment)
	return true
}

// Reports run on operator machines; drop host and user identity.
func scrub(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	event.User = sentry.User{}
	event.ServerName = ""
	return event
}

// Flush waits for queued events.
func Flush() { sentry.Flush(2 * time.Second) }

// CaptureError sends err with tags, such as the input path or the stage
// that failed.
func CaptureError(err error, tags map[string]string) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		sentry.CaptureException(err)
	})
}
