// Package logger provides structured logging using Zap, with optional
// forwarding of operator-facing faults to Sentry.
package logger

import (
	"fmt"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

var (
	sugar         *zap.SugaredLogger
	once          sync.Once
	sentryEnabled bool
)

// Init initializes the global logger for the given environment.
// For "production", it uses a JSON encoder. For all other environments,
// it uses a human-readable console encoder.
func Init(env string) {
	once.Do(func() {
		var base *zap.Logger
		var err error

		if env == "production" {
			base, err = zap.NewProduction()
		} else {
			base, err = zap.NewDevelopment()
		}

		if err != nil {
			base = zap.NewNop()
		}

		sugar = base.Sugar().With("service", "assetledger")
	})
}

// InitSentry enables fault reporting. An empty DSN leaves reporting disabled.
func InitSentry(dsn, env string) error {
	if dsn == "" {
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
	}); err != nil {
		return fmt.Errorf("failed to initialize sentry: %w", err)
	}
	sentryEnabled = true
	return nil
}

// Get returns the global sugared logger.
// If Init has not been called, it initializes a development logger.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Fault logs an error that operators need to see (storage outages, failed
// blob cleanup) and forwards it to Sentry when configured.
func Fault(msg string, err error, keysAndValues ...interface{}) {
	Get().Errorw(msg, append([]interface{}{"error", err}, keysAndValues...)...)
	if !sentryEnabled || err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("message", msg)
		for i := 0; i+1 < len(keysAndValues); i += 2 {
			if key, ok := keysAndValues[i].(string); ok {
				scope.SetExtra(key, keysAndValues[i+1])
			}
		}
		sentry.CaptureException(err)
	})
}

// Sync flushes any buffered log entries and pending Sentry events.
// Call this before application exit.
func Sync() {
	if sentryEnabled {
		sentry.Flush(2 * time.Second)
	}
	if sugar != nil {
		_ = sugar.Sync()
	}
}
