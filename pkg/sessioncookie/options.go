package sessioncookie

import (
	"log/slog"
	"time"
)

// DefaultCookiePrefix is prepended to the application id to form the cookie
// name written by the JavaScript SDK.
const DefaultCookiePrefix = "fbs_"

// Option configures an Extractor.
type Option func(*Extractor)

// WithCookiePrefix overrides the cookie name prefix.
func WithCookiePrefix(prefix string) Option {
	return func(e *Extractor) {
		if prefix != "" {
			e.prefix = prefix
		}
	}
}

// WithClock replaces the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLogger sets the logger used to report rejected cookies.
func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}
