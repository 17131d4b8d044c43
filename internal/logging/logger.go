// Package logging defines the structured-logging interface used across the
// client. Components receive a Logger through their constructors; the slog
// adapter in this package is the only production implementation.
package logging

import "context"

// Logger takes a message plus alternating key and value args, e.g.
//
//	log.Warn(ctx, "token has no email claim", "subject", sub)
//
// Request-level detail goes to Debug, session and load events to Info.
// Recoverable problems such as a discarded stored token are Warn, and a
// failed save or delete is Error.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger carrying args on every record.
	With(args ...any) Logger
}
