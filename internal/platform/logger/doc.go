// Package logger provides structured logging functionality for the
// integration layer.
//
// It utilizes Go's standard library log/slog package to implement structured
// JSON logging with configurable log levels, plus a colorized text handler
// for local development.
package logger
