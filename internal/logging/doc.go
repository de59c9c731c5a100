// Package logging assembles the slog loggers used by the command line and
// the build.
//
// Console output is one line per record, "ts LEVEL component: msg k=v";
// JSON output uses the ts/level/msg keys. Discard returns a logger for
// tests and for wiring code that has no logger of its own.
package logging
