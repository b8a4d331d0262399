// Package logging wraps log/slog with typed attribute helpers and the
// console/json handlers shared by the CLI and the extraction pipeline.
package logging
