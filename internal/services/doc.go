// Package services defines the shared error taxonomy for pipeline stages.
//
// Stages tag failures with a sentinel marker (validation, configuration,
// external tool, not found, transient) via Wrap so callers can decide
// whether to abort the run or skip the offending input without string
// matching on error text.
package services
