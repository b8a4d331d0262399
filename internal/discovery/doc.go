// Package discovery locates the subtitle tracks a run should scan, pairing
// standalone .srt files with sibling videos and extracting embedded
// text-based subtitle streams from containers that have no sidecar file.
package discovery
