// Package srt parses SubRip subtitle text into ordered timed blocks.
//
// Parsing is tolerant: cues with broken timing lines or empty text are
// dropped rather than failing the track, matching how subtitle files found
// alongside media actually behave.
package srt
