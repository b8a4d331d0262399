// Package ffprobe wraps the ffprobe binary for container stream inspection.
package ffprobe
