// Package ffmpeg builds and executes the external media tool argument sets
// for clip extraction, cover-frame capture, and subtitle demuxing.
//
// Execution goes through an injected Runner so tests can assert on the
// exact argument sets without spawning processes. Every invocation blocks
// until the subprocess exits; no timeout is imposed, so a hung tool hangs
// the run.
package ffmpeg
