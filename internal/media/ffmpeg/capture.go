package ffmpeg

import (
	"context"
	"strconv"
)

// CaptureCover seeks to atSeconds in the source and writes a single frame to
// output. Callers treat failures as recoverable; a clip without a thumbnail
// is still a clip.
func (i *Invoker) CaptureCover(ctx context.Context, source string, atSeconds float64, output string) error {
	if atSeconds < 0 {
		atSeconds = 0
	}
	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-ss", formatSeconds(atSeconds),
		"-i", source,
		"-frames:v", "1",
		"-q:v", "2",
		output,
	}
	return i.exec(ctx, "cover", args)
}

// ExtractSubtitle remuxes the subtitle stream at streamIndex out of the
// container into a standalone SRT file.
func (i *Invoker) ExtractSubtitle(ctx context.Context, source string, streamIndex int, output string) error {
	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", source,
		"-map", "0:" + strconv.Itoa(streamIndex),
		"-c:s", "srt",
		output,
	}
	return i.exec(ctx, "subtitle demux", args)
}
