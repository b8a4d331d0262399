package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// FFmpegVersion runs "<binary> -version" and returns the first line of
// output. A failure here means the binary is missing or broken; callers
// treat it as fatal before any file I/O happens.
func FFmpegVersion(ctx context.Context, binary string) (string, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	cmd := exec.CommandContext(ctx, binary, "-version")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("probe %s version: %w: %s", binary, err, strings.TrimSpace(string(output)))
	}
	lines := strings.SplitN(string(output), "\n", 2)
	return strings.TrimSpace(lines[0]), nil
}
