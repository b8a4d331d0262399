package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency linecut relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Required returns the requirements for a clip extraction run with the
// configured tool binaries.
func Required(ffmpeg, ffprobe string) []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: ffmpeg, Description: "Cuts clips, captures covers, demuxes subtitle tracks"},
		{Name: "FFprobe", Command: ffprobe, Description: "Probes containers for embedded subtitle streams"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Verify checks that every non-optional requirement is satisfied, returning
// an error naming the first missing binary.
func Verify(requirements []Requirement) error {
	for _, status := range CheckBinaries(requirements) {
		if status.Optional || status.Available {
			continue
		}
		return fmt.Errorf("%s unavailable: %s", status.Name, status.Detail)
	}
	return nil
}
