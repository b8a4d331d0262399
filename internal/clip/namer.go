package clip

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"linecut/internal/textutil"
)

const (
	clipsSubdir  = "clips"
	coversSubdir = "covers"

	querySlugLimit = 40
	movieSlugLimit = 60
)

// runStamp is millisecond-resolution and filesystem-safe. Two runs started
// in the same process get distinct directories as long as their timestamps
// differ at millisecond resolution; concurrent processes are not guarded.
const runStamp = "2006-01-02T15-04-05.000"

// Namer owns run-directory allocation and collision-free output filenames.
// Per-movie sequence counters are an explicit table on the instance, never
// package state, so a run's naming is deterministic and testable in
// isolation.
type Namer struct {
	runDir   string
	counters map[string]int
}

// NewRun allocates the run directory under outputRoot, including the clips
// and covers subdirectories, and returns a Namer rooted at it.
func NewRun(outputRoot, query string, now time.Time) (*Namer, error) {
	name := fmt.Sprintf("%s_%s", textutil.SlugN(query, querySlugLimit), now.Format(runStamp))
	runDir := filepath.Join(outputRoot, name)
	for _, dir := range []string{runDir, filepath.Join(runDir, clipsSubdir), filepath.Join(runDir, coversSubdir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create run directory %q: %w", dir, err)
		}
	}
	return &Namer{runDir: runDir, counters: make(map[string]int)}, nil
}

// RunDir returns the absolute run directory path.
func (n *Namer) RunDir() string {
	return n.runDir
}

// ClipsDir returns the directory clip files are written to.
func (n *Namer) ClipsDir() string {
	return filepath.Join(n.runDir, clipsSubdir)
}

// CoversDir returns the directory cover frames are written to.
func (n *Namer) CoversDir() string {
	return filepath.Join(n.runDir, coversSubdir)
}

// NextClipPath allocates the next output filename for a clip cut from the
// movie identified by movieKey (its folder path relative to the media root).
// The name carries a slug of the movie, a per-movie monotonically increasing
// sequence index, and a fixed-width window-start tag so directory listings
// sort chronologically:
//
//	jurassic_park_1993_2_0000634100.mp4
func (n *Namer) NextClipPath(movieKey string, windowStart float64, container string) string {
	slug := textutil.SlugN(movieKey, movieSlugLimit)
	n.counters[slug]++
	name := fmt.Sprintf("%s_%d_%010d.%s", slug, n.counters[slug], int64(windowStart*1000), container)
	return filepath.Join(n.ClipsDir(), name)
}

// CoverPathFor returns the cover image path paired with a clip file.
func (n *Namer) CoverPathFor(clipPath string) string {
	base := filepath.Base(clipPath)
	ext := filepath.Ext(base)
	return filepath.Join(n.CoversDir(), base[:len(base)-len(ext)]+".jpg")
}
