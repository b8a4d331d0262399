package clip

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"
)

// Schema tags manifests written by this version of the run recorder.
const Schema = "clip_run.v1"

// ManifestFileName is the fixed manifest name inside a run directory.
const ManifestFileName = "manifest.json"

// Entry records the outcome of one extraction. File, Video, and Subtitle are
// relative to the output root and media root respectively, keeping the
// manifest portable across machines.
type Entry struct {
	File           string   `json:"file"`
	Video          string   `json:"video"`
	Subtitle       string   `json:"subtitle"`
	Start          float64  `json:"start"`
	End            float64  `json:"end"`
	ProcessingMS   int64    `json:"processing_ms"`
	CoverImage     string   `json:"cover_image,omitempty"`
	Summary        string   `json:"summary,omitempty"`
	SummaryContext []string `json:"summary_context,omitempty"`
}

// Manifest is the full record of one run.
type Manifest struct {
	Schema       string    `json:"schema"`
	Query        string    `json:"query"`
	BufferMS     int       `json:"buffer_ms"`
	GeneratedAt  time.Time `json:"generated_at"`
	FFmpegPath   string    `json:"ffmpeg_path"`
	Mode         string    `json:"mode"`
	Container    string    `json:"container"`
	HWAccel      string    `json:"hw_accel,omitempty"`
	RunDirectory string    `json:"run_directory"`
	TotalClips   int       `json:"total_clips"`
	Clips        []Entry   `json:"clips"`
}

// RunInfo carries the run-level manifest fields fixed at run start.
type RunInfo struct {
	Query        string
	BufferMS     int
	FFmpegPath   string
	Mode         string
	Container    string
	HWAccel      string
	RunDirectory string
}

// Recorder accumulates clip entries for one run and serializes the manifest
// once at run end. It is owned by a single goroutine for the lifetime of the
// run.
type Recorder struct {
	manifest Manifest
}

// NewRecorder starts an empty manifest for the given run.
func NewRecorder(info RunInfo) *Recorder {
	return &Recorder{manifest: Manifest{
		Schema:       Schema,
		Query:        info.Query,
		BufferMS:     info.BufferMS,
		FFmpegPath:   info.FFmpegPath,
		Mode:         info.Mode,
		Container:    info.Container,
		HWAccel:      info.HWAccel,
		RunDirectory: info.RunDirectory,
		Clips:        []Entry{},
	}}
}

// Add appends a clip entry, rounding its window bounds to 3 decimal places.
func (r *Recorder) Add(entry Entry) {
	entry.Start = round3(entry.Start)
	entry.End = round3(entry.End)
	r.manifest.Clips = append(r.manifest.Clips, entry)
}

// Len returns the number of recorded clips.
func (r *Recorder) Len() int {
	return len(r.manifest.Clips)
}

// Write finalizes the manifest with the generation timestamp and persists it
// to path.
func (r *Recorder) Write(path string, now time.Time) error {
	r.manifest.GeneratedAt = now.UTC()
	r.manifest.TotalClips = len(r.manifest.Clips)

	data, err := json.MarshalIndent(r.manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Manifest returns a copy of the accumulated manifest.
func (r *Recorder) Manifest() Manifest {
	out := r.manifest
	out.TotalClips = len(r.manifest.Clips)
	out.Clips = append([]Entry(nil), r.manifest.Clips...)
	return out
}

// LoadManifest reads a manifest back from disk.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	return manifest, nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
