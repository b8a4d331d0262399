package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"linecut/internal/clip"
	"linecut/internal/config"
	"linecut/internal/discovery"
	"linecut/internal/fileutil"
	"linecut/internal/logging"
	"linecut/internal/media/ffmpeg"
	"linecut/internal/search"
	"linecut/internal/services"
	"linecut/internal/srt"
	"linecut/internal/summarize"
	"linecut/internal/textutil"
)

// Cutter is the slice of the ffmpeg invoker the pipeline drives.
type Cutter interface {
	Cut(ctx context.Context, req ffmpeg.CutRequest) error
	CaptureCover(ctx context.Context, source string, atSeconds float64, output string) error
	Binary() string
}

// TrackSource yields the subtitle tracks a run should scan.
type TrackSource interface {
	Discover(ctx context.Context, explicit []string) ([]discovery.Track, error)
}

// RunStore records completed runs. Implemented by the SQLite catalog;
// recording failures never fail a run that already produced clips.
type RunStore interface {
	UpsertMedia(ctx context.Context, logicalID, videoPath, subtitlePath string) error
	RecordRun(ctx context.Context, runID string, manifest clip.Manifest) error
}

// Request describes one extraction run.
type Request struct {
	Query         string
	Regex         bool
	CaseSensitive bool
	BufferMS      int
	Mode          ffmpeg.Mode
	Container     string
	HWAccel       string
	// Subtitles restricts the run to explicit subtitle paths instead of
	// scanning the media root.
	Subtitles []string
	DryRun    bool
}

// Result reports what a run produced.
type Result struct {
	RunDirectory string
	ManifestPath string
	TotalClips   int
	Manifest     clip.Manifest
}

// Pipeline wires discovery, search, extraction, and recording into one run.
type Pipeline struct {
	cfg        *config.Config
	cutter     Cutter
	tracks     TrackSource
	summarizer summarize.Summarizer
	store      RunStore
	logger     *slog.Logger
	now        func() time.Time
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logging.NewComponentLogger(logger, "pipeline")
		}
	}
}

// WithSummarizer overrides the clip summarizer.
func WithSummarizer(s summarize.Summarizer) Option {
	return func(p *Pipeline) {
		if s != nil {
			p.summarizer = s
		}
	}
}

// WithStore attaches a run store.
func WithStore(store RunStore) Option {
	return func(p *Pipeline) {
		p.store = store
	}
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// New assembles a pipeline over the given collaborators.
func New(cfg *config.Config, cutter Cutter, tracks TrackSource, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:        cfg,
		cutter:     cutter,
		tracks:     tracks,
		summarizer: summarize.Noop{},
		logger:     logging.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// scanResult holds one track's parsed blocks and located hits so the run
// directory is only created once at least one hit exists.
type scanResult struct {
	track  discovery.Track
	blocks []srt.Block
	hits   []search.Hit
}

// Run executes one extraction run end to end. Per-subtitle problems are
// logged and skipped; a failed clip cut aborts the run because it signals a
// broken ffmpeg invocation that every later clip would repeat.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	pattern, err := search.Compile(req.Query, search.Options{
		Regex:         req.Regex,
		CaseSensitive: req.CaseSensitive,
	})
	if err != nil {
		return Result{}, err
	}

	tracks, err := p.tracks.Discover(ctx, req.Subtitles)
	if err != nil {
		return Result{}, err
	}

	var scans []scanResult
	total := 0
	for _, track := range tracks {
		blocks, err := srt.ParseFile(track.SubtitlePath)
		if err != nil {
			p.logger.Warn("skipping unreadable subtitle",
				logging.String("subtitle", track.SubtitlePath),
				logging.Error(err))
			continue
		}
		if len(blocks) == 0 {
			p.logger.Warn("skipping subtitle with no usable blocks",
				logging.String("subtitle", track.SubtitlePath))
			continue
		}
		hits := search.Locate(blocks, pattern)
		if len(hits) == 0 {
			continue
		}
		total += len(hits)
		scans = append(scans, scanResult{track: track, blocks: blocks, hits: hits})
	}
	if total == 0 {
		return Result{}, services.Wrap(services.ErrNotFound, "pipeline", "run", fmt.Sprintf("no matches for %q", req.Query), nil)
	}

	if req.DryRun {
		return p.preview(req, scans, total), nil
	}
	return p.extract(ctx, req, scans)
}

// preview reports what a run would do without touching the filesystem.
func (p *Pipeline) preview(req Request, scans []scanResult, total int) Result {
	for _, scan := range scans {
		buffer := float64(req.BufferMS) / 1000
		for _, hit := range scan.hits {
			window, ok := clip.BuildWindow(hit.Start, hit.End, buffer)
			if !ok {
				continue
			}
			p.logger.Info("would extract clip",
				logging.String("video", scan.track.VideoPath),
				logging.String("window", fmt.Sprintf("%s - %s", srt.FormatClock(window.Start), srt.FormatClock(window.End))),
				logging.String("line", strings.ReplaceAll(hit.Block.Text, "\n", " ")))
		}
	}
	return Result{TotalClips: total}
}

func (p *Pipeline) extract(ctx context.Context, req Request, scans []scanResult) (Result, error) {
	namer, err := clip.NewRun(p.cfg.Paths.OutputRoot, req.Query, p.now())
	if err != nil {
		return Result{}, err
	}

	recorder := clip.NewRecorder(clip.RunInfo{
		Query:        req.Query,
		BufferMS:     req.BufferMS,
		FFmpegPath:   p.cutter.Binary(),
		Mode:         string(req.Mode),
		Container:    req.Container,
		HWAccel:      req.HWAccel,
		RunDirectory: filepath.Base(namer.RunDir()),
	})
	buffer := float64(req.BufferMS) / 1000

	for _, scan := range scans {
		movieKey := movieKeyFor(p.cfg.Paths.MediaRoot, scan.track.VideoPath)
		for _, hit := range scan.hits {
			window, ok := clip.BuildWindow(hit.Start, hit.End, buffer)
			if !ok {
				p.logger.Warn("dropping degenerate window",
					logging.String("video", scan.track.VideoPath),
					logging.Float64("hit_start", hit.Start))
				continue
			}

			clipPath := namer.NextClipPath(movieKey, window.Start, req.Container)
			started := p.now()
			err := p.cutter.Cut(ctx, ffmpeg.CutRequest{
				Source:    scan.track.VideoPath,
				Output:    clipPath,
				Start:     window.Start,
				End:       window.End,
				Mode:      req.Mode,
				Container: req.Container,
				HWAccel:   req.HWAccel,
			})
			if err != nil {
				if services.IsFatal(err) {
					return Result{}, err
				}
				p.logger.Warn("skipping clip after recoverable cut failure",
					logging.String("clip", clipPath),
					logging.Error(err))
				continue
			}
			elapsed := p.now().Sub(started)

			entry := clip.Entry{
				File:         fileutil.RelativeTo(namer.RunDir(), clipPath),
				Video:        fileutil.RelativeTo(p.cfg.Paths.MediaRoot, scan.track.VideoPath),
				Subtitle:     fileutil.RelativeTo(p.cfg.Paths.MediaRoot, scan.track.SubtitlePath),
				Start:        window.Start,
				End:          window.End,
				ProcessingMS: elapsed.Milliseconds(),
			}

			if p.cfg.Extraction.CoverFrames {
				coverPath := namer.CoverPathFor(clipPath)
				if err := p.cutter.CaptureCover(ctx, scan.track.VideoPath, hit.Start, coverPath); err != nil {
					p.logger.Warn("cover capture failed",
						logging.String("clip", clipPath),
						logging.Error(err))
				} else {
					entry.CoverImage = fileutil.RelativeTo(namer.RunDir(), coverPath)
				}
			}

			contextLines := search.CollectContext(scan.blocks, hit.BlockIndex, p.cfg.Extraction.ContextRadius)
			summary, err := p.summarizer.Summarize(ctx, movieKey, contextLines)
			if err != nil {
				p.logger.Warn("summarization failed",
					logging.String("clip", clipPath),
					logging.Error(err))
			} else if summary != "" {
				entry.Summary = summary
				entry.SummaryContext = contextLines
			}

			recorder.Add(entry)
			p.logger.Info("extracted clip",
				logging.String("file", entry.File),
				logging.String("window", fmt.Sprintf("%s - %s", srt.FormatClock(window.Start), srt.FormatClock(window.End))),
				logging.Int64("processing_ms", entry.ProcessingMS))
		}
	}

	manifestPath := filepath.Join(namer.RunDir(), clip.ManifestFileName)
	if err := recorder.Write(manifestPath, p.now()); err != nil {
		return Result{}, err
	}

	manifest := recorder.Manifest()
	p.record(ctx, scans, manifest)

	return Result{
		RunDirectory: namer.RunDir(),
		ManifestPath: manifestPath,
		TotalClips:   recorder.Len(),
		Manifest:     manifest,
	}, nil
}

// record mirrors the run into the catalog when one is attached. Failures are
// logged only: the clips and manifest on disk are the source of truth.
func (p *Pipeline) record(ctx context.Context, scans []scanResult, manifest clip.Manifest) {
	if p.store == nil {
		return
	}
	for _, scan := range scans {
		logicalID := movieKeyFor(p.cfg.Paths.MediaRoot, scan.track.VideoPath)
		if err := p.store.UpsertMedia(ctx, logicalID, scan.track.VideoPath, scan.track.SubtitlePath); err != nil {
			p.logger.Warn("catalog media update failed",
				logging.String("media", logicalID),
				logging.Error(err))
		}
	}
	runID := uuid.NewString()
	if err := p.store.RecordRun(ctx, runID, manifest); err != nil {
		p.logger.Warn("catalog run record failed",
			logging.String("run_id", runID),
			logging.Error(err))
		return
	}
	p.logger.Info("run recorded", logging.String("run_id", runID))
}

// movieKeyFor identifies a movie by its path relative to the media root,
// without the container extension. Keying on the full relative path keeps
// sequence counters separate for same-named files in different folders.
func movieKeyFor(mediaRoot, videoPath string) string {
	rel := fileutil.RelativeTo(mediaRoot, videoPath)
	return textutil.Slug(strings.TrimSuffix(rel, filepath.Ext(rel)))
}
