package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"linecut/internal/fileutil"
	"linecut/internal/logging"
	"linecut/internal/media/ffprobe"
	"linecut/internal/services"
	"linecut/internal/textutil"
)

// videoExtensions are the container extensions considered when pairing
// subtitles with videos and when probing for embedded tracks.
var videoExtensions = []string{".mkv", ".mp4", ".m4v", ".mov", ".avi", ".webm"}

// Track pairs a parseable subtitle file with its source video.
type Track struct {
	SubtitlePath string
	VideoPath    string
	Embedded     bool
	StreamIndex  int
	Language     string
}

// Prober lists a container's subtitle streams. Narrow by design so the
// ffprobe binding can be swapped or faked in tests.
type Prober func(ctx context.Context, video string) ([]ffprobe.Stream, error)

// Extractor remuxes one embedded subtitle stream into a standalone SRT file.
type Extractor func(ctx context.Context, video string, streamIndex int, output string) error

// Discoverer locates the subtitle tracks a run should scan.
type Discoverer struct {
	mediaRoot      string
	cacheDir       string
	probe          Prober
	extract        Extractor
	videoOverrides map[string]string
	logger         *slog.Logger
}

// Option customizes a Discoverer.
type Option func(*Discoverer)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Discoverer) {
		if logger != nil {
			d.logger = logging.NewComponentLogger(logger, "discovery")
		}
	}
}

// WithVideoOverrides supplies an explicit subtitle-path-to-video-path map
// that takes precedence over sibling-file discovery.
func WithVideoOverrides(overrides map[string]string) Option {
	return func(d *Discoverer) {
		d.videoOverrides = overrides
	}
}

// New constructs a Discoverer rooted at mediaRoot. Extracted subtitle files
// land in cacheDir.
func New(mediaRoot, cacheDir string, probe Prober, extract Extractor, opts ...Option) *Discoverer {
	d := &Discoverer{
		mediaRoot: mediaRoot,
		cacheDir:  cacheDir,
		probe:     probe,
		extract:   extract,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Discover resolves the subtitle tracks for a run. When explicit subtitle
// paths are given, each is resolved directly; otherwise the media root is
// walked for .srt files and sibling containers are probed for embedded
// streams. Finding nothing at all is an error; individual unusable tracks
// are skipped with a warning.
func (d *Discoverer) Discover(ctx context.Context, explicit []string) ([]Track, error) {
	var tracks []Track
	if len(explicit) > 0 {
		for _, path := range explicit {
			track, ok := d.resolveExplicit(path)
			if ok {
				tracks = append(tracks, track)
			}
		}
	} else {
		walked, err := d.walk(ctx)
		if err != nil {
			return nil, err
		}
		tracks = walked
	}

	if len(tracks) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "discovery", "scan", "no subtitles found", nil)
	}
	return tracks, nil
}

func (d *Discoverer) resolveExplicit(path string) (Track, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		d.logger.Warn("subtitle path not readable, skipping",
			logging.String("subtitle", path),
			logging.Error(err),
		)
		return Track{}, false
	}
	video, ok := d.videoFor(path)
	if !ok {
		d.logger.Warn("no video found for subtitle, skipping",
			logging.String("subtitle", path),
		)
		return Track{}, false
	}
	return Track{SubtitlePath: path, VideoPath: video}, true
}

func (d *Discoverer) walk(ctx context.Context) ([]Track, error) {
	var srtFiles []string
	var videos []string
	err := filepath.WalkDir(d.mediaRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".srt" {
			srtFiles = append(srtFiles, path)
			return nil
		}
		for _, videoExt := range videoExtensions {
			if ext == videoExt {
				videos = append(videos, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "discovery", "walk media root", fmt.Sprintf("walk %s", d.mediaRoot), err)
	}
	sort.Strings(srtFiles)
	sort.Strings(videos)

	var tracks []Track
	covered := make(map[string]bool)
	for _, srtPath := range srtFiles {
		video, ok := d.videoFor(srtPath)
		if !ok {
			d.logger.Warn("no sibling video for subtitle, skipping",
				logging.String("subtitle", srtPath),
			)
			continue
		}
		covered[video] = true
		tracks = append(tracks, Track{SubtitlePath: srtPath, VideoPath: video})
	}

	for _, video := range videos {
		if covered[video] {
			continue
		}
		track, ok := d.extractEmbedded(ctx, video)
		if ok {
			tracks = append(tracks, track)
		}
	}
	return tracks, nil
}

// videoFor resolves the video a subtitle belongs to: the override map first,
// then sibling files sharing the basename (language suffixes like
// "movie.en.srt" are tolerated).
func (d *Discoverer) videoFor(srtPath string) (string, bool) {
	if video, ok := d.videoOverrides[srtPath]; ok {
		if _, err := os.Stat(video); err == nil {
			return video, true
		}
		return "", false
	}

	base := strings.TrimSuffix(srtPath, filepath.Ext(srtPath))
	candidates := []string{base}
	if inner := filepath.Ext(base); inner != "" && len(inner) <= 4 {
		candidates = append(candidates, strings.TrimSuffix(base, inner))
	}
	for _, candidate := range candidates {
		for _, ext := range videoExtensions {
			if _, err := os.Stat(candidate + ext); err == nil {
				return candidate + ext, true
			}
		}
	}
	return "", false
}

// extractEmbedded probes a container, selects a subtitle stream, and remuxes
// it into the cache directory. Any failure skips this video; one broken
// container must not abort the run.
func (d *Discoverer) extractEmbedded(ctx context.Context, video string) (Track, bool) {
	streams, err := d.probe(ctx, video)
	if err != nil {
		d.logger.Warn("stream probe failed, skipping video",
			logging.String("video", video),
			logging.Error(err),
		)
		return Track{}, false
	}
	if len(streams) == 0 {
		return Track{}, false
	}

	stream, ok := SelectStream(streams)
	if !ok {
		d.logger.Warn("only image-based subtitle streams found, skipping video",
			logging.String("video", video),
			logging.String("codec", streams[0].CodecName),
		)
		return Track{}, false
	}

	if err := os.MkdirAll(d.cacheDir, 0o755); err != nil {
		d.logger.Warn("cannot create subtitle cache directory",
			logging.String("dir", d.cacheDir),
			logging.Error(err),
		)
		return Track{}, false
	}
	output := filepath.Join(d.cacheDir, d.cacheName(video, stream.Index))
	if err := d.extract(ctx, video, stream.Index, output); err != nil {
		d.logger.Warn("subtitle extraction failed, skipping video",
			logging.String("video", video),
			logging.Int("stream", stream.Index),
			logging.Error(err),
		)
		return Track{}, false
	}
	return Track{
		SubtitlePath: output,
		VideoPath:    video,
		Embedded:     true,
		StreamIndex:  stream.Index,
		Language:     stream.Language(),
	}, true
}

func (d *Discoverer) cacheName(video string, streamIndex int) string {
	rel := fileutil.RelativeTo(d.mediaRoot, video)
	return fmt.Sprintf("%s_s%d.srt", textutil.SlugN(rel, 80), streamIndex)
}
