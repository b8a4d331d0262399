package config

const (
	defaultMediaRoot             = "~/media"
	defaultOutputRoot            = "~/clips"
	defaultCacheDir              = "~/.cache/linecut/subtitles"
	defaultCatalogPath           = "~/.local/share/linecut/catalog.db"
	defaultFFmpegBinary          = "ffmpeg"
	defaultFFprobeBinary         = "ffprobe"
	defaultBufferMS              = 500
	defaultMode                  = "fast-copy"
	defaultContainer             = "mp4"
	defaultContextRadius         = 5
	defaultSummarizerBaseURL     = "https://openrouter.ai/api/v1/chat/completions"
	defaultSummarizerModel       = "google/gemini-3-flash-preview"
	defaultSummarizerTimeoutSecs = 60
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			MediaRoot:   defaultMediaRoot,
			OutputRoot:  defaultOutputRoot,
			CacheDir:    defaultCacheDir,
			CatalogPath: defaultCatalogPath,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpegBinary,
			FFprobe: defaultFFprobeBinary,
		},
		Extraction: Extraction{
			BufferMS:      defaultBufferMS,
			Mode:          defaultMode,
			Container:     defaultContainer,
			ContextRadius: defaultContextRadius,
			CoverFrames:   true,
		},
		Summarizer: Summarizer{
			BaseURL:        defaultSummarizerBaseURL,
			Model:          defaultSummarizerModel,
			TimeoutSeconds: defaultSummarizerTimeoutSecs,
		},
		Catalog: Catalog{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
