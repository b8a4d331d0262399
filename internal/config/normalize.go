package config

import (
	"fmt"
	"os"
	"strings"

	"linecut/internal/fileutil"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeExtraction()
	c.normalizeSummarizer()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.MediaRoot, err = fileutil.ExpandPath(c.Paths.MediaRoot); err != nil {
		return fmt.Errorf("paths.media_root: %w", err)
	}
	if c.Paths.OutputRoot, err = fileutil.ExpandPath(c.Paths.OutputRoot); err != nil {
		return fmt.Errorf("paths.output_root: %w", err)
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir
	}
	if c.Paths.CacheDir, err = fileutil.ExpandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CatalogPath) == "" {
		c.Paths.CatalogPath = defaultCatalogPath
	}
	if c.Paths.CatalogPath, err = fileutil.ExpandPath(c.Paths.CatalogPath); err != nil {
		return fmt.Errorf("paths.catalog_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobeBinary
	}
}

func (c *Config) normalizeExtraction() {
	c.Extraction.Mode = strings.ToLower(strings.TrimSpace(c.Extraction.Mode))
	if c.Extraction.Mode == "" {
		c.Extraction.Mode = defaultMode
	}
	c.Extraction.Container = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(c.Extraction.Container, ".")))
	if c.Extraction.Container == "" {
		c.Extraction.Container = defaultContainer
	}
	c.Extraction.HWAccel = strings.TrimSpace(c.Extraction.HWAccel)
	if c.Extraction.ContextRadius <= 0 {
		c.Extraction.ContextRadius = defaultContextRadius
	}
}

func (c *Config) normalizeSummarizer() {
	if c.Summarizer.APIKey == "" {
		if value, ok := os.LookupEnv("LINECUT_SUMMARIZER_API_KEY"); ok {
			c.Summarizer.APIKey = value
		}
	}
	c.Summarizer.BaseURL = strings.TrimSpace(c.Summarizer.BaseURL)
	if c.Summarizer.BaseURL == "" {
		c.Summarizer.BaseURL = defaultSummarizerBaseURL
	}
	c.Summarizer.Model = strings.TrimSpace(c.Summarizer.Model)
	if c.Summarizer.Model == "" {
		c.Summarizer.Model = defaultSummarizerModel
	}
	if c.Summarizer.TimeoutSeconds <= 0 {
		c.Summarizer.TimeoutSeconds = defaultSummarizerTimeoutSecs
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
