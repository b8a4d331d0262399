package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"linecut/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Paths.MediaRoot != filepath.Join(tempHome, "media") {
		t.Fatalf("unexpected media root: %q", cfg.Paths.MediaRoot)
	}
	if cfg.Paths.OutputRoot != filepath.Join(tempHome, "clips") {
		t.Fatalf("unexpected output root: %q", cfg.Paths.OutputRoot)
	}
	if cfg.Extraction.BufferMS != 500 {
		t.Fatalf("unexpected buffer: %d", cfg.Extraction.BufferMS)
	}
	if cfg.Extraction.Mode != "fast-copy" {
		t.Fatalf("unexpected mode: %q", cfg.Extraction.Mode)
	}
	if cfg.Extraction.Container != "mp4" {
		t.Fatalf("unexpected container: %q", cfg.Extraction.Container)
	}
	if cfg.Extraction.ContextRadius != 5 {
		t.Fatalf("unexpected context radius: %d", cfg.Extraction.ContextRadius)
	}
	if !cfg.Extraction.CoverFrames {
		t.Fatal("expected cover frames enabled by default")
	}
	if cfg.Tools.FFmpeg != "ffmpeg" || cfg.Tools.FFprobe != "ffprobe" {
		t.Fatalf("unexpected tool binaries: %q, %q", cfg.Tools.FFmpeg, cfg.Tools.FFprobe)
	}
	if cfg.Summarizer.APIKey != "" {
		t.Fatal("expected summarizer disabled by default")
	}
	if !cfg.Catalog.Enabled {
		t.Fatal("expected catalog enabled by default")
	}
}

func TestLoadReadsFileAndNormalizes(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[paths]
media_root = "~/files"
output_root = "~/out"

[extraction]
mode = " Clean-Transcode "
container = ".MKV"
buffer_ms = 250
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if cfg.Paths.MediaRoot != filepath.Join(tempHome, "files") {
		t.Fatalf("unexpected media root: %q", cfg.Paths.MediaRoot)
	}
	if cfg.Extraction.Mode != "clean-transcode" {
		t.Fatalf("mode not normalized: %q", cfg.Extraction.Mode)
	}
	if cfg.Extraction.Container != "mkv" {
		t.Fatalf("container not normalized: %q", cfg.Extraction.Container)
	}
	if cfg.Extraction.BufferMS != 250 {
		t.Fatalf("unexpected buffer: %d", cfg.Extraction.BufferMS)
	}
}

func TestSummarizerKeyFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LINECUT_SUMMARIZER_API_KEY", "sk-test")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Summarizer.APIKey != "sk-test" {
		t.Fatalf("expected api key from env, got %q", cfg.Summarizer.APIKey)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"bad mode", func(c *config.Config) { c.Extraction.Mode = "turbo" }, "extraction.mode"},
		{"negative buffer", func(c *config.Config) { c.Extraction.BufferMS = -1 }, "buffer_ms"},
		{"hw accel without transcode", func(c *config.Config) { c.Extraction.HWAccel = "cuda" }, "hw_accel"},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"empty media root", func(c *config.Config) { c.Paths.MediaRoot = "" }, "media_root"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatal(err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config does not validate: %v", err)
	}
}
