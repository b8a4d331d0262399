package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the root command with args against an isolated HOME so the
// default config path never touches the developer's real configuration.
func runCLI(t *testing.T, args []string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	// Keep the cwd fallback config out of play.
	wd := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(wd); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
	return home
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("expected output to contain %q, got:\n%s", want, output)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	isolateHome(t)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCLI(t, []string{"config", "init", "--path", target})
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	out, err = runCLI(t, []string{"config", "init", "--path", target})
	if err == nil {
		t.Fatalf("second init without --overwrite should fail, got:\n%s", out)
	}

	out, err = runCLI(t, []string{"config", "validate"})
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}

func TestConfigShowReportsDefaults(t *testing.T) {
	isolateHome(t)

	out, err := runCLI(t, []string{"config", "show"})
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "defaults shown")
	requireContains(t, out, "fast-copy")
}

func TestExtractFailsFastWithoutTools(t *testing.T) {
	home := isolateHome(t)
	outputRoot := filepath.Join(home, "clips-out")
	configPath := filepath.Join(home, ".config", "linecut", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	content := fmt.Sprintf("[paths]\nmedia_root = %q\noutput_root = %q\n\n[tools]\nffmpeg = %q\nffprobe = %q\n",
		home, outputRoot,
		filepath.Join(home, "missing-ffmpeg"),
		filepath.Join(home, "missing-ffprobe"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := runCLI(t, []string{"extract", "dino"})
	if err == nil || !strings.Contains(err.Error(), "unavailable") {
		t.Fatalf("expected tool availability error, got %v", err)
	}

	// The probe must run before any run directory is allocated.
	entries, readErr := os.ReadDir(outputRoot)
	if readErr != nil {
		t.Fatalf("ReadDir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("no run directory should exist after a failed tool probe, found %d entries", len(entries))
	}
}

func TestExtractRejectsEmptyQuery(t *testing.T) {
	isolateHome(t)

	_, err := runCLI(t, []string{"extract", "   "})
	if err == nil || !strings.Contains(err.Error(), "query must not be empty") {
		t.Fatalf("expected empty query error, got %v", err)
	}
}

func TestExtractRejectsHWAccelWithoutTranscode(t *testing.T) {
	isolateHome(t)

	_, err := runCLI(t, []string{"extract", "dino", "--mode", "fast-copy", "--hw-accel", "cuda"})
	if err == nil || !strings.Contains(err.Error(), "accurate-transcode") {
		t.Fatalf("expected hardware acceleration mode error, got %v", err)
	}
}

func TestParseVideoOverrides(t *testing.T) {
	overrides, err := parseVideoOverrides([]string{"a.srt=a.mkv", "b.srt=b.mp4"})
	if err != nil {
		t.Fatalf("parseVideoOverrides: %v", err)
	}
	if overrides["a.srt"] != "a.mkv" || overrides["b.srt"] != "b.mp4" {
		t.Fatalf("unexpected overrides: %v", overrides)
	}

	if _, err := parseVideoOverrides([]string{"broken"}); err == nil {
		t.Fatal("expected error for pair without separator")
	}
	if _, err := parseVideoOverrides([]string{"=video.mkv"}); err == nil {
		t.Fatal("expected error for empty subtitle side")
	}
}

func TestDisplayTitle(t *testing.T) {
	cases := map[string]string{
		"/media/the_big_lebowski.mkv": "The Big Lebowski",
		"blade.runner.2049.mp4":       "Blade Runner 2049",
		"/media/solo.webm":            "Solo",
	}
	for input, want := range cases {
		if got := displayTitle(input); got != want {
			t.Errorf("displayTitle(%q) = %q, want %q", input, got, want)
		}
	}
}
