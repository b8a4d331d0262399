package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"linecut/internal/clip"
	"linecut/internal/services"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return store
}

func TestMediaResolve(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.UpsertMedia(ctx, "big_lebowski", "/media/big_lebowski.mkv", "/media/big_lebowski.srt"); err != nil {
		t.Fatalf("UpsertMedia: %v", err)
	}

	video, subtitle, err := store.Resolve(ctx, "big_lebowski")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if video != "/media/big_lebowski.mkv" || subtitle != "/media/big_lebowski.srt" {
		t.Fatalf("unexpected resolution: %q %q", video, subtitle)
	}

	if err := store.UpsertMedia(ctx, "big_lebowski", "/media/big_lebowski.mp4", ""); err != nil {
		t.Fatalf("UpsertMedia update: %v", err)
	}
	video, subtitle, err = store.Resolve(ctx, "big_lebowski")
	if err != nil {
		t.Fatalf("Resolve after update: %v", err)
	}
	if video != "/media/big_lebowski.mp4" || subtitle != "" {
		t.Fatalf("update not applied: %q %q", video, subtitle)
	}
}

func TestResolveUnknownMedia(t *testing.T) {
	store := openTestStore(t)

	_, _, err := store.Resolve(context.Background(), "missing")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestRecordAndListRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	manifest := clip.Manifest{
		Schema:       clip.Schema,
		Query:        "dino",
		BufferMS:     500,
		GeneratedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		FFmpegPath:   "/usr/bin/ffmpeg",
		Mode:         "fast-copy",
		Container:    "mp4",
		RunDirectory: "dino_2026-03-01T12-00-00.000",
		TotalClips:   2,
		Clips: []clip.Entry{
			{
				File:         "clips/movie_1_0000010750.mp4",
				Video:        "movie.mkv",
				Subtitle:     "movie.srt",
				Start:        10.25,
				End:          11.75,
				ProcessingMS: 120,
				CoverImage:   "covers/movie_1_0000010750.jpg",
			},
			{
				File:         "clips/movie_2_0000042000.mp4",
				Video:        "movie.mkv",
				Subtitle:     "movie.srt",
				Start:        41.5,
				End:          43.0,
				ProcessingMS: 95,
			},
		},
	}

	runID := uuid.NewString()
	if err := store.RecordRun(ctx, runID, manifest); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	runs, err := store.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].ID != runID || runs[0].Query != "dino" || runs[0].TotalClips != 2 {
		t.Fatalf("unexpected run summary: %+v", runs[0])
	}

	clips, err := store.ListClips(ctx, runID)
	if err != nil {
		t.Fatalf("ListClips: %v", err)
	}
	if len(clips) != 2 {
		t.Fatalf("expected 2 clips, got %d", len(clips))
	}
	if clips[0].CoverImage != "covers/movie_1_0000010750.jpg" {
		t.Fatalf("cover not preserved: %+v", clips[0])
	}
	if clips[1].Summary != "" || clips[1].CoverImage != "" {
		t.Fatalf("empty optional fields not preserved: %+v", clips[1])
	}
}

func TestOpenRejectsSecondWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	first, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	defer first.Close()

	second, err := Open(path)
	if err == nil {
		second.Close()
		t.Fatal("expected second Open to fail while lock is held")
	}
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
