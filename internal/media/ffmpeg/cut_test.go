package ffmpeg

import (
	"context"
	"errors"
	"strings"
	"testing"

	"linecut/internal/services"
)

type fakeRun struct {
	calls [][]string
	err   error
}

func (f *fakeRun) runner() Runner {
	return func(_ context.Context, name string, args ...string) error {
		call := append([]string{name}, args...)
		f.calls = append(f.calls, call)
		return f.err
	}
}

func argString(call []string) string {
	return strings.Join(call, " ")
}

func TestCutFastCopy(t *testing.T) {
	fake := &fakeRun{}
	invoker := New("/opt/ffmpeg", WithRunner(fake.runner()))

	err := invoker.Cut(context.Background(), CutRequest{
		Source:    "/media/movie.mkv",
		Output:    "/out/clip.mp4",
		Start:     10.35,
		End:       11.65,
		Mode:      ModeFastCopy,
		Container: "mp4",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(fake.calls) != 1 {
		t.Fatalf("expected 1 invocation, got %d", len(fake.calls))
	}
	got := argString(fake.calls[0])
	for _, want := range []string{
		"/opt/ffmpeg",
		"-ss 10.350 -i /media/movie.mkv",
		"-t 1.300",
		"-c copy",
		"-movflags +faststart",
		"/out/clip.mp4",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
	if strings.Contains(got, "libx264") {
		t.Fatalf("fast-copy must not re-encode: %q", got)
	}
}

func TestCutAccurateTranscodeSeeksAfterInput(t *testing.T) {
	fake := &fakeRun{}
	invoker := New("ffmpeg", WithRunner(fake.runner()))

	err := invoker.Cut(context.Background(), CutRequest{
		Source: "in.mkv", Output: "out.mkv",
		Start: 100, End: 102.5,
		Mode: ModeAccurateTranscode, Container: "mkv",
	})
	if err != nil {
		t.Fatal(err)
	}
	got := argString(fake.calls[0])
	if !strings.Contains(got, "-i in.mkv -ss 100.000") {
		t.Fatalf("accurate mode must seek after the input: %q", got)
	}
	for _, want := range []string{"-c:v libx264", "-c:a aac"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
	if strings.Contains(got, "faststart") {
		t.Fatalf("mkv should not get faststart flags: %q", got)
	}
}

func TestCutAccurateTranscodeHWAccel(t *testing.T) {
	cases := []struct {
		hwAccel string
		want    []string
		reject  []string
	}{
		{
			hwAccel: "cuda",
			want:    []string{"-hwaccel cuda", "-c:v h264_nvenc", "-cq 18"},
			reject:  []string{"-crf", "-preset"},
		},
		{
			hwAccel: "qsv",
			want:    []string{"-hwaccel qsv", "-c:v h264_qsv", "-global_quality 18"},
			reject:  []string{"-crf"},
		},
		{
			hwAccel: "videotoolbox",
			want:    []string{"-c:v h264_videotoolbox", "-q:v 65"},
			reject:  []string{"-crf"},
		},
		{
			hwAccel: "vaapi",
			want: []string{
				"-vaapi_device /dev/dri/renderD128",
				"-hwaccel vaapi",
				"-hwaccel_output_format vaapi",
				"-c:v h264_vaapi",
				"-qp 18",
			},
			reject: []string{"-crf"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.hwAccel, func(t *testing.T) {
			fake := &fakeRun{}
			invoker := New("ffmpeg", WithRunner(fake.runner()))

			err := invoker.Cut(context.Background(), CutRequest{
				Source: "in.mkv", Output: "out.mp4",
				Start: 1, End: 2,
				Mode: ModeAccurateTranscode, Container: "mp4", HWAccel: tc.hwAccel,
			})
			if err != nil {
				t.Fatal(err)
			}
			got := argString(fake.calls[0])
			for _, want := range tc.want {
				if !strings.Contains(got, want) {
					t.Fatalf("expected %q in %q", want, got)
				}
			}
			for _, reject := range tc.reject {
				if strings.Contains(got, reject+" ") {
					t.Fatalf("hardware encode must not carry %q: %q", reject, got)
				}
			}
		})
	}
}

func TestCutCleanTranscodeSeeksBeforeInput(t *testing.T) {
	fake := &fakeRun{}
	invoker := New("ffmpeg", WithRunner(fake.runner()))

	err := invoker.Cut(context.Background(), CutRequest{
		Source: "in.mkv", Output: "out.mp4",
		Start: 30, End: 33,
		Mode: ModeCleanTranscode, Container: "mp4",
	})
	if err != nil {
		t.Fatal(err)
	}
	got := argString(fake.calls[0])
	if !strings.Contains(got, "-ss 30.000 -i in.mkv") {
		t.Fatalf("clean mode must seek before the input: %q", got)
	}
	if !strings.Contains(got, "-c:v libx264") {
		t.Fatalf("clean mode must re-encode: %q", got)
	}
}

func TestCutRejectsEmptyWindow(t *testing.T) {
	invoker := New("ffmpeg", WithRunner((&fakeRun{}).runner()))
	err := invoker.Cut(context.Background(), CutRequest{Start: 5, End: 5, Mode: ModeFastCopy})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCutWrapsRunnerFailure(t *testing.T) {
	fake := &fakeRun{err: errors.New("exit status 1")}
	invoker := New("ffmpeg", WithRunner(fake.runner()))
	err := invoker.Cut(context.Background(), CutRequest{Start: 0, End: 1, Mode: ModeFastCopy})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestCaptureCover(t *testing.T) {
	fake := &fakeRun{}
	invoker := New("ffmpeg", WithRunner(fake.runner()))

	if err := invoker.CaptureCover(context.Background(), "in.mkv", 10.75, "cover.jpg"); err != nil {
		t.Fatal(err)
	}
	got := argString(fake.calls[0])
	for _, want := range []string{"-ss 10.750", "-frames:v 1", "cover.jpg"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}

	// Negative seek clamps to zero.
	if err := invoker.CaptureCover(context.Background(), "in.mkv", -1, "cover.jpg"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(argString(fake.calls[1]), "-ss 0.000") {
		t.Fatalf("expected clamped seek: %q", argString(fake.calls[1]))
	}
}

func TestExtractSubtitle(t *testing.T) {
	fake := &fakeRun{}
	invoker := New("ffmpeg", WithRunner(fake.runner()))

	if err := invoker.ExtractSubtitle(context.Background(), "movie.mkv", 2, "out.srt"); err != nil {
		t.Fatal(err)
	}
	got := argString(fake.calls[0])
	for _, want := range []string{"-map 0:2", "-c:s srt", "out.srt"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, valid := range []string{"fast-copy", "Accurate-Transcode", " clean-transcode "} {
		if _, err := ParseMode(valid); err != nil {
			t.Errorf("ParseMode(%q) failed: %v", valid, err)
		}
	}
	if _, err := ParseMode("turbo"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
