package ffmpeg

import (
	"context"
	"fmt"
	"strings"

	"linecut/internal/services"
)

// Mode selects the extraction strategy, trading speed against frame
// accuracy.
type Mode string

const (
	// ModeFastCopy seeks before the input and stream-copies codecs. Fastest,
	// but output trims to the nearest keyframe, so actual duration may
	// exceed the requested window.
	ModeFastCopy Mode = "fast-copy"
	// ModeAccurateTranscode seeks after the input: ffmpeg decodes from the
	// start of file and discards frames up to the seek point, so trimming is
	// frame-accurate at the cost of full decode time.
	ModeAccurateTranscode Mode = "accurate-transcode"
	// ModeCleanTranscode seeks before the input but still re-encodes. A
	// small frame-accuracy risk at GOP boundaries for a large speed win over
	// accurate-transcode, without the artifacts of raw stream copy at
	// arbitrary points.
	ModeCleanTranscode Mode = "clean-transcode"
)

// ParseMode validates a mode string.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeFastCopy:
		return ModeFastCopy, nil
	case ModeAccurateTranscode:
		return ModeAccurateTranscode, nil
	case ModeCleanTranscode:
		return ModeCleanTranscode, nil
	default:
		return "", services.Wrap(services.ErrValidation, "ffmpeg", "parse mode", fmt.Sprintf("unknown extraction mode %q", value), nil)
	}
}

// hwAccelEncoders maps hwaccel names to their matching H.264 encoders.
var hwAccelEncoders = map[string]string{
	"cuda":         "h264_nvenc",
	"videotoolbox": "h264_videotoolbox",
	"vaapi":        "h264_vaapi",
	"qsv":          "h264_qsv",
}

// vaapiDevice is the render node vaapi decode and encode run on.
const vaapiDevice = "/dev/dri/renderD128"

// CutRequest describes one clip extraction.
type CutRequest struct {
	Source    string
	Output    string
	Start     float64
	End       float64
	Mode      Mode
	Container string
	// HWAccel selects hardware decode/encode for accurate-transcode. Ignored
	// by the other modes.
	HWAccel string
}

// Cut extracts the requested window from the source into Output.
func (i *Invoker) Cut(ctx context.Context, req CutRequest) error {
	duration := req.End - req.Start
	if duration <= 0 {
		return services.Wrap(services.ErrValidation, "ffmpeg", "cut", fmt.Sprintf("window [%f, %f] has no width", req.Start, req.End), nil)
	}

	args := []string{"-y", "-hide_banner", "-loglevel", "error"}
	switch req.Mode {
	case ModeFastCopy:
		args = append(args,
			"-ss", formatSeconds(req.Start),
			"-i", req.Source,
			"-t", formatSeconds(duration),
			"-c", "copy",
		)
	case ModeAccurateTranscode:
		hw := strings.ToLower(strings.TrimSpace(req.HWAccel))
		switch hw {
		case "":
		case "vaapi":
			// vaapi needs a device and frames kept on the GPU so the
			// encoder can consume them without a hwupload filter.
			args = append(args,
				"-vaapi_device", vaapiDevice,
				"-hwaccel", "vaapi",
				"-hwaccel_output_format", "vaapi",
			)
		default:
			args = append(args, "-hwaccel", hw)
		}
		args = append(args,
			"-i", req.Source,
			"-ss", formatSeconds(req.Start),
			"-t", formatSeconds(duration),
		)
		args = append(args, encoderArgs(hw)...)
	case ModeCleanTranscode:
		args = append(args,
			"-ss", formatSeconds(req.Start),
			"-i", req.Source,
			"-t", formatSeconds(duration),
		)
		args = append(args, encoderArgs("")...)
	default:
		return services.Wrap(services.ErrValidation, "ffmpeg", "cut", fmt.Sprintf("unknown extraction mode %q", req.Mode), nil)
	}

	args = append(args, containerArgs(req.Container)...)
	args = append(args, req.Output)
	return i.exec(ctx, "cut", args)
}

// encoderArgs selects the video encoder and its quality knob. CRF is an
// x264/x265 concept; the hardware encoders each expose their own flag and
// either ignore or reject -crf.
func encoderArgs(hwAccel string) []string {
	encoder, hardware := hwAccelEncoders[hwAccel]
	if !hardware {
		return []string{
			"-c:v", "libx264",
			"-preset", "veryfast",
			"-crf", "18",
			"-c:a", "aac",
			"-b:a", "192k",
		}
	}

	args := []string{"-c:v", encoder}
	switch hwAccel {
	case "cuda":
		args = append(args, "-cq", "18")
	case "qsv":
		args = append(args, "-global_quality", "18")
	case "vaapi":
		args = append(args, "-qp", "18")
	case "videotoolbox":
		// videotoolbox quality runs 1-100, higher is better.
		args = append(args, "-q:v", "65")
	}
	return append(args, "-c:a", "aac", "-b:a", "192k")
}

// containerArgs returns extra muxer flags for containers that benefit from
// them. MP4-family files get fast start metadata placement so clips begin
// playing before a full download.
func containerArgs(container string) []string {
	switch strings.ToLower(strings.TrimSpace(container)) {
	case "mp4", "mov", "m4v":
		return []string{"-movflags", "+faststart"}
	default:
		return nil
	}
}
