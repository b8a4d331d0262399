package discovery

import (
	"strings"

	"linecut/internal/media/ffprobe"
)

// textCodecs are the subtitle codecs ffmpeg can remux into SRT. Image-based
// codecs (PGS, DVD subpictures) would need OCR and are skipped.
var textCodecs = map[string]bool{
	"subrip":   true,
	"srt":      true,
	"text":     true,
	"ass":      true,
	"ssa":      true,
	"webvtt":   true,
	"mov_text": true,
}

// IsTextCodec reports whether a subtitle codec can be converted to SRT.
func IsTextCodec(codec string) bool {
	return textCodecs[strings.ToLower(strings.TrimSpace(codec))]
}

// SelectStream picks the subtitle stream to extract from a container.
// Preference order: the first text stream tagged with an English-prefixed
// language code, else the first stream with a text-based codec regardless of
// language. Returns false when no stream is usable, which includes
// containers carrying only image-based tracks.
func SelectStream(streams []ffprobe.Stream) (ffprobe.Stream, bool) {
	for _, stream := range streams {
		if strings.HasPrefix(stream.Language(), "en") && IsTextCodec(stream.CodecName) {
			return stream, true
		}
	}
	for _, stream := range streams {
		if IsTextCodec(stream.CodecName) {
			return stream, true
		}
	}
	return ffprobe.Stream{}, false
}
