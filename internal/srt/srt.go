package srt

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Block is one timed caption entry. Start and End are absolute seconds from
// the beginning of the video; Text is the joined caption text with original
// line breaks collapsed to spaces.
type Block struct {
	Start  float64
	End    float64
	Text   string
	Source string
}

// Duration returns the block's length in seconds.
func (b Block) Duration() float64 {
	return b.End - b.Start
}

// ParseFile reads and parses an SRT file.
func ParseFile(path string) ([]Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	return Parse(data, path), nil
}

// Parse splits raw SRT text into timed blocks. Blocks without a valid timing
// line, with an unparsable timestamp, or with empty text after joining are
// dropped silently; a subtitle file with a few broken cues is normal in the
// wild and should not fail the whole track.
func Parse(data []byte, source string) []Block {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimPrefix(content, "\uFEFF")

	var blocks []Block
	for _, raw := range strings.Split(content, "\n\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		block, ok := parseBlock(raw, source)
		if !ok {
			continue
		}
		blocks = append(blocks, block)
	}
	return blocks
}

func parseBlock(raw, source string) (Block, bool) {
	lines := strings.Split(raw, "\n")
	timingIdx := -1
	var start, end float64
	for i, line := range lines {
		if !strings.Contains(line, "-->") {
			continue
		}
		parts := strings.SplitN(line, "-->", 2)
		startSec, errStart := ParseTimestamp(strings.TrimSpace(parts[0]))
		endSec, errEnd := ParseTimestamp(strings.TrimSpace(parts[1]))
		if errStart != nil || errEnd != nil {
			return Block{}, false
		}
		timingIdx = i
		start, end = startSec, endSec
		break
	}
	if timingIdx < 0 {
		return Block{}, false
	}

	var textLines []string
	for _, line := range lines[timingIdx+1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		textLines = append(textLines, line)
	}
	text := strings.TrimSpace(strings.Join(textLines, " "))
	if text == "" {
		return Block{}, false
	}
	return Block{Start: start, End: end, Text: text, Source: source}, true
}

// ParseTimestamp converts an SRT timestamp (HH:MM:SS,mmm; a period separator
// is tolerated) to seconds.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

// FormatClock renders seconds as HH:MM:SS, used for context snippet tags.
func FormatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
