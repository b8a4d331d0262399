package search

import (
	"fmt"

	"linecut/internal/srt"
)

// DefaultContextRadius is the number of neighboring blocks gathered on each
// side of a match for summarization.
const DefaultContextRadius = 5

// CollectContext returns time-tagged snippet lines for the blocks in
// [index-radius, index+radius], clamped to the track. The snippets feed the
// optional summarizer only; an empty result never blocks extraction.
func CollectContext(blocks []srt.Block, index, radius int) []string {
	if index < 0 || index >= len(blocks) {
		return nil
	}
	if radius < 0 {
		radius = DefaultContextRadius
	}
	lo := index - radius
	if lo < 0 {
		lo = 0
	}
	hi := index + radius
	if hi > len(blocks)-1 {
		hi = len(blocks) - 1
	}
	snippets := make([]string, 0, hi-lo+1)
	for _, block := range blocks[lo : hi+1] {
		snippets = append(snippets, fmt.Sprintf("[%s] %s", srt.FormatClock(block.Start), block.Text))
	}
	return snippets
}
