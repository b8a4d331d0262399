package search

import (
	"linecut/internal/srt"
)

// Hit is a located occurrence of the query inside one subtitle block,
// projected onto the block's time range.
type Hit struct {
	Start      float64
	End        float64
	BlockIndex int
	Block      srt.Block
}

// Locate finds all pattern occurrences across the blocks and maps each
// byte-offset span onto the owning block's time range by linear ratio:
//
//	hitStart = blockStart + duration * spanStart/textLen
//
// This assumes uniform reading speed across the line. It is an explicit
// approximation, not a transcription-accurate boundary; with the symmetric
// buffer applied downstream it lands well inside the spoken line in
// practice. Blocks with non-positive duration or empty text produce no hits.
func Locate(blocks []srt.Block, pattern Pattern) []Hit {
	var hits []Hit
	for i, block := range blocks {
		duration := block.Duration()
		if duration <= 0 || block.Text == "" {
			continue
		}
		textLen := float64(len(block.Text))
		for _, span := range pattern.FindSpans(block.Text) {
			hits = append(hits, Hit{
				Start:      block.Start + duration*(float64(span.Start)/textLen),
				End:        block.Start + duration*(float64(span.End)/textLen),
				BlockIndex: i,
				Block:      block,
			})
		}
	}
	return hits
}
