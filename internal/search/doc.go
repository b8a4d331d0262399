// Package search locates query occurrences inside subtitle blocks and maps
// them onto the timeline by linear interpolation over the block text.
package search
