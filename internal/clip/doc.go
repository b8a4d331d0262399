// Package clip turns located hits into buffered extraction windows, names
// the output files for a run, and records the run manifest.
package clip
