// Package pipeline sequences one extraction run: discover subtitle tracks,
// locate query hits, compute buffered windows, invoke ffmpeg per clip, and
// write the run manifest. Clip cuts run sequentially so that ffmpeg owns the
// machine's decode throughput one clip at a time.
package pipeline
