// Command linecut searches subtitle files for a query and extracts the
// matching moments from the paired videos with ffmpeg.
package main
