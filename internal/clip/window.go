package clip

// Window is the extraction time range for one hit, in seconds.
type Window struct {
	Start float64
	End   float64
}

// Duration returns the window length in seconds.
func (w Window) Duration() float64 {
	return w.End - w.Start
}

// BuildWindow expands a hit by the symmetric buffer and clamps the start at
// zero. The second return is false when the resulting window has no width;
// such candidates are dropped rather than handed to ffmpeg. No rounding
// happens here; manifest serialization rounds once at write time so buffer
// math never compounds rounding error.
func BuildWindow(hitStart, hitEnd, bufferSeconds float64) (Window, bool) {
	start := hitStart - bufferSeconds
	if start < 0 {
		start = 0
	}
	end := hitEnd + bufferSeconds
	if end-start <= 0 {
		return Window{}, false
	}
	return Window{Start: start, End: end}, true
}
