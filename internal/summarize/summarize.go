package summarize

import "context"

// Summarizer produces a short free-text summary of a matched scene from the
// movie title and time-tagged context snippets. Implementations may decline
// by returning an empty string with a nil error.
type Summarizer interface {
	Summarize(ctx context.Context, title string, snippets []string) (string, error)
}

// Noop declines every request. It is the default when no API key is
// configured, keeping the pipeline free of required network dependencies.
type Noop struct{}

// Summarize returns an empty summary.
func (Noop) Summarize(context.Context, string, []string) (string, error) {
	return "", nil
}
