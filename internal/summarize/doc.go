// Package summarize provides the optional scene summarization capability.
// The pipeline depends only on the Summarizer interface; without an API key
// the no-op implementation declines silently and clips carry no summary.
package summarize
