package search

import (
	"regexp"

	"linecut/internal/services"
)

// Options controls how a query string is interpreted.
type Options struct {
	Regex         bool
	CaseSensitive bool
}

// Pattern is an immutable compiled query. All matching state lives in the
// caller; FindSpans is a pure function so a single Pattern can serve every
// block of every subtitle file in a run.
type Pattern struct {
	query string
	re    *regexp.Regexp
}

// Span is a half-open byte-offset range [Start, End) inside a block's text.
type Span struct {
	Start int
	End   int
}

// Compile builds a Pattern from a query. Literal queries are quoted and run
// through the same engine as regular expressions. A malformed regular
// expression is a validation error; the run must abort before any file
// scanning starts.
func Compile(query string, opts Options) (Pattern, error) {
	expr := query
	if !opts.Regex {
		expr = regexp.QuoteMeta(query)
	}
	if !opts.CaseSensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, services.Wrap(services.ErrValidation, "search", "compile pattern", "invalid query pattern", err)
	}
	return Pattern{query: query, re: re}, nil
}

// Query returns the original query string.
func (p Pattern) Query() string {
	return p.query
}

// FindSpans returns every occurrence of the pattern in text. Zero-width
// matches are reported once per position; the scan cursor always advances,
// so an empty pattern terminates.
func (p Pattern) FindSpans(text string) []Span {
	if p.re == nil {
		return nil
	}
	var spans []Span
	offset := 0
	for offset <= len(text) {
		loc := p.re.FindStringIndex(text[offset:])
		if loc == nil {
			break
		}
		start, end := offset+loc[0], offset+loc[1]
		spans = append(spans, Span{Start: start, End: end})
		if end == start {
			// Zero-width match: step one byte so the loop makes progress.
			offset = end + 1
		} else {
			offset = end
		}
	}
	return spans
}
