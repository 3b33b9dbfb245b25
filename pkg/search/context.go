package search

import (
	"github.com/praetorian-inc/sigscan/pkg/reader"
	"github.com/praetorian-inc/sigscan/pkg/sig"
)

// Context binds a data source to the byte ranges a search should cover.
// Targets hand these out; a target that failed to resolve its ranges hands
// out an error Context instead, and the error surfaces in the Result of
// whatever search is eventually run against it.
type Context struct {
	ranges []reader.Range
	src    reader.Source
	err    string
}

// NewContext creates a search context over the given ranges of src.
func NewContext(src reader.Source, ranges ...reader.Range) *Context {
	return &Context{src: src, ranges: ranges}
}

// NewErrorContext creates a context that fails every search with the given
// message.
func NewErrorContext(msg string) *Context {
	return &Context{err: msg}
}

// Source returns the context's data source, nil for an error context.
func (c *Context) Source() reader.Source { return c.src }

// Ranges returns the ranges the context covers.
func (c *Context) Ranges() []reader.Range { return c.ranges }

// Search scans the context's ranges for s with a default Chunked searcher.
func (c *Context) Search(s sig.Signature) *Result {
	if c.src == nil && c.err == "" {
		return NewErrorResult("no data source")
	}
	return c.SearchWith(NewChunked(c.src), s)
}

// SearchWith scans the context's ranges for s with the given searcher. The
// searcher must read from the same source as the context. A deferred
// context error or a source-level error short-circuits the whole search.
func (c *Context) SearchWith(sr Searcher, s sig.Signature) *Result {
	if c.err != "" {
		return NewErrorResult("%s", c.err)
	}
	if c.src == nil {
		return NewErrorResult("no data source")
	}
	if err := c.src.Err(); err != nil {
		return NewErrorResult("%v", err)
	}

	res := &Result{}
	if len(c.ranges) == 0 {
		return res
	}
	SearchRanges(sr, c.ranges, s, res)
	return res
}
