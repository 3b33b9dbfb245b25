package search

import (
	"fmt"
	"slices"
)

// Result accumulates the outcome of one search invocation: the absolute
// addresses that matched, plus error and warning messages.
//
// Errors mean no matches could be produced for the affected scope (a bad
// tuning parameter, a source that failed to open). Warnings mean the search
// continued but the result may be incomplete (a block failed to read).
// Nothing on the matching path panics or returns an error as control flow;
// everything is inspectable here after the call returns.
type Result struct {
	// Matches holds match start addresses in ascending order.
	Matches []uint64

	Errors   []string
	Warnings []string
}

// NewErrorResult returns a Result containing just the formatted error.
func NewErrorResult(format string, args ...any) *Result {
	r := &Result{}
	r.AddErrorf(format, args...)
	return r
}

// AddErrorf appends a formatted error message.
func (r *Result) AddErrorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// AddWarningf appends a formatted warning message.
func (r *Result) AddWarningf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// HasErrors reports whether any error was recorded.
func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// HasWarnings reports whether any warning was recorded.
func (r *Result) HasWarnings() bool { return len(r.Warnings) > 0 }

// Merge appends everything from o. Merging is associative; after merging
// results from concurrently scanned sub-ranges, call SortMatches to restore
// the ascending-order postcondition.
func (r *Result) Merge(o *Result) {
	r.Matches = append(r.Matches, o.Matches...)
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// SortMatches sorts the match list into ascending address order.
func (r *Result) SortMatches() {
	slices.Sort(r.Matches)
}
