// Package search drives a matcher over byte ranges supplied by a
// reader.Source, either in a single pass (Chunked) or split across
// concurrent workers (Parallel), and accumulates matches, errors, and
// warnings into a Result.
package search

import (
	"github.com/praetorian-inc/sigscan/pkg/reader"
	"github.com/praetorian-inc/sigscan/pkg/sig"
)

// Tuning defaults. Block size matches the common page size; the partition
// threshold keeps parallel workers from being spawned for ranges too small
// to amortize a goroutine.
const (
	DefaultBlockSize        = 0x1000
	DefaultMinPartitionSize = 0x10000
)

// Searcher finds every occurrence of a signature inside one contiguous
// range, appending what it finds to res. Implementations never panic on bad
// tuning parameters; they record an error in res instead.
type Searcher interface {
	Search(r reader.Range, s sig.Signature, res *Result)
}

// SearchRanges runs sr over each range in order. Zero-length ranges are
// legal no-ops and are skipped.
func SearchRanges(sr Searcher, ranges []reader.Range, s sig.Signature, res *Result) {
	for _, r := range ranges {
		if r.Size == 0 {
			continue
		}
		sr.Search(r, s, res)
	}
}
