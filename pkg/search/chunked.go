package search

import (
	"github.com/praetorian-inc/sigscan/pkg/matcher"
	"github.com/praetorian-inc/sigscan/pkg/reader"
	"github.com/praetorian-inc/sigscan/pkg/sig"
)

// maxBlockWarnings bounds how many per-block read failures are recorded
// individually. Past the cap only the final summary warning reports that
// the result may be incomplete.
const maxBlockWarnings = 16

// Chunked searches one contiguous range in a single pass, reading it from
// the source one fixed-size block at a time. A block that fails to read is
// skipped with a warning; it never aborts the rest of the range.
type Chunked struct {
	src       reader.Source
	blockSize uint64
}

// NewChunked creates a single-pass searcher over src.
func NewChunked(src reader.Source, opts ...Option) *Chunked {
	cfg := newConfig(opts)
	return &Chunked{src: src, blockSize: cfg.blockSize}
}

// Source returns the data source this searcher reads from.
func (c *Chunked) Source() reader.Source { return c.src }

// Search scans r for s, appending matches and any diagnostics to res.
// Matches are appended in ascending address order because blocks are
// consumed strictly in address order.
func (c *Chunked) Search(r reader.Range, s sig.Signature, res *Result) {
	if s.Len() == 0 {
		return
	}
	if c.blockSize == 0 {
		res.AddErrorf("block size cannot be 0")
		return
	}

	m := matcher.New(s)
	buf := make([]byte, min(c.blockSize, r.Size))
	failed := 0

	for off := uint64(0); off < r.Size; off += c.blockSize {
		addr := r.Start + off
		size := min(c.blockSize, r.Size-off)

		if err := c.src.Read(addr, buf[:size]); err != nil {
			failed++
			if failed <= maxBlockWarnings {
				res.AddWarningf("failed to read %#x byte(s) at %#x: %v", size, addr, err)
			}
			// The matcher's pending tail cannot complete across the hole.
			m.Reset()
			continue
		}
		res.Matches = m.Match(buf[:size], addr, res.Matches)
	}

	if failed > 0 {
		res.AddWarningf("%d block read(s) failed, the result may be incomplete", failed)
	}
}
