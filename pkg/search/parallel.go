package search

import (
	"golang.org/x/sync/errgroup"

	"github.com/praetorian-inc/sigscan/pkg/reader"
	"github.com/praetorian-inc/sigscan/pkg/sig"
)

// Parallel searches a range by splitting it into per-worker partitions,
// each scanned concurrently by a Chunked searcher. Neighboring partitions
// overlap by len(sig)-1 bytes so a match straddling a partition boundary is
// found, exactly once, by the worker owning the byte where it starts.
//
// Workers share only the read-only signature and the source (which must be
// safe for concurrent reads); each owns its Matcher and partial Result, so
// no locking is needed. The call joins all workers, merges their partial
// results, and sorts the combined match list, since workers finish in
// nondeterministic order.
type Parallel struct {
	chunked          Chunked
	maxWorkers       int
	minPartitionSize uint64
}

// NewParallel creates a multi-worker searcher over src.
func NewParallel(src reader.Source, opts ...Option) *Parallel {
	cfg := newConfig(opts)
	return &Parallel{
		chunked:          Chunked{src: src, blockSize: cfg.blockSize},
		maxWorkers:       cfg.maxWorkers,
		minPartitionSize: cfg.minPartitionSize,
	}
}

// Source returns the data source this searcher reads from.
func (p *Parallel) Source() reader.Source { return p.chunked.src }

// Search scans r for s concurrently. The contract is identical to
// Chunked.Search: same match set, ascending order, failures recorded in res.
// A range too small to split runs inline on the calling goroutine.
func (p *Parallel) Search(r reader.Range, s sig.Signature, res *Result) {
	if s.Len() == 0 {
		return
	}
	if p.maxWorkers <= 0 {
		res.AddErrorf("max worker count cannot be 0")
		return
	}
	if p.minPartitionSize == 0 {
		res.AddErrorf("minimum partition size cannot be 0")
		return
	}

	parts := p.partition(r, s.Len())
	if len(parts) <= 1 {
		p.chunked.Search(r, s, res)
		return
	}

	partials := make([]Result, len(parts))
	var g errgroup.Group
	for i, part := range parts {
		i, part := i, part
		g.Go(func() error {
			p.chunked.Search(part, s, &partials[i])
			return nil
		})
	}
	_ = g.Wait() // workers report through their partial Result, never an error

	for i := range partials {
		res.Merge(&partials[i])
	}
	res.SortMatches()
}

// partition splits r into up to maxWorkers sub-ranges of N/workers bytes,
// each extended by sigLen-1 bytes of overlap into its successor. The last
// partition absorbs the integer-division remainder so the partitions cover
// the range exactly. A match starting inside partition i's overlap tail
// begins before partition i+1's own territory, so no match is double
// counted and none is missed.
func (p *Parallel) partition(r reader.Range, sigLen int) []reader.Range {
	workers := p.maxWorkers
	if r.Size <= uint64(p.maxWorkers)*p.minPartitionSize {
		workers = int(max(r.Size/p.minPartitionSize, 1))
	}

	average := r.Size / uint64(workers)
	overlap := uint64(sigLen - 1)

	parts := make([]reader.Range, 0, workers)
	for i := 0; i < workers; i++ {
		offset := uint64(i) * average
		size := min(average+overlap, r.Size-offset)
		if i == workers-1 {
			size = r.Size - offset
		}
		parts = append(parts, reader.Range{Start: r.Start + offset, Size: size})
	}
	return parts
}
