// Package reader provides the data sources a search reads raw bytes from:
// an in-memory buffer, a file, or another process's address space.
//
// Addresses are opaque uint64 values. For files they are offsets from the
// start of the file; for process sources they are virtual addresses. The
// search core only does arithmetic on them and reports them back.
package reader

// Source supplies bytes to a search.
//
// Read must fill p entirely from addr or return an error; a partially
// filled buffer must never be reported as success. Read is called
// concurrently by parallel searches, so implementations must be safe for
// concurrent use.
type Source interface {
	// Err reports a failure detected when the source was constructed, for
	// example a file that could not be opened. It is checked once before
	// any read is attempted and short-circuits the whole search.
	Err() error

	Read(addr uint64, p []byte) error
}

// Range is a contiguous span of addresses to search.
type Range struct {
	Start uint64
	Size  uint64
}

// End returns the first address past the range.
func (r Range) End() uint64 { return r.Start + r.Size }
