// Package matcher implements streaming masked-byte signature matching.
//
// A Matcher consumes a byte stream one chunk at a time and reports the
// absolute address of every position where its signature matches, including
// matches that straddle chunk boundaries. Chunks must be fed contiguous and
// in address order; the searchers in pkg/search do exactly that.
package matcher

import (
	"github.com/praetorian-inc/sigscan/pkg/sig"
)

// Matcher finds every occurrence of one signature in a chunked byte stream.
// It is not safe for concurrent use; parallel searches give each worker its
// own Matcher.
type Matcher struct {
	sig sig.Signature

	// tail holds the trailing bytes of the stream so far that could still
	// be the prefix of a match completed by the next chunk. It never grows
	// past len(sig)-1 bytes between calls.
	tail []byte
}

// New creates a Matcher bound to signature s.
func New(s sig.Signature) *Matcher {
	m := &Matcher{sig: s}
	if n := s.Len(); n > 1 {
		m.tail = make([]byte, 0, 2*(n-1))
	}
	return m
}

// Reset clears cross-chunk state so the Matcher can consume a new stream.
func (m *Matcher) Reset() {
	m.tail = m.tail[:0]
}

// Match scans chunk, whose first byte lives at address base, and appends the
// absolute address of every match start to matches. Matches are appended in
// ascending order. Overlapping occurrences are all reported: the scan
// resumes one byte after each match start, not after its end.
//
// A match that began in an earlier chunk is reported at its true address:
// the Matcher joins its retained tail with at most len(sig)-1 bytes of the
// new chunk and scans that bounded buffer first.
func (m *Matcher) Match(chunk []byte, base uint64, matches []uint64) []uint64 {
	n := m.sig.Len()
	if n == 0 {
		return matches
	}

	if len(m.tail) > 0 {
		// Not enough data yet to attempt any match: keep accumulating.
		if len(m.tail)+len(chunk) < n {
			m.tail = append(m.tail, chunk...)
			return matches
		}

		copyCount := min(len(chunk), n-1)
		tailLen := len(m.tail)
		// popCount is how many start positions in the joined buffer get a
		// full-length match attempt; those bytes can be dropped afterward.
		popCount := tailLen + copyCount - n + 1

		m.tail = append(m.tail, chunk[:copyCount]...)
		matches, _ = m.scan(m.tail, base-uint64(tailLen), matches)

		if popCount != tailLen {
			// The whole chunk was absorbed into the tail.
			m.tail = append(m.tail[:0], m.tail[popCount:]...)
			return matches
		}
		m.tail = m.tail[:0]
	}

	matches, unmatched := m.scan(chunk, base, matches)
	m.tail = append(m.tail, chunk[unmatched:]...)
	return matches
}

// scan reports every match start inside hay and returns the index of the
// first byte that could not be ruled out as the start of a later match.
func (m *Matcher) scan(hay []byte, base uint64, matches []uint64) ([]uint64, int) {
	n := m.sig.Len()
	i := 0
	for {
		if len(hay)-i < n {
			return matches, i
		}
		j := m.find(hay, i)
		if j < 0 {
			return matches, len(hay) - n + 1
		}
		matches = append(matches, base+uint64(j))
		i = j + 1
	}
}

// find returns the first index >= from where the signature matches in full,
// or -1 if there is none.
func (m *Matcher) find(hay []byte, from int) int {
	pat := m.sig.Bytes()
	n := len(pat)
next:
	for j := from; j+n <= len(hay); j++ {
		for k := 0; k < n; k++ {
			if !pat[k].Match(hay[j+k]) {
				continue next
			}
		}
		return j
	}
	return -1
}
