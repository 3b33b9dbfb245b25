// Package target selects which byte ranges a search covers: a file's
// contents, an arbitrary span of a process's memory, or the mapped regions
// of a module loaded into a process. Targets resolve their ranges, pair
// them with the right data source, and hand back a search.Context; failures
// during resolution become error contexts whose message surfaces in the
// eventual search result.
package target

import "strings"

// Prot is a set of page protection flags used to filter a module's mapped
// regions.
type Prot uint8

const (
	ProtRead Prot = 1 << iota
	ProtWrite
	ProtExec
)

// Has reports whether p contains every flag in q.
func (p Prot) Has(q Prot) bool { return p&q == q }

func (p Prot) String() string {
	var sb strings.Builder
	for _, f := range [...]struct {
		flag Prot
		ch   byte
	}{{ProtRead, 'r'}, {ProtWrite, 'w'}, {ProtExec, 'x'}} {
		if p.Has(f.flag) {
			sb.WriteByte(f.ch)
		} else {
			sb.WriteByte('-')
		}
	}
	return sb.String()
}
