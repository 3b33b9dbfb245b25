package reader

import "fmt"

// Bytes is a Source over a caller-owned byte slice, addressed as if the
// first byte lived at a fixed base address. The slice is not copied and
// must not be mutated while a search is running.
type Bytes struct {
	data []byte
	base uint64
}

// NewBytes returns a Source reading from data, with data[0] at address base.
func NewBytes(data []byte, base uint64) *Bytes {
	return &Bytes{data: data, base: base}
}

// Range returns the full span covered by the slice.
func (b *Bytes) Range() Range {
	return Range{Start: b.base, Size: uint64(len(b.data))}
}

func (b *Bytes) Err() error { return nil }

func (b *Bytes) Read(addr uint64, p []byte) error {
	if addr < b.base {
		return fmt.Errorf("reader: address %#x below buffer base %#x", addr, b.base)
	}
	off := addr - b.base
	if off > uint64(len(b.data)) || uint64(len(p)) > uint64(len(b.data))-off {
		return fmt.Errorf("reader: read of %#x byte(s) at %#x exceeds buffer", len(p), addr)
	}
	copy(p, b.data[off:])
	return nil
}
