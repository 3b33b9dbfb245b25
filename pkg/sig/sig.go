// Package sig defines masked byte signatures and their textual format.
//
// A signature is an ordered sequence of (value, mask) byte patterns. A
// pattern matches a concrete byte b iff b&mask == value, so a zero mask bit
// is a wildcard bit. Signatures are written as whitespace-separated tokens:
//
//	"48 8B ?? 1A"    two exact bytes, a full wildcard, another exact byte
//	"1? ?B"          nibble wildcards (? and * are interchangeable)
//	"[01??10?1]"     explicit per-bit form, MSB first
package sig

import (
	"fmt"
	"slices"
	"strings"
)

// Byte is a single signature pattern: a value plus the mask of the bits that
// must match. Bits of value outside the mask are always zero.
type Byte struct {
	value byte
	mask  byte
}

// Exact returns a pattern matching only the byte b.
func Exact(b byte) Byte {
	return Byte{value: b, mask: 0xFF}
}

// Any returns a pattern matching every byte.
func Any() Byte {
	return Byte{}
}

// HighNibble returns a pattern whose high nibble must equal v (low 4 bits of
// v) and whose low nibble is wildcard.
func HighNibble(v byte) Byte {
	return Byte{value: (v & 0x0F) << 4, mask: 0xF0}
}

// LowNibble returns a pattern whose low nibble must equal v (low 4 bits of
// v) and whose high nibble is wildcard.
func LowNibble(v byte) Byte {
	return Byte{value: v & 0x0F, mask: 0x0F}
}

// Masked returns a pattern with an explicit value and mask. Value bits
// outside the mask are rejected rather than silently cleared.
func Masked(value, mask byte) (Byte, error) {
	if value&^mask != 0 {
		return Byte{}, fmt.Errorf("sig: value %#02x has bits outside mask %#02x", value, mask)
	}
	return Byte{value: value, mask: mask}, nil
}

// Value returns the bits that must match. Wildcard bits are zero.
func (b Byte) Value() byte { return b.value }

// Mask returns the mask of significant bits.
func (b Byte) Mask() byte { return b.mask }

// Match reports whether the concrete byte v satisfies this pattern.
func (b Byte) Match(v byte) bool {
	return v&b.mask == b.value
}

// String renders the pattern in signature text form. Patterns that are not
// expressible as hex-with-nibble-wildcards use the bracketed per-bit form.
func (b Byte) String() string {
	const hexDigits = "0123456789ABCDEF"
	switch b.mask {
	case 0xFF:
		return string([]byte{hexDigits[b.value>>4], hexDigits[b.value&0x0F]})
	case 0xF0:
		return string([]byte{hexDigits[b.value>>4], '?'})
	case 0x0F:
		return string([]byte{'?', hexDigits[b.value&0x0F]})
	case 0x00:
		return "??"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 7; i >= 0; i-- {
		bit := byte(1) << i
		switch {
		case b.mask&bit == 0:
			sb.WriteByte('?')
		case b.value&bit != 0:
			sb.WriteByte('1')
		default:
			sb.WriteByte('0')
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// Signature is an immutable ordered sequence of byte patterns. The zero
// value is a legal zero-length signature that matches nowhere.
type Signature struct {
	bytes []Byte
}

// New builds a signature from a pattern sequence. The slice is copied.
func New(patterns ...Byte) Signature {
	return Signature{bytes: slices.Clone(patterns)}
}

// Len returns the number of byte patterns in the signature.
func (s Signature) Len() int { return len(s.bytes) }

// Bytes returns the pattern sequence. Callers must not modify it.
func (s Signature) Bytes() []Byte { return s.bytes }

// Equal reports element-wise equality of the two pattern sequences.
func (s Signature) Equal(o Signature) bool {
	return slices.Equal(s.bytes, o.bytes)
}

// String renders the signature in canonical text form, one token per
// pattern, single spaces between tokens. Parse(s.String()) reproduces s.
func (s Signature) String() string {
	tokens := make([]string, len(s.bytes))
	for i, b := range s.bytes {
		tokens[i] = b.String()
	}
	return strings.Join(tokens, " ")
}
