package sig

import (
	"fmt"
	"strings"
)

// Parse converts signature text into a Signature. Tokens are separated by
// runs of whitespace; leading and trailing whitespace is ignored; empty
// input yields a zero-length signature. On a malformed token Parse returns a
// descriptive error and no partial signature.
//
// Parse and MustParse share the same decoder, so a literal signature and the
// identical runtime string always produce equal Signatures.
func Parse(text string) (Signature, error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return Signature{}, nil
	}
	patterns := make([]Byte, len(tokens))
	for i, tok := range tokens {
		b, err := decodeToken(tok)
		if err != nil {
			return Signature{}, fmt.Errorf("sig: token %d %q: %w", i, tok, err)
		}
		patterns[i] = b
	}
	return Signature{bytes: patterns}, nil
}

// MustParse is Parse for signature literals known at build time. It panics
// on malformed input, so a package-level
//
//	var prologue = sig.MustParse("55 48 89 E5")
//
// fails at program start rather than mid-search.
func MustParse(text string) Signature {
	s, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return s
}

func isWildcardChar(c byte) bool {
	return c == '?' || c == '*'
}

func hexNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

func decodeToken(tok string) (Byte, error) {
	if strings.HasPrefix(tok, "[") {
		return decodeBits(tok)
	}
	if len(tok) != 2 {
		return Byte{}, fmt.Errorf("pattern byte must be 2 characters, got %d", len(tok))
	}
	return decodePair(tok[0], tok[1])
}

// decodePair decodes the two-character hex/wildcard form.
func decodePair(hi, lo byte) (Byte, error) {
	hiWild, loWild := isWildcardChar(hi), isWildcardChar(lo)
	switch {
	case hiWild && loWild:
		return Any(), nil
	case hiWild:
		v, ok := hexNibble(lo)
		if !ok {
			return Byte{}, fmt.Errorf("invalid hex digit %q", lo)
		}
		return LowNibble(v), nil
	case loWild:
		v, ok := hexNibble(hi)
		if !ok {
			return Byte{}, fmt.Errorf("invalid hex digit %q", hi)
		}
		return HighNibble(v), nil
	default:
		h, ok := hexNibble(hi)
		if !ok {
			return Byte{}, fmt.Errorf("invalid hex digit %q", hi)
		}
		l, ok := hexNibble(lo)
		if !ok {
			return Byte{}, fmt.Errorf("invalid hex digit %q", lo)
		}
		return Exact(h<<4 | l), nil
	}
}

// decodeBits decodes the bracketed per-bit form: exactly 8 characters of
// '0', '1', or wildcard between the brackets, MSB first.
func decodeBits(tok string) (Byte, error) {
	if len(tok) != 10 || tok[len(tok)-1] != ']' {
		return Byte{}, fmt.Errorf("bit pattern must be 8 bit characters in brackets")
	}
	var value, mask byte
	for i := 0; i < 8; i++ {
		bit := byte(0x80) >> i
		switch c := tok[i+1]; {
		case c == '0':
			mask |= bit
		case c == '1':
			mask |= bit
			value |= bit
		case isWildcardChar(c):
		default:
			return Byte{}, fmt.Errorf("invalid bit character %q", c)
		}
	}
	return Byte{value: value, mask: mask}, nil
}
