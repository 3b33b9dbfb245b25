package sig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteConstructors(t *testing.T) {
	b := Exact(0xAB)
	assert.Equal(t, byte(0xAB), b.Value())
	assert.Equal(t, byte(0xFF), b.Mask())

	b = Any()
	assert.Equal(t, byte(0x00), b.Value())
	assert.Equal(t, byte(0x00), b.Mask())

	b = HighNibble(0x1)
	assert.Equal(t, byte(0x10), b.Value())
	assert.Equal(t, byte(0xF0), b.Mask())

	b = LowNibble(0xB)
	assert.Equal(t, byte(0x0B), b.Value())
	assert.Equal(t, byte(0x0F), b.Mask())
}

func TestMaskedEnforcesInvariant(t *testing.T) {
	b, err := Masked(0x0C, 0x0F)
	require.NoError(t, err)
	assert.Equal(t, byte(0x0C), b.Value())

	// Value bits outside the mask are rejected, not silently cleared.
	_, err = Masked(0x1C, 0x0F)
	assert.Error(t, err)

	_, err = Masked(0xFF, 0x00)
	assert.Error(t, err)
}

func TestByteMatchMaskSemantics(t *testing.T) {
	// (value=0x0C, mask=0x0F) matches any byte whose low nibble is C.
	b, err := Masked(0x0C, 0x0F)
	require.NoError(t, err)
	assert.True(t, b.Match(0x1C))
	assert.True(t, b.Match(0xAC))
	assert.True(t, b.Match(0x0C))
	assert.False(t, b.Match(0x1B))

	// Full wildcard matches every value.
	w := Any()
	for v := 0; v < 256; v++ {
		assert.True(t, w.Match(byte(v)))
	}

	e := Exact(0x7F)
	assert.True(t, e.Match(0x7F))
	assert.False(t, e.Match(0x7E))
}

func TestByteString(t *testing.T) {
	assert.Equal(t, "AB", Exact(0xAB).String())
	assert.Equal(t, "1?", HighNibble(0x1).String())
	assert.Equal(t, "?B", LowNibble(0xB).String())
	assert.Equal(t, "??", Any().String())

	b, err := Masked(0x80, 0x81)
	require.NoError(t, err)
	assert.Equal(t, "[1??????0]", b.String())
}

func TestSignatureEquality(t *testing.T) {
	a := New(Exact(0x01), Any(), HighNibble(0x2))
	b := New(Exact(0x01), Any(), HighNibble(0x2))
	c := New(Exact(0x01), Any(), HighNibble(0x3))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(Signature{}))
	assert.True(t, Signature{}.Equal(New()))
}

func TestSignatureZeroValue(t *testing.T) {
	var s Signature
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "", s.String())
}

func TestNewCopiesPatterns(t *testing.T) {
	patterns := []Byte{Exact(0x01), Exact(0x02)}
	s := New(patterns...)
	patterns[0] = Exact(0xFF)
	assert.Equal(t, byte(0x01), s.Bytes()[0].Value())
}
