package sig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExactBytes(t *testing.T) {
	s, err := Parse("11 22 33 AA BB CC")
	require.NoError(t, err)
	require.Equal(t, 6, s.Len())
	for i, want := range []byte{0x11, 0x22, 0x33, 0xAA, 0xBB, 0xCC} {
		assert.Equal(t, want, s.Bytes()[i].Value())
		assert.Equal(t, byte(0xFF), s.Bytes()[i].Mask())
	}
}

func TestParseCaseInsensitive(t *testing.T) {
	lower, err := Parse("1a b2 3c d4 5e 6f")
	require.NoError(t, err)
	upper, err := Parse("1A B2 3C D4 5E 6F")
	require.NoError(t, err)
	assert.True(t, lower.Equal(upper))
}

func TestParseWildcards(t *testing.T) {
	s, err := Parse("1A ?? 3C ** *E 6?")
	require.NoError(t, err)
	require.Equal(t, 6, s.Len())

	assert.Equal(t, Exact(0x1A), s.Bytes()[0])
	assert.Equal(t, Any(), s.Bytes()[1])
	assert.Equal(t, Exact(0x3C), s.Bytes()[2])
	assert.Equal(t, Any(), s.Bytes()[3])
	assert.Equal(t, LowNibble(0xE), s.Bytes()[4])
	assert.Equal(t, HighNibble(0x6), s.Bytes()[5])
}

func TestParseWildcardMarkersInterchangeable(t *testing.T) {
	for _, text := range []string{"?? 1*", "** 1?", "?* 1*", "*? 1?"} {
		s, err := Parse(text)
		require.NoError(t, err, text)
		assert.Equal(t, Any(), s.Bytes()[0], text)
		assert.Equal(t, HighNibble(0x1), s.Bytes()[1], text)
	}
}

func TestParseWhitespace(t *testing.T) {
	want, err := Parse("1A B2 3C D4")
	require.NoError(t, err)

	for _, text := range []string{
		"   1A B2 3C D4   ",
		"1A    B2   3C D4 ",
		"\t1A\tB2\n3C D4\n",
	} {
		s, err := Parse(text)
		require.NoError(t, err, text)
		assert.True(t, s.Equal(want), text)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		s, err := Parse(text)
		require.NoError(t, err)
		assert.Equal(t, 0, s.Len())
	}
}

func TestParseBitForm(t *testing.T) {
	s, err := Parse("[01001101]")
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, byte(0x4D), s.Bytes()[0].Value())
	assert.Equal(t, byte(0xFF), s.Bytes()[0].Mask())

	// MSB first, wildcard bits have zero mask bits.
	s, err = Parse("[1???????]")
	require.NoError(t, err)
	assert.Equal(t, byte(0x80), s.Bytes()[0].Value())
	assert.Equal(t, byte(0x80), s.Bytes()[0].Mask())

	s, err = Parse("[??????*1]")
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), s.Bytes()[0].Value())
	assert.Equal(t, byte(0x01), s.Bytes()[0].Mask())
}

func TestParseBitFormEquivalentToHex(t *testing.T) {
	bits, err := Parse("[01001101] [0100????]")
	require.NoError(t, err)
	hex, err := Parse("4D 4?")
	require.NoError(t, err)
	assert.True(t, bits.Equal(hex))
}

func TestParseErrors(t *testing.T) {
	for _, text := range []string{
		"1",          // token too short
		"123",        // token too long
		"1A 2",       // short token later in input
		"GG",         // not hex
		"1G",         // bad low nibble
		"G1",         // bad high nibble
		"?G",         // bad nibble next to wildcard
		"0x1A",       // hex prefix not allowed
		"[0100110]",  // 7 bits
		"[01001101",  // missing closing bracket
		"[01001102]", // bad bit character
		"[010011011]",
		"1A !B",
	} {
		_, err := Parse(text)
		assert.Error(t, err, "input %q", text)
	}
}

func TestParseNoPartialSignatureOnError(t *testing.T) {
	s, err := Parse("1A 2B ZZ")
	require.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

// Literal (MustParse) and runtime (Parse) decoding must stay bit-for-bit
// identical; they share one decoder and this guards against divergence.
func TestMustParseMatchesParse(t *testing.T) {
	for _, text := range []string{
		"",
		"7D DC ?B 9? *D ?? ** 24",
		"13 57 9B DF",
		"[01001101] ?? 1a",
	} {
		parsed, err := Parse(text)
		require.NoError(t, err)
		assert.True(t, parsed.Equal(MustParse(text)), "input %q", text)
	}
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("ZZ") })
}

func TestStringRoundTrip(t *testing.T) {
	for _, text := range []string{
		"11 22 33 AA BB CC",
		"1A ?? 3C ?E 6?",
		"[1??????0] 4D",
	} {
		s, err := Parse(text)
		require.NoError(t, err)
		back, err := Parse(s.String())
		require.NoError(t, err)
		assert.True(t, s.Equal(back), "input %q rendered %q", text, s.String())
	}
}
