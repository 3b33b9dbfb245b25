package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesRead(t *testing.T) {
	src := NewBytes([]byte{0x10, 0x20, 0x30, 0x40}, 0x1000)
	require.NoError(t, src.Err())

	p := make([]byte, 2)
	require.NoError(t, src.Read(0x1001, p))
	assert.Equal(t, []byte{0x20, 0x30}, p)
}

func TestBytesRange(t *testing.T) {
	src := NewBytes(make([]byte, 0x40), 0x400000)
	assert.Equal(t, Range{Start: 0x400000, Size: 0x40}, src.Range())
	assert.Equal(t, uint64(0x400040), src.Range().End())
}

func TestBytesReadBounds(t *testing.T) {
	src := NewBytes([]byte{0x10, 0x20, 0x30, 0x40}, 0x1000)
	p := make([]byte, 2)

	assert.Error(t, src.Read(0xFFF, p), "below base")
	assert.Error(t, src.Read(0x1003, p), "past end")
	assert.Error(t, src.Read(0x1004, p), "at end")
	assert.NoError(t, src.Read(0x1002, p))
}

func TestBytesEmptyRead(t *testing.T) {
	src := NewBytes(nil, 0)
	assert.NoError(t, src.Read(0, nil))
}
