//go:build linux

package reader

import (
	"os"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessReadSelf(t *testing.T) {
	// Read our own address space through the process source and compare
	// against the buffer read directly.
	data := []byte{0x13, 0x57, 0x9B, 0xDF, 0x2C, 0x6A}
	addr := uint64(uintptr(unsafe.Pointer(&data[0])))

	src := NewProcess(os.Getpid())
	require.NoError(t, src.Err())
	assert.Equal(t, os.Getpid(), src.Pid())

	p := make([]byte, len(data))
	require.NoError(t, src.Read(addr, p))
	assert.Equal(t, data, p)
}

func TestProcessReadBadAddress(t *testing.T) {
	src := NewProcess(os.Getpid())
	require.NoError(t, src.Err())

	assert.Error(t, src.Read(1, make([]byte, 8)))
}

func TestProcessEmptyRead(t *testing.T) {
	src := NewProcess(os.Getpid())
	assert.NoError(t, src.Read(0, nil))
}

func TestProcessMissingPid(t *testing.T) {
	// Pid values beyond the kernel's pid space never exist.
	src := NewProcess(1 << 30)
	require.Error(t, src.Err())
	assert.Error(t, src.Read(0, make([]byte, 1)))
}
