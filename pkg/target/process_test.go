//go:build linux

package target

import (
	"os"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/sigscan/pkg/reader"
	"github.com/praetorian-inc/sigscan/pkg/sig"
)

func TestThisProcessInRange(t *testing.T) {
	// Search a buffer in our own address space through the process target.
	data := []byte{0x00, 0x13, 0x57, 0x9B, 0xDF, 0x00, 0x13, 0x57, 0x9B, 0xDF}
	addr := uint64(uintptr(unsafe.Pointer(&data[0])))

	tgt := ThisProcess()
	assert.Equal(t, os.Getpid(), tgt.Pid())

	res := tgt.InRange(reader.Range{Start: addr, Size: uint64(len(data))}).
		Search(sig.MustParse("13 57 9B DF"))
	assert.Equal(t, []uint64{addr + 1, addr + 6}, res.Matches)
	assert.False(t, res.HasErrors())
}

func TestThisProcessRegions(t *testing.T) {
	regions, err := ThisProcess().Regions()
	require.NoError(t, err)
	require.NotEmpty(t, regions)

	// The test binary itself must be mapped executable somewhere.
	exe, err := os.Executable()
	require.NoError(t, err)
	var found bool
	for _, reg := range regions {
		if reg.Path == exe && reg.Perms.Has(ProtExec) {
			found = true
		}
	}
	assert.True(t, found, "no executable mapping of %s", exe)
}

func TestInModuleNotFound(t *testing.T) {
	res := ThisProcess().InModule("no-such-module.so").Search(sig.MustParse("13 57"))
	assert.Empty(t, res.Matches)
	require.True(t, res.HasErrors())
	assert.Contains(t, res.Errors[0], "no-such-module.so")
}

func TestProcessTargetMissingPid(t *testing.T) {
	tgt := Process(1 << 30)
	res := tgt.InRange(reader.Range{Start: 0, Size: 0x1000}).Search(sig.MustParse("13 57"))
	assert.Empty(t, res.Matches)
	assert.True(t, res.HasErrors())

	_, err := tgt.Regions()
	assert.Error(t, err)
}
