//go:build !linux

package reader

import (
	"fmt"
	"runtime"
)

// Process is only implemented on linux. On other platforms every search
// against it fails up front through Err.
type Process struct {
	pid int
}

// NewProcess returns a Source whose Err reports the missing platform
// support.
func NewProcess(pid int) *Process {
	return &Process{pid: pid}
}

// Pid returns the target process id.
func (r *Process) Pid() int { return r.pid }

func (r *Process) Err() error {
	return fmt.Errorf("reader: process memory reading is not supported on %s", runtime.GOOS)
}

func (r *Process) Read(addr uint64, p []byte) error {
	return r.Err()
}
