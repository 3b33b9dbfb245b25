//go:build linux

package reader

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Process is a Source over another process's virtual address space, read
// with process_vm_readv. Reading a foreign address space is inherently
// unchecked; all of that lives here so the search core only ever sees
// in-process buffers and plain integers.
//
// Reading most processes requires ptrace permission (same-user processes
// under the default Yama scope, or CAP_SYS_PTRACE).
type Process struct {
	pid     int
	openErr error
}

// NewProcess returns a Source reading from the process with the given pid.
// A nonexistent process is reported through Err, not here.
func NewProcess(pid int) *Process {
	p := &Process{pid: pid}
	if _, err := os.Stat(fmt.Sprintf("/proc/%d", pid)); err != nil {
		p.openErr = fmt.Errorf("reader: no such process %d: %w", pid, err)
	}
	return p
}

// Pid returns the target process id.
func (r *Process) Pid() int { return r.pid }

func (r *Process) Err() error { return r.openErr }

func (r *Process) Read(addr uint64, p []byte) error {
	if r.openErr != nil {
		return r.openErr
	}
	if len(p) == 0 {
		return nil
	}
	local := unix.Iovec{Base: &p[0]}
	local.SetLen(len(p))
	remote := unix.RemoteIovec{Base: uintptr(addr), Len: len(p)}
	n, err := unix.ProcessVMReadv(r.pid, []unix.Iovec{local}, []unix.RemoteIovec{remote}, 0)
	if err != nil {
		return fmt.Errorf("reader: process %d: read %#x byte(s) at %#x: %w", r.pid, len(p), addr, err)
	}
	if n != len(p) {
		return fmt.Errorf("reader: process %d: short read at %#x: %d of %d byte(s)", r.pid, addr, n, len(p))
	}
	return nil
}
