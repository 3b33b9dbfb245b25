package target

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/praetorian-inc/sigscan/pkg/reader"
	"github.com/praetorian-inc/sigscan/pkg/search"
)

// ProcessTarget searches within a process's virtual address space.
type ProcessTarget struct {
	pid int
	src *reader.Process
}

// Process returns a target for the process with the given pid.
func Process(pid int) *ProcessTarget {
	return &ProcessTarget{pid: pid, src: reader.NewProcess(pid)}
}

// ThisProcess returns a target for the current process.
func ThisProcess() *ProcessTarget {
	return Process(os.Getpid())
}

// Pid returns the target process id.
func (t *ProcessTarget) Pid() int { return t.pid }

// Source returns the process-memory data source.
func (t *ProcessTarget) Source() reader.Source { return t.src }

// InRange covers the given spans of the process's address space.
func (t *ProcessTarget) InRange(ranges ...reader.Range) *search.Context {
	return search.NewContext(t.src, ranges...)
}

// Regions lists the process's mapped regions from /proc/<pid>/maps.
func (t *ProcessTarget) Regions() ([]Region, error) {
	if err := t.src.Err(); err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/proc/%d/maps", t.pid)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("target: open %s: %w", path, err)
	}
	defer f.Close()
	return parseMaps(f)
}

// InModule covers every mapped region backed by the named module (matched
// against the base name of the mapping's backing file, e.g. "libc.so.6").
func (t *ProcessTarget) InModule(name string) *search.Context {
	return t.inModule(name, 0)
}

// InModuleProt is InModule restricted to regions carrying at least the
// given protection flags.
func (t *ProcessTarget) InModuleProt(name string, prot Prot) *search.Context {
	return t.inModule(name, prot)
}

func (t *ProcessTarget) inModule(name string, prot Prot) *search.Context {
	regions, err := t.Regions()
	if err != nil {
		return search.NewErrorContext(err.Error())
	}

	var ranges []reader.Range
	for _, reg := range regions {
		if reg.Path == "" || filepath.Base(reg.Path) != name {
			continue
		}
		if !reg.Perms.Has(prot) {
			continue
		}
		ranges = append(ranges, reg.Range)
	}
	if len(ranges) == 0 {
		return search.NewErrorContext(fmt.Sprintf("module %q not found in process %d", name, t.pid))
	}
	return search.NewContext(t.src, ranges...)
}
