package reader

import (
	"fmt"
	"os"
)

// File is a Source over a file's contents, addressed by file offset. Reads
// use pread, so one File may serve concurrent workers without locking.
type File struct {
	path    string
	f       *os.File
	openErr error
}

// NewFile opens path for reading. An open failure is not returned here; it
// is deferred to Err so that a search against a missing file produces an
// error result instead of a construction error.
func NewFile(path string) *File {
	f, err := os.Open(path)
	if err != nil {
		return &File{path: path, openErr: fmt.Errorf("reader: open %s: %w", path, err)}
	}
	return &File{path: path, f: f}
}

// Size returns the current size of the file in bytes.
func (r *File) Size() (uint64, error) {
	if r.openErr != nil {
		return 0, r.openErr
	}
	info, err := r.f.Stat()
	if err != nil {
		return 0, fmt.Errorf("reader: stat %s: %w", r.path, err)
	}
	return uint64(info.Size()), nil
}

func (r *File) Err() error { return r.openErr }

func (r *File) Read(addr uint64, p []byte) error {
	if r.openErr != nil {
		return r.openErr
	}
	if _, err := r.f.ReadAt(p, int64(addr)); err != nil {
		return fmt.Errorf("reader: read %#x byte(s) at %#x in %s: %w", len(p), addr, r.path, err)
	}
	return nil
}

// Close releases the underlying file handle.
func (r *File) Close() error {
	if r.f == nil {
		return nil
	}
	return r.f.Close()
}
