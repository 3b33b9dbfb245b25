package target

import (
	"github.com/praetorian-inc/sigscan/pkg/reader"
	"github.com/praetorian-inc/sigscan/pkg/search"
)

// FileTarget searches within a file's contents, addressed by file offset.
type FileTarget struct {
	path string
	src  *reader.File
}

// File opens path as a search target. An unreadable file is reported when a
// search is run, not here.
func File(path string) *FileTarget {
	return &FileTarget{path: path, src: reader.NewFile(path)}
}

// Source returns the file-backed data source.
func (t *FileTarget) Source() reader.Source { return t.src }

// InWhole covers the entire file.
func (t *FileTarget) InWhole() *search.Context {
	size, err := t.src.Size()
	if err != nil {
		return search.NewErrorContext(err.Error())
	}
	return search.NewContext(t.src, reader.Range{Start: 0, Size: size})
}

// InRange covers size bytes starting at the given file offset.
func (t *FileTarget) InRange(offset, size uint64) *search.Context {
	return search.NewContext(t.src, reader.Range{Start: offset, Size: size})
}

// Close releases the underlying file handle.
func (t *FileTarget) Close() error { return t.src.Close() }
