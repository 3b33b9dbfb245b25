// Package sigfile loads named signature definitions from YAML catalog
// files. A catalog entry pairs a stable id and a human-readable name with a
// signature in the pkg/sig textual format:
//
//	signatures:
//	  - id: magic.elf
//	    name: ELF header
//	    pattern: "7F 45 4C 46"
package sigfile

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/praetorian-inc/sigscan/pkg/sig"
)

// Definition is one named signature from a catalog, with its pattern
// already parsed.
type Definition struct {
	ID          string
	Name        string
	Pattern     string
	Description string
	References  []string
	Sig         sig.Signature
}

// Loader reads signature catalogs. The zero Loader is not usable; create
// one with NewLoader or NewLoaderWithFS.
type Loader struct {
	fs fs.FS
}

// NewLoader creates a loader over the embedded builtin catalogs.
func NewLoader() *Loader {
	return &Loader{fs: builtinFS}
}

// NewLoaderWithFS creates a loader over a custom filesystem.
func NewLoaderWithFS(fsys fs.FS) *Loader {
	return &Loader{fs: fsys}
}

// Load parses catalog YAML bytes. Every pattern must parse; a malformed
// pattern fails the whole catalog so no partial signature set is returned.
func (l *Loader) Load(data []byte) ([]*Definition, error) {
	var file yamlFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("sigfile: parsing YAML: %w", err)
	}

	defs := make([]*Definition, 0, len(file.Signatures))
	for _, ys := range file.Signatures {
		if ys.ID == "" {
			return nil, fmt.Errorf("sigfile: signature %q has no id", ys.Name)
		}
		parsed, err := sig.Parse(ys.Pattern)
		if err != nil {
			return nil, fmt.Errorf("sigfile: signature %s: %w", ys.ID, err)
		}
		defs = append(defs, &Definition{
			ID:          ys.ID,
			Name:        ys.Name,
			Pattern:     ys.Pattern,
			Description: ys.Description,
			References:  ys.References,
			Sig:         parsed,
		})
	}
	return defs, nil
}

// LoadFile loads a catalog from a YAML file on disk.
func (l *Loader) LoadFile(path string) ([]*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sigfile: reading %s: %w", path, err)
	}
	return l.Load(data)
}

// LoadDir loads every .yaml/.yml catalog under dir in the loader's
// filesystem, sorted by path.
func (l *Loader) LoadDir(dir string) ([]*Definition, error) {
	var defs []*Definition
	err := fs.WalkDir(l.fs, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
		default:
			return nil
		}
		data, err := fs.ReadFile(l.fs, path)
		if err != nil {
			return fmt.Errorf("sigfile: reading %s: %w", path, err)
		}
		fileDefs, err := l.Load(data)
		if err != nil {
			return fmt.Errorf("sigfile: %s: %w", path, err)
		}
		defs = append(defs, fileDefs...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return defs, nil
}

// LoadBuiltin loads the embedded builtin catalogs.
func (l *Loader) LoadBuiltin() ([]*Definition, error) {
	return l.LoadDir("builtin")
}

// Find returns the definition with the given id, or nil.
func Find(defs []*Definition, id string) *Definition {
	for _, d := range defs {
		if d.ID == id {
			return d
		}
	}
	return nil
}
