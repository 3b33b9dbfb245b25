package target

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/praetorian-inc/sigscan/pkg/reader"
)

// Region is one mapped region of a process's address space.
type Region struct {
	Range reader.Range
	Perms Prot
	Path  string // backing file, or "" for anonymous mappings
}

// parseMaps decodes the /proc/<pid>/maps format: one region per line,
//
//	start-end perms offset dev inode [path]
//
// with start/end in unpadded hex. Lines that do not fit the format are an
// error; an anonymous mapping simply has no path column.
func parseMaps(r io.Reader) ([]Region, error) {
	var regions []Region
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 5 {
			return nil, fmt.Errorf("target: malformed maps line %q", line)
		}

		start, end, ok := strings.Cut(fields[0], "-")
		if !ok {
			return nil, fmt.Errorf("target: malformed maps range %q", fields[0])
		}
		startAddr, err := strconv.ParseUint(start, 16, 64)
		if err != nil {
			return nil, fmt.Errorf("target: malformed maps address %q: %w", start, err)
		}
		endAddr, err := strconv.ParseUint(end, 16, 64)
		if err != nil {
			return nil, fmt.Errorf("target: malformed maps address %q: %w", end, err)
		}
		if endAddr < startAddr {
			return nil, fmt.Errorf("target: inverted maps range %q", fields[0])
		}

		var path string
		if len(fields) >= 6 {
			path = fields[5]
		}

		regions = append(regions, Region{
			Range: reader.Range{Start: startAddr, Size: endAddr - startAddr},
			Perms: parsePerms(fields[1]),
			Path:  path,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("target: reading maps: %w", err)
	}
	return regions, nil
}

// parsePerms decodes the perms column ("r-xp").
func parsePerms(s string) Prot {
	var p Prot
	for _, c := range s {
		switch c {
		case 'r':
			p |= ProtRead
		case 'w':
			p |= ProtWrite
		case 'x':
			p |= ProtExec
		}
	}
	return p
}
