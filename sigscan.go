// Package sigscan locates masked byte signatures inside files, in-memory
// buffers, and process address spaces.
//
// A signature is a sequence of byte patterns with nibble- or bit-level
// wildcards, written as whitespace-separated tokens:
//
//	s := sigscan.MustParse("48 8B ?? 1A")
//
// Search a byte slice:
//
//	res, err := sigscan.ScanBytes(data, "E8 ?? ?? ?? ??")
//	for _, addr := range res.Matches {
//	    fmt.Printf("match at %#x\n", addr)
//	}
//
// For process-memory targets, module filtering, parallel searches, and
// signature catalogs, use the subpackages directly: pkg/target selects what
// to search, pkg/search runs it, pkg/sigfile loads catalogs.
package sigscan

import (
	"github.com/praetorian-inc/sigscan/pkg/reader"
	"github.com/praetorian-inc/sigscan/pkg/search"
	"github.com/praetorian-inc/sigscan/pkg/sig"
	"github.com/praetorian-inc/sigscan/pkg/target"
)

// Re-export the types most callers need, so simple uses only import the
// root package.
type (
	// Signature is an immutable sequence of masked byte patterns.
	Signature = sig.Signature

	// Result accumulates matched addresses, errors, and warnings from one
	// search.
	Result = search.Result

	// Range is a contiguous span of addresses to search.
	Range = reader.Range
)

// Parse converts signature text into a Signature.
func Parse(text string) (Signature, error) {
	return sig.Parse(text)
}

// MustParse is Parse for literals known at build time; it panics on
// malformed input.
func MustParse(text string) Signature {
	return sig.MustParse(text)
}

// ScanBytes searches data for the given signature text. Reported addresses
// are offsets into data.
func ScanBytes(data []byte, sigText string) (*Result, error) {
	s, err := sig.Parse(sigText)
	if err != nil {
		return nil, err
	}
	src := reader.NewBytes(data, 0)
	return search.NewContext(src, src.Range()).Search(s), nil
}

// ScanFile searches the whole file at path for the given signature text.
// Reported addresses are file offsets. Failures to open or read the file
// are recorded in the Result, not returned, matching the search contract.
func ScanFile(path, sigText string) (*Result, error) {
	s, err := sig.Parse(sigText)
	if err != nil {
		return nil, err
	}
	t := target.File(path)
	defer t.Close()
	return t.InWhole().Search(s), nil
}
