package sigfile

import "embed"

// builtinFS holds the catalogs shipped with the library.
//
//go:embed builtin
var builtinFS embed.FS
