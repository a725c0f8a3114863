// Package export picks a mesh file format and writes a mesh in it.
package export

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/chazu/pyblow/pkg/kernel"
	"github.com/chazu/pyblow/pkg/stl"
	"github.com/samber/lo"
)

// Format selects the output encoding.
type Format int

const (
	FormatBinary Format = iota // binary STL (default)
	FormatASCII                // ASCII STL
	Format3MF                  // 3D Manufacturing Format package
)

var formatNames = map[string]Format{
	"binary": FormatBinary,
	"stl":    FormatBinary,
	"ascii":  FormatASCII,
	"3mf":    Format3MF,
}

func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "binary"
	case FormatASCII:
		return "ascii"
	case Format3MF:
		return "3mf"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatNames lists the accepted format names, sorted.
func FormatNames() []string {
	names := lo.Keys(formatNames)
	slices.Sort(names)
	return names
}

// ParseFormat maps a format name (case-insensitive) to a Format.
func ParseFormat(name string) (Format, error) {
	f, ok := formatNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("export: unknown format %q, expected one of %s",
			name, strings.Join(FormatNames(), ", "))
	}
	return f, nil
}

// FormatFromPath infers the format from a file extension. Anything other
// than .3mf is written as binary STL.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".3mf") {
		return Format3MF
	}
	return FormatBinary
}

// Resolve returns the named format, or the one implied by path when name
// is empty.
func Resolve(name, path string) (Format, error) {
	if strings.TrimSpace(name) == "" {
		return FormatFromPath(path), nil
	}
	return ParseFormat(name)
}

// Encode writes m to w in the given format.
func Encode(w io.Writer, m *kernel.Mesh, f Format) error {
	switch f {
	case FormatBinary:
		return stl.WriteBinary(w, m)
	case FormatASCII:
		return stl.WriteASCII(w, m)
	case Format3MF:
		return write3MF(w, m)
	default:
		return fmt.Errorf("export: unsupported format %v", f)
	}
}
