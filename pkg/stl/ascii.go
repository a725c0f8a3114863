package stl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chazu/pyblow/pkg/kernel"
)

// defaultSolidName is used when the mesh has no name.
const defaultSolidName = "mesh"

// WriteASCII encodes m as ASCII STL. Components are rounded to float32,
// the precision binary STL carries, and printed in %e notation.
func WriteASCII(w io.Writer, m *kernel.Mesh) error {
	if err := m.CheckIndices(); err != nil {
		return fmt.Errorf("stl: %w", err)
	}

	name := solidName(m.Name)
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "solid %s\n", name)
	for i := range m.Faces {
		a, b, c := m.Triangle(i)
		n := vec32(kernel.FacetNormal(a, b, c))
		fmt.Fprintf(bw, "  facet normal %e %e %e\n", n[0], n[1], n[2])
		fmt.Fprintf(bw, "    outer loop\n")
		for _, v := range [3][3]float32{vec32(a), vec32(b), vec32(c)} {
			fmt.Fprintf(bw, "      vertex %e %e %e\n", v[0], v[1], v[2])
		}
		fmt.Fprintf(bw, "    endloop\n")
		fmt.Fprintf(bw, "  endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)

	// bufio keeps the first write error; Flush reports it.
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("stl: write ascii: %w", err)
	}
	return nil
}

// solidName collapses whitespace so the name stays a single token.
func solidName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return defaultSolidName
	}
	return strings.Join(fields, "_")
}
