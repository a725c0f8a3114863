package stl

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/chazu/pyblow/pkg/kernel"
)

// WriteBinary encodes m as binary STL. The mesh name goes into the header,
// truncated to 80 bytes.
//
// Faces are checked against the vertex array before anything is written.
// Write failures on w are returned wrapped and any partial output is left
// as is.
func WriteBinary(w io.Writer, m *kernel.Mesh) error {
	if err := m.CheckIndices(); err != nil {
		return fmt.Errorf("stl: %w", err)
	}
	if uint64(len(m.Faces)) > math.MaxUint32 {
		return ErrTooManyFacets
	}

	bw := bufio.NewWriter(w)

	hdr := header{Count: uint32(len(m.Faces))}
	copy(hdr.Text[:], m.Name)
	if err := binary.Write(bw, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("stl: write header: %w", err)
	}

	for i := range m.Faces {
		a, b, c := m.Triangle(i)
		rec := facet{
			Normal: vec32(kernel.FacetNormal(a, b, c)),
			V0:     vec32(a),
			V1:     vec32(b),
			V2:     vec32(c),
		}
		if err := binary.Write(bw, binary.LittleEndian, &rec); err != nil {
			return fmt.Errorf("stl: write facet %d: %w", i, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("stl: flush: %w", err)
	}
	return nil
}

// ReadBinary decodes a binary STL. Identical vertex positions are merged
// so faces index a shared vertex array; stored normals are discarded.
func ReadBinary(r io.Reader) (*kernel.Mesh, error) {
	var hdr header
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, readErr("header", err)
	}

	m := &kernel.Mesh{
		Name: strings.TrimRight(string(hdr.Text[:]), "\x00 "),
	}
	index := make(map[[3]float32]uint32)
	vertex := func(p [3]float32) uint32 {
		if idx, ok := index[p]; ok {
			return idx
		}
		idx := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices, vec64(p))
		index[p] = idx
		return idx
	}

	var rec facet
	for i := uint32(0); i < hdr.Count; i++ {
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, readErr(fmt.Sprintf("facet %d", i), err)
		}
		m.Faces = append(m.Faces, kernel.Face{vertex(rec.V0), vertex(rec.V1), vertex(rec.V2)})
	}
	return m, nil
}

func readErr(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: reading %s", ErrTruncated, what)
	}
	return fmt.Errorf("stl: read %s: %w", what, err)
}
