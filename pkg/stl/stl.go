// Package stl encodes triangle meshes as STL files, binary or ASCII, and
// reads binary STL back for verification.
//
// Binary layout, all little-endian:
//
//	[80]byte  header, free-form, zero padded
//	uint32    triangle count
//	per triangle:
//	  [3]float32 normal
//	  [3]float32 vertex 0, vertex 1, vertex 2
//	  uint16     attribute byte count, always 0
//
// so a binary file is exactly 84 + 50*faces bytes.
package stl

import (
	"errors"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

const (
	// HeaderSize is the length of the free-form binary header.
	HeaderSize = 80
	// RecordSize is the length of one binary triangle record.
	RecordSize = 50
)

var (
	// ErrTruncated is returned when binary input ends before the
	// advertised number of triangles has been read.
	ErrTruncated = errors.New("stl: truncated binary data")
	// ErrTooManyFacets is returned when a mesh has more triangles than
	// the binary count field can hold.
	ErrTooManyFacets = errors.New("stl: triangle count exceeds uint32")
)

// header is the fixed binary preamble.
type header struct {
	Text  [HeaderSize]byte
	Count uint32
}

// facet is one binary triangle record.
type facet struct {
	Normal, V0, V1, V2 [3]float32
	Attr               uint16
}

// Size returns the exact byte length of a binary STL with the given
// number of triangles.
func Size(faces int) int64 {
	return HeaderSize + 4 + RecordSize*int64(faces)
}

func vec32(v v3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func vec64(v [3]float32) v3.Vec {
	return v3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}
