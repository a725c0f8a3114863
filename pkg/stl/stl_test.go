package stl_test

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/chazu/pyblow/pkg/heightfield"
	"github.com/chazu/pyblow/pkg/kernel"
	"github.com/chazu/pyblow/pkg/stl"
	"github.com/chazu/pyblow/pkg/triangulate"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// bubbleMesh builds a mesh straight from the sampler and triangulator.
func bubbleMesh(length, width, height float64, resolution int) *kernel.Mesh {
	g := heightfield.Sample(length, width, height, resolution)
	return &kernel.Mesh{
		Vertices: g.Vertices,
		Faces:    triangulate.Triangulate(resolution),
		Name:     "bubble",
	}
}

func encodeBinary(t *testing.T, m *kernel.Mesh) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := stl.WriteBinary(&buf, m); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}
	return buf.Bytes()
}

// errWriter fails every write.
type errWriter struct{ err error }

func (w errWriter) Write(p []byte) (int, error) { return 0, w.err }

func TestBinaryScenarioSize(t *testing.T) {
	out := encodeBinary(t, bubbleMesh(10, 10, 2, 3))
	if len(out) != 484 {
		t.Fatalf("len = %d, want 484", len(out))
	}
	if got := binary.LittleEndian.Uint32(out[80:84]); got != 8 {
		t.Errorf("triangle count = %d, want 8", got)
	}
}

func TestBinarySizeInvariant(t *testing.T) {
	for _, r := range []int{0, 1, 2, 3, 10, 50} {
		m := bubbleMesh(96, 48, 12, r)
		out := encodeBinary(t, m)
		if want := stl.Size(len(m.Faces)); int64(len(out)) != want {
			t.Errorf("r=%d: len = %d, want %d", r, len(out), want)
		}
	}
}

func TestBinaryEmptyMesh(t *testing.T) {
	out := encodeBinary(t, &kernel.Mesh{})
	if len(out) != 84 {
		t.Fatalf("len = %d, want 84", len(out))
	}
	for i, b := range out {
		if b != 0 {
			t.Fatalf("byte %d = %#x, want 0", i, b)
		}
	}
}

func TestBinaryDeterministic(t *testing.T) {
	a := encodeBinary(t, bubbleMesh(96, 48, 12, 50))
	b := encodeBinary(t, bubbleMesh(96, 48, 12, 50))
	if !bytes.Equal(a, b) {
		t.Fatal("two encodings of the same parameters differ")
	}
}

func TestBinaryHeader(t *testing.T) {
	m := bubbleMesh(10, 10, 2, 2)
	m.Name = "pyblow test"
	out := encodeBinary(t, m)
	if got := string(out[:len(m.Name)]); got != m.Name {
		t.Errorf("header text = %q, want %q", got, m.Name)
	}
	for i := len(m.Name); i < stl.HeaderSize; i++ {
		if out[i] != 0 {
			t.Fatalf("header byte %d = %#x, want zero padding", i, out[i])
		}
	}

	m.Name = strings.Repeat("x", 200)
	out = encodeBinary(t, m)
	if int64(len(out)) != stl.Size(2) {
		t.Errorf("long name changed file size: %d", len(out))
	}
}

func TestBinaryRecordLayout(t *testing.T) {
	m := &kernel.Mesh{
		Vertices: []v3.Vec{{X: 0, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 0, Y: 2, Z: 0}},
		Faces:    []kernel.Face{{0, 1, 2}},
	}
	out := encodeBinary(t, m)
	rec := out[84:]
	if len(rec) != stl.RecordSize {
		t.Fatalf("record length = %d, want %d", len(rec), stl.RecordSize)
	}
	want := []float32{
		0, 0, 1, // normal
		0, 0, 0, // vertex 0
		2, 0, 0, // vertex 1
		0, 2, 0, // vertex 2
	}
	for k, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(rec[4*k:]))
		if got != w {
			t.Errorf("float %d = %v, want %v", k, got, w)
		}
	}
	if attr := binary.LittleEndian.Uint16(rec[48:]); attr != 0 {
		t.Errorf("attribute = %d, want 0", attr)
	}
}

func TestBinaryDegenerateNormalIsZero(t *testing.T) {
	m := &kernel.Mesh{
		Vertices: []v3.Vec{{X: 0}, {X: 1}, {X: 2}},
		Faces:    []kernel.Face{{0, 1, 2}},
	}
	out := encodeBinary(t, m)
	for k := 0; k < 3; k++ {
		if got := math.Float32frombits(binary.LittleEndian.Uint32(out[84+4*k:])); got != 0 {
			t.Errorf("normal[%d] = %v, want 0", k, got)
		}
	}
}

func TestBinaryIndexOutOfRange(t *testing.T) {
	m := &kernel.Mesh{
		Vertices: []v3.Vec{{}, {X: 1}},
		Faces:    []kernel.Face{{0, 1, 2}},
	}
	var buf bytes.Buffer
	err := stl.WriteBinary(&buf, m)
	if !errors.Is(err, kernel.ErrIndexOutOfRange) {
		t.Fatalf("err = %v, want ErrIndexOutOfRange", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes for an invalid mesh", buf.Len())
	}
}

func TestWriteFailureSurfaces(t *testing.T) {
	diskFull := errors.New("disk full")
	m := bubbleMesh(96, 48, 12, 20)

	if err := stl.WriteBinary(errWriter{diskFull}, m); !errors.Is(err, diskFull) {
		t.Errorf("WriteBinary err = %v, want wrapped disk full", err)
	}
	if err := stl.WriteASCII(errWriter{diskFull}, m); !errors.Is(err, diskFull) {
		t.Errorf("WriteASCII err = %v, want wrapped disk full", err)
	}
}

func TestReadBinaryRoundTrip(t *testing.T) {
	m := bubbleMesh(96, 48, 12, 9)
	got, err := stl.ReadBinary(bytes.NewReader(encodeBinary(t, m)))
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}
	if got.Name != m.Name {
		t.Errorf("Name = %q, want %q", got.Name, m.Name)
	}
	if got.TriangleCount() != m.TriangleCount() {
		t.Fatalf("TriangleCount = %d, want %d", got.TriangleCount(), m.TriangleCount())
	}
	if got.VertexCount() != m.VertexCount() {
		t.Errorf("VertexCount = %d, want %d (shared vertices merged)", got.VertexCount(), m.VertexCount())
	}
	for i := range m.Faces {
		wa, wb, wc := m.Triangle(i)
		ga, gb, gc := got.Triangle(i)
		for k, pair := range [3][2]v3.Vec{{wa, ga}, {wb, gb}, {wc, gc}} {
			want := v3.Vec{X: float64(float32(pair[0].X)), Y: float64(float32(pair[0].Y)), Z: float64(float32(pair[0].Z))}
			if pair[1] != want {
				t.Fatalf("face %d vertex %d = %v, want %v", i, k, pair[1], want)
			}
		}
	}
}

func TestReadBinaryTruncated(t *testing.T) {
	out := encodeBinary(t, bubbleMesh(10, 10, 2, 3))
	for _, n := range []int{0, 50, 84, 84 + 49, len(out) - 1} {
		_, err := stl.ReadBinary(bytes.NewReader(out[:n]))
		if !errors.Is(err, stl.ErrTruncated) {
			t.Errorf("len %d: err = %v, want ErrTruncated", n, err)
		}
	}
}

func TestASCIIStructure(t *testing.T) {
	m := bubbleMesh(10, 10, 2, 3)
	m.Name = "my bubble"
	var buf bytes.Buffer
	if err := stl.WriteASCII(&buf, m); err != nil {
		t.Fatalf("WriteASCII: %v", err)
	}

	var lines []string
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		lines = append(lines, strings.TrimSpace(sc.Text()))
	}
	if len(lines) != 2+7*8 {
		t.Fatalf("got %d lines, want %d", len(lines), 2+7*8)
	}
	if lines[0] != "solid my_bubble" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[len(lines)-1] != "endsolid my_bubble" {
		t.Errorf("last line = %q", lines[len(lines)-1])
	}

	counts := map[string]int{}
	for _, l := range lines[1 : len(lines)-1] {
		counts[strings.Fields(l)[0]]++
	}
	want := map[string]int{"facet": 8, "outer": 8, "vertex": 24, "endloop": 8, "endfacet": 8}
	for k, n := range want {
		if counts[k] != n {
			t.Errorf("%q lines = %d, want %d", k, counts[k], n)
		}
	}

	// First facet of the scenario is (-5,-5,0) (0,-5,0) (-5,0,0): flat, facing +z.
	if lines[1] != "facet normal 0.000000e+00 0.000000e+00 1.000000e+00" {
		t.Errorf("first facet line = %q", lines[1])
	}
	if lines[3] != "vertex -5.000000e+00 -5.000000e+00 0.000000e+00" {
		t.Errorf("first vertex line = %q", lines[3])
	}
}

func TestASCIIDefaultName(t *testing.T) {
	var buf bytes.Buffer
	if err := stl.WriteASCII(&buf, &kernel.Mesh{}); err != nil {
		t.Fatalf("WriteASCII: %v", err)
	}
	if got := buf.String(); got != "solid mesh\nendsolid mesh\n" {
		t.Errorf("output = %q", got)
	}
}
