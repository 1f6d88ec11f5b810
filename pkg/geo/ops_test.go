package geo

import (
	"math"
	"testing"
)

// --- Snap tests ---

func TestSnapToGrid(t *testing.T) {
	got, err := SnapToGrid(Pt(7.3, 2.9), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Pt(7, 3) {
		t.Errorf("expected (7,3), got (%v,%v)", got.X, got.Y)
	}
}

func TestSnapToGridHalfMeter(t *testing.T) {
	got, err := SnapToGrid(Pt(1.24, -0.8), 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approxEqual(got.X, 1.0, 1e-9) || !approxEqual(got.Y, -1.0, 1e-9) {
		t.Errorf("expected (1,-1), got (%v,%v)", got.X, got.Y)
	}
}

func TestSnapToGridIdempotent(t *testing.T) {
	for _, g := range []float64{0.1, 0.25, 0.5, 1, 2.5} {
		p := Pt(13.37, -42.1)
		once, err := SnapToGrid(p, g)
		if err != nil {
			t.Fatalf("grid %v: %v", g, err)
		}
		twice, err := SnapToGrid(once, g)
		if err != nil {
			t.Fatalf("grid %v: %v", g, err)
		}
		if once != twice {
			t.Errorf("grid %v not idempotent: %v != %v", g, once, twice)
		}
		// Snapped coordinates must be exact multiples of g.
		if r := math.Abs(math.Mod(once.X, g)); r > 1e-9 && math.Abs(r-g) > 1e-9 {
			t.Errorf("grid %v: %v is not a multiple", g, once.X)
		}
	}
}

func TestSnapToGridInvalidSize(t *testing.T) {
	if _, err := SnapToGrid(Pt(1, 1), 0); err == nil {
		t.Error("expected error for zero grid size")
	}
	if _, err := SnapToGrid(Pt(1, 1), -0.5); err == nil {
		t.Error("expected error for negative grid size")
	}
}

func TestSnapPolygon(t *testing.T) {
	p := NewPolygon(Pt(0.2, 0.1), Pt(9.8, -0.3), Pt(10.1, 10.4), Pt(-0.4, 9.9))
	snapped, err := SnapPolygon(p, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Point2D{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}
	for i, v := range snapped.Vertices {
		if v != want[i] {
			t.Errorf("vertex %d: expected %v, got %v", i, want[i], v)
		}
	}
	// Input must be untouched.
	if p.Vertices[0] != Pt(0.2, 0.1) {
		t.Error("SnapPolygon mutated its input")
	}
}

// --- Vertex edit tests ---

func TestInsertVertex(t *testing.T) {
	tri := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(0, 10))
	out, err := InsertVertex(tri, 1, Pt(5, -1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 4 {
		t.Fatalf("expected 4 vertices, got %d", out.Len())
	}
	if out.Vertices[1] != Pt(5, -1) {
		t.Errorf("expected inserted vertex at index 1, got %v", out.Vertices[1])
	}
	if tri.Len() != 3 {
		t.Error("InsertVertex mutated its input")
	}
}

func TestInsertVertexAtEnd(t *testing.T) {
	tri := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(0, 10))
	out, err := InsertVertex(tri, 3, Pt(-1, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Vertices[3] != Pt(-1, 5) {
		t.Errorf("expected appended vertex, got %v", out.Vertices[3])
	}
}

func TestInsertVertexOutOfRange(t *testing.T) {
	tri := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(0, 10))
	if _, err := InsertVertex(tri, 5, Pt(1, 1)); err == nil {
		t.Error("expected error for index past end")
	}
	if _, err := InsertVertex(tri, -1, Pt(1, 1)); err == nil {
		t.Error("expected error for negative index")
	}
}

func TestRemoveVertex(t *testing.T) {
	sq := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	out, err := RemoveVertex(sq, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 3 {
		t.Fatalf("expected 3 vertices, got %d", out.Len())
	}
	if sq.Len() != 4 {
		t.Error("RemoveVertex mutated its input")
	}
}

func TestRemoveVertexFromTriangle(t *testing.T) {
	tri := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(0, 10))
	out, err := RemoveVertex(tri, 0)
	if err == nil {
		t.Fatal("expected rejection removing from a triangle")
	}
	if out.Len() != 3 || out.Vertices[0] != Pt(0, 0) {
		t.Error("rejected removal must return the polygon unchanged")
	}
}
