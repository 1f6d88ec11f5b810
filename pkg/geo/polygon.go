package geo

import (
	"errors"
	"fmt"
	"math"
)

// MinVertices is the smallest vertex count for a valid polygon.
const MinVertices = 3

// ErrTooFewVertices is returned when a polygon would drop below MinVertices.
var ErrTooFewVertices = errors.New("polygon needs at least 3 vertices")

// Polygon is a boundary defined by its vertices in drawing order.
// When Closed is true the boundary implicitly wraps from the last vertex
// back to the first.
type Polygon struct {
	Vertices []Point2D `json:"vertices" yaml:"vertices"`
	Closed   bool      `json:"isClosed" yaml:"isClosed"`
}

// NewPolygon creates a closed polygon from a list of vertices.
func NewPolygon(pts ...Point2D) Polygon {
	return Polygon{Vertices: pts, Closed: true}
}

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p.Vertices)
}

// IsEmpty returns true if the polygon has fewer than 3 vertices.
func (p Polygon) IsEmpty() bool {
	return len(p.Vertices) < MinVertices
}

// Clone returns a deep copy of the polygon.
func (p Polygon) Clone() Polygon {
	pts := make([]Point2D, len(p.Vertices))
	copy(pts, p.Vertices)
	return Polygon{Vertices: pts, Closed: p.Closed}
}

// Edge returns the i-th edge as (start, end). Wraps around.
func (p Polygon) Edge(i int) (Point2D, Point2D) {
	n := len(p.Vertices)
	return p.Vertices[i%n], p.Vertices[(i+1)%n]
}

// SignedArea returns the signed area using the shoelace formula.
// Positive for counterclockwise winding, negative for clockwise.
func (p Polygon) SignedArea() float64 {
	n := len(p.Vertices)
	if n < MinVertices {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += p.Vertices[i].X * p.Vertices[j].Y
		area -= p.Vertices[j].X * p.Vertices[i].Y
	}
	return area / 2
}

// Area returns the unsigned area of the polygon, independent of winding.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// Perimeter returns the total boundary length, wrapping last to first.
func (p Polygon) Perimeter() float64 {
	n := len(p.Vertices)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		total += p.Vertices[i].Distance(p.Vertices[j])
	}
	return total
}

// Centroid returns the area centroid of the polygon. Falls back to the
// vertex average for degenerate input.
func (p Polygon) Centroid() Point2D {
	n := len(p.Vertices)
	if n == 0 {
		return Point2D{}
	}
	a := p.SignedArea()
	if n < MinVertices || math.Abs(a) < 1e-12 {
		sum := Point2D{}
		for _, v := range p.Vertices {
			sum = sum.Add(v)
		}
		return sum.Scale(1.0 / float64(n))
	}
	cx, cy := 0.0, 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := p.Vertices[i].X*p.Vertices[j].Y - p.Vertices[j].X*p.Vertices[i].Y
		cx += (p.Vertices[i].X + p.Vertices[j].X) * cross
		cy += (p.Vertices[i].Y + p.Vertices[j].Y) * cross
	}
	f := 1.0 / (6.0 * a)
	return Point2D{cx * f, cy * f}
}

// BoundingBox is the axis-aligned extent of a polygon. Derived, never stored.
type BoundingBox struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// Width returns the X extent of the box.
func (b BoundingBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the Y extent of the box.
func (b BoundingBox) Height() float64 { return b.MaxY - b.MinY }

// Bounds returns the axis-aligned bounding box of the polygon.
// The zero box is returned for an empty vertex list; callers must guard.
func (p Polygon) Bounds() BoundingBox {
	if len(p.Vertices) == 0 {
		return BoundingBox{}
	}
	b := BoundingBox{
		MinX: p.Vertices[0].X, MinY: p.Vertices[0].Y,
		MaxX: p.Vertices[0].X, MaxY: p.Vertices[0].Y,
	}
	for _, v := range p.Vertices[1:] {
		if v.X < b.MinX {
			b.MinX = v.X
		}
		if v.Y < b.MinY {
			b.MinY = v.Y
		}
		if v.X > b.MaxX {
			b.MaxX = v.X
		}
		if v.Y > b.MaxY {
			b.MaxY = v.Y
		}
	}
	return b
}

// Contains returns true if the point is strictly inside the polygon using
// ray casting. The comparisons are fixed, so a point on an edge gets the
// same answer on every call. Degenerate polygons always return false.
func (p Polygon) Contains(pt Point2D) bool {
	n := len(p.Vertices)
	if n < MinVertices {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi := p.Vertices[i]
		vj := p.Vertices[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) &&
			pt.X < (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// OnBoundary returns true if the point lies on one of the polygon's edges.
func (p Polygon) OnBoundary(pt Point2D) bool {
	n := len(p.Vertices)
	if n < 2 {
		return false
	}
	for i := 0; i < n; i++ {
		a, b := p.Edge(i)
		if onSegment(pt, a, b) {
			return true
		}
	}
	return false
}

// Validate checks structural soundness: at least MinVertices vertices and
// all coordinates finite.
func (p Polygon) Validate() error {
	if len(p.Vertices) < MinVertices {
		return fmt.Errorf("%w (got %d)", ErrTooFewVertices, len(p.Vertices))
	}
	for i, v := range p.Vertices {
		if !v.IsFinite() {
			return fmt.Errorf("vertex %d is not finite: (%v, %v)", i, v.X, v.Y)
		}
	}
	return nil
}

// IsSimple returns true if no two non-adjacent edges properly cross.
// Containment and overlap predicates assume simple input; every commit
// path validates simplicity first.
func (p Polygon) IsSimple() bool {
	n := len(p.Vertices)
	if n < MinVertices {
		return false
	}
	for i := 0; i < n; i++ {
		a1, a2 := p.Edge(i)
		for j := i + 1; j < n; j++ {
			// Skip adjacent edges, including the wrap pair (0, n-1).
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			b1, b2 := p.Edge(j)
			if segmentsProperlyIntersect(a1, a2, b1, b2) {
				return false
			}
		}
	}
	return true
}
