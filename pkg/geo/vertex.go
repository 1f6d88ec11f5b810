package geo

import "fmt"

// InsertVertex returns a new polygon with pt inserted at index. Valid
// indices run from 0 to Len inclusive. The input polygon is not modified.
func InsertVertex(p Polygon, index int, pt Point2D) (Polygon, error) {
	if index < 0 || index > len(p.Vertices) {
		return Polygon{}, fmt.Errorf("vertex index %d out of range [0, %d]", index, len(p.Vertices))
	}
	if !pt.IsFinite() {
		return Polygon{}, fmt.Errorf("vertex is not finite: (%v, %v)", pt.X, pt.Y)
	}
	pts := make([]Point2D, 0, len(p.Vertices)+1)
	pts = append(pts, p.Vertices[:index]...)
	pts = append(pts, pt)
	pts = append(pts, p.Vertices[index:]...)
	return Polygon{Vertices: pts, Closed: p.Closed}, nil
}

// RemoveVertex returns a new polygon with the vertex at index removed.
// Removal is rejected when the polygon is a triangle, the minimum valid
// shape; the input is returned unchanged alongside the error.
func RemoveVertex(p Polygon, index int) (Polygon, error) {
	if index < 0 || index >= len(p.Vertices) {
		return p, fmt.Errorf("vertex index %d out of range [0, %d)", index, len(p.Vertices))
	}
	if len(p.Vertices) <= MinVertices {
		return p, fmt.Errorf("%w: cannot remove from a triangle", ErrTooFewVertices)
	}
	pts := make([]Point2D, 0, len(p.Vertices)-1)
	pts = append(pts, p.Vertices[:index]...)
	pts = append(pts, p.Vertices[index+1:]...)
	return Polygon{Vertices: pts, Closed: p.Closed}, nil
}
