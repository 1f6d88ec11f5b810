package geo

import (
	"fmt"
	"math"
)

// SnapToGrid quantizes each coordinate of p to the nearest multiple of
// gridSize. Snapping is idempotent: a snapped point snaps to itself.
// A gridSize of zero or less is a caller bug, reported as an error rather
// than silently passing the point through.
func SnapToGrid(p Point2D, gridSize float64) (Point2D, error) {
	if gridSize <= 0 {
		return Point2D{}, fmt.Errorf("grid size must be > 0, got %v", gridSize)
	}
	return Point2D{
		X: math.Round(p.X/gridSize) * gridSize,
		Y: math.Round(p.Y/gridSize) * gridSize,
	}, nil
}

// SnapPolygon snaps every vertex of the polygon to the grid.
func SnapPolygon(p Polygon, gridSize float64) (Polygon, error) {
	out := p.Clone()
	for i, v := range out.Vertices {
		s, err := SnapToGrid(v, gridSize)
		if err != nil {
			return Polygon{}, err
		}
		out.Vertices[i] = s
	}
	return out, nil
}
