package geo

import polyclip "github.com/akavel/polyclip-go"

func toPolyclip(p Polygon) polyclip.Polygon {
	c := make(polyclip.Contour, 0, len(p.Vertices))
	for _, v := range p.Vertices {
		c = append(c, polyclip.Point{X: v.X, Y: v.Y})
	}
	return polyclip.Polygon{c}
}

// IntersectionArea returns the area shared by the two polygons. Used to
// quantify overlap violations so the caller can report how much of the
// footprints collide, not just that they do.
func IntersectionArea(a, b Polygon) float64 {
	if a.IsEmpty() || b.IsEmpty() {
		return 0
	}
	result := toPolyclip(a).Construct(polyclip.INTERSECTION, toPolyclip(b))
	total := 0.0
	for _, contour := range result {
		pts := make([]Point2D, 0, len(contour))
		for _, pt := range contour {
			pts = append(pts, Point2D{X: pt.X, Y: pt.Y})
		}
		total += NewPolygon(pts...).Area()
	}
	return total
}
