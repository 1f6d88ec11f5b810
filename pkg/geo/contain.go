package geo

import "math"

const segEpsilon = 1e-9

// orient returns the orientation of c relative to the directed line a→b:
// positive for left (counterclockwise), negative for right, zero when
// collinear within segEpsilon.
func orient(a, b, c Point2D) float64 {
	v := b.Sub(a).Cross(c.Sub(a))
	if math.Abs(v) < segEpsilon {
		return 0
	}
	return v
}

// onSegment returns true if p lies on the closed segment a–b.
func onSegment(p, a, b Point2D) bool {
	if orient(a, b, p) != 0 {
		return false
	}
	return p.X >= math.Min(a.X, b.X)-segEpsilon && p.X <= math.Max(a.X, b.X)+segEpsilon &&
		p.Y >= math.Min(a.Y, b.Y)-segEpsilon && p.Y <= math.Max(a.Y, b.Y)+segEpsilon
}

// segmentsProperlyIntersect returns true when segments a1–a2 and b1–b2 cross
// at a single interior point of both. Touching at an endpoint or overlapping
// collinearly does not count.
func segmentsProperlyIntersect(a1, a2, b1, b2 Point2D) bool {
	d1 := orient(b1, b2, a1)
	d2 := orient(b1, b2, a2)
	d3 := orient(a1, a2, b1)
	d4 := orient(a1, a2, b2)
	return d1*d2 < 0 && d3*d4 < 0
}

// ContainsPolygon returns true if inner lies entirely within outer: every
// vertex of inner is inside or on the boundary of outer, and no edge of
// inner properly crosses an edge of outer. The edge check catches shapes
// whose vertices sit inside a concave outer boundary but whose edges bulge
// out of it. Either polygon with fewer than 3 vertices returns false.
func ContainsPolygon(inner, outer Polygon) bool {
	if inner.IsEmpty() || outer.IsEmpty() {
		return false
	}
	for _, v := range inner.Vertices {
		if !outer.Contains(v) && !outer.OnBoundary(v) {
			return false
		}
	}
	ni, no := inner.Len(), outer.Len()
	for i := 0; i < ni; i++ {
		a1, a2 := inner.Edge(i)
		for j := 0; j < no; j++ {
			b1, b2 := outer.Edge(j)
			if segmentsProperlyIntersect(a1, a2, b1, b2) {
				return false
			}
		}
	}
	return true
}

// Overlap returns true if the two polygons share interior area. Polygons
// that touch only along a boundary edge or at a vertex do not overlap.
// Both inputs are assumed simple; commit paths validate that first.
func Overlap(a, b Polygon) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return false
	}
	// Cheap reject on disjoint bounding boxes.
	ba, bb := a.Bounds(), b.Bounds()
	if ba.MaxX < bb.MinX || bb.MaxX < ba.MinX || ba.MaxY < bb.MinY || bb.MaxY < ba.MinY {
		return false
	}
	na, nb := a.Len(), b.Len()
	for i := 0; i < na; i++ {
		a1, a2 := a.Edge(i)
		for j := 0; j < nb; j++ {
			b1, b2 := b.Edge(j)
			if segmentsProperlyIntersect(a1, a2, b1, b2) {
				return true
			}
		}
	}
	// No edge crossings: one polygon may still be nested inside the other.
	// Boundary contact is excluded so shared edges stay non-overlapping.
	for _, v := range a.Vertices {
		if b.Contains(v) && !b.OnBoundary(v) {
			return true
		}
	}
	for _, v := range b.Vertices {
		if a.Contains(v) && !a.OnBoundary(v) {
			return true
		}
	}
	// Identical boundaries put every vertex on the other's edge set; the
	// centroid settles whether the interiors coincide.
	if ca := a.Centroid(); b.Contains(ca) && !b.OnBoundary(ca) {
		return true
	}
	if cb := b.Centroid(); a.Contains(cb) && !a.OnBoundary(cb) {
		return true
	}
	// A concave polygon's centroid can sit outside it (a U-shape's falls in
	// the notch), so for coincident concave boundaries measure the shared
	// region directly. Boundary-only contact still measures zero.
	return IntersectionArea(a, b) > segEpsilon
}
