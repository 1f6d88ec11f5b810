package model

import (
	"github.com/dhconnelly/rtreego"

	"github.com/smartmall/builder/pkg/geo"
)

// areaEntry is the R-tree payload for one committed area footprint.
type areaEntry struct {
	id   string
	rect *rtreego.Rect
}

func (e *areaEntry) Bounds() *rtreego.Rect { return e.rect }

// boundsRect converts a polygon bounding box to an R-tree rect. Degenerate
// extents are padded so the rect stays valid.
func boundsRect(p geo.Polygon) (*rtreego.Rect, error) {
	const minExtent = 1e-9
	b := p.Bounds()
	w, h := b.Width(), b.Height()
	if w < minExtent {
		w = minExtent
	}
	if h < minExtent {
		h = minExtent
	}
	return rtreego.NewRect(rtreego.Point{b.MinX, b.MinY}, []float64{w, h})
}

// floorIndex holds the per-floor spatial index used to prefilter overlap
// candidates before the exact polygon tests run.
type floorIndex struct {
	tree    *rtreego.Rtree
	entries map[string]*areaEntry
}

func newFloorIndex() *floorIndex {
	return &floorIndex{
		tree:    rtreego.NewTree(2, 4, 16),
		entries: make(map[string]*areaEntry),
	}
}

func (fi *floorIndex) insert(id string, shape geo.Polygon) error {
	rect, err := boundsRect(shape)
	if err != nil {
		return err
	}
	entry := &areaEntry{id: id, rect: rect}
	fi.tree.Insert(entry)
	fi.entries[id] = entry
	return nil
}

func (fi *floorIndex) remove(id string) {
	if entry, ok := fi.entries[id]; ok {
		fi.tree.Delete(entry)
		delete(fi.entries, id)
	}
}

// candidates returns ids of areas whose bounding boxes intersect the
// candidate shape's box. Exact overlap still has to be confirmed.
func (fi *floorIndex) candidates(shape geo.Polygon) []string {
	rect, err := boundsRect(shape)
	if err != nil {
		return nil
	}
	hits := fi.tree.SearchIntersect(rect)
	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.(*areaEntry).id)
	}
	return ids
}
