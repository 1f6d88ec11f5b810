package scene

import (
	"fmt"
	"sort"
	"time"

	"github.com/smartmall/builder/pkg/geo"
	"github.com/smartmall/builder/pkg/model"
)

const slabThickness = 0.3 // meters

// typeColors are the default fill colors per area type. An explicit
// Area.Color wins over these.
var typeColors = map[model.AreaType]string{
	model.AreaRetail:    "#4e79a7",
	model.AreaFood:      "#f28e2b",
	model.AreaService:   "#76b7b2",
	model.AreaAnchor:    "#59a14f",
	model.AreaCommon:    "#bab0ac",
	model.AreaCorridor:  "#d4d4d4",
	model.AreaElevator:  "#b07aa1",
	model.AreaEscalator: "#9c755f",
	model.AreaStairs:    "#8c8c8c",
	model.AreaRestroom:  "#86bcb6",
	model.AreaStorage:   "#a0a0a0",
	model.AreaOffice:    "#edc948",
	model.AreaParking:   "#79706e",
	model.AreaOther:     "#e0e0e0",
}

const (
	slabColor  = "#c8c2b8"
	shaftColor = "#5a5a5a"
)

// Assemble converts a project into a scene graph: one slab per floor at
// its stacked elevation, one extrusion per area, and one shaft per
// vertical connection spanning its floors.
func Assemble(p *model.MallProject) (*Graph, error) {
	if p == nil {
		return nil, fmt.Errorf("project is nil")
	}
	g := NewGraph()

	elevations, total := stackFloors(p)
	assembleFloors(p, elevations, g)
	assembleShafts(p, elevations, g)

	g.Metadata = Metadata{
		ProjectID:   p.ID,
		ProjectName: p.Name,
		Unit:        p.Unit,
		Revision:    p.Revision,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Bounds:      p.Outline.Bounds(),
		TotalHeight: total,
	}
	return g, nil
}

// stackFloors assigns each floor an elevation by stacking heights in
// level order, the lowest level resting at zero. Returns the elevation
// per floor ID and the total stack height.
func stackFloors(p *model.MallProject) (map[string]float64, float64) {
	ordered := make([]*model.Floor, 0, len(p.Floors))
	for i := range p.Floors {
		ordered = append(ordered, &p.Floors[i])
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Level < ordered[j].Level })

	elevations := make(map[string]float64, len(ordered))
	elev := 0.0
	for _, f := range ordered {
		elevations[f.ID] = elev
		elev += f.Height
	}
	return elevations, elev
}

func assembleFloors(p *model.MallProject, elevations map[string]float64, g *Graph) {
	for i := range p.Floors {
		f := &p.Floors[i]
		footprint := f.EffectiveShape(p.Outline)
		elev := elevations[f.ID]

		addEntity(g, Entity{
			ID:        fmt.Sprintf("%s_slab", f.ID),
			Type:      EntityFloorSlab,
			Footprint: footprint,
			Elevation: elev,
			Height:    slabThickness,
			Color:     slabColor,
			FloorID:   f.ID,
			Metadata: map[string]any{
				"level":   f.Level,
				"name":    f.Name,
				"area":    footprint.Area(),
				"imprint": f.Shape != nil,
			},
		})

		for j := range f.Areas {
			a := &f.Areas[j]
			color := a.Color
			if color == "" {
				color = typeColors[a.Type]
			}
			addEntity(g, Entity{
				ID:        a.ID,
				Type:      EntityArea,
				Footprint: a.Shape,
				Elevation: elev + slabThickness,
				Height:    f.Height - slabThickness,
				Color:     color,
				FloorID:   f.ID,
				AreaType:  a.Type,
				Metadata: map[string]any{
					"name":      a.Name,
					"status":    string(a.Status),
					"area":      a.Shape.Area(),
					"perimeter": a.Shape.Perimeter(),
				},
			})
		}
	}
}

// assembleShafts draws one continuous extrusion per vertical connection,
// from the lowest spanned floor's elevation to the top of the highest.
func assembleShafts(p *model.MallProject, elevations map[string]float64, g *Graph) {
	for i := range p.Connections {
		c := &p.Connections[i]
		area, _ := p.AreaByID(c.AreaID)
		if area == nil || len(c.FloorIDs) < 2 {
			continue
		}

		var footprint geo.Polygon = area.Shape
		bottom, top := shaftExtent(p, c.FloorIDs, elevations)
		if top <= bottom {
			continue
		}

		addEntity(g, Entity{
			ID:        fmt.Sprintf("%s_shaft", c.AreaID),
			Type:      EntityShaft,
			Footprint: footprint,
			Elevation: bottom,
			Height:    top - bottom,
			Color:     shaftColor,
			AreaType:  c.Type,
			Metadata: map[string]any{
				"floor_ids": c.FloorIDs,
			},
		})
	}
}

func shaftExtent(p *model.MallProject, floorIDs []string, elevations map[string]float64) (bottom, top float64) {
	first := true
	for _, id := range floorIDs {
		f := p.FloorByID(id)
		if f == nil {
			continue
		}
		lo := elevations[f.ID]
		hi := lo + f.Height
		if first {
			bottom, top = lo, hi
			first = false
			continue
		}
		if lo < bottom {
			bottom = lo
		}
		if hi > top {
			top = hi
		}
	}
	return bottom, top
}

// addEntity appends an entity and updates all group indices.
func addEntity(g *Graph, e Entity) {
	g.Entities = append(g.Entities, e)
	id := e.ID

	if e.FloorID != "" {
		g.Groups.Floors[e.FloorID] = append(g.Groups.Floors[e.FloorID], id)
	}
	if e.AreaType != "" {
		g.Groups.AreaTypes[e.AreaType] = append(g.Groups.AreaTypes[e.AreaType], id)
	}
	g.Groups.EntityTypes[e.Type] = append(g.Groups.EntityTypes[e.Type], id)
}
