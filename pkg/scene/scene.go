// Package scene assembles a render-ready document from a mall project.
// The output is a flat entity list with group indices, the shape a
// viewer wants for drawing extruded floor plans without walking the
// project tree itself.
package scene

import (
	"github.com/smartmall/builder/pkg/geo"
	"github.com/smartmall/builder/pkg/model"
)

// EntityType identifies the kind of entity.
type EntityType string

const (
	EntityFloorSlab EntityType = "floor_slab"
	EntityArea      EntityType = "area"
	EntityShaft     EntityType = "shaft"
)

// Entity is a single drawable element. Footprint is the 2D outline;
// Elevation and Height extrude it vertically.
type Entity struct {
	ID        string         `json:"id"`
	Type      EntityType     `json:"type"`
	Footprint geo.Polygon    `json:"footprint"`
	Elevation float64        `json:"elevation"`
	Height    float64        `json:"height"`
	Color     string         `json:"color"`
	FloorID   string         `json:"floorId,omitempty"`
	AreaType  model.AreaType `json:"areaType,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Graph is the complete scene output.
type Graph struct {
	Metadata Metadata `json:"metadata"`
	Entities []Entity `json:"entities"`
	Groups   Groups   `json:"groups"`
}

// Metadata holds scene-level information.
type Metadata struct {
	ProjectID   string          `json:"project_id"`
	ProjectName string          `json:"project_name"`
	Unit        string          `json:"unit"`
	Revision    int             `json:"revision"`
	GeneratedAt string          `json:"generated_at"`
	Bounds      geo.BoundingBox `json:"bounds"`
	TotalHeight float64         `json:"total_height"`
}

// Groups organizes entity IDs by various axes for fast filtering.
type Groups struct {
	Floors      map[string][]string         `json:"floors"`
	AreaTypes   map[model.AreaType][]string `json:"area_types"`
	EntityTypes map[EntityType][]string     `json:"entity_types"`
}

// NewGraph creates an empty scene graph.
func NewGraph() *Graph {
	return &Graph{
		Entities: []Entity{},
		Groups: Groups{
			Floors:      make(map[string][]string),
			AreaTypes:   make(map[model.AreaType][]string),
			EntityTypes: make(map[EntityType][]string),
		},
	}
}
