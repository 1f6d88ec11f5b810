package model

import (
	"time"

	"github.com/smartmall/builder/pkg/geo"
)

// AreaType classifies what an area footprint is used for.
type AreaType string

const (
	AreaRetail    AreaType = "retail"
	AreaFood      AreaType = "food"
	AreaService   AreaType = "service"
	AreaAnchor    AreaType = "anchor"
	AreaCommon    AreaType = "common"
	AreaCorridor  AreaType = "corridor"
	AreaElevator  AreaType = "elevator"
	AreaEscalator AreaType = "escalator"
	AreaStairs    AreaType = "stairs"
	AreaRestroom  AreaType = "restroom"
	AreaStorage   AreaType = "storage"
	AreaOffice    AreaType = "office"
	AreaParking   AreaType = "parking"
	AreaOther     AreaType = "other"
)

// AreaTypes lists every known area type in display order.
var AreaTypes = []AreaType{
	AreaRetail, AreaFood, AreaService, AreaAnchor, AreaCommon, AreaCorridor,
	AreaElevator, AreaEscalator, AreaStairs, AreaRestroom, AreaStorage,
	AreaOffice, AreaParking, AreaOther,
}

// Valid reports whether t is a known area type.
func (t AreaType) Valid() bool {
	for _, known := range AreaTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsCirculation reports whether the type links floors vertically.
// Circulation areas carry a VerticalConnection.
func (t AreaType) IsCirculation() bool {
	return t == AreaElevator || t == AreaEscalator || t == AreaStairs
}

// IsShop reports whether the type is leasable shop space.
func (t AreaType) IsShop() bool {
	return t == AreaRetail || t == AreaFood || t == AreaService || t == AreaAnchor
}

// AreaStatus tracks the leasing lifecycle of an area.
type AreaStatus string

const (
	StatusAvailable  AreaStatus = "AVAILABLE"
	StatusLocked     AreaStatus = "LOCKED"
	StatusPending    AreaStatus = "PENDING"
	StatusAuthorized AreaStatus = "AUTHORIZED"
	StatusOccupied   AreaStatus = "OCCUPIED"
)

// Area is a store, corridor, or facility footprint on one floor.
type Area struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Type       AreaType          `json:"type"`
	Status     AreaStatus        `json:"status"`
	Shape      geo.Polygon       `json:"shape"`
	Color      string            `json:"color,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

// Floor is one level of the mall. A nil Shape inherits the project outline.
type Floor struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Level  int          `json:"level"`
	Height float64      `json:"height"`
	Shape  *geo.Polygon `json:"shape"`
	Areas  []Area       `json:"areas"`
}

// EffectiveShape returns the floor's own footprint, or the mall outline
// when the floor inherits it.
func (f *Floor) EffectiveShape(outline geo.Polygon) geo.Polygon {
	if f.Shape != nil {
		return *f.Shape
	}
	return outline
}

// VerticalConnection links one circulation-type area to the floors it
// serves. FloorIDs is kept sorted so exports are deterministic.
type VerticalConnection struct {
	AreaID   string   `json:"areaId"`
	Type     AreaType `json:"type"`
	FloorIDs []string `json:"floorIds"`
}

// MallProject is the root aggregate of the spatial model.
type MallProject struct {
	ID                 string               `json:"id"`
	Name               string               `json:"name"`
	Description        string               `json:"description,omitempty"`
	Outline            geo.Polygon          `json:"outline"`
	GridSize           float64              `json:"gridSize"`
	Unit               string               `json:"unit"`
	DefaultFloorHeight float64              `json:"defaultFloorHeight"`
	Floors             []Floor              `json:"floors"`
	Connections        []VerticalConnection `json:"connections"`
	Revision           int                  `json:"revision"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
}

// FloorByID returns the floor with the given id, or nil.
func (p *MallProject) FloorByID(id string) *Floor {
	for i := range p.Floors {
		if p.Floors[i].ID == id {
			return &p.Floors[i]
		}
	}
	return nil
}

// FloorByLevel returns the floor with the given level, or nil.
func (p *MallProject) FloorByLevel(level int) *Floor {
	for i := range p.Floors {
		if p.Floors[i].Level == level {
			return &p.Floors[i]
		}
	}
	return nil
}

// AreaByID returns the area with the given id and its floor, or nils.
func (p *MallProject) AreaByID(id string) (*Area, *Floor) {
	for i := range p.Floors {
		f := &p.Floors[i]
		for j := range f.Areas {
			if f.Areas[j].ID == id {
				return &f.Areas[j], f
			}
		}
	}
	return nil, nil
}

// ConnectionByArea returns the vertical connection owned by the given
// area, or nil.
func (p *MallProject) ConnectionByArea(areaID string) *VerticalConnection {
	for i := range p.Connections {
		if p.Connections[i].AreaID == areaID {
			return &p.Connections[i]
		}
	}
	return nil
}
