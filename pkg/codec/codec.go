// Package codec serializes a MallProject to the versioned JSON document
// format and back. Export is deterministic, and Import never returns a
// partially-populated project: the document is validated structurally
// before any model type is built.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/smartmall/builder/pkg/geo"
	"github.com/smartmall/builder/pkg/model"
)

// Version is the document format version written by Export and required
// by Import.
const Version = 1

type document struct {
	Version     int            `json:"version"`
	Mall        mallSection    `json:"mall"`
	Floors      []floorSection `json:"floors"`
	Connections []connSection  `json:"connections"`
}

type mallSection struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	Description        string      `json:"description,omitempty"`
	Outline            geo.Polygon `json:"outline"`
	GridSize           float64     `json:"gridSize"`
	Unit               string      `json:"unit"`
	DefaultFloorHeight float64     `json:"defaultFloorHeight"`
	Revision           int         `json:"revision"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
}

type floorSection struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Level  int           `json:"level"`
	Height float64       `json:"height"`
	Shape  *geo.Polygon  `json:"shape"`
	Areas  []areaSection `json:"areas"`
}

type areaSection struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	Status     string            `json:"status"`
	Shape      geo.Polygon       `json:"shape"`
	Color      string            `json:"color,omitempty"`
	Properties map[string]string `json:"properties"`
}

type connSection struct {
	AreaID   string   `json:"areaId"`
	Type     string   `json:"type"`
	FloorIDs []string `json:"floorIds"`
}

// Export serializes the full project tree with a version field. Field
// order is fixed by the document structs, so equal projects produce
// byte-identical output.
func Export(p *model.MallProject) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("project is nil")
	}
	doc := document{
		Version: Version,
		Mall: mallSection{
			ID:                 p.ID,
			Name:               p.Name,
			Description:        p.Description,
			Outline:            p.Outline,
			GridSize:           p.GridSize,
			Unit:               p.Unit,
			DefaultFloorHeight: p.DefaultFloorHeight,
			Revision:           p.Revision,
			CreatedAt:          p.CreatedAt,
			UpdatedAt:          p.UpdatedAt,
		},
	}
	for _, f := range p.Floors {
		fs := floorSection{
			ID:     f.ID,
			Name:   f.Name,
			Level:  f.Level,
			Height: f.Height,
			Shape:  f.Shape,
			Areas:  []areaSection{},
		}
		for _, a := range f.Areas {
			fs.Areas = append(fs.Areas, areaSection{
				ID:         a.ID,
				Name:       a.Name,
				Type:       string(a.Type),
				Status:     string(a.Status),
				Shape:      a.Shape,
				Color:      a.Color,
				Properties: a.Properties,
			})
		}
		doc.Floors = append(doc.Floors, fs)
	}
	doc.Connections = []connSection{}
	for _, c := range p.Connections {
		doc.Connections = append(doc.Connections, connSection{
			AreaID:   c.AreaID,
			Type:     string(c.Type),
			FloorIDs: c.FloorIDs,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding project: %w", err)
	}
	return buf.Bytes(), nil
}

// Import parses and structurally validates a document. Any violation is
// returned as an error with nothing built.
func Import(data []byte) (*model.MallProject, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing project document: %w", err)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("unsupported document version %d (want %d)", doc.Version, Version)
	}
	if err := validateDocument(&doc); err != nil {
		return nil, err
	}

	p := &model.MallProject{
		ID:                 doc.Mall.ID,
		Name:               doc.Mall.Name,
		Description:        doc.Mall.Description,
		Outline:            doc.Mall.Outline,
		GridSize:           doc.Mall.GridSize,
		Unit:               doc.Mall.Unit,
		DefaultFloorHeight: doc.Mall.DefaultFloorHeight,
		Revision:           doc.Mall.Revision,
		CreatedAt:          doc.Mall.CreatedAt,
		UpdatedAt:          doc.Mall.UpdatedAt,
	}
	for _, fs := range doc.Floors {
		f := model.Floor{
			ID:     fs.ID,
			Name:   fs.Name,
			Level:  fs.Level,
			Height: fs.Height,
			Shape:  fs.Shape,
			Areas:  []model.Area{},
		}
		for _, as := range fs.Areas {
			f.Areas = append(f.Areas, model.Area{
				ID:         as.ID,
				Name:       as.Name,
				Type:       model.AreaType(as.Type),
				Status:     model.AreaStatus(as.Status),
				Shape:      as.Shape,
				Color:      as.Color,
				Properties: as.Properties,
			})
		}
		p.Floors = append(p.Floors, f)
	}
	p.Connections = []model.VerticalConnection{}
	for _, cs := range doc.Connections {
		p.Connections = append(p.Connections, model.VerticalConnection{
			AreaID:   cs.AreaID,
			Type:     model.AreaType(cs.Type),
			FloorIDs: cs.FloorIDs,
		})
	}
	return p, nil
}

func validateDocument(doc *document) error {
	m := &doc.Mall
	if m.ID == "" {
		return fmt.Errorf("mall.id is required")
	}
	if m.Name == "" {
		return fmt.Errorf("mall.name is required")
	}
	if m.GridSize <= 0 {
		return fmt.Errorf("mall.gridSize must be > 0 (got %v)", m.GridSize)
	}
	if err := m.Outline.Validate(); err != nil {
		return fmt.Errorf("mall.outline: %w", err)
	}

	levels := make(map[int]bool, len(doc.Floors))
	floorIDs := make(map[string]bool, len(doc.Floors))
	areaIDs := make(map[string]bool)
	for i, f := range doc.Floors {
		if f.ID == "" {
			return fmt.Errorf("floors[%d].id is required", i)
		}
		if floorIDs[f.ID] {
			return fmt.Errorf("floors[%d]: duplicate floor id %s", i, f.ID)
		}
		floorIDs[f.ID] = true
		if levels[f.Level] {
			return fmt.Errorf("floors[%d]: duplicate level %d", i, f.Level)
		}
		levels[f.Level] = true
		if f.Height <= 0 {
			return fmt.Errorf("floors[%d].height must be > 0 (got %v)", i, f.Height)
		}
		if f.Shape != nil {
			if err := f.Shape.Validate(); err != nil {
				return fmt.Errorf("floors[%d].shape: %w", i, err)
			}
		}
		for j, a := range f.Areas {
			if a.ID == "" {
				return fmt.Errorf("floors[%d].areas[%d].id is required", i, j)
			}
			if areaIDs[a.ID] {
				return fmt.Errorf("floors[%d].areas[%d]: duplicate area id %s", i, j, a.ID)
			}
			areaIDs[a.ID] = true
			if !model.AreaType(a.Type).Valid() {
				return fmt.Errorf("floors[%d].areas[%d]: unknown type %q", i, j, a.Type)
			}
			if err := a.Shape.Validate(); err != nil {
				return fmt.Errorf("floors[%d].areas[%d].shape: %w", i, j, err)
			}
		}
	}

	for i, c := range doc.Connections {
		if !areaIDs[c.AreaID] {
			return fmt.Errorf("connections[%d]: unknown area %s", i, c.AreaID)
		}
		for _, id := range c.FloorIDs {
			if !floorIDs[id] {
				return fmt.Errorf("connections[%d]: unknown floor %s", i, id)
			}
		}
	}
	return nil
}
