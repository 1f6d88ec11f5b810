// Package template provides starter mall layouts. The built-in catalog
// covers the common footprints; extra templates can be loaded from a
// YAML catalog file.
package template

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/smartmall/builder/pkg/geo"
	"github.com/smartmall/builder/pkg/model"
)

// Template is a reusable starting point for a new project.
type Template struct {
	ID                 string      `yaml:"id" json:"id"`
	Name               string      `yaml:"name" json:"name"`
	Description        string      `yaml:"description,omitempty" json:"description,omitempty"`
	Outline            geo.Polygon `yaml:"outline" json:"outline"`
	SuggestedFloors    int         `yaml:"suggested_floors" json:"suggestedFloors"`
	DefaultFloorHeight float64     `yaml:"default_floor_height" json:"defaultFloorHeight"`
	GridSize           float64     `yaml:"grid_size" json:"gridSize"`
}

const circleSegments = 48

// builtins are defined at meter scale with the origin at the south-west
// corner of the footprint.
var builtins = []Template{
	{
		ID:                 "rectangle",
		Name:               "Rectangular Mall",
		Description:        "Single rectangular footprint, 200 x 120 m.",
		Outline:            geo.NewPolygon(geo.Pt(0, 0), geo.Pt(200, 0), geo.Pt(200, 120), geo.Pt(0, 120)),
		SuggestedFloors:    2,
		DefaultFloorHeight: 4,
		GridSize:           1,
	},
	{
		ID:   "l-shape",
		Name: "L-Shaped Mall",
		Description: "Two wings meeting at a corner anchor, " +
			"200 m and 140 m legs.",
		Outline: geo.NewPolygon(
			geo.Pt(0, 0), geo.Pt(200, 0), geo.Pt(200, 60),
			geo.Pt(80, 60), geo.Pt(80, 140), geo.Pt(0, 140),
		),
		SuggestedFloors:    2,
		DefaultFloorHeight: 4,
		GridSize:           1,
	},
	{
		ID:   "u-shape",
		Name: "U-Shaped Mall",
		Description: "Two parallel wings around an open court, " +
			"220 m across.",
		Outline: geo.NewPolygon(
			geo.Pt(0, 0), geo.Pt(220, 0), geo.Pt(220, 140),
			geo.Pt(160, 140), geo.Pt(160, 50), geo.Pt(60, 50),
			geo.Pt(60, 140), geo.Pt(0, 140),
		),
		SuggestedFloors:    3,
		DefaultFloorHeight: 4,
		GridSize:           1,
	},
	{
		ID:                 "circle",
		Name:               "Circular Mall",
		Description:        "Rotunda footprint, 90 m radius.",
		Outline:            geo.ApproximateCircle(geo.Pt(90, 90), 90, circleSegments),
		SuggestedFloors:    3,
		DefaultFloorHeight: 4,
		GridSize:           1,
	},
}

// Catalog returns the built-in templates, sorted by ID.
func Catalog() []Template {
	out := make([]Template, len(builtins))
	copy(out, builtins)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ByID looks up a built-in template.
func ByID(id string) (*Template, error) {
	for i := range builtins {
		if builtins[i].ID == id {
			t := builtins[i]
			return &t, nil
		}
	}
	return nil, fmt.Errorf("template %q not found", id)
}

// LoadCatalog reads additional templates from a YAML catalog file.
func LoadCatalog(path string) ([]Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template catalog: %w", err)
	}

	var catalog struct {
		Templates []Template `yaml:"templates"`
	}
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parsing template catalog: %w", err)
	}
	for i := range catalog.Templates {
		if err := validate(&catalog.Templates[i]); err != nil {
			return nil, fmt.Errorf("template %d: %w", i, err)
		}
	}
	return catalog.Templates, nil
}

func validate(t *Template) error {
	if t.ID == "" {
		return fmt.Errorf("id is required")
	}
	if err := t.Outline.Validate(); err != nil {
		return fmt.Errorf("outline: %w", err)
	}
	if !t.Outline.IsSimple() {
		return fmt.Errorf("outline is self-intersecting")
	}
	if t.SuggestedFloors < 1 {
		return fmt.Errorf("suggested_floors must be >= 1")
	}
	return nil
}

// Instantiate builds a fresh model from the template: the outline and
// grid become the project's, and suggested floors beyond the ground
// floor are added level by level with the template's floor height.
func (t *Template) Instantiate(projectName string) (*model.Model, error) {
	grid := t.GridSize
	if grid <= 0 {
		grid = 1
	}
	m, err := model.New(projectName, t.Outline, grid)
	if err != nil {
		return nil, err
	}
	height := t.DefaultFloorHeight
	if height <= 0 {
		height = m.Project().DefaultFloorHeight
	}
	m.Project().DefaultFloorHeight = height
	m.Project().Floors[0].Height = height
	for level := 2; level <= t.SuggestedFloors; level++ {
		def := model.Floor{
			Name:   fmt.Sprintf("Floor %d", level),
			Level:  level,
			Height: height,
		}
		if _, _, err := m.AddFloor(def); err != nil {
			return nil, fmt.Errorf("adding floor %d: %w", level, err)
		}
	}
	return m, nil
}
