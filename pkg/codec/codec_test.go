package codec

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/smartmall/builder/pkg/geo"
	"github.com/smartmall/builder/pkg/model"
)

func square(x, y, size float64) geo.Polygon {
	return geo.NewPolygon(
		geo.Pt(x, y), geo.Pt(x+size, y), geo.Pt(x+size, y+size), geo.Pt(x, y+size),
	)
}

func buildProject(t *testing.T) *model.MallProject {
	t.Helper()
	m, err := model.New("Westgate", square(0, 0, 200), 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ground := m.Project().Floors[0]
	if _, _, err := m.AddArea(ground.ID, model.Area{
		Name: "Anchor Store", Type: model.AreaAnchor, Shape: square(10, 10, 40),
	}); err != nil {
		t.Fatalf("AddArea: %v", err)
	}
	if _, _, err := m.AddFloor(model.Floor{Name: "First", Level: 2, Height: 4}); err != nil {
		t.Fatalf("AddFloor: %v", err)
	}
	stairs, _, err := m.AddArea(ground.ID, model.Area{
		Name: "Main Stairs", Type: model.AreaStairs, Shape: square(100, 100, 4),
	})
	if err != nil {
		t.Fatalf("AddArea stairs: %v", err)
	}
	p := m.Project()
	if _, err := m.SetConnectionFloors(stairs.ID, []string{p.Floors[0].ID, p.Floors[1].ID}); err != nil {
		t.Fatalf("SetConnectionFloors: %v", err)
	}
	return m.Project()
}

func TestExportImportRoundTrip(t *testing.T) {
	p := buildProject(t)
	data, err := Export(p)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	got, err := Import(data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if !reflect.DeepEqual(got, p) {
		t.Errorf("round trip changed the project\n got: %+v\nwant: %+v", got, p)
	}
}

func TestRoundTripPreservesEmptyProperties(t *testing.T) {
	p := buildProject(t)
	p.Floors[0].Areas[0].Properties = map[string]string{}

	data, err := Export(p)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	got, err := Import(data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	props := got.Floors[0].Areas[0].Properties
	if props == nil || len(props) != 0 {
		t.Errorf("empty properties map came back as %#v", props)
	}
	if !reflect.DeepEqual(got, p) {
		t.Error("round trip changed a project with an empty properties map")
	}
}

func TestExportDeterministic(t *testing.T) {
	p := buildProject(t)
	a, err := Export(p)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	b, err := Export(p)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if string(a) != string(b) {
		t.Error("two exports of the same project differ")
	}
}

func TestExportVersionField(t *testing.T) {
	data, err := Export(buildProject(t))
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(raw["version"]) != "1" {
		t.Errorf("version = %s, want 1", raw["version"])
	}
}

func TestImportRejectsUnknownVersion(t *testing.T) {
	data, _ := Export(buildProject(t))
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	doc["version"] = 99
	bad, _ := json.Marshal(doc)
	if _, err := Import(bad); err == nil {
		t.Error("expected version error")
	}
}

func TestImportRejectsMalformedJSON(t *testing.T) {
	if _, err := Import([]byte("{not json")); err == nil {
		t.Error("expected parse error")
	}
}

func TestImportRejectsStructuralViolations(t *testing.T) {
	base := buildProject(t)

	cases := []struct {
		name   string
		mutate func(p *model.MallProject)
	}{
		{"empty name", func(p *model.MallProject) { p.Name = "" }},
		{"zero grid size", func(p *model.MallProject) { p.GridSize = 0 }},
		{"two-vertex outline", func(p *model.MallProject) {
			p.Outline = geo.Polygon{Vertices: []geo.Point2D{geo.Pt(0, 0), geo.Pt(1, 1)}, Closed: true}
		}},
		{"duplicate levels", func(p *model.MallProject) { p.Floors[1].Level = p.Floors[0].Level }},
		{"zero floor height", func(p *model.MallProject) { p.Floors[0].Height = 0 }},
		{"unknown area type", func(p *model.MallProject) { p.Floors[0].Areas[0].Type = "hangar" }},
		{"dangling connection area", func(p *model.MallProject) { p.Connections[0].AreaID = "missing" }},
		{"dangling connection floor", func(p *model.MallProject) { p.Connections[0].FloorIDs = []string{"missing"} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := Export(base)
			if err != nil {
				t.Fatalf("Export: %v", err)
			}
			p, err := Import(data)
			if err != nil {
				t.Fatalf("Import of clean document: %v", err)
			}
			tc.mutate(p)
			broken, err := Export(p)
			if err != nil {
				t.Fatalf("Export of mutated project: %v", err)
			}
			if _, err := Import(broken); err == nil {
				t.Error("expected structural error")
			}
		})
	}
}

func TestImportNilShapeInheritsNothing(t *testing.T) {
	p := buildProject(t)
	data, err := Export(p)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	got, err := Import(data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	// Floors created without an explicit footprint stay nil so they keep
	// inheriting the outline after a reload.
	if got.Floors[1].Shape != nil {
		t.Error("nil floor shape must survive the round trip")
	}
	eff := got.Floors[1].EffectiveShape(got.Outline)
	if !reflect.DeepEqual(eff, got.Outline) {
		t.Error("inheriting floor must report the outline as its footprint")
	}
}
