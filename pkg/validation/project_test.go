package validation

import (
	"testing"

	"github.com/smartmall/builder/pkg/geo"
	"github.com/smartmall/builder/pkg/model"
)

func square(x, y, size float64) geo.Polygon {
	return geo.NewPolygon(
		geo.Pt(x, y), geo.Pt(x+size, y), geo.Pt(x+size, y+size), geo.Pt(x, y+size),
	)
}

func validProject() *model.MallProject {
	return &model.MallProject{
		ID:       "p1",
		Name:     "Mall",
		Outline:  square(0, 0, 100),
		GridSize: 1,
		Unit:     "meters",
		Floors: []model.Floor{
			{
				ID: "f1", Name: "Ground", Level: 1, Height: 4,
				Areas: []model.Area{
					{ID: "a1", Name: "Store", Type: model.AreaRetail, Status: model.StatusAvailable, Shape: square(10, 10, 20)},
				},
			},
			{ID: "f2", Name: "First", Level: 2, Height: 4, Areas: []model.Area{}},
		},
		Connections: []model.VerticalConnection{},
	}
}

func TestValidateProjectClean(t *testing.T) {
	r := ValidateProject(validProject())
	if !r.Valid {
		t.Fatalf("expected valid report, got %s: %+v", r.Summary, r.Errors)
	}
}

func TestValidateProjectNil(t *testing.T) {
	if r := ValidateProject(nil); r.Valid {
		t.Error("nil project must be invalid")
	}
}

func TestValidateProjectDuplicateLevels(t *testing.T) {
	p := validProject()
	p.Floors[1].Level = 1
	r := ValidateProject(p)
	if r.Valid {
		t.Fatal("duplicate levels must be an error")
	}
	found := false
	for _, e := range r.Errors {
		if e.Level == LevelStructural && len(e.EntityIDs) == 2 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected structural error naming both floors, got %+v", r.Errors)
	}
}

func TestValidateProjectBadPolygon(t *testing.T) {
	p := validProject()
	p.Floors[0].Areas[0].Shape = geo.NewPolygon(geo.Pt(0, 0), geo.Pt(1, 1))
	if r := ValidateProject(p); r.Valid {
		t.Error("2-vertex area shape must be an error")
	}
}

func TestValidateProjectOverlapIsError(t *testing.T) {
	p := validProject()
	p.Floors[0].Areas = append(p.Floors[0].Areas, model.Area{
		ID: "a2", Name: "Clash", Type: model.AreaRetail, Shape: square(15, 15, 20),
	})
	r := ValidateProject(p)
	if r.Valid {
		t.Fatal("overlapping areas must be an error")
	}
	found := false
	for _, e := range r.Errors {
		if e.Level == LevelOverlap {
			found = true
		}
	}
	if !found {
		t.Errorf("expected overlap-level error, got %+v", r.Errors)
	}
}

func TestValidateProjectContainmentIsWarning(t *testing.T) {
	p := validProject()
	p.Floors[0].Areas[0].Shape = square(95, 95, 20)
	r := ValidateProject(p)
	if !r.Valid {
		t.Fatalf("containment violation must not invalidate: %+v", r.Errors)
	}
	if len(r.Warnings) == 0 {
		t.Error("expected containment warning")
	}
}

func TestValidateProjectConnectionRules(t *testing.T) {
	p := validProject()
	p.Floors[0].Areas = append(p.Floors[0].Areas, model.Area{
		ID: "stairs1", Name: "Stairs", Type: model.AreaStairs, Shape: square(50, 50, 3),
	})
	p.Floors = append(p.Floors, model.Floor{ID: "f3", Name: "Third", Level: 3, Height: 4, Areas: []model.Area{}})
	p.Connections = []model.VerticalConnection{
		{AreaID: "stairs1", Type: model.AreaStairs, FloorIDs: []string{"f1", "f3"}},
	}
	r := ValidateProject(p)
	if r.Valid {
		t.Fatal("stairs spanning non-adjacent levels must be an error")
	}
	found := false
	for _, e := range r.Errors {
		if e.Level == LevelConnection {
			found = true
		}
	}
	if !found {
		t.Errorf("expected connection-level error, got %+v", r.Errors)
	}

	// Adjacent pair passes.
	p.Connections[0].FloorIDs = []string{"f1", "f2"}
	if r := ValidateProject(p); !r.Valid {
		t.Errorf("adjacent stairs should validate: %+v", r.Errors)
	}
}

func TestValidateProjectDanglingConnection(t *testing.T) {
	p := validProject()
	p.Connections = []model.VerticalConnection{
		{AreaID: "ghost", Type: model.AreaElevator, FloorIDs: []string{"f1"}},
	}
	if r := ValidateProject(p); r.Valid {
		t.Error("connection to a missing area must be an error")
	}
}

func TestReportMerge(t *testing.T) {
	a := NewReport()
	b := NewReport()
	b.AddError(Result{Level: LevelStructural, Message: "boom"})
	a.Merge(b)
	if a.Valid {
		t.Error("merging an invalid report must invalidate")
	}
	if len(a.Errors) != 1 {
		t.Errorf("expected 1 error after merge, got %d", len(a.Errors))
	}
}
