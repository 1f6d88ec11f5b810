package validation

import (
	"fmt"

	"github.com/smartmall/builder/pkg/geo"
	"github.com/smartmall/builder/pkg/model"
)

// ValidateProject runs the full rule set over a project tree: structural
// soundness of every polygon and scalar, containment of floors in the
// outline and areas in their floors, pairwise area overlap, and vertical
// connection rules. Containment findings are warnings; overlap and
// structural findings are errors, matching how the model treats them on
// commit.
func ValidateProject(p *model.MallProject) *Report {
	r := NewReport()
	if p == nil {
		r.AddError(Result{Level: LevelStructural, Message: "project is nil"})
		return r
	}

	validateSettings(p, r)
	validateOutline(p, r)
	validateFloors(p, r)
	validateConnections(p, r)

	return r
}

func validateSettings(p *model.MallProject, r *Report) {
	if p.Name == "" {
		r.AddError(Result{
			Level:    LevelStructural,
			Message:  "project name must not be empty",
			Path:     "name",
			Expected: "non-empty string",
		})
	}
	if p.GridSize <= 0 {
		r.AddError(Result{
			Level:       LevelStructural,
			Message:     fmt.Sprintf("grid size must be > 0 (got %v)", p.GridSize),
			Path:        "gridSize",
			ActualValue: p.GridSize,
			Expected:    "> 0",
		})
	}
}

func validateOutline(p *model.MallProject, r *Report) {
	checkPolygon(r, "outline", p.Outline)
}

func validateFloors(p *model.MallProject, r *Report) {
	levels := make(map[int]string, len(p.Floors))
	if len(p.Floors) == 0 {
		r.AddError(Result{
			Level:    LevelStructural,
			Message:  "project must have at least one floor",
			Path:     "floors",
			Expected: "at least 1 floor",
		})
		return
	}

	for i := range p.Floors {
		f := &p.Floors[i]
		path := fmt.Sprintf("floors[%d]", i)

		if prev, taken := levels[f.Level]; taken {
			r.AddError(Result{
				Level:       LevelStructural,
				Message:     fmt.Sprintf("level %d used by floors %s and %s", f.Level, prev, f.ID),
				Path:        path + ".level",
				ActualValue: f.Level,
				Expected:    "unique level per project",
				EntityIDs:   []string{prev, f.ID},
			})
		}
		levels[f.Level] = f.ID

		if f.Height <= 0 {
			r.AddError(Result{
				Level:       LevelStructural,
				Message:     fmt.Sprintf("floor %s height must be > 0 (got %v)", f.ID, f.Height),
				Path:        path + ".height",
				ActualValue: f.Height,
				Expected:    "> 0",
			})
		}
		if f.Shape != nil {
			checkPolygon(r, path+".shape", *f.Shape)
		}

		effective := f.EffectiveShape(p.Outline)
		if !geo.ContainsPolygon(effective, p.Outline) {
			r.AddWarning(Result{
				Level:     LevelContainment,
				Message:   fmt.Sprintf("floor %s footprint extends outside the mall outline", f.ID),
				Path:      path + ".shape",
				EntityIDs: []string{f.ID},
			})
		}

		validateAreas(f, path, effective, r)
	}
}

func validateAreas(f *model.Floor, floorPath string, effective geo.Polygon, r *Report) {
	for i := range f.Areas {
		a := &f.Areas[i]
		path := fmt.Sprintf("%s.areas[%d]", floorPath, i)

		if !a.Type.Valid() {
			r.AddError(Result{
				Level:       LevelStructural,
				Message:     fmt.Sprintf("area %s has unknown type %q", a.ID, a.Type),
				Path:        path + ".type",
				ActualValue: string(a.Type),
			})
		}
		checkPolygon(r, path+".shape", a.Shape)

		if !geo.ContainsPolygon(a.Shape, effective) {
			r.AddWarning(Result{
				Level:     LevelContainment,
				Message:   fmt.Sprintf("area %s extends outside floor %s", a.ID, f.ID),
				Path:      path + ".shape",
				EntityIDs: []string{a.ID, f.ID},
			})
		}

		for j := i + 1; j < len(f.Areas); j++ {
			other := &f.Areas[j]
			if geo.Overlap(a.Shape, other.Shape) {
				r.AddError(Result{
					Level:     LevelOverlap,
					Message:   fmt.Sprintf("areas %s and %s on floor %s overlap", a.ID, other.ID, f.ID),
					Path:      path + ".shape",
					EntityIDs: []string{a.ID, other.ID},
				})
			}
		}
	}
}

func validateConnections(p *model.MallProject, r *Report) {
	for i := range p.Connections {
		c := &p.Connections[i]
		path := fmt.Sprintf("connections[%d]", i)

		area, _ := p.AreaByID(c.AreaID)
		if area == nil {
			r.AddError(Result{
				Level:       LevelConnection,
				Message:     fmt.Sprintf("connection references missing area %s", c.AreaID),
				Path:        path + ".areaId",
				ActualValue: c.AreaID,
			})
			continue
		}

		floors := make([]*model.Floor, 0, len(c.FloorIDs))
		missing := false
		for _, id := range c.FloorIDs {
			f := p.FloorByID(id)
			if f == nil {
				r.AddError(Result{
					Level:       LevelConnection,
					Message:     fmt.Sprintf("connection for area %s references missing floor %s", c.AreaID, id),
					Path:        path + ".floorIds",
					ActualValue: id,
				})
				missing = true
				continue
			}
			floors = append(floors, f)
		}
		if missing {
			continue
		}
		if err := model.ValidateConnectionFloors(c.Type, floors); err != nil {
			r.AddError(Result{
				Level:     LevelConnection,
				Message:   fmt.Sprintf("area %s: %v", c.AreaID, err),
				Path:      path + ".floorIds",
				EntityIDs: []string{c.AreaID},
			})
		}
	}
}

func checkPolygon(r *Report, path string, poly geo.Polygon) {
	if err := poly.Validate(); err != nil {
		r.AddError(Result{
			Level:       LevelStructural,
			Message:     fmt.Sprintf("%s: %v", path, err),
			Path:        path,
			ActualValue: poly.Len(),
			Expected:    "simple polygon with >= 3 finite vertices",
		})
		return
	}
	if !poly.IsSimple() {
		r.AddError(Result{
			Level:    LevelStructural,
			Message:  fmt.Sprintf("%s: boundary is self-intersecting", path),
			Path:     path,
			Expected: "simple polygon with >= 3 finite vertices",
		})
	}
}
