package model

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/smartmall/builder/pkg/geo"
)

// Model is the single mutable owner of a MallProject tree. All writes go
// through its methods so the containment and non-overlap invariants are
// checked on every commit. Each check runs to completion before any field
// is written, so a rejected operation leaves the tree untouched.
//
// The model itself is not safe for concurrent writers; a multi-threaded
// host must serialize access externally.
type Model struct {
	project *MallProject
	indexes map[string]*floorIndex
}

// New creates a model around a fresh project with a single ground floor
// inheriting the outline.
func New(name string, outline geo.Polygon, gridSize float64) (*Model, error) {
	if err := checkShape("outline", outline); err != nil {
		return nil, err
	}
	if gridSize <= 0 {
		return nil, &StructuralError{Field: "gridSize", Err: fmt.Errorf("must be > 0, got %v", gridSize)}
	}
	now := time.Now().UTC().Truncate(time.Second)
	p := &MallProject{
		ID:                 uuid.NewString(),
		Name:               name,
		Outline:            outline.Clone(),
		GridSize:           gridSize,
		Unit:               "meters",
		DefaultFloorHeight: 4,
		Floors: []Floor{{
			ID:     uuid.NewString(),
			Name:   "Floor 1",
			Level:  1,
			Height: 4,
			Areas:  []Area{},
		}},
		Connections: []VerticalConnection{},
		Revision:    1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return Load(p)
}

// Load wraps an existing project tree, typically one produced by the
// codec, and rebuilds the per-floor spatial indexes.
func Load(p *MallProject) (*Model, error) {
	m := &Model{project: p, indexes: make(map[string]*floorIndex)}
	for i := range p.Floors {
		f := &p.Floors[i]
		fi := newFloorIndex()
		for _, a := range f.Areas {
			if err := fi.insert(a.ID, a.Shape); err != nil {
				return nil, fmt.Errorf("indexing area %s: %w", a.ID, err)
			}
		}
		m.indexes[f.ID] = fi
	}
	return m, nil
}

// Project returns the owned project tree. Callers must treat it as
// read-only; mutations go through the model.
func (m *Model) Project() *MallProject { return m.project }

func (m *Model) touch() {
	m.project.Revision++
	m.project.UpdatedAt = time.Now().UTC().Truncate(time.Second)
}

// checkShape runs the structural gate every polygon passes before any
// containment or overlap test: valid vertex data and a simple boundary.
func checkShape(field string, p geo.Polygon) error {
	if err := p.Validate(); err != nil {
		return &StructuralError{Field: field, Err: err}
	}
	if !p.IsSimple() {
		return &StructuralError{Field: field, Err: fmt.Errorf("boundary is self-intersecting")}
	}
	return nil
}

// SetOutline replaces the mall outline and re-checks every floor and area
// against it. Violating entity ids are returned for the caller to resolve;
// nothing is deleted or clipped here.
func (m *Model) SetOutline(newOutline geo.Polygon) ([]ContainmentViolation, error) {
	if err := checkShape("outline", newOutline); err != nil {
		return nil, err
	}
	m.project.Outline = newOutline.Clone()
	m.touch()

	var violations []ContainmentViolation
	for i := range m.project.Floors {
		f := &m.project.Floors[i]
		effective := f.EffectiveShape(m.project.Outline)
		if !geo.ContainsPolygon(effective, m.project.Outline) {
			violations = append(violations, ContainmentViolation{EntityID: f.ID, Kind: KindFloorOutsideMall})
		}
		for _, a := range f.Areas {
			if !geo.ContainsPolygon(a.Shape, effective) {
				violations = append(violations, ContainmentViolation{EntityID: a.ID, Kind: KindAreaOutsideFloor})
			}
		}
	}
	return violations, nil
}

// AddFloor appends a floor. The level must be unique and the height
// positive. A footprint outside the mall outline is advisory: the floor is
// committed and the violation returned.
func (m *Model) AddFloor(def Floor) (*Floor, *ContainmentViolation, error) {
	if def.Height <= 0 {
		return nil, nil, &StructuralError{Field: "height", Err: fmt.Errorf("must be > 0, got %v", def.Height)}
	}
	if existing := m.project.FloorByLevel(def.Level); existing != nil {
		return nil, nil, fmt.Errorf("%w: level %d held by floor %s", ErrDuplicateLevel, def.Level, existing.ID)
	}
	if def.Shape != nil {
		if err := checkShape("shape", *def.Shape); err != nil {
			return nil, nil, err
		}
	}
	if def.ID == "" {
		def.ID = uuid.NewString()
	}
	if def.Areas == nil {
		def.Areas = []Area{}
	}

	var violation *ContainmentViolation
	if def.Shape != nil && !geo.ContainsPolygon(*def.Shape, m.project.Outline) {
		violation = &ContainmentViolation{EntityID: def.ID, Kind: KindFloorOutsideMall}
	}

	m.project.Floors = append(m.project.Floors, def)
	m.indexes[def.ID] = newFloorIndex()
	m.touch()
	f := &m.project.Floors[len(m.project.Floors)-1]
	return f, violation, nil
}

// RemoveFloor deletes a floor and its areas. The last remaining floor
// cannot be removed. Connections owned by the floor's areas go with it.
func (m *Model) RemoveFloor(id string) error {
	if len(m.project.Floors) <= 1 {
		return ErrLastFloor
	}
	idx := -1
	for i := range m.project.Floors {
		if m.project.Floors[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("floor %s: %w", id, ErrNotFound)
	}
	for _, a := range m.project.Floors[idx].Areas {
		m.removeConnection(a.ID)
	}
	m.project.Floors = append(m.project.Floors[:idx], m.project.Floors[idx+1:]...)
	delete(m.indexes, id)
	m.touch()
	return nil
}

// AddArea commits an area onto a floor. Overlap with an existing area on
// the same floor blocks the commit and reports both ids. A shape outside
// the floor's effective footprint is advisory: committed, violation
// returned. Circulation areas get a vertical connection seeded with the
// owning floor.
func (m *Model) AddArea(floorID string, def Area) (*Area, *ContainmentViolation, error) {
	f := m.project.FloorByID(floorID)
	if f == nil {
		return nil, nil, fmt.Errorf("floor %s: %w", floorID, ErrNotFound)
	}
	if !def.Type.Valid() {
		return nil, nil, &StructuralError{Field: "type", Err: fmt.Errorf("unknown area type %q", def.Type)}
	}
	if err := checkShape("shape", def.Shape); err != nil {
		return nil, nil, err
	}
	if def.ID == "" {
		def.ID = uuid.NewString()
	}
	if def.Status == "" {
		def.Status = StatusAvailable
	}

	if err := m.checkOverlap(f, def.Shape, def.ID); err != nil {
		return nil, nil, err
	}
	var violation *ContainmentViolation
	if !geo.ContainsPolygon(def.Shape, f.EffectiveShape(m.project.Outline)) {
		violation = &ContainmentViolation{EntityID: def.ID, Kind: KindAreaOutsideFloor}
	}

	f.Areas = append(f.Areas, def)
	if err := m.indexes[floorID].insert(def.ID, def.Shape); err != nil {
		f.Areas = f.Areas[:len(f.Areas)-1]
		return nil, nil, fmt.Errorf("indexing area: %w", err)
	}
	if def.Type.IsCirculation() {
		m.project.Connections = append(m.project.Connections, VerticalConnection{
			AreaID:   def.ID,
			Type:     def.Type,
			FloorIDs: []string{floorID},
		})
	}
	m.touch()
	return &f.Areas[len(f.Areas)-1], violation, nil
}

// UpdateAreaShape replaces an area's footprint, re-running the same
// containment and overlap checks as AddArea before committing.
func (m *Model) UpdateAreaShape(areaID string, newShape geo.Polygon) (*Area, *ContainmentViolation, error) {
	a, f := m.project.AreaByID(areaID)
	if a == nil {
		return nil, nil, fmt.Errorf("area %s: %w", areaID, ErrNotFound)
	}
	if err := checkShape("shape", newShape); err != nil {
		return nil, nil, err
	}
	if err := m.checkOverlap(f, newShape, areaID); err != nil {
		return nil, nil, err
	}
	var violation *ContainmentViolation
	if !geo.ContainsPolygon(newShape, f.EffectiveShape(m.project.Outline)) {
		violation = &ContainmentViolation{EntityID: areaID, Kind: KindAreaOutsideFloor}
	}

	a.Shape = newShape.Clone()
	fi := m.indexes[f.ID]
	fi.remove(areaID)
	if err := fi.insert(areaID, a.Shape); err != nil {
		return nil, nil, fmt.Errorf("indexing area: %w", err)
	}
	m.touch()
	return a, violation, nil
}

// RemoveArea deletes an area and, for circulation types, its vertical
// connection.
func (m *Model) RemoveArea(areaID string) error {
	_, f := m.project.AreaByID(areaID)
	if f == nil {
		return fmt.Errorf("area %s: %w", areaID, ErrNotFound)
	}
	for i := range f.Areas {
		if f.Areas[i].ID == areaID {
			f.Areas = append(f.Areas[:i], f.Areas[i+1:]...)
			break
		}
	}
	m.indexes[f.ID].remove(areaID)
	m.removeConnection(areaID)
	m.touch()
	return nil
}

// checkOverlap confirms the candidate shape shares no interior area with
// any other area on the floor. The R-tree narrows the candidates; exact
// polygon tests decide.
func (m *Model) checkOverlap(f *Floor, shape geo.Polygon, selfID string) error {
	fi := m.indexes[f.ID]
	if fi == nil {
		return nil
	}
	for _, id := range fi.candidates(shape) {
		if id == selfID {
			continue
		}
		other, _ := m.project.AreaByID(id)
		if other == nil {
			continue
		}
		if geo.Overlap(shape, other.Shape) {
			return &OverlapError{
				AreaA:      id,
				AreaB:      selfID,
				SharedArea: geo.IntersectionArea(shape, other.Shape),
			}
		}
	}
	return nil
}

func (m *Model) removeConnection(areaID string) {
	for i := range m.project.Connections {
		if m.project.Connections[i].AreaID == areaID {
			m.project.Connections = append(m.project.Connections[:i], m.project.Connections[i+1:]...)
			return
		}
	}
}

// sortedIDs returns a sorted copy, the canonical form for floor id sets.
func sortedIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Strings(out)
	return out
}
