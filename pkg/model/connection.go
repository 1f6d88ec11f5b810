package model

import "fmt"

// Connection rule names surfaced in ConnectionError.Rule.
const (
	RuleFloorCount  = "floor-count"
	RuleAdjacency   = "adjacency"
	RuleUnknownType = "unknown-type"
)

// ValidateConnectionFloors applies the type-specific rules for the set of
// floors a circulation area may serve:
//
//   - stairs link exactly two floors whose levels differ by exactly 1;
//   - elevators and escalators serve one or more floors at any levels.
//
// Violations are rejected with the offending rule, never coerced.
func ValidateConnectionFloors(t AreaType, floors []*Floor) error {
	switch t {
	case AreaStairs:
		if len(floors) != 2 {
			return &ConnectionError{Type: t, Rule: RuleFloorCount}
		}
		delta := floors[0].Level - floors[1].Level
		if delta != 1 && delta != -1 {
			return &ConnectionError{Type: t, Rule: RuleAdjacency}
		}
		return nil
	case AreaElevator, AreaEscalator:
		if len(floors) < 1 {
			return &ConnectionError{Type: t, Rule: RuleFloorCount}
		}
		return nil
	default:
		return &ConnectionError{Type: t, Rule: RuleUnknownType}
	}
}

// SetConnectionFloors replaces the floor set of the connection owned by
// areaID, validating every referenced floor and the type rules first.
func (m *Model) SetConnectionFloors(areaID string, floorIDs []string) (*VerticalConnection, error) {
	conn := m.project.ConnectionByArea(areaID)
	if conn == nil {
		return nil, fmt.Errorf("connection for area %s: %w", areaID, ErrNotFound)
	}
	seen := make(map[string]bool, len(floorIDs))
	floors := make([]*Floor, 0, len(floorIDs))
	for _, id := range floorIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		f := m.project.FloorByID(id)
		if f == nil {
			return nil, fmt.Errorf("floor %s: %w", id, ErrNotFound)
		}
		floors = append(floors, f)
	}
	if err := ValidateConnectionFloors(conn.Type, floors); err != nil {
		return nil, err
	}
	unique := make([]string, 0, len(floors))
	for _, f := range floors {
		unique = append(unique, f.ID)
	}
	conn.FloorIDs = sortedIDs(unique)
	m.touch()
	return conn, nil
}
