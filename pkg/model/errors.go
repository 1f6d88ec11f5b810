package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced floor or area does not exist.
	ErrNotFound = errors.New("not found")
	// ErrLastFloor is returned when removing the only remaining floor.
	ErrLastFloor = errors.New("cannot remove the last remaining floor")
	// ErrDuplicateLevel is returned when a floor level is already taken.
	ErrDuplicateLevel = errors.New("floor level already in use")
)

// StructuralError marks malformed input: too few vertices, non-finite
// coordinates, a self-intersecting boundary, or invalid scalar fields.
// The operation is aborted and no state is written.
type StructuralError struct {
	Field string
	Err   error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural error in %s: %v", e.Field, e.Err)
}

func (e *StructuralError) Unwrap() error { return e.Err }

// OverlapError blocks a commit: the candidate shape shares interior area
// with an existing area on the same floor. Both ids are reported so the
// caller can highlight the pair.
type OverlapError struct {
	AreaA      string
	AreaB      string
	SharedArea float64
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("areas %s and %s overlap (%.2f shared)", e.AreaA, e.AreaB, e.SharedArea)
}

// ConnectionError rejects a vertical-connection floor set, naming the
// specific rule that failed.
type ConnectionError struct {
	Type AreaType
	Rule string
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("invalid %s connection: %s", e.Type, e.Rule)
}

// Containment rule names reported in violations.
const (
	KindAreaOutsideFloor = "area-outside-floor"
	KindFloorOutsideMall = "floor-outside-mall"
)

// ContainmentViolation is advisory: the shape was committed but lies
// outside its container. Surfaced for a warning UI, never blocking.
type ContainmentViolation struct {
	EntityID string `json:"entityId"`
	Kind     string `json:"kind"`
}

func (v ContainmentViolation) String() string {
	return fmt.Sprintf("%s: %s", v.Kind, v.EntityID)
}
