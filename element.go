package frond

import (
	"fmt"
	"time"
)

// ElementDesc declares one interactive rectangle of the menu. Elements
// are declared once when the menu is built; their geometry is immutable
// for the engine's lifetime. Only membership in the visible sublist
// changes afterwards, via Engine.SetVisible.
type ElementDesc struct {
	// ID names the element in events and SetVisible calls. Must be
	// unique and non-empty.
	ID string

	// HalfW and HalfH are the rectangle's half-extents in the menu
	// plane.
	HalfW, HalfH float32

	// Offset positions the rectangle's center in the menu's local frame.
	// Offsets normally lie in the menu plane (Z = 0), but a small Z lift
	// is allowed.
	Offset Vec3

	// Action runs when the element activates. Opaque to the engine; a
	// panicking action is caught, logged, and does not disturb other
	// elements or the rest of the frame.
	Action func()
}

func (d ElementDesc) validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: element with empty ID", ErrInvalidConfig)
	}
	if !isFinite(d.HalfW) || !isFinite(d.HalfH) || d.HalfW <= 0 || d.HalfH <= 0 {
		return fmt.Errorf("%w: element %q: half-extents must be positive and finite", ErrInvalidConfig, d.ID)
	}
	if !d.Offset.IsFinite() {
		return fmt.Errorf("%w: element %q: offset must be finite", ErrInvalidConfig, d.ID)
	}
	return nil
}

// pressState is the per-element hysteresis state. Owned and mutated only
// by the press engine; zeroed whenever the menu transitions to Shown.
type pressState struct {
	smoothedDepth float32
	pressed       bool
	stability     int
	cooldownUntil time.Time
}

func (p *pressState) reset() {
	*p = pressState{}
}

// element is an ElementDesc plus derived thresholds and runtime state.
// order is the declaration index, the final arbitration tie-breaker.
type element struct {
	desc  ElementDesc
	order int

	// Depth thresholds derived from the element's full height.
	pressDepth   float32
	releaseDepth float32
	maxDepth     float32

	press pressState
}

func newElement(desc ElementDesc, order int, cfg Config) *element {
	h := desc.HalfH * 2
	return &element{
		desc:         desc,
		order:        order,
		pressDepth:   cfg.PressScale * h,
		releaseDepth: cfg.ReleaseScale * h,
		maxDepth:     cfg.PressMaxScale * h,
	}
}

// center returns the element's world-space center given the menu
// origin and plane axes.
func (e *element) center(pos Vec3, axes Basis) Vec3 {
	off := e.desc.Offset
	return pos.
		Add(axes.X.Scale(off.X)).
		Add(axes.Y.Scale(off.Y)).
		Add(axes.Z.Scale(off.Z))
}
