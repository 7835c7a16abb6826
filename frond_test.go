package frond

import (
	"testing"
	"time"
)

// Shared test rig. The wrist sits at the origin with the palm facing
// world up, so the menu plane is horizontal at OffsetDistance above it:
// plane X = world X, plane Y = world -Z, plane normal = world up.

const eps = 1e-4

func floatNear(a, b float32) bool {
	d := a - b
	return d > -eps && d < eps
}

func vecNear(a, b Vec3) bool {
	return floatNear(a.X, b.X) && floatNear(a.Y, b.Y) && floatNear(a.Z, b.Z)
}

// fastConfig removes the suppression windows so activation tests can
// focus on hysteresis. Individual tests re-enable the window they probe.
func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.GlobalGrace = 0
	cfg.PinchGrace = 0
	cfg.ElementCooldown = 0
	return cfg
}

func testElements() []ElementDesc {
	return []ElementDesc{
		{ID: "save", HalfW: 0.015, HalfH: 0.009525, Offset: Vec3{X: -0.04}},
		{ID: "undo", HalfW: 0.015, HalfH: 0.009525, Offset: Vec3{}},
		{ID: "redo", HalfW: 0.015, HalfH: 0.009525, Offset: Vec3{X: 0.04}},
	}
}

// rig drives an Engine with synthetic frames on a 10ms clock and
// records every event it emits.
type rig struct {
	t   *testing.T
	e   *Engine
	now time.Time

	shown     bool
	palmUp    bool
	pinch     bool
	squeeze   bool
	suppress  bool
	cross     bool
	wristGone bool

	pokeElem  string
	pokeDepth float32

	rayElem    string
	rayTrigger bool

	activations []ActivateContext
	visChanges  []VisibilityContext
	hovers      []HoverContext
}

func newRig(t *testing.T, cfg Config) *rig {
	t.Helper()
	e, err := New(cfg, testElements())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	r := &rig{t: t, e: e, now: time.Unix(1000, 0), palmUp: true}
	e.OnActivate(func(ctx ActivateContext) { r.activations = append(r.activations, ctx) })
	e.OnVisibilityChanged(func(ctx VisibilityContext) { r.visChanges = append(r.visChanges, ctx) })
	e.OnHover(func(ctx HoverContext) { r.hovers = append(r.hovers, ctx) })
	return r
}

const rigDT = 10 * time.Millisecond

// step advances the engine n frames built from the rig's current state.
func (r *rig) step(n int) {
	for i := 0; i < n; i++ {
		r.now = r.now.Add(rigDT)
		r.e.Update(r.now, r.frame())
	}
}

// stepFor advances frames until d has elapsed.
func (r *rig) stepFor(d time.Duration) {
	r.step(int(d / rigDT))
}

func (r *rig) elementCenter(id string) Vec3 {
	cfg := r.e.cfg
	off := r.e.elemsByID[id].desc.Offset
	origin := Vec3{0, cfg.OffsetDistance, 0}
	return origin.
		Add(Vec3{1, 0, 0}.Scale(off.X)).
		Add(Vec3{0, 0, -1}.Scale(off.Y)).
		Add(Vec3{0, 1, 0}.Scale(off.Z))
}

func (r *rig) frame() FrameInput {
	wristRot := QuatIdentity // palm down
	if r.palmUp {
		wristRot = Quat{X: 1, W: 0} // half turn about X: palm up
	}
	index := Pose{Position: Vec3{X: 0.09}, Valid: true}
	thumb := Pose{Position: Vec3{X: 0.02, Z: 0.06}, Valid: true}
	if r.pinch {
		thumb.Position = index.Position.Add(Vec3{X: 0.004})
	}
	wrist := Pose{Orientation: wristRot, Valid: !r.wristGone, OrientationValid: !r.wristGone}

	in := FrameInput{
		AnchorHand: HandPoses{
			Side:     r.e.cfg.AnchorHand,
			Wrist:    wrist,
			IndexTip: index,
			ThumbTip: thumb,
		},
		RequestedShown:   r.shown,
		ExternalSuppress: r.suppress,
	}

	pokePos := Vec3{0.3, 0.25, 0} // at rest, outside every threshold
	switch {
	case r.cross:
		pokePos = Vec3{0.03, -0.02, 0} // behind the palm plane, near the wrist
	case r.pokeElem != "":
		pokePos = r.elementCenter(r.pokeElem).Sub(Vec3{0, 1, 0}.Scale(r.pokeDepth))
	}
	in.Sources = append(in.Sources, SourceInput{
		ID:       "poke",
		Side:     r.e.cfg.AnchorHand.Other(),
		Modality: ModalityHand,
		Pose:     Pose{Position: pokePos, Valid: true},
	})

	if r.rayElem != "" || r.squeeze {
		origin := Vec3{0, 0.35, 0.3}
		target := origin.Add(Vec3{0, 0, 0.5}) // parked: parallel to the plane
		if r.rayElem != "" {
			target = r.elementCenter(r.rayElem)
		}
		dir, _ := target.Sub(origin).Normalized()
		in.Sources = append(in.Sources, SourceInput{
			ID:       "ray",
			Side:     r.e.cfg.AnchorHand.Other(),
			Modality: ModalityRay,
			Trigger:  r.rayTrigger,
			Squeeze:  r.squeeze,
			Pose: Pose{
				Position:         origin,
				Orientation:      QuatBetween(worldForward, dir),
				Valid:            true,
				OrientationValid: true,
			},
		})
	}
	return in
}

func (r *rig) activationsFor(id string) int {
	n := 0
	for _, a := range r.activations {
		if a.ElementID == id {
			n++
		}
	}
	return n
}
