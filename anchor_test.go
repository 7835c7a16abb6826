package frond

import "testing"

func anchorInput(wrist, index, thumb Pose, side Handedness) FrameInput {
	return FrameInput{AnchorHand: HandPoses{Side: side, Wrist: wrist, IndexTip: index, ThumbTip: thumb}}
}

func TestAnchorSolveWristOrientation(t *testing.T) {
	cfg := DefaultConfig()
	var a anchorState

	// Palm rotated to face world up.
	wrist := Pose{
		Position:         Vec3{0.1, 0.2, 0.3},
		Orientation:      Quat{1, 0, 0, 0},
		Valid:            true,
		OrientationValid: true,
	}
	index := Pose{Position: wrist.Position.Add(Vec3{0.09, 0, 0}), Valid: true}
	a.solve(anchorInput(wrist, index, Pose{}, HandLeft), cfg)

	if !a.tracked {
		t.Fatal("tracked = false, want true")
	}
	if !a.palmUp {
		t.Error("palmUp = false, want true")
	}
	want := wrist.Position.Add(Vec3{0, cfg.OffsetDistance, 0})
	if !vecNear(a.pos, want) {
		t.Errorf("pos = %v, want %v (first frame snaps)", a.pos, want)
	}
	axes := a.axes()
	if !vecNear(axes.Z, Vec3{0, 1, 0}) {
		t.Errorf("plane normal = %v, want world up", axes.Z)
	}
	if !vecNear(axes.X, Vec3{1, 0, 0}) {
		t.Errorf("plane X = %v, want world right", axes.X)
	}
}

func TestAnchorSolvePalmDown(t *testing.T) {
	cfg := DefaultConfig()
	var a anchorState

	wrist := Pose{Orientation: QuatIdentity, Valid: true, OrientationValid: true}
	a.solve(anchorInput(wrist, Pose{}, Pose{}, HandLeft), cfg)

	if !a.tracked {
		t.Fatal("tracked = false, want true")
	}
	if a.palmUp {
		t.Error("palmUp = true for a palm facing down")
	}
}

func TestAnchorSolveFingertipFallback(t *testing.T) {
	cfg := DefaultConfig()

	// Wrist position only; the normal comes from the fingertip cross
	// product, which flips with handedness.
	wrist := Pose{Valid: true}
	index := Pose{Position: Vec3{0.09, 0, 0}, Valid: true}
	thumb := Pose{Position: Vec3{0.02, 0, 0.06}, Valid: true}

	tests := []struct {
		name       string
		side       Handedness
		wantNormal Vec3
	}{
		{"left hand", HandLeft, Vec3{0, -1, 0}},
		{"right hand", HandRight, Vec3{0, 1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a anchorState
			a.solve(anchorInput(wrist, index, thumb, tt.side), cfg)
			if !a.tracked {
				t.Fatal("tracked = false, want true")
			}
			if got := a.axes().Z; !vecNear(got, tt.wantNormal) {
				t.Errorf("normal = %v, want %v", got, tt.wantNormal)
			}
		})
	}
}

func TestAnchorSolveWorldAxisFallback(t *testing.T) {
	cfg := DefaultConfig()
	var a anchorState

	// Wrist position only, no fingertips: normal defaults to world up.
	a.solve(anchorInput(Pose{Valid: true}, Pose{}, Pose{}, HandLeft), cfg)
	if !a.tracked {
		t.Fatal("tracked = false, want true")
	}
	if got := a.axes().Z; !vecNear(got, worldUp) {
		t.Errorf("normal = %v, want world up", got)
	}
	if !a.palmUp {
		t.Error("palmUp = false with the world-up default normal")
	}
}

func TestAnchorSolveGripFallback(t *testing.T) {
	cfg := DefaultConfig()
	var a anchorState

	in := FrameInput{
		Grip: Pose{Position: Vec3{0.2, 0.1, -0.3}, Orientation: QuatIdentity, Valid: true, OrientationValid: true},
		Head: Pose{Position: Vec3{0, 0.5, 0}, Valid: true},
	}
	a.solve(in, cfg)

	if !a.tracked {
		t.Fatal("tracked = false, want true")
	}
	if !a.palmUp {
		t.Error("palmUp = false; grip anchoring must not trip orientation gating")
	}
	if !a.hasPose {
		t.Fatal("hasPose = false after grip solve")
	}
	// The panel faces the viewer.
	toHead, _ := in.Head.Position.Sub(a.pos).Normalized()
	if got := a.axes().Z; !vecNear(got, toHead) {
		t.Errorf("normal = %v, want toward head %v", got, toHead)
	}
}

func TestAnchorSolveHoldsOnTrackingLoss(t *testing.T) {
	cfg := DefaultConfig()
	var a anchorState

	wrist := Pose{Orientation: Quat{1, 0, 0, 0}, Valid: true, OrientationValid: true}
	a.solve(anchorInput(wrist, Pose{}, Pose{}, HandLeft), cfg)
	pos, rot := a.pos, a.rot

	// Nothing tracked: transform held, no extrapolation.
	a.solve(FrameInput{}, cfg)
	if a.tracked {
		t.Error("tracked = true with no poses")
	}
	if !a.hasPose {
		t.Error("hasPose lost on tracking loss")
	}
	if !vecNear(a.pos, pos) || a.rot != rot {
		t.Errorf("transform moved during tracking loss: %v -> %v", pos, a.pos)
	}
}

func TestAnchorSolveSmoothing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Smoothing = 0.5
	var a anchorState

	wrist := Pose{Orientation: Quat{1, 0, 0, 0}, Valid: true, OrientationValid: true}
	a.solve(anchorInput(wrist, Pose{}, Pose{}, HandLeft), cfg)

	// Move the wrist 0.1 along X: the panel covers half the gap per
	// frame at Smoothing = 0.5.
	wrist.Position = Vec3{0.1, 0, 0}
	a.solve(anchorInput(wrist, Pose{}, Pose{}, HandLeft), cfg)
	if !floatNear(a.pos.X, 0.05) {
		t.Errorf("pos.X after one blended frame = %v, want 0.05", a.pos.X)
	}
	a.solve(anchorInput(wrist, Pose{}, Pose{}, HandLeft), cfg)
	if !floatNear(a.pos.X, 0.075) {
		t.Errorf("pos.X after two blended frames = %v, want 0.075", a.pos.X)
	}
}
