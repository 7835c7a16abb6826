package frond

// palmOutLocal is the wrist-local direction pointing out of the palm.
// Matches the joint convention of the runtimes we target: with the hand
// flat and palm up, the wrist's local -Y points at the sky.
var palmOutLocal = Vec3{0, -1, 0}

// anchorState is the menu's transform and this frame's tracking verdict.
// current holds the smoothed pose; it persists across tracking loss so
// the panel does not jump when the hand reappears.
type anchorState struct {
	pos Vec3
	rot Quat

	// hasPose is false until the first frame with any usable anchor
	// input; before that the transform is meaningless.
	hasPose bool

	// tracked reports whether this frame produced a fresh target.
	// palmUp is only meaningful when tracked is true.
	tracked bool
	palmUp  bool
}

// solve computes this frame's target transform from the hand bundle and
// blends the current transform toward it.
//
// Normal (Z) fallback chain: wrist orientation → cross product of the
// wrist-to-fingertip vectors → world up. X is the wrist-to-index
// direction made orthogonal to Z, with a world-axis fallback when that
// collapses. When the wrist is untracked entirely, the same-side
// controller grip anchors the panel instead, facing the viewer. When
// nothing is tracked the transform is held as-is, never extrapolated.
func (a *anchorState) solve(in FrameInput, cfg Config) {
	hand := in.AnchorHand
	a.tracked = false
	a.palmUp = false

	switch {
	case hand.Wrist.Valid:
		z := a.palmNormal(hand)
		xHint := worldRight
		if hand.IndexTip.Valid {
			xHint = hand.IndexTip.Position.Sub(hand.Wrist.Position)
		}
		basis := basisFromNormal(z, xHint)

		targetPos := hand.Wrist.Position.Add(basis.Z.Scale(cfg.OffsetDistance))
		a.blend(targetPos, basis.Quat(), cfg.Smoothing)
		a.tracked = true
		a.palmUp = basis.Z.Dot(worldUp) >= cfg.PalmUpDot

	case in.Grip.Valid:
		// Controller fallback: hover above the grip, facing the viewer.
		up, fwd := worldUp, worldForward
		if in.Grip.OrientationValid {
			up = in.Grip.Orientation.Rotate(worldUp)
			fwd = in.Grip.Orientation.Rotate(worldForward)
		}
		targetPos := in.Grip.Position.Add(up.Scale(cfg.OffsetDistance)).Add(fwd.Scale(cfg.OffsetDistance * 0.5))

		z := worldUp
		if in.Head.Valid {
			if toHead, ok := in.Head.Position.Sub(targetPos).Normalized(); ok {
				z = toHead
			}
		}
		basis := basisFromNormal(z, worldRight)
		a.blend(targetPos, basis.Quat(), cfg.Smoothing)
		a.tracked = true
		// A controller-anchored menu has no palm to face the wrong way;
		// report palm-up so orientation gating stays out of the way.
		a.palmUp = true
	}
}

// palmNormal resolves the outward palm normal for a frame where the
// wrist position is valid.
func (a *anchorState) palmNormal(hand HandPoses) Vec3 {
	if hand.Wrist.OrientationValid {
		if n, ok := hand.Wrist.Orientation.Rotate(palmOutLocal).Normalized(); ok {
			return n
		}
	}
	if hand.IndexTip.Valid && hand.ThumbTip.Valid {
		toIndex := hand.IndexTip.Position.Sub(hand.Wrist.Position)
		toThumb := hand.ThumbTip.Position.Sub(hand.Wrist.Position)
		cross := toIndex.Cross(toThumb)
		if hand.Side == HandRight {
			cross = cross.Scale(-1)
		}
		if n, ok := cross.Normalized(); ok {
			return n
		}
	}
	return worldUp
}

// blend moves the smoothed transform toward the target. The first valid
// frame snaps instead of blending so the menu does not sail in from the
// origin.
func (a *anchorState) blend(pos Vec3, rot Quat, t float32) {
	if !a.hasPose {
		a.pos = pos
		a.rot = rot
		a.hasPose = true
		return
	}
	a.pos = a.pos.Lerp(pos, t)
	a.rot = Slerp(a.rot, rot, t)
}

// axes returns the menu plane's world-space basis from the smoothed
// orientation.
func (a *anchorState) axes() Basis {
	return Basis{
		X: a.rot.Rotate(worldRight),
		Y: a.rot.Rotate(worldUp),
		Z: a.rot.Rotate(Vec3{0, 0, 1}),
	}
}
