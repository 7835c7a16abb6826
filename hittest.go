package frond

import "github.com/chewxy/math32"

// candidate is the single element a pointer is eligible to interact with
// this frame, with the measurements arbitration used to pick it.
type candidate struct {
	elem *element

	// depth is the poke penetration behind the element's front face,
	// clamped to the element's depth ceiling. Zero for ray candidates.
	depth float32

	// lateral is the poke point's distance from the element center in
	// the menu plane. First arbitration tie-breaker.
	lateral float32

	// rayDist is the distance along the ray to the hit. Zero for poke
	// candidates.
	rayDist float32
}

// pokeCandidate finds the one element a fingertip point may press this
// frame, or nil. An element qualifies when the point projects inside its
// shrunken bounds and sits behind the front face (positive penetration
// along the outward normal). The deepest penetration wins; ties break to
// the smallest lateral offset, then to declaration order. Scanning the
// declaration-ordered slice makes the result identical across runs with
// identical input.
func pokeCandidate(point Vec3, elems []*element, origin Vec3, axes Basis, shrink float32) *candidate {
	var best candidate
	found := false
	for _, e := range elems {
		d := point.Sub(e.center(origin, axes))
		lx := d.Dot(axes.X)
		ly := d.Dot(axes.Y)
		if math32.Abs(lx) > e.desc.HalfW*shrink || math32.Abs(ly) > e.desc.HalfH*shrink {
			continue
		}
		depth := -d.Dot(axes.Z)
		if depth <= 0 {
			continue
		}
		if depth > e.maxDepth {
			depth = e.maxDepth
		}
		lateral := math32.Sqrt(lx*lx + ly*ly)
		if !found || depth > best.depth ||
			(depth == best.depth && lateral < best.lateral) {
			best = candidate{elem: e, depth: depth, lateral: lateral}
			found = true
		}
	}
	if !found {
		return nil
	}
	return &best
}

// rayCandidate intersects a pointing ray with every element's rectangle
// and returns the nearest positive-distance hit, or nil. Ray hits use
// the full rectangle; the shrink margin only guards poke edge contact.
func rayCandidate(rayOrigin, rayDir Vec3, elems []*element, origin Vec3, axes Basis) *candidate {
	var best candidate
	found := false
	for _, e := range elems {
		center := e.center(origin, axes)
		t, ok := rayPlaneDist(rayOrigin, rayDir, center, axes.Z)
		if !ok {
			continue
		}
		hit := rayOrigin.Add(rayDir.Scale(t)).Sub(center)
		if math32.Abs(hit.Dot(axes.X)) > e.desc.HalfW || math32.Abs(hit.Dot(axes.Y)) > e.desc.HalfH {
			continue
		}
		if !found || t < best.rayDist {
			best = candidate{elem: e, rayDist: t}
			found = true
		}
	}
	if !found {
		return nil
	}
	return &best
}
