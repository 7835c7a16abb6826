package frond

import "time"

// Visibility is the menu's gate state.
type Visibility uint8

const (
	// Hidden means the host has not requested the menu (or revoked the
	// request).
	Hidden Visibility = iota
	// Shown means the menu is visible and elements can activate.
	Shown
	// AutoHidden means the host still wants the menu but the gate pulled
	// it: palm turned away, a grab is in progress, or the host raised
	// its suppress flag.
	AutoHidden
)

// String returns the state name.
func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Shown:
		return "shown"
	default:
		return "autohidden"
	}
}

// suppression is the process-wide activation block state. Every
// activation path checks it; the gate and the crossing detector write it.
type suppression struct {
	globalUntil   time.Time
	crossingUntil time.Time

	// crossed latches while the poke point stays inside the crossing
	// band, so the release distance (not the trip distance) decides when
	// the condition clears.
	crossed bool
}

func (s *suppression) activationBlocked(now time.Time) bool {
	return now.Before(s.globalUntil) || now.Before(s.crossingUntil)
}

// extendGlobal pushes the global cooldown out to at least now+d.
func (s *suppression) extendGlobal(now time.Time, d time.Duration) {
	if until := now.Add(d); until.After(s.globalUntil) {
		s.globalUntil = until
	}
}

func (s *suppression) extendCrossing(now time.Time, d time.Duration) {
	if until := now.Add(d); until.After(s.crossingUntil) {
		s.crossingUntil = until
	}
}

// updateCrossing runs the two-threshold crossing detector. pokeDist is
// the distance between the poke hand's tracked point and the anchor
// wrist; ok is false when either point is untracked this frame.
func (s *suppression) updateCrossing(now time.Time, pokeDist float32, ok bool, cfg Config) {
	if !ok {
		return
	}
	switch {
	case pokeDist < cfg.CrossTripDist:
		s.crossed = true
	case pokeDist > cfg.CrossReleaseDist:
		s.crossed = false
	}
	if s.crossed {
		s.extendCrossing(now, cfg.CrossCooldown)
	}
}

// gateInput is everything the visibility rule consumes for one frame.
type gateInput struct {
	requestedShown   bool
	externalSuppress bool
	grabActive       bool
	anchorTracked    bool
	palmUp           bool
}

// gate is the Shown/Hidden/AutoHidden state machine. Its output is the
// debounced visibility the rest of the pipeline treats as ground truth
// for the frame.
type gate struct {
	state       Visibility
	lastShownAt time.Time

	// pinchGraceUntil masks grab-driven hiding right after Shown, so the
	// pinch that opened the menu cannot instantly close it again.
	pinchGraceUntil time.Time
}

// step advances the gate one frame. It returns the previous state; the
// caller fires the visibility event and resets press state on change.
// sup is written on a transition to Shown (grace windows open there).
func (g *gate) step(now time.Time, in gateInput, sup *suppression, cfg Config) (prev Visibility) {
	prev = g.state

	grabHides := in.grabActive && !now.Before(g.pinchGraceUntil)
	mustHide := grabHides ||
		(in.anchorTracked && !in.palmUp) ||
		in.externalSuppress
	allowShow := in.requestedShown &&
		!in.grabActive &&
		(!in.anchorTracked || in.palmUp) &&
		!in.externalSuppress

	switch {
	case !in.requestedShown:
		g.state = Hidden
	case g.state == Shown && mustHide:
		g.state = AutoHidden
	case g.state != Shown && allowShow:
		g.state = Shown
		g.lastShownAt = now
		g.pinchGraceUntil = now.Add(cfg.PinchGrace)
		sup.extendGlobal(now, cfg.GlobalGrace)
		sup.extendCrossing(now, cfg.GlobalGrace)
	}
	return prev
}
