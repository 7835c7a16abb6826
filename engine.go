package frond

import (
	"fmt"
	"log/slog"
	"time"
)

// Engine is the spatial menu's arbitration core. It owns all mutable
// state (anchor transform, gate, suppression windows, per-element press
// state, per-source state) and advances it through Update once per
// tracking frame. Single-threaded by contract: one goroutine calls
// Update, and callbacks fire synchronously from inside it.
type Engine struct {
	cfg Config
	log *slog.Logger

	elems     []*element // declaration order
	elemsByID map[string]*element

	// visible is the frame's target snapshot; pendingVisible holds a
	// SetVisible request until the next frame starts, so callbacks that
	// swap submenus mid-frame never mutate the list a stage is walking.
	visible        []*element
	pendingVisible []string
	pendingSet     bool

	anchor  anchorState
	gate    gate
	sup     suppression
	press   pressEngine
	sources *sourceRegistry
	reveal  revealAnimator

	handlers handlerRegistry

	// depths and winners are per-frame scratch, reused across frames.
	depths  map[*element]float32
	winners map[*element]SourceID

	lastUpdate time.Time
	hasLast    bool
}

// New builds an engine from a validated configuration and the menu's
// element declarations. All elements start visible. Construction fails
// on any inconsistent tunable or element; the engine never starts in a
// state its invariants do not hold in.
func New(cfg Config, elems []ElementDesc) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return nil, fmt.Errorf("%w: menu needs at least one element", ErrInvalidConfig)
	}

	e := &Engine{
		cfg:       cfg,
		log:       slog.Default(),
		elemsByID: make(map[string]*element, len(elems)),
		sources:   newSourceRegistry(),
		press:     pressEngine{cfg: cfg},
		depths:    make(map[*element]float32),
		winners:   make(map[*element]SourceID),
	}
	for i, desc := range elems {
		if err := desc.validate(); err != nil {
			return nil, err
		}
		if _, dup := e.elemsByID[desc.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate element ID %q", ErrInvalidConfig, desc.ID)
		}
		el := newElement(desc, i, cfg)
		e.elems = append(e.elems, el)
		e.elemsByID[desc.ID] = el
	}
	e.visible = append([]*element(nil), e.elems...)
	return e, nil
}

// SetLogger replaces the engine's logger (slog.Default() initially).
func (e *Engine) SetLogger(log *slog.Logger) {
	if log != nil {
		e.log = log
	}
}

// SetVisible replaces the visible element sublist, e.g. when swapping to
// a submenu. Unknown IDs are logged and skipped. The change takes effect
// at the start of the next frame; a frame already in flight keeps its
// snapshot.
func (e *Engine) SetVisible(ids ...string) {
	e.pendingVisible = append(e.pendingVisible[:0], ids...)
	e.pendingSet = true
}

// Update advances the engine one frame. now must come from a monotonic
// clock (time.Now qualifies) and never run backwards. The pipeline order
// is fixed (anchor, gate, arbitration, hysteresis and triggers) because
// each stage consumes booleans the earlier stages computed this same
// frame: a frame that decides to hide must also suppress that frame's
// activations.
func (e *Engine) Update(now time.Time, in FrameInput) {
	var dt float32
	if e.hasLast {
		dt = float32(now.Sub(e.lastUpdate).Seconds())
	}
	e.lastUpdate = now
	e.hasLast = true

	// Snapshot the frame's targets before anything can fire a callback.
	if e.pendingSet {
		e.applyVisible()
	}
	targets := e.visible

	e.sources.beginFrame(in.Sources)

	// Stage 1: anchor.
	e.anchor.solve(in, e.cfg)

	// Stage 2: gate, fed by grab/pinch and the crossing detector.
	grab := e.sources.anySqueeze() || e.pinchActive(in.AnchorHand)

	pokeDist, pokeOK := e.crossingDistance(in)
	e.sup.updateCrossing(now, pokeDist, pokeOK, e.cfg)

	prev := e.gate.step(now, gateInput{
		requestedShown:   in.RequestedShown,
		externalSuppress: in.ExternalSuppress,
		grabActive:       grab,
		anchorTracked:    e.anchor.tracked,
		palmUp:           e.anchor.palmUp,
	}, &e.sup, e.cfg)
	state := e.gate.state
	if state != prev {
		if state == Shown {
			resetAll(e.elems)
		}
		e.reveal.transition(state == Shown, e.cfg.RevealDuration)
		e.fireVisibility(VisibilityContext{From: prev, To: state, Time: now})
	}

	// Stages 3 and 4: arbitration, presses, triggers. A frame that is
	// not Shown, including one that just became AutoHidden, evaluates
	// none of them.
	if state == Shown && e.anchor.hasPose {
		e.updatePointers(now, targets)
	} else {
		e.clearHovers()
	}

	e.reveal.update(dt)
	e.sources.endFrame()
}

// updatePointers runs per-pointer arbitration, hover bookkeeping, the
// discrete trigger, and the press hysteresis update.
func (e *Engine) updatePointers(now time.Time, targets []*element) {
	axes := e.anchor.axes()
	clear(e.depths)
	clear(e.winners)

	for _, s := range e.sources.order {
		var cand *candidate
		if s.in.Pose.Valid {
			switch s.modality {
			case ModalityHand:
				// The anchor hand carries the menu; only the other hand
				// pokes it.
				if s.side != e.cfg.AnchorHand {
					cand = pokeCandidate(s.in.Pose.Position, targets, e.anchor.pos, axes, e.cfg.Shrink)
				}
			case ModalityRay:
				cand = rayCandidate(s.in.Pose.Position, s.in.rayDir(), targets, e.anchor.pos, axes)
			}
		}

		hovered := ""
		if cand != nil {
			hovered = cand.elem.desc.ID
		}
		if hovered != s.hovered {
			s.hovered = hovered
			e.fireHover(HoverContext{Source: s.id, ElementID: hovered})
		}

		if cand == nil {
			continue
		}
		switch s.modality {
		case ModalityHand:
			if cand.depth > e.depths[cand.elem] {
				e.depths[cand.elem] = cand.depth
				e.winners[cand.elem] = s.id
			}
		case ModalityRay:
			if triggerFired(s, now, &e.sup) {
				e.fireActivate(ActivateContext{
					ElementID: cand.elem.desc.ID,
					Source:    s.id,
					Modality:  ModalityRay,
					Time:      now,
				})
			}
		}
	}

	res := e.press.update(now, targets, e.depths, &e.sup)
	for _, el := range res.engaged {
		e.fireActivate(ActivateContext{
			ElementID: el.desc.ID,
			Source:    e.winners[el],
			Modality:  ModalityHand,
			Time:      now,
		})
	}
}

// clearHovers drops every pointer's hover while the menu is not shown.
func (e *Engine) clearHovers() {
	for _, s := range e.sources.order {
		if s.hovered != "" {
			s.hovered = ""
			e.fireHover(HoverContext{Source: s.id, ElementID: ""})
		}
	}
}

// applyVisible rebuilds the visible slice, in declaration order, from
// the pending ID set.
func (e *Engine) applyVisible() {
	e.pendingSet = false
	want := make(map[string]bool, len(e.pendingVisible))
	for _, id := range e.pendingVisible {
		if _, ok := e.elemsByID[id]; !ok {
			e.log.Warn("frond: SetVisible: unknown element", "id", id)
			continue
		}
		want[id] = true
	}
	e.visible = e.visible[:0]
	for _, el := range e.elems {
		if want[el.desc.ID] {
			e.visible = append(e.visible, el)
			continue
		}
		// An element leaving the visible sublist cannot stay pressed.
		// Its cooldown survives so a submenu round-trip cannot re-fire
		// it early.
		el.press.pressed = false
		el.press.stability = 0
		el.press.smoothedDepth = 0
	}
}

// pinchActive reports whether the anchor hand's index and thumb tips are
// tracked and closer than the pinch threshold.
func (e *Engine) pinchActive(hand HandPoses) bool {
	if !hand.IndexTip.Valid || !hand.ThumbTip.Valid {
		return false
	}
	dist := hand.IndexTip.Position.Dist(hand.ThumbTip.Position)
	return dist < e.cfg.pinchThreshold(hand.IndexTip.Radius, hand.ThumbTip.Radius)
}

// crossingDistance measures the poke hand's tracked point against the
// anchor wrist. ok is false unless both hands are tracked this frame.
//
// Plain distance alone cannot tell a crossing from a poke: the menu
// hangs close enough to the palm that every legitimate poke is inside
// the trip distance. Only a point behind the palm plane counts as
// crossing; in front of it the detector sees a cleared distance.
func (e *Engine) crossingDistance(in FrameInput) (dist float32, ok bool) {
	if !in.AnchorHand.Wrist.Valid || !e.anchor.hasPose {
		return 0, false
	}
	for _, s := range e.sources.order {
		if s.modality == ModalityHand && s.side != e.cfg.AnchorHand && s.in.Pose.Valid {
			rel := s.in.Pose.Position.Sub(in.AnchorHand.Wrist.Position)
			if rel.Dot(e.anchor.axes().Z) > 0 {
				return e.cfg.CrossReleaseDist + 1, true
			}
			return rel.Length(), true
		}
	}
	return 0, false
}

// DisconnectSource drops all engine state for a source the platform
// reports disconnected.
func (e *Engine) DisconnectSource(id SourceID) {
	e.sources.disconnect(id)
}

// Visibility returns the gate's current state.
func (e *Engine) Visibility() Visibility {
	return e.gate.state
}

// Anchor returns the menu's smoothed world transform. ok is false
// before the first tracked frame.
func (e *Engine) Anchor() (pos Vec3, rot Quat, ok bool) {
	return e.anchor.pos, e.anchor.rot, e.anchor.hasPose
}

// Reveal returns the cosmetic 0..1 show/hide fraction.
func (e *Engine) Reveal() float32 {
	return e.reveal.value
}

// Hovered returns the element a pointer is hovering, or "" for none.
func (e *Engine) Hovered(id SourceID) string {
	if s, ok := e.sources.byID[id]; ok {
		return s.hovered
	}
	return ""
}

// Pressed reports whether an element is currently engaged.
func (e *Engine) Pressed(id string) bool {
	if el, ok := e.elemsByID[id]; ok {
		return el.press.pressed
	}
	return false
}

// Depth returns an element's smoothed penetration depth, for hosts that
// animate button travel.
func (e *Engine) Depth(id string) float32 {
	if el, ok := e.elemsByID[id]; ok {
		return el.press.smoothedDepth
	}
	return 0
}

// Elements returns the declared element IDs in declaration order.
func (e *Engine) Elements() []string {
	ids := make([]string, len(e.elems))
	for i, el := range e.elems {
		ids[i] = el.desc.ID
	}
	return ids
}

// VisibleElements returns the IDs in the current visible sublist.
func (e *Engine) VisibleElements() []string {
	ids := make([]string, len(e.visible))
	for i, el := range e.visible {
		ids[i] = el.desc.ID
	}
	return ids
}
