package frond

// sourceState is the engine's per-source bookkeeping. Entries are
// created when a source first appears in a frame and removed only by
// DisconnectSource; a source missing from one frame's input keeps its
// state and is simply untracked for that frame.
type sourceState struct {
	id       SourceID
	side     Handedness
	modality Modality

	// in is this frame's input for the source. in.Pose.Valid is false
	// when the source was absent from the frame.
	in SourceInput

	// prevTrigger is last frame's trigger state, for rising-edge
	// detection.
	prevTrigger bool

	// hovered is the element the pointer hovered last frame, for
	// enter/leave-style hover change events. Empty means none.
	hovered string
}

// sourceRegistry keys per-source state by the platform's stable IDs,
// with explicit lifecycle: created on first sight, removed on
// disconnect. order preserves first-seen order so per-frame iteration is
// deterministic.
type sourceRegistry struct {
	byID  map[SourceID]*sourceState
	order []*sourceState
}

func newSourceRegistry() *sourceRegistry {
	return &sourceRegistry{byID: make(map[SourceID]*sourceState)}
}

// beginFrame folds one frame's source inputs into the registry. Sources
// seen for the first time are connected; sources absent this frame are
// marked untracked but keep their state (and their previous trigger
// state, so reappearing mid-press cannot fake a rising edge).
func (r *sourceRegistry) beginFrame(inputs []SourceInput) {
	for _, s := range r.order {
		s.in.Pose.Valid = false
		s.in.Pose.OrientationValid = false
	}
	for _, in := range inputs {
		s, ok := r.byID[in.ID]
		if !ok {
			s = &sourceState{id: in.ID, side: in.Side, modality: in.Modality}
			r.byID[in.ID] = s
			r.order = append(r.order, s)
		}
		s.in = in
	}
}

// endFrame records trigger states for next frame's edge detection.
func (r *sourceRegistry) endFrame() {
	for _, s := range r.order {
		if s.in.Pose.Valid {
			s.prevTrigger = s.in.Trigger
		}
	}
}

// disconnect removes a source and all its state.
func (r *sourceRegistry) disconnect(id SourceID) {
	if _, ok := r.byID[id]; !ok {
		return
	}
	delete(r.byID, id)
	for i, s := range r.order {
		if s.id == id {
			copy(r.order[i:], r.order[i+1:])
			r.order[len(r.order)-1] = nil
			r.order = r.order[:len(r.order)-1]
			return
		}
	}
}

// anySqueeze reports whether any tracked source holds its squeeze button.
func (r *sourceRegistry) anySqueeze() bool {
	for _, s := range r.order {
		if s.in.Pose.Valid && s.in.Squeeze {
			return true
		}
	}
	return false
}
