package frond

// Handedness identifies which of the user's hands a pose or source
// belongs to.
type Handedness uint8

const (
	HandLeft Handedness = iota
	HandRight
)

// String returns "left" or "right".
func (h Handedness) String() string {
	if h == HandLeft {
		return "left"
	}
	return "right"
}

// Other returns the opposite hand.
func (h Handedness) Other() Handedness {
	if h == HandLeft {
		return HandRight
	}
	return HandLeft
}

// Modality distinguishes the two pointer kinds the engine arbitrates.
type Modality uint8

const (
	// ModalityRay is a tracked controller pointing a selection ray.
	ModalityRay Modality = iota
	// ModalityHand is a tracked hand joint used as a 3D poke point.
	ModalityHand
)

// String returns "ray" or "hand".
func (m Modality) String() string {
	if m == ModalityRay {
		return "ray"
	}
	return "hand"
}

// Pose is a single tracked position and orientation for the current
// frame. Poses are ephemeral: the engine never extrapolates a stale one.
type Pose struct {
	Position    Vec3
	Orientation Quat

	// Radius is the joint radius reported by hand tracking, in the same
	// units as Position. Zero when the platform does not report one.
	Radius float32

	// Valid reports whether Position is trustworthy this frame.
	Valid bool

	// OrientationValid reports whether Orientation is trustworthy this
	// frame. Hand runtimes routinely deliver positions without usable
	// orientations, so the two are flagged separately.
	OrientationValid bool
}

// HandPoses bundles the anchor hand's joints for one frame. Any pose may
// be absent (Valid == false); the anchor solver degrades through its
// fallback chain rather than failing.
type HandPoses struct {
	Side     Handedness
	Wrist    Pose
	IndexTip Pose
	ThumbTip Pose
}

// SourceID is the platform's stable identifier for an input source. It
// stays constant for the lifetime of the physical device or tracked hand.
type SourceID string

// SourceInput is one input source's state for the current frame.
//
// For ModalityRay sources, Pose is the ray origin and orientation (the
// ray points along the pose's local -Z), Trigger is the discrete select
// button, and Squeeze is the grip button.
//
// For ModalityHand sources, Pose is the poking fingertip position;
// Trigger and Squeeze are ignored.
type SourceInput struct {
	ID       SourceID
	Side     Handedness
	Modality Modality
	Pose     Pose
	Trigger  bool
	Squeeze  bool
}

// rayDir returns the world-space ray direction for a ray source.
func (s SourceInput) rayDir() Vec3 {
	return s.Pose.Orientation.Rotate(worldForward)
}

// FrameInput is everything the engine consumes for one frame. The caller
// assembles it from the platform's tracking snapshot and passes it to
// Engine.Update; the engine never reads tracking state any other way.
type FrameInput struct {
	// AnchorHand carries the joints of the hand the menu is anchored to.
	AnchorHand HandPoses

	// Grip is the same-side controller grip pose, used as the anchor
	// fallback when the wrist is not tracked.
	Grip Pose

	// Head is the viewer's head pose. Only consulted to face the menu at
	// the user when anchoring falls back to the controller grip.
	Head Pose

	// Sources lists every connected input source with this frame's pose
	// and button state. A source absent from the list keeps its engine
	// state but is treated as untracked this frame.
	Sources []SourceInput

	// RequestedShown is the host's menu toggle. The gate can refuse or
	// auto-hide, but never shows a menu the host has not requested.
	RequestedShown bool

	// ExternalSuppress force-hides the menu while some exclusive host
	// interaction (object placement, drawing) is in progress.
	ExternalSuppress bool
}
