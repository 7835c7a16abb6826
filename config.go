package frond

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every validation error returned from New.
var ErrInvalidConfig = errors.New("frond: invalid config")

// Config holds every tunable of the menu engine. All defaults were chosen
// empirically on hand-tracking hardware; treat them as starting points,
// not physical constants. Distances and depths share the unit of the
// poses fed to Update (meters on every runtime we have seen).
type Config struct {
	// AnchorHand is the hand the menu follows. The opposite hand pokes.
	AnchorHand Handedness

	// OffsetDistance is how far the panel floats off the palm, along the
	// palm normal.
	OffsetDistance float32

	// Smoothing is the per-frame exponential blend toward the target
	// transform, in (0, 1]. Higher tracks tighter but passes jitter
	// through.
	Smoothing float32

	// PalmUpDot is the minimum dot product between the palm normal and
	// world up for the palm to count as facing up.
	PalmUpDot float32

	// PressScale and ReleaseScale derive each element's press and release
	// depth thresholds from its full height: press at PressScale*height,
	// release at ReleaseScale*height. PressScale must strictly exceed
	// ReleaseScale; the gap is the hysteresis band that stops chatter at
	// a single boundary.
	PressScale   float32
	ReleaseScale float32

	// PressMaxScale clamps the measured penetration depth, again as a
	// multiple of element height, so a finger pushed far through the
	// panel does not take many frames of smoothing to come back out.
	PressMaxScale float32

	// DepthSmoothing is the per-frame exponential blend applied to each
	// element's penetration depth before it is reported to hosts.
	DepthSmoothing float32

	// StableFrames is how many consecutive frames a poke must stay past
	// the press threshold before it engages. Raising it trades latency
	// for jitter immunity.
	StableFrames int

	// Shrink scales element bounds for poke tests only, keeping sloppy
	// edge contacts from registering. Ray hits use the full rectangle.
	Shrink float32

	// ElementCooldown blocks re-activation of one element after it fires.
	ElementCooldown time.Duration

	// GlobalGrace blocks all activation after the menu becomes Shown.
	// Without it, a finger already inside the panel's volume at the
	// moment it appears would fire instantly.
	GlobalGrace time.Duration

	// PinchGrace disables pinch/squeeze-driven auto-hide right after the
	// menu becomes Shown, because the gesture that summoned the menu
	// would otherwise immediately dismiss it.
	PinchGrace time.Duration

	// CrossTripDist and CrossReleaseDist bound the hand-crossing
	// detector: the cooldown arms when the poke point comes within
	// CrossTripDist of the anchor wrist on the back side of the palm
	// plane, and disarms past CrossReleaseDist or back in front of the
	// plane. CrossReleaseDist must be >= CrossTripDist.
	CrossTripDist    float32
	CrossReleaseDist float32

	// CrossCooldown is how long activation stays blocked after a
	// crossing trips.
	CrossCooldown time.Duration

	// PinchDistFixed is the index-thumb distance below which the anchor
	// hand counts as pinching, used when joint radii are unavailable.
	// With radii, the threshold is (rIndex+rThumb)*PinchRadiusScale
	// clamped to [PinchDistMin, PinchDistMax].
	PinchDistFixed   float32
	PinchRadiusScale float32
	PinchDistMin     float32
	PinchDistMax     float32

	// RevealDuration is the length of the cosmetic show/hide tween
	// reported by Engine.Reveal.
	RevealDuration time.Duration
}

// DefaultConfig returns the recommended configuration.
func DefaultConfig() Config {
	return Config{
		AnchorHand:     HandLeft,
		OffsetDistance: 0.06,
		Smoothing:      0.35,
		PalmUpDot:      0.5,

		PressScale:     0.35,
		ReleaseScale:   0.20,
		PressMaxScale:  1.5,
		DepthSmoothing: 0.5,
		StableFrames:   4,
		Shrink:         0.85,

		ElementCooldown: 180 * time.Millisecond,
		GlobalGrace:     1000 * time.Millisecond,
		PinchGrace:      400 * time.Millisecond,

		CrossTripDist:    0.15,
		CrossReleaseDist: 0.20,
		CrossCooldown:    350 * time.Millisecond,

		PinchDistFixed:   0.02,
		PinchRadiusScale: 1.25,
		PinchDistMin:     0.012,
		PinchDistMax:     0.035,

		RevealDuration: 150 * time.Millisecond,
	}
}

// SnappyConfig trades jitter immunity for latency: fewer stability
// frames, tighter smoothing, shorter suppression windows.
func SnappyConfig() Config {
	cfg := DefaultConfig()
	cfg.Smoothing = 0.55
	cfg.DepthSmoothing = 0.7
	cfg.StableFrames = 2
	cfg.GlobalGrace = 500 * time.Millisecond
	cfg.ElementCooldown = 120 * time.Millisecond
	return cfg
}

// RelaxedConfig is for noisy tracking: more stability frames, heavier
// smoothing, longer suppression windows.
func RelaxedConfig() Config {
	cfg := DefaultConfig()
	cfg.Smoothing = 0.2
	cfg.DepthSmoothing = 0.35
	cfg.StableFrames = 6
	cfg.GlobalGrace = 1500 * time.Millisecond
	cfg.ElementCooldown = 250 * time.Millisecond
	return cfg
}

// Validate reports the first problem with the configuration, or nil. New
// refuses to build an engine from an invalid config; the state machines
// downstream assume these relationships and misbehave quietly without
// them.
func (c Config) Validate() error {
	checks := []struct {
		bad bool
		msg string
	}{
		{!isFinite(c.OffsetDistance), "OffsetDistance must be finite"},
		{!(c.Smoothing > 0 && c.Smoothing <= 1), "Smoothing must be in (0, 1]"},
		{!(c.DepthSmoothing > 0 && c.DepthSmoothing <= 1), "DepthSmoothing must be in (0, 1]"},
		{!isFinite(c.PalmUpDot) || c.PalmUpDot < -1 || c.PalmUpDot > 1, "PalmUpDot must be in [-1, 1]"},
		{!isFinite(c.PressScale) || c.PressScale <= 0, "PressScale must be positive and finite"},
		{!isFinite(c.ReleaseScale) || c.ReleaseScale < 0, "ReleaseScale must be non-negative and finite"},
		{c.PressScale <= c.ReleaseScale, "PressScale must strictly exceed ReleaseScale"},
		{!isFinite(c.PressMaxScale) || c.PressMaxScale < c.PressScale, "PressMaxScale must be finite and >= PressScale"},
		{c.StableFrames < 1, "StableFrames must be at least 1"},
		{!(c.Shrink > 0 && c.Shrink <= 1), "Shrink must be in (0, 1]"},
		{c.ElementCooldown < 0, "ElementCooldown must be non-negative"},
		{c.GlobalGrace < 0, "GlobalGrace must be non-negative"},
		{c.PinchGrace < 0, "PinchGrace must be non-negative"},
		{!isFinite(c.CrossTripDist) || c.CrossTripDist < 0, "CrossTripDist must be non-negative and finite"},
		{!isFinite(c.CrossReleaseDist) || c.CrossReleaseDist < c.CrossTripDist, "CrossReleaseDist must be finite and >= CrossTripDist"},
		{c.CrossCooldown < 0, "CrossCooldown must be non-negative"},
		{!isFinite(c.PinchDistFixed) || c.PinchDistFixed <= 0, "PinchDistFixed must be positive and finite"},
		{!isFinite(c.PinchRadiusScale) || c.PinchRadiusScale <= 0, "PinchRadiusScale must be positive and finite"},
		{!isFinite(c.PinchDistMin) || c.PinchDistMin <= 0, "PinchDistMin must be positive and finite"},
		{!isFinite(c.PinchDistMax) || c.PinchDistMax < c.PinchDistMin, "PinchDistMax must be finite and >= PinchDistMin"},
		{c.RevealDuration < 0, "RevealDuration must be non-negative"},
	}
	for _, ch := range checks {
		if ch.bad {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, ch.msg)
		}
	}
	return nil
}

// pinchThreshold returns the index-thumb distance below which the hand
// counts as pinching, derived from joint radii when both are reported.
func (c Config) pinchThreshold(indexRadius, thumbRadius float32) float32 {
	if indexRadius <= 0 || thumbRadius <= 0 {
		return c.PinchDistFixed
	}
	d := (indexRadius + thumbRadius) * c.PinchRadiusScale
	if d < c.PinchDistMin {
		return c.PinchDistMin
	}
	if d > c.PinchDistMax {
		return c.PinchDistMax
	}
	return d
}
