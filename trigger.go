package frond

import "time"

// The discrete trigger modality: ray controllers activate their hovered
// element on the trigger's rising edge. The hardware debounces the
// button, so no per-element hysteresis applies; visibility and the
// global cooldown gate it exactly like pokes.

// triggerFired reports whether a ray source's trigger clicked this
// frame: tracked, a false→true edge, and the global cooldown lapsed.
func triggerFired(s *sourceState, now time.Time, sup *suppression) bool {
	return s.in.Pose.Valid &&
		s.in.Trigger && !s.prevTrigger &&
		!now.Before(sup.globalUntil)
}
