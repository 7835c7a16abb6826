package frond

import "time"

// pressEngine turns per-frame poke candidates into debounced engage and
// release decisions. It owns every element's pressState.
//
// The discipline is a Schmitt trigger with a stability count on top: a
// candidate must stay past the element's press depth for StableFrames
// consecutive frames to engage, and only drops out once it falls to the
// release depth. Engagement additionally requires the element, global,
// and crossing cooldowns to have lapsed.
type pressEngine struct {
	cfg Config
}

// pressResult reports what one frame of the hysteresis update did.
type pressResult struct {
	engaged  []*element
	released []*element
}

// update advances every element's press state one frame. depths maps
// elements that won poke arbitration this frame to their candidate
// depth; every other element sees a target depth of zero. Arbitration
// yields at most one winner per pointer, so at most one element can
// newly engage per pointer per frame.
func (p *pressEngine) update(now time.Time, elems []*element, depths map[*element]float32, sup *suppression) pressResult {
	var res pressResult
	for _, e := range elems {
		target := depths[e]
		won := target > 0

		e.press.smoothedDepth += (target - e.press.smoothedDepth) * p.cfg.DepthSmoothing

		if won && target >= e.pressDepth {
			e.press.stability++
		} else {
			e.press.stability = 0
		}

		if !e.press.pressed &&
			e.press.stability >= p.cfg.StableFrames &&
			!now.Before(e.press.cooldownUntil) &&
			!sup.activationBlocked(now) {
			e.press.pressed = true
			e.press.cooldownUntil = now.Add(p.cfg.ElementCooldown)
			res.engaged = append(res.engaged, e)
			continue
		}

		if e.press.pressed && target <= e.releaseDepth {
			e.press.pressed = false
			e.press.stability = 0
			res.released = append(res.released, e)
		}
	}
	return res
}

// resetAll zeroes every element's press state. Runs on each transition
// to Shown so stale depth or stability from the last showing cannot leak
// into the new one. The global grace window opened by the same
// transition covers the zeroed element cooldowns.
func resetAll(elems []*element) {
	for _, e := range elems {
		e.press.reset()
	}
}
