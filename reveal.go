package frond

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// revealAnimator tweens a 0..1 reveal fraction across visibility
// transitions, for hosts to scale or fade the panel with. Purely
// cosmetic: arbitration never consults it.
type revealAnimator struct {
	tween *gween.Tween
	value float32
}

// transition retargets the tween: ease out when showing, ease in when
// hiding. A zero duration snaps.
func (r *revealAnimator) transition(shown bool, d time.Duration) {
	target := float32(0)
	fn := ease.InQuad
	if shown {
		target = 1
		fn = ease.OutQuad
	}
	dur := float32(d.Seconds())
	if dur <= 0 {
		r.value = target
		r.tween = nil
		return
	}
	r.tween = gween.New(r.value, target, dur, fn)
}

// update advances the tween by dt seconds.
func (r *revealAnimator) update(dt float32) {
	if r.tween == nil {
		return
	}
	v, done := r.tween.Update(dt)
	r.value = v
	if done {
		r.tween = nil
	}
}
