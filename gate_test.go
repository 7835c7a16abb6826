package frond

import (
	"testing"
	"time"
)

func gateAt(state Visibility) *gate {
	return &gate{state: state}
}

func shownInput() gateInput {
	return gateInput{requestedShown: true, anchorTracked: true, palmUp: true}
}

func TestGateTransitions(t *testing.T) {
	now := time.Unix(1000, 0)

	tests := []struct {
		name string
		from Visibility
		in   gateInput
		want Visibility
	}{
		{"hidden shows when allowed", Hidden, shownInput(), Shown},
		{"autohidden reshows when allowed", AutoHidden, shownInput(), Shown},
		{"shown stays shown", Shown, shownInput(), Shown},
		{"not requested stays hidden", Hidden, gateInput{anchorTracked: true, palmUp: true}, Hidden},
		{"shown hides when request revoked", Shown, gateInput{anchorTracked: true, palmUp: true}, Hidden},
		{"autohidden hides when request revoked", AutoHidden, gateInput{}, Hidden},
		{"palm down autohides", Shown, gateInput{requestedShown: true, anchorTracked: true}, AutoHidden},
		{"external suppress autohides", Shown, func() gateInput {
			in := shownInput()
			in.externalSuppress = true
			return in
		}(), AutoHidden},
		{"grab autohides", Shown, func() gateInput {
			in := shownInput()
			in.grabActive = true
			return in
		}(), AutoHidden},
		{"untracked hand does not autohide", Shown, gateInput{requestedShown: true}, Shown},
		{"untracked hand can show", Hidden, gateInput{requestedShown: true}, Shown},
		{"grab blocks showing", Hidden, func() gateInput {
			in := shownInput()
			in.grabActive = true
			return in
		}(), Hidden},
		{"palm down blocks showing", Hidden, gateInput{requestedShown: true, anchorTracked: true}, Hidden},
		{"suppress blocks showing", Hidden, func() gateInput {
			in := shownInput()
			in.externalSuppress = true
			return in
		}(), Hidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gateAt(tt.from)
			var sup suppression
			g.step(now, tt.in, &sup, DefaultConfig())
			if g.state != tt.want {
				t.Errorf("state = %v, want %v", g.state, tt.want)
			}
		})
	}
}

func TestGateShowOpensSuppressionWindows(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Unix(1000, 0)
	g := gateAt(Hidden)
	var sup suppression

	prev := g.step(now, shownInput(), &sup, cfg)
	if prev != Hidden || g.state != Shown {
		t.Fatalf("transition = %v -> %v, want hidden -> shown", prev, g.state)
	}
	if g.lastShownAt != now {
		t.Errorf("lastShownAt = %v, want %v", g.lastShownAt, now)
	}
	if want := now.Add(cfg.GlobalGrace); !sup.globalUntil.Equal(want) {
		t.Errorf("globalUntil = %v, want %v", sup.globalUntil, want)
	}
	if want := now.Add(cfg.GlobalGrace); !sup.crossingUntil.Equal(want) {
		t.Errorf("crossingUntil = %v, want %v", sup.crossingUntil, want)
	}
	if !sup.activationBlocked(now) {
		t.Error("activation not blocked during the grace window")
	}
	if sup.activationBlocked(now.Add(cfg.GlobalGrace)) {
		t.Error("activation still blocked after the grace window")
	}
}

func TestGateShowNeverShortensWindows(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Unix(1000, 0)
	g := gateAt(Hidden)
	far := now.Add(time.Hour)
	sup := suppression{globalUntil: far}

	g.step(now, shownInput(), &sup, cfg)
	if !sup.globalUntil.Equal(far) {
		t.Errorf("globalUntil shortened: %v, want %v", sup.globalUntil, far)
	}
}

func TestGatePinchGrace(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Unix(1000, 0)
	g := gateAt(Hidden)
	var sup suppression

	g.step(now, shownInput(), &sup, cfg)
	if g.state != Shown {
		t.Fatal("menu did not show")
	}

	// The same pinch that opened the menu continues: inside the grace
	// window it must not re-close it.
	in := shownInput()
	in.grabActive = true
	g.step(now.Add(cfg.PinchGrace/2), in, &sup, cfg)
	if g.state != Shown {
		t.Fatalf("state = %v during pinch grace, want shown", g.state)
	}

	// Past the window the grab hides as usual.
	g.step(now.Add(cfg.PinchGrace), in, &sup, cfg)
	if g.state != AutoHidden {
		t.Fatalf("state = %v after pinch grace, want autohidden", g.state)
	}
}

func TestCrossingDetectorHysteresis(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Unix(1000, 0)
	var sup suppression

	// Inside the trip distance: cooldown arms.
	sup.updateCrossing(now, cfg.CrossTripDist-0.01, true, cfg)
	if !sup.crossed {
		t.Fatal("crossing did not trip")
	}
	if want := now.Add(cfg.CrossCooldown); !sup.crossingUntil.Equal(want) {
		t.Errorf("crossingUntil = %v, want %v", sup.crossingUntil, want)
	}

	// Between trip and release: still crossed, window keeps extending.
	later := now.Add(100 * time.Millisecond)
	sup.updateCrossing(later, (cfg.CrossTripDist+cfg.CrossReleaseDist)/2, true, cfg)
	if !sup.crossed {
		t.Error("crossing released inside the hysteresis band")
	}
	if want := later.Add(cfg.CrossCooldown); !sup.crossingUntil.Equal(want) {
		t.Errorf("crossingUntil not extended: %v, want %v", sup.crossingUntil, want)
	}

	// Past the release distance: clears, but the armed window runs out
	// on its own.
	final := later.Add(50 * time.Millisecond)
	sup.updateCrossing(final, cfg.CrossReleaseDist+0.01, true, cfg)
	if sup.crossed {
		t.Error("crossing still set past the release distance")
	}
	if !final.Add(cfg.CrossCooldown - time.Millisecond).After(sup.crossingUntil) {
		t.Error("cleared crossing kept extending the window")
	}

	// An untracked frame changes nothing.
	before := sup
	sup.updateCrossing(final, 0, false, cfg)
	if sup != before {
		t.Error("untracked frame mutated crossing state")
	}
}
