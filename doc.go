// Package frond is a palm-anchored spatial menu engine for XR
// applications.
//
// Frond turns noisy, high-frequency hand and controller tracking into
// exactly one clean activation event per physical gesture. It decides
// where a hand-anchored panel sits and faces, whether it is visible at
// all, and which element (if any) a pointer has just pressed, and it
// does so deterministically despite tracking jitter, overlapping hands,
// and transient loss of tracking.
//
// Frond does not render anything. The host owns element appearance,
// action semantics, and the scene graph; frond owns the arbitration.
//
// # Quick start
//
// Declare the menu's elements once, build an [Engine], and feed it one
// [FrameInput] per tracking frame:
//
//	engine, err := frond.New(frond.DefaultConfig(), []frond.ElementDesc{
//		{ID: "save", HalfW: 0.015, HalfH: 0.0095, Offset: frond.Vec3{X: -0.04}},
//		{ID: "undo", HalfW: 0.015, HalfH: 0.0095, Offset: frond.Vec3{X: 0.04},
//			Action: func() { doc.Undo() }},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	engine.OnActivate(func(ctx frond.ActivateContext) {
//		fmt.Println("pressed", ctx.ElementID)
//	})
//
//	// Once per frame, from the platform's tracking callback:
//	engine.Update(time.Now(), input)
//
// # The frame pipeline
//
// [Engine.Update] runs four stages in a fixed order: the anchor solver
// (hand pose → smoothed menu transform), the visibility gate (a
// Shown/Hidden/AutoHidden state machine), candidate hit-testing and
// arbitration (at most one element per pointer), and the press/release
// hysteresis and trigger update. Later stages consume booleans earlier
// stages computed in the same frame, which is how a frame that decides
// to hide also suppresses that frame's activations.
//
// # Debouncing
//
// A poke engages only after its penetration depth stays past the press
// threshold for [Config.StableFrames] consecutive frames, and releases
// only once it falls to the lower release threshold, a Schmitt trigger
// against chatter at a single boundary. Global, per-element, and
// hand-crossing cooldowns block activation independently of geometry;
// see [Config] for every tunable and its default.
//
// # Events
//
// Hosts subscribe with [Engine.OnActivate], [Engine.OnVisibilityChanged]
// and [Engine.OnHover]; each returns a removable [CallbackHandle]. A
// panicking callback is caught and logged; it never blocks other
// elements or aborts the frame.
//
// # Testing and tooling
//
// [Script] and [ScriptPlayer] replay JSON gesture scripts (poke, pinch,
// palm flip, hand cross) as synthetic frames on a fixed clock, for
// tests and the examples/headless program. examples/simulator is an
// interactive Ebitengine visualizer that drives the engine with the
// mouse.
package frond
