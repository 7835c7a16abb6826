package frond

import (
	"encoding/json"
	"fmt"
	"time"
)

// scriptStep is a single action in a gesture script.
type scriptStep struct {
	Action  string  `json:"action"`
	Element string  `json:"element,omitempty"`
	Depth   float32 `json:"depth,omitempty"`
	Frames  int     `json:"frames,omitempty"`
}

// gestureScript is the top-level JSON structure for a gesture script.
type gestureScript struct {
	Steps []scriptStep `json:"steps"`
}

// Script is a parsed gesture script: a sequence of synthetic hand and
// controller actions played against an engine frame by frame. Scripts
// drive the headless example and exercise full pipelines in tests the
// way recorded tracking sessions would.
//
// JSON format:
//
//	{"steps": [
//	  {"action": "show"},
//	  {"action": "wait", "frames": 90},
//	  {"action": "poke", "element": "save", "depth": 0.008, "frames": 6},
//	  {"action": "withdraw", "frames": 3}
//	]}
//
// Actions: show, hide, wait, poke, hover, withdraw, pinch, unpinch,
// squeeze, unsqueeze, palm-down, palm-up, cross, uncross, suppress,
// unsuppress, click. poke/hover/click take an element; poke takes a
// depth. frames defaults to 1.
type Script struct {
	steps []scriptStep
}

var scriptActions = map[string]bool{
	"show": true, "hide": true, "wait": true,
	"poke": true, "hover": true, "withdraw": true,
	"pinch": true, "unpinch": true,
	"squeeze": true, "unsqueeze": true,
	"palm-down": true, "palm-up": true,
	"cross": true, "uncross": true,
	"suppress": true, "unsuppress": true,
	"click": true,
}

// LoadScript parses a JSON gesture script.
func LoadScript(jsonData []byte) (*Script, error) {
	var s gestureScript
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	for i, st := range s.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse gesture script: step %d: unknown action %q", i, st.Action)
		}
		switch st.Action {
		case "poke", "hover", "click":
			if st.Element == "" {
				return nil, fmt.Errorf("parse gesture script: step %d: %s needs an element", i, st.Action)
			}
		}
	}
	return &Script{steps: s.Steps}, nil
}

// Synthetic rig geometry. The wrist sits at the origin with the palm
// rotated to face world up, so the menu plane is horizontal at
// OffsetDistance above it.
var (
	// palmUpRot turns the wrist-local palm normal (0,-1,0) to world up:
	// a half turn about X.
	palmUpRot = Quat{1, 0, 0, 0}

	// restPoint parks the poke fingertip well outside every suppression
	// and hit distance.
	restPoint = Vec3{0.3, 0.25, 0}
)

// ScriptPlayer feeds a script's synthetic frames into an engine on a
// fixed clock. Scripted state (palm orientation, pinch, poke target)
// persists across steps until another step changes it, like a hand
// holding a pose does.
type ScriptPlayer struct {
	engine *Engine
	steps  []scriptStep

	cursor    int
	remaining int
	now       time.Time
	dt        time.Duration

	shown    bool
	palmUp   bool
	pinch    bool
	squeeze  bool
	suppress bool
	crossing bool

	pokeElem  string // element under the fingertip; "" = at rest
	pokeDepth float32
	clickElem string // element a ray click targets this step
}

// NewScriptPlayer binds a script to an engine. start seeds the
// monotonic clock and dt is the frame period (e.g. time.Second/90).
// Element references are checked up front.
func NewScriptPlayer(e *Engine, s *Script, start time.Time, dt time.Duration) (*ScriptPlayer, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("script player: frame period must be positive")
	}
	for i, st := range s.steps {
		if st.Element != "" {
			if _, ok := e.elemsByID[st.Element]; !ok {
				return nil, fmt.Errorf("script player: step %d: unknown element %q", i, st.Element)
			}
		}
	}
	return &ScriptPlayer{
		engine: e,
		steps:  s.steps,
		now:    start,
		dt:     dt,
		palmUp: true,
	}, nil
}

// Now returns the player's clock after the last emitted frame.
func (p *ScriptPlayer) Now() time.Time {
	return p.now
}

// Done reports whether every step has been played.
func (p *ScriptPlayer) Done() bool {
	return p.cursor >= len(p.steps) && p.remaining == 0
}

// Step applies the next scripted frame to the engine. Returns false
// once the script is exhausted.
func (p *ScriptPlayer) Step() bool {
	if p.remaining == 0 {
		if p.cursor >= len(p.steps) {
			return false
		}
		st := p.steps[p.cursor]
		p.cursor++
		p.apply(st)
		p.remaining = st.Frames
		if p.remaining < 1 {
			p.remaining = 1
		}
	}
	p.remaining--
	p.now = p.now.Add(p.dt)
	p.engine.Update(p.now, p.frame())
	p.clickElem = "" // trigger edges last one frame
	return true
}

// Run plays the script to completion.
func (p *ScriptPlayer) Run() {
	for p.Step() {
	}
}

// apply folds one step into the synthetic rig state.
func (p *ScriptPlayer) apply(st scriptStep) {
	switch st.Action {
	case "show":
		p.shown = true
	case "hide":
		p.shown = false
	case "poke", "hover":
		p.pokeElem = st.Element
		p.pokeDepth = st.Depth
		if st.Action == "hover" {
			// Shallow contact: hovers without pressing.
			p.pokeDepth = 0.001
		}
		p.crossing = false
	case "withdraw":
		p.pokeElem = ""
		p.crossing = false
	case "pinch":
		p.pinch = true
	case "unpinch":
		p.pinch = false
	case "squeeze":
		p.squeeze = true
	case "unsqueeze":
		p.squeeze = false
	case "palm-down":
		p.palmUp = false
	case "palm-up":
		p.palmUp = true
	case "cross":
		p.crossing = true
		p.pokeElem = ""
	case "uncross":
		p.crossing = false
	case "suppress":
		p.suppress = true
	case "unsuppress":
		p.suppress = false
	case "click":
		p.clickElem = st.Element
	}
}

// frame synthesizes one FrameInput from the rig state.
func (p *ScriptPlayer) frame() FrameInput {
	cfg := p.engine.cfg

	wristRot := QuatIdentity // palm down
	if p.palmUp {
		wristRot = palmUpRot
	}
	wrist := Pose{Orientation: wristRot, Valid: true, OrientationValid: true}
	index := Pose{Position: Vec3{0.09, 0, 0}, Valid: true}
	thumb := Pose{Position: Vec3{0.02, 0, 0.06}, Valid: true}
	if p.pinch {
		thumb.Position = index.Position.Add(Vec3{0.004, 0, 0})
	}

	in := FrameInput{
		AnchorHand: HandPoses{
			Side:     cfg.AnchorHand,
			Wrist:    wrist,
			IndexTip: index,
			ThumbTip: thumb,
		},
		RequestedShown:   p.shown,
		ExternalSuppress: p.suppress,
	}

	pokePos := restPoint
	switch {
	case p.crossing:
		pokePos = Vec3{0.03, -0.02, 0} // behind the palm plane, near the wrist
	case p.pokeElem != "":
		pokePos = p.surfacePoint(p.pokeElem, p.pokeDepth)
	}
	in.Sources = append(in.Sources, SourceInput{
		ID:       "script-poke",
		Side:     cfg.AnchorHand.Other(),
		Modality: ModalityHand,
		Pose:     Pose{Position: pokePos, Valid: true},
	})

	if p.clickElem != "" || p.squeeze {
		ray := SourceInput{
			ID:       "script-ray",
			Side:     cfg.AnchorHand.Other(),
			Modality: ModalityRay,
			Squeeze:  p.squeeze,
		}
		origin := Vec3{0, 0.35, 0.3}
		target := origin.Sub(worldForward.Scale(0.5)) // parked: aims away
		if p.clickElem != "" {
			target = p.elementCenter(p.clickElem)
			ray.Trigger = true
		}
		dir, _ := target.Sub(origin).Normalized()
		ray.Pose = Pose{
			Position:         origin,
			Orientation:      QuatBetween(worldForward, dir),
			Valid:            true,
			OrientationValid: true,
		}
		in.Sources = append(in.Sources, ray)
	}
	return in
}

// elementCenter computes an element's world center under the rig's
// settled anchor transform.
func (p *ScriptPlayer) elementCenter(id string) Vec3 {
	cfg := p.engine.cfg
	el := p.engine.elemsByID[id]
	// Menu plane: origin (0, OffsetDistance, 0), X world-right,
	// Z world-up, so Y = Z×X = world -Z.
	origin := Vec3{0, cfg.OffsetDistance, 0}
	off := el.desc.Offset
	return origin.
		Add(Vec3{1, 0, 0}.Scale(off.X)).
		Add(Vec3{0, 0, -1}.Scale(off.Y)).
		Add(Vec3{0, 1, 0}.Scale(off.Z))
}

// surfacePoint places the fingertip depth units behind an element's
// front face (negative depth floats it in front).
func (p *ScriptPlayer) surfacePoint(id string, depth float32) Vec3 {
	return p.elementCenter(id).Sub(Vec3{0, 1, 0}.Scale(depth))
}
