package frond

import (
	"log/slog"
	"time"
)

// EventType identifies a callback registration slot.
type EventType uint8

const (
	EventActivate EventType = iota
	EventVisibility
	EventHover
)

// ActivateContext describes one element activation.
type ActivateContext struct {
	ElementID string
	Source    SourceID
	Modality  Modality
	Time      time.Time
}

// VisibilityContext describes one gate transition.
type VisibilityContext struct {
	From, To Visibility
	Time     time.Time
}

// HoverContext describes a pointer's hovered element changing.
// ElementID is empty when the pointer left all elements.
type HoverContext struct {
	Source    SourceID
	ElementID string
}

type activateHandler struct {
	id uint32
	fn func(ActivateContext)
}

type visibilityHandler struct {
	id uint32
	fn func(VisibilityContext)
}

type hoverHandler struct {
	id uint32
	fn func(HoverContext)
}

type handlerRegistry struct {
	activate   []activateHandler
	visibility []visibilityHandler
	hover      []hoverHandler
	nextID     uint32
}

// CallbackHandle allows removing a registered engine-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventActivate:
		h.reg.activate = removeActivateHandler(h.reg.activate, h.id)
	case EventVisibility:
		h.reg.visibility = removeVisibilityHandler(h.reg.visibility, h.id)
	case EventHover:
		h.reg.hover = removeHoverHandler(h.reg.hover, h.id)
	}
}

func removeActivateHandler(s []activateHandler, id uint32) []activateHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = activateHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeVisibilityHandler(s []visibilityHandler, id uint32) []visibilityHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = visibilityHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeHoverHandler(s []hoverHandler, id uint32) []hoverHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = hoverHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// OnActivate registers a callback fired once per qualifying press or
// trigger click. This is the engine's core contract: exactly one call
// per physical gesture.
func (e *Engine) OnActivate(fn func(ActivateContext)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.activate = append(e.handlers.activate, activateHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, event: EventActivate}
}

// OnVisibilityChanged registers a callback fired on every gate
// transition. AutoHidden also tells the host to close any open submenu.
func (e *Engine) OnVisibilityChanged(fn func(VisibilityContext)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.visibility = append(e.handlers.visibility, visibilityHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, event: EventVisibility}
}

// OnHover registers a callback fired when a pointer's hovered element
// changes. Cosmetic; hover never feeds the activation state machine.
func (e *Engine) OnHover(fn func(HoverContext)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.hover = append(e.handlers.hover, hoverHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, event: EventHover}
}

// safeCall is the per-callback fault boundary: a panicking host callback
// is caught and logged, and the frame carries on. One misbehaving
// element must not block hover or press processing for the others.
func safeCall(log *slog.Logger, what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("frond: callback panicked", "callback", what, "panic", r)
		}
	}()
	fn()
}

func (e *Engine) fireActivate(ctx ActivateContext) {
	if action := e.elemsByID[ctx.ElementID].desc.Action; action != nil {
		safeCall(e.log, "action:"+ctx.ElementID, action)
	}
	for _, h := range e.handlers.activate {
		safeCall(e.log, "activate", func() { h.fn(ctx) })
	}
}

func (e *Engine) fireVisibility(ctx VisibilityContext) {
	e.log.Debug("frond: visibility changed", "from", ctx.From.String(), "to", ctx.To.String())
	for _, h := range e.handlers.visibility {
		safeCall(e.log, "visibility", func() { h.fn(ctx) })
	}
}

func (e *Engine) fireHover(ctx HoverContext) {
	for _, h := range e.handlers.hover {
		safeCall(e.log, "hover", func() { h.fn(ctx) })
	}
}
