package ui

import (
	"github.com/spaghettifunk/anima-ssao/engine/core"
	"github.com/spaghettifunk/anima-ssao/engine/math"
	"github.com/spaghettifunk/anima-ssao/engine/renderer"
	"github.com/spaghettifunk/anima-ssao/engine/resources"
)

/**
 * @brief The UI subsystem: a tree of elements under a root sized to the
 * window, mouse interaction and the current focus element.
 */
type UI struct {
	events *core.EventSystem
	input  *core.InputSystem
	cache  *resources.ResourceCache

	root    *Element
	focus   Widget
	dragged dragWidget
}

func New(events *core.EventSystem, input *core.InputSystem, cache *resources.ResourceCache) *UI {
	u := &UI{
		events: events,
		input:  input,
		cache:  cache,
	}
	root := newElement("UIElement")
	root.name = "Root"
	u.root = &root
	u.root.ui = u
	if events != nil {
		events.Register(core.EVENT_CODE_RESIZED, u, u.onResized)
	}
	core.LogInfo("UI subsystem initialized.")
	return u
}

func (u *UI) Shutdown() {
	if u.events != nil {
		u.events.UnregisterAll(u)
	}
	u.focus = nil
	u.dragged = nil
	u.root.children = nil
}

// Root is the top of the element tree; it always covers the whole window.
func (u *UI) Root() *Element {
	return u.root
}

func (u *UI) SetSize(width, height int32) {
	u.root.SetFixedSize(width, height)
}

func (u *UI) Size() math.IVec2 {
	return u.root.Size()
}

// FocusElement returns the element receiving keyboard input, or nil.
func (u *UI) FocusElement() Widget {
	return u.focus
}

// SetFocusElement focuses w if it is focusable; nil clears the focus.
func (u *UI) SetFocusElement(w Widget) {
	if w != nil && !w.Base().focusable {
		return
	}
	u.focus = w
}

/**
 * @brief Lays out the tree and, while the cursor is visible, routes mouse
 * presses and drags to the element under the cursor.
 */
func (u *UI) Update(timeStep float32) {
	u.layout()
	if u.input == nil {
		return
	}
	if !u.input.IsMouseVisible() {
		u.endDrag()
		return
	}

	x, y := u.input.GetMousePosition()
	pos := math.NewIVec2(x, y)
	down := u.input.IsButtonDown(core.BUTTON_LEFT)
	wasDown := u.input.WasButtonDown(core.BUTTON_LEFT)

	switch {
	case down && !wasDown:
		w := u.GetElementAt(pos)
		if w == nil {
			u.SetFocusElement(nil)
			return
		}
		u.SetFocusElement(w)
		if d, ok := w.(dragWidget); ok {
			u.dragged = d
			d.onDragBegin(pos)
		}
	case down && u.dragged != nil:
		u.dragged.onDragMove(pos)
	case !down:
		u.endDrag()
	}
}

func (u *UI) endDrag() {
	if u.dragged != nil {
		u.dragged.onDragEnd()
		u.dragged = nil
	}
}

func (u *UI) layout() {
	u.root.screenPosition = math.IVec2{}
	u.root.measure()
	u.root.arrange()
}

// GetElementAt returns the topmost enabled and visible element under pos.
func (u *UI) GetElementAt(pos math.IVec2) Widget {
	return getElementAt(u.root, pos)
}

func getElementAt(e *Element, pos math.IVec2) Widget {
	for i := len(e.children) - 1; i >= 0; i-- {
		c := e.children[i]
		cb := c.Base()
		if !cb.visible {
			continue
		}
		if found := getElementAt(cb, pos); found != nil {
			return found
		}
		if cb.enabled && cb.IsInside(pos) {
			return c
		}
	}
	return nil
}

// Batches collects the draw data of every visible element, parents first.
func (u *UI) Batches() []*renderer.UIRenderData {
	var out []*renderer.UIRenderData
	var walk func(w Widget)
	walk = func(w Widget) {
		e := w.Base()
		if !e.visible {
			return
		}
		if b, ok := w.(batchWidget); ok {
			out = b.batches(out)
		}
		for _, c := range e.children {
			walk(c)
		}
	}
	walk(u.root)
	return out
}

func (u *UI) onElementRemoved(w Widget) {
	u.clearReferences(w.Base())
}

func (u *UI) onElementHidden(e *Element) {
	u.clearReferences(e)
}

// clearReferences drops focus and drag state held by e or its descendants.
func (u *UI) clearReferences(e *Element) {
	if u.focus != nil && isDescendant(u.focus.Base(), e) {
		u.focus = nil
	}
	if w, ok := u.dragged.(Widget); ok && isDescendant(w.Base(), e) {
		u.endDrag()
	}
}

func isDescendant(e, ancestor *Element) bool {
	for el := e; el != nil; el = el.parent {
		if el == ancestor {
			return true
		}
	}
	return false
}

func (u *UI) onResized(ctx core.EventContext) bool {
	if e, ok := ctx.Data.(*core.SystemEvent); ok {
		u.SetSize(int32(e.Width), int32(e.Height))
	}
	return false
}
