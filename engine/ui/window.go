package ui

import (
	"github.com/spaghettifunk/anima-ssao/engine/math"
	"github.com/spaghettifunk/anima-ssao/engine/renderer"
)

/**
 * @brief A framed panel. A movable window can be dragged by the mouse.
 */
type Window struct {
	Element

	movable   bool
	dragStart math.IVec2
	dragFrom  math.IVec2
}

func NewWindow() *Window {
	w := &Window{
		Element: newElement("Window"),
	}
	w.enabled = true
	return w
}

func (w *Window) IsMovable() bool {
	return w.movable
}

func (w *Window) SetMovable(movable bool) {
	w.movable = movable
}

func (w *Window) batches(out []*renderer.UIRenderData) []*renderer.UIRenderData {
	return append(out, &renderer.UIRenderData{
		Rect:    w.ScreenRect(),
		Colour:  w.color,
		Texture: w.texture,
	})
}

func (w *Window) onDragBegin(pos math.IVec2) {
	w.dragStart = pos
	w.dragFrom = w.position
}

func (w *Window) onDragMove(pos math.IVec2) {
	if !w.movable {
		return
	}
	w.position = w.dragFrom.Add(pos.Sub(w.dragStart))
}

func (w *Window) onDragEnd() {}
