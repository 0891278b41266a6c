package ui

import (
	"fmt"

	"github.com/spaghettifunk/anima-ssao/engine/core"
	"github.com/spaghettifunk/anima-ssao/engine/math"
	"github.com/spaghettifunk/anima-ssao/engine/renderer"
	"github.com/spaghettifunk/anima-ssao/engine/resources"
)

type HorizontalAlignment int

const (
	HA_LEFT HorizontalAlignment = iota
	HA_CENTER
	HA_RIGHT
)

type VerticalAlignment int

const (
	VA_TOP VerticalAlignment = iota
	VA_CENTER
	VA_BOTTOM
)

type LayoutMode int

const (
	/** @brief Children keep their own position and alignment. */
	LM_FREE LayoutMode = iota
	/** @brief Children are stacked left to right and stretched to the content height. */
	LM_HORIZONTAL
	/** @brief Children are stacked top to bottom and stretched to the content width. */
	LM_VERTICAL
)

// Widget is anything that can live in the UI tree.
type Widget interface {
	Base() *Element
}

// styledWidget receives the style entry matching its type name.
type styledWidget interface {
	applyStyle(u *UI, style *resources.Style, entry resources.ElementStyle)
}

// batchWidget emits draw data for its own screen rectangle.
type batchWidget interface {
	batches(out []*renderer.UIRenderData) []*renderer.UIRenderData
}

// dragWidget handles mouse drags that start on it.
type dragWidget interface {
	onDragBegin(pos math.IVec2)
	onDragMove(pos math.IVec2)
	onDragEnd()
}

/**
 * @brief The base UI element: a rectangle positioned relative to its parent,
 * optionally laying out its children.
 */
type Element struct {
	ui       *UI
	typeName string
	name     string
	parent   *Element
	children []Widget

	position    math.IVec2
	size        math.IVec2
	minHeight   int32
	fixedWidth  bool
	fixedHeight bool
	hAlign      HorizontalAlignment
	vAlign      VerticalAlignment

	visible   bool
	enabled   bool
	focusable bool

	color   math.Color
	texture string

	layoutMode    LayoutMode
	layoutSpacing int32
	// left, top, right, bottom
	layoutBorder [4]int32

	defaultStyle   *resources.Style
	screenPosition math.IVec2
}

func newElement(typeName string) Element {
	return Element{
		typeName: typeName,
		visible:  true,
		color:    math.ColorWhite,
	}
}

func NewElement() *Element {
	e := newElement("UIElement")
	return &e
}

func (e *Element) Base() *Element {
	return e
}

func (e *Element) TypeName() string {
	return e.typeName
}

func (e *Element) Name() string {
	return e.name
}

func (e *Element) SetName(name string) {
	e.name = name
}

func (e *Element) UI() *UI {
	return e.ui
}

func (e *Element) Parent() *Element {
	return e.parent
}

func (e *Element) Children() []Widget {
	return e.children
}

// AddChild attaches w as the last child of e, detaching it from any previous parent.
func (e *Element) AddChild(w Widget) {
	child := w.Base()
	if child.parent != nil {
		child.parent.RemoveChild(w)
	}
	child.parent = e
	child.setUI(e.ui)
	e.children = append(e.children, w)
}

// CreateChild attaches child to parent and returns it typed.
func CreateChild[T Widget](parent Widget, child T) T {
	parent.Base().AddChild(child)
	return child
}

func (e *Element) RemoveChild(w Widget) bool {
	for i, c := range e.children {
		if c == w {
			e.children = append(e.children[:i], e.children[i+1:]...)
			child := w.Base()
			if child.ui != nil {
				child.ui.onElementRemoved(w)
			}
			child.parent = nil
			child.setUI(nil)
			return true
		}
	}
	return false
}

// Remove detaches the element from its parent.
func (e *Element) Remove() {
	if e.parent == nil {
		return
	}
	for _, c := range e.parent.children {
		if c.Base() == e {
			e.parent.RemoveChild(c)
			return
		}
	}
}

// GetChild returns the first child with the given name, searching the whole
// subtree when recursive is set.
func (e *Element) GetChild(name string, recursive bool) Widget {
	for _, c := range e.children {
		if c.Base().name == name {
			return c
		}
	}
	if recursive {
		for _, c := range e.children {
			if found := c.Base().GetChild(name, true); found != nil {
				return found
			}
		}
	}
	return nil
}

func (e *Element) setUI(u *UI) {
	e.ui = u
	for _, c := range e.children {
		c.Base().setUI(u)
	}
}

// ------------------------------------------
// Geometry
// ------------------------------------------

func (e *Element) Position() math.IVec2 {
	return e.position
}

// SetPosition sets the offset from the aligned anchor inside the parent.
func (e *Element) SetPosition(x, y int32) {
	e.position = math.NewIVec2(x, y)
}

func (e *Element) Size() math.IVec2 {
	return e.size
}

func (e *Element) Width() int32 {
	return e.size.X
}

func (e *Element) Height() int32 {
	return e.size.Y
}

func (e *Element) SetSize(width, height int32) {
	e.size = math.NewIVec2(width, height)
}

func (e *Element) SetWidth(width int32) {
	e.size.X = width
}

func (e *Element) SetHeight(height int32) {
	e.size.Y = height
}

// SetFixedWidth sets the width and keeps layouts from stretching it.
func (e *Element) SetFixedWidth(width int32) {
	e.size.X = width
	e.fixedWidth = true
}

// SetFixedHeight sets the height and keeps layouts from resizing it.
func (e *Element) SetFixedHeight(height int32) {
	e.size.Y = height
	e.fixedHeight = true
}

func (e *Element) SetFixedSize(width, height int32) {
	e.SetFixedWidth(width)
	e.SetFixedHeight(height)
}

func (e *Element) IsFixedWidth() bool {
	return e.fixedWidth
}

func (e *Element) IsFixedHeight() bool {
	return e.fixedHeight
}

func (e *Element) SetMinHeight(height int32) {
	e.minHeight = height
	if !e.fixedHeight && e.size.Y < height {
		e.size.Y = height
	}
}

func (e *Element) MinHeight() int32 {
	return e.minHeight
}

func (e *Element) SetAlignment(h HorizontalAlignment, v VerticalAlignment) {
	e.hAlign = h
	e.vAlign = v
}

func (e *Element) SetHorizontalAlignment(h HorizontalAlignment) {
	e.hAlign = h
}

func (e *Element) SetVerticalAlignment(v VerticalAlignment) {
	e.vAlign = v
}

func (e *Element) HorizontalAlignment() HorizontalAlignment {
	return e.hAlign
}

func (e *Element) VerticalAlignment() VerticalAlignment {
	return e.vAlign
}

// ScreenPosition is the top-left corner in window pixels as of the last layout.
func (e *Element) ScreenPosition() math.IVec2 {
	return e.screenPosition
}

// ScreenRect is the element rectangle in window pixels as of the last layout.
func (e *Element) ScreenRect() renderer.Rect {
	return renderer.Rect{
		Left:   e.screenPosition.X,
		Top:    e.screenPosition.Y,
		Right:  e.screenPosition.X + e.size.X,
		Bottom: e.screenPosition.Y + e.size.Y,
	}
}

// IsInside reports whether a screen position falls inside the element.
func (e *Element) IsInside(pos math.IVec2) bool {
	r := e.ScreenRect()
	return pos.X >= r.Left && pos.X < r.Right && pos.Y >= r.Top && pos.Y < r.Bottom
}

// ------------------------------------------
// State
// ------------------------------------------

func (e *Element) IsVisible() bool {
	return e.visible
}

func (e *Element) SetVisible(visible bool) {
	e.visible = visible
	if !visible && e.ui != nil {
		e.ui.onElementHidden(e)
	}
}

// IsVisibleEffective reports whether the element and all its ancestors are visible.
func (e *Element) IsVisibleEffective() bool {
	for el := e; el != nil; el = el.parent {
		if !el.visible {
			return false
		}
	}
	return true
}

// IsEnabled reports whether the element reacts to mouse input.
func (e *Element) IsEnabled() bool {
	return e.enabled
}

func (e *Element) SetEnabled(enabled bool) {
	e.enabled = enabled
}

func (e *Element) IsFocusable() bool {
	return e.focusable
}

func (e *Element) SetFocusable(focusable bool) {
	e.focusable = focusable
}

func (e *Element) Color() math.Color {
	return e.color
}

func (e *Element) SetColor(color math.Color) {
	e.color = color
}

func (e *Element) Texture() string {
	return e.texture
}

func (e *Element) SetTexture(texture string) {
	e.texture = texture
}

// ------------------------------------------
// Layout
// ------------------------------------------

func (e *Element) SetLayout(mode LayoutMode, spacing int32, border [4]int32) {
	e.layoutMode = mode
	e.layoutSpacing = spacing
	e.layoutBorder = border
}

func (e *Element) SetLayoutMode(mode LayoutMode) {
	e.layoutMode = mode
}

func (e *Element) LayoutMode() LayoutMode {
	return e.layoutMode
}

func (e *Element) SetLayoutSpacing(spacing int32) {
	e.layoutSpacing = spacing
}

func (e *Element) LayoutSpacing() int32 {
	return e.layoutSpacing
}

func (e *Element) SetLayoutBorder(border [4]int32) {
	e.layoutBorder = border
}

func (e *Element) LayoutBorder() [4]int32 {
	return e.layoutBorder
}

/**
 * @brief Computes sizes bottom-up: containers with a layout grow to fit
 * their visible children. Widths are stretched later by arrange.
 */
func (e *Element) measure() {
	for _, c := range e.children {
		c.Base().measure()
	}
	if e.minHeight > 0 && !e.fixedHeight && e.size.Y < e.minHeight {
		e.size.Y = e.minHeight
	}
	if e.layoutMode == LM_FREE {
		return
	}

	var sum, widest, tallest int32
	count := int32(0)
	for _, c := range e.children {
		cb := c.Base()
		if !cb.visible {
			continue
		}
		count++
		if e.layoutMode == LM_VERTICAL {
			sum += cb.size.Y
		} else {
			sum += cb.size.X
		}
		widest = max(widest, cb.size.X)
		tallest = max(tallest, cb.size.Y)
	}
	if count > 1 {
		sum += e.layoutSpacing * (count - 1)
	}

	b := e.layoutBorder
	switch e.layoutMode {
	case LM_VERTICAL:
		if !e.fixedHeight {
			e.size.Y = max(b[1]+sum+b[3], e.minHeight)
		}
		if !e.fixedWidth {
			e.size.X = max(e.size.X, b[0]+widest+b[2])
		}
	case LM_HORIZONTAL:
		if !e.fixedWidth {
			e.size.X = b[0] + sum + b[2]
		}
		if !e.fixedHeight {
			e.size.Y = max(e.size.Y, b[1]+tallest+b[3], e.minHeight)
		}
	}
}

/**
 * @brief Assigns screen positions top-down. Children of a layout container
 * are stacked inside its border; free children are placed by alignment.
 */
func (e *Element) arrange() {
	b := e.layoutBorder
	cursor := math.NewIVec2(b[0], b[1])
	contentW := e.size.X - b[0] - b[2]
	contentH := e.size.Y - b[1] - b[3]

	for _, c := range e.children {
		cb := c.Base()
		switch e.layoutMode {
		case LM_VERTICAL:
			if !cb.visible {
				continue
			}
			if !cb.fixedWidth {
				cb.size.X = contentW
			}
			cb.screenPosition = e.screenPosition.Add(cursor)
			cursor.Y += cb.size.Y + e.layoutSpacing
		case LM_HORIZONTAL:
			if !cb.visible {
				continue
			}
			if !cb.fixedHeight {
				cb.size.Y = contentH
			}
			cb.screenPosition = e.screenPosition.Add(cursor)
			cursor.X += cb.size.X + e.layoutSpacing
		default:
			cb.screenPosition = e.screenPosition.Add(cb.alignedOffset(e.size))
		}
		cb.arrange()
	}
}

func (e *Element) alignedOffset(parentSize math.IVec2) math.IVec2 {
	out := e.position
	switch e.hAlign {
	case HA_CENTER:
		out.X += (parentSize.X - e.size.X) / 2
	case HA_RIGHT:
		out.X += parentSize.X - e.size.X
	}
	switch e.vAlign {
	case VA_CENTER:
		out.Y += (parentSize.Y - e.size.Y) / 2
	case VA_BOTTOM:
		out.Y += parentSize.Y - e.size.Y
	}
	return out
}

// ------------------------------------------
// Style
// ------------------------------------------

func (e *Element) SetDefaultStyle(style *resources.Style) {
	e.defaultStyle = style
}

// DefaultStyle returns the nearest style set on the element or its ancestors.
func (e *Element) DefaultStyle() *resources.Style {
	for el := e; el != nil; el = el.parent {
		if el.defaultStyle != nil {
			return el.defaultStyle
		}
	}
	return nil
}

// SetStyleAuto applies the default style entry for the widget's type name.
func SetStyleAuto(w Widget) error {
	return SetStyle(w, w.Base().typeName)
}

/**
 * @brief Applies the named entry of the inherited default style to w. The
 * element must already be attached so that a style can be found.
 */
func SetStyle(w Widget, styleName string) error {
	e := w.Base()
	style := e.DefaultStyle()
	if style == nil {
		return fmt.Errorf("%w: '%s'", core.ErrStyleNotFound, styleName)
	}
	entry, ok := style.Elements[styleName]
	if !ok {
		return fmt.Errorf("%w: '%s' in style '%s'", core.ErrStyleNotFound, styleName, style.Name)
	}
	e.applyStyle(entry)
	if sw, ok := w.(styledWidget); ok {
		sw.applyStyle(e.ui, style, entry)
	}
	return nil
}

func (e *Element) applyStyle(entry resources.ElementStyle) {
	if entry.Color != nil {
		c := entry.Color
		e.color = math.NewColor(c[0], c[1], c[2], c[3])
	}
	if entry.Texture != "" {
		e.texture = entry.Texture
	}
	if entry.MinHeight > 0 {
		e.SetMinHeight(entry.MinHeight)
	}
	if entry.Padding != [4]int32{} {
		e.layoutBorder = entry.Padding
	}
}
