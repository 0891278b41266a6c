package ui

import (
	"github.com/spaghettifunk/anima-ssao/engine/core"
	"github.com/spaghettifunk/anima-ssao/engine/math"
	"github.com/spaghettifunk/anima-ssao/engine/renderer"
	"github.com/spaghettifunk/anima-ssao/engine/resources"
)

type TextEffect int

const (
	TE_NONE TextEffect = iota
	TE_SHADOW
	TE_STROKE
)

const DEFAULT_FONT_SIZE = 12

/**
 * @brief A single or multi-line text label. Unless fixed, its size follows
 * the measured text.
 */
type Text struct {
	Element

	text        string
	font        *resources.Font
	fontSize    int
	effect      TextEffect
	effectColor math.Color
}

func NewText() *Text {
	return &Text{
		Element:     newElement("Text"),
		fontSize:    DEFAULT_FONT_SIZE,
		effectColor: math.ColorBlack,
	}
}

func (t *Text) Text() string {
	return t.text
}

func (t *Text) SetText(text string) {
	t.text = text
	t.updateSize()
}

func (t *Text) Font() *resources.Font {
	return t.font
}

func (t *Text) FontSize() int {
	return t.fontSize
}

// SetFont sets the font and point size; a size of zero keeps the current one.
func (t *Text) SetFont(font *resources.Font, size int) {
	t.font = font
	if size > 0 {
		t.fontSize = size
	}
	t.updateSize()
}

func (t *Text) SetFontSize(size int) {
	if size > 0 {
		t.fontSize = size
		t.updateSize()
	}
}

func (t *Text) TextEffect() TextEffect {
	return t.effect
}

func (t *Text) SetTextEffect(effect TextEffect) {
	t.effect = effect
}

func (t *Text) EffectColor() math.Color {
	return t.effectColor
}

func (t *Text) SetEffectColor(color math.Color) {
	t.effectColor = color
}

func (t *Text) updateSize() {
	if t.font == nil {
		return
	}
	measured := t.font.MeasureText(t.text, t.fontSize)
	if !t.fixedWidth {
		t.size.X = measured.X
	}
	if !t.fixedHeight {
		t.size.Y = measured.Y
	}
}

func (t *Text) applyStyle(u *UI, style *resources.Style, entry resources.ElementStyle) {
	size := entry.FontSize
	if size == 0 && t.fontSize == DEFAULT_FONT_SIZE {
		size = style.FontSize
	}
	if size > 0 {
		t.fontSize = size
	}
	if t.font != nil || u == nil || u.cache == nil {
		t.updateSize()
		return
	}
	name := entry.Font
	if name == "" {
		name = style.Font
	}
	if name == "" {
		return
	}
	f, err := u.cache.GetFont(name)
	if err != nil {
		core.LogWarn("text style font '%s' unavailable: %s", name, err)
		return
	}
	t.font = f
	t.updateSize()
}

func (t *Text) batches(out []*renderer.UIRenderData) []*renderer.UIRenderData {
	if t.text == "" {
		return out
	}
	rect := t.ScreenRect()
	offset := func(r renderer.Rect, dx, dy int32) renderer.Rect {
		return renderer.Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
	}
	switch t.effect {
	case TE_SHADOW:
		out = append(out, t.textBatch(offset(rect, 1, 1), t.effectColor))
	case TE_STROKE:
		for _, d := range [][2]int32{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}} {
			out = append(out, t.textBatch(offset(rect, d[0], d[1]), t.effectColor))
		}
	}
	return append(out, t.textBatch(rect, t.color))
}

func (t *Text) textBatch(rect renderer.Rect, color math.Color) *renderer.UIRenderData {
	return &renderer.UIRenderData{
		Rect:     rect,
		Colour:   color,
		Text:     t.text,
		Font:     t.font,
		FontSize: t.fontSize,
	}
}
