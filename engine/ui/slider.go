package ui

import (
	"github.com/spaghettifunk/anima-ssao/engine/core"
	"github.com/spaghettifunk/anima-ssao/engine/math"
	"github.com/spaghettifunk/anima-ssao/engine/renderer"
	"github.com/spaghettifunk/anima-ssao/engine/resources"
)

// SliderChangedEvent is the payload of EVENT_CODE_SLIDER_CHANGED. The event
// sender is the slider itself.
type SliderChangedEvent struct {
	Element *Slider
	Value   float32
}

/**
 * @brief A horizontal slider over [min, max]. The value is always clamped
 * into the range and every change fires EVENT_CODE_SLIDER_CHANGED.
 */
type Slider struct {
	Element

	min   float32
	max   float32
	value float32

	knobColor   math.Color
	knobTexture string
	dragOffset  int32
}

func NewSlider() *Slider {
	s := &Slider{
		Element:   newElement("Slider"),
		max:       1,
		knobColor: math.ColorWhite,
	}
	s.enabled = true
	return s
}

func (s *Slider) Min() float32 {
	return s.min
}

func (s *Slider) Max() float32 {
	return s.max
}

func (s *Slider) Value() float32 {
	return s.value
}

// SetRange sets the bounds, swapping them if given in reverse, and clamps the value.
func (s *Slider) SetRange(min, max float32) {
	if max < min {
		min, max = max, min
	}
	s.min = min
	s.max = max
	s.SetValue(s.value)
}

// SetValue clamps value into the range and notifies listeners if it changed.
func (s *Slider) SetValue(value float32) {
	value = math.Clamp(value, s.min, s.max)
	if value == s.value {
		return
	}
	s.value = value
	if s.ui == nil || s.ui.events == nil {
		return
	}
	s.ui.events.Fire(core.EventContext{
		Type:   core.EVENT_CODE_SLIDER_CHANGED,
		Sender: s,
		Data: &SliderChangedEvent{
			Element: s,
			Value:   value,
		},
	})
}

// ChangeValue moves the value by delta.
func (s *Slider) ChangeValue(delta float32) {
	s.SetValue(s.value + delta)
}

func (s *Slider) knobWidth() int32 {
	return max(s.size.Y, 1)
}

// KnobRect is the knob rectangle in window pixels as of the last layout.
func (s *Slider) KnobRect() renderer.Rect {
	r := s.ScreenRect()
	kw := s.knobWidth()
	travel := r.Width() - kw
	var t float32
	if s.max > s.min {
		t = (s.value - s.min) / (s.max - s.min)
	}
	left := r.Left + int32(float32(travel)*t+0.5)
	return renderer.Rect{Left: left, Top: r.Top, Right: left + kw, Bottom: r.Bottom}
}

func (s *Slider) valueAt(x int32) float32 {
	r := s.ScreenRect()
	travel := r.Width() - s.knobWidth()
	if travel <= 0 {
		return s.min
	}
	t := math.Clamp(float32(x-r.Left)/float32(travel), 0, 1)
	return math.Lerp(s.min, s.max, t)
}

func (s *Slider) applyStyle(u *UI, style *resources.Style, entry resources.ElementStyle) {
	knob, ok := style.Elements["SliderKnob"]
	if !ok {
		return
	}
	if knob.Color != nil {
		c := knob.Color
		s.knobColor = math.NewColor(c[0], c[1], c[2], c[3])
	}
	s.knobTexture = knob.Texture
}

func (s *Slider) batches(out []*renderer.UIRenderData) []*renderer.UIRenderData {
	return append(out,
		&renderer.UIRenderData{Rect: s.ScreenRect(), Colour: s.color, Texture: s.texture},
		&renderer.UIRenderData{Rect: s.KnobRect(), Colour: s.knobColor, Texture: s.knobTexture},
	)
}

func (s *Slider) onDragBegin(pos math.IVec2) {
	knob := s.KnobRect()
	if pos.X >= knob.Left && pos.X < knob.Right {
		s.dragOffset = pos.X - knob.Left
		return
	}
	// Clicking the bar jumps the knob centre to the cursor.
	s.dragOffset = s.knobWidth() / 2
	s.SetValue(s.valueAt(pos.X - s.dragOffset))
}

func (s *Slider) onDragMove(pos math.IVec2) {
	s.SetValue(s.valueAt(pos.X - s.dragOffset))
}

func (s *Slider) onDragEnd() {}
