package ssao

import (
	"fmt"

	"github.com/spaghettifunk/anima-ssao/engine/core"
	"github.com/spaghettifunk/anima-ssao/engine/math"
	"github.com/spaghettifunk/anima-ssao/engine/ui"
)

const (
	FONT       = "Fonts/AnonymousPro.fnt"
	UI_STYLE   = "UI/DefaultStyle.toml"
	PANEL_SIZE = 400
)

// sliderBinding ties a panel slider to an SSAO shader parameter.
type sliderBinding struct {
	Label     string
	Min       float32
	Max       float32
	Parameter string
	Transform func(v float32) float32
}

func identity(v float32) float32 {
	return v
}

var sliderBindings = []sliderBinding{
	{"Strength", 1.0, 5.0, "SSAOStrength", identity},
	{"Area", 1.75, 3.0, "SSAOArea", identity},
	// The shader expects the falloff in thousandths.
	{"Falloff", 1.0, 10.0, "SSAOFalloff", func(v float32) float32 { return v / 1000 }},
	{"Noise Factor", 7.0, 20.0, "SSAONoiseFactor", identity},
	{"Radius", 0.6, 10.0, "SSAORadius", identity},
}

type label struct {
	text   string
	color  math.Color
	hAlign ui.HorizontalAlignment
	vAlign ui.VerticalAlignment
	x, y   int32
}

var labels = []label{
	{"SSAO Output", math.ColorBlack, ui.HA_CENTER, ui.VA_BOTTOM, 0, -50},
	{"SSAO Enabled", math.ColorGreen, ui.HA_LEFT, ui.VA_TOP, 50, 50},
	{"SSAO Disabled", math.ColorRed, ui.HA_RIGHT, ui.VA_TOP, -50, 50},
}

/**
 * @brief Creates the on-screen labels and the hidden parameter panel with
 * one slider per SSAO shader parameter.
 */
func (s *Sample) CreateUI() error {
	ctx := s.Context
	style, err := ctx.Cache.GetStyle(UI_STYLE)
	if err != nil {
		return fmt.Errorf("create ui: %w", err)
	}
	font, err := ctx.Cache.GetFont(FONT)
	if err != nil {
		return fmt.Errorf("create ui: %w", err)
	}
	root := ctx.UI.Root()
	root.SetDefaultStyle(style)

	for _, l := range labels {
		text := ui.CreateChild(root, ui.NewText())
		text.SetText(l.text)
		text.SetFont(font, 15)
		text.SetColor(l.color)
		text.SetTextEffect(ui.TE_SHADOW)
		text.SetAlignment(l.hAlign, l.vAlign)
		text.SetPosition(l.x, l.y)
	}

	s.window = ui.CreateChild(root, ui.NewWindow())
	s.window.SetAlignment(ui.HA_LEFT, ui.VA_CENTER)
	s.window.SetPosition(10, 0)
	s.window.SetFixedWidth(PANEL_SIZE)
	s.window.SetLayoutMode(ui.LM_VERTICAL)
	s.window.SetLayoutSpacing(10)
	if err := ui.SetStyleAuto(s.window); err != nil {
		return fmt.Errorf("create ui: %w", err)
	}
	s.window.SetVisible(false)

	s.sliders = s.sliders[:0]
	for _, b := range sliderBindings {
		slider, err := s.createSlider(b.Label, b.Min, b.Max)
		if err != nil {
			return err
		}
		ctx.Events.RegisterFrom(core.EVENT_CODE_SLIDER_CHANGED, slider, s, s.onSliderChanged(b))
		s.sliders = append(s.sliders, slider)
	}
	return nil
}

// createSlider adds a labelled slider row to the panel. The slider starts at min.
func (s *Sample) createSlider(text string, min, max float32) (*ui.Slider, error) {
	font, err := s.Context.Cache.GetFont(FONT)
	if err != nil {
		return nil, err
	}
	row := ui.CreateChild(s.window, ui.NewElement())
	row.SetFixedWidth(s.window.Width())
	row.SetLayoutMode(ui.LM_VERTICAL)
	row.SetLayoutSpacing(20)

	sliderText := ui.CreateChild(row, ui.NewText())
	sliderText.SetFixedHeight(30)
	sliderText.SetFont(font, 12)
	sliderText.SetText(text)

	slider := ui.CreateChild(row, ui.NewSlider())
	if err := ui.SetStyleAuto(slider); err != nil {
		return nil, err
	}
	slider.SetRange(min, max)
	slider.SetFixedHeight(30)
	return slider, nil
}

func (s *Sample) onSliderChanged(b sliderBinding) core.FnOnEvent {
	return func(ctx core.EventContext) bool {
		e, ok := ctx.Data.(*ui.SliderChangedEvent)
		if !ok {
			return false
		}
		viewport, err := s.Context.Renderer.GetViewport(0)
		if err != nil || viewport == nil || viewport.RenderPath() == nil {
			core.LogWarn("slider '%s' changed before the viewport was set up", b.Label)
			return false
		}
		viewport.RenderPath().SetShaderParameter(b.Parameter, b.Transform(e.Value))
		return true
	}
}

// applySliderValues writes every slider's current value to the viewport's render path.
func (s *Sample) applySliderValues() {
	viewport, err := s.Context.Renderer.GetViewport(0)
	if err != nil || viewport.RenderPath() == nil {
		return
	}
	for i, slider := range s.sliders {
		b := sliderBindings[i]
		viewport.RenderPath().SetShaderParameter(b.Parameter, b.Transform(slider.Value()))
	}
}
