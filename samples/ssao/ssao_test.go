package ssao

import (
	stdmath "math"
	"testing"

	"github.com/spaghettifunk/anima-ssao/engine"
	"github.com/spaghettifunk/anima-ssao/engine/core"
	"github.com/spaghettifunk/anima-ssao/engine/math"
	"github.com/spaghettifunk/anima-ssao/engine/renderer"
	"github.com/spaghettifunk/anima-ssao/engine/resources"
	"github.com/spaghettifunk/anima-ssao/engine/scene"
	"github.com/spaghettifunk/anima-ssao/engine/ui"
)

const assetsDir = "../../assets"

func approx(a, b float32) bool {
	return stdmath.Abs(float64(a-b)) < 1e-4
}

func newTestSample(t *testing.T) (*Sample, *engine.Engine) {
	t.Helper()
	config := engine.DefaultApplicationConfig()
	config.Headless = true
	config.StartWidth = 1024
	config.StartHeight = 768
	config.ResourceDirs = []string{assetsDir}
	config.TargetFPS = 0

	s, err := New(config, 42)
	if err != nil {
		t.Fatal(err)
	}
	e, err := engine.New(s.Game)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(func() {
		e.Shutdown()
	})
	return s, e
}

func pressKey(t *testing.T, e *engine.Engine, key core.KeyCode) {
	t.Helper()
	input := e.Context().Input
	input.ProcessKey(key, true)
	if err := e.RunFrame(0.016); err != nil {
		t.Fatal(err)
	}
	input.ProcessKey(key, false)
}

func TestCreateScene(t *testing.T) {
	cache := resources.NewResourceCache(core.NewEventSystem())
	if err := cache.AddResourceDir(assetsDir); err != nil {
		t.Fatal(err)
	}
	defer cache.Shutdown()

	s, cameraNode, err := CreateScene(cache, math.NewRand(7))
	if err != nil {
		t.Fatalf("CreateScene: %v", err)
	}

	models := scene.GetComponentsRecursive[*scene.StaticModel](&s.Node)
	if len(models) != NUM_OBJECTS+1 {
		t.Fatalf("expected %d static models, got %d", NUM_OBJECTS+1, len(models))
	}

	boxes := 0
	for _, n := range s.Children() {
		if n.Name() != "Box" {
			continue
		}
		pos := n.Position()
		if pos.X != float32(boxes) || pos.Y != 1.5 || pos.Z != 0 {
			t.Errorf("box %d at %v", boxes, pos)
		}
		scale := n.Scale()
		if scale.X < 3 || scale.X >= 5 || scale.X != scale.Y || scale.X != scale.Z {
			t.Errorf("box %d has scale %v", boxes, scale)
		}
		boxes++
	}
	if boxes != NUM_OBJECTS {
		t.Errorf("expected %d boxes, got %d", NUM_OBJECTS, boxes)
	}

	plane := s.GetChild("Plane", false)
	if plane == nil || plane.Scale() != math.NewVec3(100, 1, 100) {
		t.Errorf("unexpected plane node %v", plane)
	}

	if cameraNode.Position() != math.NewVec3(0, 5, 0) {
		t.Errorf("camera at %v", cameraNode.Position())
	}
	camera, ok := scene.GetComponent[*scene.Camera](cameraNode)
	if !ok || camera.FarClip() != 1000 {
		t.Errorf("camera missing or wrong far clip")
	}

	zone := s.ZoneAt(cameraNode.Position())
	if zone == nil {
		t.Fatal("no zone at the camera")
	}
	if zone.AmbientColor() != math.NewColor(0.5, 0.5, 0.5, 1) || zone.FogStart() != 100 || zone.FogEnd() != 300 {
		t.Errorf("unexpected zone settings")
	}
	if s.Octree() == nil {
		t.Error("scene has no octree")
	}
}

func TestCreateSceneMissingAssets(t *testing.T) {
	cache := resources.NewResourceCache(core.NewEventSystem())
	defer cache.Shutdown()
	if _, _, err := CreateScene(cache, math.NewRand(1)); err == nil {
		t.Error("expected an error without resource dirs")
	}
}

func TestViewportHasSSAO(t *testing.T) {
	s, _ := newTestSample(t)
	r := s.Context.Renderer

	viewport, err := r.GetViewport(0)
	if err != nil {
		t.Fatal(err)
	}
	rp := viewport.RenderPath()
	if !rp.IsEnabled(SSAO_TAG) {
		t.Error("SSAO should be enabled on the viewport")
	}
	if len(rp.Commands) != 10 || len(rp.RenderTargets) != 2 {
		t.Errorf("expected 10 commands and 2 targets, got %d and %d", len(rp.Commands), len(rp.RenderTargets))
	}
	if r.DefaultRenderPath().IsAdded(SSAO_TAG) {
		t.Error("the default render path must stay untouched")
	}
}

func TestUIPanel(t *testing.T) {
	s, _ := newTestSample(t)

	if s.Window().IsVisible() {
		t.Error("panel should start hidden")
	}
	if len(s.Sliders()) != len(sliderBindings) {
		t.Fatalf("expected %d sliders, got %d", len(sliderBindings), len(s.Sliders()))
	}
	for i, slider := range s.Sliders() {
		b := sliderBindings[i]
		if slider.Min() != b.Min || slider.Max() != b.Max || slider.Value() != b.Min {
			t.Errorf("slider '%s': range [%v, %v] value %v", b.Label, slider.Min(), slider.Max(), slider.Value())
		}
	}

	texts := 0
	for _, w := range s.Context.UI.Root().Children() {
		if _, ok := w.(*ui.Text); ok {
			texts++
		}
	}
	if texts != len(labels) {
		t.Errorf("expected %d labels, got %d", len(labels), texts)
	}
}

func TestSlidersDriveShaderParameters(t *testing.T) {
	s, _ := newTestSample(t)
	viewport, err := s.Context.Renderer.GetViewport(0)
	if err != nil {
		t.Fatal(err)
	}
	rp := viewport.RenderPath()

	for i, slider := range s.Sliders() {
		b := sliderBindings[i]
		previous := float32(stdmath.Inf(-1))
		for _, f := range []float32{0.1, 0.5, 0.9} {
			value := b.Min + f*(b.Max-b.Min)
			slider.SetValue(value)

			got, ok := rp.GetShaderParameter(b.Parameter)
			if !ok || len(got) != 1 {
				t.Fatalf("%s missing after setting slider '%s'", b.Parameter, b.Label)
			}
			want := value
			if b.Parameter == "SSAOFalloff" {
				want = value / 1000
			}
			if !approx(got[0], want) {
				t.Errorf("%s = %v at slider value %v, expected %v", b.Parameter, got[0], value, want)
			}
			if got[0] <= previous {
				t.Errorf("%s did not increase: %v after %v", b.Parameter, got[0], previous)
			}
			previous = got[0]
		}
	}

	// Every command declaring the parameter receives it.
	s.Sliders()[4].SetValue(4)
	for _, cmd := range rp.Commands {
		if v, ok := cmd.Parameters["SSAORadius"]; ok && !approx(v[0], 4) {
			t.Errorf("command %s kept SSAORadius %v", cmd.PSDefines, v)
		}
	}
}

func TestTabTogglesPanel(t *testing.T) {
	s, e := newTestSample(t)
	input := s.Context.Input

	if input.GetMouseMode() != core.MouseModeRelative || input.IsMouseVisible() {
		t.Fatal("sample should start with a captured mouse")
	}

	pressKey(t, e, core.KEY_TAB)
	if !s.Window().IsVisible() {
		t.Error("tab should show the panel")
	}
	if input.GetMouseMode() != core.MouseModeFree || !input.IsMouseVisible() {
		t.Error("panel should release the mouse")
	}

	pressKey(t, e, core.KEY_TAB)
	if s.Window().IsVisible() {
		t.Error("second tab should hide the panel")
	}
	if input.GetMouseMode() != core.MouseModeRelative || input.IsMouseVisible() {
		t.Error("hiding the panel should capture the mouse again")
	}
}

func TestMouseLook(t *testing.T) {
	s, e := newTestSample(t)
	input := s.Context.Input

	// The first sample after the mode change only sets the origin.
	input.ProcessMouseMove(0, 0)
	input.ProcessMouseMove(100, 2000)
	if err := e.RunFrame(0.016); err != nil {
		t.Fatal(err)
	}
	if !approx(s.Yaw(), 10) {
		t.Errorf("yaw %v, expected 10", s.Yaw())
	}
	if s.Pitch() != 90 {
		t.Errorf("pitch %v, expected clamp to 90", s.Pitch())
	}

	input.ProcessMouseMove(100, -4000)
	if err := e.RunFrame(0.016); err != nil {
		t.Fatal(err)
	}
	if s.Pitch() != -90 {
		t.Errorf("pitch %v, expected clamp to -90", s.Pitch())
	}
}

func TestMoveForward(t *testing.T) {
	s, e := newTestSample(t)
	input := s.Context.Input

	input.ProcessKey(core.KEY_W, true)
	if err := e.RunFrame(0.5); err != nil {
		t.Fatal(err)
	}
	pos := s.CameraNode().Position()
	if !approx(pos.X, 0) || !approx(pos.Y, 5) || !approx(pos.Z, -10) {
		t.Errorf("camera at %v, expected (0, 5, -10)", pos)
	}

	input.ProcessKey(core.KEY_W, false)
	input.ProcessKey(core.KEY_D, true)
	if err := e.RunFrame(0.5); err != nil {
		t.Fatal(err)
	}
	pos = s.CameraNode().Position()
	if !approx(pos.X, 10) || !approx(pos.Z, -10) {
		t.Errorf("camera at %v, expected (10, 5, -10)", pos)
	}
}

func TestNoMovementWhilePanelVisible(t *testing.T) {
	s, e := newTestSample(t)
	input := s.Context.Input

	pressKey(t, e, core.KEY_TAB)
	start := s.CameraNode().Position()

	input.ProcessKey(core.KEY_W, true)
	input.ProcessMouseMove(10, 10)
	input.ProcessMouseMove(200, 300)
	if err := e.RunFrame(0.5); err != nil {
		t.Fatal(err)
	}
	if s.CameraNode().Position() != start {
		t.Error("camera moved while the panel was visible")
	}
	if s.Yaw() != 0 || s.Pitch() != 0 {
		t.Error("camera turned while the panel was visible")
	}
}

func TestFocusSuppressesCamera(t *testing.T) {
	s, e := newTestSample(t)
	input := s.Context.Input

	field := ui.CreateChild(s.Context.UI.Root(), ui.NewElement())
	field.SetFocusable(true)
	s.Context.UI.SetFocusElement(field)

	pressKey(t, e, core.KEY_TAB)
	if s.Window().IsVisible() {
		t.Error("tab must be ignored while an element has focus")
	}

	start := s.CameraNode().Position()
	input.ProcessKey(core.KEY_W, true)
	if err := e.RunFrame(0.5); err != nil {
		t.Fatal(err)
	}
	if s.CameraNode().Position() != start {
		t.Error("camera moved while an element had focus")
	}
}

func TestFrameRendersScene(t *testing.T) {
	s, e := newTestSample(t)
	if err := e.RunFrame(0.016); err != nil {
		t.Fatal(err)
	}
	backend, ok := s.Context.Renderer.Backend().(*renderer.HeadlessBackend)
	if !ok {
		t.Fatal("expected the headless backend")
	}
	packet := backend.LastPacket
	if packet == nil || len(packet.ViewPackets) != 1 {
		t.Fatal("expected one view packet")
	}
	view := packet.ViewPackets[0]
	if len(view.Commands) != 10 {
		t.Errorf("expected 10 commands, got %d", len(view.Commands))
	}
	if len(view.Geometries) == 0 {
		t.Error("no geometry was drawn")
	}
	if len(packet.UIElements) == 0 {
		t.Error("no UI was drawn")
	}
}

func TestStartPreloadsAssets(t *testing.T) {
	s, _ := newTestSample(t)
	for _, name := range []string{PLANE_MODEL, BOX_MODEL, FONT} {
		if !s.Context.Cache.IsCached(name) {
			t.Errorf("'%s' not cached after start", name)
		}
	}
	if s.Context.Jobs.Pending() != 0 {
		t.Errorf("%d jobs still pending", s.Context.Jobs.Pending())
	}
}

func TestPostProcessReloadKeepsSliderValues(t *testing.T) {
	s, _ := newTestSample(t)
	s.Sliders()[0].SetValue(4)

	s.Context.Events.Fire(core.EventContext{
		Type: core.EVENT_CODE_RESOURCE_RELOADED,
		Data: &core.ResourceEvent{Name: SSAO_POSTPROCESS},
	})

	viewport, err := s.Context.Renderer.GetViewport(0)
	if err != nil {
		t.Fatal(err)
	}
	rp := viewport.RenderPath()
	if !rp.IsEnabled(SSAO_TAG) || len(rp.Commands) != 10 {
		t.Errorf("rebuilt path has %d commands", len(rp.Commands))
	}
	if v, ok := rp.GetShaderParameter("SSAOStrength"); !ok || !approx(v[0], 4) {
		t.Errorf("SSAOStrength = %v after reload, expected 4", v)
	}
}

func TestPostProcessReloadSkipsBuiltHandle(t *testing.T) {
	s, _ := newTestSample(t)
	before, err := s.Context.Renderer.GetViewport(0)
	if err != nil {
		t.Fatal(err)
	}

	s.Context.Events.Fire(core.EventContext{
		Type: core.EVENT_CODE_RESOURCE_RELOADED,
		Data: &core.ResourceEvent{Name: SSAO_POSTPROCESS, Handle: s.postProcessHandle},
	})
	after, _ := s.Context.Renderer.GetViewport(0)
	if after != before {
		t.Error("viewport rebuilt for a post-process it already uses")
	}

	if err := s.Context.Cache.ReloadResource(SSAO_POSTPROCESS); err != nil {
		t.Fatal(err)
	}
	after, _ = s.Context.Renderer.GetViewport(0)
	if after == before {
		t.Error("viewport not rebuilt after the post-process reloaded")
	}
	if !after.RenderPath().IsEnabled(SSAO_TAG) {
		t.Error("rebuilt viewport lost the SSAO commands")
	}
}

func TestMaterialReloadReachesScene(t *testing.T) {
	s, _ := newTestSample(t)
	box := s.Scene().GetChild("Box", false)
	if box == nil {
		t.Fatal("no box in the scene")
	}
	sm, ok := scene.GetComponent[*scene.StaticModel](box)
	if !ok {
		t.Fatal("box has no static model")
	}

	if err := s.Context.Cache.ReloadResource(MATERIAL); err != nil {
		t.Fatal(err)
	}
	cached, err := s.Context.Cache.GetMaterial(MATERIAL)
	if err != nil {
		t.Fatal(err)
	}
	if sm.Material() != cached {
		t.Errorf("box material %p, cached material %p", sm.Material(), cached)
	}
}

func TestModelReloadKeepsDrawables(t *testing.T) {
	s, _ := newTestSample(t)
	octree := s.Scene().Octree()
	count := octree.NumDrawables()

	if err := s.Context.Cache.ReloadResource(BOX_MODEL); err != nil {
		t.Fatal(err)
	}
	cached, err := s.Context.Cache.GetModel(BOX_MODEL)
	if err != nil {
		t.Fatal(err)
	}
	boxes := 0
	for _, sm := range scene.GetComponentsRecursive[*scene.StaticModel](&s.Scene().Node) {
		if sm.Node().Name() == "Box" {
			boxes++
			if sm.Model() != cached {
				t.Fatalf("box model %p, cached model %p", sm.Model(), cached)
			}
		}
	}
	if boxes != NUM_OBJECTS {
		t.Errorf("expected %d boxes, got %d", NUM_OBJECTS, boxes)
	}
	if octree.NumDrawables() != count {
		t.Errorf("octree holds %d drawables after reload, expected %d", octree.NumDrawables(), count)
	}
}
