package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spaghettifunk/anima-ssao/engine/core"
)

func newHeadlessEngine(t *testing.T, g *Game) *Engine {
	t.Helper()
	config := DefaultApplicationConfig()
	config.Headless = true
	config.ResourceDirs = []string{"../assets"}
	config.StartWidth = 800
	config.StartHeight = 600
	g.ApplicationConfig = config

	e, err := New(g)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(func() {
		e.Shutdown()
	})
	return e
}

func TestInitializeCallsHooks(t *testing.T) {
	var initialized bool
	var width, height uint32
	g := &Game{}
	g.FnInitialize = func() error {
		if g.Context == nil {
			t.Error("context not set before initialize")
		}
		initialized = true
		return nil
	}
	g.FnOnResize = func(w, h uint32) error {
		width, height = w, h
		return nil
	}
	e := newHeadlessEngine(t, g)

	if !initialized {
		t.Error("FnInitialize was not called")
	}
	if width != 800 || height != 600 {
		t.Errorf("FnOnResize got %dx%d", width, height)
	}
	if e.Stage() != EngineStageInitialized || !e.IsRunning() {
		t.Errorf("unexpected stage %d", e.Stage())
	}
	if e.Context().UI.Size().X != 800 {
		t.Error("UI was not sized to the window")
	}
	if err := e.Initialize(); err == nil {
		t.Error("second Initialize should fail")
	}
}

func TestRunFrameFiresUpdate(t *testing.T) {
	g := &Game{}
	var updates []float32
	var hookDelta float64
	g.FnUpdate = func(dt float64) error {
		hookDelta = dt
		return nil
	}
	e := newHeadlessEngine(t, g)
	ctx := e.Context()

	listener := new(int)
	ctx.Events.Register(core.EVENT_CODE_UPDATE, listener, func(c core.EventContext) bool {
		updates = append(updates, c.Data.(*core.UpdateEvent).TimeStep)
		return false
	})

	if err := e.RunFrame(0.25); err != nil {
		t.Fatal(err)
	}
	if err := e.RunFrame(0.5); err != nil {
		t.Fatal(err)
	}
	if len(updates) != 2 || updates[0] != 0.25 || updates[1] != 0.5 {
		t.Errorf("unexpected updates %v", updates)
	}
	if hookDelta != 0.5 {
		t.Errorf("FnUpdate got %v", hookDelta)
	}
	if ctx.Renderer.FrameNumber() != 2 {
		t.Errorf("expected 2 frames rendered, got %d", ctx.Renderer.FrameNumber())
	}
}

func TestRunFrameDispatchesPostedEvents(t *testing.T) {
	e := newHeadlessEngine(t, &Game{})
	ctx := e.Context()

	fired := false
	listener := new(int)
	ctx.Events.Register(core.EVENT_CODE_MOUSE_MODE_CHANGED, listener, func(core.EventContext) bool {
		fired = true
		return true
	})
	ctx.Events.Post(core.EventContext{Type: core.EVENT_CODE_MOUSE_MODE_CHANGED})
	if fired {
		t.Fatal("posted event fired before dispatch")
	}
	if err := e.RunFrame(0.016); err != nil {
		t.Fatal(err)
	}
	if !fired {
		t.Error("posted event was not dispatched")
	}
}

func TestEscapeStops(t *testing.T) {
	e := newHeadlessEngine(t, &Game{})
	e.Context().Input.ProcessKey(core.KEY_ESCAPE, true)
	if e.IsRunning() {
		t.Error("escape should stop the engine")
	}
}

func TestResizeSuspends(t *testing.T) {
	var resized uint32
	g := &Game{}
	g.FnOnResize = func(w, h uint32) error {
		resized = w
		return nil
	}
	e := newHeadlessEngine(t, g)
	events := e.Context().Events

	events.Fire(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.SystemEvent{Width: 0, Height: 0}})
	if !e.isSuspended {
		t.Error("zero size should suspend")
	}
	events.Fire(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.SystemEvent{Width: 1024, Height: 768}})
	if e.isSuspended {
		t.Error("restoring the size should resume")
	}
	if resized != 1024 {
		t.Errorf("FnOnResize got width %d", resized)
	}
	if w, h := e.GetFramebufferSize(); w != 1024 || h != 768 {
		t.Errorf("framebuffer %dx%d", w, h)
	}
}

func TestLoadApplicationConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		config, err := LoadApplicationConfig(filepath.Join(dir, "nope.toml"))
		if err != nil {
			t.Fatal(err)
		}
		if config.StartWidth != 1280 || config.TargetFPS != 60 {
			t.Errorf("expected defaults, got %+v", config)
		}
	})

	t.Run("valid", func(t *testing.T) {
		path := filepath.Join(dir, "valid.toml")
		data := "name = \"SSAO\"\nwidth = 1024\nheadless = true\nlog_level = \"debug\"\nresource_dirs = [\"a\", \"b\"]\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		config, err := LoadApplicationConfig(path)
		if err != nil {
			t.Fatal(err)
		}
		if config.Name != "SSAO" || config.StartWidth != 1024 || !config.Headless {
			t.Errorf("unexpected config %+v", config)
		}
		// Keys absent from the file keep their defaults.
		if config.StartHeight != 720 || len(config.ResourceDirs) != 2 {
			t.Errorf("unexpected config %+v", config)
		}
	})

	t.Run("syntax error", func(t *testing.T) {
		path := filepath.Join(dir, "bad.toml")
		if err := os.WriteFile(path, []byte("name = \"SSAO\"\nwidth = = 3\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadApplicationConfig(path)
		if err == nil || !strings.Contains(err.Error(), "2:") {
			t.Errorf("expected a positioned error, got %v", err)
		}
	})

	t.Run("bad log level", func(t *testing.T) {
		path := filepath.Join(dir, "level.toml")
		if err := os.WriteFile(path, []byte("log_level = \"loud\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadApplicationConfig(path); err == nil {
			t.Error("expected an invalid log level error")
		}
	})
}
