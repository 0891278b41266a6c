package core

import "testing"

type fakeCursor struct {
	mode    MouseMode
	visible bool
	calls   int
}

func (c *fakeCursor) SetCursorMode(mode MouseMode, visible bool) {
	c.mode = mode
	c.visible = visible
	c.calls++
}

func TestInputKeyPress(t *testing.T) {
	es := NewEventSystem()
	in := NewInputSystem(es)
	pressed := 0
	es.Register(EVENT_CODE_KEY_PRESSED, nil, func(ctx EventContext) bool {
		if ctx.Data.(*KeyEvent).KeyCode == KEY_TAB {
			pressed++
		}
		return false
	})

	in.ProcessKey(KEY_TAB, true)
	if !in.IsKeyDown(KEY_TAB) || !in.IsKeyPressed(KEY_TAB) {
		t.Fatal("tab should be down and pressed this frame")
	}
	// Holding the key does not count as a new press.
	in.ProcessKey(KEY_TAB, true)
	if pressed != 1 {
		t.Errorf("pressed events = %d, want 1", pressed)
	}
	in.Update(0)
	if in.IsKeyPressed(KEY_TAB) {
		t.Error("press should be cleared by Update")
	}
	if !in.IsKeyDown(KEY_TAB) || !in.WasKeyDown(KEY_TAB) {
		t.Error("held key should stay down")
	}
	in.ProcessKey(KEY_TAB, false)
	if !in.IsKeyUp(KEY_TAB) {
		t.Error("tab should be up after release")
	}
}

func TestInputMouseMove(t *testing.T) {
	in := NewInputSystem(NewEventSystem())
	in.ProcessMouseMove(100, 100)
	if d := in.GetMouseMove(); d.X != 0 || d.Y != 0 {
		t.Errorf("first sample should only set the origin, got %v", d)
	}
	in.ProcessMouseMove(110, 95)
	in.ProcessMouseMove(115, 90)
	if d := in.GetMouseMove(); d.X != 15 || d.Y != -10 {
		t.Errorf("accumulated move = %v, want {15 -10}", d)
	}
	in.Update(0)
	if d := in.GetMouseMove(); d.X != 0 || d.Y != 0 {
		t.Errorf("move after Update = %v, want zero", d)
	}
	if x, y := in.GetMousePosition(); x != 115 || y != 90 {
		t.Errorf("position = %d,%d", x, y)
	}
}

func TestInputMouseMode(t *testing.T) {
	es := NewEventSystem()
	in := NewInputSystem(es)
	cursor := &fakeCursor{}
	in.SetCursorController(cursor)

	changes := 0
	es.Register(EVENT_CODE_MOUSE_MODE_CHANGED, nil, func(EventContext) bool { changes++; return false })

	in.SetMouseMode(MouseModeRelative)
	in.SetMouseVisible(false)
	if cursor.mode != MouseModeRelative || cursor.visible {
		t.Errorf("cursor = %v/%v, want relative/hidden", cursor.mode, cursor.visible)
	}
	in.SetMouseMode(MouseModeRelative)
	if changes != 2 {
		t.Errorf("mode change events = %d, want 2", changes)
	}
	if in.GetMouseMode() != MouseModeRelative || in.IsMouseVisible() {
		t.Error("input state does not match requested mode")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
		err  bool
	}{
		{"debug", DebugLevel, false},
		{"INFO", InfoLevel, false},
		{"", InfoLevel, false},
		{"warning", WarnLevel, false},
		{"verbose", InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < 120; i++ {
		m.Update(1.0 / 60.0)
	}
	fps, avg := m.Frame()
	if fps < 59 || fps > 61 {
		t.Errorf("fps = %v, want ~60", fps)
	}
	if avg < 16 || avg > 17 {
		t.Errorf("frame time = %v, want ~16.6", avg)
	}
}
