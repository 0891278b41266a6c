package ssao

import (
	"github.com/spaghettifunk/anima-ssao/engine/core"
	"github.com/spaghettifunk/anima-ssao/engine/math"
)

const (
	// Movement speed as world units per second
	MOVE_SPEED float32 = 20.0
	// Mouse sensitivity as degrees per pixel
	MOUSE_SENSITIVITY float32 = 0.1
)

/**
 * @brief Per-frame camera control. Tab toggles the parameter panel; while it
 * is hidden the mouse turns the camera and WASD moves it.
 */
func (s *Sample) MoveCamera(timeStep float32) {
	ctx := s.Context
	// Do not move if the UI has a focused element
	if ctx.UI.FocusElement() != nil {
		return
	}
	input := ctx.Input

	if input.IsKeyPressed(core.KEY_TAB) {
		s.window.SetVisible(!s.window.IsVisible())
		if s.window.IsVisible() {
			input.SetMouseVisible(true)
			input.SetMouseMode(core.MouseModeFree)
		} else {
			input.SetMouseVisible(false)
			input.SetMouseMode(core.MouseModeRelative)
		}
	}

	if s.window.IsVisible() {
		return
	}

	// Clamp the pitch between -90 and 90 degrees
	mouseMove := input.GetMouseMove()
	s.yaw += MOUSE_SENSITIVITY * float32(mouseMove.X)
	s.pitch += MOUSE_SENSITIVITY * float32(mouseMove.Y)
	s.pitch = math.Clamp(s.pitch, -90, 90)

	// Roll is fixed to zero
	s.cameraNode.SetRotation(math.NewQuatFromYawPitchRoll(s.yaw, s.pitch, 0))

	step := MOVE_SPEED * timeStep
	if input.IsKeyDown(core.KEY_W) {
		s.cameraNode.Translate(math.NewVec3Forward().MulScalar(step))
	}
	if input.IsKeyDown(core.KEY_S) {
		s.cameraNode.Translate(math.NewVec3Back().MulScalar(step))
	}
	if input.IsKeyDown(core.KEY_A) {
		s.cameraNode.Translate(math.NewVec3Left().MulScalar(step))
	}
	if input.IsKeyDown(core.KEY_D) {
		s.cameraNode.Translate(math.NewVec3Right().MulScalar(step))
	}
}
