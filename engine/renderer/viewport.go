package renderer

import (
	"github.com/spaghettifunk/anima-ssao/engine/scene"
)

// Rect is a screen rectangle in pixels. The zero Rect means the whole window.
type Rect struct {
	Left, Top, Right, Bottom int32
}

func (r Rect) IsZero() bool {
	return r == Rect{}
}

func (r Rect) Width() int32 {
	return r.Right - r.Left
}

func (r Rect) Height() int32 {
	return r.Bottom - r.Top
}

/**
 * @brief A viewport draws one scene through one camera with a render path
 * into a rectangle of the window.
 */
type Viewport struct {
	scene      *scene.Scene
	camera     *scene.Camera
	renderPath *RenderPath
	rect       Rect
}

func NewViewport(s *scene.Scene, camera *scene.Camera, renderPath *RenderPath) *Viewport {
	return &Viewport{
		scene:      s,
		camera:     camera,
		renderPath: renderPath,
	}
}

func (vp *Viewport) Scene() *scene.Scene {
	return vp.scene
}

func (vp *Viewport) SetScene(s *scene.Scene) {
	vp.scene = s
}

func (vp *Viewport) Camera() *scene.Camera {
	return vp.camera
}

func (vp *Viewport) SetCamera(camera *scene.Camera) {
	vp.camera = camera
}

func (vp *Viewport) RenderPath() *RenderPath {
	return vp.renderPath
}

func (vp *Viewport) SetRenderPath(renderPath *RenderPath) {
	vp.renderPath = renderPath
}

func (vp *Viewport) Rect() Rect {
	return vp.rect
}

func (vp *Viewport) SetRect(rect Rect) {
	vp.rect = rect
}
