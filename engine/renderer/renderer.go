package renderer

import (
	"fmt"

	"github.com/spaghettifunk/anima-ssao/engine/core"
	"github.com/spaghettifunk/anima-ssao/engine/math"
	"github.com/spaghettifunk/anima-ssao/engine/resources"
	"github.com/spaghettifunk/anima-ssao/engine/scene"
)

const DEFAULT_RENDER_PATH = "RenderPaths/Forward.toml"

/**
 * @brief The renderer owns the viewports and the default render path. Each
 * frame it walks every viewport's scene and hands a render packet to the
 * backend.
 */
type Renderer struct {
	backend RendererBackend
	cache   *resources.ResourceCache
	events  *core.EventSystem

	viewports             []*Viewport
	defaultRenderPath     *RenderPath
	defaultRenderPathName string

	width       uint32
	height      uint32
	frameNumber uint64
	initialized bool
}

func New(backend RendererBackend, cache *resources.ResourceCache, events *core.EventSystem) *Renderer {
	return &Renderer{
		backend: backend,
		cache:   cache,
		events:  events,
	}
}

/**
 * @brief Initializes the backend and loads the default render path. An empty
 * renderPathName selects DEFAULT_RENDER_PATH.
 */
func (r *Renderer) Initialize(appName string, width, height uint32, renderPathName string) error {
	if renderPathName == "" {
		renderPathName = DEFAULT_RENDER_PATH
	}
	if err := r.backend.Initialize(appName, width, height); err != nil {
		return err
	}
	r.width = width
	r.height = height

	if err := r.SetDefaultRenderPathName(renderPathName); err != nil {
		core.LogError("failed to load default render path '%s': %s", renderPathName, err)
		return err
	}
	if r.events != nil {
		r.events.Register(core.EVENT_CODE_RESIZED, r, r.onResized)
		r.events.Register(core.EVENT_CODE_RESOURCE_RELOADED, r, r.onResourceReloaded)
	}
	r.initialized = true
	return nil
}

func (r *Renderer) Shutdown() error {
	if r.events != nil {
		r.events.UnregisterAll(r)
	}
	r.viewports = nil
	r.initialized = false
	return r.backend.Shutdown()
}

func (r *Renderer) Backend() RendererBackend {
	return r.backend
}

// DefaultRenderPath is the path new viewports share unless they are given
// their own. Clone it before modifying it for a single viewport.
func (r *Renderer) DefaultRenderPath() *RenderPath {
	return r.defaultRenderPath
}

func (r *Renderer) SetDefaultRenderPath(rp *RenderPath) {
	if rp != nil {
		r.defaultRenderPath = rp
	}
}

// SetDefaultRenderPathName loads a render path definition through the cache
// and makes it the default.
func (r *Renderer) SetDefaultRenderPathName(name string) error {
	def, err := r.cache.GetRenderPathDefinition(name)
	if err != nil {
		return err
	}
	rp, err := NewRenderPathFromDefinition(def)
	if err != nil {
		return err
	}
	r.defaultRenderPath = rp
	r.defaultRenderPathName = name
	return nil
}

// LoadRenderPath returns a fresh render path built from a definition in the cache.
func (r *Renderer) LoadRenderPath(name string) (*RenderPath, error) {
	def, err := r.cache.GetRenderPathDefinition(name)
	if err != nil {
		return nil, err
	}
	return NewRenderPathFromDefinition(def)
}

func (r *Renderer) NumViewports() int {
	return len(r.viewports)
}

func (r *Renderer) SetNumViewports(num int) {
	if num < 0 {
		num = 0
	}
	for len(r.viewports) < num {
		r.viewports = append(r.viewports, nil)
	}
	r.viewports = r.viewports[:num]
}

/**
 * @brief Sets the viewport at index, growing the viewport list as needed.
 */
func (r *Renderer) SetViewport(index int, viewport *Viewport) error {
	if index < 0 {
		return fmt.Errorf("%w: %d", core.ErrInvalidViewport, index)
	}
	if index >= len(r.viewports) {
		r.SetNumViewports(index + 1)
	}
	r.viewports[index] = viewport
	return nil
}

func (r *Renderer) GetViewport(index int) (*Viewport, error) {
	if index < 0 || index >= len(r.viewports) {
		return nil, fmt.Errorf("%w: %d", core.ErrInvalidViewport, index)
	}
	return r.viewports[index], nil
}

func (r *Renderer) Size() (uint32, uint32) {
	return r.width, r.height
}

func (r *Renderer) OnResize(width, height uint32) error {
	r.width = width
	r.height = height
	return r.backend.Resized(width, height)
}

func (r *Renderer) FrameNumber() uint64 {
	return r.frameNumber
}

/**
 * @brief Builds the render packet for all viewports plus the UI overlay and
 * submits it to the backend.
 */
func (r *Renderer) Render(deltaTime float64, ui []*UIRenderData) error {
	if !r.initialized {
		return core.ErrNotInitialized
	}

	packet := &RenderPacket{
		DeltaTime:   deltaTime,
		FrameNumber: r.frameNumber,
		UIElements:  ui,
	}
	for _, vp := range r.viewports {
		if vp == nil || vp.Scene() == nil || vp.Camera() == nil {
			continue
		}
		packet.ViewPackets = append(packet.ViewPackets, r.buildViewPacket(vp))
	}
	packet.ViewCount = uint16(len(packet.ViewPackets))

	if err := r.backend.BeginFrame(deltaTime); err != nil {
		return err
	}
	if err := r.backend.DrawFrame(packet); err != nil {
		r.backend.EndFrame(deltaTime)
		return err
	}
	if err := r.backend.EndFrame(deltaTime); err != nil {
		return err
	}
	r.frameNumber++
	return nil
}

func (r *Renderer) buildViewPacket(vp *Viewport) *RenderViewPacket {
	rect := vp.Rect()
	if rect.IsZero() {
		rect = Rect{Right: int32(r.width), Bottom: int32(r.height)}
	}
	camera := vp.Camera()
	if camera.AutoAspectRatio() && rect.Height() > 0 {
		camera.SetAspectRatioInternal(float32(rect.Width()) / float32(rect.Height()))
	}

	rp := vp.RenderPath()
	if rp == nil {
		rp = r.defaultRenderPath
	}

	position := math.NewVec3Zero()
	if camera.Node() != nil {
		position = camera.Node().WorldPosition()
	}
	view := &RenderViewPacket{
		Viewport:         vp,
		Rect:             rect,
		ViewMatrix:       camera.GetView(),
		ProjectionMatrix: camera.GetProjection(),
		ViewPosition:     position,
		AmbientColour:    math.ColorBlack,
	}
	if rp != nil {
		for _, rt := range rp.RenderTargets {
			if rt.Enabled {
				view.RenderTargets = append(view.RenderTargets, rt)
			}
		}
		view.Commands = rp.EnabledCommands()
	}

	if zone := vp.Scene().ZoneAt(position); zone != nil {
		view.AmbientColour = zone.AmbientColor()
		view.FogColour = zone.FogColor()
		view.FogStart = zone.FogStart()
		view.FogEnd = zone.FogEnd()
	}

	octree := vp.Scene().Octree()
	if octree == nil {
		return view
	}
	octree.Update()
	// Everything within the far clip distance of the camera.
	far := camera.FarClip()
	query := math.NewBoundingBox(
		position.Sub(math.NewVec3Uniform(far)),
		position.Add(math.NewVec3Uniform(far)),
	)
	for _, d := range octree.Query(query) {
		sm, ok := d.(*scene.StaticModel)
		if !ok || sm.Model() == nil {
			continue
		}
		world := sm.Node().WorldTransform()
		for i := range sm.Model().Geometries {
			view.Geometries = append(view.Geometries, &GeometryRenderData{
				Model:    world,
				Geometry: &sm.Model().Geometries[i],
				Material: sm.Material(),
				UniqueID: sm.Node().ID(),
			})
		}
	}
	return view
}

func (r *Renderer) onResized(ctx core.EventContext) bool {
	if e, ok := ctx.Data.(*core.SystemEvent); ok {
		if err := r.OnResize(e.Width, e.Height); err != nil {
			core.LogError("renderer resize failed: %s", err)
		}
	}
	return false
}

func (r *Renderer) onResourceReloaded(ctx core.EventContext) bool {
	e, ok := ctx.Data.(*core.ResourceEvent)
	if !ok || e.Name != r.defaultRenderPathName {
		return false
	}
	if err := r.SetDefaultRenderPathName(e.Name); err != nil {
		core.LogWarn("could not rebuild default render path: %s", err)
	}
	return false
}
