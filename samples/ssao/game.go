package ssao

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"github.com/spaghettifunk/anima-ssao/engine"
	"github.com/spaghettifunk/anima-ssao/engine/core"
	"github.com/spaghettifunk/anima-ssao/engine/math"
	"github.com/spaghettifunk/anima-ssao/engine/resources"
	"github.com/spaghettifunk/anima-ssao/engine/scene"
	"github.com/spaghettifunk/anima-ssao/engine/ui"
)

/**
 * @brief Screen space ambient occlusion sample: a static scene rendered
 * through a render path with the SSAO post-process, a free-fly camera and a
 * panel of sliders tuning the effect.
 */
type Sample struct {
	*engine.Game

	rng        *rand.Rand
	scene      *scene.Scene
	cameraNode *scene.Node
	window     *ui.Window
	sliders    []*ui.Slider

	// Cache handle of the post-process the viewport was built from
	postProcessHandle uuid.UUID

	// Camera yaw and pitch in degrees
	yaw   float32
	pitch float32
}

func New(config *engine.ApplicationConfig, seed uint64) (*Sample, error) {
	if config == nil {
		config = engine.DefaultApplicationConfig()
		config.Name = "SSAO"
	}
	s := &Sample{
		Game: &engine.Game{
			ApplicationConfig: config,
		},
		rng: math.NewRand(seed),
	}

	s.FnBoot = s.Boot
	s.FnInitialize = s.Start
	s.FnOnResize = s.OnResize
	s.FnShutdown = s.Shutdown

	return s, nil
}

func (s *Sample) Boot() error {
	core.LogInfo("booting SSAO sample...")
	return nil
}

/**
 * @brief Builds the scene, the UI and the viewport, subscribes to the frame
 * update and captures the mouse.
 */
func (s *Sample) Start() error {
	if s.Context == nil {
		return fmt.Errorf("the engine is not yet initialized with all the subsystems")
	}
	// Edited materials and post-process definitions show up without a restart.
	if err := s.Context.Cache.SetAutoReload(true); err != nil {
		core.LogWarn("resource auto reload unavailable: %s", err)
	}
	s.preload()
	sc, cameraNode, err := CreateScene(s.Context.Cache, s.rng)
	if err != nil {
		core.LogError("failed to create the scene: %s", err)
		return err
	}
	s.scene = sc
	s.cameraNode = cameraNode

	if err := s.CreateUI(); err != nil {
		core.LogError("failed to create the UI: %s", err)
		return err
	}
	if err := s.SetupViewport(); err != nil {
		core.LogError("failed to set up the viewport: %s", err)
		return err
	}
	s.SubscribeToEvents()
	s.InitMouseMode(core.MouseModeRelative)
	return nil
}

// preload decodes the heavier assets in parallel. Anything that fails here is
// loaded again, synchronously, by its first user.
func (s *Sample) preload() {
	cache, jobs := s.Context.Cache, s.Context.Jobs
	if err := cache.PreloadAsync(jobs, resources.ResourceTypeModel, PLANE_MODEL, BOX_MODEL); err != nil {
		core.LogWarn("model preload failed: %s", err)
	}
	if err := cache.PreloadAsync(jobs, resources.ResourceTypeFont, FONT); err != nil {
		core.LogWarn("font preload failed: %s", err)
	}
	jobs.Wait()
}

func (s *Sample) SubscribeToEvents() {
	s.Context.Events.Register(core.EVENT_CODE_UPDATE, s, s.HandleUpdate)
	s.Context.Events.Register(core.EVENT_CODE_RESOURCE_RELOADED, s, s.HandleResourceReloaded)
}

func (s *Sample) HandleUpdate(ctx core.EventContext) bool {
	e, ok := ctx.Data.(*core.UpdateEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", ctx.Type)
		return false
	}
	s.MoveCamera(e.TimeStep)
	return false
}

// HandleResourceReloaded keeps the scene in step with edited assets. A new
// post-process definition rebuilds the viewport with the current slider values;
// a new model moves the drawables using it in the octree.
func (s *Sample) HandleResourceReloaded(ctx core.EventContext) bool {
	e, ok := ctx.Data.(*core.ResourceEvent)
	if !ok {
		return false
	}
	switch e.Name {
	case SSAO_POSTPROCESS:
		if e.Handle != uuid.Nil && e.Handle == s.postProcessHandle {
			return false
		}
		if err := s.SetupViewport(); err != nil {
			core.LogError("failed to rebuild the viewport: %s", err)
			return false
		}
		s.applySliderValues()
		core.LogInfo("SSAO post-process reloaded")
	case PLANE_MODEL, BOX_MODEL:
		if s.scene == nil {
			return false
		}
		model, err := s.Context.Cache.GetModel(e.Name)
		if err != nil {
			return false
		}
		for _, sm := range scene.GetComponentsRecursive[*scene.StaticModel](&s.scene.Node) {
			if sm.Model() == model {
				sm.SetModel(model)
			}
		}
	}
	return false
}

// InitMouseMode applies the starting mouse mode. Only a free mouse keeps the
// OS cursor visible.
func (s *Sample) InitMouseMode(mode core.MouseMode) {
	input := s.Context.Input
	input.SetMouseVisible(mode == core.MouseModeFree)
	input.SetMouseMode(mode)
}

func (s *Sample) OnResize(width uint32, height uint32) error {
	core.LogDebug("SSAO sample resized to %dx%d", width, height)
	return nil
}

func (s *Sample) Shutdown() error {
	if s.Context != nil {
		s.Context.Events.UnregisterAll(s)
	}
	if s.scene != nil {
		s.scene.Clear()
	}
	return nil
}

func (s *Sample) Scene() *scene.Scene {
	return s.scene
}

func (s *Sample) CameraNode() *scene.Node {
	return s.cameraNode
}

func (s *Sample) Window() *ui.Window {
	return s.window
}

func (s *Sample) Sliders() []*ui.Slider {
	return s.sliders
}

// Yaw and Pitch return the camera orientation in degrees.
func (s *Sample) Yaw() float32 {
	return s.yaw
}

func (s *Sample) Pitch() float32 {
	return s.pitch
}
