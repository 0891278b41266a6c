package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spaghettifunk/anima-ssao/engine/core"
	"github.com/spaghettifunk/anima-ssao/engine/platform"
	"github.com/spaghettifunk/anima-ssao/engine/renderer"
	"github.com/spaghettifunk/anima-ssao/engine/resources"
	"github.com/spaghettifunk/anima-ssao/engine/ui"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage Stage
	gameInstance *Game
	context      *Context
	platform     *platform.Platform
	isRunning    atomic.Bool
	isSuspended  bool
	width        uint32
	height       uint32
	clock        *core.Clock
	lastTime     float64
}

/**
 * @brief Creates the engine and its subsystems for the given game. Nothing
 * touches the window or the renderer until Initialize.
 */
func New(g *Game) (*Engine, error) {
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = DefaultApplicationConfig()
	}
	e := &Engine{
		currentStage: EngineStageBooting,
		gameInstance: g,
		clock:        core.NewClock(),
	}

	if g.FnBoot != nil {
		if err := g.FnBoot(); err != nil {
			core.LogError("game boot failed: %s", err)
			return nil, err
		}
	}
	config := g.ApplicationConfig
	if level, err := core.ParseLogLevel(config.LogLevel); err == nil {
		core.SetLogLevel(level)
	}

	events := core.NewEventSystem()
	input := core.NewInputSystem(events)
	workers := config.JobWorkers
	if workers < 1 {
		workers = 1
	}
	jobs, err := core.NewJobSystem(workers, 64)
	if err != nil {
		core.LogError("failed to start the job system: %s", err)
		return nil, err
	}
	cache := resources.NewResourceCache(events)
	for _, dir := range config.ResourceDirs {
		if err := cache.AddResourceDir(dir); err != nil {
			core.LogError("failed to add resource dir '%s': %s", dir, err)
			jobs.Shutdown()
			return nil, err
		}
	}

	e.context = &Context{
		Events:   events,
		Input:    input,
		Jobs:     jobs,
		Cache:    cache,
		Renderer: renderer.New(renderer.NewHeadlessBackend(), cache, events),
		UI:       ui.New(events, input, cache),
		Metrics:  core.NewMetrics(),
	}
	if !config.Headless {
		e.platform = platform.New(events, input)
	}
	e.width = config.StartWidth
	e.height = config.StartHeight
	g.Context = e.context
	e.currentStage = EngineStageBootComplete
	return e, nil
}

func (e *Engine) Context() *Context {
	return e.context
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageBootComplete {
		return fmt.Errorf("engine cannot initialize from stage %d", e.currentStage)
	}
	e.currentStage = EngineStageInitializing
	config := e.gameInstance.ApplicationConfig
	ctx := e.context

	ctx.Events.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	ctx.Events.Register(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	ctx.Events.Register(core.EVENT_CODE_RESIZED, e, e.onResized)

	if e.platform != nil {
		if err := e.platform.Startup(config.Name, config.StartPosX, config.StartPosY, config.StartWidth, config.StartHeight); err != nil {
			return err
		}
	}

	if err := ctx.Renderer.Initialize(config.Name, e.width, e.height, config.DefaultRenderPath); err != nil {
		return err
	}
	ctx.UI.SetSize(int32(e.width), int32(e.height))

	if config.AutoReload {
		if err := ctx.Cache.SetAutoReload(true); err != nil {
			core.LogWarn("resource auto reload unavailable: %s", err)
		}
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.isRunning.Store(true)
	e.currentStage = EngineStageInitialized
	return nil
}

/**
 * @brief Runs frames until the application quits or Stop is called. With a
 * window the loop pumps platform messages each frame; headless it just
 * advances the clock.
 */
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return core.ErrNotInitialized
	}
	e.currentStage = EngineStageRunning
	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	var targetFrameSeconds float64
	if fps := e.gameInstance.ApplicationConfig.TargetFPS; fps > 0 {
		targetFrameSeconds = 1.0 / fps
	}

	for e.isRunning.Load() {
		if e.platform != nil && !e.platform.PumpMessages() {
			e.isRunning.Store(false)
			break
		}
		if e.isSuspended {
			continue
		}

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		frameStart := time.Now()

		if err := e.RunFrame(delta); err != nil {
			core.LogError("frame failed, shutting down: %s", err)
			e.isRunning.Store(false)
			return err
		}

		// Give the remaining frame time back to the OS.
		remaining := targetFrameSeconds - time.Since(frameStart).Seconds()
		if remaining > 0 {
			time.Sleep(time.Duration(remaining * float64(time.Second)))
		}
		e.lastTime = currentTime
	}
	return nil
}

/**
 * @brief Advances the engine by one frame of timeStep seconds: queued
 * events, resource reloads, the update events, UI, rendering, and finally
 * the end of the input frame.
 */
func (e *Engine) RunFrame(timeStep float64) error {
	ctx := e.context
	frameStart := time.Now()

	ctx.Events.Dispatch()
	ctx.Jobs.Update()
	ctx.Cache.Update()

	if e.gameInstance.FnUpdate != nil {
		if err := e.gameInstance.FnUpdate(timeStep); err != nil {
			return fmt.Errorf("game update: %w", err)
		}
	}
	update := &core.UpdateEvent{TimeStep: float32(timeStep)}
	ctx.Events.Fire(core.EventContext{Type: core.EVENT_CODE_UPDATE, Sender: e, Data: update})
	ctx.Events.Fire(core.EventContext{Type: core.EVENT_CODE_POST_UPDATE, Sender: e, Data: update})

	ctx.UI.Update(float32(timeStep))

	if e.gameInstance.FnRender != nil {
		if err := e.gameInstance.FnRender(timeStep); err != nil {
			return fmt.Errorf("game render: %w", err)
		}
	}
	if err := ctx.Renderer.Render(timeStep, ctx.UI.Batches()); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	ctx.Metrics.Update(time.Since(frameStart).Seconds())

	// Input state copying happens last so that everything above sees this
	// frame's presses and mouse movement.
	return ctx.Input.Update(timeStep)
}

// Stop asks a running loop to exit after the current frame. Safe to call
// from other goroutines.
func (e *Engine) Stop() {
	e.isRunning.Store(false)
}

func (e *Engine) IsRunning() bool {
	return e.isRunning.Load()
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.isRunning.Store(false)
	ctx := e.context

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError("game shutdown failed: %s", err)
		}
	}
	ctx.UI.Shutdown()
	if err := ctx.Jobs.Shutdown(); err != nil {
		core.LogError("job system shutdown failed: %s", err)
	}
	if err := ctx.Renderer.Shutdown(); err != nil {
		core.LogError("renderer shutdown failed: %s", err)
	}
	if err := ctx.Cache.Shutdown(); err != nil {
		core.LogError("resource cache shutdown failed: %s", err)
	}
	ctx.Events.Shutdown()
	if e.platform != nil {
		if err := e.platform.Shutdown(); err != nil {
			return err
		}
	}
	e.currentStage = EngineStageUninitialized
	return nil
}

// GetFramebufferSize returns the width and height (in this order)
// of the application framebuffer.
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning.Store(false)
		return true
	}
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	if ke.KeyCode == core.KEY_ESCAPE {
		// Technically firing an event to itself, but there may be other listeners.
		e.context.Events.Fire(core.EventContext{
			Type:   core.EVENT_CODE_APPLICATION_QUIT,
			Sender: e,
		})
		return true
	}
	return false
}

func (e *Engine) onResized(context core.EventContext) bool {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	width, height := se.Width, se.Height
	if width == e.width && height == e.height {
		return false
	}
	e.width = width
	e.height = height
	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return false
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError("game resize failed: %s", err)
		}
	}
	return false
}
