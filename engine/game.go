package engine

/**
 * @brief A game plugs into the engine through these hooks. Context is set by
 * the engine before FnInitialize runs. Every hook is optional.
 */
type Game struct {
	ApplicationConfig *ApplicationConfig
	Context           *Context
	State             interface{}
	FnBoot            Boot
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

// Boot runs before any subsystem starts and may adjust the configuration.
type Boot func() error
type Initialize func() error
type Update func(deltaTime float64) error
type Render func(deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
