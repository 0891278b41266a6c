package engine

import (
	"github.com/spaghettifunk/anima-ssao/engine/core"
	"github.com/spaghettifunk/anima-ssao/engine/renderer"
	"github.com/spaghettifunk/anima-ssao/engine/resources"
	"github.com/spaghettifunk/anima-ssao/engine/ui"
)

// Context gives games access to the engine subsystems.
type Context struct {
	Events   *core.EventSystem
	Input    *core.InputSystem
	Jobs     *core.JobSystem
	Cache    *resources.ResourceCache
	Renderer *renderer.Renderer
	UI       *ui.UI
	Metrics  *core.Metrics
}
