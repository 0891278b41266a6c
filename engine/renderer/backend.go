package renderer

import (
	"github.com/spaghettifunk/anima-ssao/engine/math"
	"github.com/spaghettifunk/anima-ssao/engine/resources"
)

type RendererType uint8

const (
	Headless RendererType = iota
	Vulkan
	OpenGL
)

/**
 * @brief A backend turns frame packets into GPU work. The renderer owns the
 * scene traversal; the backend only sees flattened packets.
 */
type RendererBackend interface {
	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error
	Resized(width, height uint32) error
	BeginFrame(deltaTime float64) error
	DrawFrame(packet *RenderPacket) error
	EndFrame(deltaTime float64) error
}

/** @brief A single geometry to draw with its world transform. */
type GeometryRenderData struct {
	Model    math.Mat4
	Geometry *resources.Geometry
	Material *resources.Material
	UniqueID uint32
}

/**
 * @brief Everything a backend needs to draw one viewport.
 */
type RenderViewPacket struct {
	Viewport         *Viewport
	Rect             Rect
	ViewMatrix       math.Mat4
	ProjectionMatrix math.Mat4
	ViewPosition     math.Vec3
	AmbientColour    math.Color
	FogColour        math.Color
	FogStart         float32
	FogEnd           float32
	RenderTargets    []RenderTargetInfo
	Commands         []RenderPathCommand
	Geometries       []*GeometryRenderData
}

/** @brief A screen-space UI quad or text run, drawn after all views. */
type UIRenderData struct {
	Rect     Rect
	Colour   math.Color
	Texture  string
	Text     string
	Font     *resources.Font
	FontSize int
}

type RenderPacket struct {
	DeltaTime   float64
	FrameNumber uint64
	ViewCount   uint16
	ViewPackets []*RenderViewPacket
	UIElements  []*UIRenderData
}
