package renderer

import (
	"github.com/spaghettifunk/anima-ssao/engine/core"
)

/**
 * @brief A backend that draws nothing. It keeps the last packet around so
 * tools and tests can inspect what would have been submitted.
 */
type HeadlessBackend struct {
	Width, Height uint32
	FramesDrawn   uint64
	LastPacket    *RenderPacket

	initialized bool
	inFrame     bool
}

func NewHeadlessBackend() *HeadlessBackend {
	return &HeadlessBackend{}
}

func (hb *HeadlessBackend) Initialize(appName string, appWidth, appHeight uint32) error {
	hb.Width = appWidth
	hb.Height = appHeight
	hb.initialized = true
	core.LogInfo("headless renderer initialized for '%s' (%dx%d)", appName, appWidth, appHeight)
	return nil
}

func (hb *HeadlessBackend) Shutdown() error {
	hb.initialized = false
	hb.LastPacket = nil
	return nil
}

func (hb *HeadlessBackend) Resized(width, height uint32) error {
	hb.Width = width
	hb.Height = height
	return nil
}

func (hb *HeadlessBackend) BeginFrame(deltaTime float64) error {
	if !hb.initialized {
		return core.ErrNotInitialized
	}
	hb.inFrame = true
	return nil
}

func (hb *HeadlessBackend) DrawFrame(packet *RenderPacket) error {
	if !hb.inFrame {
		return core.ErrNotInitialized
	}
	hb.LastPacket = packet
	return nil
}

func (hb *HeadlessBackend) EndFrame(deltaTime float64) error {
	hb.inFrame = false
	hb.FramesDrawn++
	return nil
}
