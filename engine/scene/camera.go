package scene

import (
	"github.com/spaghettifunk/anima-ssao/engine/math"
)

const (
	DEFAULT_NEAR_CLIP float32 = 0.1
	DEFAULT_FAR_CLIP  float32 = 1000.0
	DEFAULT_FOV       float32 = 45.0
)

/**
 * @brief Represents a camera that can be used for
 * rendering. The camera takes its position and orientation
 * from the node it is attached to.
 */
type Camera struct {
	node *Node

	nearClip    float32
	farClip     float32
	fov         float32
	aspectRatio float32
	/** @brief When set, the viewport supplies the aspect ratio from its size. */
	autoAspectRatio bool
}

func NewCamera() *Camera {
	camera := &Camera{}
	camera.Reset()
	return camera
}

func (c *Camera) Reset() {
	c.nearClip = DEFAULT_NEAR_CLIP
	c.farClip = DEFAULT_FAR_CLIP
	c.fov = DEFAULT_FOV
	c.aspectRatio = 1.0
	c.autoAspectRatio = true
}

func (c *Camera) OnNodeSet(node *Node) {
	c.node = node
}

func (c *Camera) Node() *Node {
	return c.node
}

func (c *Camera) NearClip() float32 {
	return c.nearClip
}

func (c *Camera) SetNearClip(nearClip float32) {
	c.nearClip = math.Clamp(nearClip, math.K_FLOAT_EPSILON, c.farClip)
}

func (c *Camera) FarClip() float32 {
	return c.farClip
}

func (c *Camera) SetFarClip(farClip float32) {
	if farClip <= c.nearClip {
		farClip = c.nearClip + math.K_FLOAT_EPSILON
	}
	c.farClip = farClip
}

// Fov is the vertical field of view in degrees.
func (c *Camera) Fov() float32 {
	return c.fov
}

func (c *Camera) SetFov(fov float32) {
	c.fov = math.Clamp(fov, 0, 160)
}

func (c *Camera) AspectRatio() float32 {
	return c.aspectRatio
}

// SetAspectRatio fixes the aspect ratio and disables the automatic one.
func (c *Camera) SetAspectRatio(aspectRatio float32) {
	c.aspectRatio = aspectRatio
	c.autoAspectRatio = false
}

// SetAspectRatioInternal updates the ratio without touching the automatic flag.
func (c *Camera) SetAspectRatioInternal(aspectRatio float32) {
	if aspectRatio > 0 {
		c.aspectRatio = aspectRatio
	}
}

func (c *Camera) AutoAspectRatio() bool {
	return c.autoAspectRatio
}

func (c *Camera) SetAutoAspectRatio(enable bool) {
	c.autoAspectRatio = enable
}

func (c *Camera) GetView() math.Mat4 {
	if c.node == nil {
		return math.NewMat4Identity()
	}
	return math.NewMat4View(c.node.WorldPosition(), c.node.WorldRotation())
}

func (c *Camera) GetProjection() math.Mat4 {
	return math.NewMat4Perspective(math.DegToRad(c.fov), c.aspectRatio, c.nearClip, c.farClip)
}

func (c *Camera) Forward() math.Vec3 {
	if c.node == nil {
		return math.NewVec3Forward()
	}
	return c.node.Direction()
}
