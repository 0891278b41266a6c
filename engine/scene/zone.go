package scene

import (
	"github.com/spaghettifunk/anima-ssao/engine/math"
)

/**
 * @brief A region with its own ambient light and fog. The box is in the
 * node's local space.
 */
type Zone struct {
	node         *Node
	octree       *Octree
	boundingBox  math.BoundingBox
	ambientColor math.Color
	fogColor     math.Color
	fogStart     float32
	fogEnd       float32
	priority     int
}

func NewZone() *Zone {
	return &Zone{
		boundingBox:  math.NewBoundingBoxUniform(10),
		ambientColor: math.NewColor(0.1, 0.1, 0.1, 1),
		fogColor:     math.ColorBlack,
		fogStart:     250,
		fogEnd:       1000,
	}
}

func (z *Zone) OnNodeSet(node *Node) {
	if z.octree != nil {
		z.octree.RemoveDrawable(z)
		z.octree = nil
	}
	z.node = node
	if node == nil || node.Scene() == nil {
		return
	}
	if o := node.Scene().Octree(); o != nil {
		z.octree = o
		o.AddDrawable(z)
	}
}

func (z *Zone) OnMarkedDirty(node *Node) {
	if z.octree != nil {
		z.octree.MarkForUpdate(z)
	}
}

func (z *Zone) Node() *Node {
	return z.node
}

func (z *Zone) SetBoundingBox(box math.BoundingBox) {
	z.boundingBox = box
	z.OnMarkedDirty(z.node)
}

func (z *Zone) BoundingBox() math.BoundingBox {
	return z.boundingBox
}

func (z *Zone) WorldBoundingBox() math.BoundingBox {
	if z.node == nil {
		return z.boundingBox
	}
	return z.boundingBox.Transformed(z.node.WorldTransform())
}

func (z *Zone) SetAmbientColor(color math.Color) {
	z.ambientColor = color
}

func (z *Zone) AmbientColor() math.Color {
	return z.ambientColor
}

func (z *Zone) SetFogColor(color math.Color) {
	z.fogColor = color
}

func (z *Zone) FogColor() math.Color {
	return z.fogColor
}

func (z *Zone) SetFogStart(start float32) {
	z.fogStart = start
}

func (z *Zone) FogStart() float32 {
	return z.fogStart
}

func (z *Zone) SetFogEnd(end float32) {
	z.fogEnd = end
}

func (z *Zone) FogEnd() float32 {
	return z.fogEnd
}

func (z *Zone) SetPriority(priority int) {
	z.priority = priority
}

func (z *Zone) Priority() int {
	return z.priority
}
