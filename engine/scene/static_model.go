package scene

import (
	"github.com/spaghettifunk/anima-ssao/engine/math"
	"github.com/spaghettifunk/anima-ssao/engine/resources"
)

/**
 * @brief A drawable that renders a model with one material.
 */
type StaticModel struct {
	node     *Node
	octree   *Octree
	model    *resources.Model
	material *resources.Material

	CastShadows bool
}

func NewStaticModel() *StaticModel {
	return &StaticModel{}
}

func (sm *StaticModel) OnNodeSet(node *Node) {
	if sm.octree != nil {
		sm.octree.RemoveDrawable(sm)
		sm.octree = nil
	}
	sm.node = node
	if node == nil || node.Scene() == nil {
		return
	}
	if o := node.Scene().Octree(); o != nil {
		sm.octree = o
		o.AddDrawable(sm)
	}
}

func (sm *StaticModel) OnMarkedDirty(node *Node) {
	if sm.octree != nil {
		sm.octree.MarkForUpdate(sm)
	}
}

func (sm *StaticModel) Node() *Node {
	return sm.node
}

func (sm *StaticModel) SetModel(model *resources.Model) {
	sm.model = model
	sm.OnMarkedDirty(sm.node)
}

func (sm *StaticModel) Model() *resources.Model {
	return sm.model
}

func (sm *StaticModel) SetMaterial(material *resources.Material) {
	sm.material = material
}

func (sm *StaticModel) Material() *resources.Material {
	return sm.material
}

// WorldBoundingBox is the model's local box moved into world space. A model
// without geometry has an undefined box.
func (sm *StaticModel) WorldBoundingBox() math.BoundingBox {
	if sm.model == nil || sm.node == nil {
		return math.BoundingBox{}
	}
	return sm.model.BoundingBox.Transformed(sm.node.WorldTransform())
}
