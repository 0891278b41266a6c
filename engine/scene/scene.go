package scene

import (
	"github.com/spaghettifunk/anima-ssao/engine/core"
	"github.com/spaghettifunk/anima-ssao/engine/math"
)

/**
 * @brief The root of a scene graph. A Scene is itself a node; nodes created
 * below it receive scene-unique IDs.
 */
type Scene struct {
	Node

	ids identifiers
}

func NewScene() *Scene {
	s := &Scene{}
	s.Node = *newNode("Scene")
	s.Node.scene = s
	s.Node.id = s.ids.acquire(&s.Node)
	return s
}

func (s *Scene) registerNode(n *Node) {
	n.scene = s
	n.id = s.ids.acquire(n)
}

func (s *Scene) unregisterNode(n *Node) {
	if err := s.ids.release(n.id); err != nil {
		core.LogWarn("scene: %s", err)
	}
	n.scene = nil
}

// GetNode returns the node with the given ID, or nil.
func (s *Scene) GetNode(id uint32) *Node {
	if owner, ok := s.ids.lookup(id).(*Node); ok {
		return owner
	}
	return nil
}

// NodeCount returns the number of live nodes, the scene root included.
func (s *Scene) NodeCount() int {
	return s.ids.count()
}

// Octree returns the octree attached to the scene root, if any.
func (s *Scene) Octree() *Octree {
	o, _ := GetComponent[*Octree](&s.Node)
	return o
}

// ZoneAt returns the highest priority zone whose box contains position.
func (s *Scene) ZoneAt(position math.Vec3) *Zone {
	var best *Zone
	for _, z := range GetComponentsRecursive[*Zone](&s.Node) {
		if !z.WorldBoundingBox().ContainsPoint(position) {
			continue
		}
		if best == nil || z.Priority() > best.Priority() {
			best = z
		}
	}
	return best
}

// Clear destroys every child node and component, keeping the root.
func (s *Scene) Clear() {
	children := s.children
	s.children = nil
	for _, c := range children {
		c.parent = nil
		c.destroy()
	}
	s.RemoveAllComponents()
}
