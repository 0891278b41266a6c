package scene

import (
	"github.com/spaghettifunk/anima-ssao/engine/math"
)

// Component is attached to a node. OnNodeSet is called with the node on
// attach and with nil on detach.
type Component interface {
	OnNodeSet(node *Node)
}

// transformListener is implemented by components that track their node's
// world transform.
type transformListener interface {
	OnMarkedDirty(node *Node)
}

/**
 * @brief A scene graph node: a named transform with children and components.
 * Transforms are relative to the parent node.
 */
type Node struct {
	id       uint32
	name     string
	scene    *Scene
	parent   *Node
	children []*Node

	components []Component

	position math.Vec3
	rotation math.Quaternion
	scale    math.Vec3

	worldDirty     bool
	worldTransform math.Mat4
}

func newNode(name string) *Node {
	return &Node{
		name:           name,
		rotation:       math.NewQuatIdentity(),
		scale:          math.NewVec3One(),
		worldTransform: math.NewMat4Identity(),
		worldDirty:     true,
	}
}

func (n *Node) ID() uint32 {
	return n.id
}

func (n *Node) Name() string {
	return n.name
}

func (n *Node) SetName(name string) {
	n.name = name
}

func (n *Node) Scene() *Scene {
	return n.scene
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

/**
 * @brief Creates a child node with the given name and registers it with
 * the owning scene.
 */
func (n *Node) CreateChild(name string) *Node {
	child := newNode(name)
	child.parent = n
	n.children = append(n.children, child)
	if n.scene != nil {
		n.scene.registerNode(child)
	}
	return child
}

// GetChild returns the first child with the given name, searching the whole
// subtree when recursive is set.
func (n *Node) GetChild(name string, recursive bool) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	if recursive {
		for _, c := range n.children {
			if found := c.GetChild(name, true); found != nil {
				return found
			}
		}
	}
	return nil
}

// Remove detaches the node from its parent and destroys its subtree.
func (n *Node) Remove() {
	if n.parent == nil {
		return
	}
	siblings := n.parent.children
	for i, c := range siblings {
		if c == n {
			n.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	n.parent = nil
	n.destroy()
}

func (n *Node) destroy() {
	for _, c := range n.children {
		c.parent = nil
		c.destroy()
	}
	n.children = nil
	n.RemoveAllComponents()
	if n.scene != nil {
		n.scene.unregisterNode(n)
	}
}

// AddComponent attaches c to the node.
func (n *Node) AddComponent(c Component) {
	n.components = append(n.components, c)
	c.OnNodeSet(n)
}

// CreateComponent attaches c to n and returns it typed, so construction and
// attachment read as one step.
func CreateComponent[T Component](n *Node, c T) T {
	n.AddComponent(c)
	return c
}

func (n *Node) RemoveComponent(c Component) bool {
	for i, existing := range n.components {
		if existing == c {
			n.components = append(n.components[:i], n.components[i+1:]...)
			c.OnNodeSet(nil)
			return true
		}
	}
	return false
}

func (n *Node) RemoveAllComponents() {
	components := n.components
	n.components = nil
	for _, c := range components {
		c.OnNodeSet(nil)
	}
}

func (n *Node) Components() []Component {
	return n.components
}

// GetComponent returns the first component of type T attached to n.
func GetComponent[T Component](n *Node) (T, bool) {
	for _, c := range n.components {
		if typed, ok := c.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}

// GetComponentsRecursive collects every component of type T in the subtree
// rooted at n, including n itself.
func GetComponentsRecursive[T Component](n *Node) []T {
	var out []T
	var walk func(node *Node)
	walk = func(node *Node) {
		for _, c := range node.components {
			if typed, ok := c.(T); ok {
				out = append(out, typed)
			}
		}
		for _, child := range node.children {
			walk(child)
		}
	}
	walk(n)
	return out
}

// ------------------------------------------
// Transform
// ------------------------------------------

func (n *Node) Position() math.Vec3 {
	return n.position
}

func (n *Node) SetPosition(position math.Vec3) {
	n.position = position
	n.markDirty()
}

func (n *Node) Rotation() math.Quaternion {
	return n.rotation
}

func (n *Node) SetRotation(rotation math.Quaternion) {
	n.rotation = rotation.Normalize()
	n.markDirty()
}

func (n *Node) Scale() math.Vec3 {
	return n.scale
}

// SetScale sets a uniform scale on all three axes.
func (n *Node) SetScale(scale float32) {
	n.SetScaleVec(math.NewVec3Uniform(scale))
}

func (n *Node) SetScaleVec(scale math.Vec3) {
	n.scale = scale
	n.markDirty()
}

/**
 * @brief Moves the node by delta expressed in its local space, i.e. along
 * the node's own rotated axes. Scale does not affect the distance moved.
 */
func (n *Node) Translate(delta math.Vec3) {
	n.position = n.position.Add(n.rotation.Rotate(delta))
	n.markDirty()
}

// TranslateWorld moves the node by delta expressed in its parent's space.
func (n *Node) TranslateWorld(delta math.Vec3) {
	n.position = n.position.Add(delta)
	n.markDirty()
}

func (n *Node) Transform() math.Mat4 {
	return math.NewMat4Transform(n.position, n.rotation, n.scale)
}

func (n *Node) WorldTransform() math.Mat4 {
	if n.worldDirty {
		n.worldTransform = n.Transform()
		if n.parent != nil {
			n.worldTransform = n.worldTransform.Mul(n.parent.WorldTransform())
		}
		n.worldDirty = false
	}
	return n.worldTransform
}

func (n *Node) WorldPosition() math.Vec3 {
	return math.NewVec3Zero().Transform(n.WorldTransform())
}

func (n *Node) WorldRotation() math.Quaternion {
	if n.parent == nil {
		return n.rotation
	}
	return n.parent.WorldRotation().Mul(n.rotation)
}

// Direction is the node's world space forward vector.
func (n *Node) Direction() math.Vec3 {
	return n.WorldRotation().Rotate(math.NewVec3Forward())
}

func (n *Node) Right() math.Vec3 {
	return n.WorldRotation().Rotate(math.NewVec3Right())
}

func (n *Node) Up() math.Vec3 {
	return n.WorldRotation().Rotate(math.NewVec3Up())
}

func (n *Node) markDirty() {
	n.worldDirty = true
	for _, c := range n.components {
		if l, ok := c.(transformListener); ok {
			l.OnMarkedDirty(n)
		}
	}
	for _, child := range n.children {
		child.markDirty()
	}
}
