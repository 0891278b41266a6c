package scene

import (
	"github.com/spaghettifunk/anima-ssao/engine/math"
)

const (
	DEFAULT_OCTREE_SIZE   float32 = 1000.0
	DEFAULT_OCTREE_LEVELS int     = 8
)

// Drawable is a component with world space extents that lives in the octree.
type Drawable interface {
	Component
	Node() *Node
	WorldBoundingBox() math.BoundingBox
}

type octant struct {
	bounds    math.BoundingBox
	level     int
	children  [8]*octant
	drawables []Drawable
}

func (o *octant) childBounds(index int) math.BoundingBox {
	center := o.bounds.Center()
	min, max := o.bounds.Min, center
	if index&1 != 0 {
		min.X, max.X = center.X, o.bounds.Max.X
	}
	if index&2 != 0 {
		min.Y, max.Y = center.Y, o.bounds.Max.Y
	}
	if index&4 != 0 {
		min.Z, max.Z = center.Z, o.bounds.Max.Z
	}
	return math.NewBoundingBox(min, max)
}

func (o *octant) insert(d Drawable, box math.BoundingBox, maxLevels int) *octant {
	if o.level < maxLevels {
		for i := 0; i < 8; i++ {
			cb := o.childBounds(i)
			if !cb.Contains(box) {
				continue
			}
			if o.children[i] == nil {
				o.children[i] = &octant{bounds: cb, level: o.level + 1}
			}
			return o.children[i].insert(d, box, maxLevels)
		}
	}
	o.drawables = append(o.drawables, d)
	return o
}

func (o *octant) remove(d Drawable) {
	for i, existing := range o.drawables {
		if existing == d {
			o.drawables = append(o.drawables[:i], o.drawables[i+1:]...)
			return
		}
	}
}

func (o *octant) query(box math.BoundingBox, out []Drawable) []Drawable {
	if !o.bounds.Intersects(box) && o.level > 0 {
		return out
	}
	for _, d := range o.drawables {
		if d.WorldBoundingBox().Intersects(box) {
			out = append(out, d)
		}
	}
	for _, c := range o.children {
		if c != nil {
			out = c.query(box, out)
		}
	}
	return out
}

/**
 * @brief Spatial index of the drawables in a scene. Drawables that do not
 * fit inside the bounds are kept in the root octant.
 */
type Octree struct {
	node      *Node
	root      *octant
	maxLevels int
	placement map[Drawable]*octant
	dirty     map[Drawable]struct{}
}

func NewOctree() *Octree {
	o := &Octree{
		maxLevels: DEFAULT_OCTREE_LEVELS,
		placement: make(map[Drawable]*octant),
		dirty:     make(map[Drawable]struct{}),
	}
	o.root = &octant{bounds: math.NewBoundingBoxUniform(DEFAULT_OCTREE_SIZE)}
	return o
}

func (o *Octree) OnNodeSet(node *Node) {
	o.node = node
	if node == nil {
		return
	}
	// Drawables created before the octree attach themselves again.
	if node.Scene() == nil || node.Scene().Octree() != o {
		return
	}
	for _, d := range GetComponentsRecursive[Drawable](node) {
		d.OnNodeSet(d.Node())
	}
}

func (o *Octree) Node() *Node {
	return o.node
}

// SetSize rebuilds the octree with new bounds and subdivision depth.
func (o *Octree) SetSize(box math.BoundingBox, numLevels int) {
	if numLevels < 1 {
		numLevels = 1
	}
	drawables := o.Drawables()
	o.root = &octant{bounds: box}
	o.maxLevels = numLevels
	o.placement = make(map[Drawable]*octant, len(drawables))
	o.dirty = make(map[Drawable]struct{})
	for _, d := range drawables {
		o.AddDrawable(d)
	}
}

func (o *Octree) BoundingBox() math.BoundingBox {
	return o.root.bounds
}

func (o *Octree) NumLevels() int {
	return o.maxLevels
}

func (o *Octree) AddDrawable(d Drawable) {
	if _, ok := o.placement[d]; ok {
		return
	}
	o.placement[d] = o.root.insert(d, d.WorldBoundingBox(), o.maxLevels)
}

func (o *Octree) RemoveDrawable(d Drawable) {
	if oct, ok := o.placement[d]; ok {
		oct.remove(d)
		delete(o.placement, d)
	}
	delete(o.dirty, d)
}

// MarkForUpdate queues d to be reinserted before the next query.
func (o *Octree) MarkForUpdate(d Drawable) {
	if _, ok := o.placement[d]; ok {
		o.dirty[d] = struct{}{}
	}
}

// Update reinserts drawables that moved.
func (o *Octree) Update() {
	for d := range o.dirty {
		if oct, ok := o.placement[d]; ok {
			oct.remove(d)
			o.placement[d] = o.root.insert(d, d.WorldBoundingBox(), o.maxLevels)
		}
	}
	o.dirty = make(map[Drawable]struct{})
}

func (o *Octree) NumDrawables() int {
	return len(o.placement)
}

func (o *Octree) Drawables() []Drawable {
	out := make([]Drawable, 0, len(o.placement))
	for d := range o.placement {
		out = append(out, d)
	}
	return out
}

// Query returns the drawables whose world bounds intersect box.
func (o *Octree) Query(box math.BoundingBox) []Drawable {
	o.Update()
	return o.root.query(box, nil)
}
