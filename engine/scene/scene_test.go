package scene

import (
	"testing"

	"github.com/spaghettifunk/anima-ssao/engine/math"
	"github.com/spaghettifunk/anima-ssao/engine/resources"
)

func unitBox() *resources.Model {
	return &resources.Model{
		Name:        "Box",
		BoundingBox: math.NewBoundingBox(math.NewVec3Uniform(-0.5), math.NewVec3Uniform(0.5)),
	}
}

func TestNodeHierarchy(t *testing.T) {
	s := NewScene()
	a := s.CreateChild("A")
	b := a.CreateChild("B")
	if a.Scene() != s || b.Scene() != s {
		t.Fatal("children should belong to the scene")
	}
	if a.ID() == b.ID() || s.GetNode(b.ID()) != b {
		t.Error("nodes need unique, resolvable IDs")
	}
	if s.GetChild("B", false) != nil || s.GetChild("B", true) != b {
		t.Error("GetChild recursion mismatch")
	}
	if s.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", s.NodeCount())
	}
	freed := b.ID()
	a.Remove()
	if s.NodeCount() != 1 || s.GetNode(freed) != nil {
		t.Error("removing a node should release its subtree")
	}
	c := s.CreateChild("C")
	if c.ID() != 1 {
		t.Errorf("released IDs should be reused, got %d", c.ID())
	}
}

func TestNodeTransform(t *testing.T) {
	s := NewScene()
	parent := s.CreateChild("Parent")
	parent.SetPosition(math.NewVec3(10, 0, 0))
	child := parent.CreateChild("Child")
	child.SetPosition(math.NewVec3(0, 1.5, 0))
	child.SetScale(3)

	if got := child.WorldPosition(); !got.Compare(math.NewVec3(10, 1.5, 0), 1e-5) {
		t.Errorf("world position = %v", got)
	}
	if got := child.Scale(); got != math.NewVec3Uniform(3) {
		t.Errorf("uniform scale = %v", got)
	}

	// Moving the parent invalidates cached child transforms.
	parent.SetPosition(math.NewVec3(0, 0, 0))
	if got := child.WorldPosition(); !got.Compare(math.NewVec3(0, 1.5, 0), 1e-5) {
		t.Errorf("world position after parent move = %v", got)
	}
}

func TestTranslateIsLocal(t *testing.T) {
	s := NewScene()
	n := s.CreateChild("Camera")
	n.SetRotation(math.NewQuatFromYawPitchRoll(90, 0, 0))
	n.Translate(math.NewVec3Forward().MulScalar(2))
	if got := n.Position(); !got.Compare(math.NewVec3(2, 0, 0), 1e-5) {
		t.Errorf("forward after yaw 90 moved to %v, want +X", got)
	}
	if got := n.Direction(); !got.Compare(math.NewVec3Right(), 1e-5) {
		t.Errorf("direction = %v", got)
	}
}

func TestOctreeRegistersDrawables(t *testing.T) {
	s := NewScene()
	octree := CreateComponent(&s.Node, NewOctree())
	if octree.BoundingBox() != math.NewBoundingBoxUniform(1000) {
		t.Errorf("default octree bounds = %v", octree.BoundingBox())
	}

	var models []*StaticModel
	for i := 0; i < 10; i++ {
		n := s.CreateChild("Box")
		n.SetPosition(math.NewVec3(float32(i*10), 1.5, 0))
		sm := CreateComponent(n, NewStaticModel())
		sm.SetModel(unitBox())
		models = append(models, sm)
	}
	if octree.NumDrawables() != 10 {
		t.Fatalf("NumDrawables = %d, want 10", octree.NumDrawables())
	}

	hits := octree.Query(math.NewBoundingBox(math.NewVec3(-1, 0, -1), math.NewVec3(15, 3, 1)))
	if len(hits) != 2 {
		t.Errorf("query hits = %d, want 2", len(hits))
	}

	// Moved drawables are found at their new place.
	models[9].Node().SetPosition(math.NewVec3(5, 1.5, 0))
	hits = octree.Query(math.NewBoundingBox(math.NewVec3(4, 0, -1), math.NewVec3(6, 3, 1)))
	if len(hits) != 1 || hits[0] != Drawable(models[9]) {
		t.Errorf("moved drawable not found, hits = %d", len(hits))
	}

	models[0].Node().Remove()
	if octree.NumDrawables() != 9 {
		t.Errorf("NumDrawables after remove = %d, want 9", octree.NumDrawables())
	}
}

func TestOctreeAttachedLate(t *testing.T) {
	s := NewScene()
	n := s.CreateChild("Box")
	sm := CreateComponent(n, NewStaticModel())
	sm.SetModel(unitBox())
	octree := CreateComponent(&s.Node, NewOctree())
	if octree.NumDrawables() != 1 {
		t.Fatalf("late octree should adopt existing drawables, got %d", octree.NumDrawables())
	}
	n.SetPosition(math.NewVec3(100, 0, 0))
	if hits := octree.Query(math.NewBoundingBoxUniform(1)); len(hits) != 0 {
		t.Error("moved drawable still found at its old position")
	}
}

func TestCameraDefaults(t *testing.T) {
	s := NewScene()
	n := s.CreateChild("Camera")
	cam := CreateComponent(n, NewCamera())
	if cam.FarClip() != 1000 || cam.Fov() != 45 || !cam.AutoAspectRatio() {
		t.Errorf("camera defaults far=%v fov=%v auto=%v", cam.FarClip(), cam.Fov(), cam.AutoAspectRatio())
	}
	n.SetPosition(math.NewVec3(0, 5, 0))
	p := math.NewVec3(0, 5, -10).Transform(cam.GetView())
	if !p.Compare(math.NewVec3(0, 0, -10), 1e-4) {
		t.Errorf("point ahead of camera in view space = %v", p)
	}
	if got, ok := GetComponent[*Camera](n); !ok || got != cam {
		t.Error("GetComponent should find the camera")
	}
}

func TestZoneAt(t *testing.T) {
	s := NewScene()
	CreateComponent(&s.Node, NewOctree())
	zone := CreateComponent(s.CreateChild("Zone"), NewZone())
	zone.SetBoundingBox(math.NewBoundingBoxUniform(1000))
	zone.SetAmbientColor(math.NewColor(0.5, 0.5, 0.5, 1))
	zone.SetFogStart(100)
	zone.SetFogEnd(300)

	if got := s.ZoneAt(math.NewVec3(0, 5, 0)); got != zone {
		t.Error("camera position should be inside the zone")
	}
	if got := s.ZoneAt(math.NewVec3(2000, 0, 0)); got != nil {
		t.Error("no zone expected outside the bounds")
	}
	s.Clear()
	if s.NodeCount() != 1 || s.Octree() != nil {
		t.Error("Clear should leave only the root")
	}
}
