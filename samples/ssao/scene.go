package ssao

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/spaghettifunk/anima-ssao/engine/math"
	"github.com/spaghettifunk/anima-ssao/engine/resources"
	"github.com/spaghettifunk/anima-ssao/engine/scene"
)

const (
	NUM_OBJECTS = 200

	PLANE_MODEL = "Models/Plane.gltf"
	BOX_MODEL   = "Models/Box.gltf"
	MATERIAL    = "Materials/Prototype.toml"
)

/**
 * @brief Builds the sample scene: a large floor plane, a zone with ambient
 * light and fog, a row of boxes of random size and a camera above the floor.
 * Returns the scene and the camera node.
 */
func CreateScene(cache *resources.ResourceCache, rng *rand.Rand) (*scene.Scene, *scene.Node, error) {
	planeModel, err := cache.GetModel(PLANE_MODEL)
	if err != nil {
		return nil, nil, fmt.Errorf("create scene: %w", err)
	}
	boxModel, err := cache.GetModel(BOX_MODEL)
	if err != nil {
		return nil, nil, fmt.Errorf("create scene: %w", err)
	}
	material, err := cache.GetMaterial(MATERIAL)
	if err != nil {
		return nil, nil, fmt.Errorf("create scene: %w", err)
	}

	s := scene.NewScene()

	// The octree must exist before any drawable is attached.
	octree := scene.CreateComponent(&s.Node, scene.NewOctree())
	octree.SetSize(math.NewBoundingBoxUniform(1000), scene.DEFAULT_OCTREE_LEVELS)

	planeNode := s.CreateChild("Plane")
	planeNode.SetScaleVec(math.NewVec3(100, 1, 100))
	planeObject := scene.CreateComponent(planeNode, scene.NewStaticModel())
	planeObject.SetModel(planeModel)
	planeObject.SetMaterial(material)

	zoneNode := s.CreateChild("Zone")
	zone := scene.CreateComponent(zoneNode, scene.NewZone())
	zone.SetBoundingBox(math.NewBoundingBoxUniform(1000))
	zone.SetAmbientColor(math.NewColor(0.5, 0.5, 0.5, 1))
	zone.SetFogStart(100)
	zone.SetFogEnd(300)

	for i := 0; i < NUM_OBJECTS; i++ {
		boxNode := s.CreateChild("Box")
		boxNode.SetPosition(math.NewVec3(float32(i), 1.5, 0))
		boxNode.SetScale(math.RandomRange(rng, 3, 5))
		boxObject := scene.CreateComponent(boxNode, scene.NewStaticModel())
		boxObject.SetModel(boxModel)
		boxObject.SetMaterial(material)
	}

	// Camera defaults: far clip 1000, 45 degree FOV, automatic aspect ratio.
	cameraNode := s.CreateChild("Camera")
	camera := scene.CreateComponent(cameraNode, scene.NewCamera())
	camera.SetFarClip(1000)
	cameraNode.SetPosition(math.NewVec3(0, 5, 0))

	return s, cameraNode, nil
}
