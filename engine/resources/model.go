package resources

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/spaghettifunk/anima-ssao/engine/math"
)

// ModelLoader reads .gltf/.glb files. Only geometry extents and counts are
// kept; vertex data stays with the file for a GPU backend to upload.
type ModelLoader struct{}

func (ml *ModelLoader) Load(fullPath string) (interface{}, error) {
	doc, err := gltf.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", fullPath, err)
	}

	model := &Model{
		Name: strings.TrimSuffix(filepath.Base(fullPath), filepath.Ext(fullPath)),
	}
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			g, err := loadGeometry(doc, gm.Name, mi, pi, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			model.Geometries = append(model.Geometries, g)
			model.BoundingBox = model.BoundingBox.Merge(g.BoundingBox)
		}
	}
	if len(model.Geometries) == 0 {
		return nil, fmt.Errorf("gltf %q has no mesh primitives", fullPath)
	}
	return model, nil
}

func (ml *ModelLoader) Unload(res *Resource) error {
	res.Data = nil
	return nil
}

func loadGeometry(doc *gltf.Document, meshName string, meshIdx, primIdx int, prim *gltf.Primitive) (Geometry, error) {
	name := fmt.Sprintf("%s_p%d", meshName, primIdx)
	if meshName == "" {
		name = fmt.Sprintf("mesh%d_p%d", meshIdx, primIdx)
	}
	g := Geometry{Name: name}

	// Positions are required
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return g, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return g, fmt.Errorf("positions: %w", err)
	}
	g.VertexCount = len(positions)
	for _, p := range positions {
		g.BoundingBox = g.BoundingBox.MergePoint(math.NewVec3(p[0], p[1], p[2]))
	}

	if prim.Indices != nil {
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return g, fmt.Errorf("indices: %w", err)
		}
		g.IndexCount = len(indices)
	}
	return g, nil
}
