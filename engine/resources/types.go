package resources

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spaghettifunk/anima-ssao/engine/math"
)

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Unknown or unsupported resource. */
	ResourceTypeNone ResourceType = iota
	/** @brief Plain text resource type. */
	ResourceTypeText
	/** @brief Model resource type (glTF geometry). */
	ResourceTypeModel
	/** @brief Material resource type. */
	ResourceTypeMaterial
	/** @brief Render path definition, either a full path or a post-process fragment. */
	ResourceTypeRenderPath
	/** @brief UI style sheet. */
	ResourceTypeStyle
	/** @brief Font resource type, bitmap (.fnt) or outline (.ttf/.otf). */
	ResourceTypeFont
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeText:
		return "text"
	case ResourceTypeModel:
		return "model"
	case ResourceTypeMaterial:
		return "material"
	case ResourceTypeRenderPath:
		return "renderpath"
	case ResourceTypeStyle:
		return "style"
	case ResourceTypeFont:
		return "font"
	}
	return "none"
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief Unique handle, regenerated every time the resource is (re)loaded. */
	Handle uuid.UUID
	/** @brief The name of the resource, the slash separated path it was requested with. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The resource type. */
	Type ResourceType
	/** @brief When the data was last read from disk. */
	LoadedAt time.Time
	/** @brief The resource data. */
	Data interface{}
}

/**
 * @brief Geometry statistics for one glTF primitive.
 */
type Geometry struct {
	Name        string
	VertexCount int
	IndexCount  int
	/** @brief The extents of the geometry in local coordinates. */
	BoundingBox math.BoundingBox
}

/**
 * @brief A model made of one or more geometries.
 */
type Model struct {
	Name       string
	Geometries []Geometry
	/** @brief The extents of all geometries in local coordinates. */
	BoundingBox math.BoundingBox
}

/**
 * @brief A material, which represents various properties
 * of a surface in the world such as texture, colour and shading technique.
 */
type Material struct {
	Name      string               `toml:"name"`
	Technique string               `toml:"technique"`
	Cull      string               `toml:"cull"`
	Textures  map[string]string    `toml:"textures"`
	Params    map[string][]float32 `toml:"parameters"`
}

/**
 * @brief Describes an offscreen render target used by render path commands.
 */
type RenderTargetDefinition struct {
	Name    string `toml:"name"`
	Tag     string `toml:"tag"`
	Format  string `toml:"format"`
	Size    [2]int `toml:"size"`
	Divisor [2]int `toml:"divisor"`
	Filter  bool   `toml:"filter"`
	Enabled *bool  `toml:"enabled"`
}

/**
 * @brief Describes one render path command: a scene pass, a clear, or a
 * fullscreen quad with shaders and parameters.
 */
type CommandDefinition struct {
	Type         string               `toml:"type"`
	Tag          string               `toml:"tag"`
	Pass         string               `toml:"pass"`
	Enabled      *bool                `toml:"enabled"`
	Sort         string               `toml:"sort"`
	Metadata     string               `toml:"metadata"`
	VertexLights bool                 `toml:"vertexlights"`
	ClearColor   string               `toml:"color"`
	ClearDepth   *float32             `toml:"depth"`
	ClearStencil *int                 `toml:"stencil"`
	VS           string               `toml:"vs"`
	PS           string               `toml:"ps"`
	VSDefines    string               `toml:"vsdefines"`
	PSDefines    string               `toml:"psdefines"`
	Output       string               `toml:"output"`
	Textures     map[string]string    `toml:"textures"`
	Parameters   map[string][]float32 `toml:"parameters"`
}

/**
 * @brief A render path definition as stored on disk. A full path or a
 * post-process fragment share this layout.
 */
type RenderPathDefinition struct {
	Name     string                   `toml:"name"`
	Targets  []RenderTargetDefinition `toml:"rendertarget"`
	Commands []CommandDefinition      `toml:"command"`
}

/**
 * @brief Visual properties applied to UI elements of one type.
 */
type ElementStyle struct {
	Color     *[4]float32 `toml:"color"`
	Font      string      `toml:"font"`
	FontSize  int         `toml:"font_size"`
	MinHeight int32       `toml:"min_height"`
	Padding   [4]int32    `toml:"padding"`
	Texture   string      `toml:"texture"`
}

/**
 * @brief A UI style sheet: default values plus per-element-type overrides.
 */
type Style struct {
	Name     string                  `toml:"name"`
	Font     string                  `toml:"font"`
	FontSize int                     `toml:"font_size"`
	Elements map[string]ElementStyle `toml:"elements"`
}

// DetermineResourceType guesses the type of a resource from its name. It is
// used when a file shows up without having been requested with an explicit type.
func DetermineResourceType(name string) ResourceType {
	switch strings.ToLower(path.Ext(name)) {
	case ".gltf", ".glb":
		return ResourceTypeModel
	case ".fnt", ".ttf", ".otf":
		return ResourceTypeFont
	case ".txt", ".glsl", ".hlsl":
		return ResourceTypeText
	case ".toml":
		dir := strings.ToLower(path.Dir(name))
		switch {
		case strings.HasPrefix(dir, "materials"):
			return ResourceTypeMaterial
		case strings.HasPrefix(dir, "renderpaths"), strings.HasPrefix(dir, "postprocess"):
			return ResourceTypeRenderPath
		case strings.HasPrefix(dir, "ui"):
			return ResourceTypeStyle
		}
	}
	return ResourceTypeNone
}
