package ssao

import (
	"fmt"

	"github.com/spaghettifunk/anima-ssao/engine/renderer"
	"github.com/spaghettifunk/anima-ssao/engine/resources"
	"github.com/spaghettifunk/anima-ssao/engine/scene"
)

const (
	SSAO_POSTPROCESS = "PostProcess/SSAO.toml"
	SSAO_TAG         = "SSAO"
)

/**
 * @brief Installs a full-screen viewport at index 0 whose render path is a
 * copy of the default one with the SSAO post-process appended and enabled.
 */
func (s *Sample) SetupViewport() error {
	ctx := s.Context
	camera, ok := scene.GetComponent[*scene.Camera](s.cameraNode)
	if !ok {
		return fmt.Errorf("setup viewport: camera node has no camera")
	}
	viewport := renderer.NewViewport(s.scene, camera, ctx.Renderer.DefaultRenderPath())

	effect := viewport.RenderPath().Clone()
	res, err := ctx.Cache.Get(resources.ResourceTypeRenderPath, SSAO_POSTPROCESS)
	if err != nil {
		return fmt.Errorf("setup viewport: %w", err)
	}
	if err := effect.Append(res.Data.(*resources.RenderPathDefinition)); err != nil {
		return fmt.Errorf("setup viewport: %w", err)
	}
	effect.SetEnabled(SSAO_TAG, true)

	viewport.SetRenderPath(effect)
	if err := ctx.Renderer.SetViewport(0, viewport); err != nil {
		return err
	}
	s.postProcessHandle = res.Handle
	return nil
}
