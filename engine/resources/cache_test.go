package resources

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/spaghettifunk/anima-ssao/engine/core"
)

const assetsDir = "../../assets"

func newTestCache(t *testing.T, dirs ...string) *ResourceCache {
	t.Helper()
	rc := NewResourceCache(core.NewEventSystem())
	for _, d := range dirs {
		if err := rc.AddResourceDir(d); err != nil {
			t.Fatalf("AddResourceDir(%s): %v", d, err)
		}
	}
	t.Cleanup(func() { rc.Shutdown() })
	return rc
}

func TestGetModel(t *testing.T) {
	rc := newTestCache(t, assetsDir)

	box, err := rc.GetModel("Models/Box.gltf")
	if err != nil {
		t.Fatalf("GetModel: %v", err)
	}
	if len(box.Geometries) != 1 || box.Geometries[0].VertexCount != 24 || box.Geometries[0].IndexCount != 36 {
		t.Errorf("unexpected box geometry %+v", box.Geometries)
	}
	if box.BoundingBox.Min.X != -0.5 || box.BoundingBox.Max.Y != 0.5 {
		t.Errorf("box bounds = %v..%v", box.BoundingBox.Min, box.BoundingBox.Max)
	}

	again, err := rc.GetModel("Models\\Box.gltf")
	if err != nil || again != box {
		t.Error("second lookup should return the cached model")
	}

	plane, err := rc.GetModel("Models/Plane.gltf")
	if err != nil {
		t.Fatalf("GetModel plane: %v", err)
	}
	if plane.BoundingBox.Size().Y != 0 {
		t.Errorf("plane should be flat, size %v", plane.BoundingBox.Size())
	}
}

func TestGetDefinitions(t *testing.T) {
	rc := newTestCache(t, assetsDir)

	mat, err := rc.GetMaterial("Materials/Prototype.toml")
	if err != nil {
		t.Fatalf("GetMaterial: %v", err)
	}
	if mat.Technique == "" || len(mat.Params["MatDiffColor"]) != 4 {
		t.Errorf("unexpected material %+v", mat)
	}

	fwd, err := rc.GetRenderPathDefinition("RenderPaths/Forward.toml")
	if err != nil {
		t.Fatalf("GetRenderPathDefinition: %v", err)
	}
	if len(fwd.Commands) == 0 || fwd.Commands[0].Type != "clear" {
		t.Errorf("forward path commands = %+v", fwd.Commands)
	}

	ssao, err := rc.GetRenderPathDefinition("PostProcess/SSAO.toml")
	if err != nil {
		t.Fatalf("GetRenderPathDefinition SSAO: %v", err)
	}
	found := false
	for _, cmd := range ssao.Commands {
		if cmd.Tag != "SSAO" {
			t.Errorf("command %q not tagged SSAO", cmd.PSDefines)
		}
		if _, ok := cmd.Parameters["SSAOStrength"]; ok {
			found = true
		}
	}
	if !found {
		t.Error("SSAO path declares no SSAOStrength parameter")
	}

	style, err := rc.GetStyle("UI/DefaultStyle.toml")
	if err != nil {
		t.Fatalf("GetStyle: %v", err)
	}
	if _, ok := style.Elements["Slider"]; !ok {
		t.Error("default style has no Slider entry")
	}
}

func TestGetBitmapFont(t *testing.T) {
	rc := newTestCache(t, assetsDir)
	f, err := rc.GetFont("Fonts/AnonymousPro.fnt")
	if err != nil {
		t.Fatalf("GetFont: %v", err)
	}
	if f.Face != "Anonymous Pro" || f.Size != 15 || f.LineHeight != 17 {
		t.Errorf("font = %s %d %d", f.Face, f.Size, f.LineHeight)
	}
	if len(f.Glyphs) != 95 || len(f.Pages) != 1 {
		t.Errorf("glyphs = %d pages = %d", len(f.Glyphs), len(f.Pages))
	}
	// Monospace, 8px advance at native size, one kerning pair for "AV".
	if got := f.MeasureText("SSAO", 15); got.X != 32 || got.Y != 17 {
		t.Errorf("MeasureText(SSAO) = %v", got)
	}
	if got := f.MeasureText("AV", 15); got.X != 15 {
		t.Errorf("MeasureText(AV) = %v, want kerned width 15", got)
	}
	if got := f.MeasureText("ab\nabcd", 30); got.X != 64 || got.Y != 68 {
		t.Errorf("MeasureText scaled multi-line = %v", got)
	}
}

func TestGetSystemFont(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "Fonts"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Fonts", "GoRegular.ttf"), goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	rc := newTestCache(t, dir)
	f, err := rc.GetFont("Fonts/GoRegular.ttf")
	if err != nil {
		t.Fatalf("GetFont: %v", err)
	}
	if f.Type != FONT_TYPE_SYSTEM || f.Face != "Go" {
		t.Errorf("font type %v face %q", f.Type, f.Face)
	}
	small := f.MeasureText("SSAO Output", 12)
	large := f.MeasureText("SSAO Output", 24)
	if small.X <= 0 || large.X <= small.X || large.Y <= small.Y {
		t.Errorf("text should grow with size: %v vs %v", small, large)
	}
}

func TestGetErrors(t *testing.T) {
	rc := newTestCache(t, assetsDir)
	if _, err := rc.GetModel("Models/Missing.gltf"); !errors.Is(err, core.ErrResourceNotFound) {
		t.Errorf("missing model error = %v", err)
	}
	if _, err := rc.GetModel("Models/Box.gltf"); err != nil {
		t.Fatal(err)
	}
	if _, err := rc.GetFont("Models/Box.gltf"); !errors.Is(err, core.ErrUnknownResourceType) {
		t.Errorf("type mismatch error = %v", err)
	}
	delete(rc.loaders, ResourceTypeText)
	if _, err := rc.GetText("Materials/Prototype.toml"); !errors.Is(err, core.ErrNoLoader) {
		t.Errorf("no loader error = %v", err)
	}
}

func TestDetermineResourceType(t *testing.T) {
	tests := map[string]ResourceType{
		"Models/Box.gltf":          ResourceTypeModel,
		"Fonts/AnonymousPro.fnt":   ResourceTypeFont,
		"Materials/Prototype.toml": ResourceTypeMaterial,
		"PostProcess/SSAO.toml":    ResourceTypeRenderPath,
		"RenderPaths/Forward.toml": ResourceTypeRenderPath,
		"UI/DefaultStyle.toml":     ResourceTypeStyle,
		"Textures/Noise.png":       ResourceTypeNone,
	}
	for name, want := range tests {
		if got := DetermineResourceType(name); got != want {
			t.Errorf("DetermineResourceType(%s) = %v, want %v", name, got, want)
		}
	}
}

func writeMaterial(t *testing.T, dir, technique string) {
	t.Helper()
	content := "name = \"Test\"\ntechnique = \"" + technique + "\"\n"
	if err := os.WriteFile(filepath.Join(dir, "Materials", "Test.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestReloadResource(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "Materials"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeMaterial(t, dir, "Techniques/A.xml")

	rc := newTestCache(t, dir)
	reloaded := 0
	var eventHandle uuid.UUID
	rc.events.Register(core.EVENT_CODE_RESOURCE_RELOADED, t, func(ctx core.EventContext) bool {
		if e := ctx.Data.(*core.ResourceEvent); e.Name == "Materials/Test.toml" {
			reloaded++
			eventHandle = e.Handle
		}
		return false
	})

	res, err := rc.Get(ResourceTypeMaterial, "Materials/Test.toml")
	if err != nil {
		t.Fatal(err)
	}
	handle := res.Handle
	held, err := rc.GetMaterial("Materials/Test.toml")
	if err != nil {
		t.Fatal(err)
	}

	writeMaterial(t, dir, "Techniques/B.xml")
	if err := rc.ReloadResource("Materials/Test.toml"); err != nil {
		t.Fatal(err)
	}
	if res.Data.(*Material).Technique != "Techniques/B.xml" {
		t.Errorf("technique after reload = %s", res.Data.(*Material).Technique)
	}
	if res.Handle == handle {
		t.Error("reload should issue a new handle")
	}
	if eventHandle != res.Handle {
		t.Errorf("event handle %s, cached handle %s", eventHandle, res.Handle)
	}
	if held.Technique != "Techniques/B.xml" {
		t.Errorf("material held before the reload still has technique %s", held.Technique)
	}
	if reloaded != 1 {
		t.Errorf("reload events = %d, want 1", reloaded)
	}

	// A broken file keeps the previous data.
	writeMaterial(t, dir, "")
	if err := rc.ReloadResource("Materials/Test.toml"); err == nil {
		t.Error("reload of an invalid material should fail")
	}
	if res.Data.(*Material).Technique != "Techniques/B.xml" {
		t.Error("failed reload must keep the old data")
	}
}

func TestAutoReload(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "Materials"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeMaterial(t, dir, "Techniques/A.xml")

	rc := newTestCache(t, dir)
	mat, err := rc.GetMaterial("Materials/Test.toml")
	if err != nil {
		t.Fatal(err)
	}
	if mat.Technique != "Techniques/A.xml" {
		t.Fatalf("technique = %s", mat.Technique)
	}
	if err := rc.SetAutoReload(true); err != nil {
		t.Fatalf("SetAutoReload: %v", err)
	}

	writeMaterial(t, dir, "Techniques/C.xml")
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		rc.Update()
		mat, _ = rc.GetMaterial("Materials/Test.toml")
		if mat.Technique == "Techniques/C.xml" {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if mat.Technique != "Techniques/C.xml" {
		t.Errorf("watcher did not reload the material, technique = %s", mat.Technique)
	}
	if err := rc.SetAutoReload(false); err != nil {
		t.Error(err)
	}
	if rc.AutoReload() {
		t.Error("auto reload should be off")
	}
}

func TestPreloadAsync(t *testing.T) {
	rc := newTestCache(t, assetsDir)
	jobs, err := core.NewJobSystem(2, 4)
	if err != nil {
		t.Fatal(err)
	}

	if err := rc.PreloadAsync(jobs, ResourceTypeModel, "Models/Box.gltf", "Models/Plane.gltf"); err != nil {
		t.Fatalf("PreloadAsync: %v", err)
	}
	if err := rc.PreloadAsync(jobs, ResourceTypeModel, "Models/Missing.gltf"); !errors.Is(err, core.ErrResourceNotFound) {
		t.Errorf("expected ErrResourceNotFound, got %v", err)
	}
	jobs.Shutdown()
	if rc.IsCached("Models/Box.gltf") {
		t.Fatal("resources must enter the cache during Update")
	}

	if n := jobs.Update(); n != 2 {
		t.Errorf("Update = %d, want 2", n)
	}
	if !rc.IsCached("Models/Box.gltf") || !rc.IsCached("Models/Plane.gltf") {
		t.Fatal("preloaded models missing from the cache")
	}
	box, err := rc.GetModel("Models/Box.gltf")
	if err != nil || len(box.Geometries) != 1 {
		t.Errorf("preloaded box unusable: %v", err)
	}
}
