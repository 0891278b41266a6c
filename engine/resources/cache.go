package resources

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spaghettifunk/anima-ssao/engine/core"
)

type Loader interface {
	// Load reads the file at fullPath and returns the decoded resource data.
	Load(fullPath string) (interface{}, error)
	Unload(resource *Resource) error
}

// ResourceCache loads resources by name from an ordered list of resource
// directories, keeps them cached and optionally reloads them when the files
// change on disk. It is not safe for concurrent use except for the watcher,
// which only queues names for Update.
type ResourceCache struct {
	dirs      []string
	loaders   map[ResourceType]Loader
	resources map[string]*Resource

	events  *core.EventSystem
	watcher *Watcher

	// guards dirs writes and pending
	mutex   sync.Mutex
	pending map[string]struct{}
}

func NewResourceCache(events *core.EventSystem) *ResourceCache {
	rc := &ResourceCache{
		loaders:   make(map[ResourceType]Loader),
		resources: make(map[string]*Resource),
		events:    events,
		pending:   make(map[string]struct{}),
	}

	// Register loaders
	rc.RegisterLoader(ResourceTypeText, &TextLoader{})
	rc.RegisterLoader(ResourceTypeModel, &ModelLoader{})
	rc.RegisterLoader(ResourceTypeMaterial, &MaterialLoader{})
	rc.RegisterLoader(ResourceTypeRenderPath, &RenderPathLoader{})
	rc.RegisterLoader(ResourceTypeStyle, &StyleLoader{})
	rc.RegisterLoader(ResourceTypeFont, &FontLoader{})
	return rc
}

// AddResourceDir appends a directory to the lookup list. Earlier directories win.
func (rc *ResourceCache) AddResourceDir(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	s, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("resource dir '%s': %w", dir, err)
	}
	if !s.IsDir() {
		return fmt.Errorf("resource dir '%s' is not a directory", dir)
	}
	for _, d := range rc.dirs {
		if d == abs {
			return nil
		}
	}
	rc.mutex.Lock()
	rc.dirs = append(rc.dirs, abs)
	rc.mutex.Unlock()
	if rc.watcher != nil {
		return rc.watcher.AddRecursive(abs)
	}
	core.LogDebug("added resource dir %s", abs)
	return nil
}

func (rc *ResourceCache) ResourceDirs() []string {
	return rc.dirs
}

// Register loaders for each resource type
func (rc *ResourceCache) RegisterLoader(resourceType ResourceType, loader Loader) {
	rc.loaders[resourceType] = loader
}

// Exists reports whether name can be found in any resource directory.
func (rc *ResourceCache) Exists(name string) bool {
	_, err := rc.locate(name)
	return err == nil
}

// Get returns the cached resource for name, loading it first if needed.
func (rc *ResourceCache) Get(resourceType ResourceType, name string) (*Resource, error) {
	name = sanitizeName(name)
	if res, ok := rc.resources[name]; ok {
		if res.Type != resourceType {
			return nil, fmt.Errorf("resource '%s' is a %s, not a %s: %w", name, res.Type, resourceType, core.ErrUnknownResourceType)
		}
		return res, nil
	}

	res, err := rc.load(resourceType, name)
	if err != nil {
		core.LogError("failed to load %s '%s': %s", resourceType, name, err)
		return nil, err
	}
	rc.resources[name] = res
	return res, nil
}

func (rc *ResourceCache) load(resourceType ResourceType, name string) (*Resource, error) {
	loader, ok := rc.loaders[resourceType]
	if !ok {
		return nil, fmt.Errorf("%s: %w", resourceType, core.ErrNoLoader)
	}
	fullPath, err := rc.locate(name)
	if err != nil {
		return nil, err
	}
	data, err := loader.Load(fullPath)
	if err != nil {
		return nil, fmt.Errorf("loading '%s': %w", name, err)
	}
	return &Resource{
		Handle:   uuid.New(),
		Name:     name,
		FullPath: fullPath,
		Type:     resourceType,
		LoadedAt: time.Now(),
		Data:     data,
	}, nil
}

/**
 * @brief Loads the named resources on the job system. Files are decoded on
 * the workers; each resource enters the cache when the job system's Update
 * runs its callback. Names already cached are skipped.
 */
func (rc *ResourceCache) PreloadAsync(jobs *core.JobSystem, resourceType ResourceType, names ...string) error {
	loader, ok := rc.loaders[resourceType]
	if !ok {
		return fmt.Errorf("%s: %w", resourceType, core.ErrNoLoader)
	}
	for _, name := range names {
		name := sanitizeName(name)
		if _, cached := rc.resources[name]; cached {
			continue
		}
		fullPath, err := rc.locate(name)
		if err != nil {
			return err
		}
		err = jobs.Submit(core.JobTask{
			Name: name,
			OnStart: func() (interface{}, error) {
				return loader.Load(fullPath)
			},
			OnComplete: func(data interface{}) {
				// A synchronous Get may have won the race.
				if _, cached := rc.resources[name]; cached {
					return
				}
				rc.resources[name] = &Resource{
					Handle:   uuid.New(),
					Name:     name,
					FullPath: fullPath,
					Type:     resourceType,
					LoadedAt: time.Now(),
					Data:     data,
				}
				core.LogDebug("preloaded %s '%s'", resourceType, name)
			},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// IsCached reports whether name is loaded.
func (rc *ResourceCache) IsCached(name string) bool {
	_, ok := rc.resources[sanitizeName(name)]
	return ok
}

func (rc *ResourceCache) locate(name string) (string, error) {
	name = sanitizeName(name)
	for _, dir := range rc.dirs {
		fullPath := filepath.Join(dir, filepath.FromSlash(name))
		if s, err := os.Stat(fullPath); err == nil && !s.IsDir() {
			return fullPath, nil
		}
	}
	return "", fmt.Errorf("'%s': %w", name, core.ErrResourceNotFound)
}

func (rc *ResourceCache) GetModel(name string) (*Model, error) {
	res, err := rc.Get(ResourceTypeModel, name)
	if err != nil {
		return nil, err
	}
	return res.Data.(*Model), nil
}

func (rc *ResourceCache) GetMaterial(name string) (*Material, error) {
	res, err := rc.Get(ResourceTypeMaterial, name)
	if err != nil {
		return nil, err
	}
	return res.Data.(*Material), nil
}

func (rc *ResourceCache) GetRenderPathDefinition(name string) (*RenderPathDefinition, error) {
	res, err := rc.Get(ResourceTypeRenderPath, name)
	if err != nil {
		return nil, err
	}
	return res.Data.(*RenderPathDefinition), nil
}

func (rc *ResourceCache) GetStyle(name string) (*Style, error) {
	res, err := rc.Get(ResourceTypeStyle, name)
	if err != nil {
		return nil, err
	}
	return res.Data.(*Style), nil
}

func (rc *ResourceCache) GetFont(name string) (*Font, error) {
	res, err := rc.Get(ResourceTypeFont, name)
	if err != nil {
		return nil, err
	}
	return res.Data.(*Font), nil
}

func (rc *ResourceCache) GetText(name string) (string, error) {
	res, err := rc.Get(ResourceTypeText, name)
	if err != nil {
		return "", err
	}
	return res.Data.(string), nil
}

// Release drops a resource from the cache.
func (rc *ResourceCache) Release(name string) {
	name = sanitizeName(name)
	res, ok := rc.resources[name]
	if !ok {
		return
	}
	if loader, ok := rc.loaders[res.Type]; ok {
		if err := loader.Unload(res); err != nil {
			core.LogWarn("failed to unload '%s': %s", name, err)
		}
	}
	delete(rc.resources, name)
}

// ReloadResource reads a cached resource from disk again. On failure the old
// data is kept.
func (rc *ResourceCache) ReloadResource(name string) error {
	name = sanitizeName(name)
	res, ok := rc.resources[name]
	if !ok {
		return fmt.Errorf("'%s': %w", name, core.ErrResourceNotFound)
	}
	fresh, err := rc.load(res.Type, name)
	if err != nil {
		return err
	}
	res.Handle = fresh.Handle
	res.FullPath = fresh.FullPath
	res.LoadedAt = fresh.LoadedAt
	res.Data = refreshData(res.Data, fresh.Data)

	core.LogInfo("reloaded %s '%s'", res.Type, name)
	if rc.events != nil {
		rc.events.Fire(core.EventContext{
			Type:   core.EVENT_CODE_RESOURCE_RELOADED,
			Sender: rc,
			Data:   &core.ResourceEvent{Name: name, Handle: res.Handle},
		})
	}
	return nil
}

// refreshData overwrites the object already handed out with the freshly loaded
// one, so components holding the pointer see the new contents. Value data is
// replaced.
func refreshData(old, fresh interface{}) interface{} {
	switch o := old.(type) {
	case *Model:
		if f, ok := fresh.(*Model); ok {
			*o = *f
			return o
		}
	case *Material:
		if f, ok := fresh.(*Material); ok {
			*o = *f
			return o
		}
	case *RenderPathDefinition:
		if f, ok := fresh.(*RenderPathDefinition); ok {
			*o = *f
			return o
		}
	case *Style:
		if f, ok := fresh.(*Style); ok {
			*o = *f
			return o
		}
	case *Font:
		if f, ok := fresh.(*Font); ok {
			*o = *f
			return o
		}
	}
	return fresh
}

// SetAutoReload starts or stops watching the resource directories.
func (rc *ResourceCache) SetAutoReload(enable bool) error {
	if enable == (rc.watcher != nil) {
		return nil
	}
	if !enable {
		err := rc.watcher.Close()
		rc.watcher = nil
		return err
	}
	w, err := NewWatcher(rc.queueReload)
	if err != nil {
		return err
	}
	for _, dir := range rc.dirs {
		if err := w.AddRecursive(dir); err != nil {
			w.Close()
			return err
		}
	}
	rc.watcher = w
	core.LogInfo("resource auto-reload enabled")
	return nil
}

func (rc *ResourceCache) AutoReload() bool {
	return rc.watcher != nil
}

// queueReload runs on the watcher goroutine.
func (rc *ResourceCache) queueReload(fullPath string) {
	rc.mutex.Lock()
	defer rc.mutex.Unlock()
	if name, ok := rc.nameFromPath(fullPath); ok {
		rc.pending[name] = struct{}{}
	}
}

func (rc *ResourceCache) nameFromPath(fullPath string) (string, bool) {
	for _, dir := range rc.dirs {
		rel, err := filepath.Rel(dir, fullPath)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		return sanitizeName(filepath.ToSlash(rel)), true
	}
	return "", false
}

// Update applies reloads queued by the watcher. Call once per frame.
func (rc *ResourceCache) Update() {
	rc.mutex.Lock()
	if len(rc.pending) == 0 {
		rc.mutex.Unlock()
		return
	}
	names := make([]string, 0, len(rc.pending))
	for name := range rc.pending {
		names = append(names, name)
	}
	rc.pending = make(map[string]struct{})
	rc.mutex.Unlock()

	for _, name := range names {
		if _, cached := rc.resources[name]; !cached {
			continue
		}
		if err := rc.ReloadResource(name); err != nil && !errors.Is(err, core.ErrResourceNotFound) {
			core.LogError("failed to reload '%s': %s", name, err)
		}
	}
}

func (rc *ResourceCache) Shutdown() error {
	var err error
	if rc.watcher != nil {
		err = rc.watcher.Close()
		rc.watcher = nil
	}
	for name := range rc.resources {
		rc.Release(name)
	}
	return err
}

func sanitizeName(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}
