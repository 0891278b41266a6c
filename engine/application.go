package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/anima-ssao/engine/core"
	"github.com/spaghettifunk/anima-ssao/engine/renderer"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"height"`
	// The application name used in windowing, if applicable.
	Name string `toml:"name"`
	// Run without a window; frames are driven by RunFrame or a fixed step.
	Headless bool   `toml:"headless"`
	LogLevel string `toml:"log_level"`
	// Directories searched for resources, in order.
	ResourceDirs      []string `toml:"resource_dirs"`
	AutoReload        bool     `toml:"auto_reload"`
	DefaultRenderPath string   `toml:"default_render_path"`
	// Frame cap; zero runs unthrottled.
	TargetFPS float64 `toml:"target_fps"`
	// Worker goroutines for background resource loading.
	JobWorkers int `toml:"job_workers"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:         100,
		StartPosY:         100,
		StartWidth:        1280,
		StartHeight:       720,
		Name:              "Anima",
		LogLevel:          "info",
		ResourceDirs:      []string{"assets"},
		DefaultRenderPath: renderer.DEFAULT_RENDER_PATH,
		TargetFPS:         60,
		JobWorkers:        4,
	}
}

/**
 * @brief Reads the application configuration from a TOML file. Keys missing
 * from the file keep their defaults; a missing file yields the defaults.
 */
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		core.LogWarn("config file '%s' not found, using defaults", path)
		return config, nil
	}
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, config); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("config '%s' %d:%d: %w", path, row, col, err)
		}
		return nil, fmt.Errorf("config '%s': %w", path, err)
	}
	if _, err := core.ParseLogLevel(config.LogLevel); err != nil {
		return nil, fmt.Errorf("config '%s': %w", path, err)
	}
	if config.JobWorkers < 1 {
		return nil, fmt.Errorf("config '%s': job_workers must be at least 1", path)
	}
	return config, nil
}
