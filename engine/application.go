package engine

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/affine/engine/core"
	"github.com/spaghettifunk/affine/engine/renderer/metadata"
)

type ApplicationConfig struct {
	// The application name, reported to the renderer backend.
	Name     string        `toml:"name"`
	LogLevel core.LogLevel `toml:"log_level"`
	// Scene file to load. Empty means the game builds its scene itself.
	ScenePath string `toml:"scene"`
	// Number of frames to run. 0 runs until the context is cancelled.
	Frames uint64 `toml:"frames"`
	// Frame rate cap. 0 runs unthrottled.
	TargetFPS float64 `toml:"target_fps"`
	// Fixed delta time in seconds handed to every update. 0 uses the
	// measured time between frames.
	FixedStep float64 `toml:"fixed_step"`
	// Reload the scene file when it changes on disk.
	Watch    bool                  `toml:"watch"`
	Renderer metadata.RendererType `toml:"renderer"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:      "Affine",
		LogLevel:  core.InfoLevel,
		TargetFPS: 60,
		Renderer:  metadata.RendererTypeText,
	}
}

// LoadApplicationConfig reads a TOML application config. Keys missing from
// the file keep their default value.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := DefaultApplicationConfig()
	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(cfg); err != nil {
		return nil, fmt.Errorf("application config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("application config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.TargetFPS < 0 {
		return fmt.Errorf("%w: target_fps %v", ErrInvalidConfig, c.TargetFPS)
	}
	if c.FixedStep < 0 {
		return fmt.Errorf("%w: fixed_step %v", ErrInvalidConfig, c.FixedStep)
	}
	if c.Watch && c.ScenePath == "" {
		return fmt.Errorf("%w: watch needs a scene file", ErrInvalidConfig)
	}
	return nil
}
