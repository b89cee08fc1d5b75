package engine

import (
	"github.com/spaghettifunk/affine/engine/renderer/metadata"
	"github.com/spaghettifunk/affine/engine/scene"
)

// Game is what the engine runs. Every hook is optional.
type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
}

// Initialize receives the scene once it has been loaded, before the first frame.
type Initialize func(s *scene.Scene) error
type Update func(deltaTime float64) error

// Render sees every packet before it is handed to the renderer backend.
type Render func(packet *metadata.RenderPacket, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
