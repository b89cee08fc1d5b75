package renderer

import (
	"fmt"

	"github.com/spaghettifunk/affine/engine/core"
	"github.com/spaghettifunk/affine/engine/renderer/metadata"
)

// Renderer is the frontend the engine talks to. It drives one backend
// through the begin/draw/end frame cycle.
type Renderer struct {
	backend     RendererBackend
	initialized bool
}

func New(backend RendererBackend) *Renderer {
	if backend == nil {
		backend = NullBackend{}
	}
	return &Renderer{backend: backend}
}

func (r *Renderer) Initialize(appName string, appWidth, appHeight uint32) error {
	if err := r.backend.Initialize(appName, appWidth, appHeight); err != nil {
		return fmt.Errorf("renderer backend initialize: %w", err)
	}
	r.initialized = true
	return nil
}

func (r *Renderer) Shutdown() error {
	if !r.initialized {
		return nil
	}
	r.initialized = false
	return r.backend.Shutdown()
}

func (r *Renderer) OnResize(width, height uint32) error {
	return r.backend.Resized(width, height)
}

func (r *Renderer) DrawFrame(renderPacket *metadata.RenderPacket) error {
	if err := r.backend.BeginFrame(renderPacket.DeltaTime); err != nil {
		core.LogError(err.Error())
		return err
	}
	if err := r.backend.DrawFrame(renderPacket); err != nil {
		core.LogError("failed to draw frame %d: %s", renderPacket.FrameNumber, err)
		return err
	}
	if err := r.backend.EndFrame(renderPacket.DeltaTime); err != nil {
		core.LogError("RendererEndFrame failed. Application shutting down...")
		return err
	}
	return nil
}
