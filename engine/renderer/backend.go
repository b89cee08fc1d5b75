package renderer

import (
	"fmt"
	"io"

	"github.com/spaghettifunk/affine/engine/renderer/metadata"
	"github.com/spaghettifunk/affine/engine/renderer/text"
)

// RendererBackend is the boundary to whatever actually draws. It only ever
// receives finished matrices.
type RendererBackend interface {
	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error
	Resized(width, height uint32) error
	BeginFrame(deltaTime float64) error
	DrawFrame(packet *metadata.RenderPacket) error
	EndFrame(deltaTime float64) error
}

// NullBackend accepts every frame and draws nothing.
type NullBackend struct{}

func (NullBackend) Initialize(string, uint32, uint32) error { return nil }
func (NullBackend) Shutdown() error { return nil }
func (NullBackend) Resized(uint32, uint32) error { return nil }
func (NullBackend) BeginFrame(float64) error { return nil }
func (NullBackend) DrawFrame(*metadata.RenderPacket) error { return nil }
func (NullBackend) EndFrame(float64) error { return nil }

// NewBackend returns the backend of the given type. Text output goes to w.
func NewBackend(rendererType metadata.RendererType, w io.Writer) (RendererBackend, error) {
	switch rendererType {
	case metadata.RendererTypeText:
		return text.New(w), nil
	case metadata.RendererTypeNull:
		return NullBackend{}, nil
	}
	return nil, fmt.Errorf("unsupported renderer type %d", rendererType)
}
