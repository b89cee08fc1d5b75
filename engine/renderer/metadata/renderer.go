package metadata

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/affine/engine/core"
)

/**
 * @brief Everything a backend needs to draw one frame. Matrices are
 * flat row-major arrays of 16 floats, the layout a "set uniform matrix"
 * call expects.
 */
type RenderPacket struct {
	FrameNumber uint64
	DeltaTime   float64
	/** @brief The camera view-projection matrix. */
	ViewProjection [16]float32
	/** @brief One entry per visible object, in scene order. */
	Objects []ObjectPacket
}

type ObjectPacket struct {
	ID   core.Identifier
	Name string
	/** @brief The final model-view-projection matrix of the object. */
	Transform [16]float32
}

type RendererType uint8

const (
	// Writes every frame as text. Used headless and in tests.
	RendererTypeText RendererType = iota
	// Accepts frames and drops them.
	RendererTypeNull
)

func (t RendererType) String() string {
	switch t {
	case RendererTypeText:
		return "text"
	case RendererTypeNull:
		return "null"
	default:
		return "unknown"
	}
}

// UnmarshalText lets the renderer be picked by name in a config file.
func (t *RendererType) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "text":
		*t = RendererTypeText
	case "null", "none":
		*t = RendererTypeNull
	default:
		return fmt.Errorf("unknown renderer %q", text)
	}
	return nil
}
