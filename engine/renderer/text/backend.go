package text

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spaghettifunk/affine/engine/renderer/metadata"
)

// Backend prints every frame it receives: the view-projection matrix and
// the final transform of every object, one matrix row per line.
type Backend struct {
	out    *bufio.Writer
	width  uint32
	height uint32
	frames uint64
}

func New(w io.Writer) *Backend {
	return &Backend{out: bufio.NewWriter(w)}
}

func (b *Backend) Initialize(appName string, appWidth, appHeight uint32) error {
	b.width, b.height = appWidth, appHeight
	_, err := fmt.Fprintf(b.out, "# %s %dx%d\n", appName, appWidth, appHeight)
	return err
}

func (b *Backend) Shutdown() error {
	if _, err := fmt.Fprintf(b.out, "# %d frames\n", b.frames); err != nil {
		return err
	}
	return b.out.Flush()
}

func (b *Backend) Resized(width, height uint32) error {
	b.width, b.height = width, height
	_, err := fmt.Fprintf(b.out, "# resized %dx%d\n", width, height)
	return err
}

func (b *Backend) BeginFrame(deltaTime float64) error {
	return nil
}

func (b *Backend) DrawFrame(packet *metadata.RenderPacket) error {
	fmt.Fprintf(b.out, "frame %d dt=%.6f objects=%d\n", packet.FrameNumber, packet.DeltaTime, len(packet.Objects))
	writeMatrix(b.out, "view_projection", packet.ViewProjection)
	for _, obj := range packet.Objects {
		writeMatrix(b.out, fmt.Sprintf("object %s %s", obj.Name, obj.ID), obj.Transform)
	}
	b.frames++
	return nil
}

// EndFrame flushes the frame so a reader of the output never sees half of it.
func (b *Backend) EndFrame(deltaTime float64) error {
	return b.out.Flush()
}

// Frames returns how many frames were drawn.
func (b *Backend) Frames() uint64 {
	return b.frames
}

func writeMatrix(w io.Writer, label string, m [16]float32) {
	fmt.Fprintf(w, "  %s\n", label)
	for r := 0; r < 4; r++ {
		fmt.Fprintf(w, "    % 12.5f % 12.5f % 12.5f % 12.5f\n", m[r*4], m[r*4+1], m[r*4+2], m[r*4+3])
	}
}
