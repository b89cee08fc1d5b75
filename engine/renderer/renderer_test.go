package renderer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/affine/engine/renderer/metadata"
	"github.com/spaghettifunk/affine/engine/renderer/text"
)

type recordingBackend struct {
	NullBackend
	calls   []string
	drawErr error
}

func (b *recordingBackend) BeginFrame(float64) error {
	b.calls = append(b.calls, "begin")
	return nil
}

func (b *recordingBackend) DrawFrame(*metadata.RenderPacket) error {
	b.calls = append(b.calls, "draw")
	return b.drawErr
}

func (b *recordingBackend) EndFrame(float64) error {
	b.calls = append(b.calls, "end")
	return nil
}

func (b *recordingBackend) Shutdown() error {
	b.calls = append(b.calls, "shutdown")
	return nil
}

func TestDrawFrameOrder(t *testing.T) {
	b := &recordingBackend{}
	r := New(b)
	require.NoError(t, r.Initialize("test", 1, 1))
	require.NoError(t, r.DrawFrame(&metadata.RenderPacket{}))
	assert.Equal(t, []string{"begin", "draw", "end"}, b.calls)
}

func TestDrawFrameStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	b := &recordingBackend{drawErr: boom}
	r := New(b)
	assert.ErrorIs(t, r.DrawFrame(&metadata.RenderPacket{}), boom)
	assert.Equal(t, []string{"begin", "draw"}, b.calls)
}

func TestShutdownOnlyWhenInitialized(t *testing.T) {
	b := &recordingBackend{}
	r := New(b)
	require.NoError(t, r.Shutdown())
	assert.Empty(t, b.calls)

	require.NoError(t, r.Initialize("test", 1, 1))
	require.NoError(t, r.Shutdown())
	assert.Equal(t, []string{"shutdown"}, b.calls)
}

func TestNilBackendFallsBackToNull(t *testing.T) {
	r := New(nil)
	require.NoError(t, r.Initialize("test", 1, 1))
	require.NoError(t, r.DrawFrame(&metadata.RenderPacket{}))
}

func TestNewBackend(t *testing.T) {
	var rt metadata.RendererType
	require.NoError(t, rt.UnmarshalText([]byte("TEXT")))
	b, err := NewBackend(rt, &bytes.Buffer{})
	require.NoError(t, err)
	assert.IsType(t, &text.Backend{}, b)

	require.NoError(t, rt.UnmarshalText([]byte("null")))
	b, err = NewBackend(rt, nil)
	require.NoError(t, err)
	assert.Equal(t, NullBackend{}, b)
	assert.Equal(t, "null", rt.String())

	assert.Error(t, rt.UnmarshalText([]byte("vulkan")))
	_, err = NewBackend(metadata.RendererType(42), nil)
	assert.Error(t, err)
}
