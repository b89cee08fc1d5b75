package engine

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/affine/engine/core"
	"github.com/spaghettifunk/affine/engine/math"
	"github.com/spaghettifunk/affine/engine/renderer/metadata"
	"github.com/spaghettifunk/affine/engine/renderer/text"
	"github.com/spaghettifunk/affine/engine/scene"
)

const testScene = `
name = "test"

[camera]
eye = [0, 12, 12]
target = [0, 5, 0]

[[actors]]
name = "statue"
spin = [0, 90, 0]
`

func writeScene(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func newTestEngine(t *testing.T, g *Game) *Engine {
	t.Helper()
	e, err := New(g, nil)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	t.Cleanup(func() { require.NoError(t, e.Shutdown()) })
	return e
}

func TestRunFixedStepFrames(t *testing.T) {
	var packets []*metadata.RenderPacket
	g := &Game{
		ApplicationConfig: &ApplicationConfig{
			Name:      "test",
			ScenePath: writeScene(t, testScene),
			Frames:    4,
			FixedStep: 0.5,
		},
		FnRender: func(p *metadata.RenderPacket, delta float64) error {
			packets = append(packets, p)
			return nil
		},
	}
	e := newTestEngine(t, g)
	require.NoError(t, e.Run(context.Background()))

	require.Len(t, packets, 4)
	for i, p := range packets {
		assert.Equal(t, uint64(i), p.FrameNumber)
		assert.Equal(t, 0.5, p.DeltaTime)
		require.Len(t, p.Objects, 1)
		assert.Equal(t, "statue", p.Objects[0].Name)
	}

	// 4 frames of 0.5s at 90 deg/s
	statue, ok := e.Scene().Actor("statue")
	require.True(t, ok)
	assert.InDelta(t, 180, statue.Transform.Rotation.Y, 1e-3)

	expected := math.AffineTransform(statue.Transform.Position, math.NewVec3(0, 180, 0), statue.Transform.Scale, e.Scene().Camera.ViewProjection())
	assert.True(t, expected.Compare(math.Mat4{Data: packets[3].Objects[0].Transform}, 1e-4))
	assert.Equal(t, uint64(4), e.Metrics().Frames())
	assert.Equal(t, EngineStageInitialized, e.Stage())
}

func TestRunWritesTextFrames(t *testing.T) {
	var buf bytes.Buffer
	g := &Game{ApplicationConfig: &ApplicationConfig{
		Name:      "text",
		ScenePath: writeScene(t, testScene),
		Frames:    2,
		FixedStep: 1.0 / 60,
	}}
	e, err := New(g, text.New(&buf))
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	require.NoError(t, e.Run(context.Background()))
	require.NoError(t, e.Shutdown())

	out := buf.String()
	assert.Contains(t, out, "# text 1280x720")
	assert.Equal(t, 2, strings.Count(out, "object statue"))
	assert.Contains(t, out, "# 2 frames")
}

func TestRunStopsOnCancel(t *testing.T) {
	g := &Game{ApplicationConfig: &ApplicationConfig{TargetFPS: 200}}
	e := newTestEngine(t, g)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, e.Run(ctx))
	assert.Greater(t, e.Metrics().Frames(), uint64(0))
}

func TestQuitEventStopsRun(t *testing.T) {
	g := &Game{ApplicationConfig: &ApplicationConfig{FixedStep: 0.01}}
	g.FnUpdate = func(delta float64) error {
		core.EventFire(core.EVENT_CODE_APPLICATION_QUIT, nil, core.EventContext{})
		return nil
	}
	e := newTestEngine(t, g)

	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, uint64(1), e.Metrics().Frames())
}

func TestGameErrorsStopRun(t *testing.T) {
	boom := errors.New("boom")
	g := &Game{ApplicationConfig: &ApplicationConfig{FixedStep: 0.01}}
	g.FnUpdate = func(float64) error { return boom }
	e := newTestEngine(t, g)
	assert.ErrorIs(t, e.Run(context.Background()), boom)
}

func TestResizeEvent(t *testing.T) {
	var resized [2]uint32
	g := &Game{ApplicationConfig: &ApplicationConfig{Frames: 2, FixedStep: 0.01}}
	g.FnOnResize = func(w, h uint32) error {
		resized = [2]uint32{w, h}
		return nil
	}
	g.FnUpdate = func(float64) error {
		core.EventFire(core.EVENT_CODE_RESIZED, nil, core.EventContext{Data: [2]uint32{800, 600}})
		return nil
	}
	e := newTestEngine(t, g)
	require.NoError(t, e.Run(context.Background()))

	assert.Equal(t, [2]uint32{800, 600}, resized)
	w, h := e.GetFramebufferSize()
	assert.Equal(t, uint32(800), w)
	assert.Equal(t, uint32(600), h)
	assert.Equal(t, uint32(800), e.Scene().Camera.Width)
}

func TestInitializeHookSeesScene(t *testing.T) {
	g := &Game{ApplicationConfig: &ApplicationConfig{Frames: 1}}
	g.FnInitialize = func(s *scene.Scene) error {
		assert.Empty(t, s.Actors)
		return errors.New("no")
	}
	e, err := New(g, nil)
	require.NoError(t, err)
	assert.Error(t, e.Initialize())

	// a failed initialize releases the event system
	assert.True(t, core.EventInitialize())
	require.NoError(t, core.EventShutdown())
}

func TestRunRequiresInitialize(t *testing.T) {
	e, err := New(&Game{}, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, e.Run(context.Background()), ErrInvalidStage)
}

func TestHotReload(t *testing.T) {
	path := writeScene(t, testScene)
	reloaded := make(chan string, 1)

	g := &Game{ApplicationConfig: &ApplicationConfig{
		ScenePath: path,
		Watch:     true,
		TargetFPS: 200,
	}}
	e := newTestEngine(t, g)
	statue, _ := e.Scene().Actor("statue")
	id := statue.ID

	require.True(t, core.EventRegister(core.EVENT_CODE_SCENE_RELOADED, t, func(code core.SystemEventCode, sender, inst interface{}, data core.EventContext) bool {
		select {
		case reloaded <- data.Data.(string):
		default:
		}
		return true
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	// replace the file in one step so the watcher never sees it half written
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(testScene+"\n[[actors]]\nname = \"lamp\"\n"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case got := <-reloaded:
		abs, err := filepath.Abs(path)
		require.NoError(t, err)
		assert.Equal(t, abs, got)
	case <-ctx.Done():
		t.Fatal("scene was not reloaded")
	}
	cancel()
	require.NoError(t, <-done)

	assert.Len(t, e.Scene().Actors, 2)
	statue, _ = e.Scene().Actor("statue")
	assert.Equal(t, id, statue.ID)
}

func TestLoadApplicationConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
name = "demo"
log_level = "debug"
frames = 10
fixed_step = 0.016
renderer = "null"
`), 0o644))

	cfg, err := LoadApplicationConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Name)
	assert.Equal(t, core.DebugLevel, cfg.LogLevel)
	assert.Equal(t, uint64(10), cfg.Frames)
	assert.Equal(t, 0.016, cfg.FixedStep)
	assert.Equal(t, metadata.RendererTypeNull, cfg.Renderer)
	assert.Equal(t, float64(60), cfg.TargetFPS, "default kept")

	require.NoError(t, os.WriteFile(path, []byte("watch = true\n"), 0o644))
	_, err = LoadApplicationConfig(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	require.NoError(t, os.WriteFile(path, []byte("log_level = \"loud\"\n"), 0o644))
	_, err = LoadApplicationConfig(path)
	assert.Error(t, err)
}
