package testbed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/affine/engine"
	"github.com/spaghettifunk/affine/engine/math"
	"github.com/spaghettifunk/affine/engine/renderer/metadata"
	"github.com/spaghettifunk/affine/engine/scene"
)

func TestDemoSceneIsValid(t *testing.T) {
	cfg := DemoSceneConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []float32{1, 1, 1}, cfg.Actors[0].Scale)
}

func TestDemoSceneFrames(t *testing.T) {
	cfg := engine.DefaultApplicationConfig()
	cfg.Frames = 3
	cfg.FixedStep = 1
	cfg.TargetFPS = 0

	var last *metadata.RenderPacket
	tg := NewTestGame(cfg)
	render := tg.FnRender
	tg.FnRender = func(p *metadata.RenderPacket, delta float64) error {
		last = p
		return render(p, delta)
	}

	e, err := engine.New(tg.Game, nil)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	defer func() { require.NoError(t, e.Shutdown()) }()
	require.NoError(t, e.Run(context.Background()))

	state := tg.State.(*gameState)
	assert.Equal(t, 3.0, state.ElapsedTime)

	statue, ok := e.Scene().Actor("statue")
	require.True(t, ok)
	assert.InDelta(t, 3*statueSpin, statue.Transform.Rotation.Y, 1e-4)

	// The statue stands at the origin, which is below the point the camera
	// looks at: it projects onto the lower half of the screen.
	require.NotNil(t, last)
	require.Len(t, last.Objects, 1)
	m := math.Mat4{Data: last.Objects[0].Transform}
	clip := m.MulVec3(math.NewVec3Zero())
	assert.InDelta(t, 0, clip.X/clip.W, 1e-4)
	assert.Less(t, clip.Y/clip.W, float32(0))
}

func TestExistingSceneIsKept(t *testing.T) {
	tg := NewTestGame(nil)
	s := scene.New(DemoSceneConfig())
	s.Actors[0].Name = "bust"
	require.NoError(t, tg.Initialize(s))
	_, ok := s.Actor("bust")
	assert.True(t, ok)
}

func TestShippedScenesAgree(t *testing.T) {
	fromTOML, err := scene.Load("scene.toml")
	require.NoError(t, err)
	fromYAML, err := scene.Load("scene.yaml")
	require.NoError(t, err)
	assert.Equal(t, fromTOML, fromYAML)
	assert.Len(t, fromTOML.Actors, 2)
}

func TestShippedAppConfig(t *testing.T) {
	cfg, err := engine.LoadApplicationConfig("app.toml")
	require.NoError(t, err)
	assert.True(t, cfg.Watch)
	assert.Equal(t, "testbed/scene.toml", cfg.ScenePath)
}
