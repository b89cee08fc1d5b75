package testbed

import (
	"github.com/spaghettifunk/affine/engine"
	"github.com/spaghettifunk/affine/engine/components"
	"github.com/spaghettifunk/affine/engine/core"
	"github.com/spaghettifunk/affine/engine/math"
	"github.com/spaghettifunk/affine/engine/renderer/metadata"
	"github.com/spaghettifunk/affine/engine/scene"
)

const (
	// degrees per second
	statueSpin float32 = 30.0
	// seconds between two status lines
	reportInterval float64 = 5.0
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	Scene       *scene.Scene
	ElapsedTime float64
	sinceReport float64
	width       uint32
	height      uint32
}

func NewTestGame(config *engine.ApplicationConfig) *TestGame {
	if config == nil {
		config = engine.DefaultApplicationConfig()
		config.Name = "Affine Testbed"
	}
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize

	return tg
}

// DemoSceneConfig is the scene used when no scene file is given: a
// statue at the origin seen from above and in front.
func DemoSceneConfig() *scene.Config {
	cfg := &scene.Config{
		Name: "demo",
		Camera: scene.CameraConfig{
			Eye:    []float32{0, 12, 12},
			Target: []float32{0, 5, 0},
			Fov:    components.DEFAULT_CAMERA_FOV,
			Width:  components.DEFAULT_CAMERA_WIDTH,
			Height: components.DEFAULT_CAMERA_HEIGHT,
			Near:   components.DEFAULT_CAMERA_NEAR,
			Far:    components.DEFAULT_CAMERA_FAR,
		},
		Actors: []scene.ActorConfig{
			{Name: "statue", Spin: []float32{0, statueSpin, 0}},
		},
	}
	cfg.SetDefaults()
	return cfg
}

func (g *TestGame) Initialize(s *scene.Scene) error {
	core.LogInfo("initializing testbed...")
	state := g.State.(*gameState)
	state.Scene = s

	if len(s.Actors) == 0 {
		core.LogInfo("no actors in the scene, loading the demo scene")
		s.Apply(DemoSceneConfig())
	}
	state.width, state.height = s.Camera.Width, s.Camera.Height

	core.EventRegister(core.EVENT_CODE_SCENE_RELOADED, g, g.onSceneReloaded)
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)
	state.ElapsedTime += deltaTime
	state.sinceReport += deltaTime
	return nil
}

func (g *TestGame) Render(packet *metadata.RenderPacket, deltaTime float64) error {
	state := g.State.(*gameState)
	if state.sinceReport < reportInterval {
		return nil
	}
	state.sinceReport = 0

	for _, obj := range packet.Objects {
		m := math.Mat4{Data: obj.Transform}
		clip := m.MulVec3(math.NewVec3Zero())
		core.LogDebug("frame %d: %s origin in clip space [%.3f, %.3f, %.3f, %.3f]",
			packet.FrameNumber, obj.Name, clip.X, clip.Y, clip.Z, clip.W)
	}
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.State.(*gameState)
	state.width, state.height = width, height
	core.LogInfo("testbed viewport now %dx%d", width, height)
	return nil
}

func (g *TestGame) onSceneReloaded(code core.SystemEventCode, sender interface{}, listenerInst interface{}, data core.EventContext) bool {
	state := g.State.(*gameState)
	core.LogInfo("scene %v reloaded, %d actors", data.Data, len(state.Scene.Actors))
	// let other listeners see it too
	return false
}
