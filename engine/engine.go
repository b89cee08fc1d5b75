package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spaghettifunk/affine/engine/assets"
	"github.com/spaghettifunk/affine/engine/core"
	"github.com/spaghettifunk/affine/engine/renderer"
	"github.com/spaghettifunk/affine/engine/scene"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

func (s Stage) String() string {
	switch s {
	case EngineStageUninitialized:
		return "uninitialized"
	case EngineStageInitializing:
		return "initializing"
	case EngineStageInitialized:
		return "initialized"
	case EngineStageRunning:
		return "running"
	case EngineStageShuttingDown:
		return "shutting down"
	}
	return "unknown"
}

type Engine struct {
	currentStage Stage
	gameInstance *Game
	config       *ApplicationConfig
	isRunning    atomic.Bool
	isSuspended  bool
	renderer     *renderer.Renderer
	assetManager *assets.AssetManager
	scene        *scene.Scene
	clock        *core.Clock
	metrics      *core.FrameMetrics
	lastTime     float64
	frameNumber  uint64
	width        uint32
	height       uint32

	// resize requests may come from any goroutine; they are applied
	// between frames
	pendingMu     sync.Mutex
	pendingResize *[2]uint32
}

// New creates an engine running g and drawing through backend. A nil
// backend draws nothing.
func New(g *Game, backend renderer.RendererBackend) (*Engine, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil game", ErrInvalidConfig)
	}
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = DefaultApplicationConfig()
	}
	if err := g.ApplicationConfig.Validate(); err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	e := &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		config:       g.ApplicationConfig,
		renderer:     renderer.New(backend),
		clock:        core.NewClock(),
		metrics:      core.NewFrameMetrics(),
	}

	if e.config.ScenePath != "" {
		am, err := assets.NewAssetManager()
		if err != nil {
			core.LogError(err.Error())
			return nil, err
		}
		am.RegisterLoader(assets.AssetTypeScene, assets.LoaderFunc(func(path string) (interface{}, error) {
			return scene.Load(path)
		}))
		e.assetManager = am
	}
	return e, nil
}

func (e *Engine) Initialize() (err error) {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("%w: initialize while %s", ErrInvalidStage, e.currentStage)
	}
	e.currentStage = EngineStageInitializing
	core.SetLogLevel(e.config.LogLevel)

	// initialize events
	if !core.EventInitialize() {
		return ErrEventSystem
	}

	defer func() {
		if err != nil {
			_ = core.EventShutdown()
			e.currentStage = EngineStageUninitialized
		}
	}()

	// register some events
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	core.EventRegister(core.EVENT_CODE_RESIZED, e, e.onResized)

	sceneConfig, err := e.loadSceneConfig()
	if err != nil {
		return err
	}
	e.scene = scene.New(sceneConfig)

	if e.gameInstance.FnInitialize != nil {
		if err = e.gameInstance.FnInitialize(e.scene); err != nil {
			core.LogError("game failed to initialize: %s", err)
			return err
		}
	}

	e.width, e.height = e.scene.Camera.Width, e.scene.Camera.Height
	if err := e.renderer.Initialize(e.config.Name, e.width, e.height); err != nil {
		core.LogError(err.Error())
		return err
	}

	if e.config.Watch {
		if err := e.assetManager.Watch(e.config.ScenePath); err != nil {
			core.LogError(err.Error())
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	core.LogInfo("engine initialized: scene %q with %d actors", e.scene.Name, len(e.scene.Actors))
	return nil
}

func (e *Engine) loadSceneConfig() (*scene.Config, error) {
	if e.assetManager == nil {
		cfg := &scene.Config{}
		cfg.SetDefaults()
		return cfg, nil
	}
	if _, err := e.assetManager.Track(e.config.ScenePath); err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	v, err := e.assetManager.LoadAsset(e.config.ScenePath)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	cfg, ok := v.(*scene.Config)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedAsset, v)
	}
	return cfg, nil
}

// Run drives the frame loop until ctx is cancelled, the configured number
// of frames has been drawn or EVENT_CODE_APPLICATION_QUIT is fired.
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("%w: run while %s", ErrInvalidStage, e.currentStage)
	}
	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)
	defer func() {
		e.isRunning.Store(false)
		if e.currentStage == EngineStageRunning {
			e.currentStage = EngineStageInitialized
		}
	}()

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	var targetFrameSeconds float64
	if e.config.TargetFPS > 0 {
		targetFrameSeconds = 1.0 / e.config.TargetFPS
	}
	frameClock := core.NewClock()

	for e.isRunning.Load() {
		if ctx.Err() != nil {
			core.LogInfo("run context done, stopping after %d frames", e.frameNumber)
			break
		}

		e.processPending()

		if e.isSuspended {
			if !sleepCtx(ctx, 100*time.Millisecond) {
				break
			}
			continue
		}

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		if e.config.FixedStep > 0 {
			delta = e.config.FixedStep
		}
		frameClock.Start()

		if err := e.frame(delta); err != nil {
			return err
		}

		frameClock.Update()
		frameElapsedTime := frameClock.Elapsed()
		e.metrics.Update(frameElapsedTime)
		e.frameNumber++
		e.lastTime = currentTime

		if e.frameNumber%600 == 0 {
			core.LogDebug("frame %d: %.3fms avg, %.0f fps", e.frameNumber, e.metrics.FrameTime(), e.metrics.FPS())
		}

		if e.config.Frames > 0 && e.frameNumber >= e.config.Frames {
			break
		}

		if remainingSeconds := targetFrameSeconds - frameElapsedTime; remainingSeconds > 0 {
			if !sleepCtx(ctx, time.Duration(remainingSeconds*float64(time.Second))) {
				break
			}
		}
	}

	return nil
}

func (e *Engine) frame(delta float64) error {
	if e.gameInstance.FnUpdate != nil {
		if err := e.gameInstance.FnUpdate(delta); err != nil {
			core.LogError("game update failed, shutting down: %s", err)
			return err
		}
	}

	e.scene.Update(delta)
	packet := e.scene.BuildPacket(e.frameNumber, delta)

	if e.gameInstance.FnRender != nil {
		if err := e.gameInstance.FnRender(packet, delta); err != nil {
			core.LogError("game render failed, shutting down: %s", err)
			return err
		}
	}

	return e.renderer.DrawFrame(packet)
}

// processPending applies resizes and scene reloads that arrived since
// the last frame.
func (e *Engine) processPending() {
	e.pendingMu.Lock()
	size := e.pendingResize
	e.pendingResize = nil
	e.pendingMu.Unlock()
	if size != nil {
		e.resize(size[0], size[1])
	}

	if e.assetManager == nil {
		return
	}
	select {
	case path := <-e.assetManager.Changes():
		e.reloadScene(path)
	case err := <-e.assetManager.Errors():
		core.LogWarn("scene watcher: %s", err)
	default:
	}
}

func (e *Engine) reloadScene(path string) {
	v, err := e.assetManager.LoadAsset(path)
	if err != nil {
		// keep the current scene until the file is fixed
		core.LogError("scene reload failed: %s", err)
		return
	}
	cfg, ok := v.(*scene.Config)
	if !ok {
		core.LogError("scene reload: %s: %T", ErrUnexpectedAsset, v)
		return
	}
	e.scene.Apply(cfg)
	// the viewport belongs to the engine, not to the file
	e.scene.Camera.Resize(e.width, e.height)
	core.LogInfo("scene %s reloaded", path)
	core.EventFire(core.EVENT_CODE_SCENE_RELOADED, e, core.EventContext{Data: path})
}

func (e *Engine) resize(width, height uint32) {
	// Check if different. If so, trigger a resize event.
	if width == e.width && height == e.height {
		return
	}
	e.width = width
	e.height = height
	core.LogDebug("viewport resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("viewport minimized, suspending application.")
		e.isSuspended = true
		return
	}
	if e.isSuspended {
		core.LogInfo("viewport restored, resuming application.")
		e.isSuspended = false
	}
	e.scene.Camera.Resize(width, height)
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError(err.Error())
		}
	}
	if err := e.renderer.OnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.isRunning.Store(false)

	core.EventUnregister(core.EVENT_CODE_APPLICATION_QUIT, e)
	core.EventUnregister(core.EVENT_CODE_RESIZED, e)
	if err := core.EventShutdown(); err != nil {
		return err
	}
	if e.assetManager != nil {
		if err := e.assetManager.Close(); err != nil {
			return err
		}
	}
	if err := e.renderer.Shutdown(); err != nil {
		return err
	}
	core.LogInfo("engine shut down after %d frames", e.frameNumber)
	return nil
}

// Scene returns the live scene. Only touch it from game hooks while running.
func (e *Engine) Scene() *scene.Scene {
	return e.scene
}

func (e *Engine) Metrics() *core.FrameMetrics {
	return e.metrics
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

// GetFramebufferSize returns the width and height (in this order)
// of the viewport
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(code core.SystemEventCode, sender interface{}, listenerInst interface{}, data core.EventContext) bool {
	switch code {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning.Store(false)
		return true
	}
	return false
}

func (e *Engine) onResized(code core.SystemEventCode, sender interface{}, listenerInst interface{}, data core.EventContext) bool {
	size, ok := data.Data.([2]uint32)
	if !ok {
		core.LogError("wrong data associated with the event code `%d`", code)
		return false
	}
	e.pendingMu.Lock()
	e.pendingResize = &size
	e.pendingMu.Unlock()
	// other listeners may want to know about the resize too
	return false
}

// sleepCtx waits for d and reports false if ctx ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
