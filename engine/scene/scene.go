package scene

import (
	"github.com/spaghettifunk/affine/engine/components"
	"github.com/spaghettifunk/affine/engine/core"
	"github.com/spaghettifunk/affine/engine/math"
	"github.com/spaghettifunk/affine/engine/renderer/metadata"
)

// Scene is the live state built from a Config: one camera and the actors
// it looks at. It is not safe for concurrent use.
type Scene struct {
	Name   string
	Camera *components.Camera
	Actors []*components.Actor
}

// New builds a scene from a validated config. See Apply.
func New(cfg *Config) *Scene {
	s := &Scene{Camera: components.NewCamera()}
	s.Apply(cfg)
	return s
}

// Apply replaces camera and actors with the ones described by cfg. Actors
// whose name is still present keep their identifier, unless the file pins
// a different one.
//
// Omitted values in cfg are filled in with SetDefaults before use. cfg is
// otherwise expected to have passed Validate: configs from Load and Decode
// always have.
func (s *Scene) Apply(cfg *Config) {
	cfg.SetDefaults()
	s.Name = cfg.Name
	applyCamera(s.Camera, cfg.Camera)

	previous := make(map[string]core.Identifier, len(s.Actors))
	for _, a := range s.Actors {
		previous[a.Name] = a.ID
	}

	actors := make([]*components.Actor, 0, len(cfg.Actors))
	for _, ac := range cfg.Actors {
		position, _ := toVec3(ac.Position)
		rotation, _ := toVec3(ac.Rotation)
		scale, _ := toVec3(ac.Scale)
		spin, _ := toVec3(ac.Spin)

		actor := components.NewActor(ac.Name, math.TransformFromPositionRotationScale(position, rotation, scale))
		actor.Spin = spin
		if id, ok := previous[ac.Name]; ok {
			actor.ID = id
		}
		if ac.ID != "" {
			if id, err := core.ParseIdentifier(ac.ID); err == nil {
				actor.ID = id
			}
		}
		actors = append(actors, actor)
	}
	s.Actors = actors
}

func applyCamera(c *components.Camera, cc CameraConfig) {
	eye, _ := toVec3(cc.Eye)
	target, _ := toVec3(cc.Target)
	up, _ := toVec3(cc.Up)

	c.MoveTo(eye)
	c.LookAt(target)
	c.SetUp(up)
	c.SetLens(cc.Fov, cc.Near, cc.Far)
	c.Resize(cc.Width, cc.Height)
}

// Actor looks an actor up by name.
func (s *Scene) Actor(name string) (*components.Actor, bool) {
	for _, a := range s.Actors {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// Update advances every actor by deltaTime seconds.
func (s *Scene) Update(deltaTime float64) {
	for _, a := range s.Actors {
		a.Update(deltaTime)
	}
}

// BuildPacket composes the final transform of every actor for one frame.
func (s *Scene) BuildPacket(frameNumber uint64, deltaTime float64) *metadata.RenderPacket {
	viewProj := s.Camera.ViewProjection()
	packet := &metadata.RenderPacket{
		FrameNumber:    frameNumber,
		DeltaTime:      deltaTime,
		ViewProjection: viewProj.Array(),
		Objects:        make([]metadata.ObjectPacket, 0, len(s.Actors)),
	}
	for _, a := range s.Actors {
		packet.Objects = append(packet.Objects, metadata.ObjectPacket{
			ID:        a.ID,
			Name:      a.Name,
			Transform: a.AffineTransform(viewProj).Array(),
		})
	}
	return packet
}

// Config snapshots the current state as a scene description. Spinning
// actors are captured at their current rotation.
func (s *Scene) Config() *Config {
	c := s.Camera
	cfg := &Config{
		Name: s.Name,
		Camera: CameraConfig{
			Eye:    fromVec3(c.Eye),
			Target: fromVec3(c.Target),
			Up:     fromVec3(c.Up),
			Fov:    c.FovDegrees,
			Width:  c.Width,
			Height: c.Height,
			Near:   c.Near,
			Far:    c.Far,
		},
	}
	for _, a := range s.Actors {
		cfg.Actors = append(cfg.Actors, ActorConfig{
			ID:       a.ID.String(),
			Name:     a.Name,
			Position: fromVec3(a.Transform.Position),
			Rotation: fromVec3(a.Transform.Rotation),
			Scale:    fromVec3(a.Transform.Scale),
			Spin:     fromVec3(a.Spin),
		})
	}
	return cfg
}
