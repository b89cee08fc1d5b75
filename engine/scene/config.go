package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/spaghettifunk/affine/engine/components"
	"github.com/spaghettifunk/affine/engine/core"
	"github.com/spaghettifunk/affine/engine/math"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported scene format")
	ErrInvalidVector     = errors.New("vector must have exactly 3 components")
	ErrInvalidCamera     = errors.New("invalid camera")
	ErrEmptyActorName    = errors.New("actor name is empty")
	ErrDuplicateActor    = errors.New("duplicate actor name")
	ErrInvalidActorID    = errors.New("invalid actor id")
)

type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Config describes a scene on disk. Vectors are lists of three floats.
type Config struct {
	Name   string        `toml:"name" yaml:"name"`
	Camera CameraConfig  `toml:"camera" yaml:"camera"`
	Actors []ActorConfig `toml:"actors" yaml:"actors"`
}

type CameraConfig struct {
	Eye    []float32 `toml:"eye,omitempty" yaml:"eye,omitempty"`
	Target []float32 `toml:"target,omitempty" yaml:"target,omitempty"`
	Up     []float32 `toml:"up,omitempty" yaml:"up,omitempty"`
	Fov    float32   `toml:"fov,omitempty" yaml:"fov,omitempty"`
	Width  uint32    `toml:"width,omitempty" yaml:"width,omitempty"`
	Height uint32    `toml:"height,omitempty" yaml:"height,omitempty"`
	Near   float32   `toml:"near,omitempty" yaml:"near,omitempty"`
	Far    float32   `toml:"far,omitempty" yaml:"far,omitempty"`
}

type ActorConfig struct {
	// ID pins the actor identifier. Left empty, one is generated.
	ID       string    `toml:"id,omitempty" yaml:"id,omitempty"`
	Name     string    `toml:"name" yaml:"name"`
	Position []float32 `toml:"position,omitempty" yaml:"position,omitempty"`
	Rotation []float32 `toml:"rotation,omitempty" yaml:"rotation,omitempty"`
	Scale    []float32 `toml:"scale,omitempty" yaml:"scale,omitempty"`
	// Spin is in Euler degrees per second.
	Spin []float32 `toml:"spin,omitempty" yaml:"spin,omitempty"`
}

// Load reads, defaults and validates the scene file at path.
func Load(path string) (*Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a scene in the given format, fills in defaults and
// validates it. Unknown keys are an error.
func Decode(r io.Reader, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case FormatTOML:
		if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg); err != nil {
			return nil, err
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Encode writes the scene in the given format.
func Encode(w io.Writer, cfg *Config, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(cfg)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// SetDefaults fills every omitted value.
func (c *Config) SetDefaults() {
	cam := &c.Camera
	if cam.Eye == nil {
		cam.Eye = []float32{0, 0, 10}
	}
	if cam.Target == nil {
		cam.Target = []float32{0, 0, 0}
	}
	if cam.Up == nil {
		cam.Up = []float32{0, 1, 0}
	}
	if cam.Fov == 0 {
		cam.Fov = components.DEFAULT_CAMERA_FOV
	}
	if cam.Width == 0 {
		cam.Width = components.DEFAULT_CAMERA_WIDTH
	}
	if cam.Height == 0 {
		cam.Height = components.DEFAULT_CAMERA_HEIGHT
	}
	if cam.Near == 0 {
		cam.Near = components.DEFAULT_CAMERA_NEAR
	}
	if cam.Far == 0 {
		cam.Far = components.DEFAULT_CAMERA_FAR
	}

	for i := range c.Actors {
		a := &c.Actors[i]
		if a.Position == nil {
			a.Position = []float32{0, 0, 0}
		}
		if a.Rotation == nil {
			a.Rotation = []float32{0, 0, 0}
		}
		if a.Scale == nil {
			a.Scale = []float32{1, 1, 1}
		}
		if a.Spin == nil {
			a.Spin = []float32{0, 0, 0}
		}
	}
}

// Validate checks a defaulted config. Only the first problem is reported.
func (c *Config) Validate() error {
	if err := c.Camera.validate(); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(c.Actors))
	for i, a := range c.Actors {
		if strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("actor %d: %w", i, ErrEmptyActorName)
		}
		if _, dup := seen[a.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateActor, a.Name)
		}
		seen[a.Name] = struct{}{}

		if a.ID != "" {
			if _, err := core.ParseIdentifier(a.ID); err != nil {
				return fmt.Errorf("actor %q: %w: %s", a.Name, ErrInvalidActorID, err)
			}
		}
		for _, f := range []struct {
			name  string
			value []float32
		}{
			{"position", a.Position},
			{"rotation", a.Rotation},
			{"scale", a.Scale},
			{"spin", a.Spin},
		} {
			if _, err := toVec3(f.value); err != nil {
				return fmt.Errorf("actor %q %s: %w", a.Name, f.name, err)
			}
		}
	}
	return nil
}

func (cc CameraConfig) validate() error {
	eye, err := toVec3(cc.Eye)
	if err != nil {
		return fmt.Errorf("camera eye: %w", err)
	}
	target, err := toVec3(cc.Target)
	if err != nil {
		return fmt.Errorf("camera target: %w", err)
	}
	up, err := toVec3(cc.Up)
	if err != nil {
		return fmt.Errorf("camera up: %w", err)
	}

	dir := target.Sub(eye)
	if dir.LengthSquared() == 0 {
		return fmt.Errorf("%w: eye and target coincide", ErrInvalidCamera)
	}
	if up.LengthSquared() == 0 {
		return fmt.Errorf("%w: up is a zero vector", ErrInvalidCamera)
	}
	if dir.Normalized().Cross(up.Normalized()).LengthSquared() < 1e-10 {
		return fmt.Errorf("%w: up is parallel to the view direction", ErrInvalidCamera)
	}
	// written so that NaN fails every check
	if !(cc.Fov > 0 && cc.Fov < 180) {
		return fmt.Errorf("%w: fov %v outside (0, 180)", ErrInvalidCamera, cc.Fov)
	}
	if !(cc.Near > 0 && cc.Far > cc.Near && math.IsFinite(cc.Far)) {
		return fmt.Errorf("%w: clip planes near=%v far=%v", ErrInvalidCamera, cc.Near, cc.Far)
	}
	return nil
}

func toVec3(v []float32) (math.Vec3, error) {
	if len(v) != 3 {
		return math.Vec3{}, fmt.Errorf("%w: got %d", ErrInvalidVector, len(v))
	}
	for _, f := range v {
		if !math.IsFinite(f) {
			return math.Vec3{}, fmt.Errorf("%w: non-finite component %v", ErrInvalidVector, v)
		}
	}
	return math.NewVec3(v[0], v[1], v[2]), nil
}

func fromVec3(v math.Vec3) []float32 {
	return []float32{v.X, v.Y, v.Z}
}
