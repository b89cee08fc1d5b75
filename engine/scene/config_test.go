package scene

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoTOML = `
name = "demo"

[camera]
eye = [0, 12, 12]
target = [0, 5, 0]
fov = 45

[[actors]]
name = "statue"
spin = [0, 10, 0]

[[actors]]
name = "pedestal"
position = [0, -1, 0]
scale = [2, 0.5, 2]
`

const demoYAML = `
name: demo
camera:
  eye: [0, 12, 12]
  target: [0, 5, 0]
  fov: 45
actors:
  - name: statue
    spin: [0, 10, 0]
  - name: pedestal
    position: [0, -1, 0]
    scale: [2, 0.5, 2]
`

func TestDecodeFormatsAgree(t *testing.T) {
	fromTOML, err := Decode(strings.NewReader(demoTOML), FormatTOML)
	require.NoError(t, err)
	fromYAML, err := Decode(strings.NewReader(demoYAML), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, fromTOML, fromYAML)
}

func TestDecodeAppliesDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(demoTOML), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.Name)
	assert.Equal(t, []float32{0, 12, 12}, cfg.Camera.Eye)
	assert.Equal(t, []float32{0, 1, 0}, cfg.Camera.Up)
	assert.Equal(t, float32(0.1), cfg.Camera.Near)
	assert.Equal(t, float32(10000), cfg.Camera.Far)
	assert.Equal(t, uint32(1280), cfg.Camera.Width)
	assert.Equal(t, uint32(720), cfg.Camera.Height)

	require.Len(t, cfg.Actors, 2)
	statue := cfg.Actors[0]
	assert.Equal(t, []float32{0, 0, 0}, statue.Position)
	assert.Equal(t, []float32{0, 0, 0}, statue.Rotation)
	assert.Equal(t, []float32{1, 1, 1}, statue.Scale)
	assert.Equal(t, []float32{0, 10, 0}, statue.Spin)
	assert.Equal(t, []float32{2, 0.5, 2}, cfg.Actors[1].Scale)
}

func TestDecodeEmptyDocument(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML} {
		cfg, err := Decode(strings.NewReader(""), format)
		require.NoError(t, err, format)
		assert.Equal(t, []float32{0, 0, 10}, cfg.Camera.Eye, format)
		assert.Empty(t, cfg.Actors, format)
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("nmae = 'typo'\n"), FormatTOML)
	assert.Error(t, err)
	_, err = Decode(strings.NewReader("nmae: typo\n"), FormatYAML)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		err  error
	}{
		{"eye on target", "[camera]\neye = [1, 1, 1]\ntarget = [1, 1, 1]\n", ErrInvalidCamera},
		{"up along view", "[camera]\neye = [0, 5, 0]\ntarget = [0, 0, 0]\n", ErrInvalidCamera},
		{"zero up", "[camera]\nup = [0, 0, 0]\n", ErrInvalidCamera},
		{"fov too wide", "[camera]\nfov = 180\n", ErrInvalidCamera},
		{"nan fov", "[camera]\nfov = nan\n", ErrInvalidCamera},
		{"nan near", "[camera]\nnear = nan\n", ErrInvalidCamera},
		{"infinite far", "[camera]\nfar = inf\n", ErrInvalidCamera},
		{"nan eye", "[camera]\neye = [0, nan, 10]\n", ErrInvalidVector},
		{"infinite actor position", "[[actors]]\nname = 'a'\nposition = [0, -inf, 0]\n", ErrInvalidVector},
		{"negative near", "[camera]\nnear = -1\n", ErrInvalidCamera},
		{"far before near", "[camera]\nnear = 10\nfar = 5\n", ErrInvalidCamera},
		{"short vector", "[camera]\neye = [1, 2]\n", ErrInvalidVector},
		{"actor vector", "[[actors]]\nname = 'a'\nscale = [1, 2, 3, 4]\n", ErrInvalidVector},
		{"empty name", "[[actors]]\nname = ' '\n", ErrEmptyActorName},
		{"duplicate", "[[actors]]\nname = 'a'\n[[actors]]\nname = 'a'\n", ErrDuplicateActor},
		{"bad id", "[[actors]]\nname = 'a'\nid = 'nope'\n", ErrInvalidActorID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.doc), FormatTOML)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestValidateRejectsNaNInYAML(t *testing.T) {
	_, err := Decode(strings.NewReader("camera:\n  fov: .nan\n"), FormatYAML)
	assert.ErrorIs(t, err, ErrInvalidCamera)
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("scenes/demo.TOML")
	require.NoError(t, err)
	assert.Equal(t, FormatTOML, f)

	f, err = FormatFromPath("demo.yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = FormatFromPath("demo.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(demoYAML), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Actors, 2)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(filepath.Join(dir, "demo.ini"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg, err := Decode(strings.NewReader(demoTOML), FormatTOML)
	require.NoError(t, err)

	for _, format := range []Format{FormatTOML, FormatYAML} {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, cfg, format), format)
		back, err := Decode(&buf, format)
		require.NoError(t, err, format)
		assert.Equal(t, cfg, back, format)
	}

	assert.ErrorIs(t, Encode(&bytes.Buffer{}, cfg, Format("ini")), ErrUnsupportedFormat)
}
