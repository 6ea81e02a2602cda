package schema

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/layerpause/internal/pause"
)

func TestDefaultsMatchPackageDefaults(t *testing.T) {
	s, err := Defaults()
	require.NoError(t, err)
	assert.Equal(t, pause.DefaultSettings(), s)
}

func TestParseYAML(t *testing.T) {
	s, err := Parse("settings.yaml", []byte("pause_layer: 12\nmessage: \"Insert magnets at layer {}\"\nshould_beep: false\n"))
	require.NoError(t, err)
	assert.Equal(t, pause.Settings{
		PauseLayer: 12,
		Message:    "Insert magnets at layer {}",
		ShouldBeep: false,
	}, s)
}

func TestParsePartialFillsDefaults(t *testing.T) {
	s, err := Parse("settings.yml", []byte("pause_layer: 4\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, s.PauseLayer)
	assert.Equal(t, pause.DefaultMessage, s.Message)
	assert.True(t, s.ShouldBeep)
}

func TestParseEmptyYAML(t *testing.T) {
	s, err := Parse("settings.yaml", nil)
	require.NoError(t, err)
	assert.Equal(t, pause.DefaultSettings(), s)
}

func TestParseJSON(t *testing.T) {
	s, err := Parse("settings.json", []byte(`{"pause_layer": 3, "should_beep": false}`))
	require.NoError(t, err)
	assert.Equal(t, 3, s.PauseLayer)
	assert.False(t, s.ShouldBeep)
	assert.Equal(t, pause.DefaultMessage, s.Message)
}

func TestParseCUE(t *testing.T) {
	src := `
pause_layer: 7
message:     "Swap filament ({})"
`
	s, err := Parse("settings.cue", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, 7, s.PauseLayer)
	assert.Equal(t, "Swap filament ({})", s.Message)
	assert.True(t, s.ShouldBeep)
}

func TestParseRejectsOutOfRangeLayer(t *testing.T) {
	for _, name := range []string{"s.yaml", "s.cue"} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(name, []byte("pause_layer: 0\n"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "pause_layer")
		})
	}
}

func TestParseRejectsWrongType(t *testing.T) {
	_, err := Parse("s.yaml", []byte("pause_layer: \"three\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pause_layer")

	_, err = Parse("s.yaml", []byte("pause_layer: 2.5\n"))
	require.Error(t, err)
}

func TestParseRejectsUnknownField(t *testing.T) {
	_, err := Parse("s.yaml", []byte("pause_layer: 2\npause_lyer: 3\n"))
	require.Error(t, err)

	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "pause_lyer", se.Field)
	assert.Equal(t, "field not allowed", se.Message)
}

func TestParseRejectsUnknownFieldInCUE(t *testing.T) {
	_, err := Parse("s.cue", []byte("pause_layer: 2\nextra: true\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extra")
}

func TestParseUnsupportedFormat(t *testing.T) {
	_, err := Parse("settings.toml", []byte("pause_layer = 2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported settings format")
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse("s.yaml", []byte("pause_layer: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pause.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pause_layer: 9\n"), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9, s.PauseLayer)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read settings file")
}

func TestErrorFormatting(t *testing.T) {
	e := &Error{Field: "pause_layer", Message: "out of bound"}
	assert.Equal(t, "pause_layer: out of bound", e.Error())
}

func TestCUESource(t *testing.T) {
	assert.Contains(t, CUE(), "#Settings")
	assert.Contains(t, CUE(), "pause_layer")
}

func TestDocument(t *testing.T) {
	doc := NewDocument()
	assert.Equal(t, "CraftBotPauseAtLayer", doc.Key)
	assert.Equal(t, 2, doc.Version)
	require.Len(t, doc.Settings, 3)

	layer := doc.Settings[pause.KeyPauseLayer]
	assert.Equal(t, "int", layer.Type)
	assert.Equal(t, 1, layer.DefaultValue)
	require.NotNil(t, layer.MinimumValue)
	assert.Equal(t, 1, *layer.MinimumValue)

	assert.Equal(t, "str", doc.Settings[pause.KeyMessage].Type)
	assert.Equal(t, pause.DefaultMessage, doc.Settings[pause.KeyMessage].DefaultValue)
	assert.Equal(t, true, doc.Settings[pause.KeyShouldBeep].DefaultValue)
}

func TestMarshalDocument(t *testing.T) {
	data, err := MarshalDocument()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Pause at layer (CraftBot)", decoded["name"])

	settings := decoded["settings"].(map[string]any)
	beep := settings["should_beep"].(map[string]any)
	assert.Equal(t, true, beep["default_value"])
	assert.NotContains(t, beep, "minimum_value")
}
