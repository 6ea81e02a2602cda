package schema

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/roach88/layerpause/internal/pause"
)

//go:embed settings.cue
var settingsCUE string

// CUE returns the CUE source of the settings schema.
func CUE() string {
	return settingsCUE
}

// Error is a settings problem with source position when CUE knows it.
type Error struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads a settings file and returns validated settings with defaults
// filled in. The format follows the extension: .cue, .yaml, .yml or .json.
func Load(path string) (pause.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pause.Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}
	return Parse(path, data)
}

// Parse validates settings held in memory. name selects the format by
// extension and labels CUE error positions.
func Parse(name string, data []byte) (pause.Settings, error) {
	ctx := cuecontext.New()

	root := ctx.CompileString(settingsCUE, cue.Filename("settings.cue"))
	if err := root.Err(); err != nil {
		return pause.Settings{}, fmt.Errorf("compile settings schema: %w", err)
	}

	var user cue.Value
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".cue":
		user = ctx.CompileBytes(data, cue.Filename(name))
	case ".yaml", ".yml", ".json":
		raw, err := decodeYAML(data)
		if err != nil {
			return pause.Settings{}, err
		}
		user = ctx.Encode(raw)
	default:
		return pause.Settings{}, &Error{Field: "file", Message: fmt.Sprintf("unsupported settings format %q", ext)}
	}
	if err := user.Err(); err != nil {
		return pause.Settings{}, formatCUEError(err)
	}

	settingsPath := cue.ParsePath("settings")
	v := root.FillPath(settingsPath, user).LookupPath(settingsPath)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return pause.Settings{}, formatCUEError(err)
	}

	var s pause.Settings
	if err := v.Decode(&s); err != nil {
		return pause.Settings{}, formatCUEError(err)
	}
	if err := s.Validate(); err != nil {
		return pause.Settings{}, err
	}
	return s, nil
}

// Defaults evaluates the schema with no user input.
func Defaults() (pause.Settings, error) {
	return Parse("defaults.cue", nil)
}

// decodeYAML decodes a YAML or JSON mapping and rejects unknown keys.
func decodeYAML(data []byte) (map[string]any, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	var unknown []string
	for k := range raw {
		switch k {
		case pause.KeyPauseLayer, pause.KeyMessage, pause.KeyShouldBeep:
		default:
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &Error{Field: unknown[0], Message: "field not allowed"}
	}
	return raw, nil
}

// formatCUEError keeps the first CUE error along with its path and position.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	field := "settings"
	if path := first.Path(); len(path) > 0 {
		field = path[len(path)-1]
	}

	out := &Error{Field: field, Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		out.Pos = positions[0]
	}
	return out
}
