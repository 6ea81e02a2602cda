package pause

import "fmt"

// Setting keys as exposed to the host's configuration surface.
const (
	KeyPauseLayer = "pause_layer"
	KeyMessage    = "message"
	KeyShouldBeep = "should_beep"
)

// Defaults and bounds for Settings.
const (
	DefaultPauseLayer = 1
	DefaultMessage    = "User defined pause at layer {}"
	DefaultShouldBeep = true

	MinPauseLayer = 1
)

// Settings are the three inputs of the injector.
type Settings struct {
	// PauseLayer is the 1-based layer before which the printer pauses.
	PauseLayer int `json:"pause_layer" yaml:"pause_layer"`

	// Message is a template; "{}" is replaced by the layer number.
	Message string `json:"message" yaml:"message"`

	// ShouldBeep adds a beep command ahead of the pause.
	ShouldBeep bool `json:"should_beep" yaml:"should_beep"`
}

// DefaultSettings returns the settings a fresh host configuration starts with.
func DefaultSettings() Settings {
	return Settings{
		PauseLayer: DefaultPauseLayer,
		Message:    DefaultMessage,
		ShouldBeep: DefaultShouldBeep,
	}
}

// SettingsError reports a setting outside its bounds.
type SettingsError struct {
	Key     string
	Message string
}

func (e *SettingsError) Error() string {
	return fmt.Sprintf("%s: %s", e.Key, e.Message)
}

// Validate checks the bounds a host must enforce before invoking Inject.
// Inject itself accepts any value.
func (s Settings) Validate() error {
	if s.PauseLayer < MinPauseLayer {
		return &SettingsError{
			Key:     KeyPauseLayer,
			Message: fmt.Sprintf("must be >= %d, got %d", MinPauseLayer, s.PauseLayer),
		}
	}
	return nil
}
