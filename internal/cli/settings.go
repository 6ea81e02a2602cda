package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/layerpause/internal/pause"
	"github.com/roach88/layerpause/internal/schema"
)

// settingsFlags are the filter settings shared by apply and inspect.
type settingsFlags struct {
	File    string
	Layer   int
	Message string
	Beep    bool
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.File, "settings", "", "settings file (.cue, .yaml, .yml or .json)")
	cmd.Flags().IntVar(&f.Layer, "layer", pause.DefaultPauseLayer, "layer to pause before (1 is the first layer)")
	cmd.Flags().StringVar(&f.Message, "message", pause.DefaultMessage, "message shown on the printer; {} is replaced by the layer")
	cmd.Flags().BoolVar(&f.Beep, "beep", pause.DefaultShouldBeep, "beep before pausing")
}

// resolve builds settings from defaults, then the settings file (flag or
// LAYERPAUSE_SETTINGS), then flags given explicitly on the command line.
// It returns the settings file used, if any.
func (f *settingsFlags) resolve(cmd *cobra.Command, envCfg EnvConfig) (pause.Settings, string, error) {
	path := f.File
	if path == "" {
		path = envCfg.Settings
	}

	var (
		s   pause.Settings
		err error
	)
	if path != "" {
		s, err = schema.Load(path)
	} else {
		s, err = schema.Defaults()
	}
	if err != nil {
		return pause.Settings{}, path, err
	}

	flags := cmd.Flags()
	if flags.Changed("layer") {
		s.PauseLayer = f.Layer
	}
	if flags.Changed("message") {
		s.Message = f.Message
	}
	if flags.Changed("beep") {
		s.ShouldBeep = f.Beep
	}

	if err := s.Validate(); err != nil {
		return pause.Settings{}, path, err
	}
	return s, path, nil
}
