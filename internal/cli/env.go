package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds defaults read from the environment. Explicit flags win.
type EnvConfig struct {
	Settings string `env:"LAYERPAUSE_SETTINGS"`
	Journal  string `env:"LAYERPAUSE_JOURNAL"`
}

// LoadEnv parses EnvConfig from environment, or from the process
// environment when environment is nil.
func LoadEnv(environment map[string]string) (EnvConfig, error) {
	var cfg EnvConfig
	opts := env.Options{}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
