// Package config loads stencil settings from config files and the
// environment via Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/stencil-cli/stencil/variable"
)

// Config holds the stencil settings.
type Config struct {
	// ReplayDir is where resolved contexts are persisted for replay.
	ReplayDir string `mapstructure:"replay_dir"`

	// NoInput suppresses all prompting; every variable takes its rendered
	// default.
	NoInput bool `mapstructure:"no_input"`

	// DefaultContext overrides variable defaults before resolution starts.
	// Keys are variable names, with "/" separating branch paths.
	DefaultContext map[string]any `mapstructure:"default_context"`
}

// GetReplayDir returns the replay directory, falling back to the default
// under the user config directory.
func (c *Config) GetReplayDir() string {
	if c.ReplayDir == "" {
		return DefaultReplayDir()
	}
	return c.ReplayDir
}

// Overrides converts the default context into typed values keyed by
// variable path, ready for Node.ApplyOverrides.
func (c *Config) Overrides() map[string]variable.Value {
	if len(c.DefaultContext) == 0 {
		return nil
	}
	out := make(map[string]variable.Value, len(c.DefaultContext))
	for key, raw := range c.DefaultContext {
		out[key] = valueFromAny(raw)
	}
	return out
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{ReplayDir: %s, NoInput: %t, Overrides: %d}",
		c.GetReplayDir(), c.NoInput, len(c.DefaultContext))
}

// DefaultReplayDir returns ~/.stencil/replay, or a relative fallback when
// the home directory cannot be determined.
func DefaultReplayDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".stencil", "replay")
	}
	return filepath.Join(home, ".stencil", "replay")
}

// valueFromAny maps a decoded config value onto the variable value model.
// Numbers fold to strings, matching how variable files decode scalars.
func valueFromAny(raw any) variable.Value {
	switch t := raw.(type) {
	case nil:
		return variable.Nil()
	case bool:
		return variable.Bool(t)
	case string:
		return variable.String(t)
	case []any:
		list := make([]variable.Value, len(t))
		for i, e := range t {
			list[i] = valueFromAny(e)
		}
		return variable.List(list)
	case map[string]any:
		d := variable.NewOrderedDict()
		for k, v := range t {
			d.Set(k, valueFromAny(v))
		}
		return variable.Dict(d)
	default:
		return variable.String(fmt.Sprintf("%v", t))
	}
}
