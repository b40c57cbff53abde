package config

import (
	"os"

	"go.uber.org/fx"
)

// Path is the location of the configuration file.
type Path string

var Module = fx.Module("config", fx.Provide(
	// Function loads the configuration from path if it exists. A missing file yields the
	// defaults so that every command runs without one.
	func(path Path) (*Config, error) {
		if _, err := os.Stat(string(path)); os.IsNotExist(err) {
			return Default(), nil
		}

		return LoadConfigFile(string(path))
	},
))
