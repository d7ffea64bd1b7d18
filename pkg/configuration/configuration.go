package configuration

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Configuration is the daemon-level configuration object, loaded from an
// optional YAML file. Every field has a usable zero value, so a missing or
// empty file is equivalent to every default.
type Configuration struct {
	// BlockSize overrides rsync.BlockSize for every signature built during a
	// sync pass. A value of zero means "use the engine's default."
	BlockSize uint64 `yaml:"blockSize"`
	// IgnorePatterns is a list of doublestar glob patterns, matched against
	// plugin-relative paths, that the supervisor skips entirely.
	IgnorePatterns []string `yaml:"ignorePatterns"`
	// LogLevel names the minimum log level emitted by pkg/logging, one of
	// "disabled", "error", "warn", "info", "debug", or "trace".
	LogLevel string `yaml:"logLevel"`
}

// Load reads and parses the YAML configuration file at path. A missing file
// is not an error: Load returns a zero-value Configuration in that case, so
// callers don't need a separate existence check before loading.
func Load(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Configuration{}, nil
		}
		return nil, errors.Wrap(err, "unable to read configuration file")
	}

	result := &Configuration{}
	if err := yaml.Unmarshal(data, result); err != nil {
		return nil, errors.Wrap(err, "unable to parse configuration file")
	}

	return result, nil
}
