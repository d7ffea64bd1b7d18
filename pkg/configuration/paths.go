package configuration

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// configurationFileName is the name of the daemon's optional YAML
// configuration file, stored inside the OS-appropriate user configuration
// directory.
const configurationFileName = "obsidian-syncer.yml"

// GlobalConfigurationPath returns the path of the YAML-based daemon
// configuration file. It does not verify that the file exists; Load treats
// a missing file as "all defaults."
func GlobalConfigurationPath() (string, error) {
	configDirectoryPath, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "unable to compute path to configuration directory")
	}

	return filepath.Join(configDirectoryPath, "obsidian-syncer", configurationFileName), nil
}
