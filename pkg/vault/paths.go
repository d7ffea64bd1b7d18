package vault

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
)

// registryFileName is the name Obsidian gives its vault registry file,
// nested inside the application's own config directory.
const registryFileName = "obsidian.json"

// DefaultVaultsFilePath locates Obsidian's vault registry file using the
// OS-appropriate configuration directory: XDG_CONFIG_HOME (or ~/.config) on
// Linux and other Unix systems, ~/Library/Application Support on macOS, and
// %APPDATA% on Windows. This mirrors the
// platform-conditional VAULTS_FILE static computed in the reference
// implementation.
func DefaultVaultsFilePath() (string, error) {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", errors.New("APPDATA environment variable is not set")
		}
		return filepath.Join(appData, "Obsidian", registryFileName), nil
	}

	configDirectoryPath, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "unable to compute path to configuration directory")
	}

	return filepath.Join(configDirectoryPath, "obsidian", registryFileName), nil
}
