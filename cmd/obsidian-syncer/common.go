package main

import (
	"github.com/pkg/errors"

	"github.com/JayanAXHF/obsidian-syncer/pkg/configuration"
	"github.com/JayanAXHF/obsidian-syncer/pkg/logging"
	"github.com/JayanAXHF/obsidian-syncer/pkg/syncer"
	"github.com/JayanAXHF/obsidian-syncer/pkg/vault"
)

// commonFlags holds the flags shared by the sync and run commands: where to
// find the vault registry and the optional daemon configuration file.
type commonFlags struct {
	registryPath string
	configPath   string
}

// resolveRegistryPath returns the configured registry path, falling back to
// vault.DefaultVaultsFilePath when the flag wasn't set.
func (f commonFlags) resolveRegistryPath() (string, error) {
	if f.registryPath != "" {
		return f.registryPath, nil
	}
	return vault.DefaultVaultsFilePath()
}

// resolveConfigPath returns the configured configuration path, falling back
// to configuration.GlobalConfigurationPath when the flag wasn't set.
func (f commonFlags) resolveConfigPath() (string, error) {
	if f.configPath != "" {
		return f.configPath, nil
	}
	return configuration.GlobalConfigurationPath()
}

// loadConfig resolves and loads the daemon configuration, applying its log
// level to the root logger as a side effect.
func loadConfig(f commonFlags) (*configuration.Configuration, error) {
	configPath, err := f.resolveConfigPath()
	if err != nil {
		return nil, errors.Wrap(err, "unable to resolve configuration path")
	}

	config, err := configuration.Load(configPath)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load configuration")
	}

	if config.LogLevel != "" {
		if level, ok := logging.NameToLevel(config.LogLevel); ok {
			logging.SetLevel(level)
		}
	}

	return config, nil
}

// loadOpenVaults resolves the registry path and returns the currently open
// vaults.
func loadOpenVaults(f commonFlags) ([]vault.Vault, error) {
	registryPath, err := f.resolveRegistryPath()
	if err != nil {
		return nil, errors.Wrap(err, "unable to resolve vault registry path")
	}

	set, err := vault.Load(registryPath)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load vault registry")
	}

	return set.OpenVaults(), nil
}

// syncerOptions converts a loaded configuration into syncer.Options.
func syncerOptions(config *configuration.Configuration) syncer.Options {
	return syncer.Options{
		BlockSize:      config.BlockSize,
		IgnorePatterns: config.IgnorePatterns,
	}
}
