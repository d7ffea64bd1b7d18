package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/JayanAXHF/obsidian-syncer/pkg/logging"
	"github.com/JayanAXHF/obsidian-syncer/pkg/syncer"
	"github.com/JayanAXHF/obsidian-syncer/pkg/vault"

	"github.com/JayanAXHF/obsidian-syncer/cmd"
)

var syncConfiguration commonFlags

var syncCommand = &cobra.Command{
	Use:   "sync",
	Short: "Perform a single synchronization pass across all open vaults",
	Args:  cmd.DisallowArguments,
	Run:   cmd.Mainify(syncMain),
}

func init() {
	flags := syncCommand.Flags()
	flags.StringVar(&syncConfiguration.registryPath, "registry", "", "path to the Obsidian vault registry (obsidian.json)")
	flags.StringVar(&syncConfiguration.configPath, "config", "", "path to the obsidian-syncer configuration file")
}

func syncMain(command *cobra.Command, arguments []string) error {
	config, err := loadConfig(syncConfiguration)
	if err != nil {
		return err
	}

	openVaults, err := loadOpenVaults(syncConfiguration)
	if err != nil {
		return err
	}

	if len(openVaults) < 2 {
		logging.RootLogger.Print("Fewer than two vaults are open; nothing to synchronize.")
		return nil
	}

	opts := syncerOptions(config)
	logger := logging.RootLogger.Sublogger("sync")

	ctx := context.Background()
	var printer cmd.StatusLinePrinter

	for i, source := range openVaults {
		destinations := make([]vault.Vault, 0, len(openVaults)-1)
		for j, candidate := range openVaults {
			if j != i {
				destinations = append(destinations, candidate)
			}
		}

		report, err := syncer.SyncVaults(ctx, source, destinations, logger, opts)
		if err != nil {
			cmd.Warning("synchronization pass from " + source.Path + " failed: " + err.Error())
			continue
		}

		printer.Print(source.Path + ": " + report.String())
		printer.BreakIfNonEmpty()
	}

	return nil
}
