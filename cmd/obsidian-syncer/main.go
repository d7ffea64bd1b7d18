package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/JayanAXHF/obsidian-syncer/cmd"
	"github.com/JayanAXHF/obsidian-syncer/cmd/profile"
)

// activeProfile is the running profile, if profiling was requested via
// --profile. It's started in PersistentPreRunE and finalized in
// PersistentPostRunE, both of which run after flag parsing.
var activeProfile *profile.Profile

// rootCommand is the root command for the obsidian-syncer command line
// client.
var rootCommand = &cobra.Command{
	Use:           "obsidian-syncer",
	Short:         "Mirror Obsidian plugin directories between vaults",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
		if profilePath == "" {
			return nil
		}
		p, err := profile.New(profilePath)
		if err != nil {
			return err
		}
		activeProfile = p
		return nil
	},
	PersistentPostRunE: func(command *cobra.Command, arguments []string) error {
		if activeProfile == nil {
			return nil
		}
		return activeProfile.Finalize()
	},
}

// profilePath, if non-empty, enables CPU and heap profiling of the command,
// written to the given path prefix on exit.
var profilePath string

func init() {
	// Disable Cobra's command sorting so that subcommands are listed in
	// registration order (sync, run, version) rather than alphabetically.
	cobra.EnableCommandSorting = false

	rootCommand.AddCommand(
		syncCommand,
		runCommand,
		versionCommand,
	)

	rootCommand.PersistentFlags().BoolP("help", "h", false, "show help information")
	rootCommand.PersistentFlags().StringVar(&profilePath, "profile", "", "write CPU and heap profiles to the given path prefix")
}

func main() {
	// Restart inside a terminal compatibility layer if necessary (handles
	// mintty consoles on Windows; a no-op on POSIX systems).
	cmd.HandleTerminalCompatibility()

	if err := rootCommand.Execute(); err != nil {
		cmd.Fatal(err)
	}
	os.Exit(0)
}
