package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JayanAXHF/obsidian-syncer/pkg/obsidiansyncer"
)

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(command *cobra.Command, arguments []string) {
		fmt.Println(obsidiansyncer.Version)
	},
}
