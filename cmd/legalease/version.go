package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lllllllleong/legalease/internal/api"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "legalease %s\n", api.Version)
	},
}
