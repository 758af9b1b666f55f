package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Lllllllleong/legalease/internal/services"
)

var languagesJSON bool

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the supported target languages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := services.DefaultCatalog()
		out := cmd.OutOrStdout()

		if languagesJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(catalog.Languages())
		}

		heading := color.New(color.FgCyan, color.Bold)
		for _, group := range catalog.Groups() {
			heading.Fprintln(out, group)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, lang := range catalog.Languages() {
				if lang.Group != group {
					continue
				}
				var notes string
				if lang.RTL {
					notes = "right-to-left"
				}
				fmt.Fprintf(tw, "  %s\t%s\t%s\n", lang.Code, lang.Name, notes)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	languagesCmd.Flags().BoolVar(&languagesJSON, "json", false, "print the catalog as JSON")
}
