package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "spacetime",
		Short:         "Spacetime memories API",
		Long:          "Spacetime stores user memories (text plus a media URL) behind an authenticated REST API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newTokenCmd())

	return root
}
