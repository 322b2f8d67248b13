package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/udu-dev/udu/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the udu version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), settings.App.AppDescription)
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
