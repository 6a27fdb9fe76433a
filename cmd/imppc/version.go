package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at link time.
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print imppc's version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "imppc version %v\n", version)
		},
	}
}
