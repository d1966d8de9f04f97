package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags -X.
var Version = "0.1.0-dev"

const modulePath = "github.com/jling-NM/CACTI-sub000"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cacti version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "cacti v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
