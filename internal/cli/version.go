package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const modulePath = "github.com/en-o/codeshelf"

// Version is set at build time with -ldflags "-X".
var Version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the codeshelf version",
		Args:  cobra.NoArgs,
		// version needs no configuration or storage.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "codeshelf %s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
