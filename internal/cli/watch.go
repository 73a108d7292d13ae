package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Restore deleted data files until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if _, err := a.store.Init(); err != nil {
				return sysError(fmt.Errorf("initialize storage: %w", err))
			}
			a.logger.Info("watching data files", "data_dir", a.dataDir, "config_dir", a.configDir)
			if err := a.store.Watch(ctx); err != nil && ctx.Err() == nil {
				return sysError(err)
			}
			return nil
		},
	}
}
