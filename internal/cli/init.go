package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/en-o/codeshelf/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize codeshelf storage",
		Long: "Create the configuration and data directories, migrate the data of a\n" +
			"previous release on first run, and restore any missing data file.",
		Args: cobra.NoArgs,
		RunE: a.runInit,
	}
}

// initOutput is the --json form of the init command.
type initOutput struct {
	DataDir   string                `json:"data_dir"`
	ConfigDir string                `json:"config_dir"`
	Migration types.MigrationResult `json:"migration"`
}

func (a *app) runInit(cmd *cobra.Command, _ []string) error {
	result, err := a.store.Init()
	if err != nil {
		// The result describes what was attempted even on a hard failure.
		a.printMigration(cmd.OutOrStdout(), result)
		return sysError(fmt.Errorf("initialize storage: %w", err))
	}

	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), initOutput{
			DataDir:   a.dataDir,
			ConfigDir: a.configDir,
			Migration: result,
		})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Data directory:   %s\n", a.dataDir)
	fmt.Fprintf(w, "Config directory: %s\n", a.configDir)
	a.printMigration(w, result)
	if result.Success {
		color.New(color.FgGreen).Fprintln(w, "codeshelf initialized successfully")
	} else {
		color.New(color.FgRed).Fprintln(w, "codeshelf initialized with errors; some legacy data was not migrated")
	}
	return nil
}

// printMigration writes a human-readable migration summary.
func (a *app) printMigration(w io.Writer, r types.MigrationResult) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	for _, item := range r.MigratedItems {
		green.Fprintf(w, "  migrated  %s\n", item)
	}
	for _, warning := range r.Warnings {
		yellow.Fprintf(w, "  warning   %s\n", warning)
	}
	for _, e := range r.Errors {
		red.Fprintf(w, "  error     %s\n", e)
	}
}
