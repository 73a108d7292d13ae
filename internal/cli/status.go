package cli

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/en-o/codeshelf/internal/storage"
	"github.com/en-o/codeshelf/pkg/types"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the state of every data file",
		Args:  cobra.NoArgs,
		RunE:  a.runStatus,
	}
}

// fileStatus describes one domain file.
type fileStatus struct {
	Domain  string `json:"domain"`
	Path    string `json:"path"`
	Version uint32 `json:"version,omitempty"`
	Updated string `json:"last_updated,omitempty"`
	Error   string `json:"error,omitempty"`
}

type statusOutput struct {
	Files     []fileStatus          `json:"files"`
	Migration types.MigrationResult `json:"migration"`
}

func (a *app) runStatus(cmd *cobra.Command, _ []string) error {
	result, err := a.store.Init()
	if err != nil {
		return sysError(fmt.Errorf("initialize storage: %w", err))
	}
	cfg, err := a.store.Config()
	if err != nil {
		return sysError(err)
	}

	var files []fileStatus
	for _, d := range storage.Domains() {
		fs := fileStatus{Domain: string(d), Path: cfg.Path(d)}
		doc, err := storage.ReadDocument[json.RawMessage](fs.Path)
		if err != nil {
			fs.Error = err.Error()
		} else {
			fs.Version = doc.Version
			fs.Updated = doc.LastUpdated
		}
		files = append(files, fs)
	}

	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), statusOutput{Files: files, Migration: result})
	}

	w := cmd.OutOrStdout()
	bad := color.New(color.FgRed)
	for _, fs := range files {
		if fs.Error != "" {
			bad.Fprintf(w, "%-28s %s\n", fs.Domain, fs.Error)
			continue
		}
		line := fmt.Sprintf("%-28s v%d  %s", fs.Domain, fs.Version, fs.Updated)
		if fs.Version != types.CurrentVersion {
			bad.Fprintln(w, line)
			continue
		}
		fmt.Fprintln(w, line)
	}
	a.printMigration(w, result)
	return nil
}

func newPathsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the resolved data, config and legacy directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			legacyData, hasData := a.legacy.LegacyDataDir()
			legacyConfig, hasConfig := a.legacy.LegacyConfigDir()
			out := map[string]string{
				"data_dir":          a.dataDir,
				"config_dir":        a.configDir,
				"legacy_data_dir":   legacyData,
				"legacy_config_dir": legacyConfig,
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "data:          %s\n", a.dataDir)
			fmt.Fprintf(w, "config:        %s\n", a.configDir)
			fmt.Fprintf(w, "legacy data:   %s\n", orNone(legacyData, hasData))
			fmt.Fprintf(w, "legacy config: %s\n", orNone(legacyConfig, hasConfig))
			return nil
		},
	}
}

func orNone(s string, ok bool) string {
	if !ok {
		return "(none)"
	}
	return s
}
