// Package cli implements the codeshelf command-line interface.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/en-o/codeshelf/internal/paths"
	"github.com/en-o/codeshelf/internal/shell"
	"github.com/en-o/codeshelf/internal/storage"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values.
type rootFlags struct {
	configDir string
	dataDir   string
	logLevel  string
	jsonMode  bool
}

// app is the context shared by every command of one invocation. It is built
// by the root command's pre-run hook; commands never reach for globals.
type app struct {
	flags rootFlags

	level  *slog.LevelVar
	logger *slog.Logger
	logOut io.Writer

	configDir string
	dataDir   string
	legacy    paths.Legacy

	store  *storage.Store
	opener *shell.Opener
}

// NewRootCmd creates the top-level "codeshelf" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{logOut: os.Stderr})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "codeshelf",
		Short: "Manage the codeshelf local data store",
		Long: "codeshelf keeps project lists, labels, categories and settings as versioned\n" +
			"JSON documents, migrating the data of earlier releases on first run.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error (default: warn)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newStatusCmd(a))
	root.AddCommand(newPathsCmd(a))
	root.AddCommand(newWatchCmd(a))
	root.AddCommand(newOpenCmd(a))
	root.AddCommand(newReadmeCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// setup resolves directories, loads config.yaml and builds the logger, the
// store and the opener.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	if err := v.BindPFlag(cfgKeyLogLevel, cmd.Flags().Lookup("log-level")); err != nil {
		return sysError(err)
	}

	level, err := parseLevel(v.GetString(cfgKeyLogLevel))
	if err != nil {
		return userError(err)
	}
	a.level = new(slog.LevelVar)
	a.level.Set(level)
	a.logger = newLogger(a.logOut, a.level)

	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}

	a.configDir = configDir
	a.dataDir = dataDir
	a.legacy = paths.NewLegacy(v.GetString(cfgKeyLegacyDataDir), v.GetString(cfgKeyLegacyConfigDir))
	a.store = storage.New(storage.Options{
		DataDir:   dataDir,
		ConfigDir: configDir,
		Locator:   a.legacy,
		Logger:    a.logger,
	})
	if a.opener == nil {
		a.opener = shell.NewOpener(nil, a.logger)
	}
	return nil
}

// cliError carries the process exit code of a failed command.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func userError(err error) error { return &cliError{code: exitUserError, err: err} }
func sysError(err error) error  { return &cliError{code: exitSysError, err: err} }

// exitCode maps an error returned by a command to a process exit code.
// Errors without a code (such as cobra's argument errors) are user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
