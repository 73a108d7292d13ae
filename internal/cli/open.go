package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/en-o/codeshelf/internal/shell"
	"github.com/en-o/codeshelf/internal/storage"
	"github.com/en-o/codeshelf/pkg/types"
)

func newOpenCmd(a *app) *cobra.Command {
	open := &cobra.Command{
		Use:   "open",
		Short: "Open a project in an editor or terminal, or open a URL",
	}

	var editor string
	editorCmd := &cobra.Command{
		Use:   "editor <path>",
		Short: "Open a path in the preferred editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if editor == "" {
				editor = a.preferredEditor()
			}
			if err := a.opener.OpenInEditor(args[0], editor); err != nil {
				return userError(err)
			}
			return nil
		},
	}
	editorCmd.Flags().StringVar(&editor, "editor", "", "editor command (default: editors.json, then "+shell.DefaultEditor+")")

	terminalCmd := &cobra.Command{
		Use:   "terminal <path>",
		Short: "Open a terminal in a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.opener.OpenInTerminal(args[0], a.preferredTerminal()); err != nil {
				return userError(err)
			}
			return nil
		},
	}

	urlCmd := &cobra.Command{
		Use:   "url <url>",
		Short: "Open a URL with the default handler",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.opener.OpenURL(args[0]); err != nil {
				return userError(err)
			}
			return nil
		},
	}

	open.AddCommand(editorCmd, terminalCmd, urlCmd)
	return open
}

func newReadmeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "readme <dir>",
		Short: "Print the README of a project directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := shell.ReadReadme(args[0])
			if errors.Is(err, shell.ErrReadmeNotFound) {
				return userError(err)
			}
			if err != nil {
				return sysError(err)
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"content": content})
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), content)
			return err
		},
	}
}

// preferredEditor returns the default editor registered in editors.json, or
// "" to use the built-in default.
func (a *app) preferredEditor() string {
	cfg, err := a.store.Config()
	if err != nil {
		a.logger.Warn("storage unavailable, using default editor", "error", err)
		return ""
	}
	doc, err := storage.ReadDocument[types.EditorsData](cfg.EditorsFile())
	if err != nil {
		a.logger.Warn("editors.json unreadable, using default editor", "error", err)
		return ""
	}
	return doc.Data.DefaultEditor()
}

// preferredTerminal returns the terminal settings of terminal.json, or the
// platform default.
func (a *app) preferredTerminal() types.TerminalData {
	fallback := types.TerminalData{Type: types.TerminalDefault}
	cfg, err := a.store.Config()
	if err != nil {
		a.logger.Warn("storage unavailable, using default terminal", "error", err)
		return fallback
	}
	doc, err := storage.ReadDocument[types.TerminalData](cfg.TerminalFile())
	if err != nil {
		a.logger.Warn("terminal.json unreadable, using default terminal", "error", err)
		return fallback
	}
	return doc.Data
}
