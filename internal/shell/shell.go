// Package shell hands paths and URLs to the desktop: editors, terminal
// emulators, the default URL handler. It keeps no state and does not touch
// the store.
package shell

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/en-o/codeshelf/pkg/types"
)

// DefaultEditor is used when no editor command is given.
const DefaultEditor = "code"

var (
	// ErrNoTerminal is returned when no known terminal emulator could be started.
	ErrNoTerminal = errors.New("no terminal emulator available")

	// ErrReadmeNotFound is returned when a directory has no README.
	ErrReadmeNotFound = errors.New("README file not found")
)

// linuxTerminals are tried in order until one starts.
var linuxTerminals = []string{"gnome-terminal", "konsole", "xterm", "xfce4-terminal"}

// readmeNames are tried in order.
var readmeNames = []string{"README.md", "readme.md", "Readme.md", "README.MD", "README", "readme"}

// Starter starts a detached process. dir is the working directory; "" keeps
// the caller's.
type Starter interface {
	Start(name string, args []string, dir string) error
}

// ExecStarter starts processes with os/exec and does not wait for them.
type ExecStarter struct{}

// Start implements Starter.
func (ExecStarter) Start(name string, args []string, dir string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// Opener launches desktop programs for one operating system.
type Opener struct {
	goos    string
	starter Starter
	logger  *slog.Logger
}

// NewOpener returns an Opener for the running OS. A nil starter uses
// ExecStarter; a nil logger uses slog.Default().
func NewOpener(starter Starter, logger *slog.Logger) *Opener {
	return newOpener(runtime.GOOS, starter, logger)
}

func newOpener(goos string, starter Starter, logger *slog.Logger) *Opener {
	if starter == nil {
		starter = ExecStarter{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{goos: goos, starter: starter, logger: logger}
}

// OpenInEditor opens path with the editor command, DefaultEditor when empty.
func (o *Opener) OpenInEditor(path, editor string) error {
	if editor == "" {
		editor = DefaultEditor
	}
	if err := o.starter.Start(editor, []string{path}, ""); err != nil {
		return fmt.Errorf("open %s in %s: %w", path, editor, err)
	}
	return nil
}

// OpenInTerminal opens a terminal in path using the preference stored in
// terminal.json. A custom terminal is started with path as its working
// directory.
func (o *Opener) OpenInTerminal(path string, pref types.TerminalData) error {
	if pref.Type == types.TerminalCustom && pref.CustomPath != "" {
		if err := o.starter.Start(pref.CustomPath, nil, path); err != nil {
			return fmt.Errorf("start terminal %s: %w", pref.CustomPath, err)
		}
		return nil
	}

	switch o.goos {
	case "windows":
		args := []string{"/c", "start", "cmd", "/k", "cd /d " + path}
		if pref.Type == types.TerminalPowerShell {
			args = []string{"/c", "start", "powershell", "-NoExit", "-Command", "Set-Location -LiteralPath '" + path + "'"}
		}
		return o.start("cmd", args, "")
	case "darwin":
		app := "Terminal"
		if pref.Type == types.TerminalITerm {
			app = "iTerm"
		}
		return o.start("open", []string{"-a", app, path}, "")
	default:
		for _, term := range linuxTerminals {
			var err error
			if term == "gnome-terminal" {
				err = o.starter.Start(term, []string{"--working-directory", path}, "")
			} else {
				err = o.starter.Start(term, nil, path)
			}
			if err == nil {
				return nil
			}
			o.logger.Debug("terminal not started", "terminal", term, "error", err)
		}
		return ErrNoTerminal
	}
}

// OpenURL opens url with the platform's default handler.
func (o *Opener) OpenURL(url string) error {
	switch o.goos {
	case "windows":
		return o.start("cmd", []string{"/c", "start", url}, "")
	case "darwin":
		return o.start("open", []string{url}, "")
	default:
		return o.start("xdg-open", []string{url}, "")
	}
}

func (o *Opener) start(name string, args []string, dir string) error {
	if err := o.starter.Start(name, args, dir); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	return nil
}

// ReadReadme returns the contents of the first README variant found in dir.
func ReadReadme(dir string) (string, error) {
	for _, name := range readmeNames {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return string(b), nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("read %s: %w", name, err)
		}
	}
	return "", fmt.Errorf("%s: %w", dir, ErrReadmeNotFound)
}
