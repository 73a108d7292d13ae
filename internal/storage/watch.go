package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watch keeps the domain files present while the application runs. It
// watches the data and config directories and re-runs the ensure step when
// a domain file is removed or renamed away. Watch initializes the store if
// needed and blocks until ctx is done.
func (s *Store) Watch(ctx context.Context) error {
	cfg, err := s.Config()
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	for _, dir := range []string{cfg.DataDir(), cfg.ConfigDir()} {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	watched := make(map[string]Domain, len(domainFiles))
	for _, d := range Domains() {
		watched[cfg.Path(d)] = d
	}

	// Files removed between Init and the first Add would otherwise go unnoticed.
	s.heal(cfg, "")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if strings.HasPrefix(filepath.Base(event.Name), tempPrefix) {
				continue
			}
			d, ok := watched[filepath.Clean(event.Name)]
			if !ok {
				continue
			}
			s.heal(cfg, d)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watch error", "error", err)
		}
	}
}

func (s *Store) heal(cfg *StorageConfig, trigger Domain) {
	created, err := ensureAllDataFiles(cfg, s.opts.Now, s.logger)
	if err != nil {
		s.logger.Error("restore data files", "error", err)
	}
	if len(created) > 0 {
		s.logger.Warn("restored missing data files", "trigger", string(trigger), "restored", len(created))
	}
}
