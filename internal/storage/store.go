package storage

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/en-o/codeshelf/pkg/types"
)

// Options configures a Store.
type Options struct {
	DataDir   string
	ConfigDir string

	// Locator finds the previous install. Nil means a fresh install.
	Locator LegacyLocator

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// Store is the application-scoped handle on the data directories. Build one
// per process with New and share it; the zero value is not usable.
//
// A Store moves from uninitialized to initialized exactly once. Init holds
// the lock for the whole initialization, so concurrent first callers run
// the migration at most once and later callers get the cached outcome.
type Store struct {
	opts   Options
	logger *slog.Logger

	mu     sync.Mutex
	config *StorageConfig
	result *types.MigrationResult
}

// New returns an uninitialized Store.
func New(opts Options) *Store {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		opts:   opts,
		logger: opts.Logger.With("component", "storage"),
	}
}

// Init initializes the store on first call and returns the migration
// result. Later calls return the cached result without touching the disk.
//
// A non-nil error reports a hard failure; the returned result still
// describes everything that was attempted. Nothing is cached on failure, so
// the next call tries again.
func (s *Store) Init() (types.MigrationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config != nil {
		return s.result.Clone(), nil
	}

	logger := s.logger.With("run", newRunID())
	cfg, err := NewStorageConfig(s.opts.DataDir, s.opts.ConfigDir)
	if err != nil {
		return types.MigrationResult{Errors: []string{err.Error()}}, err
	}
	logger.Info("initializing storage", "data_dir", cfg.DataDir(), "config_dir", cfg.ConfigDir())

	m := NewMigrator(s.opts.Locator, WithLogger(logger), WithClock(s.opts.Now))
	result, err := m.Run(cfg)
	if err != nil {
		logger.Error("storage initialization failed", "error", err)
		return result, err
	}

	s.config = cfg
	s.result = &result
	logger.Info("storage initialized", "success", result.Success, "migrated", len(result.MigratedItems))
	return result.Clone(), nil
}

// Config returns the store's config, initializing the store first if no
// caller has yet.
func (s *Store) Config() (*StorageConfig, error) {
	s.mu.Lock()
	cfg := s.config
	s.mu.Unlock()
	if cfg != nil {
		return cfg, nil
	}
	if _, err := s.Init(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config, nil
}

// LastMigrationResult returns the result cached by Init. It reports false
// before the store has been initialized.
func (s *Store) LastMigrationResult() (types.MigrationResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return types.MigrationResult{}, false
	}
	return s.result.Clone(), true
}

// newRunID tags the log lines of one initialization.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
