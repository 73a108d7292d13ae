package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// EnsureAllDataFiles creates every missing domain file with its default
// payload and returns the domains it created. Existing files are never
// modified, so calling it repeatedly is safe. A failure on one domain does
// not stop the others; all failures are joined into the returned error.
func EnsureAllDataFiles(cfg *StorageConfig) ([]Domain, error) {
	return ensureAllDataFiles(cfg, time.Now, slog.Default())
}

func ensureAllDataFiles(cfg *StorageConfig, now func() time.Time, logger *slog.Logger) ([]Domain, error) {
	var (
		created []Domain
		errs    []error
	)
	at := now()
	for _, f := range domainFiles {
		path := cfg.Path(f.domain)
		ok, err := createDocument(path, f.defaults(), at)
		if err != nil {
			errs = append(errs, fmt.Errorf("ensure %s: %w", f.domain, err))
			continue
		}
		if ok {
			logger.Info("created default data file", "domain", string(f.domain), "path", path)
			created = append(created, f.domain)
		}
	}
	return created, errors.Join(errs...)
}
