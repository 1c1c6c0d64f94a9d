package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/polkiloo/expensetracker/internal/domain/repository"
	"github.com/polkiloo/expensetracker/internal/storage/postgres"
	"github.com/polkiloo/expensetracker/internal/storage/sqlite"
)

// ErrUnsupportedDSN is returned when no backend recognises the database URI.
var ErrUnsupportedDSN = errors.New("unsupported database uri")

const (
	backendPostgres = "postgres"
	backendSQLite   = "sqlite"
)

var (
	openPostgres = func(ctx context.Context, dsn string, logger *slog.Logger) (repository.Factory, error) {
		s, err := postgres.New(ctx, dsn, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	openSQLite = func(ctx context.Context, path string, logger *slog.Logger) (repository.Factory, error) {
		s, err := sqlite.New(ctx, path, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
)

// backendFor picks the storage backend for dsn and returns the value it should be opened with.
func backendFor(dsn string) (string, string, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return backendPostgres, dsn, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		path := strings.TrimPrefix(dsn, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("%w: empty sqlite path", ErrUnsupportedDSN)
		}
		return backendSQLite, path, nil
	case strings.HasPrefix(dsn, "file:"), dsn == ":memory:":
		return backendSQLite, dsn, nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, redact(dsn))
	}
}

// Open connects to the backend selected by dsn.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (repository.Factory, error) {
	backend, target, err := backendFor(dsn)
	if err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Info("opening storage", slog.String("backend", backend))
	}

	switch backend {
	case backendPostgres:
		return openPostgres(ctx, target, logger)
	default:
		return openSQLite(ctx, target, logger)
	}
}

// redact hides everything after the scheme so credentials never reach logs or errors.
func redact(dsn string) string {
	if i := strings.Index(dsn, "://"); i >= 0 {
		return dsn[:i+3] + "..."
	}
	if len(dsn) > 8 {
		return dsn[:8] + "..."
	}
	return dsn
}
