package journal

import (
	"context"
	"fmt"
	"log/slog"
)

// Store persists the full History. Save rewrites it wholesale so the on-disk
// state always matches memory after a successful call.
type Store interface {
	Load(ctx context.Context) ([]Operation, error)
	Save(ctx context.Context, ops []Operation) error
	Close() error
}

// OpenStore constructs the configured Store backend.
func OpenStore(backend, path string, logger *slog.Logger) (Store, error) {
	switch backend {
	case "", "json":
		return NewJSONStore(path, logger), nil
	case "sqlite":
		return OpenSQLiteStore(path)
	default:
		return nil, fmt.Errorf("history backend: unsupported value %q", backend)
	}
}
