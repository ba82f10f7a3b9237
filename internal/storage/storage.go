package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/frahmantamala/talent-intake/internal"
)

// ObjectStorage keeps uploaded originals. Put returns the location that is
// recorded next to the extracted row.
type ObjectStorage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

// Pinger is implemented by backends that can report readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// New builds the backend selected by cfg.Driver.
func New(ctx context.Context, cfg internal.StorageConfig) (ObjectStorage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStorage(cfg.LocalRoot), nil
	case "minio":
		m, err := NewMinioStorage(cfg.Minio)
		if err != nil {
			return nil, err
		}
		if err := m.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("ensure bucket %q: %w", m.Bucket(), err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
