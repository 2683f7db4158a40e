package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Options elige y configura el almacén.
type Options struct {
	Driver string // memory, file, mysql, postgres, sqlite
	Path   string // directorio para file; para sqlite sin DSN se usa Path/cache.db
	DSN    string
}

// Open construye el almacén indicado por opts.Driver.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (Store, error) {
	switch opts.Driver {
	case "", "memory":
		return NewMemory(), nil
	case "file":
		return NewFile(opts.Path)
	}

	d, err := DialectFor(opts.Driver)
	if err != nil {
		return nil, err
	}
	dsn := opts.DSN
	if dsn == "" && d.Driver == SQLite.Driver {
		if err := os.MkdirAll(opts.Path, 0755); err != nil {
			return nil, fmt.Errorf("error creando directorio de cache: %w", err)
		}
		dsn = filepath.Join(opts.Path, "cache.db")
	}
	if dsn == "" {
		return nil, fmt.Errorf("falta CACHE_DSN para la cache %s", d.Name)
	}
	return OpenSQL(ctx, d, dsn, logger)
}
