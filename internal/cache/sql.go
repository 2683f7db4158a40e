package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Dialect reúne las diferencias de SQL entre motores.
type Dialect struct {
	Name   string
	Driver string
	schema string
	get    string
	upsert string
}

var (
	MySQL = Dialect{
		Name:   "mysql",
		Driver: "mysql",
		schema: `
		CREATE TABLE IF NOT EXISTS source_cache (
			cache_key    CHAR(36)     NOT NULL,
			source       TEXT         NOT NULL,
			body         LONGBLOB     NOT NULL,
			content_type VARCHAR(255) NOT NULL,
			fetched_at   BIGINT       NOT NULL,
			expires_at   BIGINT       NOT NULL,
			PRIMARY KEY (cache_key),
			INDEX idx_expires (expires_at)
		);`,
		get: `SELECT cache_key, source, body, content_type, fetched_at, expires_at FROM source_cache WHERE cache_key = ?`,
		upsert: `
		INSERT INTO source_cache (cache_key, source, body, content_type, fetched_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			source       = VALUES(source),
			body         = VALUES(body),
			content_type = VALUES(content_type),
			fetched_at   = VALUES(fetched_at),
			expires_at   = VALUES(expires_at)`,
	}

	Postgres = Dialect{
		Name:   "postgres",
		Driver: "pgx",
		schema: `
		CREATE TABLE IF NOT EXISTS source_cache (
			cache_key    CHAR(36) PRIMARY KEY,
			source       TEXT     NOT NULL,
			body         BYTEA    NOT NULL,
			content_type TEXT     NOT NULL,
			fetched_at   BIGINT   NOT NULL,
			expires_at   BIGINT   NOT NULL
		);`,
		get: `SELECT cache_key, source, body, content_type, fetched_at, expires_at FROM source_cache WHERE cache_key = $1`,
		upsert: `
		INSERT INTO source_cache (cache_key, source, body, content_type, fetched_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (cache_key) DO UPDATE SET
			source       = EXCLUDED.source,
			body         = EXCLUDED.body,
			content_type = EXCLUDED.content_type,
			fetched_at   = EXCLUDED.fetched_at,
			expires_at   = EXCLUDED.expires_at`,
	}

	SQLite = Dialect{
		Name:   "sqlite",
		Driver: "sqlite",
		schema: `
		CREATE TABLE IF NOT EXISTS source_cache (
			cache_key    TEXT    PRIMARY KEY,
			source       TEXT    NOT NULL,
			body         BLOB    NOT NULL,
			content_type TEXT    NOT NULL,
			fetched_at   INTEGER NOT NULL,
			expires_at   INTEGER NOT NULL
		);`,
		get: `SELECT cache_key, source, body, content_type, fetched_at, expires_at FROM source_cache WHERE cache_key = ?`,
		upsert: `
		INSERT INTO source_cache (cache_key, source, body, content_type, fetched_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (cache_key) DO UPDATE SET
			source       = excluded.source,
			body         = excluded.body,
			content_type = excluded.content_type,
			fetched_at   = excluded.fetched_at,
			expires_at   = excluded.expires_at`,
	}
)

// DialectFor devuelve el dialecto por nombre de motor.
func DialectFor(name string) (Dialect, error) {
	switch name {
	case MySQL.Name:
		return MySQL, nil
	case Postgres.Name, "postgresql", "pgx":
		return Postgres, nil
	case SQLite.Name:
		return SQLite, nil
	}
	return Dialect{}, fmt.Errorf("motor de cache desconocido: %q", name)
}

// SQLStore guarda las entradas en la tabla source_cache.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQL abre la conexión, verifica con ping y crea la tabla si no existe.
func OpenSQL(ctx context.Context, d Dialect, dsn string, logger *zap.Logger) (*SQLStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("error conectando a %s: %w", d.Name, err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	if d.Driver == SQLite.Driver {
		// un solo escritor
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error haciendo ping a %s: %w", d.Name, err)
	}

	s := &SQLStore{db: db, dialect: d}
	if err := s.createTable(ctx); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("cache SQL lista", zap.String("motor", d.Name))
	return s, nil
}

func (s *SQLStore) createTable(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.schema); err != nil {
		return fmt.Errorf("error creando tabla source_cache: %w", err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, key string) (*Entry, error) {
	var (
		e                  Entry
		fetched, expiresAt int64
	)
	err := s.db.QueryRowContext(ctx, s.dialect.get, key).Scan(
		&e.Key, &e.Source, &e.Body, &e.ContentType, &fetched, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error consultando cache %s: %w", key, err)
	}
	e.FetchedAt = time.UnixMilli(fetched)
	e.ExpiresAt = time.UnixMilli(expiresAt)
	return &e, nil
}

func (s *SQLStore) Put(ctx context.Context, e *Entry) error {
	_, err := s.db.ExecContext(ctx, s.dialect.upsert,
		e.Key, e.Source, e.Body, e.ContentType, e.FetchedAt.UnixMilli(), e.ExpiresAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("error guardando cache %s: %w", e.Key, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// MySQLDSN arma el DSN con los mismos campos de conexión DB_*.
func MySQLDSN(host, port, user, password, database string) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=Local", user, password, host, port, database)
}
