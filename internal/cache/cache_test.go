package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntry(source string, body string, ttl time.Duration) *Entry {
	now := time.UnixMilli(time.Now().UnixMilli())
	return &Entry{
		Key:         Key(source),
		Source:      source,
		Body:        []byte(body),
		ContentType: "text/csv",
		FetchedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
}

func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	got, err := s.Get(ctx, Key("https://example.com/none.csv"))
	require.NoError(t, err)
	assert.Nil(t, got, "sin entrada devuelve nil sin error")

	e := newEntry("https://example.com/activos.csv", "a,b\n1,2\n", time.Hour)
	require.NoError(t, s.Put(ctx, e))

	got, err = s.Get(ctx, e.Key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, e.Source, got.Source)
	assert.Equal(t, e.Body, got.Body)
	assert.Equal(t, e.ContentType, got.ContentType)
	assert.True(t, e.FetchedAt.Equal(got.FetchedAt))
	assert.True(t, e.ExpiresAt.Equal(got.ExpiresAt))

	updated := newEntry(e.Source, "a,b\n3,4\n", 2*time.Hour)
	require.NoError(t, s.Put(ctx, updated))
	got, err = s.Get(ctx, e.Key)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n3,4\n", string(got.Body), "Put reemplaza la entrada existente")

	require.NoError(t, s.Close())
}

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	testStore(t, s)

	_, err := s.Get(context.Background(), "x")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestMemoryStoreCopiesEntries(t *testing.T) {
	s := NewMemory()
	e := newEntry("src", "body", time.Minute)
	require.NoError(t, s.Put(context.Background(), e))
	e.Source = "otra"

	got, err := s.Get(context.Background(), e.Key)
	require.NoError(t, err)
	assert.Equal(t, "src", got.Source)
}

func TestFileStore(t *testing.T) {
	s, err := NewFile(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	testStore(t, s)
}

func TestSQLiteStore(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "cache.db")
	s, err := OpenSQL(context.Background(), SQLite, dsn, nil)
	require.NoError(t, err)
	testStore(t, s)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(ctx, Options{Driver: "memory"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(ctx, Options{Driver: "file", Path: filepath.Join(dir, "files")}, nil)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = Open(ctx, Options{Driver: "sqlite", Path: filepath.Join(dir, "db")}, nil)
	require.NoError(t, err)
	assert.IsType(t, &SQLStore{}, s)
	assert.FileExists(t, filepath.Join(dir, "db", "cache.db"))
	require.NoError(t, s.Close())

	_, err = Open(ctx, Options{Driver: "postgres"}, nil)
	assert.ErrorContains(t, err, "CACHE_DSN")

	_, err = Open(ctx, Options{Driver: "redis"}, nil)
	assert.Error(t, err)
}

func TestDialectFor(t *testing.T) {
	for name, want := range map[string]string{"mysql": "mysql", "postgres": "pgx", "postgresql": "pgx", "sqlite": "sqlite"} {
		d, err := DialectFor(name)
		require.NoError(t, err)
		assert.Equal(t, want, d.Driver)
	}
}

func TestKeyIsStable(t *testing.T) {
	assert.Equal(t, Key("https://a"), Key("https://a"))
	assert.NotEqual(t, Key("https://a"), Key("https://b"))
	assert.Len(t, Key("https://a"), 36)
}

func TestEntryExpired(t *testing.T) {
	now := time.Now()
	e := &Entry{ExpiresAt: now}
	assert.True(t, e.Expired(now))
	assert.False(t, e.Expired(now.Add(-time.Second)))
}

func TestMySQLDSN(t *testing.T) {
	assert.Equal(t, "u:p@tcp(db:3306)/maria?parseTime=true&loc=Local", MySQLDSN("db", "3306", "u", "p", "maria"))
}
