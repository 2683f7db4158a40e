package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(t *testing.T, retries int) *HTTPFetcher {
	t.Helper()
	f := NewHTTPFetcher(FetchOptions{Timeout: 5 * time.Second, Retries: retries, Backoff: time.Millisecond}, nil)
	t.Cleanup(f.Close)
	return f
}

func TestFetchHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("a,b\n1,2\n"))
	}))
	defer srv.Close()

	body, ct, err := newTestFetcher(t, 0).Fetch(context.Background(), srv.URL+"/activos.csv")
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(body))
	assert.Equal(t, "text/csv", ct)
}

func TestFetchRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("a\n1\n"))
	}))
	defer srv.Close()

	body, _, err := newTestFetcher(t, 3).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "a\n1\n", string(body))
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, _, err := newTestFetcher(t, 3).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSource)
	assert.Equal(t, int32(1), calls.Load())

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, KindInvalid, fe.Kind)
	assert.Contains(t, err.Error(), "status 404")
}

func TestFetchGivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, _, err := newTestFetcher(t, 2).Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrInvalidSource)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("  \n"))
	}))
	defer srv.Close()

	_, _, err := newTestFetcher(t, 0).Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrEmptySource)
	assert.NotErrorIs(t, err, ErrInvalidSource)
}

func TestFetchRejectsHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html>login</html>"))
	}))
	defer srv.Close()

	_, _, err := newTestFetcher(t, 0).Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrInvalidSource)
	assert.ErrorContains(t, err, "HTML")
}

func TestFetchLocalFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "egresos.csv")
	require.NoError(t, os.WriteFile(path, []byte("motivo\nsalario\n"), 0644))
	f := newTestFetcher(t, 0)

	body, _, err := f.Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "motivo\nsalario\n", string(body))

	body, _, err = f.Fetch(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.NotEmpty(t, body)

	_, _, err = f.Fetch(context.Background(), filepath.Join(dir, "no-existe.csv"))
	assert.ErrorIs(t, err, ErrInvalidSource)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "vacio.csv"), nil, 0644))
	_, _, err = f.Fetch(context.Background(), filepath.Join(dir, "vacio.csv"))
	assert.ErrorIs(t, err, ErrEmptySource)

	_, _, err = f.Fetch(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidSource)
}

func TestFetchHonorsCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(FetchOptions{Retries: 5, Backoff: time.Hour}, nil)
	defer f.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, _, err := f.Fetch(ctx, srv.URL)
	assert.ErrorIs(t, err, ErrInvalidSource)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}
