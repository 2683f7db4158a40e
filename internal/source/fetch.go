package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Fetcher obtiene el cuerpo crudo de una ubicación.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) (body []byte, contentType string, err error)
}

// FetchOptions controla tiempos y reintentos de las descargas.
type FetchOptions struct {
	Timeout time.Duration
	Retries int
	Backoff time.Duration
}

// HTTPFetcher descarga por HTTP(S) con reintentos y lee rutas locales o file://.
type HTTPFetcher struct {
	httpClient *http.Client
	retries    int
	backoff    time.Duration
	logger     *zap.Logger
}

// NewHTTPFetcher crea el cliente con su propio transporte.
func NewHTTPFetcher(opts FetchOptions, logger *zap.Logger) *HTTPFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &HTTPFetcher{
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		},
		retries: max(0, opts.Retries),
		backoff: opts.Backoff,
		logger:  logger,
	}
}

// Close libera las conexiones inactivas.
func (f *HTTPFetcher) Close() {
	f.httpClient.CloseIdleConnections()
}

// Fetch lee la ubicación. Los enlaces de Google Sheets se normalizan a su
// exportación CSV antes de pedirlos.
func (f *HTTPFetcher) Fetch(ctx context.Context, locator string) ([]byte, string, error) {
	loc := strings.TrimSpace(locator)
	if loc == "" {
		return nil, "", invalid(locator, errors.New("ubicación vacía"))
	}

	u, err := url.Parse(loc)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return f.readFile(loc)
	}
	return f.get(ctx, NormalizeExportURL(loc, "csv"))
}

func (f *HTTPFetcher) readFile(loc string) ([]byte, string, error) {
	path := strings.TrimPrefix(loc, "file://")
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, "", invalid(loc, fmt.Errorf("error leyendo archivo: %w", err))
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, "", empty(loc, errors.New("archivo vacío"))
	}
	return body, "", nil
}

func (f *HTTPFetcher) get(ctx context.Context, target string) ([]byte, string, error) {
	var lastErr error
	for attempt := 0; attempt <= f.retries; attempt++ {
		if attempt > 0 {
			wait := f.backoff << (attempt - 1)
			f.logger.Warn("reintentando descarga",
				zap.String("url", target),
				zap.Int("intento", attempt+1),
				zap.Duration("espera", wait),
				zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return nil, "", invalid(target, ctx.Err())
			case <-time.After(wait):
			}
		}

		body, contentType, retry, err := f.once(ctx, target)
		if err == nil {
			if len(bytes.TrimSpace(body)) == 0 {
				return nil, "", empty(target, errors.New("respuesta vacía"))
			}
			f.logger.Debug("fuente descargada",
				zap.String("url", target),
				zap.Int("bytes", len(body)),
				zap.Int("intento", attempt+1))
			return body, contentType, nil
		}
		lastErr = err
		if !retry {
			break
		}
	}
	return nil, "", invalid(target, lastErr)
}

// once hace un GET. retry indica si el fallo es transitorio (red, 429, 5xx).
func (f *HTTPFetcher) once(ctx context.Context, target string) (body []byte, contentType string, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, "", false, fmt.Errorf("error creando request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, application/vnd.openxmlformats-officedocument.spreadsheetml.sheet, */*")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, "", ctx.Err() == nil, fmt.Errorf("error haciendo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		transient := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, "", transient, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	contentType = resp.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "text/html") {
		return nil, "", false, errors.New("la URL devolvió una página HTML; verifica que la hoja esté publicada")
	}
	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", ctx.Err() == nil, fmt.Errorf("error leyendo response: %w", err)
	}
	return body, contentType, false, nil
}
