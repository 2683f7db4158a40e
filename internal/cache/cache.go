// Package cache guarda por un tiempo limitado el cuerpo crudo descargado de
// cada fuente, para no volver a pedir la misma exportación en cada corrida.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrClosed se devuelve al usar un almacén ya cerrado.
var ErrClosed = errors.New("cache cerrada")

// Entry es una descarga guardada con su vencimiento.
type Entry struct {
	Key         string    `json:"key"`
	Source      string    `json:"source"`
	Body        []byte    `json:"body"`
	ContentType string    `json:"content_type"`
	FetchedAt   time.Time `json:"fetched_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired indica si la entrada ya venció en el instante dado.
func (e *Entry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Store es un almacén clave -> entrada. Get devuelve (nil, nil) si no existe;
// el vencimiento lo decide quien lee.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Put(ctx context.Context, e *Entry) error
	Close() error
}

// Key deriva una clave estable de longitud fija a partir de la ubicación de la fuente.
func Key(source string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(source)).String()
}
