package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore guarda cada entrada como un archivo JSON dentro de un directorio.
type FileStore struct {
	basePath string
}

// NewFile crea el directorio base si no existe.
func NewFile(basePath string) (*FileStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("error creando directorio de cache: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

func (s *FileStore) Get(_ context.Context, key string) (*Entry, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error leyendo cache %s: %w", key, err)
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("error deserializando cache %s: %w", key, err)
	}
	return &e, nil
}

// Put escribe primero a un temporal y luego renombra, para que un lector
// concurrente nunca vea un archivo a medias.
func (s *FileStore) Put(_ context.Context, e *Entry) error {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("error serializando cache: %w", err)
	}

	tmp, err := os.CreateTemp(s.basePath, "entry-*.tmp")
	if err != nil {
		return fmt.Errorf("error creando temporal de cache: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("error escribiendo cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error cerrando cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(e.Key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error guardando cache: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// path usa la clave tal cual: Key ya produce un nombre seguro para archivo.
func (s *FileStore) path(key string) string {
	return filepath.Join(s.basePath, filepath.Base(key)+".json")
}
