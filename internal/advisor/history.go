package advisor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Role es el autor de un turno de conversación.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn es un mensaje previo de la conversación.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// LoadHistory lee el historial desde un archivo JSON. Si el archivo no
// existe la conversación empieza vacía.
func LoadHistory(path string) ([]Turn, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error leyendo historial: %w", err)
	}
	var turns []Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		return nil, fmt.Errorf("historial inválido (%s): %w", path, err)
	}
	return turns, nil
}

// SaveHistory escribe el historial completo, creando el directorio si hace falta.
func SaveHistory(path string, turns []Turn) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creando directorio de historial: %w", err)
		}
	}
	data, err := json.MarshalIndent(turns, "", "  ")
	if err != nil {
		return fmt.Errorf("error serializando historial: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
