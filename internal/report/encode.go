package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/PhelGc/maria/internal/analysis"
)

// JSON escribe el diagnóstico indentado.
func JSON(w io.Writer, b *analysis.Bundle, errs map[string]error) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(b, errs)); err != nil {
		return fmt.Errorf("error serializando JSON: %w", err)
	}
	return nil
}

// YAML escribe el diagnóstico con las mismas claves que JSON.
func YAML(w io.Writer, b *analysis.Bundle, errs map[string]error) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(b, errs)); err != nil {
		return fmt.Errorf("error serializando YAML: %w", err)
	}
	return enc.Close()
}
