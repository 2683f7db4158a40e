// Package report presenta el diagnóstico en la terminal: tablas de texto,
// JSON, YAML y respuestas del asesor en markdown.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/PhelGc/maria/internal/analysis"
)

// Format es el formato de salida de `maria analizar`.
type Format string

const (
	FormatText Format = "texto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat acepta texto, json o yaml (sin distinguir mayúsculas).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("formato desconocido %q (usa texto, json o yaml)", s)
	}
}

// Document es lo que se serializa en json/yaml: el diagnóstico más los
// errores de las fuentes que no cargaron.
type Document struct {
	analysis.Bundle `yaml:",inline"`
	SourceErrors    map[string]string `json:"errores_fuentes,omitempty" yaml:"errores_fuentes,omitempty"`
}

// NewDocument copia el diagnóstico y pasa los errores a texto.
func NewDocument(b *analysis.Bundle, errs map[string]error) Document {
	doc := Document{Bundle: *b}
	if len(errs) > 0 {
		doc.SourceErrors = make(map[string]string, len(errs))
		for name, err := range errs {
			doc.SourceErrors[name] = err.Error()
		}
	}
	return doc
}

// Write escribe el diagnóstico en el formato pedido.
func Write(w io.Writer, f Format, b *analysis.Bundle, errs map[string]error) error {
	switch f {
	case FormatJSON:
		return JSON(w, b, errs)
	case FormatYAML:
		return YAML(w, b, errs)
	default:
		return Text(w, b, errs)
	}
}

func sortedNames(errs map[string]error) []string {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
