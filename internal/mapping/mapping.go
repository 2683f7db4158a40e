// Package mapping resuelve, para cada tabla, qué columna real corresponde a
// cada campo canónico, usando listas ordenadas de pistas sobre encabezados
// que el sistema no controla.
package mapping

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/PhelGc/maria/internal/textnorm"
)

// FieldSpec es un campo canónico con sus pistas en orden de prioridad.
type FieldSpec struct {
	Key   string
	Hints []string
}

// FieldSet agrupa los campos de una encuesta. Los requeridos siempre se
// resuelven (con la primera columna como último recurso); los opcionales
// pueden quedar sin columna.
type FieldSet struct {
	Name     string
	Required []FieldSpec
	Optional []FieldSpec
}

// Keys devuelve las claves del conjunto: primero requeridas, luego opcionales.
func (s FieldSet) Keys() []string {
	keys := make([]string, 0, len(s.Required)+len(s.Optional))
	for _, f := range s.Required {
		keys = append(keys, f.Key)
	}
	for _, f := range s.Optional {
		keys = append(keys, f.Key)
	}
	return keys
}

// Mapping asocia cada clave canónica con una columna real o con ninguna.
type Mapping struct {
	Table     string
	keys      []string
	columns   map[string]string
	fallbacks map[string]bool
}

// Column devuelve la columna asignada a la clave, si existe.
func (m Mapping) Column(key string) (string, bool) {
	col, ok := m.columns[key]
	return col, ok && col != ""
}

// Keys devuelve todas las claves del conjunto de origen, en su orden.
func (m Mapping) Keys() []string {
	return m.keys
}

// Fallback indica si la clave requerida cayó en la primera columna por no
// encontrar ninguna pista.
func (m Mapping) Fallback(key string) bool {
	return m.fallbacks[key]
}

// Resolved cuenta las claves con columna asignada.
func (m Mapping) Resolved() int {
	n := 0
	for _, k := range m.keys {
		if _, ok := m.Column(k); ok {
			n++
		}
	}
	return n
}

// MarshalJSON serializa como objeto clave -> columna (null si no se resolvió).
func (m Mapping) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.asMap())
}

// MarshalYAML usa la misma forma que MarshalJSON.
func (m Mapping) MarshalYAML() (any, error) {
	return m.asMap(), nil
}

func (m Mapping) asMap() map[string]*string {
	out := make(map[string]*string, len(m.keys))
	for _, k := range m.keys {
		if col, ok := m.Column(k); ok {
			out[k] = &col
		} else {
			out[k] = nil
		}
	}
	return out
}

// Guess devuelve el encabezado que coincide con la primera pista posible.
// Si dos encabezados comparten forma canónica gana el último.
func Guess(headers []string, hints []string) (string, bool) {
	return guess(index(headers), hints)
}

// Map resuelve todas las claves de un conjunto contra los encabezados de una tabla.
// Varias claves pueden terminar en la misma columna; no se detectan colisiones.
func Map(headers []string, set FieldSet, logger *zap.Logger) Mapping {
	if logger == nil {
		logger = zap.NewNop()
	}
	lookup := index(headers)
	m := Mapping{
		Table:     set.Name,
		keys:      set.Keys(),
		columns:   make(map[string]string, len(set.Required)+len(set.Optional)),
		fallbacks: make(map[string]bool),
	}

	for _, f := range set.Required {
		col, ok := guess(lookup, f.Hints)
		if !ok && len(headers) > 0 {
			col = headers[0]
			m.fallbacks[f.Key] = true
			logger.Warn("campo requerido sin coincidencia, se usa la primera columna",
				zap.String("tabla", set.Name),
				zap.String("campo", f.Key),
				zap.String("columna", col))
		}
		m.columns[f.Key] = col
	}
	for _, f := range set.Optional {
		col, _ := guess(lookup, f.Hints)
		m.columns[f.Key] = col
	}

	logger.Debug("mapeo de columnas resuelto",
		zap.String("tabla", set.Name),
		zap.Int("resueltas", m.Resolved()),
		zap.Int("total", len(m.keys)))
	return m
}

func index(headers []string) map[string]string {
	lookup := make(map[string]string, len(headers))
	for _, h := range headers {
		lookup[textnorm.Slug(h)] = h
	}
	return lookup
}

func guess(lookup map[string]string, hints []string) (string, bool) {
	for _, h := range hints {
		if col, ok := lookup[textnorm.Slug(h)]; ok {
			return col, true
		}
	}
	return "", false
}
