// Package analysis arma el diagnóstico de rotación a partir de las tres
// encuestas ya mapeadas: intención de salida, correlación de drivers,
// motivos en texto libre, riesgo por área y capacidades de Gestión Humana.
//
// Todas las funciones son puras sobre sus tablas de entrada y nunca devuelven
// error: con datos insuficientes devuelven un resultado vacío.
package analysis

import (
	"github.com/PhelGc/maria/internal/mapping"
	"github.com/PhelGc/maria/internal/score"
	"github.com/PhelGc/maria/internal/table"
)

// column devuelve las celdas de la columna asignada a key, si existe en la tabla.
func column(t *table.Table, m mapping.Mapping, key string) ([]string, bool) {
	col, ok := m.Column(key)
	if !ok {
		return nil, false
	}
	return t.Column(col)
}

// Intent calcula la intención de salida (0..1) por respondiente con las
// señales disponibles: intención directa, búsqueda activa de empleo y
// preferencia por quedarse (invertida). Las filas sin señales valen 0.
func Intent(t *table.Table, m mapping.Mapping) score.Series {
	n := t.Len()
	var parts []score.Series
	if raw, ok := column(t, m, mapping.KeyIntent); ok {
		parts = append(parts, score.Agreement(raw, true))
	}
	if raw, ok := column(t, m, mapping.KeyIntentAux); ok {
		parts = append(parts, score.YesNo(raw, true))
	}
	if raw, ok := column(t, m, mapping.KeyStayPreference); ok {
		parts = append(parts, score.Agreement(raw, false))
	}
	if len(parts) == 0 {
		return score.Constant(n, 0)
	}
	return score.RowMean(n, 0, parts...)
}
