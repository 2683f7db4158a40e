package analysis

import (
	"testing"

	"github.com/PhelGc/maria/internal/mapping"
	"github.com/PhelGc/maria/internal/score"
	"github.com/PhelGc/maria/internal/table"
)

// header devuelve la primera pista de la clave, que es el texto de la pregunta.
func header(set mapping.FieldSet, key string) string {
	for _, f := range append(append([]mapping.FieldSpec{}, set.Required...), set.Optional...) {
		if f.Key == key {
			return f.Hints[0]
		}
	}
	panic("clave desconocida: " + key)
}

// fixture arma una tabla y su mapeo a partir de claves canónicas.
func fixture(t *testing.T, set mapping.FieldSet, keys []string, rows ...[]string) (*table.Table, mapping.Mapping) {
	t.Helper()
	headers := make([]string, len(keys))
	for i, k := range keys {
		headers[i] = header(set, k)
	}
	tbl := table.New(set.Name, headers, rows)
	return tbl, mapping.Map(tbl.Headers, set, nil)
}

func floats(s score.Series) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = v.V
	}
	return out
}
