package analysis

import (
	"cmp"
	"slices"

	"github.com/PhelGc/maria/internal/mapping"
	"github.com/PhelGc/maria/internal/score"
	"github.com/PhelGc/maria/internal/table"
)

// Claves que identifican o segmentan al respondiente, o que ya forman la intención.
var nonDrivers = map[string]bool{
	mapping.KeyID:             true,
	mapping.KeyArea:           true,
	mapping.KeyRole:           true,
	mapping.KeyIntent:         true,
	mapping.KeyIntentAux:      true,
	mapping.KeyStayPreference: true,
}

// Correlation es la relación de un driver con la intención de salida.
// Negativo es protector, positivo es riesgo.
type Correlation struct {
	Driver        string          `json:"driver" yaml:"driver"`
	Coefficient   float64         `json:"correlacion_intencion" yaml:"correlacion_intencion"`
	Pairs         int             `json:"pares" yaml:"pares"`
	Scale         score.ScaleKind `json:"escala" yaml:"escala"`
	LowConfidence bool            `json:"baja_confianza" yaml:"baja_confianza"`
}

// Correlate correlaciona cada driver mapeado (llevado a 0..100) con la
// intención, usando sólo pares completos. Los drivers sin coeficiente
// (menos de dos pares o sin varianza) se omiten. El resultado queda en orden
// ascendente: protectores primero, riesgo al final.
func Correlate(t *table.Table, m mapping.Mapping) []Correlation {
	intent := Intent(t, m)
	var out []Correlation
	for _, key := range m.Keys() {
		if nonDrivers[key] {
			continue
		}
		raw, ok := column(t, m, key)
		if !ok {
			continue
		}
		x, sc := score.Normalize100(raw)
		r, pairs, ok := score.Pearson(x, intent)
		if !ok {
			continue
		}
		out = append(out, Correlation{
			Driver:        key,
			Coefficient:   r,
			Pairs:         pairs,
			Scale:         sc.Kind,
			LowConfidence: sc.LowConfidence,
		})
	}
	slices.SortStableFunc(out, func(a, b Correlation) int {
		return cmp.Compare(a.Coefficient, b.Coefficient)
	})
	return out
}
