package analysis

import (
	"cmp"
	"slices"
	"strings"

	"github.com/PhelGc/maria/internal/mapping"
	"github.com/PhelGc/maria/internal/score"
	"github.com/PhelGc/maria/internal/table"
)

// Labeled asocia una clave canónica con su etiqueta en el tablero.
type Labeled struct {
	Key   string
	Label string
}

// Causas de rotación según la percepción de Gestión Humana.
var HRCauses = []Labeled{
	{"causa_compensacion", "Compensación"},
	{"causa_jefes", "Jefes/Liderazgo"},
	{"causa_sobrecarga", "Sobrecarga"},
	{"causa_proyeccion", "Falta de proyección"},
	{"causa_modalidad", "Modalidad trabajo"},
}

// Prácticas y efectividad de las palancas de retención.
var HRPractices = []Labeled{
	{"indicadores_rotacion", "Indicadores de rotación"},
	{"medimos_tiempo_cobertura", "Medimos tiempo de cobertura"},
	{"medimos_costo_reemplazo", "Medimos costo de reemplazo"},
	{"plan_retencion", "Plan de retención"},
	{"movilidad_interna", "Movilidad interna"},
	{"revision_salarial_anual", "Revisión salarial anual"},
	{"flexibilidad_laboral", "Flexibilidad laboral"},
	{"encuestas_clima", "Encuestas de clima"},
	{"usa_analitica", "Analítica de rotación"},
	{"sponsorship_alta_direccion", "Sponsorship Alta Dirección"},
	{"eff_ajuste_salarios", "Efectivo: ajuste salarios"},
	{"eff_liderazgo", "Efectivo: liderazgo"},
	{"eff_bienestar", "Efectivo: bienestar/SM"},
	{"eff_reconocimiento", "Efectivo: reconocimiento"},
	{"eff_capacitacion", "Efectivo: capacitación/carrera"},
}

// KPI es un indicador escalar; ausente si no hay dato.
type KPI struct {
	Name  string      `json:"indicador" yaml:"indicador"`
	Value score.Value `json:"valor" yaml:"valor"`
}

// Rate es el porcentaje de respuestas afirmativas de una pregunta.
type Rate struct {
	Label string      `json:"etiqueta" yaml:"etiqueta"`
	Pct   score.Value `json:"pct" yaml:"pct"`
}

// HRDashboard resume la encuesta de Gestión Humana.
type HRDashboard struct {
	KPIs      []KPI  `json:"kpis" yaml:"kpis"`
	Causes    []Rate `json:"causas" yaml:"causas"`
	Practices []Rate `json:"practicas" yaml:"practicas"`
	Text      string `json:"texto" yaml:"texto"`
}

// BuildHR calcula KPIs, causas, prácticas y el texto abierto de Gestión Humana.
// Los KPIs siempre se listan; causas y prácticas sin columna se omiten.
func BuildHR(t *table.Table, m mapping.Mapping) HRDashboard {
	num := func(key string) score.Value {
		raw, ok := column(t, m, key)
		if !ok {
			return score.Missing
		}
		mean, ok := score.Decimals(raw).Mean()
		if !ok {
			return score.Missing
		}
		return score.Resolved(mean)
	}

	hc := num(mapping.KeyHeadcount)
	rot := num(mapping.KeyRotation6m)
	hrHC := num(mapping.KeyHRHeadcount)
	vac := num(mapping.KeyMonthlyOpenings)
	ratio := score.Missing
	if hc.OK && hrHC.OK && hc.V > 0 {
		ratio = score.Resolved(hrHC.V / hc.V * 100)
	}

	return HRDashboard{
		KPIs: []KPI{
			{"Headcount", hc},
			{"Rotación 6m (%)", rot},
			{"Headcount HR", hrHC},
			{"Vacantes/mes", vac},
			{"% HR sobre total", ratio},
		},
		Causes:    rates(t, m, HRCauses),
		Practices: rates(t, m, HRPractices),
		Text:      hrText(t, m),
	}
}

// rates calcula el % de acuerdo de cada pregunta resuelta, de mayor a menor.
// Las preguntas sin respuestas clasificables quedan al final.
func rates(t *table.Table, m mapping.Mapping, items []Labeled) []Rate {
	var out []Rate
	for _, it := range items {
		raw, ok := column(t, m, it.Key)
		if !ok {
			continue
		}
		pct := score.Missing
		if mean, ok := score.Bool(raw).Mean(); ok {
			pct = score.Resolved(score.Round1(mean * 100))
		}
		out = append(out, Rate{Label: it.Label, Pct: pct})
	}
	slices.SortStableFunc(out, byPct(true))
	return out
}

// byPct ordena por porcentaje con los ausentes siempre al final.
func byPct(desc bool) func(a, b Rate) int {
	return func(a, b Rate) int {
		switch {
		case !a.Pct.OK && !b.Pct.OK:
			return 0
		case !a.Pct.OK:
			return 1
		case !b.Pct.OK:
			return -1
		}
		c := cmp.Compare(a.Pct.V, b.Pct.V)
		if desc {
			return -c
		}
		return c
	}
}

func hrText(t *table.Table, m mapping.Mapping) string {
	var parts []string
	join := func(key, prefix string) {
		raw, ok := column(t, m, key)
		if !ok {
			return
		}
		var cells []string
		for _, c := range raw {
			if c = strings.TrimSpace(c); c != "" {
				cells = append(cells, c)
			}
		}
		parts = append(parts, prefix+strings.Join(cells, "; "))
	}
	join(mapping.KeyHardProfiles, "Perfiles difíciles: ")
	join(mapping.KeyImmediateActions, "Acciones 6m sugeridas: ")
	return strings.Join(parts, " | ")
}

// weakest devuelve las etiquetas de las n prácticas con menor % de adopción.
func weakest(rs []Rate, n int) []string {
	sorted := slices.Clone(rs)
	slices.SortStableFunc(sorted, byPct(false))
	return labels(sorted, n)
}

func labels(rs []Rate, n int) []string {
	var out []string
	for i := 0; i < len(rs) && i < n; i++ {
		out = append(out, rs[i].Label)
	}
	return out
}
