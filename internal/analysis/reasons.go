package analysis

import (
	"slices"
	"strings"

	"github.com/PhelGc/maria/internal/mapping"
	"github.com/PhelGc/maria/internal/table"
	"github.com/PhelGc/maria/internal/textnorm"
)

// Bucket es una categoría de motivo con sus raíces de búsqueda.
type Bucket struct {
	Name     string
	Keywords []string
}

// Buckets son las categorías fijas de motivos, en orden de presentación.
// Una palabra cuenta para una raíz cuando la contiene, así "salarios" o
// "compensaciones" también suman.
var Buckets = []Bucket{
	{"compensacion", []string{"salario", "pago", "compens", "sueldo", "bono"}},
	{"beneficios", []string{"beneficio", "prestacion", "eps", "auxilio", "bonificación"}},
	{"liderazgo", []string{"jefe", "lider", "manager", "trato", "feedback", "retroaliment", "reconocimiento"}},
	{"carrera", []string{"crecimiento", "desarrollo", "ascenso", "aprendizaje", "formacion", "proyeccion", "carrera"}},
	{"carga", []string{"carga", "horas", "turno", "estres", "estrés", "burnout", "sobre carga", "sobrecarga"}},
	{"flexibilidad", []string{"flexibilidad", "teletrabajo", "hibrido", "híbrido", "home office", "horario", "presencial", "remoto"}},
	{"ambiente", []string{"clima", "ambiente", "equipo", "cultura", "respeto", "inclusion", "inclusión", "seguridad"}},
	{"comunicacion", []string{"comunicacion", "comunicación", "transparencia", "informacion"}},
	{"herramientas", []string{"herramienta", "equipo", "recurso", "software"}},
	{"claridad_rol", []string{"claridad", "funciones", "objetivo", "rol"}},
	{"autonomia", []string{"autonomia", "autonomía", "decisiones"}},
	{"seleccion_ajuste", []string{"ajuste", "perfil", "seleccion", "selección", "sobrecali", "subcali"}},
}

// Campos abiertos que se consolidan en un solo texto por respondiente.
var (
	activeTextKeys = []string{mapping.KeyRatingReason, mapping.KeyPossibleReasons, mapping.KeyChangeToStay, mapping.KeyAdditionalComment}
	leaverTextKeys = []string{mapping.KeyOtherFactors, mapping.KeyRetentionFixes, mapping.KeyFinalSuggestion}
)

// ReasonCount son las menciones de una categoría y su peso sobre el total.
type ReasonCount struct {
	Category string  `json:"categoria" yaml:"categoria"`
	Mentions int     `json:"menciones" yaml:"menciones"`
	Share    float64 `json:"peso_relativo_pct" yaml:"peso_relativo_pct"`
}

// BucketizeText cuenta, por categoría, los pares (palabra, raíz) en que la
// raíz aparece dentro de la palabra.
func BucketizeText(text string) map[string]int {
	tokens := textnorm.Tokenize(text)
	counts := make(map[string]int, len(Buckets))
	for _, b := range Buckets {
		n := 0
		for _, tok := range tokens {
			for _, kw := range b.Keywords {
				if strings.Contains(tok, kw) {
					n++
				}
			}
		}
		counts[b.Name] = n
	}
	return counts
}

// ConsolidateText une, fila a fila, las columnas de texto resueltas con " | ".
// Sin columnas resueltas no hay texto.
func ConsolidateText(t *table.Table, m mapping.Mapping, keys ...string) []string {
	var cols [][]string
	for _, k := range keys {
		if raw, ok := column(t, m, k); ok {
			cols = append(cols, raw)
		}
	}
	if len(cols) == 0 {
		return nil
	}
	out := make([]string, t.Len())
	parts := make([]string, len(cols))
	for i := range out {
		for j, c := range cols {
			parts[j] = c[i]
		}
		out[i] = strings.Join(parts, " | ")
	}
	return out
}

// SummarizeReasons acumula las menciones del texto libre de activos y de
// egresos, más el motivo de salida estructurado. Siempre devuelve todas las
// categorías, ordenadas por menciones de mayor a menor.
func SummarizeReasons(active *table.Table, ma mapping.Mapping, leaver *table.Table, ml mapping.Mapping) []ReasonCount {
	totals := make(map[string]int, len(Buckets))
	add := func(texts []string) {
		for _, txt := range texts {
			for k, v := range BucketizeText(txt) {
				totals[k] += v
			}
		}
	}
	add(ConsolidateText(active, ma, activeTextKeys...))
	add(ConsolidateText(leaver, ml, leaverTextKeys...))
	if raw, ok := column(leaver, ml, mapping.KeyLeaveReason); ok {
		add(raw)
	}

	sum := 0
	for _, v := range totals {
		sum += v
	}
	out := make([]ReasonCount, len(Buckets))
	for i, b := range Buckets {
		out[i] = ReasonCount{
			Category: b.Name,
			Mentions: totals[b.Name],
			Share:    float64(totals[b.Name]) / float64(max(1, sum)) * 100,
		}
	}
	slices.SortStableFunc(out, func(a, b ReasonCount) int {
		return b.Mentions - a.Mentions
	})
	return out
}

// TotalMentions suma las menciones de todas las categorías.
func TotalMentions(rs []ReasonCount) int {
	n := 0
	for _, r := range rs {
		n += r.Mentions
	}
	return n
}
