package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PhelGc/maria/internal/mapping"
	"github.com/PhelGc/maria/internal/table"
)

const (
	DefaultMinRespondents = 10
	DefaultTopN           = 7
	takeawayItems         = 3
	contextItems          = 5
)

// NoDataTakeaway se muestra cuando ninguna sección produjo conclusiones.
const NoDataTakeaway = "No hay suficientes datos para inferir conclusiones. Verifica mapeo de columnas y calidad de respuestas."

// Inputs son las tres encuestas cargadas. Una tabla nil equivale a una
// fuente que no se pudo leer: sus secciones quedan vacías.
type Inputs struct {
	Active *table.Table
	Leaver *table.Table
	HR     *table.Table
}

// Options controla el filtrado para presentación.
type Options struct {
	MinRespondents int
	TopN           int
}

// DefaultOptions devuelve mínimo de 10 respuestas por área y top 7.
func DefaultOptions() Options {
	return Options{MinRespondents: DefaultMinRespondents, TopN: DefaultTopN}
}

// Columns guarda los encabezados de cada tabla.
type Columns struct {
	Active []string `json:"activos" yaml:"activos"`
	Leaver []string `json:"egresos" yaml:"egresos"`
	HR     []string `json:"gestion_humana" yaml:"gestion_humana"`
}

// Rows guarda el número de filas de cada tabla.
type Rows struct {
	Active int `json:"activos" yaml:"activos"`
	Leaver int `json:"egresos" yaml:"egresos"`
	HR     int `json:"gestion_humana" yaml:"gestion_humana"`
}

// Bundle es el resultado completo de una corrida.
type Bundle struct {
	RunID        string          `json:"run_id" yaml:"run_id"`
	GeneratedAt  time.Time       `json:"generado" yaml:"generado"`
	Options      Options         `json:"-" yaml:"-"`
	Columns      Columns         `json:"columnas" yaml:"columnas"`
	Rows         Rows            `json:"filas" yaml:"filas"`
	MapActive    mapping.Mapping `json:"mapeo_activos" yaml:"mapeo_activos"`
	MapLeaver    mapping.Mapping `json:"mapeo_egresos" yaml:"mapeo_egresos"`
	MapHR        mapping.Mapping `json:"mapeo_gestion_humana" yaml:"mapeo_gestion_humana"`
	Correlations []Correlation   `json:"correlaciones" yaml:"correlaciones"`
	Reasons      []ReasonCount   `json:"razones" yaml:"razones"`
	// AreaRisk ya viene filtrado por Options.MinRespondents.
	AreaRisk  []AreaRisk  `json:"riesgo_area" yaml:"riesgo_area"`
	HR        HRDashboard `json:"gestion_humana" yaml:"gestion_humana"`
	Takeaways []string    `json:"conclusiones" yaml:"conclusiones"`
}

// Run mapea las tres tablas y calcula todas las secciones del diagnóstico.
func Run(in Inputs, opts Options, logger *zap.Logger) *Bundle {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	if opts.MinRespondents < 0 {
		opts.MinRespondents = 0
	}

	b := &Bundle{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now(),
		Options:     opts,
		Columns:     Columns{headers(in.Active), headers(in.Leaver), headers(in.HR)},
		Rows:        Rows{in.Active.Len(), in.Leaver.Len(), in.HR.Len()},
	}
	log := logger.With(zap.String("run_id", b.RunID))

	b.MapActive = mapping.Map(b.Columns.Active, mapping.Active, log)
	b.MapLeaver = mapping.Map(b.Columns.Leaver, mapping.Leaver, log)
	b.MapHR = mapping.Map(b.Columns.HR, mapping.HR, log)

	b.Correlations = Correlate(in.Active, b.MapActive)
	b.Reasons = SummarizeReasons(in.Active, b.MapActive, in.Leaver, b.MapLeaver)
	allAreas := AreaRiskByArea(in.Active, b.MapActive)
	b.AreaRisk = FilterMinRespondents(allAreas, opts.MinRespondents)
	b.HR = BuildHR(in.HR, b.MapHR)
	b.Takeaways = Takeaways(b)

	log.Info("diagnóstico calculado",
		zap.Int("activos", b.Rows.Active),
		zap.Int("egresos", b.Rows.Leaver),
		zap.Int("gestion_humana", b.Rows.HR),
		zap.Int("drivers", len(b.Correlations)),
		zap.Int("menciones", TotalMentions(b.Reasons)),
		zap.Int("areas", len(allAreas)),
		zap.Int("areas_visibles", len(b.AreaRisk)))
	return b
}

func headers(t *table.Table) []string {
	if t == nil {
		return nil
	}
	return t.Headers
}

// Takeaways arma las conclusiones automáticas: drivers de riesgo y
// protectores, motivos, áreas críticas, causas según HR y brechas de
// capacidad. Sin ninguna sección con datos devuelve NoDataTakeaway.
func Takeaways(b *Bundle) []string {
	var items []string
	if n := len(b.Correlations); n > 0 {
		var worst, best []string
		for _, c := range b.Correlations[max(0, n-takeawayItems):] {
			worst = append(worst, c.Driver)
		}
		for _, c := range b.Correlations[:min(n, takeawayItems)] {
			best = append(best, c.Driver)
		}
		items = append(items,
			bullet("Drivers de mayor riesgo", worst),
			bullet("Drivers protectores", best))
	}
	if TotalMentions(b.Reasons) > 0 {
		var top []string
		for _, r := range b.Reasons[:min(len(b.Reasons), takeawayItems)] {
			top = append(top, r.Category)
		}
		items = append(items, bullet("Motivos más reportados", top))
	}
	if len(b.AreaRisk) > 0 {
		var top []string
		for _, r := range b.AreaRisk[:min(len(b.AreaRisk), takeawayItems)] {
			top = append(top, r.Area)
		}
		items = append(items, bullet("Áreas con mayor riesgo", top))
	}
	if len(b.HR.Causes) > 0 {
		items = append(items, bullet("Causas según HR", labels(b.HR.Causes, takeawayItems)))
	}
	if len(b.HR.Practices) > 0 {
		items = append(items, bullet("Brechas de capacidad en HR", weakest(b.HR.Practices, takeawayItems)))
	}
	if len(items) == 0 {
		items = append(items, NoDataTakeaway)
	}
	return items
}

func bullet(title string, names []string) string {
	return fmt.Sprintf("**%s**: %s", title, strings.Join(names, ", "))
}

// Context es el extracto del diagnóstico que acompaña cada pregunta al asesor.
type Context struct {
	ActiveCols []string        `json:"active_cols"`
	LeaverCols []string        `json:"leaver_cols"`
	HRCols     []string        `json:"hr_cols"`
	MapActive  mapping.Mapping `json:"m_active"`
	MapLeaver  mapping.Mapping `json:"m_leaver"`
	MapHR      mapping.Mapping `json:"m_hr"`
	CorrTop    []Correlation   `json:"corr_top"`
	ReasonsTop []ReasonCount   `json:"reasons_top"`
	RiskTop    []AreaRisk      `json:"risk_top"`
	Takeaways  []string        `json:"conclusiones"`
}

// BuildContext recorta el diagnóstico: los 5 drivers de mayor riesgo (cola
// de la lista ascendente), los 5 motivos y las 5 áreas más riesgosas.
func BuildContext(b *Bundle) Context {
	n := len(b.Correlations)
	return Context{
		ActiveCols: b.Columns.Active,
		LeaverCols: b.Columns.Leaver,
		HRCols:     b.Columns.HR,
		MapActive:  b.MapActive,
		MapLeaver:  b.MapLeaver,
		MapHR:      b.MapHR,
		CorrTop:    b.Correlations[max(0, n-contextItems):],
		ReasonsTop: b.Reasons[:min(len(b.Reasons), contextItems)],
		RiskTop:    b.AreaRisk[:min(len(b.AreaRisk), contextItems)],
		Takeaways:  b.Takeaways,
	}
}
