package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/PhelGc/maria/internal/analysis"
	"github.com/PhelGc/maria/internal/score"
)

const (
	maxPractices = 15
	maxHRText    = 1000
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	sectionStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f8c8d"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

// Text escribe el diagnóstico como tablas para la terminal, en el orden del
// panel: correlaciones, motivos, riesgo por área, Gestión Humana y conclusiones.
func Text(w io.Writer, b *analysis.Bundle, errs map[string]error) error {
	topN := b.Options.TopN
	if topN <= 0 {
		topN = analysis.DefaultTopN
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("MARIA · Diagnóstico de rotación") + "\n")
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("corrida %s · %s", b.RunID, b.GeneratedAt.Format("2006-01-02 15:04"))) + "\n")
	sb.WriteString(fmt.Sprintf("Filas: activos %d · egresos %d · gestión humana %d\n", b.Rows.Active, b.Rows.Leaver, b.Rows.HR))
	for _, name := range sortedNames(errs) {
		sb.WriteString(errorStyle.Render(fmt.Sprintf("Fuente %s no disponible: %v", name, errs[name])) + "\n")
	}

	section(&sb, "Drivers asociados a intención de salida (Pearson; negativo = protector, positivo = riesgo)")
	if len(b.Correlations) == 0 {
		info(&sb, "No se pudieron calcular correlaciones. Revisa columnas de drivers en la encuesta de activos.")
	} else {
		var rows [][]string
		for _, c := range b.Correlations[:min(topN, len(b.Correlations))] {
			mark := ""
			if c.LowConfidence {
				mark = "baja"
			}
			rows = append(rows, []string{c.Driver, fmt.Sprintf("%.3f", c.Coefficient), fmt.Sprint(c.Pairs), scaleLabel(c.Scale), mark})
		}
		sb.WriteString(grid([]string{"Driver", "r", "Pares", "Escala", "Confianza"}, rows) + "\n")
	}

	section(&sb, "Razones más mencionadas (activos + egresos)")
	if analysis.TotalMentions(b.Reasons) == 0 {
		info(&sb, "No se detectaron razones. Revisa campos de texto y motivo de salida.")
	} else {
		var rows [][]string
		for _, r := range b.Reasons[:min(topN, len(b.Reasons))] {
			rows = append(rows, []string{r.Category, fmt.Sprint(r.Mentions), fmt.Sprintf("%.1f%%", r.Share)})
		}
		sb.WriteString(grid([]string{"Categoría", "Menciones", "Peso"}, rows) + "\n")
	}

	section(&sb, fmt.Sprintf("Riesgo por área (mínimo %d respuestas)", b.Options.MinRespondents))
	if len(b.AreaRisk) == 0 {
		info(&sb, "No hay suficientes datos por área o faltan columnas clave (área, intención, eNPS/engagement).")
	} else {
		var rows [][]string
		for _, r := range b.AreaRisk {
			rows = append(rows, []string{r.Area, fmt.Sprint(r.N), fmt.Sprintf("%.3f", r.IntentMean), fmt.Sprintf("%.1f%%", r.RiskPct)})
		}
		sb.WriteString(grid([]string{"Área", "n", "Intención", "Riesgo"}, rows) + "\n")
	}

	section(&sb, "Gestión Humana: KPIs, causas y capacidades")
	writeHR(&sb, b.HR)

	section(&sb, "Conclusiones")
	for _, t := range b.Takeaways {
		sb.WriteString("- " + strings.ReplaceAll(t, "**", "") + "\n")
	}
	sb.WriteString("\n" + mutedStyle.Render("Contenido referencial; no reemplaza asesoría legal/SSO.") + "\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeHR(sb *strings.Builder, hr analysis.HRDashboard) {
	if len(hr.KPIs) > 0 {
		var rows [][]string
		for _, k := range hr.KPIs {
			rows = append(rows, []string{k.Name, number(k.Value)})
		}
		sb.WriteString(grid([]string{"KPI", "Valor"}, rows) + "\n")
	}
	if len(hr.Causes) > 0 {
		sb.WriteString("Causas de rotación (percepción HR)\n")
		sb.WriteString(grid([]string{"Causa", "% sí/de acuerdo"}, rateRows(hr.Causes, len(hr.Causes))) + "\n")
	}
	if len(hr.Practices) > 0 {
		sb.WriteString("Capacidades y prácticas (sí/efectivo)\n")
		sb.WriteString(grid([]string{"Práctica", "% sí/efectivo"}, rateRows(hr.Practices, maxPractices)) + "\n")
	}
	if hr.Text != "" {
		sb.WriteString(mutedStyle.Render(clip(hr.Text, maxHRText)) + "\n")
	}
}

func rateRows(rs []analysis.Rate, n int) [][]string {
	var rows [][]string
	for _, r := range rs[:min(n, len(rs))] {
		rows = append(rows, []string{r.Label, percent(r.Pct)})
	}
	return rows
}

func grid(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

func section(sb *strings.Builder, title string) {
	sb.WriteString(sectionStyle.Render(title) + "\n")
}

func info(sb *strings.Builder, msg string) {
	sb.WriteString(mutedStyle.Render(msg) + "\n")
}

func scaleLabel(k score.ScaleKind) string {
	if k == "" {
		return "n/d"
	}
	return string(k)
}

func number(v score.Value) string {
	f, ok := v.Get()
	if !ok {
		return "n/d"
	}
	return fmt.Sprintf("%.1f", f)
}

func percent(v score.Value) string {
	f, ok := v.Get()
	if !ok {
		return "n/d"
	}
	return fmt.Sprintf("%.1f%%", f)
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
