package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PhelGc/maria/internal/mapping"
)

func kpi(d HRDashboard, name string) KPI {
	for _, k := range d.KPIs {
		if k.Name == name {
			return k
		}
	}
	return KPI{}
}

func TestBuildHR(t *testing.T) {
	tbl, m := fixture(t, mapping.HR,
		[]string{mapping.KeyTimestamp, mapping.KeyHeadcount, mapping.KeyHRHeadcount, mapping.KeyRotation6m,
			"causa_compensacion", "causa_jefes", "plan_retencion", "usa_analitica", "encuestas_clima",
			mapping.KeyHardProfiles, mapping.KeyImmediateActions},
		[]string{"t1", "200", "4", "12,5", "Totalmente de acuerdo", "En desacuerdo", "No", "Sí", "De acuerdo", "Ingenieros", "Plan de carrera"},
		[]string{"t2", "", "6", "7,5", "De acuerdo", "De acuerdo", "No aplica", "no", "n/a", "", "Revisión salarial"},
	)

	d := BuildHR(tbl, m)

	require.Len(t, d.KPIs, 5)
	assert.InDelta(t, 200.0, kpi(d, "Headcount").Value.V, 1e-9)
	assert.InDelta(t, 10.0, kpi(d, "Rotación 6m (%)").Value.V, 1e-9)
	assert.InDelta(t, 5.0, kpi(d, "Headcount HR").Value.V, 1e-9)
	assert.False(t, kpi(d, "Vacantes/mes").Value.OK)
	assert.InDelta(t, 2.5, kpi(d, "% HR sobre total").Value.V, 1e-9)

	require.Len(t, d.Causes, 2)
	assert.Equal(t, "Compensación", d.Causes[0].Label)
	assert.Equal(t, 100.0, d.Causes[0].Pct.V)
	assert.Equal(t, "Jefes/Liderazgo", d.Causes[1].Label)
	assert.Equal(t, 50.0, d.Causes[1].Pct.V)

	require.Len(t, d.Practices, 3)
	assert.Equal(t, "Encuestas de clima", d.Practices[0].Label)
	assert.Equal(t, 100.0, d.Practices[0].Pct.V)
	assert.Equal(t, "Analítica de rotación", d.Practices[1].Label)
	assert.Equal(t, 50.0, d.Practices[1].Pct.V)
	assert.Equal(t, "Plan de retención", d.Practices[2].Label)
	assert.Equal(t, 0.0, d.Practices[2].Pct.V)

	assert.Equal(t, "Perfiles difíciles: Ingenieros | Acciones 6m sugeridas: Plan de carrera; Revisión salarial", d.Text)
	assert.Equal(t, []string{"Plan de retención", "Analítica de rotación", "Encuestas de clima"}, weakest(d.Practices, 3))
}

func TestBuildHRRatioNeedsBothOperands(t *testing.T) {
	tbl, m := fixture(t, mapping.HR,
		[]string{mapping.KeyTimestamp, mapping.KeyHeadcount, mapping.KeyHRHeadcount},
		[]string{"t1", "0", "3"},
	)
	d := BuildHR(tbl, m)
	assert.False(t, kpi(d, "% HR sobre total").Value.OK, "headcount 0 no permite la razón")
}

func TestBuildHRMissingRatesGoLast(t *testing.T) {
	tbl, m := fixture(t, mapping.HR,
		[]string{mapping.KeyTimestamp, "movilidad_interna", "plan_retencion"},
		[]string{"t1", "quizá", "No"},
	)
	d := BuildHR(tbl, m)
	require.Len(t, d.Practices, 2)
	assert.Equal(t, "Plan de retención", d.Practices[0].Label)
	assert.False(t, d.Practices[1].Pct.OK)
	assert.Equal(t, []string{"Plan de retención", "Movilidad interna"}, weakest(d.Practices, 3))
}

func TestBuildHREmpty(t *testing.T) {
	d := BuildHR(nil, mapping.Map(nil, mapping.HR, nil))
	require.Len(t, d.KPIs, 5)
	for _, k := range d.KPIs {
		assert.False(t, k.Value.OK)
	}
	assert.Empty(t, d.Causes)
	assert.Empty(t, d.Practices)
	assert.Empty(t, d.Text)
}
