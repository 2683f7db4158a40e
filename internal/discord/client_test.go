package discord

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PhelGc/maria/internal/analysis"
)

func TestBuildDiagnosisEmbed(t *testing.T) {
	b := &analysis.Bundle{
		RunID:     "run-1",
		Rows:      analysis.Rows{Active: 120, Leaver: 14, HR: 3},
		AreaRisk:  []analysis.AreaRisk{{Area: "Ventas", N: 22, RiskPct: 61.3}},
		Takeaways: []string{"**Drivers de mayor riesgo**: carga_laboral", "**Áreas con mayor riesgo**: Ventas"},
	}
	now := time.Date(2025, 5, 2, 8, 0, 0, 0, time.UTC)

	e := buildDiagnosisEmbed(b, map[string]error{"egresos": errors.New("status 404")}, now)

	assert.Equal(t, "Diagnóstico de rotación", e.Title)
	assert.Equal(t, 0xE74C3C, e.Color)
	assert.Equal(t, "- **Drivers de mayor riesgo**: carga_laboral\n- **Áreas con mayor riesgo**: Ventas\n", e.Description)
	assert.Equal(t, "2025-05-02T08:00:00Z", e.Timestamp)
	assert.True(t, strings.HasSuffix(e.Footer.Text, "run-1"))

	require.Len(t, e.Fields, 5)
	assert.Equal(t, "120", e.Fields[0].Value)
	assert.Equal(t, "Ventas: 61.3% (n=22)", e.Fields[3].Value)
	assert.Equal(t, "egresos: status 404", e.Fields[4].Value)
}

func TestBuildDiagnosisEmbedWithoutData(t *testing.T) {
	b := &analysis.Bundle{Takeaways: []string{analysis.NoDataTakeaway}}
	e := buildDiagnosisEmbed(b, nil, time.Now())
	assert.Equal(t, 0x95A5A6, e.Color)
	assert.Len(t, e.Fields, 3)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "áé…", truncate("áéíóú", 3))
}

func TestNewClientRequiresChannel(t *testing.T) {
	_, err := NewClient(&Config{BotToken: "x"})
	assert.Error(t, err)
}
