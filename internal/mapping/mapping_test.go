package mapping

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGuessIsCaseAndAccentInsensitive(t *testing.T) {
	col, ok := Guess([]string{"Nombre", "Área", "Cargo"}, []string{"area"})
	require.True(t, ok)
	assert.Equal(t, "Área", col)
}

func TestGuessEarlierHintWins(t *testing.T) {
	headers := []string{"departamento", "¿En qué área trabajas?"}
	col, ok := Guess(headers, Active.Required[1].Hints)
	require.True(t, ok)
	assert.Equal(t, "¿En qué área trabajas?", col)
}

func TestGuessDuplicateCanonicalHeadersLastWins(t *testing.T) {
	col, ok := Guess([]string{"Área", "AREA"}, []string{"area"})
	require.True(t, ok)
	assert.Equal(t, "AREA", col)
}

func TestMapResolvesRequiredAndOptional(t *testing.T) {
	headers := []string{
		"Marca temporal",
		"¿En qué área trabajas?",
		"Cargo",
		"Estoy pensando en dejar la empresa en los próximos 12 meses.",
		"Mi jefe me apoya y me respeta",
	}
	m := Map(headers, Active, nil)

	got := map[string]string{}
	for _, k := range []string{KeyID, KeyArea, KeyRole, KeyIntent, KeyBossRespect} {
		col, ok := m.Column(k)
		require.True(t, ok, k)
		got[k] = col
	}
	want := map[string]string{
		KeyID:          "Marca temporal",
		KeyArea:        "¿En qué área trabajas?",
		KeyRole:        "Cargo",
		KeyIntent:      "Estoy pensando en dejar la empresa en los próximos 12 meses.",
		KeyBossRespect: "Mi jefe me apoya y me respeta",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mapeo inesperado (-want +got):\n%s", diff)
	}

	_, ok := m.Column(KeyCompensation)
	assert.False(t, ok)
	assert.Equal(t, Active.Keys(), m.Keys())
	assert.Equal(t, 5, m.Resolved())
}

func TestMapRequiredFallsBackToFirstColumnAndLogs(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	m := Map([]string{"Respuesta", "Otra"}, Leaver, zap.New(core))

	col, ok := m.Column(KeyLeaveReason)
	require.True(t, ok)
	assert.Equal(t, "Respuesta", col)
	assert.True(t, m.Fallback(KeyLeaveReason))

	entries := logs.FilterField(zap.String("campo", KeyLeaveReason)).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "egresos", entries[0].ContextMap()["tabla"])
}

func TestMapSharedHeaderResolvesBothKeys(t *testing.T) {
	set := FieldSet{
		Name:     "prueba",
		Optional: []FieldSpec{{"a", []string{"Área"}}, {"b", []string{"area"}}},
	}
	m := Map([]string{"AREA"}, set, nil)
	a, _ := m.Column("a")
	b, _ := m.Column("b")
	assert.Equal(t, "AREA", a)
	assert.Equal(t, "AREA", b)
}

func TestMapEmptyHeaders(t *testing.T) {
	m := Map(nil, HR, nil)
	assert.Equal(t, 0, m.Resolved())
	assert.Len(t, m.Keys(), len(HR.Required)+len(HR.Optional))
}

func TestMappingJSON(t *testing.T) {
	set := FieldSet{
		Name:     "prueba",
		Required: []FieldSpec{{"id", []string{"id"}}},
		Optional: []FieldSpec{{"area", []string{"area"}}},
	}
	raw, err := json.Marshal(Map([]string{"ID"}, set, nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"ID","area":null}`, string(raw))
}

func TestFieldSetsHaveUniqueKeys(t *testing.T) {
	for _, set := range []FieldSet{Active, Leaver, HR} {
		seen := map[string]bool{}
		for _, k := range set.Keys() {
			assert.False(t, seen[k], "%s: clave repetida %s", set.Name, k)
			seen[k] = true
		}
	}
}
