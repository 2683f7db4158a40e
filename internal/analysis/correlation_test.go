package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PhelGc/maria/internal/mapping"
	"github.com/PhelGc/maria/internal/score"
	"github.com/PhelGc/maria/internal/table"
)

func TestCorrelateSignConvention(t *testing.T) {
	tbl, m := fixture(t, mapping.Active,
		[]string{mapping.KeyID, mapping.KeyArea, mapping.KeyIntent, mapping.KeyCompensation, mapping.KeyGrowth, mapping.KeyRecognition},
		[]string{"1", "Ventas", "1", "1", "5", "3"},
		[]string{"2", "Ventas", "2", "2", "4", "3"},
		[]string{"3", "Ventas", "3", "3", "3", "3"},
		[]string{"4", "Ventas", "4", "4", "2", "3"},
		[]string{"5", "Ventas", "5", "5", "1", "3"},
	)

	got := Correlate(tbl, m)
	require.Len(t, got, 2, "el driver constante no tiene coeficiente")

	assert.Equal(t, mapping.KeyGrowth, got[0].Driver)
	assert.InDelta(t, -1.0, got[0].Coefficient, 1e-9)
	assert.Equal(t, mapping.KeyCompensation, got[1].Driver)
	assert.InDelta(t, 1.0, got[1].Coefficient, 1e-9)
	assert.Equal(t, 5, got[1].Pairs)
	assert.Equal(t, score.ScaleOneFive, got[1].Scale)

	for _, c := range got {
		assert.NotContains(t, []string{mapping.KeyID, mapping.KeyArea, mapping.KeyIntent}, c.Driver)
	}
}

func TestCorrelateUsesCompletePairsOnly(t *testing.T) {
	tbl, m := fixture(t, mapping.Active,
		[]string{mapping.KeyID, mapping.KeyIntent, mapping.KeyWorkload},
		[]string{"a", "1", "1"},
		[]string{"b", "5", "n/a"},
		[]string{"c", "3", "3"},
		[]string{"d", "5", "5"},
	)
	got := Correlate(tbl, m)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Pairs)
	assert.InDelta(t, 1.0, got[0].Coefficient, 1e-9)
}

func TestCorrelateFlagsNarrowScales(t *testing.T) {
	tbl, m := fixture(t, mapping.Active,
		[]string{mapping.KeyID, mapping.KeyIntent, mapping.KeyCommunication},
		[]string{"a", "1", "1"},
		[]string{"b", "5", "2"},
		[]string{"c", "3", "1"},
	)
	got := Correlate(tbl, m)
	require.Len(t, got, 1)
	assert.True(t, got[0].LowConfidence)
}

func TestCorrelateWithoutDrivers(t *testing.T) {
	tbl, m := fixture(t, mapping.Active,
		[]string{mapping.KeyID, mapping.KeyArea, mapping.KeyRole, mapping.KeyIntent},
		[]string{"1", "Ventas", "Analista", "5"},
	)
	assert.Empty(t, Correlate(tbl, m))

	empty := table.New("activos", nil, nil)
	assert.Empty(t, Correlate(empty, mapping.Map(nil, mapping.Active, nil)))
}
