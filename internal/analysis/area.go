package analysis

import (
	"cmp"
	"slices"
	"strings"

	"github.com/PhelGc/maria/internal/mapping"
	"github.com/PhelGc/maria/internal/score"
	"github.com/PhelGc/maria/internal/table"
)

// Drivers que se promedian por área, en orden de presentación.
var areaDrivers = []string{
	mapping.KeySatisfaction,
	mapping.KeyCompensation,
	mapping.KeyBossRespect,
	mapping.KeyBossTrust,
	mapping.KeyGrowth,
	mapping.KeyWorkload,
	mapping.KeyCommunication,
	mapping.KeyRecognition,
}

// DriverMean es el promedio 0..100 de un driver dentro de un área.
type DriverMean struct {
	Driver string      `json:"driver" yaml:"driver"`
	Mean   score.Value `json:"media" yaml:"media"`
}

// AreaRisk es el riesgo agregado de un área.
type AreaRisk struct {
	Area       string       `json:"area" yaml:"area"`
	N          int          `json:"n" yaml:"n"`
	IntentMean float64      `json:"intencion_media" yaml:"intencion_media"`
	Drivers    []DriverMean `json:"drivers" yaml:"drivers"`
	Risk       float64      `json:"riesgo" yaml:"riesgo"`
	RiskPct    float64      `json:"riesgo_pct" yaml:"riesgo_pct"`
}

// AreaRiskByArea agrupa a los activos por el valor literal de su área (sin
// normalizar) y calcula el riesgo compuesto de cada grupo: con satisfacción
// disponible es 0.5*intención + 0.5*(100-satisfacción)/100, si no, la
// intención media. Sin columna de área el resultado es vacío.
func AreaRiskByArea(t *table.Table, m mapping.Mapping) []AreaRisk {
	areas, ok := column(t, m, mapping.KeyArea)
	if !ok {
		return nil
	}
	intent := Intent(t, m)

	type driver struct {
		key    string
		values score.Series
	}
	var drivers []driver
	for _, k := range areaDrivers {
		if raw, ok := column(t, m, k); ok {
			s, _ := score.Normalize100(raw)
			drivers = append(drivers, driver{k, s})
		}
	}

	var order []string
	groups := make(map[string][]int)
	for i, a := range areas {
		if strings.TrimSpace(a) == "" {
			continue
		}
		if _, seen := groups[a]; !seen {
			order = append(order, a)
		}
		groups[a] = append(groups[a], i)
	}

	out := make([]AreaRisk, 0, len(order))
	for _, a := range order {
		rows := groups[a]
		im, _ := intent.Pick(rows).Mean()
		row := AreaRisk{Area: a, N: len(rows), IntentMean: im, Risk: im}
		for _, d := range drivers {
			mean, ok := d.values.Pick(rows).Mean()
			v := score.Missing
			if ok {
				v = score.Resolved(mean)
			}
			row.Drivers = append(row.Drivers, DriverMean{Driver: d.key, Mean: v})
			if d.key == mapping.KeySatisfaction && ok {
				row.Risk = 0.5*im + 0.5*(100-mean)/100
			}
		}
		row.RiskPct = score.Round1(row.Risk * 100)
		out = append(out, row)
	}

	slices.SortStableFunc(out, func(x, y AreaRisk) int {
		if c := cmp.Compare(y.Risk, x.Risk); c != 0 {
			return c
		}
		if c := cmp.Compare(y.N, x.N); c != 0 {
			return c
		}
		return strings.Compare(x.Area, y.Area)
	})
	return out
}

// FilterMinRespondents deja sólo las áreas con al menos minN respondientes.
func FilterMinRespondents(rows []AreaRisk, minN int) []AreaRisk {
	out := make([]AreaRisk, 0, len(rows))
	for _, r := range rows {
		if r.N >= minN {
			out = append(out, r)
		}
	}
	return out
}
