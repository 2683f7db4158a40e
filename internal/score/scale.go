package score

import "math"

// ScaleKind es la escala inferida a partir del máximo observado.
type ScaleKind string

const (
	ScaleNone    ScaleKind = ""
	ScaleOneFive ScaleKind = "1-5"
	ScaleZeroTen ScaleKind = "0-10"
	ScalePercent ScaleKind = "0-100"
)

// Scale describe la escala inferida de una columna. LowConfidence se activa
// cuando el rango observado en una escala 1-5 o 0-10 es menor a dos puntos
// (por ejemplo sólo {1,2}), donde la inferencia por máximo es frágil.
type Scale struct {
	Kind          ScaleKind `json:"escala"`
	Max           float64   `json:"maximo"`
	LowConfidence bool      `json:"baja_confianza"`
}

// InferScale decide la escala sólo por el máximo observado: <=5 es 1-5,
// <=10 es 0-10 y cualquier otro valor se asume ya porcentual.
func InferScale(s Series) Scale {
	mx, ok := s.Max()
	if !ok {
		return Scale{Kind: ScaleNone}
	}
	sc := Scale{Max: mx}
	switch {
	case mx <= 5:
		sc.Kind = ScaleOneFive
	case mx <= 10:
		sc.Kind = ScaleZeroTen
	default:
		sc.Kind = ScalePercent
	}
	if sc.Kind != ScalePercent {
		mn, _ := s.Min()
		sc.LowConfidence = mx-mn < 2
	}
	return sc
}

// Scale100 lleva una serie numérica a 0..100 según la escala inferida:
// (v-1)/4*100 para 1-5, v*10 para 0-10 y recorte a [0,100] en otro caso.
func Scale100(s Series) (Series, Scale) {
	sc := InferScale(s)
	switch sc.Kind {
	case ScaleOneFive:
		return s.Map(func(v float64) float64 { return (v - 1) / 4 * 100 }), sc
	case ScaleZeroTen:
		return s.Map(func(v float64) float64 { return v / 10 * 100 }), sc
	case ScalePercent:
		return s.Map(clip100), sc
	}
	return append(Series(nil), s...), sc
}

// Normalize100 convierte respuestas crudas y las lleva a 0..100.
func Normalize100(raw []string) (Series, Scale) {
	return Scale100(Numbers(raw))
}

// Agreement puntúa respuestas de acuerdo en 0..1 con la misma inferencia de
// escala. Si positiveIsRisk es false el acuerdo es protector y se devuelve 1-puntaje.
func Agreement(raw []string, positiveIsRisk bool) Series {
	s := Numbers(raw)
	var out Series
	switch InferScale(s).Kind {
	case ScaleOneFive:
		out = s.Map(func(v float64) float64 { return (v - 1) / 4 })
	case ScaleZeroTen:
		out = s.Map(func(v float64) float64 { return v / 10 })
	case ScalePercent:
		out = s.Map(func(v float64) float64 { return clip100(v) / 100 })
	default:
		out = s
	}
	if positiveIsRisk {
		return out
	}
	return out.Map(func(v float64) float64 { return 1 - v })
}

func clip100(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
