// Package score convierte respuestas heterogéneas de encuesta (Likert en
// español, sí/no, números con coma decimal, centinelas de "no aplica") en
// series numéricas donde cada celda está resuelta o explícitamente ausente.
package score

import (
	"encoding/json"
	"math"
)

// Value es una celda numérica: resuelta con un valor finito o ausente.
type Value struct {
	V  float64
	OK bool
}

// Missing es la celda ausente.
var Missing = Value{}

// Resolved envuelve un valor; los no finitos quedan como ausentes.
func Resolved(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Missing
	}
	return Value{V: v, OK: true}
}

// Get devuelve el valor y si está resuelto.
func (v Value) Get() (float64, bool) {
	return v.V, v.OK
}

// MarshalJSON escribe el número o null si la celda está ausente.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.OK {
		return []byte("null"), nil
	}
	return json.Marshal(v.V)
}

// MarshalYAML hace lo mismo para los reportes en YAML.
func (v Value) MarshalYAML() (any, error) {
	if !v.OK {
		return nil, nil
	}
	return v.V, nil
}

// Series es una columna numérica alineada 1:1 con las filas de su tabla.
type Series []Value

// Constant arma una serie de n valores iguales.
func Constant(n int, v float64) Series {
	out := make(Series, n)
	for i := range out {
		out[i] = Resolved(v)
	}
	return out
}

// Map aplica f a cada valor resuelto; los ausentes se conservan.
func (s Series) Map(f func(float64) float64) Series {
	out := make(Series, len(s))
	for i, v := range s {
		if v.OK {
			out[i] = Resolved(f(v.V))
		}
	}
	return out
}

// Max devuelve el máximo de los valores resueltos.
func (s Series) Max() (float64, bool) {
	mx, found := 0.0, false
	for _, v := range s {
		if v.OK && (!found || v.V > mx) {
			mx, found = v.V, true
		}
	}
	return mx, found
}

// Min devuelve el mínimo de los valores resueltos.
func (s Series) Min() (float64, bool) {
	mn, found := 0.0, false
	for _, v := range s {
		if v.OK && (!found || v.V < mn) {
			mn, found = v.V, true
		}
	}
	return mn, found
}

// Count cuenta los valores resueltos.
func (s Series) Count() int {
	n := 0
	for _, v := range s {
		if v.OK {
			n++
		}
	}
	return n
}

// Mean promedia los valores resueltos; sin valores no hay promedio.
func (s Series) Mean() (float64, bool) {
	sum, n := 0.0, 0
	for _, v := range s {
		if v.OK {
			sum += v.V
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Pick devuelve la subserie con las posiciones indicadas.
func (s Series) Pick(rows []int) Series {
	out := make(Series, len(rows))
	for i, r := range rows {
		out[i] = s[r]
	}
	return out
}

// RowMean promedia fila a fila las series dadas, ignorando ausentes por fila.
// Una fila sin ninguna señal vale def.
func RowMean(n int, def float64, parts ...Series) Series {
	out := make(Series, n)
	for i := 0; i < n; i++ {
		sum, count := 0.0, 0
		for _, p := range parts {
			if i < len(p) && p[i].OK {
				sum += p[i].V
				count++
			}
		}
		if count == 0 {
			out[i] = Resolved(def)
			continue
		}
		out[i] = Resolved(sum / float64(count))
	}
	return out
}

// Pearson calcula la correlación usando sólo los pares completos. Devuelve
// también el número de pares; sin al menos dos pares o sin varianza en alguna
// de las series no hay coeficiente.
func Pearson(x, y Series) (float64, int, bool) {
	var xs, ys []float64
	for i := 0; i < len(x) && i < len(y); i++ {
		if x[i].OK && y[i].OK {
			xs = append(xs, x[i].V)
			ys = append(ys, y[i].V)
		}
	}
	n := len(xs)
	if n < 2 {
		return 0, n, false
	}

	var mx, my float64
	for i := range xs {
		mx += xs[i]
		my += ys[i]
	}
	mx /= float64(n)
	my /= float64(n)

	var sxy, sxx, syy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0, n, false
	}
	r := sxy / math.Sqrt(sxx*syy)
	return math.Max(-1, math.Min(1, r)), n, true
}

// Round1 redondea a un decimal.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
