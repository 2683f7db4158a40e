package score

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Respuestas que equivalen a "sin dato".
var sentinels = map[string]bool{
	"":                      true,
	"-":                     true,
	"—":                     true,
	"na":                    true,
	"n/a":                   true,
	"no aplica":             true,
	"prefiero no responder": true,
	"sin respuesta":         true,
}

var likertES = map[string]float64{
	"totalmente en desacuerdo":       1,
	"en desacuerdo":                  2,
	"ni de acuerdo ni en desacuerdo": 3,
	"de acuerdo":                     4,
	"totalmente de acuerdo":          5,
}

var yesNoLikert = map[string]float64{
	"sí":  5,
	"si":  5,
	"yes": 5,
	"no":  1,
}

// rule es una conversión parcial: matched=false cede el turno a la siguiente.
type rule func(s string) (v Value, matched bool)

// Orden de la cascada: centinela, Likert, sí/no, número. Gana la primera que aplique.
var numberRules = []rule{
	func(s string) (Value, bool) { return Missing, sentinels[s] },
	func(s string) (Value, bool) {
		v, ok := likertES[s]
		return Resolved(v), ok
	},
	func(s string) (Value, bool) {
		v, ok := yesNoLikert[s]
		return Resolved(v), ok
	},
	func(s string) (Value, bool) {
		v, ok := ParseDecimal(s)
		return v, ok
	},
}

// ToNumber convierte una respuesta cruda a número. Likert textual queda en 1..5,
// sí/no en 5/1 y los números admiten coma decimal. Lo que no encaje queda ausente.
func ToNumber(raw string) Value {
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, r := range numberRules {
		if v, ok := r(s); ok {
			return v
		}
	}
	return Missing
}

// Numbers aplica ToNumber a toda una columna.
func Numbers(raw []string) Series {
	out := make(Series, len(raw))
	for i, r := range raw {
		out[i] = ToNumber(r)
	}
	return out
}

// ParseDecimal interpreta un número aceptando coma como separador decimal.
func ParseDecimal(raw string) (Value, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if s == "" {
		return Missing, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Missing, false
	}
	v := Resolved(f)
	return v, v.OK
}

// Decimals convierte una columna sólo con ParseDecimal, sin vocabulario Likert.
func Decimals(raw []string) Series {
	out := make(Series, len(raw))
	for i, r := range raw {
		out[i], _ = ParseDecimal(r)
	}
	return out
}

// YesNo puntúa preguntas sí/no en 0..1. Con yesRisk=false el sí es protector
// y la escala se invierte.
func YesNo(raw []string, yesRisk bool) Series {
	out := make(Series, len(raw))
	for i, r := range raw {
		s := strings.ToLower(strings.TrimSpace(r))
		if sentinels[s] {
			continue
		}
		v := classifyYesNo(s)
		if v.OK && !yesRisk {
			v = Resolved(1 - v.V)
		}
		out[i] = v
	}
	return out
}

func classifyYesNo(s string) Value {
	no := s == "no" || s == "false" || s == "falso" || hasWord(s, "no", true)
	if no {
		return Resolved(0)
	}
	yes := s == "sí" || s == "si" || s == "yes" || s == "true" || s == "verdadero" ||
		hasWord(s, "si", true) || hasWord(s, "sí", true)
	if yes {
		return Resolved(1)
	}
	return numericFlag(s)
}

// Bool clasifica respuestas de acuerdo/cumplimiento como 1 (sí) o 0 (no).
// Las negativas prevalecen sobre las afirmativas; "ni de acuerdo ni en
// desacuerdo" cuenta como no.
func Bool(raw []string) Series {
	out := make(Series, len(raw))
	for i, r := range raw {
		out[i] = classifyBool(strings.ToLower(strings.TrimSpace(r)))
	}
	return out
}

func classifyBool(s string) Value {
	no := s == "no" || s == "false" ||
		strings.Contains(s, "no aplica") || strings.Contains(s, "no cumple") || strings.Contains(s, "en desacuerdo")
	if no {
		return Resolved(0)
	}
	yes := s == "sí" || s == "si" || s == "yes" || s == "true" ||
		strings.Contains(s, "de acuerdo") || strings.Contains(s, "aplica") || strings.Contains(s, "cumple") ||
		hasWord(s, "si", false) || hasWord(s, "sí", false)
	if yes {
		return Resolved(1)
	}
	return numericFlag(s)
}

// numericFlag: cualquier número >= 1 cuenta como sí.
func numericFlag(s string) Value {
	v, ok := ParseDecimal(s)
	if !ok {
		return Missing
	}
	if v.V >= 1 {
		return Resolved(1)
	}
	return Resolved(0)
}

// hasWord busca w en s con frontera de palabra a la derecha y, si left es
// true, también a la izquierda.
func hasWord(s, w string, left bool) bool {
	for from := 0; from < len(s); {
		j := strings.Index(s[from:], w)
		if j < 0 {
			return false
		}
		start := from + j
		end := start + len(w)
		okLeft := true
		if left && start > 0 {
			r, _ := utf8.DecodeLastRuneInString(s[:start])
			okLeft = !isWordRune(r)
		}
		okRight := true
		if end < len(s) {
			r, _ := utf8.DecodeRuneInString(s[end:])
			okRight = !isWordRune(r)
		}
		if okLeft && okRight {
			return true
		}
		from = start + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}
