// Package textnorm normaliza texto libre de encuestas: encabezados para el
// emparejamiento de columnas y respuestas abiertas para el conteo de palabras.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlnum    = regexp.MustCompile(`[^a-z0-9]+`)
	tokenRunes  = regexp.MustCompile(`[a-záéíóúüñ0-9]+`)
	whitespaces = regexp.MustCompile(`\s+`)
)

// FoldAccents elimina tildes y diéresis (Área -> Area, ñ -> n).
// Los transformadores encadenados guardan estado, así que se arma uno por llamada.
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Slug devuelve la forma canónica usada para comparar encabezados con pistas:
// minúsculas, sin tildes, y cualquier tramo no alfanumérico reducido a un espacio.
func Slug(s string) string {
	s = FoldAccents(strings.ToLower(s))
	s = nonAlnum.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Tokenize extrae las palabras (letras latinas con tilde o ñ, y dígitos)
// de un texto en minúsculas.
func Tokenize(s string) []string {
	return tokenRunes.FindAllString(strings.ToLower(s), -1)
}

// CollapseSpaces reduce cualquier secuencia de espacios a uno solo y recorta.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(whitespaces.ReplaceAllString(s, " "))
}
