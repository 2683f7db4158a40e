// Package source carga las tres encuestas desde sus ubicaciones: enlaces de
// Google Sheets (que se convierten a su exportación estable), otras URLs o
// archivos locales. Cada carga termina en una tabla o en un FetchError.
package source

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	sheetEdit      = regexp.MustCompile(`https?://docs\.google\.com/spreadsheets/d/([A-Za-z0-9_-]+)`)
	sheetPublished = regexp.MustCompile(`https?://docs\.google\.com/spreadsheets/d/e/([A-Za-z0-9_-]+)`)
	outputParam    = regexp.MustCompile(`output=[^&#?]+`)
	gidParam       = regexp.MustCompile(`gid=([0-9]+)`)
)

// NormalizeExportURL convierte un enlace de Google Sheets en su exportación
// estable en el formato pedido (csv o xlsx):
//   - enlaces que ya son exportación: se reescribe output=
//   - publicados (/d/e/<id>/pub): se agrega o reescribe output=
//   - de edición (/d/<id>/edit): /export?format=<fmt>, conservando gid
//
// Cualquier otra URL se devuelve sin cambios.
func NormalizeExportURL(raw, format string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return u
	}
	lower := strings.ToLower(u)
	output := "output=" + format

	if strings.HasSuffix(u, ".csv") || strings.Contains(lower, "output=csv") || strings.Contains(lower, "format=xlsx") {
		return outputParam.ReplaceAllLiteralString(u, output)
	}

	if sheetPublished.MatchString(u) {
		if strings.Contains(u, "output=") {
			return outputParam.ReplaceAllLiteralString(u, output)
		}
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		return u + sep + output
	}

	if m := sheetEdit.FindStringSubmatch(u); m != nil {
		gid := ""
		if g := gidParam.FindStringSubmatch(u); g != nil {
			gid = "&gid=" + g[1]
		}
		return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=%s%s", m[1], format, gid)
	}
	return u
}
