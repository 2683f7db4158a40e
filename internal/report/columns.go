package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/PhelGc/maria/internal/mapping"
	"github.com/PhelGc/maria/internal/table"
)

const maxPreviewColumns = 10

// Dataset es una tabla cargada con su mapeo, para el explorador de columnas.
type Dataset struct {
	Name    string // clave en el mapa de errores de carga
	Label   string
	Table   *table.Table
	Mapping mapping.Mapping
}

// Columns lista encabezados, filas y mapeo de cada tabla. Las claves
// requeridas que cayeron en la primera columna se marcan como respaldo.
// Con preview > 0 muestra además las primeras filas.
func Columns(w io.Writer, sets []Dataset, errs map[string]error, preview int) error {
	var sb strings.Builder
	for i, ds := range sets {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(titleStyle.Render(ds.Label) + "\n")
		if err, ok := errs[ds.Name]; ok {
			sb.WriteString(errorStyle.Render(fmt.Sprintf("no disponible: %v", err)) + "\n")
			continue
		}
		if ds.Table.Len() == 0 {
			info(&sb, "La fuente no tiene filas.")
		}
		var headers []string
		if ds.Table != nil {
			headers = ds.Table.Headers
		}
		sb.WriteString(fmt.Sprintf("%d filas · %d columnas\n", ds.Table.Len(), len(headers)))

		var rows [][]string
		for _, key := range ds.Mapping.Keys() {
			col, ok := ds.Mapping.Column(key)
			status := "ok"
			switch {
			case !ok:
				col, status = "-", "sin columna"
			case ds.Mapping.Fallback(key):
				status = "respaldo"
			}
			rows = append(rows, []string{key, col, status})
		}
		sb.WriteString(grid([]string{"Campo", "Columna", "Estado"}, rows) + "\n")
		sb.WriteString(mutedStyle.Render(fmt.Sprintf("%d de %d campos resueltos", ds.Mapping.Resolved(), len(ds.Mapping.Keys()))) + "\n")

		if preview > 0 && ds.Table.Len() > 0 {
			cols := headers[:min(maxPreviewColumns, len(headers))]
			var sample [][]string
			for _, r := range ds.Table.Rows[:min(preview, ds.Table.Len())] {
				sample = append(sample, r[:len(cols)])
			}
			sb.WriteString(grid(cols, sample) + "\n")
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
