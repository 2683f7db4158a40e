package main

import (
	"github.com/spf13/cobra"

	"github.com/PhelGc/maria/internal/mapping"
	"github.com/PhelGc/maria/internal/report"
	"github.com/PhelGc/maria/internal/source"
)

var previewRows int

// columnasCmd muestra encabezados y mapeo de cada encuesta
var columnasCmd = &cobra.Command{
	Use:   "columnas",
	Short: "Explora columnas y mapeo de campos de cada encuesta",
	Long: `Muestra, para cada encuesta, el número de filas, los encabezados y la
columna que se asignó a cada campo. Los campos requeridos sin coincidencia
aparecen como "respaldo" (se usó la primera columna).`,
	Args: cobra.NoArgs,
	RunE: runColumnas,
}

func init() {
	columnasCmd.Flags().IntVar(&previewRows, "filas", 0, "filas de muestra por encuesta")
}

func runColumnas(cmd *cobra.Command, args []string) error {
	loaded, err := loadSources(cmd.Context())
	if err != nil {
		return err
	}

	sets := []report.Dataset{
		{Name: source.NameActive, Label: "Activos", Table: loaded.Active},
		{Name: source.NameLeaver, Label: "Egresos", Table: loaded.Leaver},
		{Name: source.NameHR, Label: "Gestión Humana", Table: loaded.HR},
	}
	fieldSets := []mapping.FieldSet{mapping.Active, mapping.Leaver, mapping.HR}
	for i := range sets {
		var headers []string
		if sets[i].Table != nil {
			headers = sets[i].Table.Headers
		}
		sets[i].Mapping = mapping.Map(headers, fieldSets[i], logger)
	}

	return report.Columns(cmd.OutOrStdout(), sets, loaded.Errors, previewRows)
}
