package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PhelGc/maria/internal/analysis"
	"github.com/PhelGc/maria/internal/discord"
	"github.com/PhelGc/maria/internal/report"
)

var (
	outputFormat   string
	minRespondents int
	topN           int
	notify         bool
)

// analizarCmd ejecuta el diagnóstico completo
var analizarCmd = &cobra.Command{
	Use:   "analizar",
	Short: "Calcula el diagnóstico de rotación",
	Long: `Descarga las tres encuestas y muestra correlaciones de drivers con la
intención de salida, motivos más mencionados, riesgo por área, el panel de
Gestión Humana y conclusiones automáticas.

Si una fuente falla se informa y sus secciones quedan vacías.

Ejemplo:
  maria analizar --activos https://docs.google.com/spreadsheets/d/<id>/edit --formato json`,
	Args: cobra.NoArgs,
	RunE: runAnalizar,
}

func init() {
	analizarCmd.Flags().StringVarP(&outputFormat, "formato", "f", "texto", "formato de salida: texto, json o yaml")
	analizarCmd.Flags().IntVar(&minRespondents, "min-respuestas", analysis.DefaultMinRespondents, "mínimo de respuestas para mostrar un área (MIN_RESPUESTAS_AREA)")
	analizarCmd.Flags().IntVar(&topN, "top", analysis.DefaultTopN, "drivers y motivos a mostrar (TOP_N)")
	analizarCmd.Flags().BoolVar(&notify, "notificar", false, "publica las conclusiones en Discord")
}

func runAnalizar(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	b, loaded, err := runDiagnosis(cmd.Context(), analysisOptions(cmd, minRespondents, topN))
	if err != nil {
		return err
	}

	if err := report.Write(cmd.OutOrStdout(), format, b, loaded.Errors); err != nil {
		return err
	}

	if notify {
		return notifyDiscord(b, loaded.Errors)
	}
	return nil
}

func notifyDiscord(b *analysis.Bundle, errs map[string]error) error {
	client, err := discord.NewClient(&discord.Config{
		BotToken:  cfg.Discord.BotToken,
		ChannelID: cfg.Discord.ChannelID,
	})
	if err != nil {
		return fmt.Errorf("error creando cliente Discord: %w", err)
	}
	defer client.Close()

	messageID, err := client.SendDiagnosis(b, errs)
	if err != nil {
		return err
	}
	logger.Info("diagnóstico publicado en Discord",
		zap.String("run_id", b.RunID),
		zap.String("canal", cfg.Discord.ChannelID),
		zap.String("mensaje", messageID))
	return nil
}
