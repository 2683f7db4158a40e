package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PhelGc/maria/internal/advisor"
	"github.com/PhelGc/maria/internal/analysis"
	"github.com/PhelGc/maria/internal/report"
)

var (
	historyPath string
	answerWidth int
)

// preguntarCmd consulta al motor experto con el diagnóstico como contexto
var preguntarCmd = &cobra.Command{
	Use:   "preguntar [pregunta]",
	Short: "Consulta al experto en fidelización con el diagnóstico como contexto",
	Long: `Calcula el diagnóstico y envía un extracto (columnas, mapeos, drivers,
motivos y áreas de mayor riesgo) junto con la pregunta al proveedor LLM
configurado (LLM_PROVIDER).

Con --historial la conversación se lee y se guarda en un archivo JSON.

Ejemplo:
  maria preguntar "¿qué quick wins implementar en 30 días?" --historial chat.json`,
	Args: cobra.ExactArgs(1),
	RunE: runPreguntar,
}

func init() {
	preguntarCmd.Flags().StringVar(&historyPath, "historial", "", "archivo JSON con los turnos previos de la conversación")
	preguntarCmd.Flags().IntVar(&answerWidth, "ancho", 80, "ancho de línea de la respuesta")
}

func runPreguntar(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	question := args[0]

	prompts, err := advisor.LoadPrompts(cfg.LLM.SystemPromptPath, cfg.LLM.InstructionsPath)
	if err != nil {
		return err
	}
	providerCfg := advisor.ProviderConfig{
		Provider:    cfg.LLM.Provider,
		OpenAIKey:   cfg.LLM.OpenAIKey,
		GeminiKey:   cfg.LLM.GeminiKey,
		Model:       cfg.LLM.Model,
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: cfg.LLM.Temperature,
	}
	provider, err := advisor.NewProvider(ctx, providerCfg)
	if err != nil {
		return err
	}
	expert := advisor.New(provider, prompts, providerCfg.KeyHint(), logger)

	var history []advisor.Turn
	if historyPath != "" {
		history, err = advisor.LoadHistory(historyPath)
		if err != nil {
			return err
		}
	}

	b, _, err := runDiagnosis(ctx, analysis.Options{
		MinRespondents: cfg.Analysis.MinRespondents,
		TopN:           cfg.Analysis.TopN,
	})
	if err != nil {
		return err
	}

	answer := expert.Ask(ctx, analysis.BuildContext(b), question, history)
	fmt.Fprint(cmd.OutOrStdout(), report.Markdown(answer, answerWidth))

	if historyPath != "" {
		history = append(history,
			advisor.Turn{Role: advisor.RoleUser, Content: question},
			advisor.Turn{Role: advisor.RoleAssistant, Content: answer})
		if err := advisor.SaveHistory(historyPath, history); err != nil {
			return err
		}
	}
	return nil
}
