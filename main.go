package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PhelGc/maria/internal/analysis"
	"github.com/PhelGc/maria/internal/cache"
	"github.com/PhelGc/maria/internal/config"
	"github.com/PhelGc/maria/internal/logging"
	"github.com/PhelGc/maria/internal/source"
)

var (
	cfg    *config.Config
	logger *zap.Logger

	// Flags de fuentes, comunes a todos los subcomandos
	urlActive string
	urlLeaver string
	urlHR     string
	verbose   bool
)

// rootCmd representa el comando base
var rootCmd = &cobra.Command{
	Use:   "maria",
	Short: "MARIA - diagnóstico de rotación y fidelización",
	Long: `MARIA cruza tres encuestas (planta activa, egresos y Gestión Humana)
para estimar la intención de salida, los drivers asociados, los motivos
más mencionados y el riesgo por área.

Las fuentes pueden ser enlaces de Google Sheets, URLs CSV/XLSX o rutas locales.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("error cargando configuración: %w", err)
		}
		applySourceFlags(cmd)

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, cfg.Log.JSON)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&urlActive, "activos", "", "fuente de la encuesta a planta activa (MARIA_URL_ACTIVOS)")
	rootCmd.PersistentFlags().StringVar(&urlLeaver, "egresos", "", "fuente de la encuesta de egresos (MARIA_URL_EGRESOS)")
	rootCmd.PersistentFlags().StringVar(&urlHR, "gh", "", "fuente de la encuesta de Gestión Humana (MARIA_URL_GH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "logs en nivel debug")

	rootCmd.AddCommand(analizarCmd, preguntarCmd, columnasCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// applySourceFlags da prioridad a los flags sobre el entorno
func applySourceFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("activos") {
		cfg.Sources.Active = urlActive
	}
	if flags.Changed("egresos") {
		cfg.Sources.Leaver = urlLeaver
	}
	if flags.Changed("gh") {
		cfg.Sources.HR = urlHR
	}
}

// loadSources descarga las tres encuestas pasando por el caché configurado.
// Una fuente caída queda en Loaded.Errors y el resto sigue.
func loadSources(ctx context.Context) (source.Loaded, error) {
	store, err := openCache(ctx)
	if err != nil {
		return source.Loaded{}, err
	}
	defer store.Close()

	fetcher := source.NewHTTPFetcher(source.FetchOptions{
		Timeout: cfg.Fetch.Timeout,
		Retries: cfg.Fetch.Retries,
		Backoff: cfg.Fetch.Backoff,
	}, logger)
	defer fetcher.Close()

	loader := source.NewLoader(fetcher, store, cfg.Cache.TTL, logger)
	loaded := loader.LoadAll(ctx, source.Locators{
		Active: cfg.Sources.Active,
		Leaver: cfg.Sources.Leaver,
		HR:     cfg.Sources.HR,
	})
	return loaded, nil
}

func openCache(ctx context.Context) (cache.Store, error) {
	dsn := cfg.Cache.DSN
	if cfg.UsesDatabase() {
		db := cfg.Database
		dsn = cache.MySQLDSN(db.Host, db.Port, db.Username, db.Password, db.Database)
	}
	store, err := cache.Open(ctx, cache.Options{
		Driver: cfg.Cache.Driver,
		Path:   cfg.Cache.Path,
		DSN:    dsn,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("error inicializando caché: %w", err)
	}
	return store, nil
}

// runDiagnosis carga las fuentes y calcula el diagnóstico completo
func runDiagnosis(ctx context.Context, opts analysis.Options) (*analysis.Bundle, source.Loaded, error) {
	loaded, err := loadSources(ctx)
	if err != nil {
		return nil, loaded, err
	}
	b := analysis.Run(analysis.Inputs{
		Active: loaded.Active,
		Leaver: loaded.Leaver,
		HR:     loaded.HR,
	}, opts, logger)
	return b, loaded, nil
}

// analysisOptions toma los valores de configuración y aplica los flags del comando
func analysisOptions(cmd *cobra.Command, minRespondents, topN int) analysis.Options {
	opts := analysis.Options{
		MinRespondents: cfg.Analysis.MinRespondents,
		TopN:           cfg.Analysis.TopN,
	}
	if cmd.Flags().Changed("min-respuestas") {
		opts.MinRespondents = minRespondents
	}
	if cmd.Flags().Changed("top") {
		opts.TopN = topN
	}
	return opts
}
