package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contiene toda la configuración del sistema
type Config struct {
	Sources  SourcesConfig
	Fetch    FetchConfig
	Cache    CacheConfig
	Database DatabaseConfig
	LLM      LLMConfig
	Analysis AnalysisConfig
	Discord  DiscordConfig
	Log      LogConfig
}

// SourcesConfig ubicaciones de las tres tablas (URL de Google Sheets, CSV/XLSX o ruta local)
type SourcesConfig struct {
	Active string
	Leaver string
	HR     string
}

// FetchConfig descarga de fuentes
type FetchConfig struct {
	Timeout time.Duration
	Retries int
	Backoff time.Duration
}

// CacheConfig caché de tablas descargadas
type CacheConfig struct {
	Driver string // memory, file, mysql, postgres, sqlite
	TTL    time.Duration
	Path   string
	DSN    string
}

// DatabaseConfig configuración de la base de datos MySQL
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// LLMConfig proveedor del motor experto
type LLMConfig struct {
	Provider         string // openai o gemini
	OpenAIKey        string
	GeminiKey        string
	Model            string
	BaseURL          string
	Temperature      float64
	SystemPromptPath string
	InstructionsPath string
}

// AnalysisConfig parámetros del diagnóstico
type AnalysisConfig struct {
	MinRespondents int
	TopN           int
}

// DiscordConfig configuración del bot de Discord
type DiscordConfig struct {
	BotToken  string
	ChannelID string
}

// LogConfig nivel y formato de logs
type LogConfig struct {
	Level string
	JSON  bool
}

// Load carga la configuración desde variables de entorno
func Load() (*Config, error) {
	// Cargar archivo .env si existe
	godotenv.Load()

	config := &Config{
		Sources: SourcesConfig{
			Active: os.Getenv("MARIA_URL_ACTIVOS"),
			Leaver: os.Getenv("MARIA_URL_EGRESOS"),
			HR:     os.Getenv("MARIA_URL_GH"),
		},
		Fetch: FetchConfig{
			Timeout: time.Duration(getEnvInt("FETCH_TIMEOUT_SECONDS", 30)) * time.Second,
			Retries: getEnvInt("FETCH_RETRIES", 3),
			Backoff: time.Duration(getEnvInt("FETCH_BACKOFF_MS", 500)) * time.Millisecond,
		},
		Cache: CacheConfig{
			Driver: strings.ToLower(getEnvOrDefault("CACHE_DRIVER", "memory")),
			TTL:    time.Duration(getEnvInt("CACHE_TTL_MINUTES", 60)) * time.Minute,
			Path:   getEnvOrDefault("CACHE_PATH", "data/cache"),
			DSN:    os.Getenv("CACHE_DSN"),
		},
		Database: DatabaseConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "3306"),
			Username: os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
			Database: getEnvOrDefault("DB_DATABASE", "maria"),
		},
		LLM: LLMConfig{
			Provider:         strings.ToLower(getEnvOrDefault("LLM_PROVIDER", "openai")),
			OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
			GeminiKey:        os.Getenv("GEMINI_API_KEY"),
			Model:            os.Getenv("LLM_MODEL"),
			BaseURL:          os.Getenv("LLM_BASE_URL"),
			Temperature:      getEnvFloat("LLM_TEMPERATURE", 0.2),
			SystemPromptPath: os.Getenv("PROMPT_SYSTEM_PATH"),
			InstructionsPath: os.Getenv("PROMPT_INSTRUCTIONS_PATH"),
		},
		Analysis: AnalysisConfig{
			MinRespondents: getEnvInt("MIN_RESPUESTAS_AREA", 10),
			TopN:           getEnvInt("TOP_N", 7),
		},
		Discord: DiscordConfig{
			BotToken:  os.Getenv("DISCORD_BOT_TOKEN"),
			ChannelID: os.Getenv("DISCORD_CHANNEL_ID"),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
			JSON:  os.Getenv("LOG_JSON") == "true",
		},
	}

	return config, nil
}

// UsesDatabase indica si el caché necesita los datos DB_* para armar el DSN de MySQL
func (c *Config) UsesDatabase() bool {
	return c.Cache.Driver == "mysql" && c.Cache.DSN == ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt ignora valores no numéricos o negativos
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
