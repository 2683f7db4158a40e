package advisor

import (
	"context"
	"fmt"
)

// ProviderConfig elige el proveedor y sus credenciales.
type ProviderConfig struct {
	Provider    string // openai o gemini
	OpenAIKey   string
	GeminiKey   string
	Model       string
	BaseURL     string
	Temperature float64
}

// KeyHint nombra la variable de entorno de la credencial del proveedor elegido.
func (c ProviderConfig) KeyHint() string {
	if c.Provider == "gemini" {
		return "GEMINI_API_KEY"
	}
	return "OPENAI_API_KEY"
}

// NewProvider construye el proveedor configurado. Sin credencial devuelve
// nil: el asesor queda deshabilitado, no es un error.
func NewProvider(ctx context.Context, cfg ProviderConfig) (Provider, error) {
	switch cfg.Provider {
	case "", "openai":
		if cfg.OpenAIKey == "" {
			return nil, nil
		}
		return NewOpenAI(cfg.OpenAIKey, cfg.Model, cfg.BaseURL, cfg.Temperature), nil
	case "gemini":
		if cfg.GeminiKey == "" {
			return nil, nil
		}
		p, err := NewGemini(ctx, cfg.GeminiKey, cfg.Model, cfg.Temperature)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, fmt.Errorf("proveedor LLM desconocido: %q", cfg.Provider)
}
