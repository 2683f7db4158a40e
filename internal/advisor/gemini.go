package advisor

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const geminiModel = "gemini-2.5-flash"

// GeminiProvider usa el SDK de Gemini.
type GeminiProvider struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGemini crea el cliente del SDK; model vacío usa gemini-2.5-flash.
func NewGemini(ctx context.Context, apiKey, model string, temperature float64) (*GeminiProvider, error) {
	if model == "" {
		model = geminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("error creando cliente Gemini: %w", err)
	}
	return &GeminiProvider{client: client, model: model, temperature: float32(temperature)}, nil
}

func (p *GeminiProvider) Name() string { return "gemini:" + p.model }

func (p *GeminiProvider) Complete(ctx context.Context, system string, history []Turn, user string) (string, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.model, geminiContents(history, user), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr(p.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("error llamando Gemini API: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("respuesta vacía de Gemini")
	}
	return text, nil
}

// geminiContents traduce el historial: los turnos del asistente van con rol model.
func geminiContents(history []Turn, user string) []*genai.Content {
	out := make([]*genai.Content, 0, len(history)+1)
	for _, t := range history {
		role := genai.Role(genai.RoleUser)
		if t.Role == RoleAssistant {
			role = genai.RoleModel
		}
		out = append(out, genai.NewContentFromText(t.Content, role))
	}
	return append(out, genai.NewContentFromText(user, genai.RoleUser))
}
