// Package advisor es la capa conversacional: envía el extracto del
// diagnóstico y una pregunta a un modelo de lenguaje y devuelve texto libre.
// Nunca falla hacia quien la llama; los problemas se explican en la respuesta.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Provider es un modelo de lenguaje capaz de continuar una conversación.
type Provider interface {
	Name() string
	Complete(ctx context.Context, system string, history []Turn, user string) (string, error)
}

// Advisor arma el mensaje para el modelo y aplica la política de degradación.
type Advisor struct {
	provider Provider
	prompts  Prompts
	keyHint  string
	logger   *zap.Logger
}

// New crea el asesor. provider puede ser nil (motor deshabilitado); keyHint
// nombra la variable de entorno a revisar en los mensajes de ayuda.
func New(provider Provider, prompts Prompts, keyHint string, logger *zap.Logger) *Advisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if keyHint == "" {
		keyHint = "OPENAI_API_KEY"
	}
	return &Advisor{provider: provider, prompts: prompts, keyHint: keyHint, logger: logger}
}

// Enabled indica si hay un proveedor configurado.
func (a *Advisor) Enabled() bool {
	return a.provider != nil
}

// Ask responde la pregunta con el contexto dado y el historial previo.
func (a *Advisor) Ask(ctx context.Context, payload any, question string, history []Turn) string {
	if a.provider == nil {
		return fmt.Sprintf("Motor experto deshabilitado. Agrega `%s` en el entorno o en `.env` para activar respuestas generativas.\n\n"+
			"Puedes seguir usando `maria analizar` para el diagnóstico determinista.", a.keyHint)
	}

	user := a.UserMessage(payload, question)
	answer, err := a.provider.Complete(ctx, a.prompts.System, history, user)
	if err != nil {
		a.logger.Error("error consultando el modelo",
			zap.String("proveedor", a.provider.Name()),
			zap.Error(err))
		return fmt.Sprintf("Error al consultar el modelo: %v\n\nSugerencia: verifica `%s` en la configuración.", err, a.keyHint)
	}
	a.logger.Info("respuesta del modelo",
		zap.String("proveedor", a.provider.Name()),
		zap.Int("turnos_previos", len(history)),
		zap.Int("caracteres", len(answer)))
	return strings.TrimSpace(answer)
}

// UserMessage arma el mensaje con el contexto JSON, la pregunta y las instrucciones.
func (a *Advisor) UserMessage(payload any, question string) string {
	return fmt.Sprintf("Contexto JSON (si disponible): %s\n\nPregunta: %s\n\nInstrucciones específicas:\n%s",
		a.contextJSON(payload), question, a.prompts.Instructions)
}

// contextJSON serializa sin escapar tildes ni HTML.
func (a *Advisor) contextJSON(payload any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		a.logger.Warn("no se pudo serializar el contexto", zap.Error(err))
		return "{}"
	}
	return strings.TrimSpace(buf.String())
}
