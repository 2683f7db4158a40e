package advisor

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

var (
	//go:embed prompts/system.md
	defaultSystem string
	//go:embed prompts/instrucciones.md
	defaultInstructions string
)

// Prompts son el prompt de sistema y las instrucciones que acompañan cada pregunta.
type Prompts struct {
	System       string
	Instructions string
}

// DefaultPrompts devuelve los prompts incluidos en el binario.
func DefaultPrompts() Prompts {
	return Prompts{
		System:       strings.TrimSpace(defaultSystem),
		Instructions: strings.TrimSpace(defaultInstructions),
	}
}

// LoadPrompts lee los prompts desde archivo. Una ruta vacía conserva el
// prompt incluido; una ruta que no se puede leer es un error.
func LoadPrompts(systemPath, instructionsPath string) (Prompts, error) {
	p := DefaultPrompts()
	if systemPath != "" {
		b, err := os.ReadFile(systemPath)
		if err != nil {
			return Prompts{}, fmt.Errorf("no se pudo cargar prompt de sistema (%s): %w", systemPath, err)
		}
		p.System = strings.TrimSpace(string(b))
	}
	if instructionsPath != "" {
		b, err := os.ReadFile(instructionsPath)
		if err != nil {
			return Prompts{}, fmt.Errorf("no se pudo cargar instrucciones (%s): %w", instructionsPath, err)
		}
		p.Instructions = strings.TrimSpace(string(b))
	}
	return p, nil
}
