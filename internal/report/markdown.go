package report

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renderiza una respuesta del asesor para la terminal. Si el
// renderizador falla se devuelve el texto tal cual.
func Markdown(text string, width int) string {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n") + "\n"
}
