// Package discord publica el diagnóstico de rotación en un canal de Discord.
package discord

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/PhelGc/maria/internal/analysis"
)

// Límites de Discord para embeds.
const (
	maxDescription = 4096
	maxFieldValue  = 1024
)

type Client struct {
	session *discordgo.Session
	config  *Config
}

type Config struct {
	BotToken  string
	ChannelID string
}

func NewClient(config *Config) (*Client, error) {
	if config.BotToken == "" || config.ChannelID == "" {
		return nil, fmt.Errorf("faltan DISCORD_BOT_TOKEN o DISCORD_CHANNEL_ID")
	}
	session, err := discordgo.New("Bot " + config.BotToken)
	if err != nil {
		return nil, fmt.Errorf("error creando sesión Discord: %w", err)
	}
	return &Client{session: session, config: config}, nil
}

// SendDiagnosis publica las conclusiones de la corrida y devuelve el id del mensaje.
// sourceErrors lleva las fuentes que no se pudieron cargar.
func (c *Client) SendDiagnosis(b *analysis.Bundle, sourceErrors map[string]error) (string, error) {
	embed := buildDiagnosisEmbed(b, sourceErrors, time.Now())
	message, err := c.session.ChannelMessageSendEmbed(c.config.ChannelID, embed)
	if err != nil {
		return "", fmt.Errorf("error enviando mensaje a Discord: %w", err)
	}
	return message.ID, nil
}

// buildDiagnosisEmbed arma el embed con conclusiones, filas cargadas y el área más crítica.
func buildDiagnosisEmbed(b *analysis.Bundle, sourceErrors map[string]error, now time.Time) *discordgo.MessageEmbed {
	color := 0x95A5A6 // Gris: sin datos
	if len(b.Takeaways) > 0 && b.Takeaways[0] != analysis.NoDataTakeaway {
		color = 0xF39C12 // Naranja
	}
	if len(b.AreaRisk) > 0 && b.AreaRisk[0].RiskPct >= 50 {
		color = 0xE74C3C // Rojo
	}

	var desc strings.Builder
	for _, t := range b.Takeaways {
		desc.WriteString("- " + t + "\n")
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Activos", Value: fmt.Sprint(b.Rows.Active), Inline: true},
		{Name: "Egresos", Value: fmt.Sprint(b.Rows.Leaver), Inline: true},
		{Name: "Gestión Humana", Value: fmt.Sprint(b.Rows.HR), Inline: true},
	}
	if len(b.AreaRisk) > 0 {
		top := b.AreaRisk[0]
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Área de mayor riesgo",
			Value: fmt.Sprintf("%s: %.1f%% (n=%d)", top.Area, top.RiskPct, top.N),
		})
	}
	if len(sourceErrors) > 0 {
		names := make([]string, 0, len(sourceErrors))
		for name := range sourceErrors {
			names = append(names, name)
		}
		sort.Strings(names)
		var lines []string
		for _, name := range names {
			lines = append(lines, fmt.Sprintf("%s: %v", name, sourceErrors[name]))
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Fuentes con error",
			Value: truncate(strings.Join(lines, "\n"), maxFieldValue),
		})
	}

	return &discordgo.MessageEmbed{
		Title:       "Diagnóstico de rotación",
		Description: truncate(desc.String(), maxDescription),
		Color:       color,
		Fields:      fields,
		Timestamp:   now.Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "MARIA - Diagnóstico automatizado · " + b.RunID,
		},
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Close cierra la conexión con Discord
func (c *Client) Close() {
	if c.session != nil {
		c.session.Close()
	}
}
