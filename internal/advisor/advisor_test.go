package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/genai"
)

type stubProvider struct {
	answer  string
	err     error
	system  string
	history []Turn
	user    string
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Complete(_ context.Context, system string, history []Turn, user string) (string, error) {
	s.system, s.history, s.user = system, history, user
	return s.answer, s.err
}

func TestAskDisabled(t *testing.T) {
	a := New(nil, DefaultPrompts(), "GEMINI_API_KEY", nil)
	assert.False(t, a.Enabled())

	got := a.Ask(context.Background(), nil, "¿qué hago?", nil)
	assert.Contains(t, got, "Motor experto deshabilitado")
	assert.Contains(t, got, "GEMINI_API_KEY")
}

func TestAskBuildsMessage(t *testing.T) {
	p := &stubProvider{answer: "  Prioriza liderazgo.  "}
	a := New(p, Prompts{System: "sistema", Instructions: "- responde breve"}, "", nil)
	history := []Turn{{RoleUser, "hola"}, {RoleAssistant, "¿en qué ayudo?"}}

	got := a.Ask(context.Background(), map[string]any{"área": "Ventas & Bodega"}, "¿quick wins?", history)

	assert.Equal(t, "Prioriza liderazgo.", got)
	assert.Equal(t, "sistema", p.system)
	assert.Equal(t, history, p.history)
	assert.Equal(t,
		"Contexto JSON (si disponible): {\"área\":\"Ventas & Bodega\"}\n\nPregunta: ¿quick wins?\n\nInstrucciones específicas:\n- responde breve",
		p.user)
}

func TestAskDegradesOnError(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	p := &stubProvider{err: errors.New("401 unauthorized")}
	a := New(p, DefaultPrompts(), "OPENAI_API_KEY", zap.New(core))

	got := a.Ask(context.Background(), nil, "hola", nil)
	assert.Contains(t, got, "Error al consultar el modelo: 401 unauthorized")
	assert.Contains(t, got, "OPENAI_API_KEY")
	assert.Equal(t, 1, logs.FilterMessage("error consultando el modelo").Len())
}

func TestAskUnserializableContext(t *testing.T) {
	p := &stubProvider{answer: "ok"}
	a := New(p, Prompts{}, "", nil)
	a.Ask(context.Background(), map[string]any{"f": func() {}}, "q", nil)
	assert.Contains(t, p.user, "Contexto JSON (si disponible): {}")
}

func TestDefaultPrompts(t *testing.T) {
	p := DefaultPrompts()
	assert.Contains(t, p.System, "Eres MARIA")
	assert.Contains(t, p.Instructions, "quick wins")
}

func TestLoadPrompts(t *testing.T) {
	dir := t.TempDir()
	sys := filepath.Join(dir, "sistema.md")
	require.NoError(t, os.WriteFile(sys, []byte("Otro sistema\n"), 0644))

	p, err := LoadPrompts(sys, "")
	require.NoError(t, err)
	assert.Equal(t, "Otro sistema", p.System)
	assert.Equal(t, DefaultPrompts().Instructions, p.Instructions)

	_, err = LoadPrompts("", filepath.Join(dir, "no-existe.md"))
	assert.Error(t, err)
}

func TestHistoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chats", "historial.json")

	turns, err := LoadHistory(path)
	require.NoError(t, err)
	assert.Empty(t, turns)

	turns = append(turns, Turn{RoleUser, "¿qué priorizo?"}, Turn{RoleAssistant, "Liderazgo."})
	require.NoError(t, SaveHistory(path, turns))

	got, err := LoadHistory(path)
	require.NoError(t, err)
	assert.Equal(t, turns, got)

	require.NoError(t, os.WriteFile(path, []byte("{no es json"), 0644))
	_, err = LoadHistory(path)
	assert.Error(t, err)
}

func TestOpenAIProvider(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Respuesta"}}]}`))
	}))
	defer srv.Close()

	p := NewOpenAI("sk-test", "", srv.URL+"/v1/", 0.2)
	answer, err := p.Complete(context.Background(), "sis", []Turn{{RoleUser, "antes"}, {RoleAssistant, "resp"}}, "ahora")
	require.NoError(t, err)
	assert.Equal(t, "Respuesta", answer)

	assert.Equal(t, "gpt-4o", got.Model)
	assert.InDelta(t, 0.2, got.Temperature, 1e-9)
	assert.Equal(t, []chatMessage{
		{"system", "sis"},
		{"user", "antes"},
		{"assistant", "resp"},
		{"user", "ahora"},
	}, got.Messages)
}

func TestOpenAIProviderErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/chat/completions":
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"Incorrect API key"}}`))
		default:
			w.Write([]byte(`{"choices":[]}`))
		}
	}))
	defer srv.Close()

	_, err := NewOpenAI("bad", "", srv.URL+"/v1", 0).Complete(context.Background(), "", nil, "q")
	assert.ErrorContains(t, err, "Incorrect API key")

	_, err = NewOpenAI("k", "", srv.URL+"/otro", 0).Complete(context.Background(), "", nil, "q")
	assert.ErrorContains(t, err, "respuesta vacía")
}

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	p, err := NewProvider(ctx, ProviderConfig{Provider: "openai"})
	require.NoError(t, err)
	assert.Nil(t, p, "sin clave el asesor queda deshabilitado")

	p, err = NewProvider(ctx, ProviderConfig{Provider: "openai", OpenAIKey: "k", Model: "gpt-4o-mini"})
	require.NoError(t, err)
	assert.Equal(t, "openai:gpt-4o-mini", p.Name())

	p, err = NewProvider(ctx, ProviderConfig{Provider: "gemini"})
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = NewProvider(ctx, ProviderConfig{Provider: "otro"})
	assert.Error(t, err)

	assert.Equal(t, "GEMINI_API_KEY", ProviderConfig{Provider: "gemini"}.KeyHint())
	assert.Equal(t, "OPENAI_API_KEY", ProviderConfig{}.KeyHint())
}

func TestGeminiContents(t *testing.T) {
	got := geminiContents([]Turn{{RoleUser, "a"}, {RoleAssistant, "b"}}, "c")
	require.Len(t, got, 3)
	assert.Equal(t, genai.Role(genai.RoleUser), genai.Role(got[0].Role))
	assert.Equal(t, genai.Role(genai.RoleModel), genai.Role(got[1].Role))
	assert.Equal(t, "c", got[2].Parts[0].Text)
}
