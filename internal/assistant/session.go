package assistant

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/labstack/gommon/random"
	"go.uber.org/zap"
)

const systemInstruction = `Eres "El Boti Amigo", un asistente virtual experto en carretes, fiestas y coctelería chilena para la app "Salvando La Noche".
Tu tono es divertido, coloquial chileno (pero respetuoso), y experto en licores.
Tu objetivo es recomendar productos de una botillería, sugerir mezclas (piscolas, terremotos, mojitos) y ayudar a armar la previa.
Si te preguntan por contacto, da el WhatsApp de la tienda.
Si te preguntan por precios específicos, di que pueden variar pero que busquen en el catálogo de la app.
Mantén las respuestas breves y útiles (máximo 1 párrafo).`

// Fallback replies when the service is unreachable or returns nothing. The
// chat keeps flowing; errors never surface to the customer.
const (
	fallbackEmpty = "¡Salud! No pude procesar eso, ¿intentamos de nuevo?"
	fallbackError = "Ups, parece que me tomé uno de más. Hubo un error al conectar con el cerebro digital. Intenta más tarde."
)

// Turn is one exchange in a chat session.
type Turn struct {
	Role string    `json:"role"` // "user" or "model"
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Session is one customer's conversation. Lifetime is caller-controlled via
// the Manager; there is no process-wide chat singleton. The same session id
// may arrive from concurrent requests, so the mutable state is mutex-guarded.
type Session struct {
	ID  string
	gen Generator

	mu      sync.Mutex
	history []Turn
	lastUse time.Time
}

func newSession(gen Generator) *Session {
	return &Session{
		ID:      random.String(16),
		gen:     gen,
		lastUse: time.Now(),
	}
}

// Send runs one chat turn. It never fails: service errors become the
// fallback reply and the conversation continues. The lock is dropped for the
// duration of the service call so a slow turn never blocks History or the
// sweep job.
func (s *Session) Send(ctx context.Context, msg string) string {
	s.mu.Lock()
	s.lastUse = time.Now()
	s.history = append(s.history, Turn{Role: "user", Text: msg, At: s.lastUse})
	prompt := s.transcript()
	s.mu.Unlock()

	reply, err := s.gen.Reply(ctx, systemInstruction, prompt)
	switch {
	case err != nil:
		zap.L().Warn("assistant: chat turn failed", zap.String("session", s.ID), zap.Error(err))
		reply = fallbackError
	case strings.TrimSpace(reply) == "":
		reply = fallbackEmpty
	}

	s.mu.Lock()
	s.history = append(s.history, Turn{Role: "model", Text: reply, At: time.Now()})
	s.mu.Unlock()
	return reply
}

// History returns a copy of the exchanges so far.
func (s *Session) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.history))
	copy(out, s.history)
	return out
}

// transcript renders the history for the prompt. Caller holds s.mu.
func (s *Session) transcript() string {
	var b strings.Builder
	for _, t := range s.history {
		b.WriteString(t.Role)
		b.WriteString(": ")
		b.WriteString(t.Text)
		b.WriteString("\n")
	}
	return b.String()
}

// expired reports whether the session has been idle since before cutoff.
func (s *Session) expired(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUse.Before(cutoff)
}

// Manager owns chat sessions. Sessions idle past maxIdle are dropped by the
// periodic sweep job.
type Manager struct {
	gen      Generator
	mu       sync.Mutex
	sessions map[string]*Session
	maxIdle  time.Duration
}

func NewManager(gen Generator, maxIdle time.Duration) *Manager {
	return &Manager{
		gen:      gen,
		sessions: make(map[string]*Session),
		maxIdle:  maxIdle,
	}
}

// Get returns the session with the given id, or a fresh one when the id is
// empty or unknown (expired sessions restart transparently).
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := newSession(m.gen)
	m.sessions[s.ID] = s
	return s
}

// Sweep drops sessions idle past the configured limit and returns how many
// were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-m.maxIdle)
	var n int
	for id, s := range m.sessions {
		if s.expired(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Generator exposes the underlying generation client for one-shot calls
// (voucher analysis) that need no session state.
func (m *Manager) Generator() Generator {
	return m.gen
}

// Len is the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
