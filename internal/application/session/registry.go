package session

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/backoffice-console/pkg/logger"
)

// Factory crea la sesión de un token.
type Factory func(token string) *Session

// Registry sesiones activas por token. Reemplaza a los stores globales: cada usuario
// tiene los suyos y nada se comparte entre tokens.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	factory  Factory
	now      func() time.Time
	log      *logger.Logger
}

// NewRegistry crea el registro.
func NewRegistry(factory Factory, log *logger.Logger) *Registry {
	if log == nil {
		log = logger.Nop()
	}
	return &Registry{
		sessions: make(map[string]*Session),
		factory:  factory,
		now:      time.Now,
		log:      log,
	}
}

// Get devuelve la sesión del token, creándola la primera vez.
func (r *Registry) Get(token string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	s, ok := r.sessions[token]
	if !ok {
		s = r.factory(token)
		r.sessions[token] = s
		r.log.Debug().Str("session", s.Key()).Msg("session: creada")
	}
	s.Touch(now)
	return s
}

// Len cantidad de sesiones activas.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep cierra las sesiones sin uso hace más de ttl. Devuelve cuántas cerró.
func (r *Registry) Sweep(ctx context.Context, ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)
	var idle []*Session

	r.mu.Lock()
	for token, s := range r.sessions {
		if s.LastSeen().Before(cutoff) {
			idle = append(idle, s)
			delete(r.sessions, token)
		}
	}
	r.mu.Unlock()

	for _, s := range idle {
		s.Close(ctx)
		r.log.Debug().Str("session", s.Key()).Msg("session: expirada")
	}
	return len(idle)
}

// DefaultSweepInterval intervalo de barrido cuando Run recibe uno <= 0.
const DefaultSweepInterval = time.Minute

// Run barre periódicamente hasta que ctx se cancele; al salir cierra todas las sesiones.
func (r *Registry) Run(ctx context.Context, interval, ttl time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.CloseAll(context.Background())
			return
		case <-ticker.C:
			if n := r.Sweep(ctx, ttl); n > 0 {
				r.log.Info().Int("expired", n).Int("active", r.Len()).Msg("session: barrido")
			}
		}
	}
}

// CloseAll cierra todas las sesiones.
func (r *Registry) CloseAll(ctx context.Context) {
	r.mu.Lock()
	all := make([]*Session, 0, len(r.sessions))
	for token, s := range r.sessions {
		all = append(all, s)
		delete(r.sessions, token)
	}
	r.mu.Unlock()
	for _, s := range all {
		s.Close(ctx)
	}
}
