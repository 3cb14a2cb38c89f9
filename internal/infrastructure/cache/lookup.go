package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/backoffice-console/internal/application/ports"
	"github.com/jhoicas/backoffice-console/pkg/logger"
)

// LookupService sirve listas de referencia desde caché y agrupa las cargas concurrentes
// de la misma clave en una sola llamada al API.
type LookupService struct {
	cache        ports.Cache
	ttl          time.Duration
	fetchTimeout time.Duration
	group        singleflight.Group
	log          *logger.Logger
}

// DefaultFetchTimeout tope de la carga compartida de una lista.
const DefaultFetchTimeout = 30 * time.Second

// NewLookupService crea el servicio.
func NewLookupService(c ports.Cache, ttl time.Duration, log *logger.Logger) *LookupService {
	if log == nil {
		log = logger.Nop()
	}
	return &LookupService{cache: c, ttl: ttl, fetchTimeout: DefaultFetchTimeout, log: log}
}

// WithFetchTimeout fija el tope de la carga compartida (normalmente el timeout del API).
func (s *LookupService) WithFetchTimeout(d time.Duration) *LookupService {
	if d > 0 {
		s.fetchTimeout = d
	}
	return s
}

// Get devuelve la lista cacheada o la carga con fetch. Un fallo de la caché no impide
// servir la lista: se registra y se va al API.
//
// La carga la comparten todos los que piden la misma clave, así que no depende de la
// cancelación de quien la inició; cada llamador deja de esperar cuando su ctx termina.
func (s *LookupService) Get(ctx context.Context, key string, fetch func(context.Context) ([]byte, error)) ([]byte, error) {
	if b, ok := s.read(ctx, key); ok {
		return b, nil
	}
	ch := s.group.DoChan(key, func() (any, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
		defer cancel()
		if b, ok := s.read(shared, key); ok {
			return b, nil
		}
		b, err := fetch(shared)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(shared, key, b, s.ttl); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("cache: no se pudo guardar")
		}
		return b, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

// Invalidate elimina las claves con el prefijo (ej. al expirar una sesión).
func (s *LookupService) Invalidate(ctx context.Context, prefix string) error {
	return s.cache.DeletePrefix(ctx, prefix)
}

func (s *LookupService) read(ctx context.Context, key string) ([]byte, bool) {
	b, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache: lectura fallida")
		return nil, false
	}
	return b, ok
}
