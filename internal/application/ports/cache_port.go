package ports

import (
	"context"
	"time"
)

// Cache puerto de caché para listas de referencia. Implementaciones: Redis y memoria.
type Cache interface {
	// Get devuelve (valor, true) si la clave existe y no venció.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// DeletePrefix elimina todas las claves con el prefijo (ej. al cerrar una sesión).
	DeletePrefix(ctx context.Context, prefix string) error
}
