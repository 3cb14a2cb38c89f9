package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrUnavailable       = errors.New("servicio no disponible")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrSessionClosed     = errors.New("sesión cerrada")
)
