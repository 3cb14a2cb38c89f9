package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind clasifica los fallos del API de negocio. La consola decide qué mostrar
// (toast, errores por campo, panel vacío) según el tipo y no según la forma del JSON.
type ErrorKind string

const (
	KindNetwork      ErrorKind = "network"
	KindBadRequest   ErrorKind = "bad_request"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindValidation   ErrorKind = "validation"
	KindServer       ErrorKind = "server"
	KindUnknown      ErrorKind = "unknown"
)

// GenericMessage mensaje cuando el API no envía uno propio.
const GenericMessage = "Ocurrió un error al procesar la solicitud"

// APIError fallo de una llamada al API de negocio.
// Status es 0 para fallos de red (no hubo respuesta).
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Fields  map[string][]string // errores por campo devueltos por el API (422)
	Cause   error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("api %s (%d): %s", e.Kind, e.Status, e.Message)
}

// Unwrap expone el error de dominio equivalente para usar errors.Is(err, domain.ErrNotFound).
func (e *APIError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

func (e *APIError) sentinel() error {
	switch e.Kind {
	case KindNotFound:
		return ErrNotFound
	case KindUnauthorized:
		return ErrUnauthorized
	case KindForbidden:
		return ErrForbidden
	case KindConflict:
		return ErrConflict
	case KindValidation, KindBadRequest:
		return ErrInvalidInput
	case KindNetwork, KindServer:
		return ErrUnavailable
	}
	return nil
}

// KindFromStatus mapea un código HTTP al tipo de error.
func KindFromStatus(status int) ErrorKind {
	switch {
	case status == http.StatusBadRequest:
		return KindBadRequest
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status == http.StatusUnprocessableEntity:
		return KindValidation
	case status >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

// AsAPIError extrae un *APIError de la cadena de errores.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// MessageOf devuelve el mensaje legible de un error: el del API si existe,
// si no el fallback de la acción (o el genérico).
func MessageOf(err error, fallback string) string {
	if fallback == "" {
		fallback = GenericMessage
	}
	if err == nil {
		return ""
	}
	if apiErr, ok := AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
