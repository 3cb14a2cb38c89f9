// Package forms estado de los formularios de alta/edición: valores, errores y bandera de envío.
// La validación corre en cada cambio y otra vez al enviar; el envío se bloquea mientras
// el formulario es inválido o ya hay un envío en curso.
package forms

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/backoffice-console/internal/application/validation"
	"github.com/jhoicas/backoffice-console/internal/domain"
)

var (
	// ErrInvalid el formulario tiene errores de validación.
	ErrInvalid = errors.New("formulario inválido")
	// ErrInFlight ya hay un envío en curso.
	ErrInFlight = errors.New("envío en curso")
)

// ValidateFunc valida los valores de un formulario.
type ValidateFunc[T any] func(T) validation.FormErrors

// Form formulario con valores de tipo T.
type Form[T any] struct {
	mu         sync.Mutex
	values     T
	errs       validation.FormErrors
	submitting bool
	validate   ValidateFunc[T]
	failMsg    string
}

// New crea un formulario; validate nil usa el esquema de tags de T.
func New[T any](initial T, validate ValidateFunc[T]) *Form[T] {
	if validate == nil {
		validate = func(v T) validation.FormErrors { return validation.Validate(v) }
	}
	f := &Form[T]{values: initial, validate: validate, failMsg: "No se pudo guardar el registro"}
	f.errs = validate(initial)
	return f
}

// WithFailureMessage mensaje genérico cuando el API no devuelve uno propio.
func (f *Form[T]) WithFailureMessage(msg string) *Form[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failMsg = msg
	return f
}

// Values copia de los valores actuales.
func (f *Form[T]) Values() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Errors errores de la última validación (o del último envío rechazado).
func (f *Form[T]) Errors() validation.FormErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs
}

// Change aplica un cambio y revalida.
func (f *Form[T]) Change(fn func(*T)) validation.FormErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.values)
	f.errs = f.validate(f.values)
	return f.errs
}

// Submitting indica si hay un envío en curso.
func (f *Form[T]) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// CanSubmit false mientras haya errores o un envío en curso.
func (f *Form[T]) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.submitting && !f.errs.HasErrors()
}

// Submit valida y ejecuta send. Si el API rechaza el envío, los valores se conservan
// y el mensaje (y errores por campo) del API quedan en Errors.
func (f *Form[T]) Submit(ctx context.Context, send func(context.Context, T) error) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrInFlight
	}
	f.errs = f.validate(f.values)
	if f.errs.HasErrors() {
		f.mu.Unlock()
		return ErrInvalid
	}
	f.submitting = true
	values := f.values
	f.mu.Unlock()

	err := send(ctx, values)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		f.errs = ServerErrors(err, f.failMsg)
		return err
	}
	return nil
}

// Reset reemplaza los valores (ej. después de un envío exitoso) y revalida.
func (f *Form[T]) Reset(values T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = values
	f.errs = f.validate(values)
}

// ServerErrors convierte un rechazo del API en errores de formulario:
// mensaje en la raíz y, si vienen, errores por campo.
func ServerErrors(err error, fallback string) validation.FormErrors {
	var out validation.FormErrors
	out.Add(validation.RootField, domain.MessageOf(err, fallback))
	if apiErr, ok := domain.AsAPIError(err); ok {
		for path, msgs := range apiErr.Fields {
			for _, m := range msgs {
				out.Add(path, m)
			}
		}
	}
	return out
}
