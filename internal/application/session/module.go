package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jhoicas/backoffice-console/internal/application/dto"
	"github.com/jhoicas/backoffice-console/internal/application/forms"
	"github.com/jhoicas/backoffice-console/internal/application/store"
	"github.com/jhoicas/backoffice-console/internal/application/validation"
	"github.com/jhoicas/backoffice-console/internal/domain"
	"github.com/jhoicas/backoffice-console/internal/domain/resource"
)

var (
	// ErrReadOnly el módulo no admite alta, edición ni borrado genéricos.
	ErrReadOnly = errors.New("módulo de solo lectura")
	// ErrBadBody el cuerpo no es JSON válido para el formulario del módulo.
	ErrBadBody = errors.New("cuerpo inválido")
)

// ListView vista de la página de listado: filas, paginación y estado de error/vacío.
type ListView struct {
	Module      resource.Metadata `json:"module"`
	Items       any               `json:"items"`
	Meta        dto.Meta          `json:"meta"`
	Pagination  dto.PageView      `json:"pagination"`
	Params      dto.ListParams    `json:"params"`
	Empty       bool              `json:"empty"`
	Error       string            `json:"error,omitempty"`
	ErrorStatus int               `json:"error_status,omitempty"`
}

// ItemView vista de detalle.
type ItemView struct {
	Module      resource.Metadata `json:"module"`
	Item        any               `json:"item"`
	Actions     []string          `json:"actions,omitempty"`
	Error       string            `json:"error,omitempty"`
	ErrorStatus int               `json:"error_status,omitempty"`
}

// Found indica si el registro se cargó.
func (v ItemView) Found() bool { return v.Error == "" && v.Item != nil }

// WriteResult resultado de un alta, edición o borrado.
type WriteResult struct {
	Message string                `json:"message,omitempty"`
	Data    any                   `json:"data,omitempty"`
	Errors  validation.FormErrors `json:"errors"`
}

// Module acciones de un módulo sin tipo concreto, para las rutas genéricas del gateway.
type Module interface {
	Meta() resource.Metadata
	List(ctx context.Context, params dto.ListParams) ListView
	Get(ctx context.Context, id int64) ItemView
	Create(ctx context.Context, body []byte) (WriteResult, error)
	Update(ctx context.Context, id int64, body []byte) (WriteResult, error)
	Delete(ctx context.Context, id int64) (WriteResult, error)
	Validate(body []byte) (validation.FormErrors, error)
}

func listView[T any](md resource.Metadata, st store.State[T]) ListView {
	return ListView{
		Module:      md,
		Items:       st.Items,
		Meta:        st.Meta,
		Pagination:  dto.NewPaginator(st.Meta).View(),
		Params:      st.Params,
		Empty:       len(st.Items) == 0,
		Error:       st.Error,
		ErrorStatus: st.ErrorStatus(),
	}
}

func itemView[T any](md resource.Metadata, st store.State[T]) ItemView {
	v := ItemView{Module: md, Error: st.Error, ErrorStatus: st.ErrorStatus()}
	if st.Current != nil {
		v.Item = st.Current
	}
	return v
}

// readModule módulo de solo lectura (kardex, catálogos, ventas, compras).
type readModule[T any] struct {
	md    resource.Metadata
	store *store.Store[T]
}

func (m *readModule[T]) Meta() resource.Metadata { return m.md }

func (m *readModule[T]) List(ctx context.Context, params dto.ListParams) ListView {
	return listView(m.md, m.store.FetchList(ctx, params))
}

func (m *readModule[T]) Get(ctx context.Context, id int64) ItemView {
	return itemView(m.md, m.store.FetchOne(ctx, id))
}

func (m *readModule[T]) Create(context.Context, []byte) (WriteResult, error) {
	return WriteResult{}, ErrReadOnly
}

func (m *readModule[T]) Update(context.Context, int64, []byte) (WriteResult, error) {
	return WriteResult{}, ErrReadOnly
}

func (m *readModule[T]) Delete(context.Context, int64) (WriteResult, error) {
	return WriteResult{}, ErrReadOnly
}

func (m *readModule[T]) Validate([]byte) (validation.FormErrors, error) {
	return validation.FormErrors{}, ErrReadOnly
}

// writeModule módulo con formulario: R es lo que envía la consola y P el payload del API
// (distintos cuando el formulario tiene líneas seleccionables).
type writeModule[T, R, P any] struct {
	readModule[T]
	convert func(R) P
	guard   func(id int64, op string) error
}

func newWriteModule[T, R, P any](md resource.Metadata, s *store.Store[T], convert func(R) P) *writeModule[T, R, P] {
	return &writeModule[T, R, P]{readModule: readModule[T]{md: md, store: s}, convert: convert}
}

func same[P any](p P) P { return p }

func (m *writeModule[T, R, P]) decode(body []byte) (P, validation.FormErrors, error) {
	var zero P
	var r R
	if err := json.Unmarshal(body, &r); err != nil {
		var errs validation.FormErrors
		errs.Add(validation.RootField, "El formulario enviado no es válido")
		return zero, errs, fmt.Errorf("%w: %v", ErrBadBody, err)
	}
	return m.convert(r), validation.FormErrors{}, nil
}

func (m *writeModule[T, R, P]) Validate(body []byte) (validation.FormErrors, error) {
	p, errs, err := m.decode(body)
	if err != nil {
		return errs, err
	}
	return validation.Validate(p), nil
}

func (m *writeModule[T, R, P]) Create(ctx context.Context, body []byte) (WriteResult, error) {
	return m.write(ctx, body, store.MsgCreateFailed, func(ctx context.Context, p P) (*dto.MessageResponse[T], error) {
		return m.store.Create(ctx, p)
	})
}

func (m *writeModule[T, R, P]) Update(ctx context.Context, id int64, body []byte) (WriteResult, error) {
	if err := m.check(id, "update"); err != nil {
		return m.rejected(err, store.MsgUpdateFailed), err
	}
	return m.write(ctx, body, store.MsgUpdateFailed, func(ctx context.Context, p P) (*dto.MessageResponse[T], error) {
		return m.store.Update(ctx, id, p)
	})
}

func (m *writeModule[T, R, P]) Delete(ctx context.Context, id int64) (WriteResult, error) {
	if err := m.check(id, "delete"); err != nil {
		return m.rejected(err, store.MsgDeleteFailed), err
	}
	msg, err := m.store.Remove(ctx, id)
	if err != nil {
		return WriteResult{Errors: forms.ServerErrors(err, store.MsgDeleteFailed)}, err
	}
	return WriteResult{Message: msg}, nil
}

func (m *writeModule[T, R, P]) check(id int64, op string) error {
	if m.guard == nil {
		return nil
	}
	return m.guard(id, op)
}

func (m *writeModule[T, R, P]) rejected(err error, fallback string) WriteResult {
	var errs validation.FormErrors
	errs.Add(validation.RootField, domain.MessageOf(err, fallback))
	return WriteResult{Errors: errs}
}

// write corre el formulario del módulo: valida, envía y conserva los errores del API.
func (m *writeModule[T, R, P]) write(ctx context.Context, body []byte, fallback string, send func(context.Context, P) (*dto.MessageResponse[T], error)) (WriteResult, error) {
	p, errs, err := m.decode(body)
	if err != nil {
		return WriteResult{Errors: errs}, err
	}
	form := forms.New(p, nil).WithFailureMessage(fallback)
	var resp *dto.MessageResponse[T]
	err = form.Submit(ctx, func(ctx context.Context, v P) error {
		var sendErr error
		resp, sendErr = send(ctx, v)
		return sendErr
	})
	if err != nil {
		return WriteResult{Errors: form.Errors()}, err
	}
	out := WriteResult{Message: resp.Message, Errors: validation.FormErrors{}}
	if resp.Data != nil {
		out.Data = resp.Data
	}
	return out, nil
}
