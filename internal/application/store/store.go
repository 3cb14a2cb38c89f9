// Package store estado en memoria de cada módulo de la consola: último listado con su
// paginación, registro actual, banderas de carga/envío y último error.
//
// Lecturas (FetchList, FetchOne) nunca devuelven error: el fallo queda en el estado.
// Escrituras (Create, Update, Remove y transiciones) guardan el mensaje y devuelven el
// error para que el formulario conserve lo ingresado. Ninguna escritura refresca el
// listado; quien la invoca llama a Refetch.
//
// Cada lectura lleva un número de secuencia: solo se aplica la respuesta de la última
// solicitud emitida en su ranura (listado o registro actual), y nada se aplica después
// de Detach o si el contexto de la solicitud fue cancelado.
package store

import (
	"context"
	"sync"

	"github.com/jhoicas/backoffice-console/internal/application/dto"
	"github.com/jhoicas/backoffice-console/internal/application/ports"
	"github.com/jhoicas/backoffice-console/internal/domain"
	"github.com/jhoicas/backoffice-console/pkg/logger"
)

// Mensajes genéricos por acción cuando el API no envía uno propio.
const (
	MsgListFailed   = "No se pudieron cargar los registros"
	MsgFindFailed   = "No se pudo cargar el registro"
	MsgCreateFailed = "No se pudo crear el registro"
	MsgUpdateFailed = "No se pudo actualizar el registro"
	MsgDeleteFailed = "No se pudo eliminar el registro"
)

// State copia del estado de un store.
type State[T any] struct {
	Items          []T            `json:"items"`
	Meta           dto.Meta       `json:"meta"`
	Params         dto.ListParams `json:"params"`
	Current        *T             `json:"current,omitempty"`
	LoadingList    bool           `json:"loading_list"`
	LoadingCurrent bool           `json:"loading_current"`
	Submitting     bool           `json:"submitting"`
	Error          string         `json:"error,omitempty"`
	LastError      error          `json:"-"`
}

// ErrorStatus código HTTP del último error (0 si no hubo o fue de red).
// La consola muestra paneles distintos para 404 y 500.
func (s State[T]) ErrorStatus() int {
	if apiErr, ok := domain.AsAPIError(s.LastError); ok {
		return apiErr.Status
	}
	return 0
}

// IDFunc devuelve el identificador de un registro.
type IDFunc[T any] func(*T) int64

// Store estado de un módulo.
type Store[T any] struct {
	api  ports.ResourceAPI[T]
	idOf IDFunc[T]
	log  *logger.Logger

	life   context.Context
	finish context.CancelFunc

	mu             sync.RWMutex
	items          []T
	meta           dto.Meta
	params         dto.ListParams
	current        *T
	currentID      int64
	loadingList    bool
	loadingCurrent bool
	submitting     int
	errMsg         string
	lastErr        error
	listSeq        uint64
	currentSeq     uint64
	detached       bool
}

// New crea el store de un módulo. idOf permite conservar el registro actual solo si
// corresponde al id pedido.
func New[T any](api ports.ResourceAPI[T], idOf IDFunc[T], log *logger.Logger) *Store[T] {
	if log == nil {
		log = logger.Nop()
	}
	life, finish := context.WithCancel(context.Background())
	return &Store[T]{
		api:    api,
		idOf:   idOf,
		log:    log,
		life:   life,
		finish: finish,
		items:  []T{},
		params: dto.ListParams{}.Normalize(),
	}
}

// Snapshot copia del estado actual.
func (s *Store[T]) Snapshot() State[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store[T]) snapshotLocked() State[T] {
	items := make([]T, len(s.items))
	copy(items, s.items)
	var current *T
	if s.current != nil {
		c := *s.current
		current = &c
	}
	return State[T]{
		Items:          items,
		Meta:           s.meta,
		Params:         s.params,
		Current:        current,
		LoadingList:    s.loadingList,
		LoadingCurrent: s.loadingCurrent,
		Submitting:     s.submitting > 0,
		Error:          s.errMsg,
		LastError:      s.lastErr,
	}
}

// bind liga el contexto de la solicitud a la vida del store.
func (s *Store[T]) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	c, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.life, cancel)
	return c, func() {
		stop()
		cancel()
	}
}

// FetchList pide una página del listado y reemplaza items y paginación.
// Ante un fallo conserva los datos previos y guarda el mensaje.
func (s *Store[T]) FetchList(ctx context.Context, params dto.ListParams) State[T] {
	params = params.Normalize()

	s.mu.Lock()
	if s.detached {
		defer s.mu.Unlock()
		return s.snapshotLocked()
	}
	s.listSeq++
	seq := s.listSeq
	s.params = params
	s.loadingList = true
	s.errMsg = ""
	s.lastErr = nil
	s.mu.Unlock()

	ctx, done := s.bind(ctx)
	defer done()
	resp, err := s.api.List(ctx, params)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detached || seq != s.listSeq {
		return s.snapshotLocked()
	}
	s.loadingList = false
	if ctx.Err() != nil {
		return s.snapshotLocked()
	}
	if err != nil {
		s.fail(err, MsgListFailed, "list")
		return s.snapshotLocked()
	}
	s.items = resp.Data
	s.meta = resp.Meta
	return s.snapshotLocked()
}

// Refetch repite el último listado pedido.
func (s *Store[T]) Refetch(ctx context.Context) State[T] {
	s.mu.RLock()
	params := s.params
	s.mu.RUnlock()
	return s.FetchList(ctx, params)
}

// FetchOne carga un registro en Current. Ante un fallo conserva el registro previo
// solo si es el mismo id.
func (s *Store[T]) FetchOne(ctx context.Context, id int64) State[T] {
	s.mu.Lock()
	if s.detached {
		defer s.mu.Unlock()
		return s.snapshotLocked()
	}
	s.currentSeq++
	seq := s.currentSeq
	s.loadingCurrent = true
	s.errMsg = ""
	s.lastErr = nil
	s.mu.Unlock()

	ctx, done := s.bind(ctx)
	defer done()
	item, err := s.api.Find(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detached || seq != s.currentSeq {
		return s.snapshotLocked()
	}
	s.loadingCurrent = false
	if ctx.Err() != nil {
		return s.snapshotLocked()
	}
	if err != nil {
		if s.currentID != id {
			s.current = nil
			s.currentID = 0
		}
		s.fail(err, MsgFindFailed, "find")
		return s.snapshotLocked()
	}
	s.current = item
	s.currentID = id
	if s.idOf != nil && item != nil {
		s.currentID = s.idOf(item)
	}
	return s.snapshotLocked()
}

// Create da de alta un registro; devuelve el error del API.
func (s *Store[T]) Create(ctx context.Context, payload any) (*dto.MessageResponse[T], error) {
	return submit(ctx, s, MsgCreateFailed, "create", func(ctx context.Context) (*dto.MessageResponse[T], error) {
		return s.api.Create(ctx, payload)
	})
}

// Update modifica un registro; devuelve el error del API.
func (s *Store[T]) Update(ctx context.Context, id int64, payload any) (*dto.MessageResponse[T], error) {
	return submit(ctx, s, MsgUpdateFailed, "update", func(ctx context.Context) (*dto.MessageResponse[T], error) {
		return s.api.Update(ctx, id, payload)
	})
}

// Remove elimina un registro y devuelve el mensaje del API.
func (s *Store[T]) Remove(ctx context.Context, id int64) (string, error) {
	return submit(ctx, s, MsgDeleteFailed, "delete", func(ctx context.Context) (string, error) {
		return s.api.Delete(ctx, id)
	})
}

// Detach cierra el store: cancela las solicitudes en curso y descarta respuestas tardías.
func (s *Store[T]) Detach() {
	s.mu.Lock()
	s.detached = true
	s.loadingList = false
	s.loadingCurrent = false
	s.mu.Unlock()
	s.finish()
}

// Detached indica si el store fue cerrado.
func (s *Store[T]) Detached() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.detached
}

// Fail registra un error de una acción propia de un store de dominio.
func (s *Store[T]) Fail(err error, fallback string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail(err, fallback, "action")
}

func (s *Store[T]) fail(err error, fallback, op string) {
	s.errMsg = domain.MessageOf(err, fallback)
	s.lastErr = err
	s.log.Warn().Err(err).Str("op", op).Msg("store: operación fallida")
}

// cached busca un registro por id en el actual o en el listado.
func (s *Store[T]) cached(id int64) (*T, bool) {
	if s.idOf == nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current != nil && s.idOf(s.current) == id {
		c := *s.current
		return &c, true
	}
	for i := range s.items {
		if s.idOf(&s.items[i]) == id {
			c := s.items[i]
			return &c, true
		}
	}
	return nil, false
}

// submit envuelve una escritura: bandera de envío, mensaje de error y propagación del error.
func submit[T, R any](ctx context.Context, s *Store[T], fallback, op string, call func(context.Context) (R, error)) (R, error) {
	var zero R
	s.mu.Lock()
	if s.detached {
		s.mu.Unlock()
		return zero, domain.ErrSessionClosed
	}
	s.submitting++
	s.errMsg = ""
	s.lastErr = nil
	s.mu.Unlock()

	ctx, done := s.bind(ctx)
	defer done()
	out, err := call(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting--
	if err != nil {
		s.fail(err, fallback, op)
		return zero, err
	}
	return out, nil
}
