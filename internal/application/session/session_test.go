package session

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-console/internal/application/dto"
	"github.com/jhoicas/backoffice-console/internal/application/forms"
	"github.com/jhoicas/backoffice-console/internal/domain"
	"github.com/jhoicas/backoffice-console/internal/domain/resource"
	"github.com/jhoicas/backoffice-console/internal/infrastructure/cache"
	"github.com/jhoicas/backoffice-console/internal/infrastructure/restapi"
)

func upstream(t *testing.T, h http.HandlerFunc) *restapi.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return restapi.NewClient(restapi.Options{BaseURL: srv.URL})
}

func reply(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestRegistry_UnaSesionPorToken(t *testing.T) {
	created := 0
	reg := NewRegistry(func(token string) *Session {
		created++
		return New(restapi.NewClient(restapi.Options{BaseURL: "http://api"}), token, nil, nil)
	}, nil)

	a := reg.Get("tok-a")
	assert.Same(t, a, reg.Get("tok-a"))
	b := reg.Get("tok-b")
	assert.NotSame(t, a, b)
	assert.NotSame(t, a.Clients, b.Clients, "los stores no se comparten entre usuarios")
	assert.Equal(t, 2, created)
	assert.NotEqual(t, a.Key(), b.Key())
	assert.NotContains(t, a.Key(), "tok-a")
}

func TestRegistry_SweepCierraSesionesInactivas(t *testing.T) {
	now := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	reg := NewRegistry(func(token string) *Session {
		return New(restapi.NewClient(restapi.Options{BaseURL: "http://api"}), token, nil, nil)
	}, nil)
	reg.now = func() time.Time { return now }

	old := reg.Get("viejo")
	now = now.Add(20 * time.Minute)
	reg.Get("nuevo")
	now = now.Add(15 * time.Minute)

	n := reg.Sweep(context.Background(), 30*time.Minute)

	assert.Equal(t, 1, n)
	assert.Equal(t, 1, reg.Len())
	assert.True(t, old.Clients.Detached())
	assert.NotSame(t, old, reg.Get("viejo"), "un token expirado obtiene una sesión nueva")
}

func TestRegistry_RunConIntervaloCeroNoFalla(t *testing.T) {
	reg := NewRegistry(func(token string) *Session {
		return New(restapi.NewClient(restapi.Options{BaseURL: "http://api"}), token, nil, nil)
	}, nil)
	s := reg.Get("tok")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		reg.Run(ctx, 0, time.Hour)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run no terminó al cancelar el contexto")
	}
	assert.Equal(t, 0, reg.Len())
	assert.True(t, s.Clients.Detached(), "al salir cierra las sesiones")
}

func TestSession_ListadoGenericoConPaginacion(t *testing.T) {
	c := upstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		reply(w, http.StatusOK, `{"data":[{"id":1,"name":"Perez"}],"meta":{"current_page":3,"last_page":3,"per_page":20,"total":47}}`)
	})
	s := New(c, "tok", nil, nil)

	m, ok := s.ModuleByRoute("clients")
	require.True(t, ok)
	view := m.List(context.Background(), dto.ListParams{Page: 3})

	assert.Equal(t, resource.Client, view.Module.Key)
	assert.Equal(t, 3, view.Pagination.TotalPages)
	assert.True(t, view.Pagination.HasPrev)
	assert.False(t, view.Pagination.HasNext)
	assert.False(t, view.Empty)
}

func TestSession_CreateValidaAntesDeEnviar(t *testing.T) {
	var calls atomic.Int32
	c := upstream(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		reply(w, http.StatusCreated, `{"message":"Movimiento registrado"}`)
	})
	s := New(c, "tok", nil, nil)
	m, _ := s.Module(resource.BoxMovement)

	res, err := m.Create(context.Background(), []byte(`{"box_shift_id":1,"type":"INGRESO","concept":"Venta"}`))
	assert.ErrorIs(t, err, forms.ErrInvalid)
	assert.NotEmpty(t, res.Errors.Root, "suma de montos en cero es error de raíz")
	assert.Zero(t, calls.Load())

	res, err = m.Create(context.Background(), []byte(`{"box_shift_id":1,"type":"INGRESO","concept":"Venta","yape_amount":"15"}`))
	require.NoError(t, err)
	assert.Equal(t, "Movimiento registrado", res.Message)
	assert.Equal(t, int32(1), calls.Load())

	_, err = m.Create(context.Background(), []byte(`{`))
	assert.ErrorIs(t, err, ErrBadBody)
}

func TestSession_CreditNoteEnviaSoloLineasSeleccionadas(t *testing.T) {
	var sent dto.CreditNoteRequest
	var raw string
	c := upstream(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		raw = string(b)
		require.NoError(t, json.Unmarshal(b, &sent))
		reply(w, http.StatusCreated, `{"message":"Nota creada","data":{"id":8}}`)
	})
	s := New(c, "tok", nil, nil)
	m, _ := s.Module(resource.CreditNote)

	body := `{"sale_id":3,"motive_id":1,"details":[
		{"selected":true,"sale_detail_id":11,"product_id":1,"quantity_kg":"5","unit_price":"2"},
		{"selected":false,"sale_detail_id":12,"product_id":2,"quantity_kg":"9","unit_price":"2"}]}`
	res, err := m.Create(context.Background(), []byte(body))

	require.NoError(t, err)
	assert.Equal(t, "Nota creada", res.Message)
	require.Len(t, sent.Details, 1)
	assert.Equal(t, int64(11), sent.Details[0].SaleDetailID)
	assert.False(t, strings.Contains(raw, "selected"))
}

func TestSession_ErroresDelAPIEnElFormulario(t *testing.T) {
	c := upstream(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusUnprocessableEntity, `{"message":"El documento ya existe","errors":{"document_number":["Ya registrado"]}}`)
	})
	s := New(c, "tok", nil, nil)
	m, _ := s.Module(resource.Client)

	res, err := m.Create(context.Background(), []byte(`{"document_type":"DNI","document_number":"12345678","name":"Ana Perez"}`))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, []string{"El documento ya existe"}, res.Errors.Root)
	assert.Equal(t, []string{"Ya registrado"}, res.Errors.Fields["document_number"])
}

func TestSession_ModuloDeSoloLectura(t *testing.T) {
	s := New(restapi.NewClient(restapi.Options{BaseURL: "http://api"}), "tok", nil, nil)
	m, ok := s.Module(resource.Kardex)
	require.True(t, ok)
	_, err := m.Create(context.Background(), []byte(`{}`))
	assert.ErrorIs(t, err, ErrReadOnly)
}

func TestSession_DocumentoIncluyeAcciones(t *testing.T) {
	c := upstream(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, `{"data":{"id":5,"status":"CONFIRMADO","document_type":"INGRESO"}}`)
	})
	s := New(c, "tok", nil, nil)
	m, _ := s.ModuleByRoute("warehouse-documents")

	view := m.Get(context.Background(), 5)

	assert.Equal(t, []string{"view", "cancel"}, view.Actions)
	_, err := m.Update(context.Background(), 5, []byte(`{}`))
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "un documento confirmado no se edita")
}

func TestSession_LookupCacheadoPorSesion(t *testing.T) {
	var calls atomic.Int32
	c := upstream(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/motive", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		reply(w, http.StatusOK, `{"data":[{"id":1,"name":"Compra"}],"meta":{"total":1}}`)
	})
	mem := cache.NewMemory()
	lookups := cache.NewLookupService(mem, time.Minute, nil)
	s := New(c, "tok", lookups, nil)

	first, err := s.Lookup(context.Background(), resource.Motive)
	require.NoError(t, err)
	second, err := s.Lookup(context.Background(), resource.Motive)
	require.NoError(t, err)

	assert.JSONEq(t, `[{"id":1,"name":"Compra"}]`, string(first))
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load())

	_, err = s.Lookup(context.Background(), resource.Kardex)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	s.Close(context.Background())
	assert.Zero(t, mem.Len(), "al cerrar la sesión se limpia su caché")
}
