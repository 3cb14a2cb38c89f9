package restapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-console/internal/application/dto"
	"github.com/jhoicas/backoffice-console/internal/domain"
	"github.com/jhoicas/backoffice-console/internal/domain/entity"
	"github.com/jhoicas/backoffice-console/internal/infrastructure/restapi"
)

func newServer(t *testing.T, h http.HandlerFunc) *restapi.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return restapi.NewClient(restapi.Options{BaseURL: srv.URL + "/api/", Token: "tok-123"})
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestResource_ListEnviaParametrosYToken(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/client", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "20", r.URL.Query().Get("per_page"))
		assert.Equal(t, "perez", r.URL.Query().Get("search"))
		assert.Equal(t, "RUC", r.URL.Query().Get("document_type"))
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		writeJSON(w, http.StatusOK, `{"data":[{"id":1,"name":"Perez SAC"}],"links":{"prev":null,"next":null},"meta":{"current_page":2,"last_page":3,"per_page":20,"total":47}}`)
	})
	clients := restapi.NewResource[entity.Client](c, "/client")

	out, err := clients.List(context.Background(), dto.ListParams{Page: 2, Search: "perez", Filters: map[string]string{"document_type": "RUC"}})

	require.NoError(t, err)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "Perez SAC", out.Data[0].Name)
	assert.Equal(t, 47, out.Meta.Total)
	assert.Equal(t, 3, out.Meta.LastPage)
}

func TestResource_ListSinDatosDevuelveSliceVacio(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"meta":{"current_page":1,"last_page":1,"per_page":20,"total":0}}`)
	})
	out, err := restapi.NewResource[entity.Client](c, "/client").List(context.Background(), dto.ListParams{})
	require.NoError(t, err)
	assert.NotNil(t, out.Data)
	assert.Empty(t, out.Data)
}

func TestResource_FindYCreate(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/box/4":
			writeJSON(w, http.StatusOK, `{"data":{"id":4,"name":"Caja 1","is_active":true}}`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/box":
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var body dto.BoxRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Caja 2", body.Name)
			writeJSON(w, http.StatusCreated, `{"message":"Caja creada","data":{"id":5,"name":"Caja 2"}}`)
		default:
			w.WriteHeader(http.StatusTeapot)
		}
	})
	boxes := restapi.NewResource[entity.Box](c, "/box")

	box, err := boxes.Find(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Caja 1", box.Name)

	created, err := boxes.Create(context.Background(), dto.BoxRequest{Name: "Caja 2"})
	require.NoError(t, err)
	assert.Equal(t, "Caja creada", created.Message)
	require.NotNil(t, created.Data)
	assert.Equal(t, int64(5), created.Data.ID)
}

func TestResource_DeleteSoloMensaje(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		writeJSON(w, http.StatusOK, `{"message":"Eliminado"}`)
	})
	msg, err := restapi.NewResource[entity.Motive](c, "/motive").Delete(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Eliminado", msg)
}

func TestErrores_PrecedenciaDelMensaje(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		kind    domain.ErrorKind
		message string
	}{
		{"message", http.StatusUnprocessableEntity, `{"message":"Datos inválidos","error":"otro"}`, domain.KindValidation, "Datos inválidos"},
		{"error texto", http.StatusBadRequest, `{"error":"Stock insuficiente"}`, domain.KindBadRequest, "Stock insuficiente"},
		{"error objeto", http.StatusConflict, `{"error":{"message":"Documento ya confirmado"}}`, domain.KindConflict, "Documento ya confirmado"},
		{"message no es texto", http.StatusInternalServerError, `{"message":{"x":1}}`, domain.KindServer, ""},
		{"cuerpo no JSON", http.StatusBadGateway, `<html>bad gateway</html>`, domain.KindServer, ""},
		{"cuerpo vacío", http.StatusNotFound, ``, domain.KindNotFound, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tc.status, tc.body)
			})
			_, err := restapi.NewResource[entity.Client](c, "/client").Find(context.Background(), 1)

			apiErr, ok := domain.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tc.kind, apiErr.Kind)
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.message, apiErr.Message)
			if tc.message == "" {
				assert.Equal(t, "No se pudo cargar", domain.MessageOf(err, "No se pudo cargar"))
			}
		})
	}
}

func TestErrores_CamposDeValidacion(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, `{"message":"Datos inválidos","errors":{"name":["El nombre es obligatorio"],"serie":"Serie duplicada","x":[1,"ok"]}}`)
	})
	_, err := restapi.NewResource[entity.Box](c, "/box").Create(context.Background(), dto.BoxRequest{})

	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"El nombre es obligatorio"}, apiErr.Fields["name"])
	assert.Equal(t, []string{"Serie duplicada"}, apiErr.Fields["serie"])
	assert.Equal(t, []string{"ok"}, apiErr.Fields["x"])
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestErrores_Red(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	c := restapi.NewClient(restapi.Options{BaseURL: srv.URL})

	_, err := restapi.NewResource[entity.Client](c, "/client").Find(context.Background(), 1)

	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindNetwork, apiErr.Kind)
	assert.Zero(t, apiErr.Status)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestErrores_ContextoCancelado(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":{}}`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := restapi.NewResource[entity.Client](c, "/client").Find(ctx, 1)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestErrores_RespuestaExitosaMalformada(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":`)
	})
	_, err := restapi.NewResource[entity.Client](c, "/client").Find(context.Background(), 1)
	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindUnknown, apiErr.Kind)
}

func TestWarehouseDocumentAPI_ConfirmYCancel(t *testing.T) {
	var paths []string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		paths = append(paths, r.URL.Path)
		writeJSON(w, http.StatusOK, `{"message":"ok"}`)
	})
	api := restapi.NewWarehouseDocumentAPI(c)

	_, err := api.Confirm(context.Background(), 15)
	require.NoError(t, err)
	_, err = api.Cancel(context.Background(), 15)
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/warehouse-document/15/confirm", "/api/warehouse-document/15/cancel"}, paths)
}

func TestBoxShiftAPI_Close(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/boxshift/close", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "980.5", body["closed_amount"])
		writeJSON(w, http.StatusOK, `{"message":"Turno cerrado","data":{"id":2,"status":"CERRADO","is_closed":true}}`)
	})

	out, err := restapi.NewBoxShiftAPI(c).Close(context.Background(), dto.CloseBoxShiftRequest{
		BoxShiftID:   2,
		ClosedAmount: decimal.RequireFromString("980.50"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Turno cerrado", out.Message)
	assert.Equal(t, entity.BoxShiftClosed, out.Data.Status)
}

func TestPriceListAPI_GetPriceYAssignClient(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/pricelist/get-price":
			writeJSON(w, http.StatusOK, `{"data":{"price_list_id":1,"product_id":9,"price":"4.50","currency":"PEN"}}`)
		case "/api/pricelist/1/assign-client":
			writeJSON(w, http.StatusOK, `{"message":"Cliente asignado"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	api := restapi.NewPriceListAPI(c)

	quote, err := api.GetPrice(context.Background(), dto.GetPriceRequest{ProductID: 9, Weight: decimal.NewFromInt(120)})
	require.NoError(t, err)
	assert.True(t, quote.Price.Equal(decimal.RequireFromString("4.5")))

	out, err := api.AssignClient(context.Background(), 1, dto.AssignClientRequest{ClientID: 3})
	require.NoError(t, err)
	assert.Equal(t, "Cliente asignado", out.Message)
}

func TestCreditNoteAPI_Export(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/creditnote/export", r.URL.Path)
		assert.Equal(t, "excel", r.URL.Query().Get("format"))
		assert.Equal(t, "2026", r.URL.Query().Get("search"))
		assert.Empty(t, r.URL.Query().Get("page"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="notas.xlsx"`)
		_, _ = w.Write([]byte{0x50, 0x4b, 0x03, 0x04})
	})

	blob, err := restapi.NewCreditNoteAPI(c).Export(context.Background(), dto.ExportExcel, dto.ListParams{Search: "2026"})

	require.NoError(t, err)
	assert.Equal(t, "notas.xlsx", blob.Filename)
	assert.Equal(t, []byte{0x50, 0x4b, 0x03, 0x04}, blob.Data)
}
