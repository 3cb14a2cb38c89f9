package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-console/internal/application/dto"
	"github.com/jhoicas/backoffice-console/internal/application/ports"
	"github.com/jhoicas/backoffice-console/internal/application/store"
	"github.com/jhoicas/backoffice-console/internal/domain"
	"github.com/jhoicas/backoffice-console/internal/domain/entity"
	"github.com/jhoicas/backoffice-console/internal/domain/warehouse"
)

type fakeWarehouseAPI struct {
	fakeAPI[entity.WarehouseDocument]
	confirmed []int64
	cancelled []int64
}

func (f *fakeWarehouseAPI) Confirm(_ context.Context, id int64) (*dto.MessageResponse[entity.WarehouseDocument], error) {
	f.confirmed = append(f.confirmed, id)
	return &dto.MessageResponse[entity.WarehouseDocument]{Message: "Documento confirmado"}, nil
}

func (f *fakeWarehouseAPI) Cancel(_ context.Context, id int64) (*dto.MessageResponse[entity.WarehouseDocument], error) {
	f.cancelled = append(f.cancelled, id)
	return &dto.MessageResponse[entity.WarehouseDocument]{Message: "Documento anulado"}, nil
}

func newWarehouseAPI(docs ...entity.WarehouseDocument) *fakeWarehouseAPI {
	api := &fakeWarehouseAPI{}
	api.find = func(_ context.Context, id int64) (*entity.WarehouseDocument, error) {
		for _, d := range docs {
			if d.ID == id {
				d := d
				return &d, nil
			}
		}
		return nil, &domain.APIError{Kind: domain.KindNotFound, Status: 404}
	}
	return api
}

func TestWarehouseDocumentStore_ConfirmaBorrador(t *testing.T) {
	api := newWarehouseAPI(entity.WarehouseDocument{ID: 1, Status: string(warehouse.StatusDraft)})
	s := store.NewWarehouseDocumentStore(api, nil)
	s.FetchOne(context.Background(), 1)

	msg, err := s.Confirm(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "Documento confirmado", msg)
	assert.Equal(t, []int64{1}, api.confirmed)
	assert.Equal(t, string(warehouse.StatusDraft), s.Snapshot().Current.Status, "sin cambio optimista")
}

func TestWarehouseDocumentStore_TransicionInvalidaNoLlamaAlAPI(t *testing.T) {
	api := newWarehouseAPI(
		entity.WarehouseDocument{ID: 1, Status: string(warehouse.StatusConfirmed)},
		entity.WarehouseDocument{ID: 2, Status: string(warehouse.StatusCancelled)},
	)
	s := store.NewWarehouseDocumentStore(api, nil)

	s.FetchOne(context.Background(), 1)
	_, err := s.Confirm(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.NotEmpty(t, s.Snapshot().Error)

	s.FetchOne(context.Background(), 2)
	_, err = s.Cancel(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	assert.Empty(t, api.confirmed)
	assert.Empty(t, api.cancelled)
}

func TestWarehouseDocumentStore_SinCacheDelegaEnElAPI(t *testing.T) {
	api := newWarehouseAPI()
	s := store.NewWarehouseDocumentStore(api, nil)

	_, err := s.Cancel(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, []int64{7}, api.cancelled)
}

type fakeBoxShiftAPI struct {
	fakeAPI[entity.BoxShift]
	closed int
}

func (f *fakeBoxShiftAPI) Open(context.Context, dto.OpenBoxShiftRequest) (*dto.MessageResponse[entity.BoxShift], error) {
	return &dto.MessageResponse[entity.BoxShift]{Message: "Turno abierto"}, nil
}

func (f *fakeBoxShiftAPI) Close(context.Context, dto.CloseBoxShiftRequest) (*dto.MessageResponse[entity.BoxShift], error) {
	f.closed++
	return &dto.MessageResponse[entity.BoxShift]{Message: "Turno cerrado"}, nil
}

func TestBoxShiftStore_NoCierraTurnoCerrado(t *testing.T) {
	api := &fakeBoxShiftAPI{}
	api.find = func(_ context.Context, id int64) (*entity.BoxShift, error) {
		return &entity.BoxShift{ID: id, Status: entity.BoxShiftClosed, IsClosed: true}, nil
	}
	s := store.NewBoxShiftStore(api, nil)
	s.FetchOne(context.Background(), 4)

	_, err := s.Close(context.Background(), dto.CloseBoxShiftRequest{BoxShiftID: 4})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Zero(t, api.closed)

	resp, err := s.Close(context.Background(), dto.CloseBoxShiftRequest{BoxShiftID: 5})
	require.NoError(t, err)
	assert.Equal(t, "Turno cerrado", resp.Message)
}

type fakeCreditNoteAPI struct {
	fakeAPI[entity.CreditNote]
	format string
	params dto.ListParams
}

func (f *fakeCreditNoteAPI) Export(_ context.Context, format string, params dto.ListParams) (*ports.Blob, error) {
	f.format = format
	f.params = params
	return &ports.Blob{Data: []byte("%PDF")}, nil
}

func TestCreditNoteStore_ExportUsaFiltrosRecibidos(t *testing.T) {
	api := &fakeCreditNoteAPI{}
	api.list = func(context.Context, dto.ListParams) (*dto.ListResponse[entity.CreditNote], error) {
		return &dto.ListResponse[entity.CreditNote]{}, nil
	}
	s := store.NewCreditNoteStore(api, nil)
	s.FetchList(context.Background(), dto.ListParams{Search: "B002"})

	blob, err := s.Export(context.Background(), dto.ExportPDF, dto.ListParams{Search: "F001", Filters: map[string]string{"status": "EMITIDA"}})

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), blob.Data)
	assert.Equal(t, "pdf", api.format)
	assert.Equal(t, "F001", api.params.Search, "el listado previo no cambia los filtros exportados")
	assert.Equal(t, "EMITIDA", api.params.Filters["status"])
	assert.Equal(t, dto.DefaultPerPage, api.params.PerPage)
	assert.Equal(t, "B002", s.Snapshot().Params.Search, "exportar no altera el listado")

	_, err = s.Export(context.Background(), "csv", dto.ListParams{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWarehouseDocumentStore_GuardSoloBorradorSeEdita(t *testing.T) {
	api := newWarehouseAPI(
		entity.WarehouseDocument{ID: 1, Status: string(warehouse.StatusDraft)},
		entity.WarehouseDocument{ID: 2, Status: string(warehouse.StatusConfirmed)},
	)
	s := store.NewWarehouseDocumentStore(api, nil)

	s.FetchOne(context.Background(), 1)
	assert.NoError(t, s.Guard(1, "update"))
	assert.NoError(t, s.Guard(1, "delete"))

	s.FetchOne(context.Background(), 2)
	assert.ErrorIs(t, s.Guard(2, "update"), domain.ErrInvalidTransition)
	assert.ErrorIs(t, s.Guard(2, "delete"), domain.ErrInvalidTransition)
	assert.NoError(t, s.Guard(99, "update"), "sin caché decide el API")
}
