package restapi

import (
	"context"
	"net/http"

	"github.com/jhoicas/backoffice-console/internal/application/dto"
	"github.com/jhoicas/backoffice-console/internal/application/ports"
	"github.com/jhoicas/backoffice-console/internal/domain/entity"
	"github.com/jhoicas/backoffice-console/internal/domain/resource"
)

var (
	_ ports.WarehouseDocumentAPI = (*WarehouseDocumentAPI)(nil)
	_ ports.BoxShiftAPI          = (*BoxShiftAPI)(nil)
	_ ports.PriceListAPI         = (*PriceListAPI)(nil)
	_ ports.CreditNoteAPI        = (*CreditNoteAPI)(nil)
)

// WarehouseDocumentAPI documento de almacén: CRUD más confirmar/anular.
type WarehouseDocumentAPI struct {
	*Resource[entity.WarehouseDocument]
}

// NewWarehouseDocumentAPI acciones del módulo de documentos de almacén.
func NewWarehouseDocumentAPI(c *Client) *WarehouseDocumentAPI {
	return &WarehouseDocumentAPI{NewResource[entity.WarehouseDocument](c, resource.MustLookup(resource.WarehouseDocument).Endpoint)}
}

// Confirm POST /warehouse-document/{id}/confirm.
func (a *WarehouseDocumentAPI) Confirm(ctx context.Context, id int64) (*dto.MessageResponse[entity.WarehouseDocument], error) {
	return a.Post(ctx, nil, idPath(id), "confirm")
}

// Cancel POST /warehouse-document/{id}/cancel.
func (a *WarehouseDocumentAPI) Cancel(ctx context.Context, id int64) (*dto.MessageResponse[entity.WarehouseDocument], error) {
	return a.Post(ctx, nil, idPath(id), "cancel")
}

// BoxShiftAPI turnos de caja.
type BoxShiftAPI struct {
	*Resource[entity.BoxShift]
}

// NewBoxShiftAPI acciones del módulo de turnos.
func NewBoxShiftAPI(c *Client) *BoxShiftAPI {
	return &BoxShiftAPI{NewResource[entity.BoxShift](c, resource.MustLookup(resource.BoxShift).Endpoint)}
}

// Open POST /boxshift/open.
func (a *BoxShiftAPI) Open(ctx context.Context, req dto.OpenBoxShiftRequest) (*dto.MessageResponse[entity.BoxShift], error) {
	return a.Post(ctx, req, "open")
}

// Close POST /boxshift/close.
func (a *BoxShiftAPI) Close(ctx context.Context, req dto.CloseBoxShiftRequest) (*dto.MessageResponse[entity.BoxShift], error) {
	return a.Post(ctx, req, "close")
}

// PriceListAPI listas de precios.
type PriceListAPI struct {
	*Resource[entity.PriceList]
}

// NewPriceListAPI acciones del módulo de listas de precios.
func NewPriceListAPI(c *Client) *PriceListAPI {
	return &PriceListAPI{NewResource[entity.PriceList](c, resource.MustLookup(resource.PriceList).Endpoint)}
}

// GetPrice POST /pricelist/get-price.
func (a *PriceListAPI) GetPrice(ctx context.Context, req dto.GetPriceRequest) (*entity.PriceQuote, error) {
	var out dto.MessageResponse[entity.PriceQuote]
	if err := a.client.Do(ctx, http.MethodPost, a.path("get-price"), nil, req, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return &entity.PriceQuote{ProductID: req.ProductID}, nil
	}
	return out.Data, nil
}

// AssignClient POST /pricelist/{id}/assign-client.
func (a *PriceListAPI) AssignClient(ctx context.Context, id int64, req dto.AssignClientRequest) (*dto.MessageResponse[entity.PriceList], error) {
	return a.Post(ctx, req, idPath(id), "assign-client")
}

// CreditNoteAPI notas de crédito.
type CreditNoteAPI struct {
	*Resource[entity.CreditNote]
}

// NewCreditNoteAPI acciones del módulo de notas de crédito.
func NewCreditNoteAPI(c *Client) *CreditNoteAPI {
	return &CreditNoteAPI{NewResource[entity.CreditNote](c, resource.MustLookup(resource.CreditNote).Endpoint)}
}

// Export GET /creditnote/export?format=pdf|excel con los filtros del listado.
func (a *CreditNoteAPI) Export(ctx context.Context, format string, params dto.ListParams) (*ports.Blob, error) {
	q := params.Values()
	q.Del("page")
	q.Del("per_page")
	q.Set("format", format)
	return a.Download(ctx, q, "export")
}
