package ports

import (
	"context"
	"net/url"

	"github.com/jhoicas/backoffice-console/internal/application/dto"
	"github.com/jhoicas/backoffice-console/internal/domain/entity"
)

// ResourceAPI puerto de salida con las acciones CRUD de un módulo contra el API de negocio.
// Los fallos llegan como *domain.APIError; el adaptador nunca supone la forma del cuerpo de error.
type ResourceAPI[T any] interface {
	List(ctx context.Context, params dto.ListParams) (*dto.ListResponse[T], error)
	Find(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, payload any) (*dto.MessageResponse[T], error)
	Update(ctx context.Context, id int64, payload any) (*dto.MessageResponse[T], error)
	Delete(ctx context.Context, id int64) (string, error)
}

// WarehouseDocumentAPI transiciones del documento de almacén.
type WarehouseDocumentAPI interface {
	ResourceAPI[entity.WarehouseDocument]
	Confirm(ctx context.Context, id int64) (*dto.MessageResponse[entity.WarehouseDocument], error)
	Cancel(ctx context.Context, id int64) (*dto.MessageResponse[entity.WarehouseDocument], error)
}

// BoxShiftAPI apertura y cierre de turnos (un turno no se edita de otra forma).
type BoxShiftAPI interface {
	ResourceAPI[entity.BoxShift]
	Open(ctx context.Context, req dto.OpenBoxShiftRequest) (*dto.MessageResponse[entity.BoxShift], error)
	Close(ctx context.Context, req dto.CloseBoxShiftRequest) (*dto.MessageResponse[entity.BoxShift], error)
}

// PriceListAPI consulta de precio y asignación de clientes.
type PriceListAPI interface {
	ResourceAPI[entity.PriceList]
	GetPrice(ctx context.Context, req dto.GetPriceRequest) (*entity.PriceQuote, error)
	AssignClient(ctx context.Context, id int64, req dto.AssignClientRequest) (*dto.MessageResponse[entity.PriceList], error)
}

// CreditNoteAPI exportación del listado de notas de crédito.
type CreditNoteAPI interface {
	ResourceAPI[entity.CreditNote]
	Export(ctx context.Context, format string, params dto.ListParams) (*Blob, error)
}

// Blob archivo binario devuelto por el API (exportaciones PDF/Excel).
type Blob struct {
	ContentType string
	Filename    string // del Content-Disposition, si viene
	Data        []byte
}

// Fetcher lectura cruda de un endpoint (listas de referencia para selects).
type Fetcher interface {
	GetRaw(ctx context.Context, path string, query url.Values) ([]byte, error)
}
