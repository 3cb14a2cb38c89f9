package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-console/internal/application/dto"
	"github.com/jhoicas/backoffice-console/internal/application/ports"
	"github.com/jhoicas/backoffice-console/internal/domain"
	"github.com/jhoicas/backoffice-console/internal/domain/entity"
	"github.com/jhoicas/backoffice-console/internal/domain/warehouse"
	"github.com/jhoicas/backoffice-console/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Documentos de almacén
// ──────────────────────────────────────────────────────────────────────────────

// WarehouseDocumentStore store de documentos de almacén con confirmar/anular.
type WarehouseDocumentStore struct {
	*Store[entity.WarehouseDocument]
	api ports.WarehouseDocumentAPI
}

// NewWarehouseDocumentStore crea el store.
func NewWarehouseDocumentStore(api ports.WarehouseDocumentAPI, log *logger.Logger) *WarehouseDocumentStore {
	return &WarehouseDocumentStore{
		Store: New[entity.WarehouseDocument](api, func(d *entity.WarehouseDocument) int64 { return d.ID }, log),
		api:   api,
	}
}

// Confirm BORRADOR → CONFIRMADO.
func (s *WarehouseDocumentStore) Confirm(ctx context.Context, id int64) (string, error) {
	return s.transition(ctx, id, warehouse.ActionConfirm)
}

// Cancel CONFIRMADO → CANCELADO.
func (s *WarehouseDocumentStore) Cancel(ctx context.Context, id int64) (string, error) {
	return s.transition(ctx, id, warehouse.ActionCancel)
}

// Guard rechaza editar o eliminar un documento en caché que ya no está en BORRADOR.
// Sin el documento en caché decide el API.
func (s *WarehouseDocumentStore) Guard(id int64, op string) error {
	action := warehouse.ActionEdit
	if op == "delete" {
		action = warehouse.ActionDelete
	}
	doc, ok := s.cached(id)
	if !ok {
		return nil
	}
	if status := warehouse.StatusOf(doc); !warehouse.Allows(status, action) {
		err := fmt.Errorf("%w: %s no admite %s", domain.ErrInvalidTransition, status, action)
		s.Fail(err, fmt.Sprintf("El documento en estado %s no admite la acción %s", status, action))
		return err
	}
	return nil
}

// transition llama al API sin cambiar el estado local: quien invoca debe volver a
// cargar el documento para ver el nuevo estado. Si el documento está en caché y la
// transición no es válida, no se llama al API.
func (s *WarehouseDocumentStore) transition(ctx context.Context, id int64, action warehouse.Action) (string, error) {
	target, _ := action.Target()
	if doc, ok := s.cached(id); ok {
		current := warehouse.StatusOf(doc)
		if !warehouse.CanTransition(current, target) {
			err := fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, current, target)
			s.Fail(err, fmt.Sprintf("El documento en estado %s no admite la acción %s", current, action))
			return "", err
		}
	}

	call := s.api.Confirm
	fallback := "No se pudo confirmar el documento"
	if action == warehouse.ActionCancel {
		call = s.api.Cancel
		fallback = "No se pudo anular el documento"
	}
	resp, err := submit(ctx, s.Store, fallback, string(action), func(ctx context.Context) (*dto.MessageResponse[entity.WarehouseDocument], error) {
		return call(ctx, id)
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Turnos de caja
// ──────────────────────────────────────────────────────────────────────────────

// BoxShiftStore store de turnos: se abren y se cierran, no se editan.
type BoxShiftStore struct {
	*Store[entity.BoxShift]
	api ports.BoxShiftAPI
}

// NewBoxShiftStore crea el store.
func NewBoxShiftStore(api ports.BoxShiftAPI, log *logger.Logger) *BoxShiftStore {
	return &BoxShiftStore{
		Store: New[entity.BoxShift](api, func(b *entity.BoxShift) int64 { return b.ID }, log),
		api:   api,
	}
}

// Open abre un turno en una caja.
func (s *BoxShiftStore) Open(ctx context.Context, req dto.OpenBoxShiftRequest) (*dto.MessageResponse[entity.BoxShift], error) {
	return submit(ctx, s.Store, "No se pudo abrir el turno", "open", func(ctx context.Context) (*dto.MessageResponse[entity.BoxShift], error) {
		return s.api.Open(ctx, req)
	})
}

// Close cierra un turno. Un turno ya cerrado en caché no se vuelve a enviar.
func (s *BoxShiftStore) Close(ctx context.Context, req dto.CloseBoxShiftRequest) (*dto.MessageResponse[entity.BoxShift], error) {
	if shift, ok := s.cached(req.BoxShiftID); ok && !shift.Open() {
		err := fmt.Errorf("%w: turno %d ya cerrado", domain.ErrInvalidTransition, req.BoxShiftID)
		s.Fail(err, "El turno ya está cerrado")
		return nil, err
	}
	return submit(ctx, s.Store, "No se pudo cerrar el turno", "close", func(ctx context.Context) (*dto.MessageResponse[entity.BoxShift], error) {
		return s.api.Close(ctx, req)
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Listas de precios
// ──────────────────────────────────────────────────────────────────────────────

// PriceListStore store de listas de precios con consulta de precio y asignación de clientes.
type PriceListStore struct {
	*Store[entity.PriceList]
	api ports.PriceListAPI
}

// NewPriceListStore crea el store.
func NewPriceListStore(api ports.PriceListAPI, log *logger.Logger) *PriceListStore {
	return &PriceListStore{
		Store: New[entity.PriceList](api, func(p *entity.PriceList) int64 { return p.ID }, log),
		api:   api,
	}
}

// GetPrice consulta el precio de un producto para un peso.
func (s *PriceListStore) GetPrice(ctx context.Context, req dto.GetPriceRequest) (*entity.PriceQuote, error) {
	return submit(ctx, s.Store, "No se pudo obtener el precio", "get-price", func(ctx context.Context) (*entity.PriceQuote, error) {
		return s.api.GetPrice(ctx, req)
	})
}

// AssignClient asigna un cliente a la lista.
func (s *PriceListStore) AssignClient(ctx context.Context, id int64, req dto.AssignClientRequest) (string, error) {
	resp, err := submit(ctx, s.Store, "No se pudo asignar el cliente", "assign-client", func(ctx context.Context) (*dto.MessageResponse[entity.PriceList], error) {
		return s.api.AssignClient(ctx, id, req)
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Notas de crédito
// ──────────────────────────────────────────────────────────────────────────────

// CreditNoteStore store de notas de crédito con exportación.
type CreditNoteStore struct {
	*Store[entity.CreditNote]
	api ports.CreditNoteAPI
}

// NewCreditNoteStore crea el store.
func NewCreditNoteStore(api ports.CreditNoteAPI, log *logger.Logger) *CreditNoteStore {
	return &CreditNoteStore{
		Store: New[entity.CreditNote](api, func(c *entity.CreditNote) int64 { return c.ID }, log),
		api:   api,
	}
}

// Export descarga en PDF o Excel el listado que corresponde a params.
func (s *CreditNoteStore) Export(ctx context.Context, format string, params dto.ListParams) (*ports.Blob, error) {
	if format != dto.ExportPDF && format != dto.ExportExcel {
		err := fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, format)
		s.Fail(err, "Formato de exportación no soportado")
		return nil, err
	}
	params = params.Normalize()
	return submit(ctx, s.Store, "No se pudo exportar", "export", func(ctx context.Context) (*ports.Blob, error) {
		return s.api.Export(ctx, format, params)
	})
}
