package http

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-console/internal/application/session"
	"github.com/jhoicas/backoffice-console/internal/domain"
	"github.com/jhoicas/backoffice-console/internal/domain/resource"
	"github.com/jhoicas/backoffice-console/internal/domain/warehouse"
	"github.com/jhoicas/backoffice-console/pkg/logger"
)

// HeaderConfirmAction header con el que la consola confirma una acción irreversible.
const HeaderConfirmAction = "X-Confirm-Action"

// ConfirmationPrompt respuesta 428: la acción necesita confirmación explícita.
type ConfirmationPrompt struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Action  string `json:"action"`
	ID      int64  `json:"id"`
}

// TransitionResponse resultado de confirmar o anular: mensaje del API y documento recargado.
type TransitionResponse struct {
	Message  string           `json:"message"`
	Document session.ItemView `json:"document"`
}

// WarehouseHandler acciones de estado de los documentos de almacén (protegido).
type WarehouseHandler struct {
	base
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(log *logger.Logger, now func() time.Time) *WarehouseHandler {
	return &WarehouseHandler{base: newBase(log, now)}
}

// Confirm godoc
// @Summary      Confirmar documento de almacén (BORRADOR → CONFIRMADO)
// @Tags         warehouse-documents
// @Security     Bearer
// @Produce      json
// @Param        id         path   int   true   "ID del documento"
// @Param        confirmed  query  bool  false  "Confirmación explícita"
// @Success      200  {object}  TransitionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      428  {object}  ConfirmationPrompt
// @Router       /api/warehouse-documents/{id}/confirm [post]
func (h *WarehouseHandler) Confirm(c *fiber.Ctx) error {
	return h.transition(c, warehouse.ActionConfirm,
		"¿Confirmar el documento? Una vez confirmado no podrá editarse ni eliminarse.")
}

// Cancel godoc
// @Summary      Anular documento de almacén (CONFIRMADO → CANCELADO)
// @Tags         warehouse-documents
// @Security     Bearer
// @Produce      json
// @Param        id         path   int   true   "ID del documento"
// @Param        confirmed  query  bool  false  "Confirmación explícita"
// @Success      200  {object}  TransitionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      428  {object}  ConfirmationPrompt
// @Router       /api/warehouse-documents/{id}/cancel [post]
func (h *WarehouseHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, warehouse.ActionCancel,
		"¿Anular el documento? Esta acción no se puede deshacer.")
}

func (h *WarehouseHandler) transition(c *fiber.Ctx, action warehouse.Action, prompt string) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}
	if !confirmed(c) {
		return c.Status(fiber.StatusPreconditionRequired).JSON(ConfirmationPrompt{
			Code:    "CONFIRMATION_REQUIRED",
			Message: prompt,
			Action:  string(action),
			ID:      id,
		})
	}

	s := GetSession(c)
	ctx := c.UserContext()
	docs := s.WarehouseDocuments

	// estado actual antes de decidir si la transición es válida
	if st := docs.FetchOne(ctx, id); st.Current == nil {
		err := lastError(st.LastError)
		return h.fail(c, err, rootErrors(err, st.Error))
	}

	var msg string
	if action == warehouse.ActionConfirm {
		msg, err = docs.Confirm(ctx, id)
	} else {
		msg, err = docs.Cancel(ctx, id)
	}
	if err != nil {
		return h.fail(c, err, rootErrors(err, docs.Snapshot().Error))
	}
	h.log.Info().Str("session", s.Key()).Int64("document_id", id).Str("action", string(action)).Msg("warehouse: transición aplicada")

	return c.JSON(TransitionResponse{Message: msg, Document: reload(ctx, s, id)})
}

// reload vuelve a cargar el documento para mostrar su nuevo estado y acciones.
func reload(ctx context.Context, s *session.Session, id int64) session.ItemView {
	m, _ := s.Module(resource.WarehouseDocument)
	return m.Get(ctx, id)
}

// confirmed indica si la petición trae la confirmación explícita del usuario.
func confirmed(c *fiber.Ctx) bool {
	return c.QueryBool("confirmed", false) || strings.EqualFold(c.Get(HeaderConfirmAction), "true")
}

func lastError(err error) error {
	if err == nil {
		return domain.ErrNotFound
	}
	return err
}

