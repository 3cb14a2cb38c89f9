package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-console/internal/application/dto"
	"github.com/jhoicas/backoffice-console/internal/application/forms"
	"github.com/jhoicas/backoffice-console/internal/domain/entity"
	"github.com/jhoicas/backoffice-console/pkg/format"
	"github.com/jhoicas/backoffice-console/pkg/logger"
)

// PriceQuoteView precio consultado con el monto formateado.
type PriceQuoteView struct {
	*entity.PriceQuote
	Display string `json:"price_display,omitempty"`
}

// PriceListHandler consulta de precios y asignación de clientes (protegido).
type PriceListHandler struct {
	base
}

// NewPriceListHandler construye el handler.
func NewPriceListHandler(log *logger.Logger, now func() time.Time) *PriceListHandler {
	return &PriceListHandler{base: newBase(log, now)}
}

// GetPrice godoc
// @Summary      Consultar precio de un producto para un peso
// @Tags         price-lists
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GetPriceRequest  true  "Producto, peso y lista o cliente"
// @Success      200  {object}  PriceQuoteView
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/price-lists/get-price [post]
func (h *PriceListHandler) GetPrice(c *fiber.Ctx) error {
	var in dto.GetPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lists := GetSession(c).PriceLists
	form := forms.New(in, nil).WithFailureMessage("No se pudo obtener el precio")
	var quote *entity.PriceQuote
	err := form.Submit(c.UserContext(), func(ctx context.Context, req dto.GetPriceRequest) error {
		var err error
		quote, err = lists.GetPrice(ctx, req)
		return err
	})
	if err != nil {
		return h.fail(c, err, form.Errors())
	}
	return c.JSON(PriceQuoteView{PriceQuote: quote, Display: format.Money(quote.Price, quote.Currency)})
}

// AssignClient godoc
// @Summary      Asignar cliente a una lista de precios
// @Tags         price-lists
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID de la lista"
// @Param        body  body  dto.AssignClientRequest  true  "Cliente"
// @Success      200  {object}  session.WriteResult
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/price-lists/{id}/assign-client [post]
func (h *PriceListHandler) AssignClient(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}
	var in dto.AssignClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lists := GetSession(c).PriceLists
	form := forms.New(in, nil).WithFailureMessage("No se pudo asignar el cliente")
	var msg string
	err = form.Submit(c.UserContext(), func(ctx context.Context, req dto.AssignClientRequest) error {
		var err error
		msg, err = lists.AssignClient(ctx, id, req)
		return err
	})
	if err != nil {
		return h.fail(c, err, form.Errors())
	}
	return c.JSON(fiber.Map{"message": msg})
}
