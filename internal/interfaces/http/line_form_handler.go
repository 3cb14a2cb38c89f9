package http

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-console/internal/application/dto"
	"github.com/jhoicas/backoffice-console/internal/application/forms"
	"github.com/jhoicas/backoffice-console/internal/application/store"
	"github.com/jhoicas/backoffice-console/internal/application/validation"
	"github.com/jhoicas/backoffice-console/pkg/logger"
)

// Formularios con líneas seleccionables, por ruta del módulo que los recibe.
const (
	LineFormCreditNote         = "credit-notes"
	LineFormPurchaseCreditNote = "purchase-credit-notes"
	LineFormWarehouseDocument  = "warehouse-documents"
)

// LineFormView formulario con líneas y el documento que se enviaría con la selección actual.
// Form se envía tal cual al POST del módulo.
type LineFormView struct {
	Form       any                   `json:"form"`
	Payload    any                   `json:"payload"`
	CanSubmit  bool                  `json:"can_submit"`
	ErrorCount int                   `json:"error_count"`
	Errors     validation.FormErrors `json:"errors"`
}

// LineEditRequest formulario actual más el cambio sobre una de sus líneas.
type LineEditRequest struct {
	Form json.RawMessage `json:"form"`
	forms.LineEdit
}

// LineFormHandler formularios precargados desde una venta o compra (protegido).
type LineFormHandler struct {
	base
}

// NewLineFormHandler construye el handler.
func NewLineFormHandler(log *logger.Logger, now func() time.Time) *LineFormHandler {
	return &LineFormHandler{base: newBase(log, now)}
}

// CreditNoteForm godoc
// @Summary      Formulario de nota de crédito sobre una venta
// @Description  Carga las líneas de la venta sin seleccionar.
// @Tags         credit-notes
// @Security     Bearer
// @Produce      json
// @Param        sale_id  query  int  true  "ID de la venta"
// @Success      200  {object}  LineFormView
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/credit-notes/form [get]
func (h *LineFormHandler) CreditNoteForm(c *fiber.Ctx) error {
	id, ok := queryID(c, "sale_id")
	if !ok {
		return invalidQueryID(c, "sale_id")
	}
	sale, err := fetchOne(c.UserContext(), GetSession(c).Sales, id)
	if err != nil {
		return h.fail(c, err, rootErrors(err, "No se pudo cargar la venta"))
	}
	form := forms.NewCreditNoteForm(sale)
	return c.JSON(lineFormView(&form, form.Payload()))
}

// PurchaseCreditNoteForm godoc
// @Summary      Formulario de nota de crédito sobre una compra
// @Description  Carga las líneas de la compra sin seleccionar.
// @Tags         purchase-credit-notes
// @Security     Bearer
// @Produce      json
// @Param        purchase_id  query  int  true  "ID de la compra"
// @Success      200  {object}  LineFormView
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-credit-notes/form [get]
func (h *LineFormHandler) PurchaseCreditNoteForm(c *fiber.Ctx) error {
	id, ok := queryID(c, "purchase_id")
	if !ok {
		return invalidQueryID(c, "purchase_id")
	}
	purchase, err := fetchOne(c.UserContext(), GetSession(c).Purchases, id)
	if err != nil {
		return h.fail(c, err, rootErrors(err, "No se pudo cargar la compra"))
	}
	form := forms.NewPurchaseCreditNoteForm(purchase)
	return c.JSON(lineFormView(&form, form.Payload()))
}

// WarehouseFromPurchase godoc
// @Summary      Ingreso de almacén a partir de una compra
// @Description  Documento tipo INGRESO con todas las líneas de la compra marcadas.
// @Tags         warehouse-documents
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la compra"
// @Success      200  {object}  LineFormView
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouse-documents/from-purchase/{id} [get]
func (h *LineFormHandler) WarehouseFromPurchase(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}
	purchase, err := fetchOne(c.UserContext(), GetSession(c).Purchases, id)
	if err != nil {
		return h.fail(c, err, rootErrors(err, "No se pudo cargar la compra"))
	}
	form := forms.NewWarehouseDocumentFromPurchase(purchase)
	return c.JSON(lineFormView(&form, form.Payload()))
}

// EditLine godoc
// @Summary      Editar una línea del formulario
// @Description  Marca o desmarca la línea (toggle) o asigna quantity_sacks, quantity_kg o unit_price desde texto. Una línea desmarcada conserva sus valores pero no acepta cambios.
// @Tags         forms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        form   path  string           true  "credit-notes | purchase-credit-notes | warehouse-documents"
// @Param        index  path  int              true  "Posición de la línea"
// @Param        body   body  LineEditRequest  true  "Formulario y cambio"
// @Success      200  {object}  LineFormView
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/forms/{form}/lines/{index} [post]
func (h *LineFormHandler) EditLine(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil || index < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INDEX", Message: "index debe ser un entero no negativo"})
	}
	var req LineEditRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		errs, _, err := badBody(err)
		return h.fail(c, err, errs)
	}

	switch name := c.Params("form"); name {
	case LineFormCreditNote:
		var f forms.CreditNoteForm
		return h.edit(c, req, index, "details", &f,
			func() error { return forms.EditLine(f.Lines, index, req.LineEdit) },
			func() any { return f.Payload() })
	case LineFormPurchaseCreditNote:
		var f forms.PurchaseCreditNoteForm
		return h.edit(c, req, index, "details", &f,
			func() error { return forms.EditLine(f.Lines, index, req.LineEdit) },
			func() any { return f.Payload() })
	case LineFormWarehouseDocument:
		var f forms.WarehouseDocumentForm
		return h.edit(c, req, index, "lines", &f,
			func() error { return forms.EditLine(f.Lines, index, req.LineEdit) },
			func() any { return f.Payload() })
	default:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "FORM_NOT_FOUND", Message: "el formulario '" + name + "' no tiene líneas"})
	}
}

// edit decodifica el formulario en form, aplica el cambio y responde el formulario resultante.
func (h *LineFormHandler) edit(c *fiber.Ctx, req LineEditRequest, index int, linesPath string, form any, apply func() error, payload func() any) error {
	if err := json.Unmarshal(req.Form, form); err != nil {
		errs, _, err := badBody(err)
		return h.fail(c, err, errs)
	}
	if err := apply(); err != nil {
		if !forms.IsLineError(err) {
			return h.fail(c, err, rootErrors(err, "No se pudo editar la línea"))
		}
		var errs validation.FormErrors
		errs.Add(fmt.Sprintf("%s.%d.%s", linesPath, index, req.Field), err.Error())
		return h.fail(c, err, errs)
	}
	return c.JSON(lineFormView(form, payload()))
}

func lineFormView(form, payload any) LineFormView {
	errs := validation.Validate(payload)
	return LineFormView{
		Form:       form,
		Payload:    payload,
		CanSubmit:  !errs.HasErrors(),
		ErrorCount: errs.Count(),
		Errors:     errs,
	}
}

// fetchOne carga el documento de origen; sin documento devuelve el error del store.
func fetchOne[T any](ctx context.Context, s *store.Store[T], id int64) (*T, error) {
	st := s.FetchOne(ctx, id)
	if st.Current == nil {
		return nil, lastError(st.LastError)
	}
	return st.Current, nil
}

func queryID(c *fiber.Ctx, key string) (int64, bool) {
	id, err := strconv.ParseInt(c.Query(key), 10, 64)
	return id, err == nil && id > 0
}

func invalidQueryID(c *fiber.Ctx, key string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: key + " debe ser un entero positivo"})
}
