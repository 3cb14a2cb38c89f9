package http

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-console/internal/application/dto"
	"github.com/jhoicas/backoffice-console/internal/application/forms"
	"github.com/jhoicas/backoffice-console/internal/application/session"
	"github.com/jhoicas/backoffice-console/internal/application/validation"
	"github.com/jhoicas/backoffice-console/pkg/logger"
)

// Formularios que no corresponden al alta/edición de un módulo.
const (
	FormBoxShiftOpen  = "box-shift-open"
	FormBoxShiftClose = "box-shift-close"
	FormGetPrice      = "get-price"
	FormAssignClient  = "assign-client"
)

// FormValidation resultado de validar un formulario sin enviarlo.
type FormValidation struct {
	Valid       bool                  `json:"valid"`
	ErrorCount  int                   `json:"error_count"`
	Errors      validation.FormErrors `json:"errors"`
	Discrepancy *DiscrepancyView      `json:"discrepancy,omitempty"`
}

// FormHandler validación en vivo de formularios (protegido).
type FormHandler struct {
	base
	shifts *BoxShiftHandler
}

// NewFormHandler construye el handler.
func NewFormHandler(log *logger.Logger, now func() time.Time) *FormHandler {
	return &FormHandler{base: newBase(log, now), shifts: NewBoxShiftHandler(log, now)}
}

// Validate godoc
// @Summary      Validar formulario
// @Description  :form es la clave o la ruta de un módulo (ej. client, warehouse-documents) o uno de box-shift-open, box-shift-close, get-price, assign-client.
// @Tags         forms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        form  path  string  true  "Formulario"
// @Success      200  {object}  FormValidation
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/forms/{form}/validate [post]
func (h *FormHandler) Validate(c *fiber.Ctx) error {
	name := c.Params("form")
	var (
		errs validation.FormErrors
		disc *DiscrepancyView
		err  error
	)
	switch name {
	case FormBoxShiftOpen:
		errs, err = validateAs[dto.OpenBoxShiftRequest](c.Body())
	case FormGetPrice:
		errs, err = validateAs[dto.GetPriceRequest](c.Body())
	case FormAssignClient:
		errs, err = validateAs[dto.AssignClientRequest](c.Body())
	case FormBoxShiftClose:
		errs, disc, err = h.validateClose(c)
	default:
		s := GetSession(c)
		m, ok := s.Module(name)
		if !ok {
			m, ok = s.ModuleByRoute(name)
		}
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "FORM_NOT_FOUND", Message: "el formulario '" + name + "' no existe"})
		}
		errs, err = m.Validate(c.Body())
	}
	if err != nil {
		return h.fail(c, err, errs)
	}
	return c.JSON(FormValidation{
		Valid:       !errs.HasErrors(),
		ErrorCount:  errs.Count(),
		Errors:      errs,
		Discrepancy: disc,
	})
}

// validateClose valida el cierre sobre el formulario precargado del turno y calcula el desvío.
func (h *FormHandler) validateClose(c *fiber.Ctx) (validation.FormErrors, *DiscrepancyView, error) {
	var in closeInput
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return badBody(err)
	}
	if in.BoxShiftID <= 0 {
		req := dto.CloseBoxShiftRequest{}
		in.apply(&req)
		return validation.Validate(req), nil, nil
	}
	shift, err := h.shifts.shift(c, in.BoxShiftID)
	if err != nil {
		return rootErrors(err, "No se pudo cargar el turno"), nil, err
	}
	form := forms.NewCloseBoxShiftForm(shift)
	errs := form.Change(in.apply)
	d := discrepancyView(shift, form.Values())
	return errs, &d, nil
}

func validateAs[T any](body []byte) (validation.FormErrors, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		errs, _, err := badBody(err)
		return errs, err
	}
	return validation.Validate(v), nil
}

func badBody(err error) (validation.FormErrors, *DiscrepancyView, error) {
	var errs validation.FormErrors
	errs.Add(validation.RootField, "El formulario enviado no es válido")
	return errs, nil, fmt.Errorf("%w: %v", session.ErrBadBody, err)
}
