package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-console/internal/application/dto"
	"github.com/jhoicas/backoffice-console/internal/application/forms"
	"github.com/jhoicas/backoffice-console/internal/domain/boxshift"
	"github.com/jhoicas/backoffice-console/internal/domain/entity"
	"github.com/jhoicas/backoffice-console/pkg/format"
	"github.com/jhoicas/backoffice-console/pkg/logger"
)

// consoleCurrency moneda de los montos de caja.
const consoleCurrency = "PEN"

// DiscrepancyView desvío del cierre con montos formateados para mostrar.
type DiscrepancyView struct {
	boxshift.Discrepancy
	Expected   string `json:"expected_display"`
	Declared   string `json:"declared_display"`
	Difference string `json:"difference_display"`
}

// CloseFormView formulario de cierre precargado.
type CloseFormView struct {
	Shift       *entity.BoxShift         `json:"shift"`
	Values      dto.CloseBoxShiftRequest `json:"values"`
	Discrepancy DiscrepancyView          `json:"discrepancy"`
	CanSubmit   bool                     `json:"can_submit"`
}

// CloseShiftResponse resultado del cierre.
type CloseShiftResponse struct {
	Message     string           `json:"message"`
	Shift       *entity.BoxShift `json:"shift,omitempty"`
	Discrepancy DiscrepancyView  `json:"discrepancy"`
}

// closeInput campos editables del cierre; los ausentes conservan el valor precargado.
type closeInput struct {
	BoxShiftID   int64            `json:"box_shift_id"`
	ClosedAmount *decimal.Decimal `json:"closed_amount"`
	Observation  *string          `json:"observation"`
}

// BoxShiftHandler apertura y cierre de turnos de caja (protegido).
type BoxShiftHandler struct {
	base
}

// NewBoxShiftHandler construye el handler.
func NewBoxShiftHandler(log *logger.Logger, now func() time.Time) *BoxShiftHandler {
	return &BoxShiftHandler{base: newBase(log, now)}
}

// Open godoc
// @Summary      Abrir turno de caja
// @Tags         box-shifts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenBoxShiftRequest  true  "Caja y monto inicial"
// @Success      201  {object}  dto.MessageResponse[entity.BoxShift]
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/box-shifts/open [post]
func (h *BoxShiftHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenBoxShiftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	shifts := GetSession(c).BoxShifts
	form := forms.New(in, nil).WithFailureMessage("No se pudo abrir el turno")
	var out *dto.MessageResponse[entity.BoxShift]
	err := form.Submit(c.UserContext(), func(ctx context.Context, req dto.OpenBoxShiftRequest) error {
		var err error
		out, err = shifts.Open(ctx, req)
		return err
	})
	if err != nil {
		return h.fail(c, err, form.Errors())
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CloseForm godoc
// @Summary      Formulario de cierre precargado con el saldo esperado
// @Tags         box-shifts
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del turno"
// @Success      200  {object}  CloseFormView
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/box-shifts/{id}/close-form [get]
func (h *BoxShiftHandler) CloseForm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}
	shift, err := h.shift(c, id)
	if err != nil {
		return h.fail(c, err, rootErrors(err, "No se pudo cargar el turno"))
	}
	form := forms.NewCloseBoxShiftForm(shift)
	values := form.Values()
	return c.JSON(CloseFormView{
		Shift:       shift,
		Values:      values,
		Discrepancy: discrepancyView(shift, values),
		CanSubmit:   shift.Open() && form.CanSubmit(),
	})
}

// Close godoc
// @Summary      Cerrar turno de caja
// @Description  El desvío entre el saldo esperado y el monto declarado es informativo; no bloquea el cierre.
// @Tags         box-shifts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CloseBoxShiftRequest  true  "Turno y monto declarado"
// @Success      200  {object}  CloseShiftResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/box-shifts/close [post]
func (h *BoxShiftHandler) Close(c *fiber.Ctx) error {
	var in closeInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.BoxShiftID <= 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:       "VALIDATION",
			Message:    "El formulario tiene errores",
			Fields:     map[string][]string{"box_shift_id": {"Este campo es obligatorio"}},
			ErrorCount: 1,
		})
	}
	shift, err := h.shift(c, in.BoxShiftID)
	if err != nil {
		return h.fail(c, err, rootErrors(err, "No se pudo cargar el turno"))
	}

	form := forms.NewCloseBoxShiftForm(shift)
	form.Change(in.apply)
	disc := discrepancyView(shift, form.Values())

	shifts := GetSession(c).BoxShifts
	var out *dto.MessageResponse[entity.BoxShift]
	err = form.Submit(c.UserContext(), func(ctx context.Context, req dto.CloseBoxShiftRequest) error {
		var err error
		out, err = shifts.Close(ctx, req)
		return err
	})
	if err != nil {
		return h.fail(c, err, form.Errors())
	}
	h.log.Info().Int64("box_shift_id", shift.ID).Str("level", disc.Level).Msg("boxshift: turno cerrado")
	return c.JSON(CloseShiftResponse{Message: out.Message, Shift: out.Data, Discrepancy: disc})
}

// Movements godoc
// @Summary      Movimientos de un turno
// @Tags         box-shifts
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del turno"
// @Success      200  {object}  session.ListView
// @Router       /api/box-shifts/{id}/movements [get]
func (h *BoxShiftHandler) Movements(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}
	view := GetSession(c).BoxShiftMovements(c.UserContext(), id, h.listParams(c))
	return c.Status(viewStatus(view.Error, view.ErrorStatus)).JSON(view)
}

// shift carga el turno actual desde el API.
func (h *BoxShiftHandler) shift(c *fiber.Ctx, id int64) (*entity.BoxShift, error) {
	st := GetSession(c).BoxShifts.FetchOne(c.UserContext(), id)
	if st.Current == nil {
		return nil, lastError(st.LastError)
	}
	return st.Current, nil
}

func (in closeInput) apply(req *dto.CloseBoxShiftRequest) {
	if in.ClosedAmount != nil {
		req.ClosedAmount = *in.ClosedAmount
	}
	if in.Observation != nil {
		req.Observation = *in.Observation
	}
}

func discrepancyView(shift *entity.BoxShift, req dto.CloseBoxShiftRequest) DiscrepancyView {
	d := forms.CloseDiscrepancy(shift, req)
	return DiscrepancyView{
		Discrepancy: d,
		Expected:    format.Money(shift.ExpectedBalance, consoleCurrency),
		Declared:    format.Money(req.ClosedAmount, consoleCurrency),
		Difference:  format.Money(d.Amount, consoleCurrency),
	}
}
