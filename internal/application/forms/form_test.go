package forms_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-console/internal/application/dto"
	"github.com/jhoicas/backoffice-console/internal/application/forms"
	"github.com/jhoicas/backoffice-console/internal/application/validation"
	"github.com/jhoicas/backoffice-console/internal/domain"
	"github.com/jhoicas/backoffice-console/internal/domain/boxshift"
	"github.com/jhoicas/backoffice-console/internal/domain/entity"
)

func validMovement() dto.CreateBoxMovementRequest {
	return dto.CreateBoxMovementRequest{
		BoxShiftID: 1,
		Type:       entity.BoxMovementIncome,
		Concept:    "Venta mostrador",
		CashAmount: decimal.NewFromInt(50),
	}
}

func TestForm_CanSubmitSigueLaValidacion(t *testing.T) {
	f := forms.New(dto.CreateBoxMovementRequest{}, nil)
	assert.False(t, f.CanSubmit(), "formulario vacío es inválido")

	errs := f.Change(func(v *dto.CreateBoxMovementRequest) { *v = validMovement() })
	assert.False(t, errs.HasErrors())
	assert.True(t, f.CanSubmit())

	errs = f.Change(func(v *dto.CreateBoxMovementRequest) { v.CashAmount = decimal.Zero })
	assert.True(t, errs.Has(validation.RootField), "sin montos el error es de raíz")
	assert.False(t, f.CanSubmit())
}

func TestForm_SubmitInvalidoNoEnvia(t *testing.T) {
	f := forms.New(dto.CreateBoxMovementRequest{}, nil)
	called := false

	err := f.Submit(context.Background(), func(context.Context, dto.CreateBoxMovementRequest) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, forms.ErrInvalid)
	assert.False(t, called)
}

func TestForm_SubmitEnCursoBloqueaOtroEnvio(t *testing.T) {
	f := forms.New(validMovement(), nil)
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- f.Submit(context.Background(), func(context.Context, dto.CreateBoxMovementRequest) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	assert.True(t, f.Submitting())
	assert.False(t, f.CanSubmit())
	err := f.Submit(context.Background(), func(context.Context, dto.CreateBoxMovementRequest) error { return nil })
	assert.ErrorIs(t, err, forms.ErrInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, f.Submitting())
	assert.True(t, f.CanSubmit())
}

func TestForm_RechazoDelAPIConservaValores(t *testing.T) {
	f := forms.New(validMovement(), nil)
	apiErr := &domain.APIError{
		Kind:    domain.KindValidation,
		Status:  422,
		Message: "El turno ya está cerrado",
		Fields:  map[string][]string{"box_shift_id": {"El turno no admite movimientos"}},
	}

	err := f.Submit(context.Background(), func(context.Context, dto.CreateBoxMovementRequest) error { return apiErr })

	require.Error(t, err)
	assert.Equal(t, validMovement(), f.Values())
	assert.Equal(t, []string{"El turno ya está cerrado"}, f.Errors().Root)
	assert.True(t, f.Errors().Has("box_shift_id"))
}

func TestForm_RechazoSinMensajeUsaGenerico(t *testing.T) {
	f := forms.New(validMovement(), nil).WithFailureMessage("No se pudo registrar el movimiento")

	err := f.Submit(context.Background(), func(context.Context, dto.CreateBoxMovementRequest) error {
		return errors.New("connection reset")
	})

	require.Error(t, err)
	assert.Equal(t, []string{"No se pudo registrar el movimiento"}, f.Errors().Root)
}

func TestForm_Reset(t *testing.T) {
	f := forms.New(validMovement(), nil)
	f.Reset(dto.CreateBoxMovementRequest{})
	assert.Equal(t, dto.CreateBoxMovementRequest{}, f.Values())
	assert.False(t, f.CanSubmit())
}

func TestCloseBoxShiftForm_PrecargaSaldoEsperado(t *testing.T) {
	shift := &entity.BoxShift{ID: 9, ExpectedBalance: decimal.RequireFromString("1250.50")}

	f := forms.NewCloseBoxShiftForm(shift)

	assert.Equal(t, int64(9), f.Values().BoxShiftID)
	assert.True(t, f.Values().ClosedAmount.Equal(shift.ExpectedBalance))
	assert.True(t, f.CanSubmit())
	assert.Equal(t, boxshift.LevelNormal, forms.CloseDiscrepancy(shift, f.Values()).Level)

	f.Change(func(v *dto.CloseBoxShiftRequest) { v.ClosedAmount = decimal.NewFromInt(1000) })
	d := forms.CloseDiscrepancy(shift, f.Values())
	assert.Equal(t, boxshift.LevelCritical, d.Level)
	assert.True(t, f.CanSubmit(), "el desvío es informativo, no bloquea el cierre")
}

func TestCreditNoteForm_PayloadSoloLineasSeleccionadas(t *testing.T) {
	sale := &entity.Sale{ID: 3, Details: []entity.SaleDetail{
		{ID: 11, ProductID: 1, QuantityKg: decimal.NewFromInt(50), UnitPrice: decimal.NewFromInt(4)},
		{ID: 12, ProductID: 2, QuantityKg: decimal.NewFromInt(25), UnitPrice: decimal.NewFromInt(6)},
		{ID: 13, ProductID: 3, QuantityKg: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(8)},
	}}
	form := forms.NewCreditNoteForm(sale)
	form.MotiveID = 2
	assert.Empty(t, form.Payload().Details, "las líneas inician sin seleccionar")

	form.Lines[0].Toggle()
	form.Lines[2].Toggle()
	payload := form.Payload()

	require.Len(t, payload.Details, 2)
	assert.Equal(t, int64(11), payload.Details[0].SaleDetailID)
	assert.Equal(t, int64(13), payload.Details[1].SaleDetailID)
	assert.False(t, validation.Validate(payload).HasErrors())

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "selected")
}

func TestCreditNoteForm_SinSeleccionEsInvalido(t *testing.T) {
	form := forms.NewCreditNoteForm(&entity.Sale{ID: 3, Details: []entity.SaleDetail{{ID: 11, ProductID: 1}}})
	form.MotiveID = 1

	errs := validation.Validate(form.Payload())
	assert.True(t, errs.Has("details"))
}

func TestPurchaseCreditNoteForm_Payload(t *testing.T) {
	purchase := &entity.Purchase{ID: 7, Details: []entity.PurchaseDetail{
		{ID: 21, ProductID: 1, QuantitySacks: decimal.NewFromInt(2)},
		{ID: 22, ProductID: 2, QuantitySacks: decimal.NewFromInt(4)},
	}}
	form := forms.NewPurchaseCreditNoteForm(purchase)
	form.Lines[1].Toggle()

	payload := form.Payload()
	require.Len(t, payload.Details, 1)
	assert.Equal(t, int64(22), payload.Details[0].PurchaseDetailID)
	assert.Equal(t, int64(7), payload.PurchaseID)
}

func TestDetailLine_ToggleConservaValores(t *testing.T) {
	line := forms.WarehouseDetailLine{Selected: true}
	require.NoError(t, line.Set("quantity_kg", "12,5"))
	assert.True(t, line.QuantityKg.Equal(decimal.RequireFromString("12.5")))

	line.Toggle()
	assert.False(t, line.Selected)
	assert.True(t, line.QuantityKg.Equal(decimal.RequireFromString("12.5")), "desmarcar no borra")
	assert.ErrorIs(t, line.Set("quantity_kg", "3"), forms.ErrLineDisabled)

	line.Toggle()
	require.NoError(t, line.Set("unit_price", "3.20"))
	assert.True(t, line.UnitPrice.Equal(decimal.RequireFromString("3.2")))
}

func TestDetailLine_SoloNumerosNoNegativos(t *testing.T) {
	line := forms.CreditNoteLine{Selected: true}
	line.QuantitySacks = decimal.NewFromInt(4)

	assert.ErrorIs(t, line.Set("quantity_sacks", "-1"), forms.ErrNegative)
	assert.ErrorIs(t, line.Set("quantity_sacks", "abc"), forms.ErrNotNumeric)
	assert.True(t, line.QuantitySacks.Equal(decimal.NewFromInt(4)), "entrada rechazada no modifica el valor")

	require.NoError(t, line.Set("quantity_sacks", ""))
	assert.True(t, line.QuantitySacks.IsZero())
	assert.ErrorIs(t, line.Set("descuento", "1"), domain.ErrInvalidInput)
}

func TestEditLine(t *testing.T) {
	lines := forms.NewCreditNoteForm(&entity.Sale{ID: 3, Details: []entity.SaleDetail{
		{ID: 11, ProductID: 1, QuantityKg: decimal.NewFromInt(50)},
	}}).Lines

	err := forms.EditLine(lines, 0, forms.LineEdit{Field: "quantity_kg", Value: "20"})
	assert.ErrorIs(t, err, forms.ErrLineDisabled)
	assert.True(t, forms.IsLineError(err))

	require.NoError(t, forms.EditLine(lines, 0, forms.LineEdit{Toggle: true}))
	assert.True(t, lines[0].Selected)

	require.NoError(t, forms.EditLine(lines, 0, forms.LineEdit{Field: "quantity_kg", Value: "20,5"}))
	assert.True(t, lines[0].QuantityKg.Equal(decimal.RequireFromString("20.5")))

	err = forms.EditLine(lines, 0, forms.LineEdit{Field: "quantity_kg", Value: "x"})
	assert.ErrorIs(t, err, forms.ErrNotNumeric)
	assert.True(t, lines[0].QuantityKg.Equal(decimal.RequireFromString("20.5")))

	assert.ErrorIs(t, forms.EditLine(lines, 1, forms.LineEdit{Toggle: true}), domain.ErrNotFound)
	assert.False(t, forms.IsLineError(domain.ErrNotFound))
}

func TestParseNonNegative(t *testing.T) {
	d, err := forms.ParseNonNegative(" 1,25 ")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("1.25")))

	d, err = forms.ParseNonNegative("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = forms.ParseNonNegative("-0.5")
	assert.ErrorIs(t, err, forms.ErrNegative)
	_, err = forms.ParseNonNegative("1.2.3")
	assert.ErrorIs(t, err, forms.ErrNotNumeric)
}

func TestWarehouseDocumentFromPurchase(t *testing.T) {
	purchase := &entity.Purchase{ID: 5, Details: []entity.PurchaseDetail{
		{ID: 1, ProductID: 10, QuantityKg: decimal.NewFromInt(100), UnitPrice: decimal.NewFromInt(2)},
		{ID: 2, ProductID: 11, QuantityKg: decimal.NewFromInt(40), UnitPrice: decimal.NewFromInt(3)},
	}}
	form := forms.NewWarehouseDocumentFromPurchase(purchase)
	form.Lines[1].Toggle()

	doc := form.Payload()
	assert.Equal(t, entity.DocumentTypeIngreso, doc.DocumentType)
	require.NotNil(t, doc.PurchaseID)
	assert.Equal(t, int64(5), *doc.PurchaseID)
	require.Len(t, doc.Details, 1)
	assert.Equal(t, int64(10), doc.Details[0].ProductID)
}
