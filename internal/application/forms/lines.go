package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-console/internal/application/dto"
	"github.com/jhoicas/backoffice-console/internal/domain"
	"github.com/jhoicas/backoffice-console/internal/domain/entity"
)

var (
	// ErrLineDisabled la línea no está seleccionada: sus campos están deshabilitados.
	ErrLineDisabled = errors.New("línea no seleccionada")
	// ErrNotNumeric el valor ingresado no es un número.
	ErrNotNumeric = errors.New("solo se permiten números")
	// ErrNegative el valor ingresado es negativo.
	ErrNegative = errors.New("no se permiten valores negativos")
)

// Selectable línea con marca de selección propia del cliente.
type Selectable[T any] interface {
	IsSelected() bool
	Value() T
}

// Pick devuelve los valores de las líneas seleccionadas, sin la marca de selección.
func Pick[T any, L Selectable[T]](lines []L) []T {
	out := make([]T, 0, len(lines))
	for _, l := range lines {
		if l.IsSelected() {
			out = append(out, l.Value())
		}
	}
	return out
}

// ParseNonNegative interpreta un valor numérico ingresado por el usuario (acepta coma decimal).
// Vacío equivale a cero.
func ParseNonNegative(input string) (decimal.Decimal, error) {
	s := strings.TrimSpace(strings.ReplaceAll(input, ",", "."))
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrNotNumeric
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegative
	}
	return d, nil
}

// quantities campos editables compartidos por las líneas de detalle.
type quantities struct {
	sacks *decimal.Decimal
	kg    *decimal.Decimal
	price *decimal.Decimal
}

func setField(selected bool, dst *decimal.Decimal, input string) error {
	if !selected {
		return ErrLineDisabled
	}
	v, err := ParseNonNegative(input)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func (q quantities) set(selected bool, field, input string) error {
	switch field {
	case "quantity_sacks":
		return setField(selected, q.sacks, input)
	case "quantity_kg":
		return setField(selected, q.kg, input)
	case "unit_price":
		return setField(selected, q.price, input)
	}
	return fmt.Errorf("%w: campo desconocido %q", domain.ErrInvalidInput, field)
}

// LineEdit cambio sobre una línea: marcarla/desmarcarla o asignar un campo desde texto.
type LineEdit struct {
	Toggle bool   `json:"toggle"`
	Field  string `json:"field"`
	Value  string `json:"value"`
}

// lineEditor puntero a una línea editable.
type lineEditor[L any] interface {
	*L
	Toggle()
	Set(field, input string) error
}

// EditLine aplica edit a lines[index]. Un valor rechazado deja la línea como estaba.
func EditLine[L any, P lineEditor[L]](lines []L, index int, edit LineEdit) error {
	if index < 0 || index >= len(lines) {
		return fmt.Errorf("%w: línea %d", domain.ErrNotFound, index)
	}
	line := P(&lines[index])
	if edit.Toggle {
		line.Toggle()
		return nil
	}
	return line.Set(edit.Field, edit.Value)
}

// IsLineError indica si err es un rechazo de la entrada de una línea.
func IsLineError(err error) bool {
	return errors.Is(err, ErrLineDisabled) || errors.Is(err, ErrNotNumeric) || errors.Is(err, ErrNegative)
}

// ──────────────────────────────────────────────────────────────────────────────
// Documento de almacén
// ──────────────────────────────────────────────────────────────────────────────

// WarehouseDetailLine línea de detalle editable. Desmarcarla deshabilita sus campos sin borrarlos.
type WarehouseDetailLine struct {
	Selected bool `json:"selected"`
	dto.WarehouseDetailInput
}

func (l WarehouseDetailLine) IsSelected() bool {
	return l.Selected
}

func (l WarehouseDetailLine) Value() dto.WarehouseDetailInput {
	return l.WarehouseDetailInput
}

// Toggle marca o desmarca la línea; los valores se conservan.
func (l *WarehouseDetailLine) Toggle() { l.Selected = !l.Selected }

// Set asigna quantity_sacks, quantity_kg o unit_price desde texto.
func (l *WarehouseDetailLine) Set(field, input string) error {
	return quantities{&l.QuantitySacks, &l.QuantityKg, &l.UnitPrice}.set(l.Selected, field, input)
}

// WarehouseDocumentForm formulario del documento: el mismo cuerpo del API más, opcionalmente,
// líneas seleccionables. Si Lines tiene elementos, el detalle enviado son las seleccionadas.
type WarehouseDocumentForm struct {
	dto.WarehouseDocumentRequest
	Lines []WarehouseDetailLine `json:"lines,omitempty"`
}

// NewWarehouseDocumentFromPurchase arma un ingreso a partir de una compra, con todas sus líneas marcadas.
func NewWarehouseDocumentFromPurchase(p *entity.Purchase) WarehouseDocumentForm {
	id := p.ID
	form := WarehouseDocumentForm{WarehouseDocumentRequest: dto.WarehouseDocumentRequest{
		DocumentType: entity.DocumentTypeIngreso,
		PurchaseID:   &id,
	}}
	for _, d := range p.Details {
		form.Lines = append(form.Lines, WarehouseDetailLine{
			Selected: true,
			WarehouseDetailInput: dto.WarehouseDetailInput{
				ProductID:     d.ProductID,
				QuantitySacks: d.QuantitySacks,
				QuantityKg:    d.QuantityKg,
				UnitPrice:     d.UnitPrice,
			},
		})
	}
	return form
}

// Payload documento listo para enviar.
func (f WarehouseDocumentForm) Payload() dto.WarehouseDocumentRequest {
	doc := f.WarehouseDocumentRequest
	if len(f.Lines) > 0 {
		doc.Details = Pick[dto.WarehouseDetailInput](f.Lines)
	}
	return doc
}

// ──────────────────────────────────────────────────────────────────────────────
// Nota de crédito
// ──────────────────────────────────────────────────────────────────────────────

// CreditNoteLine línea de la venta con marca de selección.
type CreditNoteLine struct {
	Selected bool `json:"selected"`
	dto.CreditNoteDetailInput
}

func (l CreditNoteLine) IsSelected() bool {
	return l.Selected
}

func (l CreditNoteLine) Value() dto.CreditNoteDetailInput {
	return l.CreditNoteDetailInput
}

// Toggle marca o desmarca la línea; los valores se conservan.
func (l *CreditNoteLine) Toggle() { l.Selected = !l.Selected }

// Set asigna quantity_sacks, quantity_kg o unit_price desde texto.
func (l *CreditNoteLine) Set(field, input string) error {
	return quantities{&l.QuantitySacks, &l.QuantityKg, &l.UnitPrice}.set(l.Selected, field, input)
}

// CreditNoteForm formulario de nota de crédito sobre una venta.
type CreditNoteForm struct {
	SaleID      int64            `json:"sale_id"`
	MotiveID    int64            `json:"motive_id"`
	Description string           `json:"description,omitempty"`
	Lines       []CreditNoteLine `json:"details"`
}

// NewCreditNoteForm carga las líneas de la venta sin seleccionar.
func NewCreditNoteForm(s *entity.Sale) CreditNoteForm {
	form := CreditNoteForm{SaleID: s.ID}
	for _, d := range s.Details {
		form.Lines = append(form.Lines, CreditNoteLine{CreditNoteDetailInput: dto.CreditNoteDetailInput{
			SaleDetailID:  d.ID,
			ProductID:     d.ProductID,
			QuantitySacks: d.QuantitySacks,
			QuantityKg:    d.QuantityKg,
			UnitPrice:     d.UnitPrice,
		}})
	}
	return form
}

// Payload una línea de detalle por cada línea seleccionada.
func (f CreditNoteForm) Payload() dto.CreditNoteRequest {
	return dto.CreditNoteRequest{
		SaleID:      f.SaleID,
		MotiveID:    f.MotiveID,
		Description: f.Description,
		Details:     Pick[dto.CreditNoteDetailInput](f.Lines),
	}
}

// PurchaseCreditNoteLine línea de la compra con marca de selección.
type PurchaseCreditNoteLine struct {
	Selected bool `json:"selected"`
	dto.PurchaseCreditNoteDetailInput
}

func (l PurchaseCreditNoteLine) IsSelected() bool {
	return l.Selected
}

func (l PurchaseCreditNoteLine) Value() dto.PurchaseCreditNoteDetailInput {
	return l.PurchaseCreditNoteDetailInput
}

// Toggle marca o desmarca la línea; los valores se conservan.
func (l *PurchaseCreditNoteLine) Toggle() { l.Selected = !l.Selected }

// Set asigna quantity_sacks, quantity_kg o unit_price desde texto.
func (l *PurchaseCreditNoteLine) Set(field, input string) error {
	return quantities{&l.QuantitySacks, &l.QuantityKg, &l.UnitPrice}.set(l.Selected, field, input)
}

// PurchaseCreditNoteForm formulario de nota de crédito de compra.
type PurchaseCreditNoteForm struct {
	PurchaseID  int64                    `json:"purchase_id"`
	MotiveID    int64                    `json:"motive_id"`
	Serie       string                   `json:"serie"`
	Number      string                   `json:"number"`
	Description string                   `json:"description,omitempty"`
	Lines       []PurchaseCreditNoteLine `json:"details"`
}

// NewPurchaseCreditNoteForm carga las líneas de la compra sin seleccionar.
func NewPurchaseCreditNoteForm(p *entity.Purchase) PurchaseCreditNoteForm {
	form := PurchaseCreditNoteForm{PurchaseID: p.ID}
	for _, d := range p.Details {
		form.Lines = append(form.Lines, PurchaseCreditNoteLine{PurchaseCreditNoteDetailInput: dto.PurchaseCreditNoteDetailInput{
			PurchaseDetailID: d.ID,
			ProductID:        d.ProductID,
			QuantitySacks:    d.QuantitySacks,
			QuantityKg:       d.QuantityKg,
			UnitPrice:        d.UnitPrice,
		}})
	}
	return form
}

// Payload una línea de detalle por cada línea seleccionada.
func (f PurchaseCreditNoteForm) Payload() dto.PurchaseCreditNoteRequest {
	return dto.PurchaseCreditNoteRequest{
		PurchaseID:  f.PurchaseID,
		MotiveID:    f.MotiveID,
		Serie:       f.Serie,
		Number:      f.Number,
		Description: f.Description,
		Details:     Pick[dto.PurchaseCreditNoteDetailInput](f.Lines),
	}
}
