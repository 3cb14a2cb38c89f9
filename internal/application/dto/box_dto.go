package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-console/internal/domain/entity"
)

// BoxRequest alta/edición de una caja.
type BoxRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Serie       string `json:"serie" validate:"omitempty,max=10"`
	Description string `json:"description" validate:"omitempty,max=255"`
	IsActive    bool   `json:"is_active"`
}

// OpenBoxShiftRequest apertura de turno.
type OpenBoxShiftRequest struct {
	BoxID         int64           `json:"box_id" validate:"required,gt=0"`
	StartedAmount decimal.Decimal `json:"started_amount" validate:"min=0"`
	Observation   string          `json:"observation,omitempty" validate:"omitempty,max=500"`
}

// CloseBoxShiftRequest cierre de turno: única modificación permitida sobre un turno.
type CloseBoxShiftRequest struct {
	BoxShiftID   int64           `json:"box_shift_id" validate:"required,gt=0"`
	ClosedAmount decimal.Decimal `json:"closed_amount" validate:"min=0"`
	Observation  string          `json:"observation,omitempty" validate:"omitempty,max=500"`
}

// CreateBoxMovementRequest ingreso/egreso manual en un turno abierto.
// La suma de los seis medios de pago debe ser mayor a cero (regla de formulario).
type CreateBoxMovementRequest struct {
	BoxShiftID       int64           `json:"box_shift_id" validate:"required,gt=0"`
	Type             string          `json:"type" validate:"required,oneof=INGRESO EGRESO"`
	Concept          string          `json:"concept" validate:"required,min=3,max=255"`
	CashAmount       decimal.Decimal `json:"cash_amount" validate:"min=0"`
	DebitCardAmount  decimal.Decimal `json:"debit_card_amount" validate:"min=0"`
	CreditCardAmount decimal.Decimal `json:"credit_card_amount" validate:"min=0"`
	TransferAmount   decimal.Decimal `json:"transfer_amount" validate:"min=0"`
	YapeAmount       decimal.Decimal `json:"yape_amount" validate:"min=0"`
	PlinAmount       decimal.Decimal `json:"plin_amount" validate:"min=0"`
	ClientID         *int64          `json:"client_id,omitempty" validate:"omitempty,gt=0"`
}

// Amounts agrupa los medios de pago.
func (r CreateBoxMovementRequest) Amounts() entity.PaymentAmounts {
	return entity.PaymentAmounts{
		Cash:       r.CashAmount,
		DebitCard:  r.DebitCardAmount,
		CreditCard: r.CreditCardAmount,
		Transfer:   r.TransferAmount,
		Yape:       r.YapeAmount,
		Plin:       r.PlinAmount,
	}
}

// Total suma de los seis medios de pago.
func (r CreateBoxMovementRequest) Total() decimal.Decimal {
	return r.Amounts().Total()
}
