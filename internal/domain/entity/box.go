package entity

import "github.com/shopspring/decimal"

// Estados de un turno de caja.
const (
	BoxShiftOpen   = "ABIERTO"
	BoxShiftClosed = "CERRADO"
)

// Tipos de movimiento de caja.
const (
	BoxMovementIncome  = "INGRESO"
	BoxMovementOutcome = "EGRESO"
)

// Box caja registradora (punto de venta físico).
type Box struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Serie        string `json:"serie,omitempty"`
	Description  string `json:"description,omitempty"`
	IsActive     bool   `json:"is_active"`
	HasOpenShift bool   `json:"has_open_shift"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// BoxShift turno de caja: se crea al abrir y solo se modifica al cerrar.
// Los totales, el saldo esperado y la diferencia los calcula el API.
type BoxShift struct {
	ID              int64            `json:"id"`
	BoxID           int64            `json:"box_id"`
	Box             *Box             `json:"box,omitempty"`
	UserID          int64            `json:"user_id,omitempty"`
	UserName        string           `json:"user_name,omitempty"`
	StartedAmount   decimal.Decimal  `json:"started_amount"`
	ClosedAmount    *decimal.Decimal `json:"closed_amount"`
	TotalIncome     decimal.Decimal  `json:"total_income"`
	TotalOutcome    decimal.Decimal  `json:"total_outcome"`
	ExpectedBalance decimal.Decimal  `json:"expected_balance"`
	Difference      decimal.Decimal  `json:"difference"`
	Observation     string           `json:"observation,omitempty"`
	Status          string           `json:"status"`
	IsOpen          bool             `json:"is_open"`
	IsClosed        bool             `json:"is_closed"`
	StartedAt       string           `json:"started_at,omitempty"`
	ClosedAt        string           `json:"closed_at,omitempty"`
}

// Open indica si el turno sigue abierto (según el estado o el booleano derivado).
func (s *BoxShift) Open() bool {
	return s.IsOpen || s.Status == BoxShiftOpen
}

// PaymentAmounts montos por medio de pago de un movimiento de caja.
type PaymentAmounts struct {
	Cash       decimal.Decimal `json:"cash_amount"`
	DebitCard  decimal.Decimal `json:"debit_card_amount"`
	CreditCard decimal.Decimal `json:"credit_card_amount"`
	Transfer   decimal.Decimal `json:"transfer_amount"`
	Yape       decimal.Decimal `json:"yape_amount"`
	Plin       decimal.Decimal `json:"plin_amount"`
}

// Total suma los seis medios de pago.
func (p PaymentAmounts) Total() decimal.Decimal {
	return p.Cash.Add(p.DebitCard).Add(p.CreditCard).Add(p.Transfer).Add(p.Yape).Add(p.Plin)
}

// BoxMovement ingreso o egreso registrado en un turno de caja.
type BoxMovement struct {
	ID         int64  `json:"id"`
	BoxShiftID int64  `json:"box_shift_id"`
	BoxID      int64  `json:"box_id"`
	Type       string `json:"type"`
	Concept    string `json:"concept"`
	PaymentAmounts
	Total     decimal.Decimal `json:"total"`
	ClientID  *int64          `json:"client_id,omitempty"`
	Client    *Client         `json:"client,omitempty"`
	CreatedAt string          `json:"created_at,omitempty"`
}

// ComputedTotal total derivado de los montos (el API envía Total ya calculado).
func (m *BoxMovement) ComputedTotal() decimal.Decimal {
	return m.PaymentAmounts.Total()
}
