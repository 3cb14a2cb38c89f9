package entity

import "github.com/shopspring/decimal"

// CreditNote nota de crédito emitida sobre una venta.
type CreditNote struct {
	ID          int64              `json:"id"`
	SaleID      int64              `json:"sale_id"`
	Sale        *Sale              `json:"sale,omitempty"`
	MotiveID    int64              `json:"motive_id"`
	Motive      *Motive            `json:"motive,omitempty"`
	Serie       string             `json:"serie,omitempty"`
	Number      string             `json:"number,omitempty"`
	Description string             `json:"description,omitempty"`
	Currency    string             `json:"currency,omitempty"`
	Total       decimal.Decimal    `json:"total"`
	IssuedAt    string             `json:"issued_at,omitempty"`
	Details     []CreditNoteDetail `json:"details,omitempty"`
}

// CreditNoteDetail línea (subconjunto ajustado de una línea de la venta).
type CreditNoteDetail struct {
	ID            int64           `json:"id,omitempty"`
	SaleDetailID  int64           `json:"sale_detail_id"`
	ProductID     int64           `json:"product_id"`
	QuantitySacks decimal.Decimal `json:"quantity_sacks"`
	QuantityKg    decimal.Decimal `json:"quantity_kg"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
}

// PurchaseCreditNote nota de crédito recibida sobre una compra.
type PurchaseCreditNote struct {
	ID          int64                      `json:"id"`
	PurchaseID  int64                      `json:"purchase_id"`
	Purchase    *Purchase                  `json:"purchase,omitempty"`
	MotiveID    int64                      `json:"motive_id"`
	Motive      *Motive                    `json:"motive,omitempty"`
	Serie       string                     `json:"serie"`
	Number      string                     `json:"number"`
	Description string                     `json:"description,omitempty"`
	Total       decimal.Decimal            `json:"total"`
	IssuedAt    string                     `json:"issued_at,omitempty"`
	Details     []PurchaseCreditNoteDetail `json:"details,omitempty"`
}

// PurchaseCreditNoteDetail línea de una nota de crédito de compra.
type PurchaseCreditNoteDetail struct {
	ID               int64           `json:"id,omitempty"`
	PurchaseDetailID int64           `json:"purchase_detail_id"`
	ProductID        int64           `json:"product_id"`
	QuantitySacks    decimal.Decimal `json:"quantity_sacks"`
	QuantityKg       decimal.Decimal `json:"quantity_kg"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
}
