package dto

import "github.com/shopspring/decimal"

// CreditNoteRequest payload enviado al API: solo las líneas seleccionadas, sin la marca "selected".
type CreditNoteRequest struct {
	SaleID      int64                   `json:"sale_id" validate:"required,gt=0"`
	MotiveID    int64                   `json:"motive_id" validate:"required,gt=0"`
	Description string                  `json:"description,omitempty" validate:"omitempty,max=500"`
	Details     []CreditNoteDetailInput `json:"details" validate:"required,min=1,dive"`
}

// CreditNoteDetailInput línea de la nota (ajustable en cantidad y precio).
type CreditNoteDetailInput struct {
	SaleDetailID  int64           `json:"sale_detail_id" validate:"required,gt=0"`
	ProductID     int64           `json:"product_id" validate:"required,gt=0"`
	QuantitySacks decimal.Decimal `json:"quantity_sacks" validate:"min=0"`
	QuantityKg    decimal.Decimal `json:"quantity_kg" validate:"min=0"`
	UnitPrice     decimal.Decimal `json:"unit_price" validate:"min=0"`
}

// PurchaseCreditNoteRequest nota de crédito de compra.
type PurchaseCreditNoteRequest struct {
	PurchaseID  int64                           `json:"purchase_id" validate:"required,gt=0"`
	MotiveID    int64                           `json:"motive_id" validate:"required,gt=0"`
	Serie       string                          `json:"serie" validate:"required,max=4"`
	Number      string                          `json:"number" validate:"required,max=10"`
	Description string                          `json:"description,omitempty" validate:"omitempty,max=500"`
	Details     []PurchaseCreditNoteDetailInput `json:"details" validate:"required,min=1,dive"`
}

// PurchaseCreditNoteDetailInput línea de la nota de compra.
type PurchaseCreditNoteDetailInput struct {
	PurchaseDetailID int64           `json:"purchase_detail_id" validate:"required,gt=0"`
	ProductID        int64           `json:"product_id" validate:"required,gt=0"`
	QuantitySacks    decimal.Decimal `json:"quantity_sacks" validate:"min=0"`
	QuantityKg       decimal.Decimal `json:"quantity_kg" validate:"min=0"`
	UnitPrice        decimal.Decimal `json:"unit_price" validate:"min=0"`
}

// Formatos de exportación de notas de crédito.
const (
	ExportPDF   = "pdf"
	ExportExcel = "excel"
)
