package entity

import "github.com/shopspring/decimal"

// Sale venta (documento de origen de una nota de crédito).
type Sale struct {
	ID       int64           `json:"id"`
	Serie    string          `json:"serie"`
	Number   string          `json:"number"`
	ClientID int64           `json:"client_id"`
	Client   *Client         `json:"client,omitempty"`
	Currency string          `json:"currency"`
	Total    decimal.Decimal `json:"total"`
	IssuedAt string          `json:"issued_at,omitempty"`
	Details  []SaleDetail    `json:"details,omitempty"`
}

// SaleDetail línea de una venta.
type SaleDetail struct {
	ID            int64           `json:"id"`
	ProductID     int64           `json:"product_id"`
	Product       *Product        `json:"product,omitempty"`
	QuantitySacks decimal.Decimal `json:"quantity_sacks"`
	QuantityKg    decimal.Decimal `json:"quantity_kg"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// Purchase compra (documento de origen de ingresos de almacén y notas de crédito de compra).
type Purchase struct {
	ID         int64            `json:"id"`
	Serie      string           `json:"serie"`
	Number     string           `json:"number"`
	SupplierID int64            `json:"supplier_id"`
	Supplier   string           `json:"supplier_name,omitempty"`
	Currency   string           `json:"currency"`
	Total      decimal.Decimal  `json:"total"`
	IssuedAt   string           `json:"issued_at,omitempty"`
	Details    []PurchaseDetail `json:"details,omitempty"`
}

// PurchaseDetail línea de una compra.
type PurchaseDetail struct {
	ID            int64           `json:"id"`
	ProductID     int64           `json:"product_id"`
	Product       *Product        `json:"product,omitempty"`
	QuantitySacks decimal.Decimal `json:"quantity_sacks"`
	QuantityKg    decimal.Decimal `json:"quantity_kg"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}
