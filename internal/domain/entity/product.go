package entity

import "github.com/shopspring/decimal"

// Product producto vendido por sacos y kilos.
type Product struct {
	ID        int64           `json:"id"`
	Code      string          `json:"code,omitempty"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit,omitempty"`
	KgPerSack decimal.Decimal `json:"kg_per_sack"`
	Price     decimal.Decimal `json:"price"`
	IsActive  bool            `json:"is_active"`
}
