package dto

import "github.com/shopspring/decimal"

// PriceListRequest alta/edición de lista de precios: rangos de peso y precios se envían juntos.
type PriceListRequest struct {
	Name          string              `json:"name" validate:"required,min=2,max=100"`
	Description   string              `json:"description,omitempty" validate:"omitempty,max=255"`
	IsDefault     bool                `json:"is_default"`
	WeightRanges  []WeightRangeInput  `json:"weight_ranges" validate:"required,min=1,dive"`
	ProductPrices []ProductPriceInput `json:"product_prices" validate:"dive"`
}

// WeightRangeInput banda de peso. MaxWeight nulo = sin tope.
type WeightRangeInput struct {
	Order     int              `json:"order" validate:"min=1"`
	MinWeight decimal.Decimal  `json:"min_weight" validate:"min=0"`
	MaxWeight *decimal.Decimal `json:"max_weight"`
}

// ProductPriceInput precio de un producto en un rango (referenciado por su order).
type ProductPriceInput struct {
	ProductID  int64           `json:"product_id" validate:"required,gt=0"`
	RangeOrder int             `json:"weight_range_order" validate:"min=1"`
	Price      decimal.Decimal `json:"price" validate:"gt=0"`
	Currency   string          `json:"currency" validate:"required,oneof=PEN USD"`
}

// GetPriceRequest consulta de precio (POST /pricelist/get-price).
type GetPriceRequest struct {
	PriceListID *int64          `json:"price_list_id,omitempty" validate:"omitempty,gt=0"`
	ClientID    *int64          `json:"client_id,omitempty" validate:"omitempty,gt=0"`
	ProductID   int64           `json:"product_id" validate:"required,gt=0"`
	Weight      decimal.Decimal `json:"weight" validate:"gt=0"`
}

// AssignClientRequest asigna un cliente a una lista (POST /pricelist/{id}/assign-client).
type AssignClientRequest struct {
	ClientID int64 `json:"client_id" validate:"required,gt=0"`
}
