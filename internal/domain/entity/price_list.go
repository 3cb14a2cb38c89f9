package entity

import "github.com/shopspring/decimal"

// PriceList lista de precios por producto y rango de peso.
type PriceList struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	IsDefault     bool           `json:"is_default"`
	IsActive      bool           `json:"is_active"`
	WeightRanges  []WeightRange  `json:"weight_ranges,omitempty"`
	ProductPrices []ProductPrice `json:"product_prices,omitempty"`
	ClientsCount  int            `json:"clients_count,omitempty"`
}

// WeightRange banda de peso (ej. 0–300 kg). MaxWeight nulo = sin tope.
type WeightRange struct {
	ID        int64            `json:"id,omitempty"`
	Order     int              `json:"order"`
	MinWeight decimal.Decimal  `json:"min_weight"`
	MaxWeight *decimal.Decimal `json:"max_weight"`
}

// Contains indica si un peso cae dentro de la banda [min, max).
func (r WeightRange) Contains(weight decimal.Decimal) bool {
	if weight.LessThan(r.MinWeight) {
		return false
	}
	return r.MaxWeight == nil || weight.LessThan(*r.MaxWeight)
}

// ProductPrice precio de un producto para un rango de peso.
type ProductPrice struct {
	ID            int64           `json:"id,omitempty"`
	ProductID     int64           `json:"product_id"`
	Product       *Product        `json:"product,omitempty"`
	WeightRangeID *int64          `json:"weight_range_id,omitempty"`
	RangeOrder    int             `json:"weight_range_order"`
	Price         decimal.Decimal `json:"price"`
	Currency      string          `json:"currency"`
}

// PriceQuote respuesta de POST /pricelist/get-price.
type PriceQuote struct {
	PriceListID int64           `json:"price_list_id"`
	ProductID   int64           `json:"product_id"`
	WeightRange *WeightRange    `json:"weight_range,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
}
