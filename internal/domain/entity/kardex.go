package entity

import "github.com/shopspring/decimal"

// KardexEntry fila del kardex: movimiento cronológico con saldo corrido por producto y almacén.
// Saldos y costo promedio ponderado los calcula el API.
type KardexEntry struct {
	Date          string          `json:"date"`
	DocumentID    int64           `json:"document_id"`
	DocumentCode  string          `json:"document_code"`
	DocumentType  string          `json:"document_type"`
	Motive        string          `json:"motive,omitempty"`
	QuantityInKg  decimal.Decimal `json:"quantity_in_kg"`
	QuantityOutKg decimal.Decimal `json:"quantity_out_kg"`
	BalanceKg     decimal.Decimal `json:"balance_kg"`
	BalanceSacks  decimal.Decimal `json:"balance_sacks"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	AverageCost   decimal.Decimal `json:"average_cost"`
	BalanceValue  decimal.Decimal `json:"balance_value"`
}

// ValuatedInventoryRow fila del inventario valorizado (saldo actual por producto y almacén).
type ValuatedInventoryRow struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	WarehouseID int64           `json:"warehouse_id"`
	Warehouse   string          `json:"warehouse_name"`
	StockKg     decimal.Decimal `json:"stock_kg"`
	StockSacks  decimal.Decimal `json:"stock_sacks"`
	AverageCost decimal.Decimal `json:"average_cost"`
	TotalValue  decimal.Decimal `json:"total_value"`
}
