package entity

import "github.com/shopspring/decimal"

// Tipos de documento de almacén.
const (
	DocumentTypeIngreso  = "INGRESO"
	DocumentTypeSalida   = "SALIDA"
	DocumentTypeTraslado = "TRASLADO"
	DocumentTypeAjuste   = "AJUSTE"
)

// WarehouseDocument documento de movimiento de almacén (ingreso, salida, traslado o ajuste).
// El estado (BORRADOR, CONFIRMADO, CANCELADO) lo cambia el API; ver package warehouse.
type WarehouseDocument struct {
	ID                       int64                     `json:"id"`
	Code                     string                    `json:"code,omitempty"`
	DocumentType             string                    `json:"document_type"`
	MotiveID                 int64                     `json:"motive_id"`
	Motive                   *Motive                   `json:"motive,omitempty"`
	OriginWarehouseID        int64                     `json:"origin_warehouse_id"`
	OriginWarehouse          *Warehouse                `json:"origin_warehouse,omitempty"`
	DestinationWarehouseID   *int64                    `json:"destination_warehouse_id,omitempty"`
	DestinationWarehouse     *Warehouse                `json:"destination_warehouse,omitempty"`
	OriginResponsibleID      int64                     `json:"origin_responsible_id"`
	DestinationResponsibleID *int64                    `json:"destination_responsible_id,omitempty"`
	MovementDate             string                    `json:"movement_date"`
	PurchaseID               *int64                    `json:"purchase_id,omitempty"`
	Purchase                 *Purchase                 `json:"purchase,omitempty"`
	Observation              string                    `json:"observation,omitempty"`
	Status                   string                    `json:"status"`
	Details                  []WarehouseDocumentDetail `json:"details,omitempty"`
	ConfirmedAt              string                    `json:"confirmed_at,omitempty"`
	CancelledAt              string                    `json:"cancelled_at,omitempty"`
}

// WarehouseDocumentDetail línea de producto del documento.
type WarehouseDocumentDetail struct {
	ID            int64           `json:"id,omitempty"`
	ProductID     int64           `json:"product_id"`
	Product       *Product        `json:"product,omitempty"`
	QuantitySacks decimal.Decimal `json:"quantity_sacks"`
	QuantityKg    decimal.Decimal `json:"quantity_kg"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
}
