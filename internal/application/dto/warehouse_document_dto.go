package dto

import "github.com/shopspring/decimal"

// WarehouseDocumentRequest alta/edición (solo en BORRADOR) de un documento de almacén.
type WarehouseDocumentRequest struct {
	DocumentType             string                 `json:"document_type" validate:"required,oneof=INGRESO SALIDA TRASLADO AJUSTE"`
	MotiveID                 int64                  `json:"motive_id" validate:"required,gt=0"`
	OriginWarehouseID        int64                  `json:"origin_warehouse_id" validate:"required,gt=0"`
	DestinationWarehouseID   *int64                 `json:"destination_warehouse_id,omitempty" validate:"omitempty,gt=0"`
	OriginResponsibleID      int64                  `json:"origin_responsible_id" validate:"required,gt=0"`
	DestinationResponsibleID *int64                 `json:"destination_responsible_id,omitempty" validate:"omitempty,gt=0"`
	MovementDate             string                 `json:"movement_date" validate:"required,datetime=2006-01-02"`
	PurchaseID               *int64                 `json:"purchase_id,omitempty" validate:"omitempty,gt=0"`
	Observation              string                 `json:"observation,omitempty" validate:"omitempty,max=500"`
	Details                  []WarehouseDetailInput `json:"details" validate:"required,min=1,dive"`
}

// WarehouseDetailInput línea del documento: cantidades y precio no negativos.
type WarehouseDetailInput struct {
	ProductID     int64           `json:"product_id" validate:"required,gt=0"`
	QuantitySacks decimal.Decimal `json:"quantity_sacks" validate:"min=0"`
	QuantityKg    decimal.Decimal `json:"quantity_kg" validate:"min=0"`
	UnitPrice     decimal.Decimal `json:"unit_price" validate:"min=0"`
}
