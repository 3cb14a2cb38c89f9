package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-console/internal/application/dto"
	"github.com/jhoicas/backoffice-console/internal/domain/entity"
	"github.com/jhoicas/backoffice-console/internal/domain/warehouse"
)

// Tags de los refinamientos entre campos.
const (
	tagPaymentTotal        = "payment_total"
	tagMaxGreaterThanMin   = "max_gt_min"
	tagUniqueOrder         = "unique_order"
	tagRangeExists         = "range_exists"
	tagDuplicatePrice      = "duplicate_price"
	tagDestinationRequired = "destination_required"
	tagDistinctWarehouse   = "distinct_warehouse"
	tagQuantityRequired    = "quantity_required"
	tagDocumentLength      = "document_length"
)

var refinementMessages = map[string]string{
	tagPaymentTotal:        "La suma de los montos debe ser mayor a cero",
	tagMaxGreaterThanMin:   "El peso máximo debe ser mayor al peso mínimo",
	tagUniqueOrder:         "El orden del rango está repetido",
	tagRangeExists:         "El rango de peso no existe en la lista",
	tagDuplicatePrice:      "El producto ya tiene precio para este rango",
	tagDestinationRequired: "Obligatorio para traslados",
	tagDistinctWarehouse:   "El almacén de destino debe ser distinto al de origen",
	tagQuantityRequired:    "Ingrese cantidad en sacos o kg",
	tagDocumentLength:      "Longitud de documento inválida",
}

var documentLengths = map[string][2]int{
	entity.DocumentDNI: {8, 8},
	entity.DocumentRUC: {11, 11},
	entity.DocumentCE:  {9, 12},
}

func registerRefinements(v *validator.Validate) {
	v.RegisterStructValidation(boxMovementLevel, dto.CreateBoxMovementRequest{})
	v.RegisterStructValidation(priceListLevel, dto.PriceListRequest{})
	v.RegisterStructValidation(warehouseDocumentLevel, dto.WarehouseDocumentRequest{})
	v.RegisterStructValidation(clientLevel, dto.ClientRequest{})
	v.RegisterStructValidation(warehouseDetailLevel, dto.WarehouseDetailInput{})
	v.RegisterStructValidation(creditNoteDetailLevel, dto.CreditNoteDetailInput{})
	v.RegisterStructValidation(purchaseCreditNoteDetailLevel, dto.PurchaseCreditNoteDetailInput{})
}

func boxMovementLevel(sl validator.StructLevel) {
	r := sl.Current().Interface().(dto.CreateBoxMovementRequest)
	if total := r.Total(); !total.GreaterThan(decimal.Zero) {
		sl.ReportError(total, RootField, RootField, tagPaymentTotal, "")
	}
}

func priceListLevel(sl validator.StructLevel) {
	r := sl.Current().Interface().(dto.PriceListRequest)

	orders := make(map[int]int, len(r.WeightRanges))
	for _, wr := range r.WeightRanges {
		orders[wr.Order]++
	}
	for i, wr := range r.WeightRanges {
		if wr.MaxWeight != nil && !wr.MaxWeight.GreaterThan(wr.MinWeight) {
			sl.ReportError(*wr.MaxWeight, fmt.Sprintf("weight_ranges[%d].max_weight", i), "MaxWeight", tagMaxGreaterThanMin, "")
		}
		if orders[wr.Order] > 1 {
			sl.ReportError(wr.Order, fmt.Sprintf("weight_ranges[%d].order", i), "Order", tagUniqueOrder, "")
		}
	}

	seen := make(map[[2]int64]bool, len(r.ProductPrices))
	for i, pp := range r.ProductPrices {
		if _, ok := orders[pp.RangeOrder]; !ok {
			sl.ReportError(pp.RangeOrder, fmt.Sprintf("product_prices[%d].weight_range_order", i), "RangeOrder", tagRangeExists, "")
		}
		key := [2]int64{pp.ProductID, int64(pp.RangeOrder)}
		if seen[key] {
			sl.ReportError(pp.ProductID, fmt.Sprintf("product_prices[%d].product_id", i), "ProductID", tagDuplicatePrice, "")
		}
		seen[key] = true
	}
}

func warehouseDocumentLevel(sl validator.StructLevel) {
	r := sl.Current().Interface().(dto.WarehouseDocumentRequest)
	if !warehouse.RequiresDestination(r.DocumentType) {
		return
	}
	if r.DestinationWarehouseID == nil {
		sl.ReportError(r.DestinationWarehouseID, "destination_warehouse_id", "DestinationWarehouseID", tagDestinationRequired, "")
	} else if *r.DestinationWarehouseID == r.OriginWarehouseID {
		sl.ReportError(*r.DestinationWarehouseID, "destination_warehouse_id", "DestinationWarehouseID", tagDistinctWarehouse, "")
	}
	if r.DestinationResponsibleID == nil {
		sl.ReportError(r.DestinationResponsibleID, "destination_responsible_id", "DestinationResponsibleID", tagDestinationRequired, "")
	}
}

func clientLevel(sl validator.StructLevel) {
	r := sl.Current().Interface().(dto.ClientRequest)
	bounds, ok := documentLengths[r.DocumentType]
	if !ok || r.DocumentNumber == "" {
		return
	}
	if n := len(r.DocumentNumber); n < bounds[0] || n > bounds[1] {
		sl.ReportError(r.DocumentNumber, "document_number", "DocumentNumber", tagDocumentLength, "")
	}
}

func warehouseDetailLevel(sl validator.StructLevel) {
	r := sl.Current().Interface().(dto.WarehouseDetailInput)
	reportMissingQuantity(sl, r.QuantitySacks, r.QuantityKg)
}

func creditNoteDetailLevel(sl validator.StructLevel) {
	r := sl.Current().Interface().(dto.CreditNoteDetailInput)
	reportMissingQuantity(sl, r.QuantitySacks, r.QuantityKg)
}

func purchaseCreditNoteDetailLevel(sl validator.StructLevel) {
	r := sl.Current().Interface().(dto.PurchaseCreditNoteDetailInput)
	reportMissingQuantity(sl, r.QuantitySacks, r.QuantityKg)
}

func reportMissingQuantity(sl validator.StructLevel, sacks, kg decimal.Decimal) {
	if sacks.GreaterThan(decimal.Zero) || kg.GreaterThan(decimal.Zero) {
		return
	}
	sl.ReportError(kg, "quantity_kg", "QuantityKg", tagQuantityRequired, "")
}
