package entity

// Warehouse almacén de origen o destino de los documentos de almacén.
type Warehouse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	Address  string `json:"address,omitempty"`
	IsActive bool   `json:"is_active"`
}

// Motive motivo de un documento (almacén o nota de crédito).
type Motive struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code,omitempty"`
	DocumentType string `json:"document_type,omitempty"` // INGRESO, SALIDA, ... o CREDIT_NOTE
}

// Person responsable de un movimiento de almacén.
type Person struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	DocumentNumber string `json:"document_number,omitempty"`
}
