package entity

// Tipos de documento de identidad de clientes.
const (
	DocumentDNI = "DNI"
	DocumentRUC = "RUC"
	DocumentCE  = "CE"
)

// Client cliente de la empresa (ventas, notas de crédito, listas de precios).
type Client struct {
	ID             int64  `json:"id"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	PriceListID    *int64 `json:"price_list_id,omitempty"`
	IsActive       bool   `json:"is_active"`
}
