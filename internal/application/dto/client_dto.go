package dto

// ClientRequest alta/edición de cliente.
type ClientRequest struct {
	DocumentType   string `json:"document_type" validate:"required,oneof=DNI RUC CE"`
	DocumentNumber string `json:"document_number" validate:"required,numeric"`
	Name           string `json:"name" validate:"required,min=2,max=200"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address        string `json:"address,omitempty" validate:"omitempty,max=255"`
	PriceListID    *int64 `json:"price_list_id,omitempty" validate:"omitempty,gt=0"`
	IsActive       bool   `json:"is_active"`
}
