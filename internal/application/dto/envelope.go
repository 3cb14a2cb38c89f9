package dto

// Links enlaces de paginación del API.
type Links struct {
	First string  `json:"first,omitempty"`
	Last  string  `json:"last,omitempty"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

// Meta metadatos de paginación del API.
type Meta struct {
	CurrentPage int    `json:"current_page"`
	LastPage    int    `json:"last_page"`
	PerPage     int    `json:"per_page"`
	Total       int    `json:"total"`
	From        *int   `json:"from"`
	To          *int   `json:"to"`
	Path        string `json:"path,omitempty"`
}

// ListResponse respuesta de los endpoints de listado: { data, links, meta }.
type ListResponse[T any] struct {
	Data  []T   `json:"data"`
	Links Links `json:"links"`
	Meta  Meta  `json:"meta"`
}

// ItemResponse respuesta de un registro: { data }.
type ItemResponse[T any] struct {
	Data T `json:"data"`
}

// MessageResponse respuesta de POST/PUT/DELETE: { message } o { message, data }.
type MessageResponse[T any] struct {
	Message string `json:"message"`
	Data    *T     `json:"data,omitempty"`
}
