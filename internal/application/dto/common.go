package dto

import (
	"net/url"
	"strconv"
)

// Valores de paginación por defecto (mismo tope que los listados del API).
const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// ListParams parámetros de un listado: page, per_page, search y filtros propios del módulo.
type ListParams struct {
	Page    int               `json:"page"`
	PerPage int               `json:"per_page"`
	Search  string            `json:"search,omitempty"`
	Filters map[string]string `json:"filters,omitempty"`
}

// Normalize aplica valores por defecto y topes.
func (p ListParams) Normalize() ListParams {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Values convierte los parámetros a query string. Los filtros vacíos se omiten.
func (p ListParams) Values() url.Values {
	p = p.Normalize()
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("per_page", strconv.Itoa(p.PerPage))
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	for k, v := range p.Filters {
		if v == "" || k == "page" || k == "per_page" || k == "search" {
			continue
		}
		q.Set(k, v)
	}
	return q
}

// ErrorResponse cuerpo de error HTTP. ErrorCount alimenta el banner "N errores" del formulario.
type ErrorResponse struct {
	Code       string              `json:"code"`
	Message    string              `json:"message"`
	Fields     map[string][]string `json:"fields,omitempty"`
	ErrorCount int                 `json:"error_count,omitempty"`
}
