package dto

// Paginator estado del control de paginación de una tabla.
type Paginator struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}

// NewPaginator arma el paginador a partir de los metadatos del API.
func NewPaginator(m Meta) Paginator {
	p := Paginator{Page: m.CurrentPage, PerPage: m.PerPage, Total: m.Total}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	p.Page = p.Clamp(p.Page)
	return p
}

// TotalPages ceil(total / per_page), mínimo 1 para que la tabla vacía tenga página 1.
func (p Paginator) TotalPages() int {
	per := p.PerPage
	if per <= 0 {
		per = DefaultPerPage
	}
	if p.Total <= 0 {
		return 1
	}
	return (p.Total + per - 1) / per
}

// Clamp limita una página al rango [1, TotalPages].
func (p Paginator) Clamp(page int) int {
	if page < 1 {
		return 1
	}
	if last := p.TotalPages(); page > last {
		return last
	}
	return page
}

// HasPrev indica si existe página anterior.
func (p Paginator) HasPrev() bool { return p.Page > 1 }

// HasNext indica si existe página siguiente.
func (p Paginator) HasNext() bool { return p.Page < p.TotalPages() }

// Next página siguiente (limitada).
func (p Paginator) Next() int { return p.Clamp(p.Page + 1) }

// Prev página anterior (limitada).
func (p Paginator) Prev() int { return p.Clamp(p.Page - 1) }

// PageView forma serializable del paginador para las vistas.
type PageView struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// View devuelve la forma serializable.
func (p Paginator) View() PageView {
	return PageView{
		Page:       p.Page,
		PerPage:    p.PerPage,
		Total:      p.Total,
		TotalPages: p.TotalPages(),
		HasPrev:    p.HasPrev(),
		HasNext:    p.HasNext(),
	}
}
