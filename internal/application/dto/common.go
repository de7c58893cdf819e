package dto

// Paginación por defecto (igual que el listado público de ofertas).
const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)

// PageRequest paginación para listados.
type PageRequest struct {
	Page    int `query:"page"`
	PerPage int `query:"per_page"`
}

// DefaultPage aplica valores por defecto y topes.
func (p *PageRequest) DefaultPage() {
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	if p.Page <= 0 {
		p.Page = 1
	}
}

// Offset desplazamiento para la consulta.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PageMeta metadatos de página en respuestas.
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
}

// NewPageMeta calcula la última página a partir del total.
func NewPageMeta(p PageRequest, total int) PageMeta {
	last := 1
	if p.PerPage > 0 && total > 0 {
		last = (total + p.PerPage - 1) / p.PerPage
	}
	return PageMeta{CurrentPage: p.Page, PerPage: p.PerPage, Total: total, LastPage: last}
}

// ErrorResponse cuerpo de error HTTP. Errors solo en fallos de validación.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// MessageResponse respuesta simple.
type MessageResponse struct {
	Message string `json:"message"`
}
