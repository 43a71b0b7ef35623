package dto

// CrearNotaRequest appends a free-form note to a quote or sale. Exactly one
// of cotizacion_id / venta_id must be present.
type CrearNotaRequest struct {
	Descripcion  string  `json:"descripcion"   validate:"required"`
	CotizacionID *string `json:"cotizacion_id" validate:"omitempty,uuid"`
	VentaID      *string `json:"venta_id"      validate:"omitempty,uuid"`
}

type ActividadResponse struct {
	ID           string  `json:"id"`
	Tipo         string  `json:"tipo"`
	Descripcion  string  `json:"descripcion"`
	CotizacionID *string `json:"cotizacion_id,omitempty"`
	VentaID      *string `json:"venta_id,omitempty"`
	UsuarioID    string  `json:"usuario_id"`
	CreatedAt    string  `json:"created_at"`
}
