package dto

// ─── Requests ────────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Nombre    string  `json:"nombre"    validate:"required"`
	Apellido  string  `json:"apellido"  validate:"required"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Telefono  *string `json:"telefono"`
	Documento *string `json:"documento"`
	Notas     *string `json:"notas"`
	AgenteID  *string `json:"agente_id" validate:"omitempty,uuid"`
}

type ActualizarClienteRequest struct {
	Nombre    string  `json:"nombre"`
	Apellido  string  `json:"apellido"`
	Email     *string `json:"email"    validate:"omitempty,email"`
	Telefono  *string `json:"telefono"`
	Documento *string `json:"documento"`
	Notas     *string `json:"notas"`
}

// ClienteFilter is bound from the query string of GET /v1/clientes.
type ClienteFilter struct {
	Busqueda string `form:"busqueda"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Apellido  string  `json:"apellido"`
	Email     *string `json:"email,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`
	Documento *string `json:"documento,omitempty"`
	Notas     *string `json:"notas,omitempty"`
	AgenteID  *string `json:"agente_id,omitempty"`
	Activo    bool    `json:"activo"`
	CreatedAt string  `json:"created_at"`
}

type ClienteListResponse struct {
	Data  []ClienteResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
