package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type CrearCotizacionRequest struct {
	ClienteID string  `json:"cliente_id" validate:"required,uuid"`
	Destino   string  `json:"destino"    validate:"required"`
	Notas     *string `json:"notas"`
}

type CambiarEtapaRequest struct {
	Etapa string `json:"etapa" validate:"required,oneof=nueva cotizada negociacion reserva_confirmada perdida"`
	// Probabilidad overrides the stage default when present
	Probabilidad *int `json:"probabilidad" validate:"omitempty,min=0,max=100"`
}

type AgregarOpcionRequest struct {
	Nombre      string          `json:"nombre"      validate:"required"`
	Precio      decimal.Decimal `json:"precio"      validate:"required,gt=0"`
	Moneda      string          `json:"moneda"      validate:"omitempty,oneof=MXN USD EUR"`
	Descripcion *string         `json:"descripcion"`
}

// ConvertirVentaRequest carries the user-entered numbers for sale conversion.
type ConvertirVentaRequest struct {
	PrecioTotal decimal.Decimal `json:"precio_total" validate:"required"`
	Anticipo    decimal.Decimal `json:"anticipo"     validate:"min=0"`
	NumPagos    int             `json:"num_pagos"    validate:"required,min=1"`
	FechaViaje  string          `json:"fecha_viaje"  validate:"required"` // YYYY-MM-DD
}

// CotizacionFilter is bound from the query string of GET /v1/cotizaciones.
type CotizacionFilter struct {
	Etapa    string `form:"etapa"`
	AgenteID string `form:"agente_id" validate:"omitempty,uuid"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type OpcionResponse struct {
	ID           string          `json:"id"`
	Nombre       string          `json:"nombre"`
	Precio       decimal.Decimal `json:"precio"`
	Moneda       string          `json:"moneda"`
	Descripcion  *string         `json:"descripcion,omitempty"`
	Seleccionada bool            `json:"seleccionada"`
}

type CotizacionResponse struct {
	ID           string           `json:"id"`
	Folio        string           `json:"folio"`
	ClienteID    string           `json:"cliente_id"`
	Cliente      string           `json:"cliente,omitempty"`
	AgenteID     string           `json:"agente_id"`
	Destino      string           `json:"destino"`
	Etapa        string           `json:"etapa"`
	Probabilidad int              `json:"probabilidad"`
	Notas        *string          `json:"notas,omitempty"`
	Opciones     []OpcionResponse `json:"opciones"`
	CreatedAt    string           `json:"created_at"`
}

type CotizacionListResponse struct {
	Data  []CotizacionResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
