package dto

import "github.com/shopspring/decimal"

// ─── Filter / list ───────────────────────────────────────────────────────────

// VentaFilter is bound from the query string of GET /v1/ventas.
type VentaFilter struct {
	Estado   string `form:"estado,default=activa"` // activa | completada | cancelada | all
	AgenteID string `form:"agente_id" validate:"omitempty,uuid"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Requests ────────────────────────────────────────────────────────────────

type CancelarVentaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

type AgregarViajeroRequest struct {
	ClienteID       *string `json:"cliente_id" validate:"omitempty,uuid"`
	Nombre          string  `json:"nombre"     validate:"required"`
	Apellido        string  `json:"apellido"   validate:"required"`
	Documento       *string `json:"documento"`
	FechaNacimiento *string `json:"fecha_nacimiento"` // YYYY-MM-DD
}

// ─── Responses ───────────────────────────────────────────────────────────────

type PagoResponse struct {
	ID              string          `json:"id"`
	NumeroPago      int             `json:"numero_pago"`
	Monto           decimal.Decimal `json:"monto"`
	FechaProgramada string          `json:"fecha_programada"`
	Descripcion     string          `json:"descripcion"`
	Estado          string          `json:"estado"`
	FechaPago       *string         `json:"fecha_pago,omitempty"`
	MetodoPago      *string         `json:"metodo_pago,omitempty"`
}

type ViajeroResponse struct {
	ID              string  `json:"id"`
	ClienteID       *string `json:"cliente_id,omitempty"`
	Nombre          string  `json:"nombre"`
	Apellido        string  `json:"apellido"`
	Documento       *string `json:"documento,omitempty"`
	FechaNacimiento *string `json:"fecha_nacimiento,omitempty"`
}

type VentaResponse struct {
	ID             string            `json:"id"`
	Folio          string            `json:"folio"`
	CotizacionID   string            `json:"cotizacion_id"`
	OpcionID       string            `json:"opcion_id"`
	ClienteID      string            `json:"cliente_id"`
	Cliente        string            `json:"cliente,omitempty"`
	AgenteID       string            `json:"agente_id"`
	PrecioTotal    decimal.Decimal   `json:"precio_total"`
	Moneda         string            `json:"moneda"`
	FechaViaje     string            `json:"fecha_viaje"`
	MontoPagado    decimal.Decimal   `json:"monto_pagado"`
	MontoPendiente decimal.Decimal   `json:"monto_pendiente"`
	Estado         string            `json:"estado"`
	Pagos          []PagoResponse    `json:"pagos,omitempty"`
	Viajeros       []ViajeroResponse `json:"viajeros,omitempty"`
	CreatedAt      string            `json:"created_at"`
}
