package dto

import "github.com/shopspring/decimal"

// GenerarReciboRequest triggers receipt generation for a pago.
type GenerarReciboRequest struct {
	Plantilla string `json:"plantilla" validate:"omitempty,oneof=informal profesional"`
	// Email overrides the cliente's stored address for delivery
	Email *string `json:"email" validate:"omitempty,email"`
}

type ReciboResponse struct {
	ID           string          `json:"id"`
	Numero       string          `json:"numero"`
	PagoID       string          `json:"pago_id"`
	VentaID      string          `json:"venta_id"`
	Monto        decimal.Decimal `json:"monto"`
	PagosPrevios decimal.Decimal `json:"pagos_previos"`
	Saldo        decimal.Decimal `json:"saldo"`
	Plantilla    string          `json:"plantilla"`
	PDFUrl       *string         `json:"pdf_url,omitempty"`
	CreatedAt    string          `json:"created_at"`
}

// ReciboFilter is bound from the query string of GET /v1/recibos.
type ReciboFilter struct {
	VentaID string `form:"venta_id" validate:"omitempty,uuid"`
	Anio    int    `form:"anio"`
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ReciboListResponse struct {
	Data  []ReciboResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
