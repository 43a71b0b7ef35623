package dto

import "github.com/shopspring/decimal"

// ReporteFilter bounds the sales report period.
type ReporteFilter struct {
	Desde string `form:"desde"` // YYYY-MM-DD; empty = first day of current month
	Hasta string `form:"hasta"` // YYYY-MM-DD; empty = today
}

// ReporteVentasResponse is the dashboard summary for a period.
type ReporteVentasResponse struct {
	Desde          string          `json:"desde"`
	Hasta          string          `json:"hasta"`
	TotalVentas    int64           `json:"total_ventas"`
	ImporteTotal   decimal.Decimal `json:"importe_total"`
	TotalCobrado   decimal.Decimal `json:"total_cobrado"`
	TotalPendiente decimal.Decimal `json:"total_pendiente"`
}
