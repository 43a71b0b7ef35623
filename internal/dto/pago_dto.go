package dto

// MarcarPagadoRequest transitions a pago to "pagado".
type MarcarPagadoRequest struct {
	MetodoPago string  `json:"metodo_pago" validate:"required,oneof=efectivo transferencia tarjeta deposito"`
	FechaPago  *string `json:"fecha_pago"` // YYYY-MM-DD; empty = today
}
