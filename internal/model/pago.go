package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pago is one scheduled installment within a sale. Rows are created in
// bulk at conversion time; NumeroPago is contiguous 1..N per venta.
// Estado: "pendiente" | "pagado" | "vencido" | "cancelado"
type Pago struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID         uuid.UUID       `gorm:"type:uuid;index;not null"`
	NumeroPago      int             `gorm:"not null"`
	Monto           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FechaProgramada time.Time       `gorm:"not null;index"`
	Descripcion     string          `gorm:"not null"`
	Estado          string          `gorm:"type:varchar(20);not null;default:'pendiente'"`
	FechaPago       *time.Time
	// MetodoPago: "efectivo" | "transferencia" | "tarjeta" | "deposito"
	MetodoPago *string `gorm:"type:varchar(20)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
