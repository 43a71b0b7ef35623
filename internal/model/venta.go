package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta is the booked form of an accepted quote.
// Estado: "activa" | "completada" | "cancelada"
// Core fields are immutable after conversion; MontoPagado/MontoPendiente
// are running aggregates recomputed whenever a pago changes state.
type Venta struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Folio        string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	CotizacionID uuid.UUID `gorm:"type:uuid;index;not null"`
	OpcionID     uuid.UUID `gorm:"type:uuid;not null"`
	ClienteID    uuid.UUID `gorm:"type:uuid;index;not null"`
	AgenteID     uuid.UUID `gorm:"type:uuid;index;not null"`

	PrecioTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Moneda         string          `gorm:"type:varchar(3);not null;default:'MXN'"`
	FechaViaje     time.Time       `gorm:"not null"`
	MontoPagado    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MontoPendiente decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Estado         string          `gorm:"type:varchar(20);not null;default:'activa'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Cliente  *Cliente  `gorm:"foreignKey:ClienteID"`
	Pagos    []Pago    `gorm:"foreignKey:VentaID"`
	Viajeros []Viajero `gorm:"foreignKey:VentaID"`
}
