package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cotizacion is a trip quote moving through the sales pipeline.
// Etapa: "nueva" | "cotizada" | "negociacion" | "reserva_confirmada" | "perdida"
type Cotizacion struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Folio     string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	ClienteID uuid.UUID `gorm:"type:uuid;index;not null"`
	AgenteID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Destino   string    `gorm:"not null"`
	Etapa     string    `gorm:"type:varchar(30);not null;default:'nueva'"`
	// Probabilidad is the win likelihood 0-100 shown on the pipeline board
	Probabilidad int `gorm:"not null;default:10"`
	Notas        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Cliente  *Cliente           `gorm:"foreignKey:ClienteID"`
	Opciones []CotizacionOpcion `gorm:"foreignKey:CotizacionID"`
}

// CotizacionOpcion is one priced package proposed inside a quote.
// Exactly one option may be Seleccionada before converting to a sale.
type CotizacionOpcion struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CotizacionID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Nombre       string          `gorm:"not null"`
	Precio       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Moneda       string          `gorm:"type:varchar(3);not null;default:'MXN'"`
	Descripcion  *string
	Seleccionada bool `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
