package model

import (
	"time"

	"github.com/google/uuid"
)

// Actividad is an immutable audit/activity row attached to a quote or
// sale. Entries are NEVER modified or deleted.
// Tipo: "nota" | "cambio_etapa" | "conversion" | "pago_recibido" | "recibo_emitido"
type Actividad struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tipo         string     `gorm:"type:varchar(30);not null"`
	Descripcion  string     `gorm:"not null"`
	CotizacionID *uuid.UUID `gorm:"type:uuid;index"`
	VentaID      *uuid.UUID `gorm:"type:uuid;index"`
	UsuarioID    uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt    time.Time
}
