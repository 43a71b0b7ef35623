package model

import (
	"time"

	"github.com/google/uuid"
)

// Viajero is a traveler attached to a sale. It may reference a registered
// Cliente or be a one-off companion.
type Viajero struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID         uuid.UUID  `gorm:"type:uuid;index;not null"`
	ClienteID       *uuid.UUID `gorm:"type:uuid"`
	Nombre          string     `gorm:"not null"`
	Apellido        string     `gorm:"not null"`
	Documento       *string    `gorm:"type:varchar(30)"`
	FechaNacimiento *time.Time
	CreatedAt       time.Time
}
