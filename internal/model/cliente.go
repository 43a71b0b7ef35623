package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a customer of the agency. Soft-deleted via Activo.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	Apellido  string    `gorm:"not null"`
	Email     *string   `gorm:"index"`
	Telefono  *string
	Documento *string `gorm:"type:varchar(30)"`
	Notas     *string
	// AgenteID is the user who owns the relationship
	AgenteID  *uuid.UUID `gorm:"type:uuid;index"`
	Activo    bool       `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
