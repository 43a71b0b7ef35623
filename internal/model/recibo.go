package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Recibo is a generated proof-of-payment document. Append-only: a
// correction never edits a row, it generates a new one for the same pago.
// The unique index on Numero is the final arbiter against allocation
// races — the service-level retry loop is only a mitigation.
// Plantilla: "informal" | "profesional"
type Recibo struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero  string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	PagoID  uuid.UUID `gorm:"type:uuid;index;not null"`
	VentaID uuid.UUID `gorm:"type:uuid;index;not null"`

	Monto decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// PagosPrevios and Saldo are snapshots taken at generation time,
	// clamped at zero
	PagosPrevios decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Saldo        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Plantilla    string          `gorm:"type:varchar(20);not null;default:'informal'"`
	// PDFPath is relative to PDF_STORAGE_PATH
	PDFPath      *string   `gorm:"column:pdf_path"`
	EmitidoPorID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt    time.Time
}
