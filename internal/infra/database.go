package infra

import (
	"fmt"

	"github.com/lgalindop/emociones-viajes-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx. Schema setup is a
// separate step — callers run RunMigrations once at startup.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Map driver errors onto gorm.Err* sentinels — the receipt allocator
		// keys its retry on gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}

// RunMigrations applies the schema. Also used by integration tests against a
// throwaway database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Cliente{},
		&model.Cotizacion{},
		&model.CotizacionOpcion{},
		&model.Venta{},
		&model.Pago{},
		&model.Recibo{},
		&model.Actividad{},
		&model.Viajero{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express:
// folio sequences and the partial index backing the overdue-payment cron.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`CREATE SEQUENCE IF NOT EXISTS cotizaciones_folio_seq`,
		`CREATE SEQUENCE IF NOT EXISTS ventas_folio_seq`,
		// partial index for the overdue cron query
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_pagos_pendientes_fecha') THEN
		    CREATE INDEX idx_pagos_pendientes_fecha
		        ON pagos (fecha_programada)
		        WHERE estado = 'pendiente';
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
