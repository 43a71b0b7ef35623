package repository

import (
	"context"
	"time"

	"github.com/lgalindop/emociones-viajes-sub000/internal/dto"
	"github.com/lgalindop/emociones-viajes-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ResumenVentas is the aggregate row behind the dashboard report.
type ResumenVentas struct {
	TotalVentas    int64
	ImporteTotal   decimal.Decimal
	TotalCobrado   decimal.Decimal
	TotalPendiente decimal.Decimal
}

type VentaRepository interface {
	CreateTx(tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	NextFolio(ctx context.Context, tx *gorm.DB) (int, error)
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error
	UpdateMontosTx(tx *gorm.DB, id uuid.UUID, pagado, pendiente decimal.Decimal) error
	AgregarViajero(ctx context.Context, v *model.Viajero) error
	EliminarViajero(ctx context.Context, ventaID, viajeroID uuid.UUID) error
	ResumenPeriodo(ctx context.Context, desde, hasta time.Time) (*ResumenVentas, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) CreateTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Pagos", func(db *gorm.DB) *gorm.DB { return db.Order("numero_pago") }).
		Preload("Viajeros").
		First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Venta{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.AgenteID != "" {
		q = q.Where("agente_id = ?", filter.AgenteID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Cliente").
		Preload("Pagos", func(db *gorm.DB) *gorm.DB { return db.Order("numero_pago") }).
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error

	return ventas, total, err
}

func (r *ventaRepo) NextFolio(ctx context.Context, tx *gorm.DB) (int, error) {
	// Uses a PostgreSQL sequence for atomic folio generation
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('ventas_folio_seq')").Scan(&num).Error
	return num, err
}

func (r *ventaRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.Venta{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *ventaRepo) UpdateMontosTx(tx *gorm.DB, id uuid.UUID, pagado, pendiente decimal.Decimal) error {
	return tx.Model(&model.Venta{}).Where("id = ?", id).
		Updates(map[string]interface{}{"monto_pagado": pagado, "monto_pendiente": pendiente}).Error
}

func (r *ventaRepo) AgregarViajero(ctx context.Context, v *model.Viajero) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) EliminarViajero(ctx context.Context, ventaID, viajeroID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND venta_id = ?", viajeroID, ventaID).
		Delete(&model.Viajero{}).Error
}

func (r *ventaRepo) ResumenPeriodo(ctx context.Context, desde, hasta time.Time) (*ResumenVentas, error) {
	var res ResumenVentas
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Select(`COUNT(*) AS total_ventas,
			COALESCE(SUM(precio_total), 0) AS importe_total,
			COALESCE(SUM(monto_pagado), 0) AS total_cobrado,
			COALESCE(SUM(monto_pendiente), 0) AS total_pendiente`).
		Where("estado <> 'cancelada' AND created_at >= ? AND created_at < ?", desde, hasta.AddDate(0, 0, 1)).
		Scan(&res).Error
	return &res, err
}
