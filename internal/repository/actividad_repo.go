package repository

import (
	"context"

	"github.com/lgalindop/emociones-viajes-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActividadRepository interface {
	Create(ctx context.Context, a *model.Actividad) error
	CreateTx(tx *gorm.DB, a *model.Actividad) error
	ListByCotizacion(ctx context.Context, cotizacionID uuid.UUID) ([]model.Actividad, error)
	ListByVenta(ctx context.Context, ventaID uuid.UUID) ([]model.Actividad, error)
}

type actividadRepo struct{ db *gorm.DB }

func NewActividadRepository(db *gorm.DB) ActividadRepository { return &actividadRepo{db: db} }

func (r *actividadRepo) Create(ctx context.Context, a *model.Actividad) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *actividadRepo) CreateTx(tx *gorm.DB, a *model.Actividad) error {
	return tx.Create(a).Error
}

func (r *actividadRepo) ListByCotizacion(ctx context.Context, cotizacionID uuid.UUID) ([]model.Actividad, error) {
	var acts []model.Actividad
	err := r.db.WithContext(ctx).
		Where("cotizacion_id = ?", cotizacionID).
		Order("created_at DESC").
		Find(&acts).Error
	return acts, err
}

func (r *actividadRepo) ListByVenta(ctx context.Context, ventaID uuid.UUID) ([]model.Actividad, error) {
	var acts []model.Actividad
	err := r.db.WithContext(ctx).
		Where("venta_id = ?", ventaID).
		Order("created_at DESC").
		Find(&acts).Error
	return acts, err
}
