package repository

import (
	"context"
	"time"

	"github.com/lgalindop/emociones-viajes-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PagoRepository interface {
	CreateBulkTx(tx *gorm.DB, pagos []model.Pago) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pago, error)
	ListByVenta(ctx context.Context, ventaID uuid.UUID) ([]model.Pago, error)
	UpdateTx(tx *gorm.DB, p *model.Pago) error
	// ListVencidos returns pendiente pagos whose scheduled date is before hoy.
	ListVencidos(ctx context.Context, hoy time.Time, limit int) ([]model.Pago, error)
	MarcarVencido(ctx context.Context, id uuid.UUID) error
	DB() *gorm.DB
}

type pagoRepo struct{ db *gorm.DB }

func NewPagoRepository(db *gorm.DB) PagoRepository { return &pagoRepo{db: db} }

func (r *pagoRepo) DB() *gorm.DB { return r.db }

func (r *pagoRepo) CreateBulkTx(tx *gorm.DB, pagos []model.Pago) error {
	if len(pagos) == 0 {
		return nil
	}
	return tx.Create(&pagos).Error
}

func (r *pagoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pago, error) {
	var p model.Pago
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *pagoRepo) ListByVenta(ctx context.Context, ventaID uuid.UUID) ([]model.Pago, error) {
	var pagos []model.Pago
	err := r.db.WithContext(ctx).
		Where("venta_id = ?", ventaID).
		Order("numero_pago").
		Find(&pagos).Error
	return pagos, err
}

func (r *pagoRepo) UpdateTx(tx *gorm.DB, p *model.Pago) error {
	return tx.Save(p).Error
}

func (r *pagoRepo) ListVencidos(ctx context.Context, hoy time.Time, limit int) ([]model.Pago, error) {
	var pagos []model.Pago
	err := r.db.WithContext(ctx).
		Where("estado = 'pendiente' AND fecha_programada < ?", hoy).
		Order("fecha_programada").
		Limit(limit).
		Find(&pagos).Error
	return pagos, err
}

func (r *pagoRepo) MarcarVencido(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Pago{}).
		Where("id = ? AND estado = 'pendiente'", id).
		Update("estado", "vencido").Error
}
