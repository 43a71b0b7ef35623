package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/lgalindop/emociones-viajes-sub000/internal/dto"
	"github.com/lgalindop/emociones-viajes-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReciboRepository interface {
	Create(ctx context.Context, r *model.Recibo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Recibo, error)
	List(ctx context.Context, filter dto.ReciboFilter) ([]model.Recibo, int64, error)
	// MaxNumero returns the highest receipt number for the year, or "" when
	// none exist yet.
	MaxNumero(ctx context.Context, year int) (string, error)
	Exists(ctx context.Context, numero string) (bool, error)
	Update(ctx context.Context, r *model.Recibo) error
}

type reciboRepo struct{ db *gorm.DB }

func NewReciboRepository(db *gorm.DB) ReciboRepository { return &reciboRepo{db: db} }

func (r *reciboRepo) Create(ctx context.Context, rec *model.Recibo) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *reciboRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Recibo, error) {
	var rec model.Recibo
	err := r.db.WithContext(ctx).First(&rec, id).Error
	return &rec, err
}

func (r *reciboRepo) List(ctx context.Context, filter dto.ReciboFilter) ([]model.Recibo, int64, error) {
	var recibos []model.Recibo
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Recibo{})

	if filter.VentaID != "" {
		q = q.Where("venta_id = ?", filter.VentaID)
	}
	if filter.Anio != 0 {
		q = q.Where("numero LIKE ?", fmt.Sprintf("REC-%d-%%", filter.Anio))
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("numero DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&recibos).Error

	return recibos, total, err
}

// MaxNumero sorts lexicographically descending, which is safe because the
// numeric suffix is fixed-width zero-padded.
func (r *reciboRepo) MaxNumero(ctx context.Context, year int) (string, error) {
	var rec model.Recibo
	err := r.db.WithContext(ctx).
		Where("numero LIKE ?", fmt.Sprintf("REC-%d-%%", year)).
		Order("numero DESC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return rec.Numero, nil
}

func (r *reciboRepo) Exists(ctx context.Context, numero string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Recibo{}).
		Where("numero = ?", numero).
		Count(&count).Error
	return count > 0, err
}

func (r *reciboRepo) Update(ctx context.Context, rec *model.Recibo) error {
	return r.db.WithContext(ctx).Save(rec).Error
}
