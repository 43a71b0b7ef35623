package repository

import (
	"context"

	"github.com/lgalindop/emociones-viajes-sub000/internal/dto"
	"github.com/lgalindop/emociones-viajes-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CotizacionRepository interface {
	Create(ctx context.Context, c *model.Cotizacion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error)
	List(ctx context.Context, filter dto.CotizacionFilter) ([]model.Cotizacion, int64, error)
	NextFolio(ctx context.Context) (int, error)
	UpdateEtapaTx(tx *gorm.DB, id uuid.UUID, etapa string, probabilidad int) error
	AgregarOpcion(ctx context.Context, o *model.CotizacionOpcion) error
	FindOpcion(ctx context.Context, id uuid.UUID) (*model.CotizacionOpcion, error)
	SeleccionarOpcion(ctx context.Context, cotizacionID, opcionID uuid.UUID) error
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type cotizacionRepo struct{ db *gorm.DB }

func NewCotizacionRepository(db *gorm.DB) CotizacionRepository { return &cotizacionRepo{db: db} }

func (r *cotizacionRepo) DB() *gorm.DB { return r.db }

func (r *cotizacionRepo) Create(ctx context.Context, c *model.Cotizacion) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cotizacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error) {
	var c model.Cotizacion
	err := r.db.WithContext(ctx).Preload("Cliente").Preload("Opciones").First(&c, id).Error
	return &c, err
}

func (r *cotizacionRepo) List(ctx context.Context, filter dto.CotizacionFilter) ([]model.Cotizacion, int64, error) {
	var cotizaciones []model.Cotizacion
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Cotizacion{})

	if filter.Etapa != "" && filter.Etapa != "all" {
		q = q.Where("etapa = ?", filter.Etapa)
	}
	if filter.AgenteID != "" {
		q = q.Where("agente_id = ?", filter.AgenteID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Cliente").Preload("Opciones").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&cotizaciones).Error

	return cotizaciones, total, err
}

func (r *cotizacionRepo) NextFolio(ctx context.Context) (int, error) {
	// Uses a PostgreSQL sequence for atomic folio generation
	var num int
	err := r.db.WithContext(ctx).Raw("SELECT nextval('cotizaciones_folio_seq')").Scan(&num).Error
	return num, err
}

func (r *cotizacionRepo) UpdateEtapaTx(tx *gorm.DB, id uuid.UUID, etapa string, probabilidad int) error {
	return tx.Model(&model.Cotizacion{}).Where("id = ?", id).
		Updates(map[string]interface{}{"etapa": etapa, "probabilidad": probabilidad}).Error
}

func (r *cotizacionRepo) AgregarOpcion(ctx context.Context, o *model.CotizacionOpcion) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *cotizacionRepo) FindOpcion(ctx context.Context, id uuid.UUID) (*model.CotizacionOpcion, error) {
	var o model.CotizacionOpcion
	err := r.db.WithContext(ctx).First(&o, id).Error
	return &o, err
}

// SeleccionarOpcion marks one option as chosen and clears the flag on its
// siblings, so at most one option per quote is ever selected.
func (r *cotizacionRepo) SeleccionarOpcion(ctx context.Context, cotizacionID, opcionID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.CotizacionOpcion{}).
			Where("cotizacion_id = ?", cotizacionID).
			Update("seleccionada", false).Error; err != nil {
			return err
		}
		return tx.Model(&model.CotizacionOpcion{}).
			Where("id = ? AND cotizacion_id = ?", opcionID, cotizacionID).
			Update("seleccionada", true).Error
	})
}
