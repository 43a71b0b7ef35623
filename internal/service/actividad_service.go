package service

import (
	"context"
	"errors"
	"time"

	"github.com/lgalindop/emociones-viajes-sub000/internal/dto"
	"github.com/lgalindop/emociones-viajes-sub000/internal/model"
	"github.com/lgalindop/emociones-viajes-sub000/internal/repository"

	"github.com/google/uuid"
)

type ActividadService interface {
	CrearNota(ctx context.Context, usuarioID uuid.UUID, req dto.CrearNotaRequest) (*dto.ActividadResponse, error)
	ListPorCotizacion(ctx context.Context, cotizacionID uuid.UUID) ([]dto.ActividadResponse, error)
	ListPorVenta(ctx context.Context, ventaID uuid.UUID) ([]dto.ActividadResponse, error)
}

type actividadService struct {
	repo repository.ActividadRepository
}

func NewActividadService(repo repository.ActividadRepository) ActividadService {
	return &actividadService{repo: repo}
}

func (s *actividadService) CrearNota(ctx context.Context, usuarioID uuid.UUID, req dto.CrearNotaRequest) (*dto.ActividadResponse, error) {
	if (req.CotizacionID == nil) == (req.VentaID == nil) {
		return nil, errors.New("la nota debe referir exactamente una cotización o una venta")
	}

	act := &model.Actividad{
		Tipo:        "nota",
		Descripcion: req.Descripcion,
		UsuarioID:   usuarioID,
	}
	if req.CotizacionID != nil {
		id, err := uuid.Parse(*req.CotizacionID)
		if err != nil {
			return nil, errors.New("cotizacion_id inválido")
		}
		act.CotizacionID = &id
	}
	if req.VentaID != nil {
		id, err := uuid.Parse(*req.VentaID)
		if err != nil {
			return nil, errors.New("venta_id inválido")
		}
		act.VentaID = &id
	}

	if err := s.repo.Create(ctx, act); err != nil {
		return nil, err
	}
	return actividadToResponse(act), nil
}

func (s *actividadService) ListPorCotizacion(ctx context.Context, cotizacionID uuid.UUID) ([]dto.ActividadResponse, error) {
	acts, err := s.repo.ListByCotizacion(ctx, cotizacionID)
	if err != nil {
		return nil, err
	}
	return actividadesToResponse(acts), nil
}

func (s *actividadService) ListPorVenta(ctx context.Context, ventaID uuid.UUID) ([]dto.ActividadResponse, error) {
	acts, err := s.repo.ListByVenta(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	return actividadesToResponse(acts), nil
}

func actividadesToResponse(acts []model.Actividad) []dto.ActividadResponse {
	out := make([]dto.ActividadResponse, 0, len(acts))
	for i := range acts {
		out = append(out, *actividadToResponse(&acts[i]))
	}
	return out
}

func actividadToResponse(a *model.Actividad) *dto.ActividadResponse {
	resp := &dto.ActividadResponse{
		ID:          a.ID.String(),
		Tipo:        a.Tipo,
		Descripcion: a.Descripcion,
		UsuarioID:   a.UsuarioID.String(),
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
	}
	if a.CotizacionID != nil {
		s := a.CotizacionID.String()
		resp.CotizacionID = &s
	}
	if a.VentaID != nil {
		s := a.VentaID.String()
		resp.VentaID = &s
	}
	return resp
}
