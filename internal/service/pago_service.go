package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lgalindop/emociones-viajes-sub000/internal/dto"
	"github.com/lgalindop/emociones-viajes-sub000/internal/model"
	"github.com/lgalindop/emociones-viajes-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PagoService interface {
	ListByVenta(ctx context.Context, ventaID uuid.UUID) ([]dto.PagoResponse, error)
	MarcarPagado(ctx context.Context, pagoID, usuarioID uuid.UUID, req dto.MarcarPagadoRequest) (*dto.PagoResponse, error)
}

type pagoService struct {
	repo          repository.PagoRepository
	ventaRepo     repository.VentaRepository
	actividadRepo repository.ActividadRepository
}

func NewPagoService(
	repo repository.PagoRepository,
	ventaRepo repository.VentaRepository,
	actividadRepo repository.ActividadRepository,
) PagoService {
	return &pagoService{repo: repo, ventaRepo: ventaRepo, actividadRepo: actividadRepo}
}

func (s *pagoService) ListByVenta(ctx context.Context, ventaID uuid.UUID) ([]dto.PagoResponse, error) {
	pagos, err := s.repo.ListByVenta(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PagoResponse, 0, len(pagos))
	for i := range pagos {
		resp = append(resp, *pagoToResponse(&pagos[i]))
	}
	return resp, nil
}

// MarcarPagado transitions a pago to "pagado" and recomputes the sale's
// running aggregates inside the same transaction. The sale flips to
// "completada" once nothing is left pending.
func (s *pagoService) MarcarPagado(ctx context.Context, pagoID, usuarioID uuid.UUID, req dto.MarcarPagadoRequest) (*dto.PagoResponse, error) {
	pago, err := s.repo.FindByID(ctx, pagoID)
	if err != nil {
		return nil, errors.New("pago no encontrado")
	}
	if pago.Estado == "pagado" {
		return nil, errors.New("el pago ya está registrado como pagado")
	}
	if pago.Estado == "cancelado" {
		return nil, errors.New("el pago está cancelado")
	}

	venta, err := s.ventaRepo.FindByID(ctx, pago.VentaID)
	if err != nil {
		return nil, errors.New("venta no encontrada")
	}

	fechaPago := time.Now()
	if req.FechaPago != nil {
		if fechaPago, err = time.Parse("2006-01-02", *req.FechaPago); err != nil {
			return nil, errors.New("fecha_pago inválida (YYYY-MM-DD)")
		}
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		pago.Estado = "pagado"
		pago.FechaPago = &fechaPago
		pago.MetodoPago = &req.MetodoPago
		if err := s.repo.UpdateTx(tx, pago); err != nil {
			return err
		}

		// Recompute aggregates from the schedule, counting this pago
		pagado := decimal.Zero
		for i := range venta.Pagos {
			p := &venta.Pagos[i]
			if p.ID == pago.ID || p.Estado == "pagado" {
				pagado = pagado.Add(p.Monto)
			}
		}
		pendiente := venta.PrecioTotal.Sub(pagado)
		if pendiente.IsNegative() {
			pendiente = decimal.Zero
		}
		if err := s.ventaRepo.UpdateMontosTx(tx, venta.ID, pagado, pendiente); err != nil {
			return err
		}
		if pendiente.IsZero() && venta.Estado == "activa" {
			if err := s.ventaRepo.UpdateEstado(ctx, venta.ID, "completada"); err != nil {
				return err
			}
		}

		act := &model.Actividad{
			Tipo:        "pago_recibido",
			Descripcion: fmt.Sprintf("Pago %d de la venta %s recibido por $%s (%s)", pago.NumeroPago, venta.Folio, pago.Monto.StringFixed(2), req.MetodoPago),
			VentaID:     &venta.ID,
			UsuarioID:   usuarioID,
		}
		return s.actividadRepo.CreateTx(tx, act)
	})
	if txErr != nil {
		return nil, txErr
	}

	return pagoToResponse(pago), nil
}
