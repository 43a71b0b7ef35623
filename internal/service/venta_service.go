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

// probabilidadReserva is applied to the quote when it converts to a sale.
const probabilidadReserva = 90

type VentaService interface {
	ConvertirAVenta(ctx context.Context, cotizacionID, agenteID uuid.UUID, req dto.ConvertirVentaRequest) (*dto.VentaResponse, error)
	ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	CancelarVenta(ctx context.Context, id, usuarioID uuid.UUID, motivo string) error
	AgregarViajero(ctx context.Context, ventaID uuid.UUID, req dto.AgregarViajeroRequest) (*dto.ViajeroResponse, error)
	EliminarViajero(ctx context.Context, ventaID, viajeroID uuid.UUID) error
	ReporteVentas(ctx context.Context, filter dto.ReporteFilter) (*dto.ReporteVentasResponse, error)
}

type ventaService struct {
	repo           repository.VentaRepository
	cotizacionRepo repository.CotizacionRepository
	pagoRepo       repository.PagoRepository
	actividadRepo  repository.ActividadRepository
}

func NewVentaService(
	repo repository.VentaRepository,
	cotizacionRepo repository.CotizacionRepository,
	pagoRepo repository.PagoRepository,
	actividadRepo repository.ActividadRepository,
) VentaService {
	return &ventaService{
		repo:           repo,
		cotizacionRepo: cotizacionRepo,
		pagoRepo:       pagoRepo,
		actividadRepo:  actividadRepo,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── ConvertirAVenta ──────────────────────────────────────────────────────────
// Converts an accepted quote into a booked sale:
//   1. Validate a selected option, precio_total and fecha_viaje
//   2. BEGIN TX: allocate folio, create venta, bulk-insert the payment
//      schedule, move the quote to "reserva_confirmada" (probabilidad 90),
//      append the conversion actividad
//   3. COMMIT — all five writes land together or not at all

func (s *ventaService) ConvertirAVenta(ctx context.Context, cotizacionID, agenteID uuid.UUID, req dto.ConvertirVentaRequest) (*dto.VentaResponse, error) {
	cot, err := s.cotizacionRepo.FindByID(ctx, cotizacionID)
	if err != nil {
		return nil, errors.New("cotización no encontrada")
	}
	if cot.Etapa == "reserva_confirmada" {
		return nil, errors.New("la cotización ya fue convertida")
	}

	var opcion *model.CotizacionOpcion
	for i := range cot.Opciones {
		if cot.Opciones[i].Seleccionada {
			opcion = &cot.Opciones[i]
			break
		}
	}
	if opcion == nil {
		return nil, errors.New("Debe seleccionar una opción antes de convertir la cotización")
	}

	if !req.PrecioTotal.IsPositive() {
		return nil, errors.New("El precio total es obligatorio")
	}
	if req.Anticipo.GreaterThan(req.PrecioTotal) {
		return nil, errors.New("El anticipo no puede exceder el precio total")
	}
	fechaViaje, err := time.Parse("2006-01-02", req.FechaViaje)
	if err != nil {
		return nil, errors.New("La fecha de viaje es obligatoria (YYYY-MM-DD)")
	}

	hoy := inicioDeDia(time.Now())
	plan := GenerarPlanPagos(req.PrecioTotal, req.Anticipo, req.NumPagos, fechaViaje, hoy)
	if len(plan) == 0 {
		return nil, errors.New("El número de pagos debe ser al menos 1")
	}

	var venta model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		folioNum, err := s.repo.NextFolio(ctx, tx)
		if err != nil {
			return err
		}

		venta = model.Venta{
			Folio:          fmt.Sprintf("VTA-%d-%05d", hoy.Year(), folioNum),
			CotizacionID:   cot.ID,
			OpcionID:       opcion.ID,
			ClienteID:      cot.ClienteID,
			AgenteID:       agenteID,
			PrecioTotal:    req.PrecioTotal,
			Moneda:         opcion.Moneda,
			FechaViaje:     fechaViaje,
			MontoPagado:    decimal.Zero,
			MontoPendiente: req.PrecioTotal,
			Estado:         "activa",
		}
		if err := s.repo.CreateTx(tx, &venta); err != nil {
			return err
		}

		pagos := make([]model.Pago, 0, len(plan))
		for _, cuota := range plan {
			pagos = append(pagos, model.Pago{
				VentaID:         venta.ID,
				NumeroPago:      cuota.Numero,
				Monto:           cuota.Monto,
				FechaProgramada: cuota.Fecha,
				Descripcion:     cuota.Descripcion,
				Estado:          "pendiente",
			})
		}
		if err := s.pagoRepo.CreateBulkTx(tx, pagos); err != nil {
			return err
		}

		if err := s.cotizacionRepo.UpdateEtapaTx(tx, cot.ID, "reserva_confirmada", probabilidadReserva); err != nil {
			return err
		}

		act := &model.Actividad{
			Tipo:         "conversion",
			Descripcion:  fmt.Sprintf("Cotización %s convertida a venta %s por $%s", cot.Folio, venta.Folio, req.PrecioTotal.StringFixed(2)),
			CotizacionID: &cot.ID,
			VentaID:      &venta.ID,
			UsuarioID:    agenteID,
		}
		return s.actividadRepo.CreateTx(tx, act)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := ventaToResponse(&venta)
	for _, cuota := range plan {
		resp.Pagos = append(resp.Pagos, dto.PagoResponse{
			NumeroPago:      cuota.Numero,
			Monto:           cuota.Monto,
			FechaProgramada: cuota.Fecha.Format("2006-01-02"),
			Descripcion:     cuota.Descripcion,
			Estado:          "pendiente",
		})
	}
	return resp, nil
}

func (s *ventaService) ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("venta no encontrada")
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		items = append(items, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// CancelarVenta cancels the sale and its outstanding installments.
func (s *ventaService) CancelarVenta(ctx context.Context, id, usuarioID uuid.UUID, motivo string) error {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("venta no encontrada")
	}
	if venta.Estado == "cancelada" {
		return errors.New("la venta ya está cancelada")
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for i := range venta.Pagos {
			pago := &venta.Pagos[i]
			if pago.Estado != "pendiente" && pago.Estado != "vencido" {
				continue
			}
			pago.Estado = "cancelado"
			if err := s.pagoRepo.UpdateTx(tx, pago); err != nil {
				return err
			}
		}

		act := &model.Actividad{
			Tipo:        "nota",
			Descripcion: fmt.Sprintf("Venta %s cancelada — %s", venta.Folio, motivo),
			VentaID:     &venta.ID,
			UsuarioID:   usuarioID,
		}
		if err := s.actividadRepo.CreateTx(tx, act); err != nil {
			return err
		}

		return s.repo.UpdateEstado(ctx, id, "cancelada")
	})
}

func (s *ventaService) AgregarViajero(ctx context.Context, ventaID uuid.UUID, req dto.AgregarViajeroRequest) (*dto.ViajeroResponse, error) {
	if _, err := s.repo.FindByID(ctx, ventaID); err != nil {
		return nil, errors.New("venta no encontrada")
	}

	viajero := &model.Viajero{
		VentaID:  ventaID,
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
	}
	if req.ClienteID != nil {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, fmt.Errorf("cliente_id inválido: %w", err)
		}
		viajero.ClienteID = &cid
	}
	viajero.Documento = req.Documento
	if req.FechaNacimiento != nil {
		fn, err := time.Parse("2006-01-02", *req.FechaNacimiento)
		if err != nil {
			return nil, errors.New("fecha_nacimiento inválida (YYYY-MM-DD)")
		}
		viajero.FechaNacimiento = &fn
	}

	if err := s.repo.AgregarViajero(ctx, viajero); err != nil {
		return nil, err
	}
	return viajeroToResponse(viajero), nil
}

func (s *ventaService) EliminarViajero(ctx context.Context, ventaID, viajeroID uuid.UUID) error {
	return s.repo.EliminarViajero(ctx, ventaID, viajeroID)
}

// ReporteVentas aggregates totals for the dashboard. Default period: current
// month to date.
func (s *ventaService) ReporteVentas(ctx context.Context, filter dto.ReporteFilter) (*dto.ReporteVentasResponse, error) {
	hoy := inicioDeDia(time.Now())
	desde := time.Date(hoy.Year(), hoy.Month(), 1, 0, 0, 0, 0, hoy.Location())
	hasta := hoy

	var err error
	if filter.Desde != "" {
		if desde, err = time.Parse("2006-01-02", filter.Desde); err != nil {
			return nil, errors.New("fecha 'desde' inválida (YYYY-MM-DD)")
		}
	}
	if filter.Hasta != "" {
		if hasta, err = time.Parse("2006-01-02", filter.Hasta); err != nil {
			return nil, errors.New("fecha 'hasta' inválida (YYYY-MM-DD)")
		}
	}

	res, err := s.repo.ResumenPeriodo(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	return &dto.ReporteVentasResponse{
		Desde:          desde.Format("2006-01-02"),
		Hasta:          hasta.Format("2006-01-02"),
		TotalVentas:    res.TotalVentas,
		ImporteTotal:   res.ImporteTotal,
		TotalCobrado:   res.TotalCobrado,
		TotalPendiente: res.TotalPendiente,
	}, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	resp := &dto.VentaResponse{
		ID:             v.ID.String(),
		Folio:          v.Folio,
		CotizacionID:   v.CotizacionID.String(),
		OpcionID:       v.OpcionID.String(),
		ClienteID:      v.ClienteID.String(),
		AgenteID:       v.AgenteID.String(),
		PrecioTotal:    v.PrecioTotal,
		Moneda:         v.Moneda,
		FechaViaje:     v.FechaViaje.Format("2006-01-02"),
		MontoPagado:    v.MontoPagado,
		MontoPendiente: v.MontoPendiente,
		Estado:         v.Estado,
		CreatedAt:      v.CreatedAt.Format(time.RFC3339),
	}
	if v.Cliente != nil {
		resp.Cliente = v.Cliente.Nombre + " " + v.Cliente.Apellido
	}
	for i := range v.Pagos {
		resp.Pagos = append(resp.Pagos, *pagoToResponse(&v.Pagos[i]))
	}
	for i := range v.Viajeros {
		resp.Viajeros = append(resp.Viajeros, *viajeroToResponse(&v.Viajeros[i]))
	}
	return resp
}

func pagoToResponse(p *model.Pago) *dto.PagoResponse {
	resp := &dto.PagoResponse{
		ID:              p.ID.String(),
		NumeroPago:      p.NumeroPago,
		Monto:           p.Monto,
		FechaProgramada: p.FechaProgramada.Format("2006-01-02"),
		Descripcion:     p.Descripcion,
		Estado:          p.Estado,
		MetodoPago:      p.MetodoPago,
	}
	if p.FechaPago != nil {
		f := p.FechaPago.Format("2006-01-02")
		resp.FechaPago = &f
	}
	return resp
}

func viajeroToResponse(v *model.Viajero) *dto.ViajeroResponse {
	resp := &dto.ViajeroResponse{
		ID:        v.ID.String(),
		Nombre:    v.Nombre,
		Apellido:  v.Apellido,
		Documento: v.Documento,
	}
	if v.ClienteID != nil {
		s := v.ClienteID.String()
		resp.ClienteID = &s
	}
	if v.FechaNacimiento != nil {
		f := v.FechaNacimiento.Format("2006-01-02")
		resp.FechaNacimiento = &f
	}
	return resp
}
