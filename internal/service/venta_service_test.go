package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lgalindop/emociones-viajes-sub000/internal/dto"
	"github.com/lgalindop/emociones-viajes-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type conversionFixture struct {
	svc            VentaService
	ventaRepo      *stubVentaRepo
	cotizacionRepo *stubCotizacionRepo
	pagoRepo       *stubPagoRepo
	actividadRepo  *stubActividadRepo
	cotizacion     *model.Cotizacion
	opcion         *model.CotizacionOpcion
	agenteID       uuid.UUID
}

func newConversionFixture(t *testing.T) *conversionFixture {
	t.Helper()

	cotizacionRepo := newStubCotizacionRepo()
	ventaRepo := newStubVentaRepo()
	pagoRepo := newStubPagoRepo()
	actividadRepo := newStubActividadRepo()

	agenteID := uuid.New()
	cot := &model.Cotizacion{
		ID:        uuid.New(),
		Folio:     "COT-2026-00001",
		ClienteID: uuid.New(),
		AgenteID:  agenteID,
		Destino:   "Cancún",
		Etapa:     "negociacion",
	}
	opcion := &model.CotizacionOpcion{
		ID:           uuid.New(),
		CotizacionID: cot.ID,
		Nombre:       "Paquete todo incluido",
		Precio:       d("9000"),
		Moneda:       "MXN",
		Seleccionada: true,
	}
	cot.Opciones = []model.CotizacionOpcion{*opcion}
	require.NoError(t, cotizacionRepo.Create(context.Background(), cot))

	return &conversionFixture{
		svc:            NewVentaService(ventaRepo, cotizacionRepo, pagoRepo, actividadRepo),
		ventaRepo:      ventaRepo,
		cotizacionRepo: cotizacionRepo,
		pagoRepo:       pagoRepo,
		actividadRepo:  actividadRepo,
		cotizacion:     cot,
		opcion:         opcion,
		agenteID:       agenteID,
	}
}

func TestConvertirAVenta_CreaVentaYPlan(t *testing.T) {
	f := newConversionFixture(t)
	fechaViaje := time.Now().AddDate(0, 0, 90).Format("2006-01-02")

	resp, err := f.svc.ConvertirAVenta(context.Background(), f.cotizacion.ID, f.agenteID, dto.ConvertirVentaRequest{
		PrecioTotal: d("9000"),
		Anticipo:    d("3000"),
		NumPagos:    3,
		FechaViaje:  fechaViaje,
	})
	require.NoError(t, err)

	// Sale created with year-scoped folio
	assert.Equal(t, fmt.Sprintf("VTA-%d-00001", time.Now().Year()), resp.Folio)
	assert.Equal(t, "activa", resp.Estado)
	assert.True(t, resp.MontoPendiente.Equal(d("9000")))
	assert.True(t, resp.MontoPagado.IsZero())

	// Full schedule persisted
	ventaID := uuid.MustParse(resp.ID)
	pagos, err := f.pagoRepo.ListByVenta(context.Background(), ventaID)
	require.NoError(t, err)
	require.Len(t, pagos, 3)
	for i, p := range pagos {
		assert.Equal(t, i+1, p.NumeroPago)
		assert.Equal(t, "pendiente", p.Estado)
		assert.True(t, p.Monto.Equal(d("3000")))
	}

	// Quote confirmed at probability 90
	cot, err := f.cotizacionRepo.FindByID(context.Background(), f.cotizacion.ID)
	require.NoError(t, err)
	assert.Equal(t, "reserva_confirmada", cot.Etapa)
	assert.Equal(t, 90, cot.Probabilidad)

	// Conversion actividad appended
	acts, err := f.actividadRepo.ListByVenta(context.Background(), ventaID)
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, "conversion", acts[0].Tipo)
}

func TestConvertirAVenta_RequiereOpcionSeleccionada(t *testing.T) {
	f := newConversionFixture(t)
	f.cotizacion.Opciones[0].Seleccionada = false

	_, err := f.svc.ConvertirAVenta(context.Background(), f.cotizacion.ID, f.agenteID, dto.ConvertirVentaRequest{
		PrecioTotal: d("9000"),
		NumPagos:    3,
		FechaViaje:  "2026-12-01",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seleccionar una opción")
}

func TestConvertirAVenta_RechazaDobleConversion(t *testing.T) {
	f := newConversionFixture(t)
	f.cotizacion.Etapa = "reserva_confirmada"

	_, err := f.svc.ConvertirAVenta(context.Background(), f.cotizacion.ID, f.agenteID, dto.ConvertirVentaRequest{
		PrecioTotal: d("9000"),
		NumPagos:    3,
		FechaViaje:  "2026-12-01",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ya fue convertida")
}

func TestConvertirAVenta_ValidaMontosYFecha(t *testing.T) {
	f := newConversionFixture(t)

	_, err := f.svc.ConvertirAVenta(context.Background(), f.cotizacion.ID, f.agenteID, dto.ConvertirVentaRequest{
		PrecioTotal: decimal.Zero,
		NumPagos:    3,
		FechaViaje:  "2026-12-01",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "precio total")

	_, err = f.svc.ConvertirAVenta(context.Background(), f.cotizacion.ID, f.agenteID, dto.ConvertirVentaRequest{
		PrecioTotal: d("9000"),
		Anticipo:    d("10000"),
		NumPagos:    3,
		FechaViaje:  "2026-12-01",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anticipo")

	_, err = f.svc.ConvertirAVenta(context.Background(), f.cotizacion.ID, f.agenteID, dto.ConvertirVentaRequest{
		PrecioTotal: d("9000"),
		NumPagos:    3,
		FechaViaje:  "01/12/2026",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fecha de viaje")
}

func TestCancelarVenta_CancelaPagosPendientes(t *testing.T) {
	f := newConversionFixture(t)
	fechaViaje := time.Now().AddDate(0, 0, 60).Format("2006-01-02")

	resp, err := f.svc.ConvertirAVenta(context.Background(), f.cotizacion.ID, f.agenteID, dto.ConvertirVentaRequest{
		PrecioTotal: d("6000"),
		NumPagos:    3,
		FechaViaje:  fechaViaje,
	})
	require.NoError(t, err)
	ventaID := uuid.MustParse(resp.ID)

	// Attach the schedule to the venta aggregate as a DB preload would
	venta := f.ventaRepo.ventas[ventaID]
	pagos, _ := f.pagoRepo.ListByVenta(context.Background(), ventaID)
	venta.Pagos = pagos

	require.NoError(t, f.svc.CancelarVenta(context.Background(), ventaID, f.agenteID, "cliente desistió del viaje"))

	assert.Equal(t, "cancelada", venta.Estado)
	pagos, _ = f.pagoRepo.ListByVenta(context.Background(), ventaID)
	for _, p := range pagos {
		assert.Equal(t, "cancelado", p.Estado)
	}

	err = f.svc.CancelarVenta(context.Background(), ventaID, f.agenteID, "de nuevo")
	require.Error(t, err)
}

func TestMarcarPagado_ActualizaAcumulados(t *testing.T) {
	f := newConversionFixture(t)
	pagoSvc := NewPagoService(f.pagoRepo, f.ventaRepo, f.actividadRepo)
	fechaViaje := time.Now().AddDate(0, 0, 90).Format("2006-01-02")

	resp, err := f.svc.ConvertirAVenta(context.Background(), f.cotizacion.ID, f.agenteID, dto.ConvertirVentaRequest{
		PrecioTotal: d("9000"),
		Anticipo:    d("3000"),
		NumPagos:    3,
		FechaViaje:  fechaViaje,
	})
	require.NoError(t, err)
	ventaID := uuid.MustParse(resp.ID)

	venta := f.ventaRepo.ventas[ventaID]
	pagos, _ := f.pagoRepo.ListByVenta(context.Background(), ventaID)
	venta.Pagos = pagos

	pagoResp, err := pagoSvc.MarcarPagado(context.Background(), pagos[0].ID, f.agenteID, dto.MarcarPagadoRequest{MetodoPago: "transferencia"})
	require.NoError(t, err)
	assert.Equal(t, "pagado", pagoResp.Estado)
	require.NotNil(t, pagoResp.MetodoPago)
	assert.Equal(t, "transferencia", *pagoResp.MetodoPago)

	assert.True(t, venta.MontoPagado.Equal(d("3000")))
	assert.True(t, venta.MontoPendiente.Equal(d("6000")))
	assert.Equal(t, "activa", venta.Estado)

	// Paying the rest completes the sale
	venta.Pagos, _ = f.pagoRepo.ListByVenta(context.Background(), ventaID)
	_, err = pagoSvc.MarcarPagado(context.Background(), pagos[1].ID, f.agenteID, dto.MarcarPagadoRequest{MetodoPago: "efectivo"})
	require.NoError(t, err)
	venta.Pagos, _ = f.pagoRepo.ListByVenta(context.Background(), ventaID)
	_, err = pagoSvc.MarcarPagado(context.Background(), pagos[2].ID, f.agenteID, dto.MarcarPagadoRequest{MetodoPago: "efectivo"})
	require.NoError(t, err)

	assert.True(t, venta.MontoPendiente.IsZero())
	assert.Equal(t, "completada", venta.Estado)

	// Re-paying an installment is rejected
	_, err = pagoSvc.MarcarPagado(context.Background(), pagos[0].ID, f.agenteID, dto.MarcarPagadoRequest{MetodoPago: "efectivo"})
	require.Error(t, err)
}
