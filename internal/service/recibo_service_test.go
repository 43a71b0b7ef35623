package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/lgalindop/emociones-viajes-sub000/internal/dto"
	"github.com/lgalindop/emociones-viajes-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var reNumeroRecibo = regexp.MustCompile(`^REC-\d{4}-\d{5}$`)

func newReciboFixture(t *testing.T) (ReciboService, *stubReciboRepo, *conversionFixture) {
	t.Helper()
	f := newConversionFixture(t)
	reciboRepo := newStubReciboRepo()
	svc := NewReciboService(reciboRepo, f.pagoRepo, f.ventaRepo, f.cotizacionRepo, f.actividadRepo, nil, t.TempDir(), "Agencia de Prueba")
	return svc, reciboRepo, f
}

func TestGenerarNumero_PrimerDelAnio(t *testing.T) {
	svc, _, _ := newReciboFixture(t)

	numero, err := svc.GenerarNumero(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, "REC-2026-00001", numero)
	assert.Regexp(t, reNumeroRecibo, numero)
}

func TestGenerarNumero_IncrementaDesdeElMaximo(t *testing.T) {
	svc, repo, _ := newReciboFixture(t)
	seed := &model.Recibo{Numero: "REC-2026-00007", PagoID: uuid.New(), VentaID: uuid.New()}
	require.NoError(t, repo.Create(context.Background(), seed))

	numero, err := svc.GenerarNumero(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, "REC-2026-00008", numero)
}

func TestGenerarNumero_AnioSeparado(t *testing.T) {
	svc, repo, _ := newReciboFixture(t)
	seed := &model.Recibo{Numero: "REC-2025-00042", PagoID: uuid.New(), VentaID: uuid.New()}
	require.NoError(t, repo.Create(context.Background(), seed))

	// The 2025 sequence does not leak into 2026
	numero, err := svc.GenerarNumero(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, "REC-2026-00001", numero)
}

func TestGenerarNumero_ReintentaEnColision(t *testing.T) {
	svc, repo, _ := newReciboFixture(t)
	repo.existsFailures = 2 // first two candidates appear taken

	numero, err := svc.GenerarNumero(context.Background(), 2026)
	require.NoError(t, err)
	assert.Regexp(t, reNumeroRecibo, numero)
}

func TestGenerarNumero_AgotaIntentos(t *testing.T) {
	svc, repo, _ := newReciboFixture(t)
	repo.existsFailures = 5 // every attempt collides

	_, err := svc.GenerarNumero(context.Background(), 2026)
	require.ErrorIs(t, err, ErrNumeroAgotado)
}

func TestGenerarNumero_ConcurrentesDistintos(t *testing.T) {
	svc, repo, _ := newReciboFixture(t)

	const n = 10
	numeros := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			numero, err := svc.GenerarNumero(context.Background(), 2026)
			if err != nil {
				return
			}
			// Claim the number, as GenerarRecibo would
			rec := &model.Recibo{Numero: numero, PagoID: uuid.New(), VentaID: uuid.New()}
			if repo.Create(context.Background(), rec) == nil {
				numeros <- numero
			}
		}()
	}
	wg.Wait()
	close(numeros)

	seen := make(map[string]bool)
	for numero := range numeros {
		assert.False(t, seen[numero], "número duplicado: %s", numero)
		seen[numero] = true
	}
	assert.NotEmpty(t, seen)
}

func TestGenerarRecibo_FlujoCompleto(t *testing.T) {
	svc, reciboRepo, f := newReciboFixture(t)
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

	// Pay the first two installments
	pagoSvc := NewPagoService(f.pagoRepo, f.ventaRepo, f.actividadRepo)
	venta.Pagos = pagos
	_, err = pagoSvc.MarcarPagado(context.Background(), pagos[0].ID, f.agenteID, dto.MarcarPagadoRequest{MetodoPago: "transferencia"})
	require.NoError(t, err)
	venta.Pagos, _ = f.pagoRepo.ListByVenta(context.Background(), ventaID)
	_, err = pagoSvc.MarcarPagado(context.Background(), pagos[1].ID, f.agenteID, dto.MarcarPagadoRequest{MetodoPago: "efectivo"})
	require.NoError(t, err)
	venta.Pagos, _ = f.pagoRepo.ListByVenta(context.Background(), ventaID)

	// Receipt for the second payment: 3000 previous, 3000 outstanding
	rec, err := svc.GenerarRecibo(context.Background(), pagos[1].ID, f.agenteID, dto.GenerarReciboRequest{Plantilla: "profesional"})
	require.NoError(t, err)

	assert.Regexp(t, reNumeroRecibo, rec.Numero)
	assert.Equal(t, "profesional", rec.Plantilla)
	assert.True(t, rec.Monto.Equal(d("3000")))
	assert.True(t, rec.PagosPrevios.Equal(d("3000")))
	assert.True(t, rec.Saldo.Equal(d("3000")))

	// PDF written to storage
	stored, err := reciboRepo.FindByID(context.Background(), uuid.MustParse(rec.ID))
	require.NoError(t, err)
	require.NotNil(t, stored.PDFPath)
	info, err := os.Stat(*stored.PDFPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.Equal(t, fmt.Sprintf("recibo_%s.pdf", rec.Numero), filepath.Base(*stored.PDFPath))

	// Append-only: re-issuing the same pago creates a second row with a new
	// number
	rec2, err := svc.GenerarRecibo(context.Background(), pagos[1].ID, f.agenteID, dto.GenerarReciboRequest{})
	require.NoError(t, err)
	assert.NotEqual(t, rec.Numero, rec2.Numero)
	assert.Equal(t, "informal", rec2.Plantilla)
}

// pagoPagadoFixture converts the fixture quote and marks the first
// installment as paid, ready for receipt generation.
func pagoPagadoFixture(t *testing.T, f *conversionFixture) uuid.UUID {
	t.Helper()
	fechaViaje := time.Now().AddDate(0, 0, 60).Format("2006-01-02")

	resp, err := f.svc.ConvertirAVenta(context.Background(), f.cotizacion.ID, f.agenteID, dto.ConvertirVentaRequest{
		PrecioTotal: d("6000"),
		NumPagos:    2,
		FechaViaje:  fechaViaje,
	})
	require.NoError(t, err)
	ventaID := uuid.MustParse(resp.ID)

	pagos, _ := f.pagoRepo.ListByVenta(context.Background(), ventaID)
	venta := f.ventaRepo.ventas[ventaID]
	venta.Pagos = pagos

	pagoSvc := NewPagoService(f.pagoRepo, f.ventaRepo, f.actividadRepo)
	_, err = pagoSvc.MarcarPagado(context.Background(), pagos[0].ID, f.agenteID, dto.MarcarPagadoRequest{MetodoPago: "efectivo"})
	require.NoError(t, err)
	venta.Pagos, _ = f.pagoRepo.ListByVenta(context.Background(), ventaID)
	return pagos[0].ID
}

func TestGenerarRecibo_ReintentaColisionDelIndice(t *testing.T) {
	svc, repo, f := newReciboFixture(t)
	pagoID := pagoPagadoFixture(t, f)

	// The unique index rejects the first insert with an untranslated driver
	// error, as a connection without TranslateError would surface it
	repo.createErrs = []error{&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}}

	rec, err := svc.GenerarRecibo(context.Background(), pagoID, f.agenteID, dto.GenerarReciboRequest{})
	require.NoError(t, err)
	assert.Regexp(t, reNumeroRecibo, rec.Numero)
	assert.Equal(t, 2, repo.createCalls)
}

func TestGenerarRecibo_ErrorFatalNoReintenta(t *testing.T) {
	svc, repo, f := newReciboFixture(t)
	pagoID := pagoPagadoFixture(t, f)

	fatal := errors.New("connection reset by peer")
	repo.createErrs = []error{fatal}

	_, err := svc.GenerarRecibo(context.Background(), pagoID, f.agenteID, dto.GenerarReciboRequest{})
	require.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, repo.createCalls)
}

func TestEsNumeroDuplicado(t *testing.T) {
	assert.True(t, esNumeroDuplicado(gorm.ErrDuplicatedKey))
	assert.True(t, esNumeroDuplicado(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, esNumeroDuplicado(&pgconn.PgError{Code: "23505"}))
	assert.True(t, esNumeroDuplicado(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))

	assert.False(t, esNumeroDuplicado(nil))
	assert.False(t, esNumeroDuplicado(errors.New("timeout")))
	assert.False(t, esNumeroDuplicado(&pgconn.PgError{Code: "23503"})) // FK violation
}

func TestGenerarRecibo_RechazaPagoPendiente(t *testing.T) {
	svc, _, f := newReciboFixture(t)
	fechaViaje := time.Now().AddDate(0, 0, 30).Format("2006-01-02")

	resp, err := f.svc.ConvertirAVenta(context.Background(), f.cotizacion.ID, f.agenteID, dto.ConvertirVentaRequest{
		PrecioTotal: d("4000"),
		NumPagos:    2,
		FechaViaje:  fechaViaje,
	})
	require.NoError(t, err)

	pagos, _ := f.pagoRepo.ListByVenta(context.Background(), uuid.MustParse(resp.ID))
	_, err = svc.GenerarRecibo(context.Background(), pagos[0].ID, f.agenteID, dto.GenerarReciboRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pagados")
}
