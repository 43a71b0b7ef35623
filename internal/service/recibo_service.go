package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/lgalindop/emociones-viajes-sub000/internal/dto"
	"github.com/lgalindop/emociones-viajes-sub000/internal/infra"
	"github.com/lgalindop/emociones-viajes-sub000/internal/model"
	"github.com/lgalindop/emociones-viajes-sub000/internal/repository"
	"github.com/lgalindop/emociones-viajes-sub000/internal/retry"
	"github.com/lgalindop/emociones-viajes-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const maxIntentosNumero = 5

// ErrNumeroAgotado is surfaced when the allocator exhausts its attempts.
var ErrNumeroAgotado = errors.New("No se pudo generar un número de recibo único, intente de nuevo")

type ReciboService interface {
	GenerarRecibo(ctx context.Context, pagoID, usuarioID uuid.UUID, req dto.GenerarReciboRequest) (*dto.ReciboResponse, error)
	ObtenerRecibo(ctx context.Context, id uuid.UUID) (*dto.ReciboResponse, error)
	ListRecibos(ctx context.Context, filter dto.ReciboFilter) (*dto.ReciboListResponse, error)
	ObtenerPDFPath(ctx context.Context, id uuid.UUID) (string, error)
	GenerarNumero(ctx context.Context, year int) (string, error)
}

type reciboService struct {
	repo           repository.ReciboRepository
	pagoRepo       repository.PagoRepository
	ventaRepo      repository.VentaRepository
	cotizacionRepo repository.CotizacionRepository
	actividadRepo  repository.ActividadRepository
	dispatcher     *worker.Dispatcher
	pdfStorage     string
	nombreAgencia  string
}

func NewReciboService(
	repo repository.ReciboRepository,
	pagoRepo repository.PagoRepository,
	ventaRepo repository.VentaRepository,
	cotizacionRepo repository.CotizacionRepository,
	actividadRepo repository.ActividadRepository,
	dispatcher *worker.Dispatcher,
	pdfStorage string,
	nombreAgencia string,
) ReciboService {
	return &reciboService{
		repo:           repo,
		pagoRepo:       pagoRepo,
		ventaRepo:      ventaRepo,
		cotizacionRepo: cotizacionRepo,
		actividadRepo:  actividadRepo,
		dispatcher:     dispatcher,
		pdfStorage:     pdfStorage,
		nombreAgencia:  nombreAgencia,
	}
}

// ── Number allocation ────────────────────────────────────────────────────────
// Numbers are REC-<year>-<5-digit sequence>, unique per calendar year. The
// loop below is check-then-act: between the existence check and the insert
// another request can claim the same candidate, so the unique index on
// recibos.numero remains the final arbiter. Retries add a 0-9 jitter to step
// over repeated collisions.

// GenerarNumero allocates the next free receipt number for the year.
func (s *reciboService) GenerarNumero(ctx context.Context, year int) (string, error) {
	var numero string
	err := retry.Do(ctx, maxIntentosNumero, retry.None, func(attempt int) error {
		max, err := s.repo.MaxNumero(ctx, year)
		if err != nil {
			return err
		}
		candidato := parseSecuencia(max) + 1
		if attempt > 1 {
			candidato += rand.Intn(10)
		}
		n := fmt.Sprintf("REC-%d-%05d", year, candidato)

		exists, err := s.repo.Exists(ctx, n)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("número %s en uso", n)
		}
		numero = n
		return nil
	})
	if err != nil {
		log.Warn().Int("year", year).Err(err).Msg("recibo: allocation attempts exhausted")
		return "", ErrNumeroAgotado
	}
	return numero, nil
}

// esNumeroDuplicado reports whether err is a unique violation on
// recibos.numero. GORM maps these to ErrDuplicatedKey when the connection has
// TranslateError enabled; the raw pgconn code 23505 is matched as well so the
// retry does not hinge on that setting.
func esNumeroDuplicado(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// parseSecuencia extracts the numeric suffix of "REC-YYYY-NNNNN"; empty or
// malformed input yields 0.
func parseSecuencia(numero string) int {
	idx := strings.LastIndex(numero, "-")
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(numero[idx+1:])
	if err != nil {
		return 0
	}
	return n
}

// ── Generation ───────────────────────────────────────────────────────────────

// GenerarRecibo produces a receipt for a paid installment: snapshots the
// previous-payments / balance pair, allocates a number, renders the PDF,
// persists the row (append-only — regeneration creates a new row), and
// enqueues email delivery when an address is available.
func (s *reciboService) GenerarRecibo(ctx context.Context, pagoID, usuarioID uuid.UUID, req dto.GenerarReciboRequest) (*dto.ReciboResponse, error) {
	pago, err := s.pagoRepo.FindByID(ctx, pagoID)
	if err != nil {
		return nil, errors.New("pago no encontrado")
	}
	if pago.Estado != "pagado" {
		return nil, errors.New("solo se pueden emitir recibos de pagos registrados como pagados")
	}

	venta, err := s.ventaRepo.FindByID(ctx, pago.VentaID)
	if err != nil {
		return nil, errors.New("venta no encontrada")
	}

	// Cumulative paid including this pago
	acumulado := decimal.Zero
	for i := range venta.Pagos {
		if venta.Pagos[i].Estado == "pagado" {
			acumulado = acumulado.Add(venta.Pagos[i].Monto)
		}
	}
	pagosPrevios, saldo := SnapshotRecibo(venta.PrecioTotal, acumulado, pago.Monto)

	plantilla := req.Plantilla
	if plantilla == "" {
		plantilla = "informal"
	}

	// Allocate + insert, retried as a unit: the unique index can still
	// reject a candidate that passed the existence check.
	var recibo model.Recibo
	err = retry.Do(ctx, maxIntentosNumero, retry.None, func(int) error {
		numero, err := s.GenerarNumero(ctx, time.Now().Year())
		if err != nil {
			return err
		}
		recibo = model.Recibo{
			Numero:       numero,
			PagoID:       pago.ID,
			VentaID:      venta.ID,
			Monto:        pago.Monto,
			PagosPrevios: pagosPrevios,
			Saldo:        saldo,
			Plantilla:    plantilla,
			EmitidoPorID: usuarioID,
		}
		if err := s.repo.Create(ctx, &recibo); err != nil {
			if esNumeroDuplicado(err) {
				return err
			}
			return retry.Stop(err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNumeroAgotado) || esNumeroDuplicado(err) {
			return nil, ErrNumeroAgotado
		}
		return nil, err
	}

	// Render PDF — failure leaves the row without a document, it can be
	// regenerated
	destino := ""
	if cot, err := s.cotizacionRepo.FindByID(ctx, venta.CotizacionID); err == nil {
		destino = cot.Destino
	}
	cliente := ""
	clienteEmail := ""
	if venta.Cliente != nil {
		cliente = venta.Cliente.Nombre + " " + venta.Cliente.Apellido
		if venta.Cliente.Email != nil {
			clienteEmail = *venta.Cliente.Email
		}
	}
	metodo := ""
	if pago.MetodoPago != nil {
		metodo = *pago.MetodoPago
	}

	pdfPath, pdfErr := infra.GenerateReciboPDF(infra.ReciboPDFData{
		Numero:        recibo.Numero,
		Fecha:         time.Now(),
		NombreAgencia: s.nombreAgencia,
		Cliente:       cliente,
		FolioVenta:    venta.Folio,
		Destino:       destino,
		Moneda:        venta.Moneda,
		Monto:         recibo.Monto,
		PagosPrevios:  recibo.PagosPrevios,
		Saldo:         recibo.Saldo,
		MetodoPago:    metodo,
		Plantilla:     plantilla,
	}, s.pdfStorage)
	if pdfErr != nil {
		log.Warn().Err(pdfErr).Str("numero", recibo.Numero).Msg("recibo: PDF generation failed")
	} else {
		recibo.PDFPath = &pdfPath
		_ = s.repo.Update(ctx, &recibo)
	}

	act := &model.Actividad{
		Tipo:        "recibo_emitido",
		Descripcion: fmt.Sprintf("Recibo %s emitido por $%s (venta %s)", recibo.Numero, recibo.Monto.StringFixed(2), venta.Folio),
		VentaID:     &venta.ID,
		UsuarioID:   usuarioID,
	}
	_ = s.actividadRepo.Create(ctx, act)

	// Async email delivery (best-effort — fire & forget)
	to := clienteEmail
	if req.Email != nil && *req.Email != "" {
		to = *req.Email
	}
	if s.dispatcher != nil && to != "" && pdfErr == nil {
		job := worker.ReciboEmailPayload{
			ToEmail: to,
			Subject: fmt.Sprintf("Recibo %s — %s", recibo.Numero, s.nombreAgencia),
			Body:    fmt.Sprintf("Adjunto encontrarás tu recibo de pago.\nMonto: $%s %s\nSaldo pendiente: $%s", recibo.Monto.StringFixed(2), venta.Moneda, recibo.Saldo.StringFixed(2)),
			PDFPath: pdfPath,
		}
		if err := s.dispatcher.EnqueueReciboEmail(ctx, job); err != nil {
			log.Warn().Err(err).Str("email", to).Msg("recibo: failed to enqueue email")
		}
	}

	return reciboToResponse(&recibo), nil
}

func (s *reciboService) ObtenerRecibo(ctx context.Context, id uuid.UUID) (*dto.ReciboResponse, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("recibo no encontrado")
	}
	return reciboToResponse(rec), nil
}

func (s *reciboService) ListRecibos(ctx context.Context, filter dto.ReciboFilter) (*dto.ReciboListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	recibos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReciboResponse, 0, len(recibos))
	for i := range recibos {
		items = append(items, *reciboToResponse(&recibos[i]))
	}
	return &dto.ReciboListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ObtenerPDFPath returns the filesystem path of a rendered receipt.
func (s *reciboService) ObtenerPDFPath(ctx context.Context, id uuid.UUID) (string, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", errors.New("recibo no encontrado")
	}
	if rec.PDFPath == nil || *rec.PDFPath == "" {
		return "", errors.New("PDF no disponible para este recibo")
	}
	return *rec.PDFPath, nil
}

func reciboToResponse(r *model.Recibo) *dto.ReciboResponse {
	resp := &dto.ReciboResponse{
		ID:           r.ID.String(),
		Numero:       r.Numero,
		PagoID:       r.PagoID.String(),
		VentaID:      r.VentaID.String(),
		Monto:        r.Monto,
		PagosPrevios: r.PagosPrevios,
		Saldo:        r.Saldo,
		Plantilla:    r.Plantilla,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
	if r.PDFPath != nil && *r.PDFPath != "" {
		u := "/v1/recibos/pdf/" + r.ID.String()
		resp.PDFUrl = &u
	}
	return resp
}
