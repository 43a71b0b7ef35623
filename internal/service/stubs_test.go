package service

// In-memory repository stubs shared by the service tests. The Tx variants
// accept a nil *gorm.DB because runTx short-circuits when no database is
// wired.

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lgalindop/emociones-viajes-sub000/internal/dto"
	"github.com/lgalindop/emociones-viajes-sub000/internal/model"
	"github.com/lgalindop/emociones-viajes-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── ClienteRepository ────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return c, nil
}

func (r *stubClienteRepo) List(_ context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error) {
	var result []model.Cliente
	for _, c := range r.clientes {
		if !c.Activo {
			continue
		}
		if filter.Busqueda != "" && !strings.Contains(strings.ToLower(c.Nombre+" "+c.Apellido), strings.ToLower(filter.Busqueda)) {
			continue
		}
		result = append(result, *c)
	}
	return result, int64(len(result)), nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	c, ok := r.clientes[id]
	if !ok {
		return errors.New("record not found")
	}
	c.Activo = false
	return nil
}

// ── CotizacionRepository ─────────────────────────────────────────────────────

type stubCotizacionRepo struct {
	cotizaciones map[uuid.UUID]*model.Cotizacion
	opciones     map[uuid.UUID]*model.CotizacionOpcion
	folio        int
}

func newStubCotizacionRepo() *stubCotizacionRepo {
	return &stubCotizacionRepo{
		cotizaciones: make(map[uuid.UUID]*model.Cotizacion),
		opciones:     make(map[uuid.UUID]*model.CotizacionOpcion),
	}
}

func (r *stubCotizacionRepo) DB() *gorm.DB { return nil }

func (r *stubCotizacionRepo) Create(_ context.Context, c *model.Cotizacion) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cotizaciones[c.ID] = c
	return nil
}

func (r *stubCotizacionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cotizacion, error) {
	c, ok := r.cotizaciones[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return c, nil
}

func (r *stubCotizacionRepo) List(_ context.Context, filter dto.CotizacionFilter) ([]model.Cotizacion, int64, error) {
	var result []model.Cotizacion
	for _, c := range r.cotizaciones {
		if filter.Etapa != "" && filter.Etapa != "all" && c.Etapa != filter.Etapa {
			continue
		}
		result = append(result, *c)
	}
	return result, int64(len(result)), nil
}

func (r *stubCotizacionRepo) NextFolio(_ context.Context) (int, error) {
	r.folio++
	return r.folio, nil
}

func (r *stubCotizacionRepo) UpdateEtapaTx(_ *gorm.DB, id uuid.UUID, etapa string, probabilidad int) error {
	c, ok := r.cotizaciones[id]
	if !ok {
		return errors.New("record not found")
	}
	c.Etapa = etapa
	c.Probabilidad = probabilidad
	return nil
}

func (r *stubCotizacionRepo) AgregarOpcion(_ context.Context, o *model.CotizacionOpcion) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.opciones[o.ID] = o
	if c, ok := r.cotizaciones[o.CotizacionID]; ok {
		c.Opciones = append(c.Opciones, *o)
	}
	return nil
}

func (r *stubCotizacionRepo) FindOpcion(_ context.Context, id uuid.UUID) (*model.CotizacionOpcion, error) {
	o, ok := r.opciones[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return o, nil
}

func (r *stubCotizacionRepo) SeleccionarOpcion(_ context.Context, cotizacionID, opcionID uuid.UUID) error {
	c, ok := r.cotizaciones[cotizacionID]
	if !ok {
		return errors.New("record not found")
	}
	for i := range c.Opciones {
		c.Opciones[i].Seleccionada = c.Opciones[i].ID == opcionID
	}
	if o, ok := r.opciones[opcionID]; ok {
		o.Seleccionada = true
	}
	return nil
}

// ── VentaRepository ──────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas   map[uuid.UUID]*model.Venta
	viajeros map[uuid.UUID]*model.Viajero
	folio    int
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{
		ventas:   make(map[uuid.UUID]*model.Venta),
		viajeros: make(map[uuid.UUID]*model.Viajero),
	}
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

func (r *stubVentaRepo) CreateTx(_ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return v, nil
}

func (r *stubVentaRepo) List(_ context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var result []model.Venta
	for _, v := range r.ventas {
		if filter.Estado != "" && filter.Estado != "all" && v.Estado != filter.Estado {
			continue
		}
		result = append(result, *v)
	}
	return result, int64(len(result)), nil
}

func (r *stubVentaRepo) NextFolio(_ context.Context, _ *gorm.DB) (int, error) {
	r.folio++
	return r.folio, nil
}

func (r *stubVentaRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string) error {
	v, ok := r.ventas[id]
	if !ok {
		return errors.New("record not found")
	}
	v.Estado = estado
	return nil
}

func (r *stubVentaRepo) UpdateMontosTx(_ *gorm.DB, id uuid.UUID, pagado, pendiente decimal.Decimal) error {
	v, ok := r.ventas[id]
	if !ok {
		return errors.New("record not found")
	}
	v.MontoPagado = pagado
	v.MontoPendiente = pendiente
	return nil
}

func (r *stubVentaRepo) AgregarViajero(_ context.Context, v *model.Viajero) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.viajeros[v.ID] = v
	return nil
}

func (r *stubVentaRepo) EliminarViajero(_ context.Context, ventaID, viajeroID uuid.UUID) error {
	delete(r.viajeros, viajeroID)
	return nil
}

func (r *stubVentaRepo) ResumenPeriodo(_ context.Context, desde, hasta time.Time) (*repository.ResumenVentas, error) {
	res := &repository.ResumenVentas{
		ImporteTotal:   decimal.Zero,
		TotalCobrado:   decimal.Zero,
		TotalPendiente: decimal.Zero,
	}
	for _, v := range r.ventas {
		if v.Estado == "cancelada" {
			continue
		}
		res.TotalVentas++
		res.ImporteTotal = res.ImporteTotal.Add(v.PrecioTotal)
		res.TotalCobrado = res.TotalCobrado.Add(v.MontoPagado)
		res.TotalPendiente = res.TotalPendiente.Add(v.MontoPendiente)
	}
	return res, nil
}

// ── PagoRepository ───────────────────────────────────────────────────────────

type stubPagoRepo struct {
	pagos map[uuid.UUID]*model.Pago
}

func newStubPagoRepo() *stubPagoRepo {
	return &stubPagoRepo{pagos: make(map[uuid.UUID]*model.Pago)}
}

func (r *stubPagoRepo) DB() *gorm.DB { return nil }

func (r *stubPagoRepo) CreateBulkTx(_ *gorm.DB, pagos []model.Pago) error {
	for i := range pagos {
		if pagos[i].ID == uuid.Nil {
			pagos[i].ID = uuid.New()
		}
		p := pagos[i]
		r.pagos[p.ID] = &p
	}
	return nil
}

func (r *stubPagoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pago, error) {
	p, ok := r.pagos[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func (r *stubPagoRepo) ListByVenta(_ context.Context, ventaID uuid.UUID) ([]model.Pago, error) {
	var result []model.Pago
	for _, p := range r.pagos {
		if p.VentaID == ventaID {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].NumeroPago < result[j].NumeroPago })
	return result, nil
}

func (r *stubPagoRepo) UpdateTx(_ *gorm.DB, p *model.Pago) error {
	r.pagos[p.ID] = p
	return nil
}

func (r *stubPagoRepo) ListVencidos(_ context.Context, hoy time.Time, limit int) ([]model.Pago, error) {
	var result []model.Pago
	for _, p := range r.pagos {
		if p.Estado == "pendiente" && p.FechaProgramada.Before(hoy) {
			result = append(result, *p)
		}
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (r *stubPagoRepo) MarcarVencido(_ context.Context, id uuid.UUID) error {
	p, ok := r.pagos[id]
	if !ok {
		return errors.New("record not found")
	}
	if p.Estado == "pendiente" {
		p.Estado = "vencido"
	}
	return nil
}

// ── ActividadRepository ──────────────────────────────────────────────────────

type stubActividadRepo struct {
	actividades []model.Actividad
}

func newStubActividadRepo() *stubActividadRepo { return &stubActividadRepo{} }

func (r *stubActividadRepo) Create(_ context.Context, a *model.Actividad) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.actividades = append(r.actividades, *a)
	return nil
}

func (r *stubActividadRepo) CreateTx(_ *gorm.DB, a *model.Actividad) error {
	return r.Create(context.Background(), a)
}

func (r *stubActividadRepo) ListByCotizacion(_ context.Context, cotizacionID uuid.UUID) ([]model.Actividad, error) {
	var result []model.Actividad
	for _, a := range r.actividades {
		if a.CotizacionID != nil && *a.CotizacionID == cotizacionID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *stubActividadRepo) ListByVenta(_ context.Context, ventaID uuid.UUID) ([]model.Actividad, error) {
	var result []model.Actividad
	for _, a := range r.actividades {
		if a.VentaID != nil && *a.VentaID == ventaID {
			result = append(result, a)
		}
	}
	return result, nil
}

// ── ReciboRepository ─────────────────────────────────────────────────────────

type stubReciboRepo struct {
	mu      sync.Mutex
	recibos map[uuid.UUID]*model.Recibo
	// existsFailures forces Exists to report the number as taken for the
	// first N allocation attempts
	existsFailures int
	// createErrs are returned by successive Create calls before normal
	// behavior resumes
	createErrs  []error
	createCalls int
}

func newStubReciboRepo() *stubReciboRepo {
	return &stubReciboRepo{recibos: make(map[uuid.UUID]*model.Recibo)}
}

func (r *stubReciboRepo) Create(_ context.Context, rec *model.Recibo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		return err
	}
	for _, existing := range r.recibos {
		if existing.Numero == rec.Numero {
			return fmt.Errorf("numero %s: %w", rec.Numero, gorm.ErrDuplicatedKey)
		}
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.recibos[rec.ID] = rec
	return nil
}

func (r *stubReciboRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Recibo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.recibos[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return rec, nil
}

func (r *stubReciboRepo) List(_ context.Context, filter dto.ReciboFilter) ([]model.Recibo, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.Recibo
	for _, rec := range r.recibos {
		if filter.VentaID != "" && rec.VentaID.String() != filter.VentaID {
			continue
		}
		result = append(result, *rec)
	}
	return result, int64(len(result)), nil
}

func (r *stubReciboRepo) MaxNumero(_ context.Context, year int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prefix := fmt.Sprintf("REC-%d-", year)
	max := ""
	for _, rec := range r.recibos {
		if strings.HasPrefix(rec.Numero, prefix) && rec.Numero > max {
			max = rec.Numero
		}
	}
	return max, nil
}

func (r *stubReciboRepo) Exists(_ context.Context, numero string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.existsFailures > 0 {
		r.existsFailures--
		return true, nil
	}
	for _, rec := range r.recibos {
		if rec.Numero == numero {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubReciboRepo) Update(_ context.Context, rec *model.Recibo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recibos[rec.ID] = rec
	return nil
}
