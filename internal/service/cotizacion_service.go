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
)

// probabilidadPorEtapa are the pipeline defaults applied on stage change
// unless the request overrides them.
var probabilidadPorEtapa = map[string]int{
	"nueva":              10,
	"cotizada":           25,
	"negociacion":        50,
	"reserva_confirmada": 90,
	"perdida":            0,
}

type CotizacionService interface {
	CrearCotizacion(ctx context.Context, agenteID uuid.UUID, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error)
	ObtenerCotizacion(ctx context.Context, id uuid.UUID) (*dto.CotizacionResponse, error)
	ListCotizaciones(ctx context.Context, filter dto.CotizacionFilter) (*dto.CotizacionListResponse, error)
	CambiarEtapa(ctx context.Context, id, usuarioID uuid.UUID, req dto.CambiarEtapaRequest) (*dto.CotizacionResponse, error)
	AgregarOpcion(ctx context.Context, cotizacionID uuid.UUID, req dto.AgregarOpcionRequest) (*dto.OpcionResponse, error)
	SeleccionarOpcion(ctx context.Context, cotizacionID, opcionID uuid.UUID) error
}

type cotizacionService struct {
	repo          repository.CotizacionRepository
	clienteRepo   repository.ClienteRepository
	actividadRepo repository.ActividadRepository
}

func NewCotizacionService(
	repo repository.CotizacionRepository,
	clienteRepo repository.ClienteRepository,
	actividadRepo repository.ActividadRepository,
) CotizacionService {
	return &cotizacionService{repo: repo, clienteRepo: clienteRepo, actividadRepo: actividadRepo}
}

func (s *cotizacionService) CrearCotizacion(ctx context.Context, agenteID uuid.UUID, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, errors.New("cliente_id inválido")
	}
	cliente, err := s.clienteRepo.FindByID(ctx, clienteID)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	if !cliente.Activo {
		return nil, errors.New("el cliente está inactivo")
	}

	seq, err := s.repo.NextFolio(ctx)
	if err != nil {
		return nil, err
	}

	cot := &model.Cotizacion{
		Folio:        fmt.Sprintf("COT-%d-%05d", time.Now().Year(), seq),
		ClienteID:    clienteID,
		AgenteID:     agenteID,
		Destino:      req.Destino,
		Etapa:        "nueva",
		Probabilidad: probabilidadPorEtapa["nueva"],
		Notas:        req.Notas,
	}
	if err := s.repo.Create(ctx, cot); err != nil {
		return nil, err
	}
	cot.Cliente = cliente

	return cotizacionToResponse(cot), nil
}

func (s *cotizacionService) ObtenerCotizacion(ctx context.Context, id uuid.UUID) (*dto.CotizacionResponse, error) {
	cot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cotización no encontrada")
	}
	return cotizacionToResponse(cot), nil
}

func (s *cotizacionService) ListCotizaciones(ctx context.Context, filter dto.CotizacionFilter) (*dto.CotizacionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	cotizaciones, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CotizacionResponse, 0, len(cotizaciones))
	for i := range cotizaciones {
		items = append(items, *cotizacionToResponse(&cotizaciones[i]))
	}
	return &dto.CotizacionListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// CambiarEtapa moves a quote through the pipeline. reserva_confirmada is
// reserved for sale conversion; use POST /convertir for that transition.
func (s *cotizacionService) CambiarEtapa(ctx context.Context, id, usuarioID uuid.UUID, req dto.CambiarEtapaRequest) (*dto.CotizacionResponse, error) {
	cot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cotización no encontrada")
	}
	if cot.Etapa == "reserva_confirmada" {
		return nil, errors.New("la cotización ya fue convertida a venta")
	}
	if req.Etapa == "reserva_confirmada" {
		return nil, errors.New("use la conversión a venta para confirmar la reserva")
	}
	if req.Etapa == cot.Etapa {
		return cotizacionToResponse(cot), nil
	}

	probabilidad := probabilidadPorEtapa[req.Etapa]
	if req.Probabilidad != nil {
		probabilidad = *req.Probabilidad
	}

	anterior := cot.Etapa
	if err := s.repo.UpdateEtapaTx(s.repo.DB(), id, req.Etapa, probabilidad); err != nil {
		return nil, err
	}
	cot.Etapa = req.Etapa
	cot.Probabilidad = probabilidad

	act := &model.Actividad{
		Tipo:         "cambio_etapa",
		Descripcion:  fmt.Sprintf("Etapa: %s → %s", anterior, req.Etapa),
		CotizacionID: &cot.ID,
		UsuarioID:    usuarioID,
	}
	_ = s.actividadRepo.Create(ctx, act)

	return cotizacionToResponse(cot), nil
}

func (s *cotizacionService) AgregarOpcion(ctx context.Context, cotizacionID uuid.UUID, req dto.AgregarOpcionRequest) (*dto.OpcionResponse, error) {
	cot, err := s.repo.FindByID(ctx, cotizacionID)
	if err != nil {
		return nil, errors.New("cotización no encontrada")
	}
	if cot.Etapa == "reserva_confirmada" || cot.Etapa == "perdida" {
		return nil, errors.New("no se pueden agregar opciones a una cotización cerrada")
	}

	moneda := req.Moneda
	if moneda == "" {
		moneda = "MXN"
	}
	opcion := &model.CotizacionOpcion{
		CotizacionID: cot.ID,
		Nombre:       req.Nombre,
		Precio:       req.Precio,
		Moneda:       moneda,
		Descripcion:  req.Descripcion,
	}
	if err := s.repo.AgregarOpcion(ctx, opcion); err != nil {
		return nil, err
	}
	return opcionToResponse(opcion), nil
}

// SeleccionarOpcion marks one option as chosen and clears any sibling
// selection, keeping the at-most-one invariant.
func (s *cotizacionService) SeleccionarOpcion(ctx context.Context, cotizacionID, opcionID uuid.UUID) error {
	opcion, err := s.repo.FindOpcion(ctx, opcionID)
	if err != nil {
		return errors.New("opción no encontrada")
	}
	if opcion.CotizacionID != cotizacionID {
		return errors.New("la opción no pertenece a esta cotización")
	}
	return s.repo.SeleccionarOpcion(ctx, cotizacionID, opcionID)
}

func cotizacionToResponse(c *model.Cotizacion) *dto.CotizacionResponse {
	resp := &dto.CotizacionResponse{
		ID:           c.ID.String(),
		Folio:        c.Folio,
		ClienteID:    c.ClienteID.String(),
		AgenteID:     c.AgenteID.String(),
		Destino:      c.Destino,
		Etapa:        c.Etapa,
		Probabilidad: c.Probabilidad,
		Notas:        c.Notas,
		Opciones:     make([]dto.OpcionResponse, 0, len(c.Opciones)),
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
	}
	if c.Cliente != nil {
		resp.Cliente = c.Cliente.Nombre + " " + c.Cliente.Apellido
	}
	for i := range c.Opciones {
		resp.Opciones = append(resp.Opciones, *opcionToResponse(&c.Opciones[i]))
	}
	return resp
}

func opcionToResponse(o *model.CotizacionOpcion) *dto.OpcionResponse {
	return &dto.OpcionResponse{
		ID:           o.ID.String(),
		Nombre:       o.Nombre,
		Precio:       o.Precio,
		Moneda:       o.Moneda,
		Descripcion:  o.Descripcion,
		Seleccionada: o.Seleccionada,
	}
}
