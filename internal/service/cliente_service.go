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

type ClienteService interface {
	CrearCliente(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	ObtenerCliente(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	ListClientes(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error)
	ActualizarCliente(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	DesactivarCliente(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) CrearCliente(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	cliente := &model.Cliente{
		Nombre:    req.Nombre,
		Apellido:  req.Apellido,
		Email:     req.Email,
		Telefono:  req.Telefono,
		Documento: req.Documento,
		Notas:     req.Notas,
		Activo:    true,
	}
	if req.AgenteID != nil {
		agenteID, err := uuid.Parse(*req.AgenteID)
		if err != nil {
			return nil, errors.New("agente_id inválido")
		}
		cliente.AgenteID = &agenteID
	}
	if err := s.repo.Create(ctx, cliente); err != nil {
		return nil, err
	}
	return clienteToResponse(cliente), nil
}

func (s *clienteService) ObtenerCliente(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	return clienteToResponse(cliente), nil
}

func (s *clienteService) ListClientes(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	clientes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		items = append(items, *clienteToResponse(&clientes[i]))
	}
	return &dto.ClienteListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ActualizarCliente applies a partial update: empty strings and nil
// pointers leave the stored value untouched.
func (s *clienteService) ActualizarCliente(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}
	if req.Nombre != "" {
		cliente.Nombre = req.Nombre
	}
	if req.Apellido != "" {
		cliente.Apellido = req.Apellido
	}
	if req.Email != nil {
		cliente.Email = req.Email
	}
	if req.Telefono != nil {
		cliente.Telefono = req.Telefono
	}
	if req.Documento != nil {
		cliente.Documento = req.Documento
	}
	if req.Notas != nil {
		cliente.Notas = req.Notas
	}
	if err := s.repo.Update(ctx, cliente); err != nil {
		return nil, err
	}
	return clienteToResponse(cliente), nil
}

// DesactivarCliente soft-deletes: history (cotizaciones, ventas, recibos)
// stays intact.
func (s *clienteService) DesactivarCliente(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("cliente no encontrado")
	}
	return s.repo.SoftDelete(ctx, id)
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	resp := &dto.ClienteResponse{
		ID:        c.ID.String(),
		Nombre:    c.Nombre,
		Apellido:  c.Apellido,
		Email:     c.Email,
		Telefono:  c.Telefono,
		Documento: c.Documento,
		Notas:     c.Notas,
		Activo:    c.Activo,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
	if c.AgenteID != nil {
		s := c.AgenteID.String()
		resp.AgenteID = &s
	}
	return resp
}
