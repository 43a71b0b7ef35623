package handler

import (
	"net/http"

	"github.com/lgalindop/emociones-viajes-sub000/internal/apierror"
	"github.com/lgalindop/emociones-viajes-sub000/internal/dto"
	"github.com/lgalindop/emociones-viajes-sub000/internal/middleware"
	"github.com/lgalindop/emociones-viajes-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ActividadesHandler struct{ svc service.ActividadService }

func NewActividadesHandler(svc service.ActividadService) *ActividadesHandler {
	return &ActividadesHandler{svc: svc}
}

// CrearNota godoc
// @Summary      Agregar nota
// @Description  Anexa una nota de seguimiento a una cotización o venta.
// @Tags         actividades
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearNotaRequest true "Contenido de la nota"
// @Success      201  {object} dto.ActividadResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/actividades [post]
func (h *ActividadesHandler) CrearNota(c *gin.Context) {
	var req dto.CrearNotaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.CrearNota(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarPorCotizacion godoc
// @Summary      Historial de una cotización
// @Tags         actividades
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la cotización"
// @Success      200 {array} dto.ActividadResponse
// @Router       /v1/cotizaciones/{id}/actividades [get]
func (h *ActividadesHandler) ListarPorCotizacion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ListPorCotizacion(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar actividades"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarPorVenta godoc
// @Summary      Historial de una venta
// @Tags         actividades
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la venta"
// @Success      200 {array} dto.ActividadResponse
// @Router       /v1/ventas/{id}/actividades [get]
func (h *ActividadesHandler) ListarPorVenta(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ListPorVenta(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar actividades"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
