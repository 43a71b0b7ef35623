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

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

// Obtener godoc
// @Summary      Detalle de venta
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la venta"
// @Success      200 {object} dto.VentaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/ventas/{id} [get]
func (h *VentasHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerVenta(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary      Listar ventas
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        estado    query string false "activa | completada | cancelada | all"
// @Param        agente_id query string false "UUID del agente"
// @Param        page      query int    false "Página (default 1)"
// @Param        limit     query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.VentaListResponse
// @Router       /v1/ventas [get]
func (h *VentasHandler) Listar(c *gin.Context) {
	var filter dto.VentaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListVentas(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar ventas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancelar godoc
// @Summary      Cancelar venta
// @Description  Cancela la venta y sus pagos pendientes; el historial se conserva.
// @Tags         ventas
// @Accept       json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la venta"
// @Param        body body dto.CancelarVentaRequest true "Motivo de cancelación"
// @Success      204
// @Failure      400  {object} apierror.APIError
// @Router       /v1/ventas/{id} [delete]
func (h *VentasHandler) Cancelar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.CancelarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	if err := h.svc.CancelarVenta(c.Request.Context(), id, usuarioID, req.Motivo); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// AgregarViajero godoc
// @Summary      Agregar viajero a la venta
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la venta"
// @Param        body body dto.AgregarViajeroRequest true "Datos del viajero"
// @Success      201  {object} dto.ViajeroResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/ventas/{id}/viajeros [post]
func (h *VentasHandler) AgregarViajero(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AgregarViajeroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarViajero(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// EliminarViajero godoc
// @Summary      Quitar viajero de la venta
// @Tags         ventas
// @Security     BearerAuth
// @Param        id        path string true "UUID de la venta"
// @Param        viajeroId path string true "UUID del viajero"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/ventas/{id}/viajeros/{viajeroId} [delete]
func (h *VentasHandler) EliminarViajero(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	viajeroID, err := uuid.Parse(c.Param("viajeroId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de viajero invalido"))
		return
	}
	if err := h.svc.EliminarViajero(c.Request.Context(), id, viajeroID); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
