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

type PagosHandler struct {
	svc       service.PagoService
	reciboSvc service.ReciboService
}

func NewPagosHandler(svc service.PagoService, reciboSvc service.ReciboService) *PagosHandler {
	return &PagosHandler{svc: svc, reciboSvc: reciboSvc}
}

// ListarPorVenta godoc
// @Summary      Plan de pagos de una venta
// @Tags         pagos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la venta"
// @Success      200 {array} dto.PagoResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/ventas/{id}/pagos [get]
func (h *PagosHandler) ListarPorVenta(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ListByVenta(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar pagos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MarcarPagado godoc
// @Summary      Registrar cobro de una cuota
// @Description  Marca la cuota como pagada y recalcula los acumulados de la venta.
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del pago"
// @Param        body body dto.MarcarPagadoRequest true "Método y fecha de pago"
// @Success      200  {object} dto.PagoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/pagos/{id}/pagar [post]
func (h *PagosHandler) MarcarPagado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.MarcarPagadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.MarcarPagado(c.Request.Context(), id, usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GenerarRecibo godoc
// @Summary      Emitir recibo de un pago
// @Description  Asigna número REC-YYYY-NNNNN, genera el PDF y lo envía por correo.
// @Tags         recibos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del pago"
// @Param        body body dto.GenerarReciboRequest true "Plantilla y destinatario"
// @Success      201  {object} dto.ReciboResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/pagos/{id}/recibos [post]
func (h *PagosHandler) GenerarRecibo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.GenerarReciboRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.reciboSvc.GenerarRecibo(c.Request.Context(), id, usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}
