package handler

import (
	"net/http"

	"github.com/lgalindop/emociones-viajes-sub000/internal/apierror"
	"github.com/lgalindop/emociones-viajes-sub000/internal/dto"
	"github.com/lgalindop/emociones-viajes-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RecibosHandler struct{ svc service.ReciboService }

func NewRecibosHandler(svc service.ReciboService) *RecibosHandler {
	return &RecibosHandler{svc: svc}
}

// Listar godoc
// @Summary      Listar recibos
// @Tags         recibos
// @Produce      json
// @Security     BearerAuth
// @Param        venta_id query string false "UUID de la venta"
// @Param        anio     query int    false "Año de emisión"
// @Param        page     query int    false "Página (default 1)"
// @Param        limit    query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.ReciboListResponse
// @Router       /v1/recibos [get]
func (h *RecibosHandler) Listar(c *gin.Context) {
	var filter dto.ReciboFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListRecibos(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar recibos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary      Detalle de recibo
// @Tags         recibos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del recibo"
// @Success      200 {object} dto.ReciboResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/recibos/{id} [get]
func (h *RecibosHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerRecibo(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DescargarPDF godoc
// @Summary      Descargar PDF del recibo
// @Tags         recibos
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "UUID del recibo"
// @Success      200 {file} binary
// @Failure      404 {object} apierror.APIError
// @Router       /v1/recibos/pdf/{id} [get]
func (h *RecibosHandler) DescargarPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	path, err := h.svc.ObtenerPDFPath(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.File(path)
}
