package handler

import (
	"net/http"

	"github.com/lgalindop/emociones-viajes-sub000/internal/apierror"
	"github.com/lgalindop/emociones-viajes-sub000/internal/dto"
	"github.com/lgalindop/emociones-viajes-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.VentaService }

func NewReportesHandler(svc service.VentaService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Ventas godoc
// @Summary      Reporte de ventas por periodo
// @Description  Totales de ventas, cobrado y pendiente; sin rango el periodo es el mes en curso.
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        desde query string false "Fecha inicial YYYY-MM-DD"
// @Param        hasta query string false "Fecha final YYYY-MM-DD"
// @Success      200 {object} dto.ReporteVentasResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reportes/ventas [get]
func (h *ReportesHandler) Ventas(c *gin.Context) {
	var filter dto.ReporteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ReporteVentas(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
