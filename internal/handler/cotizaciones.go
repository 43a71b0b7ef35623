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

type CotizacionesHandler struct {
	svc      service.CotizacionService
	ventaSvc service.VentaService
}

func NewCotizacionesHandler(svc service.CotizacionService, ventaSvc service.VentaService) *CotizacionesHandler {
	return &CotizacionesHandler{svc: svc, ventaSvc: ventaSvc}
}

// Crear godoc
// @Summary      Crear cotización
// @Description  Abre una cotización en etapa nueva con folio COT-YYYY-NNNNN.
// @Tags         cotizaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearCotizacionRequest true "Datos de la cotización"
// @Success      201  {object} dto.CotizacionResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/cotizaciones [post]
func (h *CotizacionesHandler) Crear(c *gin.Context) {
	var req dto.CrearCotizacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	agenteID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.CrearCotizacion(c.Request.Context(), agenteID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obtener godoc
// @Summary      Detalle de cotización
// @Tags         cotizaciones
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la cotización"
// @Success      200 {object} dto.CotizacionResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/cotizaciones/{id} [get]
func (h *CotizacionesHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerCotizacion(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary      Listar cotizaciones
// @Tags         cotizaciones
// @Produce      json
// @Security     BearerAuth
// @Param        etapa     query string false "nueva | cotizada | negociacion | reserva_confirmada | perdida | all"
// @Param        agente_id query string false "UUID del agente"
// @Param        page      query int    false "Página (default 1)"
// @Param        limit     query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.CotizacionListResponse
// @Router       /v1/cotizaciones [get]
func (h *CotizacionesHandler) Listar(c *gin.Context) {
	var filter dto.CotizacionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListCotizaciones(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar cotizaciones"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarEtapa godoc
// @Summary      Mover cotización en el pipeline
// @Tags         cotizaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la cotización"
// @Param        body body dto.CambiarEtapaRequest true "Nueva etapa"
// @Success      200  {object} dto.CotizacionResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/cotizaciones/{id}/etapa [put]
func (h *CotizacionesHandler) CambiarEtapa(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.CambiarEtapaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.CambiarEtapa(c.Request.Context(), id, usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AgregarOpcion godoc
// @Summary      Agregar opción de paquete
// @Tags         cotizaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la cotización"
// @Param        body body dto.AgregarOpcionRequest true "Paquete propuesto"
// @Success      201  {object} dto.OpcionResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/cotizaciones/{id}/opciones [post]
func (h *CotizacionesHandler) AgregarOpcion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AgregarOpcionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarOpcion(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SeleccionarOpcion godoc
// @Summary      Seleccionar opción
// @Description  Marca la opción elegida por el cliente; deselecciona las demás.
// @Tags         cotizaciones
// @Security     BearerAuth
// @Param        id       path string true "UUID de la cotización"
// @Param        opcionId path string true "UUID de la opción"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/cotizaciones/{id}/opciones/{opcionId}/seleccionar [post]
func (h *CotizacionesHandler) SeleccionarOpcion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	opcionID, err := uuid.Parse(c.Param("opcionId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de opción invalido"))
		return
	}
	if err := h.svc.SeleccionarOpcion(c.Request.Context(), id, opcionID); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Convertir godoc
// @Summary      Convertir cotización a venta
// @Description  Crea la venta con su plan de pagos en una sola transacción y confirma la reserva.
// @Tags         cotizaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la cotización"
// @Param        body body dto.ConvertirVentaRequest true "Condiciones de la venta"
// @Success      201  {object} dto.VentaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/cotizaciones/{id}/convertir [post]
func (h *CotizacionesHandler) Convertir(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ConvertirVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	agenteID, _ := uuid.Parse(claims.UserID)

	resp, err := h.ventaSvc.ConvertirAVenta(c.Request.Context(), id, agenteID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}
