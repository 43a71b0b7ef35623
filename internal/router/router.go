package router

import (
	"time"

	"github.com/lgalindop/emociones-viajes-sub000/internal/config"
	"github.com/lgalindop/emociones-viajes-sub000/internal/handler"
	"github.com/lgalindop/emociones-viajes-sub000/internal/infra"
	"github.com/lgalindop/emociones-viajes-sub000/internal/middleware"
	"github.com/lgalindop/emociones-viajes-sub000/internal/repository"
	"github.com/lgalindop/emociones-viajes-sub000/internal/service"
	"github.com/lgalindop/emociones-viajes-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, funcionesCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	funcionesClient := infra.NewFuncionesClient(cfg.FuncionesURL, cfg.FuncionesToken)
	dispatcher := worker.NewDispatcher(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	cotizacionRepo := repository.NewCotizacionRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	pagoRepo := repository.NewPagoRepository(db)
	reciboRepo := repository.NewReciboRepository(db)
	actividadRepo := repository.NewActividadRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg, funcionesClient, funcionesCB)
	clienteSvc := service.NewClienteService(clienteRepo)
	cotizacionSvc := service.NewCotizacionService(cotizacionRepo, clienteRepo, actividadRepo)
	ventaSvc := service.NewVentaService(ventaRepo, cotizacionRepo, pagoRepo, actividadRepo)
	pagoSvc := service.NewPagoService(pagoRepo, ventaRepo, actividadRepo)
	reciboSvc := service.NewReciboService(reciboRepo, pagoRepo, ventaRepo, cotizacionRepo, actividadRepo, dispatcher, cfg.PDFStoragePath, cfg.NombreAgencia)
	actividadSvc := service.NewActividadService(actividadRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	cotizacionesH := handler.NewCotizacionesHandler(cotizacionSvc, ventaSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	pagosH := handler.NewPagosHandler(pagoSvc, reciboSvc)
	recibosH := handler.NewRecibosHandler(reciboSvc)
	actividadesH := handler.NewActividadesHandler(actividadSvc)
	reportesH := handler.NewReportesHandler(ventaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
		auth.POST("/reset-password", middleware.LoginRateLimiter(), authH.ResetPassword)
	}

	// Protected routes — every endpoint declares the action it needs and the
	// permission matrix decides which roles pass.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		clientes := v1.Group("/clientes")
		{
			clientes.GET("", middleware.RequirePermiso(middleware.PermClientesLeer), clientesH.Listar)
			clientes.GET("/:id", middleware.RequirePermiso(middleware.PermClientesLeer), clientesH.Obtener)
			clientes.POST("", middleware.RequirePermiso(middleware.PermClientesEscribir), clientesH.Crear)
			clientes.PUT("/:id", middleware.RequirePermiso(middleware.PermClientesEscribir), clientesH.Actualizar)
			clientes.DELETE("/:id", middleware.RequirePermiso(middleware.PermClientesEscribir), clientesH.Desactivar)
		}

		cotizaciones := v1.Group("/cotizaciones")
		{
			cotizaciones.GET("", middleware.RequirePermiso(middleware.PermCotizacionesLeer), cotizacionesH.Listar)
			cotizaciones.GET("/:id", middleware.RequirePermiso(middleware.PermCotizacionesLeer), cotizacionesH.Obtener)
			cotizaciones.GET("/:id/actividades", middleware.RequirePermiso(middleware.PermActividadesLeer), actividadesH.ListarPorCotizacion)
			cotizaciones.POST("", middleware.RequirePermiso(middleware.PermCotizacionesEscrib), cotizacionesH.Crear)
			cotizaciones.PUT("/:id/etapa", middleware.RequirePermiso(middleware.PermCotizacionesEscrib), cotizacionesH.CambiarEtapa)
			cotizaciones.POST("/:id/opciones", middleware.RequirePermiso(middleware.PermCotizacionesEscrib), cotizacionesH.AgregarOpcion)
			cotizaciones.POST("/:id/opciones/:opcionId/seleccionar", middleware.RequirePermiso(middleware.PermCotizacionesEscrib), cotizacionesH.SeleccionarOpcion)
			cotizaciones.POST("/:id/convertir", middleware.RequirePermiso(middleware.PermVentasConvertir), cotizacionesH.Convertir)
		}

		ventas := v1.Group("/ventas")
		{
			ventas.GET("", middleware.RequirePermiso(middleware.PermVentasLeer), ventasH.Listar)
			ventas.GET("/:id", middleware.RequirePermiso(middleware.PermVentasLeer), ventasH.Obtener)
			ventas.GET("/:id/pagos", middleware.RequirePermiso(middleware.PermVentasLeer), pagosH.ListarPorVenta)
			ventas.GET("/:id/actividades", middleware.RequirePermiso(middleware.PermActividadesLeer), actividadesH.ListarPorVenta)
			ventas.DELETE("/:id", middleware.RequirePermiso(middleware.PermVentasCancelar), ventasH.Cancelar)
			ventas.POST("/:id/viajeros", middleware.RequirePermiso(middleware.PermVentasConvertir), ventasH.AgregarViajero)
			ventas.DELETE("/:id/viajeros/:viajeroId", middleware.RequirePermiso(middleware.PermVentasConvertir), ventasH.EliminarViajero)
		}

		pagos := v1.Group("/pagos")
		{
			pagos.POST("/:id/pagar", middleware.RequirePermiso(middleware.PermPagosRegistrar), pagosH.MarcarPagado)
			pagos.POST("/:id/recibos", middleware.RequirePermiso(middleware.PermRecibosEmitir), pagosH.GenerarRecibo)
		}

		recibos := v1.Group("/recibos")
		{
			recibos.GET("", middleware.RequirePermiso(middleware.PermRecibosLeer), recibosH.Listar)
			recibos.GET("/:id", middleware.RequirePermiso(middleware.PermRecibosLeer), recibosH.Obtener)
			recibos.GET("/pdf/:id", middleware.RequirePermiso(middleware.PermRecibosLeer), recibosH.DescargarPDF)
		}

		v1.POST("/actividades", middleware.RequirePermiso(middleware.PermNotasEscribir), actividadesH.CrearNota)

		v1.GET("/reportes/ventas", middleware.RequirePermiso(middleware.PermReportesLeer), reportesH.Ventas)

		usuarios := v1.Group("/usuarios", middleware.RequirePermiso(middleware.PermUsuariosAdmin))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.POST("/:id/reactivar", usuariosH.Reactivar)
			usuarios.POST("/:id/reset-password", usuariosH.ResetPassword)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
