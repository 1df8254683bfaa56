package router

import (
	"time"

	"barberpos/internal/config"
	"barberpos/internal/handler"
	"barberpos/internal/infra"
	"barberpos/internal/middleware"
	"barberpos/internal/model"
	"barberpos/internal/repository"
	"barberpos/internal/service"
	"barberpos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, notifCB *infra.CircuitBreaker) *gin.Engine {
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

	// ── Repositories ─────────────────────────────────────────────────────────
	catalogoRepo := repository.NewCatalogoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	pagoRepo := repository.NewPagoRepository(db)
	reservaRepo := repository.NewReservaRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	comisionRepo := repository.NewComisionRepository(db)
	configRepartoRepo := repository.NewConfigRepartoRepository(db)
	movimientoStockRepo := repository.NewMovimientoStockRepository(db)
	reporteRepo := repository.NewReporteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	precioSvc := service.NewPrecioService(catalogoRepo)
	repartoSvc := service.NewRepartoService(configRepartoRepo)
	stockSvc := service.NewStockService(catalogoRepo, movimientoStockRepo)
	cajaSvc := service.NewCajaService(cajaRepo)
	comisionSvc := service.NewComisionService(comisionRepo, repartoSvc)
	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	ventaSvc := service.NewVentaService(ventaRepo, precioSvc, repartoSvc, stockSvc, cajaSvc, comisionSvc, dispatcher)

	tarifas := service.TarifasProcesador{
		model.MetodoCredito: cfg.FeeCreditoBps,
		model.MetodoDebito:  cfg.FeeDebitoBps,
	}
	pagoSvc := service.NewPagoService(pagoRepo, reservaRepo, repartoSvc, cajaSvc, comisionSvc, tarifas, dispatcher)

	reporteSvc := service.NewReporteService(reporteRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	ventasH := handler.NewVentasHandler(ventaSvc)
	pagosH := handler.NewPagosHandler(pagoSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	comisionesH := handler.NewComisionesHandler(comisionSvc)
	repartoH := handler.NewRepartoHandler(repartoSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	stockH := handler.NewStockHandler(stockSvc)
	preciosH := handler.NewConsultaPreciosHandler(precioSvc, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, notifCB))

	// Protected routes — every /v1 endpoint requires the tenant JWT
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: barbero, recepcion, supervisor, admin — declared per-endpoint
		v1.GET("/precios/:tipo/:id", preciosH.GetPrecio)

		v1.POST("/ventas", middleware.RequireRole("barbero", "recepcion", "admin"), ventasH.RegistrarVenta)
		v1.GET("/ventas", middleware.RequireRole("barbero", "recepcion", "supervisor", "admin"), ventasH.ListarVentas)
		v1.GET("/ventas/:id", middleware.RequireRole("barbero", "recepcion", "supervisor", "admin"), ventasH.ObtenerVenta)

		v1.POST("/pagos", middleware.RequireRole("barbero", "recepcion", "admin"), pagosH.RegistrarPago)
		v1.GET("/pagos/:id", middleware.RequireRole("barbero", "recepcion", "supervisor", "admin"), pagosH.ObtenerPago)

		caja := v1.Group("/caja")
		{
			caja.POST("/abrir", middleware.RequireRole("recepcion", "supervisor", "admin"), cajaH.Abrir)
			caja.POST("/ingreso", middleware.RequireRole("recepcion", "supervisor", "admin"), cajaH.Ingreso)
			caja.POST("/egreso", middleware.RequireRole("recepcion", "supervisor", "admin"), cajaH.Egreso)
			caja.POST("/cerrar", middleware.RequireRole("recepcion", "supervisor", "admin"), cajaH.Cerrar)
			caja.GET("/activa", middleware.RequireRole("recepcion", "supervisor", "admin"), cajaH.Activa)
			caja.GET("/historial", middleware.RequireRole("supervisor", "admin"), cajaH.Historial)
			caja.GET("/:id/reporte", middleware.RequireRole("recepcion", "supervisor", "admin"), cajaH.Reporte)
		}

		comisiones := v1.Group("/comisiones")
		{
			comisiones.GET("", middleware.RequireRole("barbero", "supervisor", "admin"), comisionesH.Listar)
			comisiones.GET("/balance/:barberoId", middleware.RequireRole("barbero", "supervisor", "admin"), comisionesH.Balance)
			comisiones.POST("/:id/aprobar", middleware.RequireRole("supervisor", "admin"), comisionesH.Aprobar)
			comisiones.POST("/:id/pagar", middleware.RequireRole("supervisor", "admin"), comisionesH.Pagar)
			comisiones.POST("/:id/ajustar", middleware.RequireRole("supervisor", "admin"), comisionesH.Ajustar)
		}

		reparto := v1.Group("/reparto", middleware.RequireRole("admin"))
		{
			reparto.GET("", repartoH.Obtener)
			reparto.PUT("", repartoH.Actualizar)
			reparto.POST("/overrides", repartoH.CrearOverride)
			reparto.DELETE("/overrides/:id", repartoH.DesactivarOverride)
		}

		reportes := v1.Group("/reportes", middleware.RequireRole("supervisor", "admin"))
		{
			reportes.GET("/resumen", reportesH.Resumen)
			reportes.GET("/ranking", reportesH.Ranking)
			reportes.GET("/medios-pago", reportesH.MediosPago)
			reportes.GET("/serie-diaria", reportesH.SerieDiaria)
		}

		stock := v1.Group("/stock")
		{
			stock.POST("/entrada", middleware.RequireRole("supervisor", "admin"), stockH.RegistrarEntrada)
			stock.GET("/movimientos", middleware.RequireRole("recepcion", "supervisor", "admin"), stockH.ListarMovimientos)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
