package router

import (
	"time"

	"embarques/internal/config"
	"embarques/internal/grid"
	"embarques/internal/handler"
	"embarques/internal/i18n"
	"embarques/internal/infra"
	"embarques/internal/middleware"
	"embarques/internal/model"
	"embarques/internal/repository"
	"embarques/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// filasTTL bounds how long a cached active set is served before a reload.
const filasTTL = 10 * time.Minute

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// db and rdb may be nil: without a database the data routes answer the
// configuration error, and without Redis caches stay in process.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, blobs *infra.FileStorage) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ── Infrastructure ───────────────────────────────────────────────────────
	var (
		filas      grid.Cache   = grid.NewMemoryCache(filasTTL)
		preferStg  i18n.Storage = i18n.NewMemoryStorage()
		cacheState func() string
	)
	if rdb != nil {
		rf := infra.NewRedisFilas(rdb, filasTTL)
		filas = rf
		cacheState = func() string { return rf.Estado().String() }
		preferStg = infra.NewRedisStorage(rdb)
	}
	fallback, ok := i18n.Parse(cfg.DefaultLocale)
	if !ok {
		fallback = i18n.ES
	}
	prefs := i18n.NewPreferences(preferStg, fallback)

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.Session(cfg.JWTSecret))
	r.Use(middleware.Locale(prefs, cfg.Location()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.APIRateLimit, cfg.APIRateWindow))

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	operacionRepo := repository.NewOperacionRepository(db)
	catalogoRepo := repository.NewCatalogoRepository(db)
	documentoRepo := repository.NewDocumentoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	g := grid.New(operacionRepo, catalogoRepo, filas)

	authSvc := service.NewAuthService(usuarioRepo, cfg)
	registroSvc := service.NewRegistroService(g, operacionRepo)
	papeleraSvc := service.NewPapeleraService(operacionRepo, documentoRepo, blobs, g)
	reservaSvc := service.NewReservaService(catalogoRepo, operacionRepo, g)
	documentoSvc := service.NewDocumentoService(operacionRepo, documentoRepo, blobs, cfg.MaxUploadBytes())
	clienteSvc := service.NewClienteService(clienteRepo)
	gestionSvc := service.NewGestionService(operacionRepo, g)
	dashboardSvc := service.NewDashboardService(operacionRepo)
	catalogoSvc := service.NewCatalogoService(catalogoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc, cfg.CookieSecure)
	preferenciasH := handler.NewPreferenciasHandler(prefs)
	registrosH := handler.NewRegistrosHandler(registroSvc)
	papeleraH := handler.NewPapeleraHandler(papeleraSvc)
	reservasH := handler.NewReservasHandler(reservaSvc)
	documentosH := handler.NewDocumentosHandler(documentoSvc, cfg.MaxUploadBytes())
	clientesH := handler.NewClientesHandler(clienteSvc)
	gestionH := handler.NewGestionHandler(gestionSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)
	catalogosH := handler.NewCatalogosHandler(catalogoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, cacheState))
	r.Static("/archivos", blobs.Root())

	// Auth (public)
	auth := r.Group("/api/auth")
	{
		authLimit := middleware.LoginRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)
		auth.POST("/login", authLimit, authH.Login)
		auth.POST("/signup", authLimit, authH.Signup)
		auth.POST("/signout", authH.Signout)
		auth.GET("/session", authH.Session)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/preferencias/idioma", preferenciasH.Idioma)
		v1.PUT("/preferencias/idioma", preferenciasH.GuardarIdioma)
	}

	// Data routes need the relational store.
	data := v1.Group("", middleware.RequireConfigured(db != nil && cfg.DataConfigured()))
	{
		reg := data.Group("/registros")
		{
			reg.GET("", registrosH.Listar)
			reg.POST("", registrosH.Agregar)
			reg.PATCH("/:id", registrosH.Editar)
			reg.POST("/papelera", registrosH.EnviarAPapelera)
			reg.GET("/naves", registrosH.Naves)
			reg.GET("/export", registrosH.Exportar)
		}

		ops := data.Group("/operaciones/:id")
		{
			ops.GET("/pdf", registrosH.HojaReserva)
			ops.GET("/documentos", documentosH.Slots)
			ops.POST("/documentos/:tipo", documentosH.Subir)
		}

		pap := data.Group("/papelera")
		{
			pap.GET("", papeleraH.Listar)
			pap.POST("/restaurar", papeleraH.Restaurar)
			// Permanent deletion is reserved to staff accounts.
			pap.POST("/eliminar", middleware.RequireRole(model.RolEjecutivo, model.RolAdmin), papeleraH.Eliminar)
			pap.POST("/vaciar", middleware.RequireRole(model.RolEjecutivo, model.RolAdmin), papeleraH.Vaciar)
		}

		res := data.Group("/reservas")
		{
			res.GET("", reservasH.Listar)
			res.POST("", reservasH.Confirmar)
			res.GET("/formulario", reservasH.Formulario)
			res.GET("/naves", reservasH.Naves)
			res.GET("/clientes", reservasH.ResolverCliente)
			res.POST("/clientes", reservasH.CrearCliente)
			res.POST("/estado", reservasH.Estado)
			res.POST("/preview", reservasH.Preview)
		}

		docs := data.Group("/documentos")
		{
			docs.GET("/operaciones", documentosH.Operaciones)
			docs.DELETE("/:id", documentosH.Eliminar)
		}

		cli := data.Group("/clientes")
		{
			cli.GET("", clientesH.Listar)
			cli.POST("", clientesH.Agregar)
			cli.PATCH("/:id", clientesH.Editar)
			cli.DELETE("", clientesH.Eliminar)
		}

		data.GET("/facturacion", gestionH.OperacionesFacturacion)
		data.PUT("/facturacion/:id", gestionH.Facturar)
		data.GET("/transportes", gestionH.OperacionesTransporte)
		data.PUT("/transportes/:id", gestionH.Transporte)

		data.GET("/dashboard", dashboardH.Resumen)
		data.GET("/catalogos/:tipo", catalogosH.Opciones)
	}

	// Swagger UI, only outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
