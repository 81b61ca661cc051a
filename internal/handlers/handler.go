package handlers

import (
	"embed"
	"html/template"
	"net/http"

	_ "esp_panel/internal/docs"
	"esp_panel/internal/logger"
	"esp_panel/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//go:embed web
var webFS embed.FS

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	gatherer prometheus.Gatherer
}

// NewHandler constructs a new HTTP handler. gatherer may be nil, in which
// case /metrics is not registered.
func NewHandler(services *service.Service, log *logger.Logger, gatherer prometheus.Gatherer) *Handler {
	return &Handler{services: services, log: log, gatherer: gatherer}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.SetHTMLTemplate(template.Must(template.New("").Funcs(pageFuncs).ParseFS(webFS, "web/index.html")))
	router.StaticFileFS("/style.css", "web/style.css", http.FS(webFS))
	router.StaticFileFS("/script.js", "web/script.js", http.FS(webFS))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)
	if h.gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
	}

	// Routes the browser page talks to.
	h.registerPanelRoutes(router)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerPanelRoutes(r *gin.Engine) {
	r.GET("/", h.index)
	r.GET("/temperature", h.temperature)
	r.GET("/toggle-led", h.toggleLed)
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		api.GET("/state", h.getState)
		// Body example: {"on":true}
		api.POST("/led", h.setLed)
		api.GET("/logs", h.getLogs)
	}
}
