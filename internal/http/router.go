package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/config"
	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/extractor"
	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/http/handlers"
	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/http/middleware"
	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/ingest"
	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/service"

	_ "github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/docs"
)

// Store is everything the API needs from persistence. *db.Store satisfies it.
type Store interface {
	handlers.Pinger
	service.ClientStore
	service.TemplateStore
}

func Router(cfg config.Config, store Store, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.AdminKeyHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if origins := cfg.AllowedOrigins(); len(origins) == 0 {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = origins
	}
	r.Use(cors.New(corsCfg))

	parser := extractor.New()
	clients := service.NewClientService(store, logger)
	h := &handlers.Handler{
		Store:          store,
		Clients:        clients,
		Templates:      service.NewTemplateService(store, store, logger),
		Importer:       service.NewImportService(clients, parser, logger),
		Parser:         parser,
		Files:          ingest.NewRegistry(),
		Validator:      validator.New(),
		Logger:         logger,
		MaxPasteBytes:  cfg.MaxPasteKB << 10,
		MaxUploadBytes: cfg.MaxUploadSizeMB << 20,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.POST("/parse", h.Parse)
		api.POST("/parse/file", h.ParseFile)
		api.GET("/clients", h.ClientsList)
		api.GET("/clients/stats", h.ClientStats)
		api.GET("/clients/:id", h.ClientDetails)
		api.GET("/clients/:id/message", h.ClientMessage)
		api.GET("/templates", h.TemplatesList)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.POST("/clients", h.ClientCreate)
		admin.PUT("/clients/:id", h.ClientUpdate)
		admin.DELETE("/clients/:id", h.ClientDelete)
		admin.POST("/clients/:id/toggle", h.ClientToggle)
		admin.POST("/templates", h.TemplateCreate)
		admin.PUT("/templates/:id", h.TemplateUpdate)
		admin.DELETE("/templates/:id", h.TemplateDelete)
		admin.POST("/import/spreadsheet", h.ImportSpreadsheet)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
