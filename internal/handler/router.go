package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/scolarite-dao/api/swagger"
	"github.com/noah-isme/scolarite-dao/internal/middleware"
	"github.com/noah-isme/scolarite-dao/internal/repository"
	"github.com/noah-isme/scolarite-dao/internal/service"
	"github.com/noah-isme/scolarite-dao/pkg/config"
	"github.com/noah-isme/scolarite-dao/pkg/logger"
	corsmiddleware "github.com/noah-isme/scolarite-dao/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/scolarite-dao/pkg/middleware/requestid"
	"github.com/noah-isme/scolarite-dao/pkg/response"
)

// RouterDeps carries what the mock backend router needs.
type RouterDeps struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *service.MetricsService
	Stores  repository.Set
	Ready   func(ctx context.Context) error
}

// NewRouter wires the mock backend routes.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	logr := deps.Logger
	if logr == nil {
		logr = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.Metrics, "/metrics"))

	render := response.NewRenderer(response.Options{
		PascalCase: cfg.Mock.PascalCase,
		Wrap:       cfg.Mock.WrapResponses,
	})
	validate := service.NewValidator()

	parcours := NewParcoursHandler(service.NewParcoursService(deps.Stores.Parcours, validate, logr), render)
	etudiants := NewEtudiantHandler(service.NewEtudiantService(deps.Stores.Etudiants, validate, logr), render)
	ues := NewUeHandler(service.NewUeService(deps.Stores.UEs, validate, logr), render)
	notes := NewNoteHandler(service.NewNoteService(deps.Stores.Notes, validate, logr), render)
	ops := NewMetricsHandler(deps.Metrics, deps.Ready)

	r.GET("/health", ops.Health)
	r.GET("/ready", ops.Ready)
	r.GET("/metrics", ops.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	{
		group := api.Group("/parcours")
		group.GET("", parcours.List)
		group.POST("", parcours.Create)
		group.GET("/:id", parcours.Get)
		group.PUT("/:id", parcours.Update)
		group.DELETE("/:id", parcours.Delete)
	}
	{
		group := api.Group("/etudiants")
		group.GET("", etudiants.List)
		group.POST("", etudiants.Create)
		group.GET("/:id", etudiants.Get)
		group.PUT("/:id", etudiants.Update)
		group.DELETE("/:id", etudiants.Delete)
	}
	{
		group := api.Group("/ues")
		group.GET("", ues.List)
		group.POST("", ues.Create)
		group.GET("/:id", ues.Get)
		group.PUT("/:id", ues.Update)
		group.DELETE("/:id", ues.Delete)
	}
	{
		group := api.Group("/notes")
		group.GET("", notes.List)
		group.POST("", notes.Create)
		group.GET("/ue/:ueId", notes.ListByUE)
		group.GET("/etudiant/:etudiantId", notes.ListByEtudiant)
		group.GET("/etudiant/:etudiantId/ue/:ueId", notes.Find)
		group.GET("/:id", notes.Get)
		group.PUT("/:id", notes.Update)
		group.DELETE("/:id", notes.Delete)
	}

	return r
}
