package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/medvalidate-backend/internal/http/handlers"
	httpMW "github.com/yungbote/medvalidate-backend/internal/http/middleware"
	"github.com/yungbote/medvalidate-backend/internal/observability"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	TracingEnabled bool
	CORSOrigins    []string

	AuthMiddleware *httpMW.AuthMiddleware
	HealthHandler  *httpH.HealthHandler
	IdeaHandler    *httpH.IdeaHandler
	ReportHandler  *httpH.ReportHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		name := cfg.ServiceName
		if name == "" {
			name = "medvalidate"
		}
		r.Use(otelgin.Middleware(name))
	}
	r.Use(httpMW.AttachTraceContext())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	protected := r.Group("/api")
	if cfg.AuthMiddleware != nil {
		protected.Use(cfg.AuthMiddleware.RequireAuth())
	}
	{
		// Ideas
		if cfg.IdeaHandler != nil {
			protected.POST("/ideas", cfg.IdeaHandler.CreateIdea)
			protected.GET("/ideas", cfg.IdeaHandler.ListIdeas)
			protected.GET("/ideas/:id", cfg.IdeaHandler.GetIdea)
			protected.DELETE("/ideas/:id", cfg.IdeaHandler.DeleteIdea)
			protected.POST("/ideas/:id/reanalyze", cfg.IdeaHandler.ReanalyzeIdea)
			protected.POST("/ideas/:id/full-analysis", cfg.IdeaHandler.RunDeepAnalysis)
			protected.GET("/ideas/:id/full-analysis", cfg.IdeaHandler.GetFullAnalysis)
		}

		// Reports
		if cfg.ReportHandler != nil {
			protected.GET("/ideas/:id/report", cfg.ReportHandler.GetOrCreateReport)
			protected.DELETE("/reports/:id", cfg.ReportHandler.DeleteReport)
		}
	}

	return r
}
