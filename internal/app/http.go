package app

import (
	apphttp "github.com/yungbote/medvalidate-backend/internal/http"
	httpH "github.com/yungbote/medvalidate-backend/internal/http/handlers"
	httpMW "github.com/yungbote/medvalidate-backend/internal/http/middleware"
	"github.com/yungbote/medvalidate-backend/internal/observability"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health *httpH.HealthHandler
	Idea   *httpH.IdeaHandler
	Report *httpH.ReportHandler
}

func wireHandlers(log *logger.Logger, cfg Config, services Services, ready httpH.ReadyFunc) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(cfg.Version, ready),
		Idea:   httpH.NewIdeaHandler(log, services.Idea, services.Deep),
		Report: httpH.NewReportHandler(log, services.Report),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *apphttp.Server {
	return apphttp.NewServer(
		apphttp.ServerConfig{
			Addr:              cfg.HTTP.Addr,
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
			WriteTimeout:      cfg.HTTP.WriteTimeout,
			IdleTimeout:       cfg.HTTP.IdleTimeout,
		},
		apphttp.RouterConfig{
			Log:            log,
			Metrics:        observability.Current(),
			ServiceName:    cfg.ServiceName,
			TracingEnabled: cfg.Otel.Enabled,
			CORSOrigins:    cfg.HTTP.CORSOrigins,
			AuthMiddleware: middleware.Auth,
			HealthHandler:  handlers.Health,
			IdeaHandler:    handlers.Idea,
			ReportHandler:  handlers.Report,
		},
	)
}
