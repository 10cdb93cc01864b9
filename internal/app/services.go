package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/medvalidate-backend/internal/analysis"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
	"github.com/yungbote/medvalidate-backend/internal/services"
)

type Services struct {
	Auth   services.AuthService
	Purger services.IdeaPurger
	Saga   services.SagaService
	Idea   services.IdeaService
	Deep   services.DeepAnalysisService
	Report services.ReportService
}

// wireServices builds the service graph. Analysis services are only built
// when a model client is present.
func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, c Clients) Services {
	log.Info("Wiring services...")
	out := Services{
		Auth:   services.NewAuthService(log, cfg.Auth.JWTSecret),
		Purger: services.NewIdeaPurger(r.Idea, r.Score, r.Compliance, r.Insight, r.Own, r.Report),
	}
	out.Saga = services.NewSagaService(db, log, r.SagaRun, r.SagaAction, out.Purger, c.Bucket)
	if c.LLM == nil {
		return out
	}

	gen := analysis.NewGenerator(log, c.LLM)
	out.Idea = services.NewIdeaService(db, log, services.IdeaServiceDeps{
		Ideas:     r.Idea,
		Scores:    r.Score,
		Checks:    r.Compliance,
		Insights:  r.Insight,
		Reports:   r.Report,
		Purger:    out.Purger,
		Saga:      out.Saga,
		Generator: gen,
		Locker:    c.Locker,
		Bucket:    c.Bucket,
		LockTTL:   cfg.Analysis.LockTTL,
	})
	out.Deep = services.NewDeepAnalysisService(db, log, services.DeepAnalysisServiceDeps{
		Ideas:     r.Idea,
		Own:       r.Own,
		Shared:    r.Shared,
		Generator: gen,
		Locker:    c.Locker,
		LockTTL:   cfg.Analysis.LockTTL,
	})
	out.Report = services.NewReportService(db, log, services.ReportServiceDeps{
		Ideas:   r.Idea,
		Reports: r.Report,
		Saga:    out.Saga,
		Bucket:  c.Bucket,
		Idea:    out.Idea,
		Deep:    out.Deep,
	})
	return out
}
