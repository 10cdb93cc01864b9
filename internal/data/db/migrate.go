package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/medvalidate-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(types.AllModels()...)
}

// EnsureIdeaIndexes adds the composite indexes the read paths rely on.
// The unique keys live in struct tags.
func EnsureIdeaIndexes(db *gorm.DB) error {
	stmts := []string{
		`CREATE INDEX IF NOT EXISTS idx_startup_ideas_user_submitted ON startup_ideas(user_id, submitted_at)`,
		`CREATE INDEX IF NOT EXISTS idx_compliance_checks_idea_checked ON compliance_checks(idea_id, checked_at)`,
		`CREATE INDEX IF NOT EXISTS idx_saga_run_status_updated ON saga_run(status, updated_at)`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("ensure index: %w", err)
		}
	}
	return nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...", "driver", s.driver)
	if s.driver == DriverPostgres {
		if err := s.db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
			return fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
		}
	}
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsureIdeaIndexes(s.db); err != nil {
		return err
	}
	s.log.Info("Auto migration complete")
	return nil
}
