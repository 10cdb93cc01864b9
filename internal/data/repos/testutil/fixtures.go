package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/medvalidate-backend/internal/domain"
)

func SeedIdea(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, category string) *types.Idea {
	tb.Helper()
	now := time.Now().UTC()
	idea := &types.Idea{
		ID:               uuid.New(),
		UserID:           userID,
		Title:            "Tele-therapy for rural clinics",
		Description:      "Video sessions with licensed therapists",
		ProblemStatement: "Few therapists outside major cities",
		TargetAudience:   "Rural adults",
		Category:         category,
		Domain:           "Healthcare",
		Subdomain:        "General",
		Stage:            "idea",
		Status:           types.IdeaStatusPending,
		SubmittedAt:      now,
		UpdatedAt:        now,
	}
	if err := tx.WithContext(ctx).Create(idea).Error; err != nil {
		tb.Fatalf("seed idea: %v", err)
	}
	return idea
}

func SeedScore(tb testing.TB, ctx context.Context, tx *gorm.DB, ideaID uuid.UUID, readiness int) *types.Score {
	tb.Helper()
	s := &types.Score{
		ID:                 uuid.New(),
		IdeaID:             ideaID,
		Feasibility:        readiness,
		ComplianceScore:    readiness,
		MarketDemand:       readiness,
		CulturalAcceptance: readiness,
		CostViability:      readiness,
		ReadinessScore:     readiness,
		CalculatedAt:       time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed score: %v", err)
	}
	return s
}

func PtrFloat(v float64) *float64 { return &v }

func PtrInt(v int) *int { return &v }
