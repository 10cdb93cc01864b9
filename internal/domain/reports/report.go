package reports

import (
	"time"

	"github.com/google/uuid"
)

// Report points at the stored PDF export for an idea. At most one per idea.
type Report struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	IdeaID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reports_idea_id" json:"idea_id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	FileKey string `gorm:"column:file_key;not null" json:"file_key"`
	FileURL string `gorm:"column:file_url;not null" json:"file_url"`

	GeneratedAt time.Time `gorm:"column:generated_at;not null" json:"generated_at"`
}

func (Report) TableName() string { return "reports" }
