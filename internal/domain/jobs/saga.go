package jobs

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SagaRun is the durable ledger header for an operation whose effects cannot
// all commit in one database transaction (a committed idea row awaiting its
// first analysis, an uploaded report object awaiting its row).
type SagaRun struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	OwnerUserID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_user_id"`

	// idea_submission|report_generation
	Operation string    `gorm:"column:operation;not null;uniqueIndex:idx_saga_run_subject,priority:1" json:"operation"`
	SubjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saga_run_subject,priority:2" json:"subject_id"`

	// running|succeeded|failed|compensating|compensated
	Status string `gorm:"column:status;not null;index" json:"status"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;index" json:"updated_at"`
}

func (SagaRun) TableName() string { return "saga_run" }

// SagaAction is one compensating step. Actions run in descending Seq order.
type SagaAction struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	SagaID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saga_action_saga_seq,priority:1" json:"saga_id"`
	Seq    int64     `gorm:"column:seq;type:bigint;not null;uniqueIndex:idx_saga_action_saga_seq,priority:2" json:"seq"`

	// idea_delete|object_delete
	Kind string `gorm:"column:kind;not null;index" json:"kind"`

	Payload datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload"`

	// pending|done|failed
	Status string `gorm:"column:status;not null;index" json:"status"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (SagaAction) TableName() string { return "saga_action" }
