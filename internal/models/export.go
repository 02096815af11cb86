package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ExportStatusPending    = "pending"
	ExportStatusProcessing = "processing"
	ExportStatusDone       = "done"
	ExportStatusFailed     = "failed"
)

// Export tracks one background bulk-export job.
type Export struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	UserID      uuid.UUID   `json:"userId" db:"user_id"`
	Status      string      `json:"status" db:"status"`
	TenantIDs   []uuid.UUID `json:"tenantIds" db:"tenant_ids"`
	Kinds       []string    `json:"kinds" db:"kinds"`
	Period      string      `json:"period,omitempty" db:"period"`
	ObjectKey   string      `json:"-" db:"object_key"`
	FileName    string      `json:"fileName,omitempty" db:"file_name"`
	Error       string      `json:"error,omitempty" db:"error"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	CompletedAt *time.Time  `json:"completedAt,omitempty" db:"completed_at"`
}
