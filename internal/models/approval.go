package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ApprovalStatusActive    = "active"
	ApprovalStatusCompleted = "completed"
	ApprovalStatusRejected  = "rejected"

	ApprovalTypeProject = "Project"
)

// Approval is an employee's request to mark a project complete, pending admin review.
// At most one active approval exists per project (partial unique index, see repository.Migrate).
type Approval struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"approvalId"`
	Type        string     `gorm:"type:varchar(32);not null;default:'Project'" json:"type"`
	ProjectID   int64      `gorm:"not null;index" json:"projectId" validate:"required"`
	RequestedBy int64      `gorm:"not null;index" json:"requestedBy" validate:"required"`
	Status      string     `gorm:"type:varchar(16);not null;default:'active';index" json:"status" validate:"oneof=active completed rejected"`
	DecidedBy   string     `gorm:"type:varchar(128)" json:"decidedBy,omitempty"`
	Note        string     `gorm:"type:text" json:"note,omitempty"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// BeforeCreate assigns the id client side so callers see it without a RETURNING round trip.
func (a *Approval) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Type == "" {
		a.Type = ApprovalTypeProject
	}
	return nil
}

// ApprovalResolution carries the terminal state and audit fields written by a resolve.
type ApprovalResolution struct {
	Status    string
	DecidedBy string
	Note      string
	At        time.Time
}
