package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
)

// Project represents a unit of client work tracked through active/completed status.
// ProjectID is the business identifier used by every API; ID is the surrogate key.
type Project struct {
	ID             uint           `gorm:"primaryKey" json:"-"`
	ProjectID      int64          `gorm:"uniqueIndex;not null" json:"projectId"`
	Name           string         `gorm:"not null" json:"name" validate:"required"`
	Requirement    string         `gorm:"type:text;not null" json:"requirement" validate:"required"`
	ProjectValue   string         `gorm:"type:varchar(64);not null" json:"projectValue" validate:"required"`
	AssignedTeamID int64          `gorm:"index" json:"assignedTeamId"`
	Sector         string         `gorm:"type:varchar(64)" json:"sector"`
	Location       string         `json:"location"`
	Contact        string         `json:"contact"`
	StartDate      *time.Time     `json:"date,omitempty"`
	Status         string         `gorm:"type:varchar(16);not null;default:'active';index" json:"status" validate:"oneof=active completed"`
	Documents      datatypes.JSON `gorm:"type:jsonb" json:"documents,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// Document is the metadata kept for an uploaded project file. Storage itself lives elsewhere.
type Document struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Path         string `json:"path"`
}

func (p *Project) IsActive() bool { return p.Status == ProjectStatusActive }
