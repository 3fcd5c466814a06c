package models

import (
	"strings"
	"time"
)

// UnknownEmployee is rendered when a requester cannot be found in the directory.
const UnknownEmployee = "Unknown Employee"

// Employee is a directory entry. The workflow only reads it for display names.
type Employee struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	UserID     int64     `gorm:"uniqueIndex;not null" json:"userId" validate:"required"`
	FirstName  string    `gorm:"not null" json:"firstName" validate:"required"`
	LastName   string    `gorm:"not null" json:"lastName" validate:"required"`
	Position   string    `json:"position"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (e *Employee) DisplayName() string {
	name := strings.TrimSpace(e.FirstName + " " + e.LastName)
	if name == "" {
		return UnknownEmployee
	}
	return name
}
