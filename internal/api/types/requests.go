package types

import "time"

type RequestCompletionRequest struct {
	ProjectID  int64 `json:"projectId" validate:"gt=0"`
	EmployeeID int64 `json:"employeeId" validate:"gt=0"`
}

// ResolveRequest carries the admin decision. Decision is parsed by the service
// so that an unknown value maps to invalid_decision rather than a validation error.
type ResolveRequest struct {
	ProjectID int64  `json:"projectId" validate:"gt=0"`
	Decision  string `json:"decision" validate:"required"`
	DecidedBy string `json:"decidedBy" validate:"max=128"`
	Note      string `json:"note" validate:"max=2000"`
}

type DocumentRequest struct {
	Filename     string `json:"filename" validate:"required"`
	OriginalName string `json:"originalName"`
	Path         string `json:"path"`
}

type ProjectCreateRequest struct {
	Name           string            `json:"name" validate:"required"`
	Requirement    string            `json:"requirement" validate:"required"`
	ProjectValue   string            `json:"projectValue" validate:"required"`
	AssignedTeamID int64             `json:"assignedTeamId" validate:"gte=0"`
	Sector         string            `json:"sector"`
	Location       string            `json:"location"`
	Contact        string            `json:"contact"`
	Date           *time.Time        `json:"date"`
	Documents      []DocumentRequest `json:"documents" validate:"dive"`
}

// ProjectUpdateRequest is a partial edit; omitted fields keep their stored
// value. Status has no field here.
type ProjectUpdateRequest struct {
	Name           *string           `json:"name"`
	Requirement    *string           `json:"requirement"`
	ProjectValue   *string           `json:"projectValue"`
	AssignedTeamID *int64            `json:"assignedTeamId"`
	Sector         *string           `json:"sector"`
	Location       *string           `json:"location"`
	Contact        *string           `json:"contact"`
	Date           *time.Time        `json:"date"`
	Documents      []DocumentRequest `json:"documents" validate:"dive"`
}
