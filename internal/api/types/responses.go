package types

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type Meta struct {
	RequestID string `json:"request_id,omitempty"`
	Total     int64  `json:"total,omitempty"`
}

type ApprovalCreatedResponse struct {
	ApprovalID string `json:"approvalId"`
}

// ResolveResponse.Status is "ok" or "already_handled".
type ResolveResponse struct {
	Status         string `json:"status"`
	ProjectID      int64  `json:"projectId"`
	Decision       string `json:"decision"`
	ApprovalID     string `json:"approvalId,omitempty"`
	ApprovalStatus string `json:"approvalStatus,omitempty"`
}

type EmployeeResponse struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DisplayName string `json:"displayName"`
}
