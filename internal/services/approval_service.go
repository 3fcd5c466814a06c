package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rsfire/erp/internal/models"
	"github.com/rsfire/erp/internal/repository"
	appErr "github.com/rsfire/erp/pkg/errors"
	"github.com/rsfire/erp/pkg/logger"
	"go.uber.org/zap"
)

// ApprovalService owns the project-completion handshake: an employee requests
// completion, an admin accepts or rejects from the pending feed.
type ApprovalService interface {
	RequestCompletion(ctx context.Context, projectID, employeeID int64) (*models.Approval, error)
	ListPendingNotifications(ctx context.Context) ([]Notification, error)
	Resolve(ctx context.Context, projectID int64, input ResolveInput) (*Resolution, error)
}

type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// ParseDecision accepts "accept"/"reject" in any case.
func ParseDecision(s string) (Decision, error) {
	switch d := Decision(strings.ToLower(strings.TrimSpace(s))); d {
	case DecisionAccept, DecisionReject:
		return d, nil
	}
	return "", appErr.Newf(appErr.CodeInvalidDecision, "decision must be accept or reject, got %q", s)
}

const (
	OutcomeResolved       = "resolved"
	OutcomeAlreadyHandled = "already_handled"
)

type ResolveInput struct {
	Decision  Decision
	DecidedBy string
	Note      string
}

// Resolution reports what Resolve did. ApprovalID and ApprovalStatus are set
// only when Outcome is resolved; an already handled accept leaves them zero.
type Resolution struct {
	ProjectID      int64     `json:"projectId"`
	Decision       Decision  `json:"decision"`
	Outcome        string    `json:"outcome"`
	ApprovalID     uuid.UUID `json:"approvalId"`
	ApprovalStatus string    `json:"approvalStatus,omitempty"`
}

// Notification is a pending approval enriched with display names.
type Notification struct {
	ApprovalID   uuid.UUID `json:"approvalId"`
	ProjectID    int64     `json:"projectId"`
	ProjectName  string    `json:"projectName"`
	EmployeeName string    `json:"employeeName"`
	RequestedAt  time.Time `json:"requestedAt"`
}

type ApprovalOptions struct {
	// StoreTimeout bounds every workflow call; zero leaves the caller's deadline alone.
	StoreTimeout time.Duration
	// EnforceAssignment restricts completion requests to the project's assigned team.
	EnforceAssignment bool
}

type approvalService struct {
	projects  repository.ProjectRepository
	approvals repository.ApprovalRepository
	directory EmployeeDirectory
	opts      ApprovalOptions
	now       func() time.Time
}

func NewApprovalService(projects repository.ProjectRepository, approvals repository.ApprovalRepository, directory EmployeeDirectory, opts ApprovalOptions) ApprovalService {
	return &approvalService{projects: projects, approvals: approvals, directory: directory, opts: opts, now: time.Now}
}

var _ ApprovalService = (*approvalService)(nil)

func (s *approvalService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.StoreTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.opts.StoreTimeout)
}

func (s *approvalService) RequestCompletion(ctx context.Context, projectID, employeeID int64) (*models.Approval, error) {
	logger.FromContext(ctx).Info("request completion", zap.Int64("project_id", projectID), zap.Int64("employee_id", employeeID))
	if projectID <= 0 || employeeID <= 0 {
		return nil, appErr.New(appErr.CodeInvalid, "projectId and employeeId must be positive")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var p models.Project
	if err := s.projects.GetByProjectID(ctx, projectID, &p); err != nil {
		return nil, err
	}
	if !p.IsActive() {
		return nil, appErr.Newf(appErr.CodeAlreadyCompleted, "project %d is already completed", projectID)
	}
	if s.opts.EnforceAssignment && p.AssignedTeamID != employeeID {
		return nil, appErr.Newf(appErr.CodeForbidden, "employee %d is not assigned to project %d", employeeID, projectID)
	}

	a, err := s.approvals.CreateActive(ctx, projectID, employeeID)
	if err != nil {
		logger.FromContext(ctx).Warn("completion request refused", zap.Int64("project_id", projectID), zap.Error(err))
		return nil, err
	}

	logger.FromContext(ctx).Info("approval created", zap.String("approval_id", a.ID.String()), zap.Int64("project_id", projectID))
	return a, nil
}

// ListPendingNotifications returns active approvals whose project still exists
// and is still active, in approval store order. Anything else is stale and left out.
func (s *approvalService) ListPendingNotifications(ctx context.Context) ([]Notification, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	pending, err := s.approvals.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	projects := make(map[int64]*models.Project, len(pending))
	out := make([]Notification, 0, len(pending))
	for _, a := range pending {
		if a.Status != models.ApprovalStatusActive {
			continue
		}

		p, seen := projects[a.ProjectID]
		if !seen {
			var loaded models.Project
			if err := s.projects.GetByProjectID(ctx, a.ProjectID, &loaded); err != nil {
				if !appErr.IsCode(err, appErr.CodeNotFound) {
					return nil, err
				}
				logger.FromContext(ctx).Debug("dropping approval for missing project", zap.String("approval_id", a.ID.String()), zap.Int64("project_id", a.ProjectID))
			} else {
				p = &loaded
			}
			projects[a.ProjectID] = p
		}
		if p == nil || !p.IsActive() {
			continue
		}

		name, err := s.directory.DisplayName(ctx, a.RequestedBy)
		if err != nil {
			return nil, err
		}
		out = append(out, Notification{
			ApprovalID:   a.ID,
			ProjectID:    p.ProjectID,
			ProjectName:  p.Name,
			EmployeeName: name,
			RequestedAt:  a.CreatedAt,
		})
	}
	return out, nil
}

func (s *approvalService) Resolve(ctx context.Context, projectID int64, input ResolveInput) (*Resolution, error) {
	logger.FromContext(ctx).Info("resolve approval", zap.Int64("project_id", projectID), zap.String("decision", string(input.Decision)))
	if projectID <= 0 {
		return nil, appErr.New(appErr.CodeInvalid, "projectId must be positive")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	switch input.Decision {
	case DecisionAccept:
		return s.accept(ctx, projectID, input)
	case DecisionReject:
		return s.reject(ctx, projectID, input)
	}
	return nil, appErr.Newf(appErr.CodeInvalidDecision, "decision must be accept or reject, got %q", input.Decision)
}

// accept completes the project and resolves its pending approval atomically.
// A store failure rolls both back, leaving the approval active for a retry.
func (s *approvalService) accept(ctx context.Context, projectID int64, input ResolveInput) (*Resolution, error) {
	log := logger.FromContext(ctx).With(zap.Int64("project_id", projectID))

	accepted, err := s.approvals.AcceptCompletion(ctx, projectID, s.resolution(models.ApprovalStatusCompleted, input))
	switch {
	case err == nil:
	case appErr.IsCode(err, appErr.CodeAlreadyCompleted):
		log.Info("accept already handled")
		return s.alreadyHandled(projectID), nil
	case appErr.IsCode(err, appErr.CodeNotFound):
		// No pending approval: fine if someone already completed the project.
		var p models.Project
		if perr := s.projects.GetByProjectID(ctx, projectID, &p); perr != nil {
			return nil, perr
		}
		if !p.IsActive() {
			log.Info("accept already handled")
			return s.alreadyHandled(projectID), nil
		}
		return nil, err
	default:
		log.Error("accept failed, project and approval unchanged", zap.Error(err))
		return nil, err
	}

	log.Info("approval accepted", zap.String("approval_id", accepted.ID.String()))
	return &Resolution{
		ProjectID:      projectID,
		Decision:       DecisionAccept,
		Outcome:        OutcomeResolved,
		ApprovalID:     accepted.ID,
		ApprovalStatus: accepted.Status,
	}, nil
}

func (s *approvalService) alreadyHandled(projectID int64) *Resolution {
	return &Resolution{ProjectID: projectID, Decision: DecisionAccept, Outcome: OutcomeAlreadyHandled}
}

// reject closes the approval as rejected and leaves the project untouched.
func (s *approvalService) reject(ctx context.Context, projectID int64, input ResolveInput) (*Resolution, error) {
	var p models.Project
	if err := s.projects.GetByProjectID(ctx, projectID, &p); err != nil {
		return nil, err
	}

	var pending models.Approval
	if err := s.approvals.GetActiveByProject(ctx, projectID, &pending); err != nil {
		return nil, err
	}
	if err := s.approvals.Resolve(ctx, projectID, s.resolution(models.ApprovalStatusRejected, input)); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("approval rejected", zap.Int64("project_id", projectID), zap.String("approval_id", pending.ID.String()))
	return &Resolution{
		ProjectID:      projectID,
		Decision:       DecisionReject,
		Outcome:        OutcomeResolved,
		ApprovalID:     pending.ID,
		ApprovalStatus: models.ApprovalStatusRejected,
	}, nil
}

func (s *approvalService) resolution(status string, input ResolveInput) models.ApprovalResolution {
	decidedBy := strings.TrimSpace(input.DecidedBy)
	if decidedBy == "" {
		decidedBy = "admin"
	}
	return models.ApprovalResolution{
		Status:    status,
		DecidedBy: decidedBy,
		Note:      strings.TrimSpace(input.Note),
		At:        s.now().UTC(),
	}
}
