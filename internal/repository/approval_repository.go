package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rsfire/erp/internal/models"
	appErr "github.com/rsfire/erp/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApprovalRepository interface {
	BaseRepository[models.Approval]
	CreateActive(ctx context.Context, projectID, requestedBy int64) (*models.Approval, error)
	ListActive(ctx context.Context) ([]models.Approval, error)
	GetActiveByProject(ctx context.Context, projectID int64, dest *models.Approval) error
	Resolve(ctx context.Context, projectID int64, res models.ApprovalResolution) error
	AcceptCompletion(ctx context.Context, projectID int64, res models.ApprovalResolution) (*models.Approval, error)
}

type approvalRepository struct {
	BaseRepository[models.Approval]
	db *gorm.DB
}

func NewApprovalRepository(db *gorm.DB) ApprovalRepository {
	return &approvalRepository{BaseRepository: NewBaseRepository[models.Approval](db), db: db}
}

func duplicateRequest(projectID int64) error {
	return appErr.Newf(appErr.CodeDuplicateRequest, "project %d already has a pending approval", projectID).
		WithMeta("project_id", projectID)
}

// CreateActive inserts a pending approval. The pre-check gives a clean error in
// the common case; the partial unique index catches concurrent inserts.
func (r *approvalRepository) CreateActive(ctx context.Context, projectID, requestedBy int64) (*models.Approval, error) {
	var pending int64
	if err := r.db.WithContext(ctx).Model(&models.Approval{}).
		Where("project_id = ? AND status = ?", projectID, models.ApprovalStatusActive).
		Count(&pending).Error; err != nil {
		return nil, storeError(err, "check pending approvals failed")
	}
	if pending > 0 {
		return nil, duplicateRequest(projectID)
	}

	a := &models.Approval{
		Type:        models.ApprovalTypeProject,
		ProjectID:   projectID,
		RequestedBy: requestedBy,
		Status:      models.ApprovalStatusActive,
	}
	if err := r.Create(ctx, a); err != nil {
		if appErr.IsCode(err, appErr.CodeConflict) {
			return nil, duplicateRequest(projectID)
		}
		return nil, err
	}
	return a, nil
}

func (r *approvalRepository) ListActive(ctx context.Context) ([]models.Approval, error) {
	out := []models.Approval{}
	if err := r.db.WithContext(ctx).Where("status = ?", models.ApprovalStatusActive).
		Order("created_at ASC").Order("id ASC").Find(&out).Error; err != nil {
		return nil, storeError(err, "list active approvals failed")
	}
	return out, nil
}

func (r *approvalRepository) GetActiveByProject(ctx context.Context, projectID int64, dest *models.Approval) error {
	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND status = ?", projectID, models.ApprovalStatusActive).
		First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.Newf(appErr.CodeNotFound, "no pending approval for project %d", projectID)
		}
		return storeError(err, "get pending approval failed")
	}
	return nil
}

// Resolve moves the project's active approval to a terminal status.
func (r *approvalRepository) Resolve(ctx context.Context, projectID int64, res models.ApprovalResolution) error {
	if res.Status != models.ApprovalStatusCompleted && res.Status != models.ApprovalStatusRejected {
		return appErr.Newf(appErr.CodeInvalid, "invalid approval status %q", res.Status)
	}
	upd := r.db.WithContext(ctx).Model(&models.Approval{}).
		Where("project_id = ? AND status = ?", projectID, models.ApprovalStatusActive).
		Updates(resolutionColumns(res))
	if upd.Error != nil {
		return storeError(upd.Error, "resolve approval failed")
	}
	if upd.RowsAffected == 0 {
		return appErr.Newf(appErr.CodeNotFound, "no pending approval for project %d", projectID)
	}
	return nil
}

// AcceptCompletion completes the project and its active approval in one
// transaction. The approval row is locked first, so a concurrent Resolve waits
// and then finds nothing active. Any failure rolls both writes back.
func (r *approvalRepository) AcceptCompletion(ctx context.Context, projectID int64, res models.ApprovalResolution) (*models.Approval, error) {
	res.Status = models.ApprovalStatusCompleted
	cols := resolutionColumns(res)

	var accepted models.Approval
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("project_id = ? AND status = ?", projectID, models.ApprovalStatusActive).
			First(&accepted).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return appErr.Newf(appErr.CodeNotFound, "no pending approval for project %d", projectID)
			}
			return storeError(err, "lock pending approval failed")
		}

		if err := markProjectCompleted(tx, projectID); err != nil {
			return err
		}

		upd := tx.Model(&models.Approval{}).
			Where("id = ? AND status = ?", accepted.ID, models.ApprovalStatusActive).
			Updates(cols)
		if upd.Error != nil {
			return storeError(upd.Error, "resolve approval failed")
		}
		if upd.RowsAffected != 1 {
			return appErr.Newf(appErr.CodeConflict, "approval %s changed during accept", accepted.ID)
		}
		return nil
	})
	if err != nil {
		if appErr.CodeOf(err) != appErr.CodeUnknown {
			return nil, err
		}
		return nil, storeError(err, "accept completion failed")
	}

	at := cols["resolved_at"].(time.Time)
	accepted.Status = models.ApprovalStatusCompleted
	accepted.DecidedBy = res.DecidedBy
	accepted.Note = res.Note
	accepted.ResolvedAt = &at
	return &accepted, nil
}

func resolutionColumns(res models.ApprovalResolution) map[string]any {
	at := res.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	return map[string]any{
		"status":      res.Status,
		"decided_by":  res.DecidedBy,
		"note":        res.Note,
		"resolved_at": at,
	}
}
