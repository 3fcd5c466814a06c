package repository

import (
	"context"
	"errors"

	"github.com/rsfire/erp/internal/models"
	appErr "github.com/rsfire/erp/pkg/errors"
	"gorm.io/gorm"
)

// maxIDAttempts bounds retries when two creates race for the same project id.
const maxIDAttempts = 3

type ProjectRepository interface {
	BaseRepository[models.Project]
	GetByProjectID(ctx context.Context, projectID int64, dest *models.Project) error
	ListByStatus(ctx context.Context, status string) ([]models.Project, error)
	ListActive(ctx context.Context) ([]models.Project, error)
	MarkCompleted(ctx context.Context, projectID int64) error
	CreateWithNextID(ctx context.Context, p *models.Project, seed int64) error
	UpdateDetails(ctx context.Context, p *models.Project) error
}

// projectImmutableColumns are never written by UpdateDetails. Status only
// changes through MarkCompleted.
var projectImmutableColumns = []string{"status", "project_id", "created_at"}

type projectRepository struct {
	BaseRepository[models.Project]
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{BaseRepository: NewBaseRepository[models.Project](db), db: db}
}

func (r *projectRepository) GetByProjectID(ctx context.Context, projectID int64, dest *models.Project) error {
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.Newf(appErr.CodeNotFound, "project %d not found", projectID)
		}
		return storeError(err, "get project failed")
	}
	return nil
}

func (r *projectRepository) ListByStatus(ctx context.Context, status string) ([]models.Project, error) {
	out := []models.Project{}
	if err := r.db.WithContext(ctx).Where("status = ?", status).Order("project_id ASC").Find(&out).Error; err != nil {
		return nil, storeError(err, "list projects by status failed")
	}
	return out, nil
}

func (r *projectRepository) ListActive(ctx context.Context) ([]models.Project, error) {
	return r.ListByStatus(ctx, models.ProjectStatusActive)
}

// MarkCompleted moves an active project to completed with a single conditional
// update. When nothing matched, a lookup tells a missing project apart from one
// that was already completed.
func (r *projectRepository) MarkCompleted(ctx context.Context, projectID int64) error {
	return markProjectCompleted(r.db.WithContext(ctx), projectID)
}

// markProjectCompleted runs on db, which may be a transaction.
func markProjectCompleted(db *gorm.DB, projectID int64) error {
	res := db.Model(&models.Project{}).
		Where("project_id = ? AND status = ?", projectID, models.ProjectStatusActive).
		Update("status", models.ProjectStatusCompleted)
	if res.Error != nil {
		return storeError(res.Error, "mark project completed failed")
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var p models.Project
	if err := db.Where("project_id = ?", projectID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.Newf(appErr.CodeNotFound, "project %d not found", projectID)
		}
		return storeError(err, "get project failed")
	}
	return appErr.Newf(appErr.CodeAlreadyCompleted, "project %d is already completed", projectID)
}

// UpdateDetails saves the descriptive fields of an existing project. Status,
// business id and creation time are left as stored.
func (r *projectRepository) UpdateDetails(ctx context.Context, p *models.Project) error {
	if p.ID == 0 {
		return appErr.Newf(appErr.CodeInvalid, "project %d has no primary key", p.ProjectID)
	}
	return r.Update(ctx, p, projectImmutableColumns...)
}

// CreateWithNextID assigns ProjectID = max(project_id)+1, or seed+1 for the
// first project, and inserts. A unique violation means a concurrent create took
// the id; the allocation is retried a bounded number of times.
func (r *projectRepository) CreateWithNextID(ctx context.Context, p *models.Project, seed int64) error {
	if p.Status == "" {
		p.Status = models.ProjectStatusActive
	}
	var lastErr error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		var maxID int64
		if err := r.db.WithContext(ctx).Model(&models.Project{}).
			Select("COALESCE(MAX(project_id), ?)", seed).Scan(&maxID).Error; err != nil {
			return storeError(err, "compute next project id failed")
		}
		if maxID < seed {
			maxID = seed
		}
		p.ID = 0
		p.ProjectID = maxID + 1

		err := r.Create(ctx, p)
		if err == nil {
			return nil
		}
		if !appErr.IsCode(err, appErr.CodeConflict) {
			return err
		}
		lastErr = err
	}
	return appErr.Wrap(lastErr, appErr.CodeConflict, "could not allocate project id")
}
