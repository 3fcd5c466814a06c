package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rsfire/erp/internal/models"
	"github.com/rsfire/erp/internal/repository"
	appErr "github.com/rsfire/erp/pkg/errors"
	"github.com/rsfire/erp/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Service interface and related DTOs
type ProjectService interface {
	CreateProject(ctx context.Context, input *CreateProjectInput) (*models.Project, error)
	GetProject(ctx context.Context, projectID int64) (*models.Project, error)
	ListProjects(ctx context.Context) (*ProjectList, error)
	UpdateProject(ctx context.Context, projectID int64, input *UpdateProjectInput) (*models.Project, error)
}

type CreateProjectInput struct {
	Name           string
	Requirement    string
	ProjectValue   string
	AssignedTeamID int64
	Sector         string
	Location       string
	Contact        string
	StartDate      *time.Time
	Documents      []models.Document
}

// UpdateProjectInput carries a partial edit. Nil fields keep the stored value;
// Documents are appended to the stored list.
type UpdateProjectInput struct {
	Name           *string
	Requirement    *string
	ProjectValue   *string
	AssignedTeamID *int64
	Sector         *string
	Location       *string
	Contact        *string
	StartDate      *time.Time
	Documents      []models.Document
}

// ProjectList groups projects the way the project board renders them.
type ProjectList struct {
	ActiveProjects    []models.Project `json:"activeProjects"`
	CompletedProjects []models.Project `json:"completedProjects"`
}

type projectService struct {
	projectRepo repository.ProjectRepository
	idSeed      int64
}

func NewProjectService(projectRepo repository.ProjectRepository, idSeed int64) ProjectService {
	return &projectService{projectRepo: projectRepo, idSeed: idSeed}
}

// Ensure interfaces are satisfied at compile time
var _ ProjectService = (*projectService)(nil)

// CreateProject creates an active project with the next business id.
func (s *projectService) CreateProject(ctx context.Context, input *CreateProjectInput) (*models.Project, error) {
	logger.FromContext(ctx).Info("create project called", zap.String("name", input.Name), zap.Int64("assigned_team_id", input.AssignedTeamID))

	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Requirement) == "" || strings.TrimSpace(input.ProjectValue) == "" {
		return nil, appErr.New(appErr.CodeInvalid, "name, requirement and projectValue are required")
	}

	var docs datatypes.JSON
	if len(input.Documents) > 0 {
		b, err := json.Marshal(input.Documents)
		if err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInvalid, "invalid documents json")
		}
		docs = datatypes.JSON(b)
	}

	p := &models.Project{
		Name:           strings.TrimSpace(input.Name),
		Requirement:    input.Requirement,
		ProjectValue:   input.ProjectValue,
		AssignedTeamID: input.AssignedTeamID,
		Sector:         input.Sector,
		Location:       input.Location,
		Contact:        input.Contact,
		StartDate:      input.StartDate,
		Status:         models.ProjectStatusActive,
		Documents:      docs,
	}

	if err := s.projectRepo.CreateWithNextID(ctx, p, s.idSeed); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("project created", zap.Int64("project_id", p.ProjectID))
	return p, nil
}

func (s *projectService) GetProject(ctx context.Context, projectID int64) (*models.Project, error) {
	logger.FromContext(ctx).Info("get project", zap.Int64("project_id", projectID))
	var p models.Project
	if err := s.projectRepo.GetByProjectID(ctx, projectID, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *projectService) ListProjects(ctx context.Context) (*ProjectList, error) {
	logger.FromContext(ctx).Info("list projects")
	active, err := s.projectRepo.ListByStatus(ctx, models.ProjectStatusActive)
	if err != nil {
		return nil, err
	}
	completed, err := s.projectRepo.ListByStatus(ctx, models.ProjectStatusCompleted)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Debug("projects listed", zap.Int("active", len(active)), zap.Int("completed", len(completed)))
	return &ProjectList{ActiveProjects: active, CompletedProjects: completed}, nil
}

// UpdateProject merges the edit into the stored project. Status is never
// changed here; completion only happens through an accepted approval.
func (s *projectService) UpdateProject(ctx context.Context, projectID int64, input *UpdateProjectInput) (*models.Project, error) {
	log := logger.FromContext(ctx).With(zap.Int64("project_id", projectID))
	log.Info("update project called")

	var p models.Project
	if err := s.projectRepo.GetByProjectID(ctx, projectID, &p); err != nil {
		return nil, err
	}

	setString(&p.Name, input.Name)
	setString(&p.Requirement, input.Requirement)
	setString(&p.ProjectValue, input.ProjectValue)
	setString(&p.Sector, input.Sector)
	setString(&p.Location, input.Location)
	setString(&p.Contact, input.Contact)
	if input.AssignedTeamID != nil {
		p.AssignedTeamID = *input.AssignedTeamID
	}
	if input.StartDate != nil {
		p.StartDate = input.StartDate
	}
	if p.Name == "" || strings.TrimSpace(p.Requirement) == "" || strings.TrimSpace(p.ProjectValue) == "" {
		return nil, appErr.New(appErr.CodeInvalid, "name, requirement and projectValue cannot be empty")
	}

	if len(input.Documents) > 0 {
		docs, err := mergeDocuments(p.Documents, input.Documents)
		if err != nil {
			return nil, err
		}
		p.Documents = docs
	}

	if err := s.projectRepo.UpdateDetails(ctx, &p); err != nil {
		return nil, err
	}
	log.Info("project updated", zap.Int("documents_added", len(input.Documents)))
	return &p, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// mergeDocuments appends added to the stored list. An entry with a filename
// already on record replaces the stored one.
func mergeDocuments(stored datatypes.JSON, added []models.Document) (datatypes.JSON, error) {
	var docs []models.Document
	if len(stored) > 0 {
		if err := json.Unmarshal(stored, &docs); err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInternal, "stored documents are not valid json")
		}
	}
	for _, d := range added {
		replaced := false
		for i := range docs {
			if docs[i].Filename == d.Filename {
				docs[i] = d
				replaced = true
				break
			}
		}
		if !replaced {
			docs = append(docs, d)
		}
	}
	b, err := json.Marshal(docs)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInvalid, "invalid documents json")
	}
	return datatypes.JSON(b), nil
}
