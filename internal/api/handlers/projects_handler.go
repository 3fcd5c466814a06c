package handlers

import (
	"net/http"

	"github.com/rsfire/erp/internal/api/types"
	"github.com/rsfire/erp/internal/models"
	"github.com/rsfire/erp/internal/services"
	appErr "github.com/rsfire/erp/pkg/errors"
)

type ProjectsHandler struct {
	svc services.ProjectService
}

func NewProjectsHandler(svc services.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{svc: svc}
}

// List returns projects split into active and completed.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListProjects(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, list)
}

func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.ProjectCreateRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.svc.CreateProject(r.Context(), &services.CreateProjectInput{
		Name:           req.Name,
		Requirement:    req.Requirement,
		ProjectValue:   req.ProjectValue,
		AssignedTeamID: req.AssignedTeamID,
		Sector:         req.Sector,
		Location:       req.Location,
		Contact:        req.Contact,
		StartDate:      req.Date,
		Documents:      toDocuments(req.Documents),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusCreated, p)
}

// Update merges the body into the stored project and returns the result.
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req types.ProjectUpdateRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.AssignedTeamID != nil && *req.AssignedTeamID < 0 {
		writeError(w, r, appErr.New(appErr.CodeInvalid, "assignedTeamId must be 0 or greater"))
		return
	}
	p, err := h.svc.UpdateProject(r.Context(), id, &services.UpdateProjectInput{
		Name:           req.Name,
		Requirement:    req.Requirement,
		ProjectValue:   req.ProjectValue,
		AssignedTeamID: req.AssignedTeamID,
		Sector:         req.Sector,
		Location:       req.Location,
		Contact:        req.Contact,
		StartDate:      req.Date,
		Documents:      toDocuments(req.Documents),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, p)
}

func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.svc.GetProject(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, p)
}

func toDocuments(in []types.DocumentRequest) []models.Document {
	docs := make([]models.Document, 0, len(in))
	for _, d := range in {
		docs = append(docs, models.Document{Filename: d.Filename, OriginalName: d.OriginalName, Path: d.Path})
	}
	return docs
}
