package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rsfire/erp/internal/api/types"
	"github.com/rsfire/erp/internal/services"
)

type ApprovalsHandler struct {
	svc services.ApprovalService
}

func NewApprovalsHandler(svc services.ApprovalService) *ApprovalsHandler {
	return &ApprovalsHandler{svc: svc}
}

// Request godoc
// @Summary Request completion of a project
// @Tags approvals
// @Accept json
// @Produce json
// @Param body body types.RequestCompletionRequest true "project and requesting employee"
// @Success 201 {object} types.APIResponse
// @Failure 404 {object} types.APIResponse
// @Failure 409 {object} types.APIResponse
// @Router /api/v1/approvals [post]
func (h *ApprovalsHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req types.RequestCompletionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	a, err := h.svc.RequestCompletion(r.Context(), req.ProjectID, req.EmployeeID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusCreated, types.ApprovalCreatedResponse{ApprovalID: a.ID.String()})
}

// Pending godoc
// @Summary Pending completion requests for the admin feed
// @Tags approvals
// @Produce json
// @Success 200 {object} types.APIResponse
// @Router /api/v1/approvals/pending [get]
func (h *ApprovalsHandler) Pending(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListPendingNotifications(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: items, Meta: &types.Meta{Total: int64(len(items))}})
}

// Resolve godoc
// @Summary Accept or reject a pending completion request
// @Tags approvals
// @Accept json
// @Produce json
// @Param body body types.ResolveRequest true "decision"
// @Success 200 {object} types.APIResponse
// @Failure 400 {object} types.APIResponse
// @Failure 404 {object} types.APIResponse
// @Failure 503 {object} types.APIResponse
// @Router /api/v1/approvals/resolve [put]
func (h *ApprovalsHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req types.ResolveRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	decision, err := services.ParseDecision(req.Decision)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.svc.Resolve(r.Context(), req.ProjectID, services.ResolveInput{
		Decision:  decision,
		DecidedBy: req.DecidedBy,
		Note:      req.Note,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	status := "ok"
	if res.Outcome == services.OutcomeAlreadyHandled {
		status = services.OutcomeAlreadyHandled
	}
	resp := types.ResolveResponse{
		Status:         status,
		ProjectID:      res.ProjectID,
		Decision:       string(res.Decision),
		ApprovalStatus: res.ApprovalStatus,
	}
	if res.ApprovalID != uuid.Nil {
		resp.ApprovalID = res.ApprovalID.String()
	}
	writeData(w, r, http.StatusOK, resp)
}
