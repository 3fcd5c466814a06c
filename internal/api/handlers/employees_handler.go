package handlers

import (
	"net/http"

	"github.com/rsfire/erp/internal/api/types"
	"github.com/rsfire/erp/internal/services"
)

type EmployeesHandler struct {
	directory services.EmployeeDirectory
}

func NewEmployeesHandler(directory services.EmployeeDirectory) *EmployeesHandler {
	return &EmployeesHandler{directory: directory}
}

func (h *EmployeesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	e, err := h.directory.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, types.EmployeeResponse{FirstName: e.FirstName, LastName: e.LastName, DisplayName: e.DisplayName()})
}
