package services

import (
	"context"

	"github.com/rsfire/erp/internal/models"
	"github.com/rsfire/erp/internal/repository"
	appErr "github.com/rsfire/erp/pkg/errors"
)

// EmployeeDirectory resolves employee ids to display names for notifications.
type EmployeeDirectory interface {
	DisplayName(ctx context.Context, employeeID int64) (string, error)
	Get(ctx context.Context, employeeID int64) (*models.Employee, error)
}

type employeeDirectory struct {
	employees repository.EmployeeRepository
}

func NewEmployeeDirectory(employees repository.EmployeeRepository) EmployeeDirectory {
	return &employeeDirectory{employees: employees}
}

// DisplayName returns "First Last", or models.UnknownEmployee when the id is not
// in the directory. Store failures are returned as-is.
func (d *employeeDirectory) DisplayName(ctx context.Context, employeeID int64) (string, error) {
	e, err := d.Get(ctx, employeeID)
	if err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return models.UnknownEmployee, nil
		}
		return "", err
	}
	return e.DisplayName(), nil
}

func (d *employeeDirectory) Get(ctx context.Context, employeeID int64) (*models.Employee, error) {
	var e models.Employee
	if err := d.employees.GetByUserID(ctx, employeeID, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
