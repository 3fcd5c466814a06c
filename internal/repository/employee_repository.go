package repository

import (
	"context"
	"errors"

	"github.com/rsfire/erp/internal/models"
	appErr "github.com/rsfire/erp/pkg/errors"
	"gorm.io/gorm"
)

type EmployeeRepository interface {
	BaseRepository[models.Employee]
	GetByUserID(ctx context.Context, userID int64, dest *models.Employee) error
}

type employeeRepository struct {
	BaseRepository[models.Employee]
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{BaseRepository: NewBaseRepository[models.Employee](db), db: db}
}

func (r *employeeRepository) GetByUserID(ctx context.Context, userID int64, dest *models.Employee) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.Newf(appErr.CodeNotFound, "employee %d not found", userID)
		}
		return storeError(err, "get employee failed")
	}
	return nil
}
