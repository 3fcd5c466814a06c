package repository

import (
	"github.com/rsfire/erp/internal/models"
	"gorm.io/gorm"
)

// registerModels returns all models that need migration
func registerModels() []interface{} {
	return []interface{}{
		&models.Employee{},
		&models.Project{},
		&models.Approval{},
	}
}

// Migrate creates or updates the schema and applies the custom indexes
// AutoMigrate can't express.
func Migrate(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		enableUUIDExtension,
		autoMigrate,
		addSingleActiveApprovalIndex,
	}
	for _, migration := range migrations {
		if err := migration(db); err != nil {
			return err
		}
	}
	return nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(registerModels()...)
}

// enableUUIDExtension ensures gen_random_uuid() is available
func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error
}

// addSingleActiveApprovalIndex allows at most one active approval per project.
func addSingleActiveApprovalIndex(db *gorm.DB) error {
	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_approvals_one_active_per_project
		ON approvals(project_id)
		WHERE status = 'active'
	`).Error
}
