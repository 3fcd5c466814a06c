package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	appErr "github.com/rsfire/erp/pkg/errors"
	"gorm.io/gorm"
)

// BaseRepository defines common CRUD operations.
type BaseRepository[T any] interface {
	Create(ctx context.Context, obj *T) error
	GetByID(ctx context.Context, id any, dest *T) error
	// Update saves every column of obj except the omitted ones.
	Update(ctx context.Context, obj *T, omit ...string) error
}

type baseRepository[T any] struct {
	db *gorm.DB
}

func NewBaseRepository[T any](db *gorm.DB) BaseRepository[T] {
	return &baseRepository[T]{db: db}
}

func (r *baseRepository[T]) Create(ctx context.Context, obj *T) error {
	if err := r.db.WithContext(ctx).Create(obj).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return appErr.Wrap(err, appErr.CodeConflict, "entity already exists")
		}
		return storeError(err, "create entity failed")
	}
	return nil
}

func (r *baseRepository[T]) GetByID(ctx context.Context, id any, dest *T) error {
	if err := r.db.WithContext(ctx).First(dest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "entity not found")
		}
		return storeError(err, "get entity failed")
	}
	return nil
}

func (r *baseRepository[T]) Update(ctx context.Context, obj *T, omit ...string) error {
	if err := r.db.WithContext(ctx).Omit(omit...).Save(obj).Error; err != nil {
		return storeError(err, "update entity failed")
	}
	return nil
}

// storeError classifies a driver error that is neither "no rows" nor a
// constraint violation. Postgres connection (08), resource (53) and operator
// intervention (57, including 57014 statement timeout) errors are unavailable,
// other Postgres errors are internal. Everything else (dial failures, deadlines,
// a closed pool) is unavailable so callers never mistake it for a missing record.
func storeError(err error, message string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "08"), strings.HasPrefix(pgErr.Code, "53"), strings.HasPrefix(pgErr.Code, "57"):
			return appErr.Wrap(err, appErr.CodeUnavailable, message)
		default:
			return appErr.Wrap(err, appErr.CodeInternal, message)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return appErr.Wrap(err, appErr.CodeUnavailable, message+": store timeout")
	}
	return appErr.Wrap(err, appErr.CodeUnavailable, message)
}
