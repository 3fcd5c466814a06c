package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	appErr "github.com/rsfire/erp/pkg/errors"
)

func TestStoreErrorClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want appErr.Code
	}{
		{"connection failure", &pgconn.PgError{Code: "08006"}, appErr.CodeUnavailable},
		{"too many connections", &pgconn.PgError{Code: "53300"}, appErr.CodeUnavailable},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, appErr.CodeUnavailable},
		{"statement timeout", &pgconn.PgError{Code: "57014"}, appErr.CodeUnavailable},
		{"undefined column", &pgconn.PgError{Code: "42703"}, appErr.CodeInternal},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), appErr.CodeUnavailable},
		{"dial error", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), appErr.CodeUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := storeError(tc.err, "op failed")
			assert.Equal(t, tc.want, appErr.CodeOf(err))
			assert.False(t, appErr.IsCode(err, appErr.CodeNotFound))
			assert.True(t, errors.Is(err, tc.err))
		})
	}
}
