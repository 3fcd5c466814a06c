package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	ProjectID int64  `json:"projectId" validate:"gt=0"`
	Decision  string `json:"decision" validate:"required"`
}

func TestMessageUsesJSONNames(t *testing.T) {
	err := New().Struct(sample{})
	assert.Error(t, err)
	msg := Message(err)
	assert.Contains(t, msg, "projectId must be greater than 0")
	assert.Contains(t, msg, "decision is required")

	assert.NoError(t, New().Struct(sample{ProjectID: 1042, Decision: "accept"}))
}
