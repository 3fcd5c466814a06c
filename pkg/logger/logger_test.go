package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitRejectsBadSettings(t *testing.T) {
	_, err := Init("loud", "json")
	assert.Error(t, err)
	_, err = Init("info", "xml")
	assert.Error(t, err)
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	base, err := initTo(&buf, "info", "json")
	require.NoError(t, err)
	t.Cleanup(func() { Replace(zap.NewNop()) })

	FromContext(context.Background()).Info("plain")
	ctx := NewContext(context.Background(), base.With(zap.String("request_id", "req-1")))
	FromContext(ctx).Info("scoped")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var plain, scoped map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &plain))
	require.NoError(t, json.Unmarshal(lines[1], &scoped))

	assert.Equal(t, "erp", plain["service"])
	assert.NotContains(t, plain, "request_id")
	assert.Equal(t, "scoped", scoped["message"])
	assert.Equal(t, "req-1", scoped["request_id"])
	assert.Contains(t, scoped["caller"], "logger_test.go")
}
