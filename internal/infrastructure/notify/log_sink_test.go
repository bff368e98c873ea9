package notify_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supply-tracker/internal/infrastructure/notify"
)

func TestLogActivityNotifier_IncluyeMeta(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewLogActivityNotifier(zerolog.New(&buf))

	require.NoError(t, n.Record(context.Background(), "request.approved", map[string]any{"requestId": "REQ-001"}))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "request.approved", line["action"])
	assert.Equal(t, "REQ-001", line["requestId"])
	assert.Equal(t, "activity", line["sink"])
}

func TestLogAlertSink_NivelPorSeveridad(t *testing.T) {
	var buf bytes.Buffer
	s := notify.NewLogAlertSink(zerolog.New(&buf))

	require.NoError(t, s.Raise(context.Background(), "Stock bajo", "PAP-001 agotado", "danger", "exclamation-triangle"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "PAP-001 agotado", line["message"])
	assert.Equal(t, "exclamation-triangle", line["icon"])
}
