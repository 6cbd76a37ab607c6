package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFallsBackToInfo(t *testing.T) {
	assert.Equal(t, logrus.InfoLevel, New("loud").GetLevel())
	assert.Equal(t, logrus.DebugLevel, New("debug").GetLevel())
}

func TestJSONFields(t *testing.T) {
	l := New("info")
	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.WithRequestID("req-1").Info("bill created")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "bill created", entry["message"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "timestamp")
}
