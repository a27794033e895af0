package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, LevelInfo)

	l := NewLogger("Client", "0123456789abcdef")
	l.Debug("hidden")
	l.Info("sent\n")
	l.Error("failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"[INFO] Client (01234567): sent",
		"[ERROR] Client (01234567): failed",
	}, lines)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel(" error "))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
	assert.Equal(t, "WARN", LevelWarn.String())
}

func TestLogConfig(t *testing.T) {
	t.Setenv("AIWEB_LOG_DIR", "/var/log/aiweb")
	t.Setenv("AIWEB_LOG_LEVEL", "debug")

	c := LogConfig()
	assert.Equal(t, "/var/log/aiweb", c.LogDir)
	assert.Equal(t, "debug", c.Level)
}
