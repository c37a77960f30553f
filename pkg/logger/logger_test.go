package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetLevel(LevelInfo)

	SetLevel(LevelWarn)
	Info("hidden %d", 1)
	Debug("hidden %d", 2)
	assert.Empty(t, buf.String())

	Warn("low rate limit: %d remaining", 3)
	assert.Contains(t, buf.String(), "low rate limit: 3 remaining")
	assert.Contains(t, buf.String(), "[WARN]")

	buf.Reset()
	SetLevel(LevelDebug)
	Debug("event %s", "get_issues")
	assert.Contains(t, buf.String(), "event get_issues")
	assert.True(t, Enabled(LevelDebug))
}
