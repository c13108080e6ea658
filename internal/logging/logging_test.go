package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAtInfoLevelDropsDebugRecords(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)
	log.Debug("hidden")
	log.Info("shown", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "key=value")
}

func TestNewWithDebugTrueEmitsDebugRecords(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)
	log.Debug("visible")

	assert.Contains(t, buf.String(), "visible")
	assert.True(t, strings.Contains(buf.String(), "level=DEBUG"))
}
