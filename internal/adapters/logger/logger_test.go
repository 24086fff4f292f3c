package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.milieux.dev/milieux/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	lg.Info("creating distro base")

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "creating distro base")
}

func TestLogger_Warn(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	lg.Warn("environment already exists, overwriting: dev")

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "overwriting: dev")
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	lg.Error(zerr.New("resolver blew up"))

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "resolver blew up")
}
