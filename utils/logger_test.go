package utils

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	// Silent by default
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	Logger().Warn("degenerate link", "i", 3)
	assert.Contains(t, buf.String(), "degenerate link")
	assert.Contains(t, buf.String(), "i=3")

	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

func TestMemUsage(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	l.Info("built", MemUsage())
	assert.Contains(t, buf.String(), "mem.alloc_mib=")
	assert.Contains(t, buf.String(), "mem.num_gc=")
}
