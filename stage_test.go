package staticize

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHookTrace(t *testing.T) {
	cfg := testConfig(t)
	cfg.Pages = []PageEntry{
		{Source: "dashboard.html", Dest: "dashboard.html"},
		{Source: "apt/apt-manage.html", Dest: "apt/apt-manage.html"},
	}
	c := NewConverter(cfg)

	var logs, progress bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c.Hooks.Trace(logger, &progress)

	report := c.Run()
	assert.Equal(t, 1, report.Converted())
	assert.Equal(t, "[1] converted dashboard.html\n[2] skipped   apt/apt-manage.html\n", progress.String())

	for _, s := range Stages {
		assert.Contains(t, logs.String(), "stage="+s.String())
	}
	assert.Contains(t, logs.String(), "source=dashboard.html")
	assert.FileExists(t, filepath.Join(cfg.DestRoot, "dashboard.html"))
}
