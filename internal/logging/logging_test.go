package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/matryer/is"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"DEBUG", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"bogus", log.InfoLevel},
		{"", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			is := is.New(t)
			is.Equal(ParseLevel(tt.in), tt.want)
		})
	}
}

func TestParseFormatter(t *testing.T) {
	is := is.New(t)
	is.Equal(ParseFormatter("json"), log.JSONFormatter)
	is.Equal(ParseFormatter("logfmt"), log.LogfmtFormatter)
	is.Equal(ParseFormatter("text"), log.TextFormatter)
	is.Equal(ParseFormatter("whatever"), log.TextFormatter)
}

func TestNew_JSON(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	opts := FromConfig("debug", "json")
	opts.ReportTimestamp = false
	logger := New(&buf, opts)
	logger.Debug("seeded", "id", 3)

	var line map[string]any
	is.NoErr(json.Unmarshal(buf.Bytes(), &line))
	is.Equal(line["msg"], "seeded")
	is.Equal(line["prefix"], "taskmaster")
	is.Equal(line["id"], float64(3))
}

func TestNew_LevelFilters(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	logger := New(&buf, FromConfig("warn", "text"))
	logger.Info("hidden")
	logger.Warn("shown")
	is.True(!strings.Contains(buf.String(), "hidden"))
	is.True(strings.Contains(buf.String(), "shown"))
}

func TestOpen(t *testing.T) {
	t.Run("fallback writer", func(t *testing.T) {
		is := is.New(t)
		var buf bytes.Buffer
		logger, closeFn, err := Open("", &buf, DefaultOptions())
		is.NoErr(err)
		logger.Info("hello")
		is.NoErr(closeFn())
		is.True(strings.Contains(buf.String(), "hello"))
	})
	t.Run("file", func(t *testing.T) {
		is := is.New(t)
		path := filepath.Join(t.TempDir(), "logs", "taskmaster.log")
		logger, closeFn, err := Open(path, nil, DefaultOptions())
		is.NoErr(err)
		logger.Info("to file")
		is.NoErr(closeFn())
		data, err := os.ReadFile(path)
		is.NoErr(err)
		is.True(strings.Contains(string(data), "to file"))
	})
}
