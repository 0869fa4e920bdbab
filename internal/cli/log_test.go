package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerFiltersByLevel(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("placed 3 nodes") }, true},
		{"debug muted at info", log.InfoLevel, func(l *log.Logger) { l.Debug("layout cache hit") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("layout cache hit") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote output = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressReportsCompletion(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))
	p.done("layout complete")

	if out := buf.String(); !strings.Contains(out, "layout complete") {
		t.Errorf("progress output %q missing completion message", out)
	}
}

func TestLoggerContextRoundTrip(t *testing.T) {
	logger := log.Default()
	ctx := withLogger(context.Background(), logger)

	if loggerFromContext(ctx) != logger {
		t.Error("context did not return the stored logger")
	}
	if loggerFromContext(context.Background()) == nil {
		t.Error("missing logger must fall back to the default")
	}
}
