package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level     log.Level
		wantDebug bool
		wantInfo  bool
	}{
		{LogInfo, false, true},
		{LogDebug, true, true},
		{log.WarnLevel, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)

			logger.Debug("descend sweep")
			if got := buf.Len() > 0; got != tt.wantDebug {
				t.Errorf("debug output = %v, want %v", got, tt.wantDebug)
			}
			buf.Reset()
			logger.Info("layout complete", "cost", 12)
			if got := buf.Len() > 0; got != tt.wantInfo {
				t.Errorf("info output = %v, want %v", got, tt.wantInfo)
			}
		})
	}
}

func TestNewLoggerKeyvals(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, LogInfo).Info("layout complete", "cost", 12, "error", "none")
	out := buf.String()
	for _, want := range []string{"layout complete", "cost", "12", "error"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, LogDebug))

	newProgress(ctx).done("annealed", "nodes", 4, "cost", 7)

	out := buf.String()
	for _, want := range []string{"annealed", "nodes", "cost", "elapsed"} {
		if !strings.Contains(out, want) {
			t.Errorf("progress output %q missing %q", out, want)
		}
	}
}

func TestProgressSilentAtInfo(t *testing.T) {
	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, LogInfo))

	newProgress(ctx).done("annealed", "nodes", 4)
	if buf.Len() != 0 {
		t.Errorf("progress should log at debug level, got %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should yield the default logger")
	}

	logger := newLogger(&bytes.Buffer{}, LogInfo)
	if loggerFromContext(withLogger(context.Background(), logger)) != logger {
		t.Error("attached logger not returned")
	}
}
