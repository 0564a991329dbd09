package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smileynet/safecircle/internal/config"
)

func TestNew_NoFileIsNop(t *testing.T) {
	logger, err := New(config.Logging{Level: "debug"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger without a file should be a no-op")
	}
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "safecircle.log")

	logger, err := New(config.Logging{Level: "info", File: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("contact added", zap.Int("index", 1))
	logger.Debug("filtered out")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"contact added"`) {
		t.Errorf("log should contain info entry, got:\n%s", out)
	}
	if strings.Contains(out, "filtered out") {
		t.Errorf("debug entry should be filtered at info level, got:\n%s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"info", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
