package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	log := New()
	if log.GetLevel() != zerolog.InfoLevel {
		t.Errorf("Expected info level, got %s", log.GetLevel())
	}
}

func TestNewWithLevel(t *testing.T) {
	tests := []struct {
		level     string
		want      zerolog.Level
		debugSeen bool
	}{
		{"debug", zerolog.DebugLevel, true},
		{"WARN", zerolog.WarnLevel, false},
		{"info", zerolog.InfoLevel, false},
		{"", zerolog.InfoLevel, false},
		{"verbose", zerolog.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf := &bytes.Buffer{}
			log := NewWithLevel(tt.level, buf)

			if log.GetLevel() != tt.want {
				t.Errorf("Expected level %s, got %s", tt.want, log.GetLevel())
			}

			log.Debug().Msg("sheet rows read")
			if got := strings.Contains(buf.String(), "sheet rows read"); got != tt.debugSeen {
				t.Errorf("Expected debug output %v, got %v: %s", tt.debugSeen, got, buf.String())
			}
		})
	}
}

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	log.Info().Msg("test message")

	output := buf.String()
	if output == "" {
		t.Error("Expected log output, got empty string")
	}
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected output to contain 'test message', got: %s", output)
	}
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	testLog := NewWithWriter(buf)
	ctx := WithContext(context.Background(), testLog)

	retrievedLog := FromContext(ctx)
	retrievedLog.Info().Msg("test")

	if buf.Len() == 0 {
		t.Error("Expected log output from retrieved logger")
	}
}

func TestFromContext_DefaultLogger(t *testing.T) {
	log := FromContext(context.Background())

	if log.GetLevel() == zerolog.Disabled {
		t.Error("Expected default logger to be enabled")
	}
}

func TestWithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	logWithFields := WithFields(log, map[string]interface{}{
		"sheet": "Gastos 2024",
		"type":  "expenses",
	})
	logWithFields.Info().Msg("extracted")

	output := buf.String()
	if !strings.Contains(output, `"sheet":"Gastos 2024"`) {
		t.Errorf("Expected output to contain sheet field, got: %s", output)
	}
	if !strings.Contains(output, `"type":"expenses"`) {
		t.Errorf("Expected output to contain type field, got: %s", output)
	}
}
