package common

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bobmcallan/databricks-mcp/internal/config"
)

func TestNewLoggerFromConfig_FluentAPI(t *testing.T) {
	logger := NewLoggerFromConfig(config.LoggingConfig{
		Level:    "error",
		Outputs:  []string{"file"},
		FilePath: filepath.Join(t.TempDir(), "test.log"),
	})
	if logger == nil {
		t.Fatal("NewLoggerFromConfig returned nil")
	}
	logger.Info().Str("key", "value").Msg("test message")
	logger.Warn().Int("count", 42).Msg("warning")
	logger.Error().Err(nil).Msg("error message")
	logger.Debug().Bool("ok", true).Msg("debug")
}

func TestConsoleWriter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(config.LoggingConfig{Level: "info", Format: "text", Outputs: []string{"console"}}, &buf)
	logger.Info().Str("tool", "list_clusters").Int("status", 200).Msg("hello")

	out := buf.String()
	for _, want := range []string{"hello", "status=200 tool=list_clusters"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("text format should not emit JSON: %s", out)
	}
}

func TestConsoleWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(config.LoggingConfig{Level: "info", Format: "json", Outputs: []string{"console"}}, &buf)
	logger.Info().Str("tool", "get_job").Msg("hello")

	line := strings.TrimSpace(buf.String())
	var evt map[string]any
	if err := json.Unmarshal([]byte(line), &evt); err != nil {
		t.Fatalf("expected one JSON event, got %q: %v", line, err)
	}
	if evt["message"] != "hello" {
		t.Errorf("unexpected message %v", evt["message"])
	}
}

func TestConsoleWriter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(config.LoggingConfig{Level: "warn", Outputs: []string{"console"}}, &buf)
	logger.Info().Msg("dropped")
	logger.Warn().Msg("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info line should be filtered at warn: %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn line missing: %s", out)
	}
}

func TestLoggers_DoNotShareWriters(t *testing.T) {
	var first, second bytes.Buffer
	a := newLogger(config.LoggingConfig{Outputs: []string{"console"}}, &first)
	_ = newLogger(config.LoggingConfig{Outputs: []string{"console"}}, &second)

	a.Info().Msg("only first")
	NewSilentLogger().Error().Msg("nobody")

	if !strings.Contains(first.String(), "only first") {
		t.Errorf("first logger lost its writer: %q", first.String())
	}
	if second.Len() > 0 {
		t.Errorf("second logger received foreign output: %q", second.String())
	}
}

func TestNewLoggerFromConfig_DoesNotWriteToStdout(t *testing.T) {
	// stdout is the MCP JSON-RPC channel under the stdio transport.
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	logger := NewLoggerFromConfig(config.LoggingConfig{
		Level:    "info",
		Outputs:  []string{"console", "file"},
		FilePath: filepath.Join(t.TempDir(), "test.log"),
	})
	logger.Info().Str("tool", "test").Msg("this must not go to stdout")
	logger.Error().Msg("neither should this")

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	r.Close()

	if buf.Len() > 0 {
		t.Errorf("logger wrote %d bytes to stdout (would corrupt MCP stdio): %s", buf.Len(), buf.String())
	}
}

func TestWithCorrelationId_ReturnsNewLogger(t *testing.T) {
	logger := NewSilentLogger()
	child := logger.WithCorrelationId("abc-123")
	if child == nil {
		t.Fatal("WithCorrelationId returned nil")
	}
	if child == logger {
		t.Error("WithCorrelationId should return a new logger")
	}
	child.Info().Msg("correlated")
}
