// Package common provides the shared logger for databricks-mcp.
package common

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/phuslu/log"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
	"github.com/ternarybob/arbor/writers"

	"github.com/bobmcallan/databricks-mcp/internal/config"
)

const timeFormat = "2006-01-02T15:04:05Z07:00"

// Logger wraps arbor.ILogger to provide a consistent interface
type Logger struct {
	arbor.ILogger
}

// discardWriter implements writers.IWriter and discards all output.
type discardWriter struct{}

func (w *discardWriter) Write(p []byte) (int, error)           { return len(p), nil }
func (w *discardWriter) WithLevel(_ log.Level) writers.IWriter { return w }
func (w *discardWriter) GetFilePath() string                   { return "" }
func (w *discardWriter) Close() error                          { return nil }

// streamWriter adapts an io.Writer to arbor's IWriter interface. Events
// arrive as JSON; in text mode each one is rendered as a single line.
type streamWriter struct {
	out   io.Writer
	level log.Level
	json  bool
}

func newStreamWriter(out io.Writer, format string) *streamWriter {
	return &streamWriter{out: out, level: log.TraceLevel, json: format == config.LogFormatJSON}
}

func (w *streamWriter) Write(p []byte) (int, error) {
	var evt models.LogEvent
	if err := json.Unmarshal(p, &evt); err != nil {
		return w.out.Write(p)
	}
	if evt.Level < w.level {
		return len(p), nil
	}
	if w.json {
		if _, err := w.out.Write(p); err != nil {
			return 0, err
		}
		_, err := w.out.Write([]byte{'\n'})
		return len(p), err
	}

	var b strings.Builder
	if !evt.Timestamp.IsZero() {
		b.WriteString(evt.Timestamp.Format(timeFormat))
		b.WriteByte(' ')
	}
	b.WriteString(strings.ToUpper(evt.Level.String()))
	b.WriteByte(' ')
	b.WriteString(evt.Message)
	if evt.CorrelationID != "" {
		fmt.Fprintf(&b, " correlation_id=%s", evt.CorrelationID)
	}
	for _, k := range slices.Sorted(maps.Keys(evt.Fields)) {
		fmt.Fprintf(&b, " %s=%v", k, evt.Fields[k])
	}
	if evt.Error != "" {
		fmt.Fprintf(&b, " error=%s", evt.Error)
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(w.out, b.String()); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *streamWriter) WithLevel(level log.Level) writers.IWriter {
	w.level = level
	return w
}

func (w *streamWriter) GetFilePath() string { return "" }
func (w *streamWriter) Close() error        { return nil }

// NewLoggerFromConfig creates a logger configured from LoggingConfig.
// The console writer always targets stderr: under the stdio transport
// stdout carries MCP frames. Writers are private to the returned logger.
func NewLoggerFromConfig(cfg config.LoggingConfig) *Logger {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg config.LoggingConfig, console io.Writer) *Logger {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	format := cfg.Format
	if format == "" {
		format = config.LogFormatText
	}

	outputs := cfg.Outputs
	if len(outputs) == 0 {
		outputs = []string{"file"}
	}

	var ws []writers.IWriter
	for _, out := range outputs {
		switch out {
		case "console":
			ws = append(ws, newStreamWriter(console, format))
		case "file":
			filePath := cfg.FilePath
			if filePath == "" {
				filePath = "logs/databricks-mcp.log"
			}
			maxSize := int64(cfg.MaxSizeMB) * 1024 * 1024
			if maxSize <= 0 {
				maxSize = 500 * 1024
			}
			maxBackups := cfg.MaxBackups
			if maxBackups <= 0 {
				maxBackups = 20
			}
			outputType := models.OutputFormatLogfmt
			if format == config.LogFormatJSON {
				outputType = models.OutputFormatJSON
			}
			ws = append(ws, writers.FileWriter(models.WriterConfiguration{
				Type:       models.LogWriterTypeFile,
				FileName:   filePath,
				MaxSize:    maxSize,
				MaxBackups: maxBackups,
				TimeFormat: timeFormat,
				OutputType: outputType,
			}))
		}
	}
	if len(ws) == 0 {
		ws = []writers.IWriter{&discardWriter{}}
	}

	l := arbor.NewLogger().WithWriters(ws).WithLevelFromString(level)
	return &Logger{ILogger: l}
}

// NewSilentLogger creates a logger that discards all output.
func NewSilentLogger() *Logger {
	arborLogger := arbor.NewLogger().WithWriters([]writers.IWriter{&discardWriter{}})
	return &Logger{ILogger: arborLogger}
}

// WithCorrelationId returns a new Logger with a correlation ID set.
// Tool middleware uses it to tie every log line of one call together.
func (l *Logger) WithCorrelationId(id string) *Logger {
	return &Logger{ILogger: l.ILogger.WithCorrelationId(id)}
}
