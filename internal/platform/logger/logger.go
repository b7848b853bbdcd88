// Package logger implementa el logging estructurado del tracker sin deps
// externas: niveles, campos base acumulables con With, y salida k=v
// (keys ordenadas, estable para tests) o JSON según LOG_FORMAT.
package logger

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return FormatJSON
	}
	return FormatText
}

type Logger interface {
	With(fields map[string]any) Logger

	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type Options struct {
	Level  Level
	Format Format
	App    string
}

type stdLogger struct {
	mu     sync.Mutex
	out    *log.Logger
	level  Level
	format Format
	base   map[string]any
}

func New(opts Options) Logger {
	format := opts.Format
	if format == "" {
		format = FormatText
	}

	base := map[string]any{}
	if app := strings.TrimSpace(opts.App); app != "" {
		base["app"] = app
	}

	return &stdLogger{
		out:    log.New(os.Stdout, "", 0),
		level:  opts.Level,
		format: format,
		base:   base,
	}
}

// NewFromEnv lee LOG_LEVEL (debug|info|warn|error, default info),
// LOG_FORMAT (text|json, default text) y APP_NAME (campo base opcional).
func NewFromEnv() Logger {
	return New(Options{
		Level:  ParseLevel(os.Getenv("LOG_LEVEL")),
		Format: ParseFormat(os.Getenv("LOG_FORMAT")),
		App:    os.Getenv("APP_NAME"),
	})
}

func (l *stdLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	base := mergeFields(l.base, fields)

	// Comparte out/level/format; solo cambia la base.
	return &stdLogger{
		out:    l.out,
		level:  l.level,
		format: l.format,
		base:   base,
	}
}

func (l *stdLogger) Debug(msg string, fields map[string]any) { l.emit(Debug, msg, fields) }
func (l *stdLogger) Info(msg string, fields map[string]any)  { l.emit(Info, msg, fields) }
func (l *stdLogger) Warn(msg string, fields map[string]any)  { l.emit(Warn, msg, fields) }
func (l *stdLogger) Error(msg string, fields map[string]any) { l.emit(Error, msg, fields) }

func (l *stdLogger) emit(lvl Level, msg string, fields map[string]any) {
	if lvl < l.level {
		return
	}

	entry := mergeFields(l.base, fields)
	entry["ts"] = time.Now().Format(time.RFC3339Nano)
	entry["level"] = lvl.String()
	entry["msg"] = msg

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.format == FormatJSON {
		b, _ := json.Marshal(entry)
		l.out.Println(string(b))
		return
	}
	l.out.Println(formatKV(entry))
}

func mergeFields(base, extra map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		if strings.TrimSpace(k) == "" {
			continue
		}
		merged[k] = v
	}
	return merged
}

func formatKV(entry map[string]any) string {
	keys := make([]string, 0, len(entry))
	for k := range entry {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%v", k, entry[k])
	}
	return b.String()
}
