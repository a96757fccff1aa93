// Package telemetry is the process-wide logger. Season runs emit thousands
// of lines in seconds, so records are stamped with elapsed runtime rather
// than wall-clock time and attrs render inline as key=value pairs.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

var logger *slog.Logger

func Init(level slog.Level) {
	logger = slog.New(newRunHandler(os.Stderr, level))
	slog.SetDefault(logger)
}

func L() *slog.Logger {
	if logger == nil {
		Init(slog.LevelInfo)
	}
	return logger
}

func Infof(format string, args ...any)  { L().Info(fmt.Sprintf(format, args...)) }
func Warnf(format string, args ...any)  { L().Warn(fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any) { L().Error(fmt.Sprintf(format, args...)) }
func Debugf(format string, args ...any) { L().Debug(fmt.Sprintf(format, args...)) }

// ParseLogLevel converts a string level name to slog.Level.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GameClock renders an absolute game-clock time for log lines: "P2 07:31"
// during regulation, "OT 01:15" past the hour.
func GameClock(t float64) string {
	if t < 0 {
		t = 0
	}
	period := int(t/1200.0) + 1
	rem := t - float64(period-1)*1200.0
	label := fmt.Sprintf("P%d", period)
	if period > 3 {
		label = "OT"
	}
	return fmt.Sprintf("%s %02d:%02d", label, int(rem)/60, int(rem)%60)
}

// runHandler outputs: [   12.345s] WARN: message key=value
type runHandler struct {
	w     io.Writer
	level slog.Level
	start time.Time
	attrs string
	mu    *sync.Mutex
}

func newRunHandler(w io.Writer, level slog.Level) *runHandler {
	return &runHandler{w: w, level: level, start: time.Now(), mu: &sync.Mutex{}}
}

func (h *runHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *runHandler) Handle(_ context.Context, r slog.Record) error {
	elapsed := r.Time.Sub(h.start).Seconds()

	var prefix string
	switch {
	case r.Level >= slog.LevelError:
		prefix = "ERROR: "
	case r.Level >= slog.LevelWarn:
		prefix = "WARN: "
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%9.3fs] %s%s%s", elapsed, prefix, r.Message, h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *runHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, a := range attrs {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
	}
	next.attrs = b.String()
	return &next
}

func (h *runHandler) WithGroup(_ string) slog.Handler { return h }
