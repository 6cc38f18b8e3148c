// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

const tracePrefix = "TRACE: "

var (
	traceEnabled bool
	mu           sync.Mutex
)

// InitLogger installs the single-line handler and sets the level from the
// ECSA_LOG env variable. Output goes to stderr so that json and yaml results
// on stdout stay machine readable.
func InitLogger() {
	InitLoggerTo(os.Stderr, os.Getenv("ECSA_LOG"))
}

// InitLoggerTo is InitLogger with an explicit writer and level name.
func InitLoggerTo(w io.Writer, level string) {
	level = strings.ToLower(strings.TrimSpace(level))
	traceEnabled = level == "trace"
	log.SetHandler(&LineHandler{Writer: w})
	log.SetLevel(ParseLevel(level))
}

// ParseLevel maps an ECSA_LOG value onto an apex level. Unknown and empty
// values map to error. Trace is debug plus Tracef output.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "trace", "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.ErrorLevel
	}
}

// LineHandler writes "timestamp level message" lines.
type LineHandler struct {
	Writer io.Writer
}

// HandleLog implements log.Handler.
func (h *LineHandler) HandleLog(e *log.Entry) error {
	message, level := e.Message, levelLetter(e.Level)
	if rest, ok := strings.CutPrefix(message, tracePrefix); ok {
		message, level = rest, "T"
	}

	if len(e.Fields) > 0 {
		var b strings.Builder
		for _, name := range e.Fields.Names() {
			fmt.Fprintf(&b, " %s=%v", name, e.Fields.Get(name))
		}
		message += b.String()
	}

	w := h.Writer
	if w == nil {
		w = os.Stderr
	}

	mu.Lock()
	defer mu.Unlock()
	_, err := fmt.Fprintf(w, "%s %s %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), level, message)
	return err
}

func levelLetter(l log.Level) string {
	switch l {
	case log.DebugLevel:
		return "D"
	case log.InfoLevel:
		return "I"
	case log.WarnLevel:
		return "W"
	case log.ErrorLevel:
		return "E"
	case log.FatalLevel:
		return "F"
	}
	return "?"
}

// Tracef logs below debug. It is only emitted with ECSA_LOG=trace.
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug(tracePrefix + fmt.Sprintf(format, args...))
	}
}

func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

func Debug(msg string) {
	log.Debug(msg)
}

func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// WithError returns an entry with the error attached as a field.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}

// WithField returns an entry with a single field attached.
func WithField(key string, value interface{}) *log.Entry {
	return log.WithField(key, value)
}

// Since formats an elapsed duration for timing debug lines.
func Since(start time.Time) string {
	return time.Since(start).Round(time.Millisecond).String()
}
