// Package obslog is a small leveled logger generalizing the teacher's
// convention of prefixing log.Printf lines with a one-letter severity tag
// ("E: ..." for errors, "D: ..." for a completed deletion) into four
// levels, still writing through the standard library's log.Logger rather
// than reaching for a structured-logging dependency — nothing else in the
// retrieval pack imports one.
package obslog

import (
	"io"
	"log"
)

// Logger wraps four *log.Logger instances, one per level, each carrying its
// own prefix so callers filtering raw log output can still grep by tag.
type Logger struct {
	debug, info, warn, error *log.Logger
}

// New builds a Logger writing to w. Debug lines are only emitted if
// verbose is true; the other three levels are always active.
func New(w io.Writer, verbose bool) *Logger {
	flags := log.LstdFlags
	l := &Logger{
		info:  log.New(w, "I: ", flags),
		warn:  log.New(w, "W: ", flags),
		error: log.New(w, "E: ", flags),
	}
	if verbose {
		l.debug = log.New(w, "D: ", flags)
	} else {
		l.debug = log.New(io.Discard, "", 0)
	}
	return l
}

func (l *Logger) Debugf(format string, args ...any) { l.debug.Printf(format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.info.Printf(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.warn.Printf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.error.Printf(format, args...) }
