// Package log writes leveled, timestamped messages to stderr. Messages below
// the current level are dropped before they are formatted.
package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"strings"
	"sync/atomic"
)

type Level uint32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", uint32(l))
}

// ParseLevel matches s against the level names, ignoring case. "warning" is
// accepted for LevelWarn. Unknown names give LevelInfo and false.
func ParseLevel(s string) (Level, bool) {
	s = strings.ToUpper(s)
	if s == "WARNING" {
		return LevelWarn, true
	}

	for l, name := range levelNames {
		if s == name {
			return Level(l), true
		}
	}
	return LevelInfo, false
}

var (
	threshold atomic.Uint32
	std       = stdlog.New(os.Stderr, "", stdlog.LstdFlags|stdlog.Lmicroseconds)
)

func init() { threshold.Store(uint32(LevelInfo)) }

// SetLevel drops every later message below level.
func SetLevel(level Level) { threshold.Store(uint32(level)) }

func SetOutput(w io.Writer) { std.SetOutput(w) }

func logf(level Level, format string, v []any) {
	if uint32(level) < threshold.Load() {
		return
	}
	std.Print("[" + level.String() + "] " + fmt.Sprintf(format, v...))
}

func Debugf(format string, v ...any) { logf(LevelDebug, format, v) }

func Infof(format string, v ...any) { logf(LevelInfo, format, v) }

func Warnf(format string, v ...any) { logf(LevelWarn, format, v) }
