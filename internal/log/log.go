// Package log provides a small leveled logger in the systemd syslog-prefix
// style: no timestamps (systemd/journald adds those), level gating by
// redirecting a level's writer to io.Discard.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
)

var (
	DebugWriter io.Writer = os.Stderr
	InfoWriter  io.Writer = os.Stderr
	WarnWriter  io.Writer = os.Stderr
	ErrWriter   io.Writer = os.Stderr
)

var (
	DebugPrefix = "<7>[DEBUG]   "
	InfoPrefix  = "<6>[INFO]    "
	WarnPrefix  = "<4>[WARNING] "
	ErrPrefix   = "<3>[ERROR]   "
)

var (
	debugLog = log.New(DebugWriter, DebugPrefix, 0)
	infoLog  = log.New(InfoWriter, InfoPrefix, 0)
	warnLog  = log.New(WarnWriter, WarnPrefix, 0)
	errLog   = log.New(ErrWriter, ErrPrefix, log.Lshortfile)
)

// SetLevel gates output by level name: "debug", "info", "warn", "err"/"fatal".
// Unknown values fall back to "info" after printing a warning to stderr.
func SetLevel(level string) {
	switch level {
	case "err", "fatal":
		WarnWriter = io.Discard
		fallthrough
	case "warn":
		InfoWriter = io.Discard
		fallthrough
	case "info":
		DebugWriter = io.Discard
	case "debug":
	default:
		fmt.Fprintf(os.Stderr, "log: invalid level %q, using \"info\"\n", level)
		SetLevel("info")
		return
	}
	debugLog.SetOutput(DebugWriter)
	infoLog.SetOutput(InfoWriter)
	warnLog.SetOutput(WarnWriter)
}

func Debug(v ...interface{})                 { printIfActive(debugLog, DebugWriter, fmt.Sprint(v...)) }
func Debugf(f string, v ...interface{})      { printIfActive(debugLog, DebugWriter, fmt.Sprintf(f, v...)) }
func Info(v ...interface{})                  { printIfActive(infoLog, InfoWriter, fmt.Sprint(v...)) }
func Infof(f string, v ...interface{})       { printIfActive(infoLog, InfoWriter, fmt.Sprintf(f, v...)) }
func Warn(v ...interface{})                  { printIfActive(warnLog, WarnWriter, fmt.Sprint(v...)) }
func Warnf(f string, v ...interface{})       { printIfActive(warnLog, WarnWriter, fmt.Sprintf(f, v...)) }
func Error(v ...interface{})                 { errLog.Output(2, fmt.Sprint(v...)) }
func Errorf(f string, v ...interface{})      { errLog.Output(2, fmt.Sprintf(f, v...)) }

// Fatal logs at error level then exits with status 1.
func Fatal(v ...interface{}) {
	Error(v...)
	os.Exit(1)
}

func Fatalf(f string, v ...interface{}) {
	Errorf(f, v...)
	os.Exit(1)
}

func printIfActive(l *log.Logger, w io.Writer, msg string) {
	if w == io.Discard {
		return
	}
	l.Output(2, msg)
}
