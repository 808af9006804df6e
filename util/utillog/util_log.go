package utillog

import (
	"bytes"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

const (
	callerField = "caller"
	fnWidth     = 30
	levelWidth  = 5
)

var (
	DebugLog func(pat string, args ...any) = func(pat string, args ...any) { Debugf(pat, args...) }
	ErrorLog func(pat string, args ...any) = func(pat string, args ...any) { Errorf(pat, args...) }
)

var logBufPool = sync.Pool{
	New: func() any {
		return &bytes.Buffer{}
	},
}

func init() {
	logrus.SetReportCaller(false) // set manually through callerField
	logrus.SetFormatter(CustomFormatter())
}

type CTFormatter struct {
}

func (c *CTFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var fn string
	if caller, ok := entry.Data[callerField].(string); ok {
		fn = caller
	}
	levelstr := toLevelStr(entry.Level)

	b := logBufPool.Get().(*bytes.Buffer)
	defer putLogBuf(b)

	b.WriteString(entry.Time.Format("2006-01-02 15:04:05.000"))
	b.WriteByte(' ')
	b.WriteString(levelstr)
	if len(levelstr) < levelWidth {
		b.WriteString(strings.Repeat(" ", levelWidth-len(levelstr)))
	}
	b.WriteByte(' ')
	b.WriteString(fn)
	if len(fn) < fnWidth {
		b.WriteString(strings.Repeat(" ", fnWidth-len(fn)))
	}
	b.WriteString(" : ")
	b.WriteString(entry.Message)
	b.WriteByte('\n')

	// the buffer is pooled, logrus expects bytes it owns
	out := make([]byte, b.Len())
	copy(out, b.Bytes())
	return out, nil
}

func putLogBuf(b *bytes.Buffer) {
	b.Reset()
	logBufPool.Put(b)
}

// Get custom formatter for logrus
func CustomFormatter() logrus.Formatter {
	return &CTFormatter{}
}

func toLevelStr(level logrus.Level) string {
	switch level {
	case logrus.TraceLevel:
		return "TRACE"
	case logrus.DebugLevel:
		return "DEBUG"
	case logrus.InfoLevel:
		return "INFO"
	case logrus.WarnLevel:
		return "WARN"
	case logrus.ErrorLevel:
		return "ERROR"
	case logrus.FatalLevel:
		return "FATAL"
	case logrus.PanicLevel:
		return "PANIC"
	}
	return "UNKNOWN"
}

// Parse log level
func ParseLogLevel(logLevel string) (logrus.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(logLevel)) {
	case "INFO":
		return logrus.InfoLevel, true
	case "DEBUG":
		return logrus.DebugLevel, true
	case "WARN":
		return logrus.WarnLevel, true
	case "ERROR":
		return logrus.ErrorLevel, true
	case "TRACE":
		return logrus.TraceLevel, true
	case "FATAL":
		return logrus.FatalLevel, true
	case "PANIC":
		return logrus.PanicLevel, true
	}
	return logrus.InfoLevel, false
}

func SetLogLevel(level string) {
	ll, ok := ParseLogLevel(level)
	if !ok {
		return
	}
	logrus.SetLevel(ll)
}

// Check whether current log level is DEBUG
func IsDebugLevel() bool {
	return logrus.IsLevelEnabled(logrus.DebugLevel)
}

type RollingLogFileParam struct {
	Filename   string // filename
	MaxSize    int    // max file size in mb
	MaxAge     int    // max age in day
	MaxBackups int    // max number of files
}

// Create rolling file based writer
func BuildRollingLogFileWriter(p RollingLogFileParam) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   p.Filename,
		MaxSize:    p.MaxSize,    // megabytes
		MaxAge:     p.MaxAge,     // days
		MaxBackups: p.MaxBackups, // num of files
		LocalTime:  true,
		Compress:   false,
	}
}

// Setup logrus level and output.
//
// When file is not empty, logs are written to both stdout and a rolling log file.
func SetupLogger(level string, file string) {
	SetLogLevel(level)
	if file == "" {
		logrus.SetOutput(os.Stdout)
		return
	}
	w := BuildRollingLogFileWriter(RollingLogFileParam{
		Filename:   file,
		MaxSize:    50,
		MaxAge:     7,
		MaxBackups: 3,
	})
	logrus.SetOutput(io.MultiWriter(os.Stdout, w))
}

func Tracef(format string, args ...any) {
	if !logrus.IsLevelEnabled(logrus.TraceLevel) {
		return
	}
	logrus.WithField(callerField, getCallerFn()).Tracef(format, args...)
}

func Debugf(format string, args ...any) {
	if !logrus.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	logrus.WithField(callerField, getCallerFn()).Debugf(format, args...)
}

func Infof(format string, args ...any) {
	if !logrus.IsLevelEnabled(logrus.InfoLevel) {
		return
	}
	logrus.WithField(callerField, getCallerFn()).Infof(format, args...)
}

func Warnf(format string, args ...any) {
	if !logrus.IsLevelEnabled(logrus.WarnLevel) {
		return
	}
	logrus.WithField(callerField, getCallerFn()).Warnf(format, args...)
}

func Errorf(format string, args ...any) {
	if !logrus.IsLevelEnabled(logrus.ErrorLevel) {
		return
	}
	logrus.WithField(callerField, getCallerFn()).Errorf(format, args...)
}

// reduce alloc, logger calls getCallerFn very frequently.
var callerUintptrPool = sync.Pool{
	New: func() any {
		p := make([]uintptr, 8)
		return &p
	},
}

func getCallerFn() string {
	pcs := callerUintptrPool.Get().(*[]uintptr)
	defer callerUintptrPool.Put(pcs)

	depth := runtime.Callers(3, *pcs)
	frames := runtime.CallersFrames((*pcs)[:depth])
	for {
		f, more := frames.Next()
		// skip the DebugLog/ErrorLog hooks
		if f.Function != "" && !strings.Contains(f.Function, "utillog.") {
			return shortFnName(f.Function)
		}
		if !more {
			return ""
		}
	}
}

func shortFnName(fn string) string {
	i := strings.LastIndexByte(fn, '/')
	if i > -1 {
		return fn[i+1:]
	}
	return fn
}
