package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

type cliLogger struct {
	out            io.Writer
	debug          *bool
	timePrefix     bool
	timePrefixCond func(level string) bool
}

func (l *cliLogger) Infof(pat string, args ...any) {
	b := strings.Builder{}
	l.applyExtra(&b, "INFO")
	b.WriteString(fmt.Sprintf(pat+"\n", args...))
	io.WriteString(l.out, b.String())
}

func (l *cliLogger) Debugf(pat string, args ...any) {
	if *l.debug {
		b := strings.Builder{}
		b.WriteString("[DEBUG] ")
		l.applyExtra(&b, "DEBUG")
		b.WriteString(fmt.Sprintf(pat+"\n", args...))
		io.WriteString(l.out, b.String())
	}
}

func (l *cliLogger) Errorf(pat string, args ...any) {
	b := strings.Builder{}
	b.WriteString("[ERROR] ")
	l.applyExtra(&b, "ERROR")
	b.WriteString(fmt.Sprintf(pat+"\n", args...))
	io.WriteString(l.out, b.String())
}

func (l *cliLogger) applyExtra(b *strings.Builder, level string) {
	if l.timePrefix && l.timePrefixCond(level) {
		b.WriteString(time.Now().Format("2006-01-02 15:04:05.000"))
		b.WriteRune(' ')
	}
}

// Create console logger, it writes to stdout by default.
func NewLog(op ...func(l *cliLogger)) *cliLogger {
	l := &cliLogger{out: os.Stdout}
	for _, f := range op {
		f(l)
	}
	if l.debug == nil {
		var v bool = false
		l.debug = &v
	}
	return l
}

func LogWithDebug(debug *bool) func(*cliLogger) {
	return func(l *cliLogger) {
		l.debug = debug
	}
}

func LogWithWriter(w io.Writer) func(*cliLogger) {
	return func(l *cliLogger) {
		l.out = w
	}
}

func LogWithTime(cond ...func(level string) bool) func(*cliLogger) {
	return func(l *cliLogger) {
		l.timePrefixCond = func(level string) bool { return true }
		if len(cond) > 0 {
			l.timePrefixCond = cond[0]
		}
		l.timePrefix = true
	}
}
