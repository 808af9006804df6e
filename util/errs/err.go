package errs

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
)

const (
	ErrCodeIllegalArgument string = "ILLEGAL_ARGUMENT"
	ErrCodeIllegalPattern  string = "ILLEGAL_PATTERN"
	ErrCodeIllegalDate     string = "ILLEGAL_DATE"
	ErrCodeDateSyntax      string = "DATE_SYNTAX"
)

var (
	ErrIllegalArgument *Err = NewErrfCode(ErrCodeIllegalArgument, "Illegal Argument")
	ErrIllegalPattern  *Err = NewErrfCode(ErrCodeIllegalPattern, "Illegal Pattern")
	ErrIllegalDate     *Err = NewErrfCode(ErrCodeIllegalDate, "Illegal Date")
)

// Error with code, message and stacktrace.
//
// Package level *Err values are templates, derive errors from them with WithInternalMsg or Wrapf, and match them
// with errors.Is.
type Err struct {
	code        string
	msg         string
	internalMsg string // extra context, only meant for logs
	stack       string
	err         error
}

func (e *Err) Code() string {
	return e.code
}

func (e *Err) copy() *Err {
	n := *e
	n.stack = stack(4)
	return &n
}

// Derive a new *Err with extra context.
func (e *Err) WithInternalMsg(msg string, args ...any) *Err {
	n := e.copy()
	n.internalMsg = sprintf(msg, args...)
	return n
}

// Derive a new *Err caused by cause, nil is returned if cause is nil.
func (e *Err) Wrapf(cause error, internalMsg string, args ...any) error {
	if cause == nil {
		return nil
	}
	n := e.copy()
	n.err = cause
	n.internalMsg = sprintf(internalMsg, args...)
	return n
}

func (e *Err) Error() string {
	tok := make([]string, 0, 3)
	if e.msg != "" {
		tok = append(tok, e.msg)
	}
	if e.internalMsg != "" {
		tok = append(tok, e.internalMsg)
	}
	if e.err != nil {
		tok = append(tok, e.err.Error())
	}
	return strings.Join(tok, ", ")
}

// Matches any *Err with the same non-empty code.
//
//	errors.Is(ErrIllegalArgument.WithInternalMsg("..."), ErrIllegalArgument) // true
func (e *Err) Is(target error) bool {
	te, ok := target.(*Err)
	return ok && e.code != "" && e.code == te.code
}

func (e *Err) Unwrap() error {
	return e.err
}

// Create new *Err with message and error code.
func NewErrfCode(code string, msg string, args ...any) *Err {
	return &Err{code: code, msg: sprintf(msg, args...), stack: stack(3)}
}

// Wrap err with message, nil is returned if err is nil.
func WrapErrf(err error, msg string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Err{msg: sprintf(msg, args...), err: err, stack: stack(3)}
}

// Error message followed by the innermost stacktrace recorded in err's chain.
func ErrorStackTrace(err error) string {
	if err == nil {
		return "nil"
	}
	var st string
	for ue := err; ue != nil; ue = errors.Unwrap(ue) {
		if me, ok := ue.(*Err); ok && me.stack != "" {
			st = me.stack
		}
	}
	return err.Error() + st
}

func sprintf(msg string, args ...any) string {
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

var stackPool = sync.Pool{
	New: func() any {
		v := make([]uintptr, 50)
		return &v
	},
}

func stack(skip int) string {
	pcs := stackPool.Get().(*[]uintptr)
	defer func() {
		clear(*pcs)
		stackPool.Put(pcs)
	}()

	n := runtime.Callers(skip, *pcs)
	if n < 1 {
		return ""
	}
	frames := runtime.CallersFrames((*pcs)[:n])
	b := strings.Builder{}
	for {
		f, more := frames.Next()
		b.WriteString(fmt.Sprintf("\n\t%v\n\t\t%v:%v", f.Function, f.File, f.Line))
		if !more {
			break
		}
	}
	return b.String()
}
