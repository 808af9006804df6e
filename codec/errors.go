package codec

import (
	"fmt"

	"github.com/curtisnewbie/datecodec/util/errs"
)

var (
	ErrDateSyntax = errs.NewErrfCode(errs.ErrCodeDateSyntax, "Date Syntax Error")
)

// Token that none of the formats, nor ISO 8601, can parse.
//
// SyntaxError unwraps to the error of the ISO 8601 parser.
type SyntaxError struct {
	Token string // original token
	Path  string // location of the token in the document, e.g., $.order.createdAt
	err   error
}

func NewSyntaxError(token string, path string, cause error) *SyntaxError {
	return &SyntaxError{Token: token, Path: path, err: cause}
}

func (e *SyntaxError) Error() string {
	p := e.Path
	if p == "" {
		p = "$"
	}
	return fmt.Sprintf("Failed parsing '%s' as Date; at path %s", e.Token, p)
}

func (e *SyntaxError) Unwrap() error {
	return e.err
}

// Matches ErrDateSyntax, or any *errs.Err with the same code.
func (e *SyntaxError) Is(target error) bool {
	if me, ok := target.(*errs.Err); ok {
		return me.Code() == errs.ErrCodeDateSyntax
	}
	return false
}
