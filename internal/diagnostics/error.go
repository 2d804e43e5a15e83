package diagnostics

import (
	"errors"
	"fmt"

	"github.com/funvibe/tea/internal/token"
)

// DiagnosticError is the single error type surfaced by the checker.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	File    string
	Message string
}

// NewError builds an error from the message template registered for code.
func NewError(code ErrorCode, tok token.Token, args ...interface{}) *DiagnosticError {
	msg, ok := templates[code]
	if !ok {
		msg = string(code)
	}
	return &DiagnosticError{
		Code:    code,
		Token:   tok,
		Message: fmt.Sprintf(msg, args...),
	}
}

func (e *DiagnosticError) Error() string {
	loc := e.Token.String()
	if e.File != "" {
		loc = e.File + ":" + loc
	}
	return fmt.Sprintf("%s: error [%s %s]: %s", loc, e.Code, e.Code.Title(), e.Message)
}

// InFile fills the file name when the error does not carry one yet.
func (e *DiagnosticError) InFile(file string) *DiagnosticError {
	if e.File == "" {
		e.File = file
	}
	return e
}

// CodeOf returns the code of a diagnostic error, or "" for any other error.
func CodeOf(err error) ErrorCode {
	var de *DiagnosticError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Is reports whether err is a diagnostic error with the given code.
func Is(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
