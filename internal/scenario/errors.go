package scenario

import "fmt"

// ErrorCode identifies the class of a tree operation failure.
type ErrorCode int

const (
	MissingField ErrorCode = iota
	TypeMismatch
	ExhaustedInput
	UnusedInput
)

var codeMessages = map[ErrorCode]string{
	MissingField:   "missing field",
	TypeMismatch:   "type mismatch",
	ExhaustedInput: "ran out of scenario lines",
	UnusedInput:    "unused scenario lines remain",
}

func (c ErrorCode) String() string {
	if s, ok := codeMessages[c]; ok {
		return s
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// TreeError is a failure while walking or rewriting a document tree.
type TreeError struct {
	Code   ErrorCode
	Detail string
}

func (e *TreeError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Detail)
	}
	return e.Code.String()
}
