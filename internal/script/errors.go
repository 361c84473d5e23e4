package script

import "fmt"

// LexCode identifies the class of a tokenizer failure.
type LexCode int

const (
	UnknownEscape LexCode = iota
	IncompleteEscape
	UnterminatedString
	UnexpectedCharacter
	NumberFormat
)

var lexMessages = map[LexCode]string{
	UnknownEscape:       "unknown escape sequence",
	IncompleteEscape:    "incomplete escape sequence",
	UnterminatedString:  "unterminated string literal",
	UnexpectedCharacter: "unexpected character",
	NumberFormat:        "malformed number",
}

func (c LexCode) String() string {
	if s, ok := lexMessages[c]; ok {
		return s
	}
	return fmt.Sprintf("LexCode(%d)", int(c))
}

// LexError is a tokenizer failure at a known source position.
type LexError struct {
	Code   LexCode
	Line   int
	Col    int
	Detail string // offending character or escape, if any
}

func (e *LexError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("line %d:%d: %s: %s", e.Line, e.Col, e.Code, e.Detail)
	}
	return fmt.Sprintf("line %d:%d: %s", e.Line, e.Col, e.Code)
}

// ParseCode identifies the class of a parser failure.
type ParseCode int

const (
	ExpectedIdentifier ParseCode = iota
	UnexpectedToken
	UnexpectedEndOfInput
)

var parseMessages = map[ParseCode]string{
	ExpectedIdentifier:   "expected identifier",
	UnexpectedToken:      "unexpected token",
	UnexpectedEndOfInput: "unexpected end of input",
}

func (c ParseCode) String() string {
	if s, ok := parseMessages[c]; ok {
		return s
	}
	return fmt.Sprintf("ParseCode(%d)", int(c))
}

// ParseError is a parser failure. Token is nil for UnexpectedEndOfInput.
type ParseError struct {
	Code  ParseCode
	Token *Token
}

func (e *ParseError) Error() string {
	if e.Token != nil {
		return fmt.Sprintf("line %d:%d: %s: got %s", e.Token.Line, e.Token.Col, e.Code, e.Token)
	}
	return e.Code.String()
}
