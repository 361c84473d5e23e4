package script

import (
	"strconv"
	"strings"
	"unicode"
)

// lexer walks the input rune by rune, tracking line and column for
// error reporting.
type lexer struct {
	src  []rune
	pos  int
	line int
	col  int
}

// Tokenize converts script source text into its token sequence.
func Tokenize(input string) ([]Token, error) {
	l := &lexer{src: []rune(input), line: 1, col: 1}
	var tokens []Token

	for {
		line, col := l.line, l.col
		ch, ok := l.next()
		if !ok {
			return tokens, nil
		}

		switch {
		case ch == '=':
			tokens = append(tokens, Token{Type: EQUAL, Line: line, Col: col})
		case ch == '{':
			tokens = append(tokens, Token{Type: LCURLY, Line: line, Col: col})
		case ch == '}':
			tokens = append(tokens, Token{Type: RCURLY, Line: line, Col: col})
		case ch == ',':
			tokens = append(tokens, Token{Type: COMMA, Line: line, Col: col})
		case ch == '"':
			text, err := l.scanString(line, col)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, Token{Type: STRING, Text: text, Line: line, Col: col})
		case unicode.IsSpace(ch):
			// Whitespace is insignificant between tokens.
		case isDigit(ch) || (ch == '-' && l.peekIsDigit()):
			tok, err := l.scanNumber(ch, line, col)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		case isIdentRune(ch):
			tokens = append(tokens, Token{Type: IDENT, Text: l.scanIdent(ch), Line: line, Col: col})
		default:
			return nil, &LexError{Code: UnexpectedCharacter, Line: line, Col: col, Detail: strconv.QuoteRune(ch)}
		}
	}
}

func (l *lexer) next() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	ch := l.src[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch, true
}

func (l *lexer) peek() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *lexer) peekIsDigit() bool {
	ch, ok := l.peek()
	return ok && isDigit(ch)
}

// scanString consumes a quoted string after the opening quote, decoding
// the escape sequences \n, \t, \" and \\.
func (l *lexer) scanString(startLine, startCol int) (string, error) {
	var sb strings.Builder
	for {
		line, col := l.line, l.col
		ch, ok := l.next()
		if !ok {
			return "", &LexError{Code: UnterminatedString, Line: startLine, Col: startCol}
		}
		switch ch {
		case '"':
			return sb.String(), nil
		case '\\':
			esc, ok := l.next()
			if !ok {
				return "", &LexError{Code: IncompleteEscape, Line: line, Col: col}
			}
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			default:
				return "", &LexError{Code: UnknownEscape, Line: line, Col: col, Detail: `\` + string(esc)}
			}
		default:
			sb.WriteRune(ch)
		}
	}
}

// scanNumber consumes an integer or float literal starting with first,
// which is a digit or a minus sign followed by a digit. A decimal point
// anywhere in the literal makes it a float.
func (l *lexer) scanNumber(first rune, line, col int) (Token, error) {
	var sb strings.Builder
	sb.WriteRune(first)
	isFloat := false

	for {
		ch, ok := l.peek()
		if !ok {
			break
		}
		if ch == '.' {
			isFloat = true
		} else if !isDigit(ch) {
			break
		}
		sb.WriteRune(ch)
		l.next()
	}

	text := sb.String()
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, &LexError{Code: NumberFormat, Line: line, Col: col, Detail: text}
		}
		return Token{Type: FLOAT, Num: f, Line: line, Col: col}, nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Token{}, &LexError{Code: NumberFormat, Line: line, Col: col, Detail: text}
	}
	return Token{Type: INTEGER, Int: i, Line: line, Col: col}, nil
}

func (l *lexer) scanIdent(first rune) string {
	var sb strings.Builder
	sb.WriteRune(first)
	for {
		ch, ok := l.peek()
		if !ok || !isIdentRune(ch) {
			break
		}
		sb.WriteRune(ch)
		l.next()
	}
	return sb.String()
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentRune(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
