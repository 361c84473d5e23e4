package script

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTokenize(t *testing.T, src string) []Token {
	t.Helper()
	tokens, err := Tokenize(src)
	require.NoError(t, err)
	return tokens
}

func tokenTypes(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func TestTokenizeBasicSequence(t *testing.T) {
	tokens := mustTokenize(t, "astver = 2.0\nast = {block_00000, 18, -5}")

	assert.Equal(t, []TokenType{
		IDENT, EQUAL, FLOAT,
		IDENT, EQUAL, LCURLY, IDENT, COMMA, INTEGER, COMMA, INTEGER, RCURLY,
	}, tokenTypes(tokens))

	assert.Equal(t, "astver", tokens[0].Text)
	assert.Equal(t, 2.0, tokens[2].Num)
	assert.Equal(t, "block_00000", tokens[6].Text)
	assert.Equal(t, int64(18), tokens[8].Int)
	assert.Equal(t, int64(-5), tokens[10].Int)
}

func TestTokenizeStringEscapes(t *testing.T) {
	tokens := mustTokenize(t, `"a\nb"`)
	require.Len(t, tokens, 1)
	assert.Equal(t, STRING, tokens[0].Type)
	assert.Equal(t, "a\nb", tokens[0].Text)

	tokens = mustTokenize(t, `"tab\there \"quoted\" back\\slash"`)
	require.Len(t, tokens, 1)
	assert.Equal(t, "tab\there \"quoted\" back\\slash", tokens[0].Text)
}

func TestTokenizeUnicodeText(t *testing.T) {
	tokens := mustTokenize(t, `text = "「お兄、あさー……むふー……」"`)
	require.Len(t, tokens, 3)
	assert.Equal(t, "「お兄、あさー……むふー……」", tokens[2].Text)
}

func TestTokenizeIdentifierAfterDigits(t *testing.T) {
	// Numeric-literal detection wins while digits last, then the rest
	// lexes as an identifier.
	tokens := mustTokenize(t, "123abc")
	require.Len(t, tokens, 2)
	assert.Equal(t, INTEGER, tokens[0].Type)
	assert.Equal(t, int64(123), tokens[0].Int)
	assert.Equal(t, IDENT, tokens[1].Type)
	assert.Equal(t, "abc", tokens[1].Text)
}

func TestTokenizeMinusWithoutDigitFails(t *testing.T) {
	_, err := Tokenize("a = -x")
	var lexErr *LexError
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, UnexpectedCharacter, lexErr.Code)
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code LexCode
	}{
		{"unknown escape", `"bad \q escape"`, UnknownEscape},
		{"incomplete escape", `"trailing \`, IncompleteEscape},
		{"unterminated string", `"abc`, UnterminatedString},
		{"unexpected character", `a = @`, UnexpectedCharacter},
		{"malformed number", `1.2.3`, NumberFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.src)
			var lexErr *LexError
			require.True(t, errors.As(err, &lexErr), "want LexError, got %v", err)
			assert.Equal(t, tt.code, lexErr.Code)
		})
	}
}

func TestTokenizeErrorPosition(t *testing.T) {
	_, err := Tokenize("a = 1\nb = @")
	var lexErr *LexError
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, 2, lexErr.Line)
	assert.Equal(t, 5, lexErr.Col)
}
