package script

import "fmt"

// TokenType represents the kind of token.
type TokenType int

const (
	EQUAL  TokenType = iota // "="
	LCURLY                  // "{"
	RCURLY                  // "}"
	COMMA                   // ","
	IDENT                   // bare name: astver, block_00000, text
	STRING                  // quoted string, escapes decoded
	INTEGER
	FLOAT
)

var tokenNames = map[TokenType]string{
	EQUAL:   "'='",
	LCURLY:  "'{'",
	RCURLY:  "'}'",
	COMMA:   "','",
	IDENT:   "identifier",
	STRING:  "string",
	INTEGER: "integer",
	FLOAT:   "float",
}

func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is one lexical unit of a script file.
type Token struct {
	Type TokenType
	Text string  // IDENT and STRING payload
	Int  int64   // INTEGER payload
	Num  float64 // FLOAT payload
	Line int     // 1-based source line
	Col  int     // 1-based source column
}

func (t Token) String() string {
	switch t.Type {
	case IDENT:
		return fmt.Sprintf("identifier %q", t.Text)
	case STRING:
		return fmt.Sprintf("string %q", t.Text)
	case INTEGER:
		return fmt.Sprintf("integer %d", t.Int)
	case FLOAT:
		return fmt.Sprintf("float %v", t.Num)
	}
	return t.Type.String()
}
