package script

// Parse tokenizes and parses script source text into its top-level
// dictionary.
func Parse(input string) (*Dict, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// ParseTokens builds the document tree from a token sequence. The top
// level is a run of `identifier = value` pairs.
func ParseTokens(tokens []Token) (*Dict, error) {
	p := &parser{tokens: tokens}
	doc := NewDict()

	for !p.done() {
		tok := p.advance()
		if tok.Type != IDENT {
			return nil, &ParseError{Code: ExpectedIdentifier, Token: tok}
		}
		if err := p.expect(EQUAL); err != nil {
			return nil, err
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		doc.Set(tok.Text, v)
	}
	return doc, nil
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) done() bool {
	return p.pos >= len(p.tokens)
}

// advance returns the next token, or nil when the stream is exhausted.
func (p *parser) advance() *Token {
	if p.done() {
		return nil
	}
	tok := &p.tokens[p.pos]
	p.pos++
	return tok
}

// peek looks one token ahead without consuming it.
func (p *parser) peek() *Token {
	if p.done() {
		return nil
	}
	return &p.tokens[p.pos]
}

func (p *parser) expect(tt TokenType) error {
	tok := p.advance()
	if tok == nil {
		return &ParseError{Code: UnexpectedEndOfInput}
	}
	if tok.Type != tt {
		return &ParseError{Code: UnexpectedToken, Token: tok}
	}
	return nil
}

func (p *parser) parseValue() (Value, error) {
	tok := p.advance()
	if tok == nil {
		return nil, &ParseError{Code: UnexpectedEndOfInput}
	}

	switch tok.Type {
	case LCURLY:
		return p.parseArray()
	case STRING:
		return String(tok.Text), nil
	case INTEGER:
		return Integer(tok.Int), nil
	case FLOAT:
		return Float(tok.Num), nil
	case IDENT:
		// A bare identifier is a string value, unless an '=' follows:
		// then it is a single-key dictionary wrapping the next value.
		if next := p.peek(); next != nil && next.Type == EQUAL {
			p.advance()
			v, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			d := NewDict()
			d.Set(tok.Text, v)
			return d, nil
		}
		return String(tok.Text), nil
	default:
		return nil, &ParseError{Code: UnexpectedToken, Token: tok}
	}
}

// parseArray consumes array elements after the opening brace. Commas
// separate elements but extra or trailing commas are tolerated.
func (p *parser) parseArray() (Value, error) {
	values := Array{}
	for {
		tok := p.peek()
		if tok == nil {
			return nil, &ParseError{Code: UnexpectedEndOfInput}
		}
		switch tok.Type {
		case RCURLY:
			p.advance()
			return values, nil
		case COMMA:
			p.advance()
		default:
			v, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
	}
}
