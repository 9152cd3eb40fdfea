package search

import (
	"fmt"
	"strings"

	"github.com/pstuifzand/microqrart/internal/model"
)

// TokenType represents the type of a token in the search query
type TokenType int

const (
	TokenEOF    TokenType = iota
	TokenText             // word or "quoted words"
	TokenField            // field:value
	TokenRegex            // /pattern/
	TokenOr               // |
	TokenNot              // -
	TokenLParen           // (
	TokenRParen           // )
)

// Token represents a single token in the search query
type Token struct {
	Type  TokenType
	Value string
	Field FieldType
}

// FieldType names a record field usable as field:value
type FieldType string

const (
	FieldTitle  FieldType = "title"
	FieldSource FieldType = "source"
	FieldDate   FieldType = "date"
	FieldID     FieldType = "id"
)

var fields = map[string]FieldType{
	"title":  FieldTitle,
	"t":      FieldTitle,
	"source": FieldSource,
	"s":      FieldSource,
	"date":   FieldDate,
	"d":      FieldDate,
	"id":     FieldID,
}

func (f FieldType) valueOf(rec model.Record) string {
	switch f {
	case FieldTitle:
		return rec.Title
	case FieldSource:
		return rec.Source
	case FieldDate:
		return rec.Date
	case FieldID:
		return rec.ID
	}
	return ""
}

// Tokenizer converts a search query string into tokens
type Tokenizer struct {
	input []rune
	pos   int
}

// NewTokenizer creates a new tokenizer for the given input
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: []rune(input)}
}

// NextToken returns the next token in the input
func (t *Tokenizer) NextToken() (Token, error) {
	for t.pos < len(t.input) && t.input[t.pos] == ' ' {
		t.pos++
	}
	if t.pos >= len(t.input) {
		return Token{Type: TokenEOF}, nil
	}

	switch ch := t.input[t.pos]; ch {
	case '(':
		t.pos++
		return Token{Type: TokenLParen, Value: "("}, nil
	case ')':
		t.pos++
		return Token{Type: TokenRParen, Value: ")"}, nil
	case '|':
		t.pos++
		return Token{Type: TokenOr, Value: "|"}, nil
	case '-':
		t.pos++
		return Token{Type: TokenNot, Value: "-"}, nil
	case '"':
		value, err := t.readUntil('"')
		if err != nil {
			return Token{}, err
		}
		return Token{Type: TokenText, Value: value}, nil
	case '/':
		value, err := t.readUntil('/')
		if err != nil {
			return Token{}, err
		}
		return Token{Type: TokenRegex, Value: value}, nil
	}

	word := t.readWord()
	if name, value, ok := strings.Cut(word, ":"); ok {
		if field, known := fields[strings.ToLower(name)]; known {
			return Token{Type: TokenField, Field: field, Value: value}, nil
		}
	}
	return Token{Type: TokenText, Value: word}, nil
}

// readUntil reads the text between the delimiter at pos and the next one
func (t *Tokenizer) readUntil(delim rune) (string, error) {
	start := t.pos + 1
	for i := start; i < len(t.input); i++ {
		if t.input[i] == delim {
			t.pos = i + 1
			return string(t.input[start:i]), nil
		}
	}
	return "", fmt.Errorf("unterminated %c at position %d", delim, t.pos)
}

func (t *Tokenizer) readWord() string {
	start := t.pos
	for t.pos < len(t.input) && !strings.ContainsRune(" ()|", t.input[t.pos]) {
		t.pos++
	}
	return string(t.input[start:t.pos])
}

// Parser builds a FilterExpr. Adjacent terms are joined with AND, which binds
// tighter than |.
type Parser struct {
	tokens []Token
	pos    int
}

// ParseQuery parses a filter query. An empty query matches everything.
func ParseQuery(query string) (FilterExpr, error) {
	tokenizer := NewTokenizer(query)
	var tokens []Token
	for {
		tok, err := tokenizer.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}

	p := &Parser{tokens: tokens}
	if p.peek().Type == TokenEOF {
		return AlwaysMatchExpr{}, nil
	}

	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, fmt.Errorf("unexpected %q", tok.Value)
	}
	return expr, nil
}

func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *Parser) next() Token {
	tok := p.tokens[p.pos]
	if tok.Type != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *Parser) parseOr() (FilterExpr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == TokenOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &OrExpr{left: left, right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (FilterExpr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Type {
		case TokenEOF, TokenOr, TokenRParen:
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &AndExpr{left: left, right: right}
	}
}

func (p *Parser) parseUnary() (FilterExpr, error) {
	if p.peek().Type == TokenNot {
		p.next()
		expr, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &NotExpr{expr: expr}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (FilterExpr, error) {
	tok := p.next()
	switch tok.Type {
	case TokenText:
		return NewFuzzyExpr(tok.Value), nil
	case TokenField:
		return NewFieldExpr(tok.Field, tok.Value), nil
	case TokenRegex:
		return NewRegexExpr(tok.Value)
	case TokenLParen:
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.next().Type != TokenRParen {
			return nil, fmt.Errorf("missing closing parenthesis")
		}
		return expr, nil
	case TokenEOF:
		return nil, fmt.Errorf("unexpected end of query")
	default:
		return nil, fmt.Errorf("unexpected %q", tok.Value)
	}
}
