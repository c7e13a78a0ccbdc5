package template

import (
	"errors"
	"fmt"
)

var ErrUnterminated = errors.New("unterminated tag")

type TokenType int

const (
	TText TokenType = iota
	TNewLine
	TExpression
	TStatement
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TText:       "TText",
		TNewLine:    "TNewLine",
		TExpression: "TExpression",
		TStatement:  "TStatement",
	}[t]
}

type Token struct {
	Type TokenType
	// Line is 1-based.
	Line int
	// Text is the literal text, or the trimmed body of a tag.
	Text       string
	TrimBefore bool
	TrimAfter  bool
}

func (t *Token) String() string {
	switch t.Type {
	case TNewLine:
		return "TNewLine"
	case TStatement:
		return fmt.Sprintf("TStatement(%q, %t, %t)", t.Text, t.TrimBefore, t.TrimAfter)
	}
	return fmt.Sprintf("%s(%q)", t.Type, t.Text)
}

// IsBlank reports whether t is text made only of spaces and tabs.
func (t *Token) IsBlank() bool {
	if t.Type != TText {
		return false
	}
	for i := 0; i < len(t.Text); i++ {
		if c := t.Text[i]; c != ' ' && c != '\t' {
			return false
		}
	}
	return true
}

func (t *Token) trimsBefore() bool {
	return t.Type == TStatement && t.TrimBefore
}

func (t *Token) trimsAfter() bool {
	return t.Type == TStatement && t.TrimAfter
}
