package template

import (
	"fmt"
	"strings"
)

const (
	tagOpen  = "<%"
	tagClose = "%>"
)

// Tokenize splits src into text, newline and tag tokens.
func Tokenize(src []byte) ([]Token, error) {
	s := string(src)
	line := 1
	var toks []Token
	for len(s) > 0 {
		nl := strings.IndexByte(s, '\n')
		tag := strings.Index(s, tagOpen)
		switch {
		case nl < 0 && tag < 0:
			toks = append(toks, Token{Type: TText, Line: line, Text: s})
			s = ""
		case tag < 0 || (nl >= 0 && nl < tag):
			if nl > 0 {
				toks = append(toks, Token{Type: TText, Line: line, Text: s[:nl]})
			}
			toks = append(toks, Token{Type: TNewLine, Line: line})
			line++
			s = s[nl+1:]
		default:
			if tag > 0 {
				toks = append(toks, Token{Type: TText, Line: line, Text: s[:tag]})
				s = s[tag:]
			}
			end := strings.Index(s[len(tagOpen):], tagClose)
			if end < 0 {
				return nil, fmt.Errorf("%w at line %d", ErrUnterminated, line)
			}
			end += len(tagOpen)
			tok := tagToken(s[len(tagOpen):end])
			tok.Line = line
			toks = append(toks, tok)
			// tags may span lines
			line += strings.Count(s[:end], "\n")
			s = s[end+len(tagClose):]
		}
	}
	return toks, nil
}

func tagToken(body string) Token {
	if rest, ok := strings.CutPrefix(body, "="); ok {
		return Token{Type: TExpression, Text: strings.TrimSpace(rest)}
	}
	tok := Token{Type: TStatement}
	if rest, ok := strings.CutPrefix(body, "-"); ok {
		tok.TrimBefore = true
		body = rest
	}
	if rest, ok := strings.CutSuffix(body, "-"); ok {
		tok.TrimAfter = true
		body = rest
	}
	tok.Text = strings.TrimSpace(body)
	return tok
}
