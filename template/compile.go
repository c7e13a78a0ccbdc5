package template

import (
	"strings"

	"github.com/signadot/rmarshal/debug"
	"github.com/signadot/rmarshal/script"
)

// Compile translates a template into a Lua program that renders it.
func Compile(src []byte) (string, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return "", err
	}
	sb := &strings.Builder{}
	sb.WriteString("local _sb = {}\n")
	for len(toks) > 0 {
		var line []Token
		line, toks = nextLine(toks)
		for i := range line {
			writeToken(sb, &line[i])
		}
	}
	sb.WriteString("ctx:set_output(_sb)\n")
	res := sb.String()
	if debug.Template() {
		debug.Logf("compiled template:\n%s", res)
	}
	return res, nil
}

// nextLine takes the tokens up to and including the next newline, applies
// the trim flags and returns the line along with the remaining tokens.
func nextLine(toks []Token) (line, rest []Token) {
	newline := false
	i := 0
	for ; i < len(toks); i++ {
		if toks[i].Type == TNewLine {
			newline = true
			break
		}
	}
	line = append([]Token(nil), toks[:i]...)
	if newline {
		rest = toks[i+1:]
	}
	var nlTok Token
	if newline {
		nlTok = toks[i]
	}

	for j := 0; j+1 < len(line); {
		if line[j].IsBlank() && line[j+1].trimsBefore() {
			line = append(line[:j], line[j+1:]...)
			continue
		}
		if line[j].trimsAfter() && line[j+1].IsBlank() {
			line = append(line[:j+1], line[j+2:]...)
		}
		j++
	}

	if newline && (len(line) != 1 || !line[0].trimsAfter()) {
		line = append(line, nlTok)
	}
	return line, rest
}

func writeToken(sb *strings.Builder, tok *Token) {
	switch tok.Type {
	case TExpression:
		sb.WriteString("table.insert(_sb, ")
		sb.WriteString(tok.Text)
		sb.WriteString(")\n")
	case TNewLine:
		sb.WriteString("table.insert(_sb, \"\\n\")\n")
	case TStatement:
		sb.WriteString(tok.Text)
		sb.WriteString("\n")
	case TText:
		sb.WriteString("table.insert(_sb, ")
		sb.WriteString(script.Quote(tok.Text))
		sb.WriteString(")\n")
	}
}
