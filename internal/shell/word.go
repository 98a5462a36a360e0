package shell

import (
	"fmt"
	"strings"
)

// WordReader is a small stand-in for ash's readtoken1. It reads one word
// starting at the lead character handed over by ReadToken, honouring
// backslash escapes and single and double quotes. Variables, command
// substitution, here-documents and redirections are not recognized.
type WordReader struct {
	src  Source
	last string
}

func NewWordReader(src Source) *WordReader {
	return &WordReader{src: src}
}

// LastWord returns the text of the most recent TWORD.
func (w *WordReader) LastWord() string {
	return w.last
}

// ReadToken1 reads the rest of a word. ctx and depth are accepted for
// signature compatibility and ignored.
func (w *WordReader) ReadToken1(lead, syntax int, ctx any, depth int) (int, error) {
	switch lead {
	case PEOF:
		return int(TEOF), nil
	case '\n':
		return int(TNL), nil
	}

	var quote int
	switch syntax {
	case BASESYNTAX:
	case DQSYNTAX:
		quote = '"'
	case SQSYNTAX:
		quote = '\''
	default:
		return 0, fmt.Errorf("readtoken1: unsupported syntax %s", syntaxName(syntax))
	}

	var b strings.Builder
	c := lead
	first := true
	for {
		if !first && quote == 0 && isWordBreak(c) {
			if err := w.src.Pushback(); err != nil {
				return 0, err
			}
			break
		}
		first = false

		switch {
		case c == PEOF:
			return 0, fmt.Errorf("readtoken1: unterminated %c quote", rune(quote))
		case quote == 0 && (c == '\'' || c == '"'):
			quote = c
		case quote != 0 && c == quote:
			quote = 0
		case c == '\\' && quote != '\'':
			next := w.src.Next()
			switch next {
			case PEOF:
				b.WriteByte('\\')
				c = next
				continue
			case '\n':
				// line continuation inside a word
			default:
				b.WriteRune(rune(next))
			}
		default:
			b.WriteRune(rune(c))
		}
		c = w.src.Next()
	}

	w.last = b.String()
	return int(TWORD), nil
}

func isWordBreak(c int) bool {
	switch c {
	case PEOF, ' ', '\t', '\n', '(', ')', '&', '|', ';':
		return true
	}
	return false
}

func syntaxName(syntax int) string {
	if syntax >= 0 && syntax < len(syntaxNames) {
		return syntaxNames[syntax]
	}
	return fmt.Sprintf("syntax(%d)", syntax)
}
