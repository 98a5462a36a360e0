package shell

import (
	"fmt"
	"unicode/utf8"

	"github.com/funvibe/softbind/internal/config"
	"github.com/funvibe/softbind/internal/registry"
)

// Lexeme is a classified token; Text is set for TWORD.
type Lexeme struct {
	Token Token
	Text  string
}

func (l Lexeme) String() string {
	if l.Token == TWORD {
		return fmt.Sprintf("%s(%q)", l.Token, l.Text)
	}
	return l.Token.String()
}

// Scan is the result of Tokenize.
type Scan struct {
	Lexemes []Lexeme
	Prompts int // line continuations folded
	Lines   int // newlines classified as TNL by the dispatch step
}

// Tokenize runs the xxreadtoken model from store over input until TEOF,
// using WordReader for everything that is not an operator.
func Tokenize(store *registry.Store, input string) (*Scan, error) {
	src := NewStringSource(input)
	words := NewWordReader(src)
	scan := &Scan{}

	call, err := store.Resolve(config.ReadTokenID, registry.Bindings{
		"readtoken1": ReadToken1Func(words.ReadToken1),
		"nlprompt":   NotifyFunc(func() { scan.Prompts++ }),
		"nlnoprompt": NotifyFunc(func() { scan.Lines++ }),
	})
	if err != nil {
		return nil, err
	}

	args := StreamArgs(src)
	// Every call but the last consumes at least one character.
	limit := utf8.RuneCountInString(input) + 1
	for i := 0; i < limit; i++ {
		res, err := call.Call(args)
		if err != nil {
			return scan, fmt.Errorf("at offset %d: %w", src.Pos(), err)
		}
		n, ok := res.(int)
		if !ok {
			return scan, fmt.Errorf("%s returned %T, want int", call.Label, res)
		}
		lx := Lexeme{Token: Token(n)}
		if lx.Token == TWORD {
			lx.Text = words.LastWord()
		}
		scan.Lexemes = append(scan.Lexemes, lx)
		if lx.Token == TEOF {
			return scan, nil
		}
	}
	return scan, fmt.Errorf("%s made no progress at offset %d", call.Label, src.Pos())
}
