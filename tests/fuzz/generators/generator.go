package generators

import (
	"math/rand"
	"strings"

	"github.com/funvibe/softbind/internal/shell"
)

// RandomSource abstracts the source of randomness.
type RandomSource interface {
	Intn(n int) int
}

// RandSource wraps math/rand.
type RandSource struct {
	*rand.Rand
}

// ByteSource uses a byte slice as a source of randomness.
type ByteSource struct {
	data []byte
	pos  int
}

func (s *ByteSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	if s.pos >= len(s.data) {
		return 0
	}
	v := int(s.data[s.pos])
	s.pos++
	return v % n
}

// Generator produces shell input together with the lexemes Tokenize must
// return for it.
type Generator struct {
	src   RandomSource
	words []string
}

const MaxPieces = 12

func New(seed int64) *Generator {
	return &Generator{
		src:   &RandSource{rand.New(rand.NewSource(seed))},
		words: []string{"echo", "ls", "a", "x1", "grep", "done"},
	}
}

func NewFromData(data []byte) *Generator {
	return &Generator{
		src:   &ByteSource{data: data},
		words: []string{"echo", "ls", "a", "x1", "grep", "done"},
	}
}

// Script is a generated input and its expected classification.
type Script struct {
	Input   string
	Want    []shell.Lexeme
	Prompts int
}

var operators = []struct {
	text  string
	token shell.Token
}{
	{"(", shell.TLP},
	{")", shell.TRP},
	{"&", shell.TBACKGND},
	{"&&", shell.TAND},
	{"|", shell.TPIPE},
	{"||", shell.TOR},
	{";", shell.TSEMI},
	{";;", shell.TENDCASE},
	{"\n", shell.TNL},
}

// GenerateScript builds a script of blank-separated pieces. Every piece
// but a line continuation yields exactly one lexeme.
func (g *Generator) GenerateScript() Script {
	var sb strings.Builder
	var s Script

	count := g.src.Intn(MaxPieces) + 1
	for i := 0; i < count; i++ {
		if i > 0 {
			sb.WriteString(g.blank())
		}
		switch g.src.Intn(6) {
		case 0, 1:
			op := operators[g.src.Intn(len(operators))]
			sb.WriteString(op.text)
			s.Want = append(s.Want, shell.Lexeme{Token: op.token})
		case 2:
			text, word := g.quotedWord()
			sb.WriteString(text)
			s.Want = append(s.Want, shell.Lexeme{Token: shell.TWORD, Text: word})
		case 3:
			sb.WriteString("\\\n")
			s.Prompts++
		case 4:
			// The comment's newline is classified by readtoken1.
			sb.WriteString("# " + g.word() + " ;|&\n")
			s.Want = append(s.Want, shell.Lexeme{Token: shell.TNL})
		default:
			w := g.word()
			sb.WriteString(w)
			s.Want = append(s.Want, shell.Lexeme{Token: shell.TWORD, Text: w})
		}
	}

	s.Input = sb.String()
	s.Want = append(s.Want, shell.Lexeme{Token: shell.TEOF})
	return s
}

func (g *Generator) blank() string {
	if g.src.Intn(4) == 0 {
		return "\t"
	}
	return " "
}

func (g *Generator) word() string {
	return g.words[g.src.Intn(len(g.words))]
}

// quotedWord returns the source text of a word containing operator
// characters and the text the word reader should produce for it.
func (g *Generator) quotedWord() (string, string) {
	a, b := g.word(), g.word()
	switch g.src.Intn(3) {
	case 0:
		return `"` + a + " | " + b + `"`, a + " | " + b
	case 1:
		return "'" + a + `;\` + b + "'", a + `;\` + b
	default:
		return a + `\&` + b, a + "&" + b
	}
}
