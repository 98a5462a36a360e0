package shell

import "fmt"

// PEOF is the character returned by a Source at end of input. It lies
// outside the byte range so it cannot collide with a real character.
const PEOF = 256

type Token int

// Token values are the ordinals of the token-enum model.
const (
	TEOF Token = iota
	TNL
	TREDIR
	TWORD
	TSEMI
	TBACKGND
	TAND
	TOR
	TPIPE
	TLP
	TRP
	TENDCASE
	TENDBQUOTE
	TNOT
	TCASE
	TDO
	TDONE
	TELIF
	TELSE
	TESAC
	TFI
	TFOR
	TIF
	TIN
	TTHEN
	TUNTIL
	TWHILE
	TBEGIN
	TEND
	TFUNCTION
)

var tokenNames = []string{
	"TEOF",
	"TNL",
	"TREDIR",
	"TWORD",
	"TSEMI",
	"TBACKGND",
	"TAND",
	"TOR",
	"TPIPE",
	"TLP",
	"TRP",
	"TENDCASE",
	"TENDBQUOTE",
	"TNOT",
	"TCASE",
	"TDO",
	"TDONE",
	"TELIF",
	"TELSE",
	"TESAC",
	"TFI",
	"TFOR",
	"TIF",
	"TIN",
	"TTHEN",
	"TUNTIL",
	"TWHILE",
	"TBEGIN",
	"TEND",
	"TFUNCTION", // bash: sits between TFOR and TIF there
}

func (t Token) String() string {
	if t >= 0 && int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("Token(%d)", int(t))
}

// Lexer syntax modes (ash syntax tables).
const (
	BASESYNTAX = iota
	DQSYNTAX
	SQSYNTAX
	ARISYNTAX
)

var syntaxNames = []string{"BASESYNTAX", "DQSYNTAX", "SQSYNTAX", "ARISYNTAX"}

type syntaxClass struct {
	name    string
	value   int
	comment string
}

var syntaxClasses = []syntaxClass{
	{"CWORD", 0, "character is nothing special"},
	{"CNL", 1, "newline character"},
	{"CBACK", 2, "a backslash character"},
	{"CSQUOTE", 3, "single quote"},
	{"CDQUOTE", 4, "double quote"},
	{"CENDQUOTE", 5, "a terminating quote"},
	{"CBQUOTE", 6, "backwards single quote"},
	{"CVAR", 7, "a dollar sign"},
	{"CENDVAR", 8, "a '}' character"},
	{"CLP", 9, "a left paren in arithmetic"},
	{"CRP", 10, "a right paren in arithmetic"},
	{"CENDFILE", 11, "end of file"},
	{"CCTL", 12, "like CWORD, except it must be escaped"},
	{"CSPCL", 13, "these terminate a word"},
	{"CIGN", 14, "character should be ignored"},
	{"PEOF", PEOF, "end of file"},
}
