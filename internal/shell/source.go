package shell

import (
	"github.com/funvibe/softbind/internal/registry"
)

// Source is a sequential character stream. Next returns PEOF once the
// input is exhausted. Pushback undoes the most recent Next and is valid
// only once per Next.
type Source interface {
	Next() int
	Pushback() error
}

// Function types of the hooks the token classifier reads from its
// binding environment.
type (
	GetcFunc       = func() int
	UngetcFunc     = func() error
	ReadToken1Func = func(lead, syntax int, ctx any, depth int) (int, error)
	NotifyFunc     = func()
)

// StreamArgs returns the call-time bindings that connect src to the
// classifier's pgetc and pungetc parameters.
func StreamArgs(src Source) registry.Bindings {
	return registry.Bindings{
		"pgetc":   GetcFunc(src.Next),
		"pungetc": UngetcFunc(src.Pushback),
	}
}

// StringSource reads characters from a string.
type StringSource struct {
	input  []rune
	pos    int
	unread bool // last Next may be pushed back
	atEOF  bool // last Next returned PEOF
}

func NewStringSource(input string) *StringSource {
	return &StringSource{input: []rune(input)}
}

func (s *StringSource) Next() int {
	s.unread = true
	if s.pos >= len(s.input) {
		s.atEOF = true
		return PEOF
	}
	s.atEOF = false
	c := s.input[s.pos]
	s.pos++
	return int(c)
}

func (s *StringSource) Pushback() error {
	if !s.unread {
		return &registry.PreconditionError{Op: "pushback", Reason: "no unconsumed read to push back"}
	}
	s.unread = false
	if !s.atEOF {
		s.pos--
	}
	return nil
}

// Pos is the number of characters consumed so far.
func (s *StringSource) Pos() int { return s.pos }

// Remaining returns the unconsumed input.
func (s *StringSource) Remaining() string { return string(s.input[s.pos:]) }
