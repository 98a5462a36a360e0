package shell

import (
	"fmt"
	"reflect"

	"github.com/funvibe/softbind/internal/registry"
)

// UnboundParameterError is returned when a hook the classifier cannot do
// without is missing or still bound to its placeholder.
type UnboundParameterError struct {
	Name  string
	Value any
}

func (e *UnboundParameterError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("parameter %s is not bound", e.Name)
	}
	return fmt.Sprintf("parameter %s is bound to %T", e.Name, e.Value)
}

type hooks struct {
	getc       GetcFunc
	ungetc     UngetcFunc
	readtoken1 ReadToken1Func
	nlprompt   NotifyFunc
	nlnoprompt NotifyFunc
}

type symbols struct {
	peof, baseSyntax                           int
	teof, tnl, tlp, trp                        int
	tbackgnd, tpipe, tsemi, tand, tor, tendcase int
}

// required returns the hook bound to name. F is always a func type; a nil
// func counts as unbound.
func required[F any](env registry.Bindings, name string) (F, error) {
	f, ok := env[name].(F)
	if !ok || reflect.ValueOf(f).IsNil() {
		return f, &UnboundParameterError{Name: name, Value: env[name]}
	}
	return f, nil
}

// notifier treats a placeholder as a no-op.
func notifier(env registry.Bindings, name string) (NotifyFunc, error) {
	switch v := env[name].(type) {
	case NotifyFunc:
		if v != nil {
			return v, nil
		}
	case registry.Placeholder:
		return v.Call, nil
	}
	return nil, &UnboundParameterError{Name: name, Value: env[name]}
}

func bindHooks(env registry.Bindings) (*hooks, error) {
	var (
		h   hooks
		err error
	)
	if h.getc, err = required[GetcFunc](env, "pgetc"); err != nil {
		return nil, err
	}
	if h.ungetc, err = required[UngetcFunc](env, "pungetc"); err != nil {
		return nil, err
	}
	if h.readtoken1, err = required[ReadToken1Func](env, "readtoken1"); err != nil {
		return nil, err
	}
	if h.nlprompt, err = notifier(env, "nlprompt"); err != nil {
		return nil, err
	}
	if h.nlnoprompt, err = notifier(env, "nlnoprompt"); err != nil {
		return nil, err
	}
	return &h, nil
}

func bindSymbols(env registry.Bindings) (*symbols, error) {
	var s symbols
	fields := []struct {
		name string
		dst  *int
	}{
		{"PEOF", &s.peof},
		{"BASESYNTAX", &s.baseSyntax},
		{"TEOF", &s.teof},
		{"TNL", &s.tnl},
		{"TLP", &s.tlp},
		{"TRP", &s.trp},
		{"TBACKGND", &s.tbackgnd},
		{"TPIPE", &s.tpipe},
		{"TSEMI", &s.tsemi},
		{"TAND", &s.tand},
		{"TOR", &s.tor},
		{"TENDCASE", &s.tendcase},
	}
	for _, f := range fields {
		v, err := env.Int(f.name)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}
	return &s, nil
}

// ReadToken is the body of the xxreadtoken function model: one dispatch
// step of the ash tokenizer. It skips blanks and comments, folds line
// continuations, and classifies the operators \n ( ) & && | || ; ;;.
// Anything else is handed to readtoken1.
//
// Ported from busybox ash; lasttoken, the PEOA check and bash's &>
// redirect are left out.
func ReadToken(env registry.Bindings) (any, error) {
	h, err := bindHooks(env)
	if err != nil {
		return nil, err
	}
	sym, err := bindSymbols(env)
	if err != nil {
		return nil, err
	}

	for {
		c := h.getc()
		if c == ' ' || c == '\t' {
			continue
		}

		switch {
		case c == '#':
			// The terminating newline or PEOF goes to readtoken1; classification
			// does not restart.
			for c = h.getc(); c != '\n' && c != sym.peof; c = h.getc() {
			}
		case c == '\\':
			if h.getc() == '\n' {
				h.nlprompt()
				continue
			}
			if err := h.ungetc(); err != nil {
				return nil, err
			}
		case c == sym.peof:
			return sym.teof, nil
		case c == '\n':
			h.nlnoprompt()
			return sym.tnl, nil
		case c == '(':
			return sym.tlp, nil
		case c == ')':
			return sym.trp, nil
		case c == '&':
			return peekDouble(h, c, sym.tbackgnd, sym.tand)
		case c == '|':
			return peekDouble(h, c, sym.tpipe, sym.tor)
		case c == ';':
			return peekDouble(h, c, sym.tsemi, sym.tendcase)
		}

		return h.readtoken1(c, sym.baseSyntax, nil, 0)
	}
}

// peekDouble returns double when the next character repeats c and
// consumes it; otherwise it pushes the character back and returns single.
func peekDouble(h *hooks, c, single, double int) (any, error) {
	if h.getc() == c {
		return double, nil
	}
	if err := h.ungetc(); err != nil {
		return nil, err
	}
	return single, nil
}
