// Package report prints pass/fail lines for the demonstration checks.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/mattn/go-isatty"
)

const (
	passPrefix = "\x1b[32;1mTEST PASS: \x1b[0m"
	failPrefix = "\x1b[31;1mTEST FAIL: \x1b[0m"
)

// Reporter writes one line per assertion and counts outcomes.
type Reporter struct {
	w      io.Writer
	color  bool
	Passed int
	Failed int
}

// New returns a Reporter writing to w. Colors are used only when w is a
// terminal that supports them.
func New(w io.Writer) *Reporter {
	return &Reporter{w: w, color: colorEnabled(w)}
}

// NewPlain returns a Reporter that never emits escape sequences.
func NewPlain(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

func colorEnabled(w io.Writer) bool {
	// NO_COLOR convention: https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// Equal records whether got deeply equals want. label names the check.
func (r *Reporter) Equal(label string, want, got any) bool {
	ok := reflect.DeepEqual(want, got)
	vals := map[string]any{"want": want, "got": got}
	if ok {
		r.Passed++
		r.line(true, label, vals)
	} else {
		r.Failed++
		r.line(false, label, vals)
	}
	return ok
}

// Error records a failed check caused by err.
func (r *Reporter) Error(label string, err error) {
	r.Failed++
	r.line(false, label, map[string]any{"error": err.Error()})
}

func (r *Reporter) line(pass bool, label string, vals map[string]any) {
	data, err := json.Marshal(vals)
	if err != nil {
		data = []byte(fmt.Sprint(vals))
	}
	prefix := "TEST PASS: "
	if !pass {
		prefix = "TEST FAIL: "
	}
	if r.color {
		prefix = passPrefix
		if !pass {
			prefix = failPrefix
		}
	}
	fmt.Fprintf(r.w, "%s%s: %s\n", prefix, label, data)
}

// Summary writes the totals and reports whether every check passed.
func (r *Reporter) Summary() bool {
	fmt.Fprintf(r.w, "%d passed, %d failed\n", r.Passed, r.Failed)
	return r.Failed == 0
}
