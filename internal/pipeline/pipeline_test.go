package pipeline

import (
	"errors"
	"testing"
)

type trace struct {
	steps []string
}

func step(name string, err error) Processor[*trace] {
	return ProcessorFunc[*trace](func(t *trace) error {
		t.steps = append(t.steps, name)
		return err
	})
}

func TestPipelineRunsInOrder(t *testing.T) {
	p := New(step("a", nil), step("b", nil), step("c", nil))
	tr := &trace{}
	if err := p.Run(tr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(tr.steps); got != 3 || tr.steps[0] != "a" || tr.steps[2] != "c" {
		t.Errorf("steps = %v, want [a b c]", tr.steps)
	}
	if p.Len() != 3 {
		t.Errorf("Len() = %d, want 3", p.Len())
	}
}

func TestPipelineStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	p := New(step("a", nil), step("b", boom), step("c", nil))
	tr := &trace{}
	err := p.Run(tr)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if len(tr.steps) != 2 {
		t.Errorf("steps = %v, want [a b]", tr.steps)
	}
}
