package registry

import (
	"fmt"
	"maps"

	"github.com/google/uuid"

	"github.com/funvibe/softbind/internal/config"
)

// Bindings maps symbol names to values: ints for constants and enum
// members, functions or Placeholders for function-typed parameters.
type Bindings map[string]any

// Int returns the integer bound to name.
func (b Bindings) Int(name string) (int, error) {
	v, ok := b[name]
	if !ok {
		return 0, &NotFoundError{ID: name}
	}
	n, ok := v.(int)
	if !ok {
		return 0, &PreconditionError{Op: "binding " + name, Reason: fmt.Sprintf("expected int, got %T", v)}
	}
	return n, nil
}

// Callable is a function body bound to a resolved environment.
type Callable struct {
	ResolutionID uuid.UUID
	Label        string
	ModelID      string

	body Body
	env  Bindings
}

// CallableLabel returns the diagnostic label of a callable built from f.
func CallableLabel(f *Function) string {
	return f.BodyName() + config.CallableLabelSuffix
}

// Call runs the body with args merged over the resolved bindings. args win
// for this call only. The body's result is returned unchanged.
func (c *Callable) Call(args Bindings) (any, error) {
	if c.body == nil {
		return nil, &PreconditionError{Op: "call " + c.Label, Reason: "function model has no body"}
	}
	env := make(Bindings, len(c.env)+len(args))
	maps.Copy(env, c.env)
	maps.Copy(env, args)
	return c.body(env)
}

// Bindings returns a copy of the resolved environment.
func (c *Callable) Bindings() Bindings {
	return maps.Clone(c.env)
}

func (c *Callable) String() string {
	return c.Label
}
