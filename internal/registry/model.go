// Package registry stores named models (constant tables, enumerations and
// parametrized function bodies) and resolves the references between them
// into callables.
//
// A function model lists the models it imports and the parameters it
// expects. Resolving it produces a Callable whose binding environment is
// assembled fresh for every Resolve call:
//
//	placeholder < import-derived < override < call-time argument
//
// Later tiers overwrite earlier ones key by key.
package registry

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/funvibe/softbind/internal/config"
)

type Kind int

const (
	KindFunction Kind = iota
	KindConstants
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return config.FunctionKindName
	case KindConstants:
		return config.ConstantsKindName
	case KindEnum:
		return config.EnumKindName
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a kind name ("Function", "Constants", "Enum") to its Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case config.FunctionKindName:
		return KindFunction, nil
	case config.ConstantsKindName:
		return KindConstants, nil
	case config.EnumKindName:
		return KindEnum, nil
	}
	return 0, &PreconditionError{Op: "parse kind", Reason: fmt.Sprintf("unknown model kind %q", name)}
}

// Model is one of *Constants, *Enum or *Function.
type Model interface {
	ModelID() string
	Kind() Kind
	model()
}

// Constant is a single entry of a constant table.
type Constant struct {
	Value   int
	Comment string
}

// Constants is a table of explicit integer values. Values need not be
// contiguous or start at zero.
type Constants struct {
	ID     string
	Name   string
	Values map[string]Constant
}

func (c *Constants) ModelID() string { return c.ID }
func (c *Constants) Kind() Kind      { return KindConstants }
func (c *Constants) model()          {}

// Enum is an ordered list of symbols; a symbol's value is its position.
type Enum struct {
	ID     string
	Values []string
}

func (e *Enum) ModelID() string { return e.ID }
func (e *Enum) Kind() Kind      { return KindEnum }
func (e *Enum) model()          {}

// Ordinal returns the position of name, or -1.
func (e *Enum) Ordinal(name string) int {
	for i, v := range e.Values {
		if v == name {
			return i
		}
	}
	return -1
}

// ImportSpec references another model by id. Splat merges every exported
// symbol of the source into the binding environment.
type ImportSpec struct {
	From  string
	Splat bool
}

type ParamKind string

// ParamFunction marks a function-typed parameter. It is the only parameter
// kind resolution acts on.
const ParamFunction ParamKind = config.FunctionKindName

// Body is the code of a function model. It receives the merged binding
// environment as its only input.
type Body func(env Bindings) (any, error)

// Provenance records where a ported body came from.
type Provenance struct {
	Kind string
	URI  string
}

// Function is a parametrized body together with the models it imports.
type Function struct {
	ID         string
	Name       string // Diagnostic; derived from Body when empty
	Imports    []ImportSpec
	Parameters map[string]ParamKind
	Body       Body
	Source     *Provenance
	Notes      []string
}

func (f *Function) ModelID() string { return f.ID }
func (f *Function) Kind() Kind      { return KindFunction }
func (f *Function) model()          {}

// BodyName returns Name, or the Go symbol name of Body when Name is empty.
func (f *Function) BodyName() string {
	if f.Name != "" {
		return f.Name
	}
	if f.Body == nil {
		return f.ID
	}
	fn := runtime.FuncForPC(reflect.ValueOf(f.Body).Pointer())
	if fn == nil {
		return f.ID
	}
	name := fn.Name()
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
