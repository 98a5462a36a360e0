package registry

import (
	"maps"
	"sort"

	"github.com/google/uuid"

	"github.com/funvibe/softbind/internal/pipeline"
)

// Placeholder is the inert stand-in bound to a function-typed parameter
// until an import, an override or a call-time argument replaces it.
type Placeholder struct {
	Model string
	Param string
}

func (p Placeholder) String() string {
	return "placeholder(" + p.Model + "." + p.Param + ")"
}

// Call does nothing.
func (Placeholder) Call() {}

// resolution is the context shared by the resolution stages.
type resolution struct {
	store     *Store
	fn        *Function
	overrides Bindings
	env       Bindings
}

var resolutionStages = pipeline.New[*resolution](
	pipeline.ProcessorFunc[*resolution](bindPlaceholders),
	pipeline.ProcessorFunc[*resolution](mergeImports),
	pipeline.ProcessorFunc[*resolution](applyOverrides),
)

// Resolve builds a Callable for the function model functionID. The binding
// environment is computed on every call; nothing is cached. overrides may
// be nil.
func (s *Store) Resolve(functionID string, overrides Bindings) (*Callable, error) {
	m, err := s.Find(functionID, KindFunction)
	if err != nil {
		return nil, err
	}
	fn := m.(*Function)

	r := &resolution{
		store:     s,
		fn:        fn,
		overrides: overrides,
		env:       make(Bindings),
	}
	if err := resolutionStages.Run(r); err != nil {
		return nil, err
	}

	c := &Callable{
		ResolutionID: uuid.New(),
		Label:        CallableLabel(fn),
		ModelID:      fn.ID,
		body:         fn.Body,
		env:          r.env,
	}
	if s.Logger != nil {
		s.Logger.Printf("resolved %s as %s (%d bindings, %d imports, %d overrides) id=%s",
			fn.ID, c.Label, len(r.env), len(fn.Imports), len(overrides), c.ResolutionID)
	}
	return c, nil
}

func bindPlaceholders(r *resolution) error {
	// Sorted for deterministic traces.
	names := make([]string, 0, len(r.fn.Parameters))
	for name := range r.fn.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if r.fn.Parameters[name] == ParamFunction {
			r.env[name] = Placeholder{Model: r.fn.ID, Param: name}
		}
	}
	return nil
}

func mergeImports(r *resolution) error {
	for _, imp := range r.fn.Imports {
		source, ok := r.store.Lookup(imp.From)
		if !ok {
			return &NotFoundError{ID: imp.From}
		}
		if !imp.Splat {
			return &UnsupportedImportModeError{Function: r.fn.ID, From: imp.From}
		}
		switch src := source.(type) {
		case *Constants:
			for name, c := range src.Values {
				r.env[name] = c.Value
			}
		case *Enum:
			for i, name := range src.Values {
				r.env[name] = i
			}
		case *Function:
			return &UnsupportedImportSourceError{Function: r.fn.ID, From: imp.From, Kind: src.Kind()}
		}
	}
	return nil
}

func applyOverrides(r *resolution) error {
	maps.Copy(r.env, r.overrides)
	return nil
}
