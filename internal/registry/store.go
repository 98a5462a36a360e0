package registry

import (
	"fmt"
	"log"
	"maps"
	"slices"
)

// Store is an append-only collection of models indexed by id.
// Registration is expected to finish before any resolution starts.
type Store struct {
	models []Model
	byID   map[string]Model

	// Logger receives resolution traces when set.
	Logger *log.Logger
}

func NewStore() *Store {
	return &Store{byID: make(map[string]Model)}
}

// Register adds a copy of m. Ids are unique across all kinds.
func (s *Store) Register(m Model) error {
	if m == nil || reflectNil(m) {
		return &PreconditionError{Op: "register", Reason: "nil model"}
	}
	id := m.ModelID()
	if id == "" {
		return &PreconditionError{Op: "register", Reason: fmt.Sprintf("%s model without id", m.Kind())}
	}
	if _, exists := s.byID[id]; exists {
		return fmt.Errorf("register %s: %w", id, ErrDuplicateModel)
	}
	if s.byID == nil {
		s.byID = make(map[string]Model)
	}
	m = cloneModel(m)
	s.models = append(s.models, m)
	s.byID[id] = m
	return nil
}

func (s *Store) RegisterConstants(c *Constants) error { return s.Register(c) }
func (s *Store) RegisterEnum(e *Enum) error           { return s.Register(e) }
func (s *Store) RegisterFunction(f *Function) error   { return s.Register(f) }

// Find returns the model registered under id with the given kind.
func (s *Store) Find(id string, kind Kind) (Model, error) {
	m, ok := s.byID[id]
	if !ok || m.Kind() != kind {
		return nil, &NotFoundError{ID: id, Kind: kind.String()}
	}
	return m, nil
}

// Lookup returns the model registered under id, whatever its kind.
func (s *Store) Lookup(id string) (Model, bool) {
	m, ok := s.byID[id]
	return m, ok
}

// Models returns the registered models in registration order.
func (s *Store) Models() []Model {
	return slices.Clone(s.models)
}

func (s *Store) Len() int {
	return len(s.models)
}

func reflectNil(m Model) bool {
	switch mm := m.(type) {
	case *Constants:
		return mm == nil
	case *Enum:
		return mm == nil
	case *Function:
		return mm == nil
	}
	return false
}

// cloneModel detaches the stored model from the caller's maps and slices.
func cloneModel(m Model) Model {
	switch mm := m.(type) {
	case *Constants:
		c := *mm
		c.Values = maps.Clone(mm.Values)
		return &c
	case *Enum:
		e := *mm
		e.Values = slices.Clone(mm.Values)
		return &e
	case *Function:
		f := *mm
		f.Imports = slices.Clone(mm.Imports)
		f.Parameters = maps.Clone(mm.Parameters)
		f.Notes = slices.Clone(mm.Notes)
		if mm.Source != nil {
			src := *mm.Source
			f.Source = &src
		}
		return &f
	}
	return m
}
