package manifest

import (
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/softbind/internal/registry"
)

// FromModels builds a manifest describing models. Function bodies are
// referenced by their body name.
func FromModels(models []registry.Model) *Manifest {
	m := &Manifest{}
	for _, model := range models {
		switch mm := model.(type) {
		case *registry.Constants:
			decl := ConstantsDecl{ID: mm.ID, Name: mm.Name, Values: make(map[string]ConstantDecl, len(mm.Values))}
			for name, c := range mm.Values {
				value := c.Value
				decl.Values[name] = ConstantDecl{Value: &value, Comment: c.Comment}
			}
			m.Constants = append(m.Constants, decl)
		case *registry.Enum:
			m.Enums = append(m.Enums, EnumDecl{ID: mm.ID, Values: slices.Clone(mm.Values)})
		case *registry.Function:
			name := mm.BodyName()
			decl := FunctionDecl{ID: mm.ID, Body: name, Notes: slices.Clone(mm.Notes)}
			for _, imp := range mm.Imports {
				splat := imp.Splat
				decl.Imports = append(decl.Imports, ImportDecl{From: imp.From, Splat: &splat})
			}
			if len(mm.Parameters) > 0 {
				decl.Parameters = make(map[string]string, len(mm.Parameters))
				for p, kind := range mm.Parameters {
					decl.Parameters[p] = string(kind)
				}
			}
			if mm.Source != nil {
				decl.Source = &SourceDecl{Kind: mm.Source.Kind, URI: mm.Source.URI}
			}
			m.Functions = append(m.Functions, decl)
		}
	}
	return m
}

// Marshal encodes the manifest as YAML.
func (m *Manifest) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}
