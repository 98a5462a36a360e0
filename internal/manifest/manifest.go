// Package manifest loads model declarations from softbind.yaml (or its
// TOML twin, softbind.toml).
//
// A manifest declares constant tables, enumerations and function models.
// Function bodies are Go code, so a function entry names its body and the
// caller supplies the table that maps body names to implementations.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/softbind/internal/config"
	"github.com/funvibe/softbind/internal/registry"
)

// Manifest represents the top-level softbind.yaml document.
type Manifest struct {
	Constants []ConstantsDecl `yaml:"constants,omitempty" toml:"constants,omitempty"`
	Enums     []EnumDecl      `yaml:"enums,omitempty" toml:"enums,omitempty"`
	Functions []FunctionDecl  `yaml:"functions,omitempty" toml:"functions,omitempty"`
}

// ConstantsDecl declares a constant table.
type ConstantsDecl struct {
	ID     string                  `yaml:"id" toml:"id"`
	Name   string                  `yaml:"name,omitempty" toml:"name,omitempty"`
	Values map[string]ConstantDecl `yaml:"values" toml:"values"`
}

// ConstantDecl is one constant. Value is required; a pointer tells an
// omitted value apart from zero.
type ConstantDecl struct {
	Value   *int   `yaml:"value" toml:"value"`
	Comment string `yaml:"comment,omitempty" toml:"comment,omitempty"`
}

// EnumDecl declares an enumeration; ordinals follow list order.
type EnumDecl struct {
	ID     string   `yaml:"id" toml:"id"`
	Values []string `yaml:"values" toml:"values"`
}

// FunctionDecl declares a function model.
type FunctionDecl struct {
	// ID is the model id used by Resolve.
	ID string `yaml:"id" toml:"id"`

	// Body names the Go implementation in the body table.
	Body string `yaml:"body" toml:"body"`

	// Name is the diagnostic name of the body. Defaults to Body.
	Name string `yaml:"name,omitempty" toml:"name,omitempty"`

	// Imports are merged in order; later imports win on collisions.
	Imports []ImportDecl `yaml:"imports,omitempty" toml:"imports,omitempty"`

	// Parameters maps parameter names to kinds. Only "Function" has an
	// effect: such parameters start out bound to a placeholder.
	Parameters map[string]string `yaml:"parameters,omitempty" toml:"parameters,omitempty"`

	Source *SourceDecl `yaml:"source,omitempty" toml:"source,omitempty"`
	Notes  []string    `yaml:"notes,omitempty" toml:"notes,omitempty"`
}

// ImportDecl references another model. Splat defaults to true; an explicit
// `splat: false` is kept and rejected at resolve time.
type ImportDecl struct {
	From  string `yaml:"from" toml:"from"`
	Splat *bool  `yaml:"splat,omitempty" toml:"splat,omitempty"`
}

// SourceDecl records where a ported body came from.
type SourceDecl struct {
	Kind string `yaml:"kind,omitempty" toml:"kind,omitempty"`
	URI  string `yaml:"uri,omitempty" toml:"uri,omitempty"`
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return ParseManifest(data, path)
}

type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// DetectFormat determines the manifest format from the file extension.
// Anything that is not .toml is read as YAML.
func DetectFormat(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".toml" {
		return FormatTOML
	}
	return FormatYAML
}

// ParseManifest parses manifest content from bytes. The format follows the
// extension of path, which is otherwise used only for error messages.
func ParseManifest(data []byte, path string) (*Manifest, error) {
	var m Manifest
	switch DetectFormat(path) {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &m); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	if err := m.validate(path); err != nil {
		return nil, err
	}
	m.setDefaults()
	return &m, nil
}

// FindManifest searches for a manifest (see config.ManifestFileNames) starting from dir and walking up
// to parent directories. Returns an empty path and nil error if none exists.
func FindManifest(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range config.ManifestFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// validate checks the manifest for semantic errors.
func (m *Manifest) validate(path string) error {
	if len(m.Constants)+len(m.Enums)+len(m.Functions) == 0 {
		return fmt.Errorf("%s: no models defined", path)
	}

	seen := make(map[string]string) // id → section
	claim := func(id, section string) error {
		if id == "" {
			return fmt.Errorf("%s: %s: id is required", path, section)
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("%s: %s: id %q already declared in %s", path, section, id, prev)
		}
		seen[id] = section
		return nil
	}

	for i, c := range m.Constants {
		section := fmt.Sprintf("constants[%d]", i)
		if err := claim(c.ID, section); err != nil {
			return err
		}
		if len(c.Values) == 0 {
			return fmt.Errorf("%s: %s (%s): no values defined", path, section, c.ID)
		}
		for name, v := range c.Values {
			if v.Value == nil {
				return fmt.Errorf("%s: %s (%s): value of %s is required", path, section, c.ID, name)
			}
		}
	}

	for i, e := range m.Enums {
		section := fmt.Sprintf("enums[%d]", i)
		if err := claim(e.ID, section); err != nil {
			return err
		}
		if len(e.Values) == 0 {
			return fmt.Errorf("%s: %s (%s): no values defined", path, section, e.ID)
		}
		for j, name := range e.Values {
			if name == "" {
				return fmt.Errorf("%s: %s (%s): values[%d] is empty", path, section, e.ID, j)
			}
			if slices.Index(e.Values, name) != j {
				return fmt.Errorf("%s: %s (%s): %s listed twice", path, section, e.ID, name)
			}
		}
	}

	for i, f := range m.Functions {
		section := fmt.Sprintf("functions[%d]", i)
		if err := claim(f.ID, section); err != nil {
			return err
		}
		if f.Body == "" {
			return fmt.Errorf("%s: %s (%s): body is required", path, section, f.ID)
		}
		for j, imp := range f.Imports {
			if imp.From == "" {
				return fmt.Errorf("%s: %s.imports[%d] (%s): from is required", path, section, j, f.ID)
			}
		}
		for name, kind := range f.Parameters {
			if kind == "" {
				return fmt.Errorf("%s: %s (%s): parameter %s has no kind", path, section, f.ID, name)
			}
			if registry.ParamKind(kind) != registry.ParamFunction {
				return fmt.Errorf("%s: %s (%s): parameter %s has unsupported kind %q (want %q)",
					path, section, f.ID, name, kind, registry.ParamFunction)
			}
		}
	}

	return nil
}

// setDefaults fills in default values for omitted fields.
func (m *Manifest) setDefaults() {
	for i := range m.Functions {
		f := &m.Functions[i]
		if f.Name == "" {
			f.Name = f.Body
		}
		for j := range f.Imports {
			if f.Imports[j].Splat == nil {
				splat := true
				f.Imports[j].Splat = &splat
			}
		}
	}
}

// Models converts the declarations into registry models, binding each
// function to its body from bodies.
func (m *Manifest) Models(bodies map[string]registry.Body) ([]registry.Model, error) {
	var models []registry.Model

	for _, c := range m.Constants {
		values := make(map[string]registry.Constant, len(c.Values))
		for name, v := range c.Values {
			values[name] = registry.Constant{Value: *v.Value, Comment: v.Comment}
		}
		models = append(models, &registry.Constants{ID: c.ID, Name: c.Name, Values: values})
	}

	for _, e := range m.Enums {
		models = append(models, &registry.Enum{ID: e.ID, Values: slices.Clone(e.Values)})
	}

	for _, f := range m.Functions {
		body, ok := bodies[f.Body]
		if !ok {
			return nil, fmt.Errorf("function %s: unknown body %q", f.ID, f.Body)
		}
		fn := &registry.Function{
			ID:    f.ID,
			Name:  f.Name,
			Body:  body,
			Notes: slices.Clone(f.Notes),
		}
		for _, imp := range f.Imports {
			fn.Imports = append(fn.Imports, registry.ImportSpec{From: imp.From, Splat: imp.Splat == nil || *imp.Splat})
		}
		if len(f.Parameters) > 0 {
			fn.Parameters = make(map[string]registry.ParamKind, len(f.Parameters))
			for name, kind := range f.Parameters {
				fn.Parameters[name] = registry.ParamKind(kind)
			}
		}
		if f.Source != nil {
			fn.Source = &registry.Provenance{Kind: f.Source.Kind, URI: f.Source.URI}
		}
		models = append(models, fn)
	}

	return models, nil
}

// Register adds the manifest's models to store.
func (m *Manifest) Register(store *registry.Store, bodies map[string]registry.Body) error {
	models, err := m.Models(bodies)
	if err != nil {
		return err
	}
	for _, model := range models {
		if err := store.Register(model); err != nil {
			return err
		}
	}
	return nil
}
