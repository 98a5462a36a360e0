package shell

import (
	"github.com/funvibe/softbind/internal/config"
	"github.com/funvibe/softbind/internal/registry"
)

// SyntaxClasses returns the ash character class table.
func SyntaxClasses() *registry.Constants {
	values := make(map[string]registry.Constant, len(syntaxClasses))
	for _, c := range syntaxClasses {
		values[c.name] = registry.Constant{Value: c.value, Comment: c.comment}
	}
	return &registry.Constants{
		ID:     config.SyntaxClassesID,
		Name:   "ash syntax classes",
		Values: values,
	}
}

// SyntaxTables returns the lexer syntax mode enumeration.
func SyntaxTables() *registry.Enum {
	return &registry.Enum{ID: config.SyntaxTablesID, Values: append([]string(nil), syntaxNames...)}
}

// TokenEnum returns the token enumeration; ordinals match the Token constants.
func TokenEnum() *registry.Enum {
	return &registry.Enum{ID: config.TokenEnumID, Values: append([]string(nil), tokenNames...)}
}

// ReadTokenModel returns the function model wrapping ReadToken.
func ReadTokenModel() *registry.Function {
	return &registry.Function{
		ID:   config.ReadTokenID,
		Name: "xxreadtoken",
		Imports: []registry.ImportSpec{
			{From: config.SyntaxClassesID, Splat: true},
			{From: config.SyntaxTablesID, Splat: true},
			{From: config.TokenEnumID, Splat: true},
		},
		Parameters: map[string]registry.ParamKind{
			"pgetc":      registry.ParamFunction,
			"pungetc":    registry.ParamFunction,
			"readtoken1": registry.ParamFunction,
			"nlprompt":   registry.ParamFunction,
			"nlnoprompt": registry.ParamFunction,
		},
		Body: ReadToken,
		Source: &registry.Provenance{
			Kind: "port.manual",
			URI:  "https://github.com/brgl/busybox/blob/master/shell/ash.c",
		},
		Notes: []string{
			"port: lasttoken side effect omitted",
			"port: PEOA check omitted",
			"port: bash redirect (&>) omitted",
		},
	}
}

// Bodies maps body names, as used by manifests and catalogs, to Go code.
func Bodies() map[string]registry.Body {
	return map[string]registry.Body{
		"xxreadtoken": ReadToken,
	}
}

// Register adds the shell models to store.
func Register(store *registry.Store) error {
	models := []registry.Model{
		SyntaxClasses(),
		SyntaxTables(),
		TokenEnum(),
		ReadTokenModel(),
	}
	for _, m := range models {
		if err := store.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// NewStore returns a store holding the shell models.
func NewStore() (*registry.Store, error) {
	store := registry.NewStore()
	if err := Register(store); err != nil {
		return nil, err
	}
	return store, nil
}
