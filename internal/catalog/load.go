package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/funvibe/softbind/internal/registry"
)

type modelRow struct {
	id, kind, name, body string
	sourceKind, sourceURI sql.NullString
}

// Load reads every model, in saved order, binding function models to their
// implementation in bodies.
func (c *Catalog) Load(ctx context.Context, bodies map[string]registry.Body) ([]registry.Model, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, kind, name, body, source_kind, source_uri
		FROM models ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query models: %w", err)
	}
	var headers []modelRow
	for rows.Next() {
		var r modelRow
		if err := rows.Scan(&r.id, &r.kind, &r.name, &r.body, &r.sourceKind, &r.sourceURI); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan model: %w", err)
		}
		headers = append(headers, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	models := make([]registry.Model, 0, len(headers))
	for _, h := range headers {
		m, err := c.loadModel(ctx, h, bodies)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", h.id, err)
		}
		models = append(models, m)
	}
	return models, nil
}

// LoadStore loads the catalog into a fresh store.
func (c *Catalog) LoadStore(ctx context.Context, bodies map[string]registry.Body) (*registry.Store, error) {
	models, err := c.Load(ctx, bodies)
	if err != nil {
		return nil, err
	}
	store := registry.NewStore()
	for _, m := range models {
		if err := store.Register(m); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func (c *Catalog) loadModel(ctx context.Context, h modelRow, bodies map[string]registry.Body) (registry.Model, error) {
	kind, err := registry.ParseKind(h.kind)
	if err != nil {
		return nil, err
	}

	switch kind {
	case registry.KindConstants:
		values := make(map[string]registry.Constant)
		err := c.each(ctx, `SELECT symbol, value, comment FROM constants WHERE model_id = ?`, h.id,
			func(rows *sql.Rows) error {
				var symbol, comment string
				var value int
				if err := rows.Scan(&symbol, &value, &comment); err != nil {
					return err
				}
				values[symbol] = registry.Constant{Value: value, Comment: comment}
				return nil
			})
		if err != nil {
			return nil, err
		}
		return &registry.Constants{ID: h.id, Name: h.name, Values: values}, nil

	case registry.KindEnum:
		var values []string
		err := c.each(ctx, `SELECT symbol FROM enum_values WHERE model_id = ? ORDER BY position`, h.id,
			func(rows *sql.Rows) error {
				var symbol string
				if err := rows.Scan(&symbol); err != nil {
					return err
				}
				values = append(values, symbol)
				return nil
			})
		if err != nil {
			return nil, err
		}
		return &registry.Enum{ID: h.id, Values: values}, nil

	case registry.KindFunction:
		body, ok := bodies[h.body]
		if !ok {
			return nil, fmt.Errorf("unknown body %q", h.body)
		}
		fn := &registry.Function{ID: h.id, Name: h.name, Body: body}
		if h.sourceKind.Valid || h.sourceURI.Valid {
			fn.Source = &registry.Provenance{Kind: h.sourceKind.String, URI: h.sourceURI.String}
		}

		err := c.each(ctx, `SELECT source, splat FROM imports WHERE model_id = ? ORDER BY position`, h.id,
			func(rows *sql.Rows) error {
				var source string
				var splat int64
				if err := rows.Scan(&source, &splat); err != nil {
					return err
				}
				fn.Imports = append(fn.Imports, registry.ImportSpec{From: source, Splat: splat != 0})
				return nil
			})
		if err != nil {
			return nil, err
		}

		err = c.each(ctx, `SELECT name, kind FROM parameters WHERE model_id = ?`, h.id,
			func(rows *sql.Rows) error {
				var name, kind string
				if err := rows.Scan(&name, &kind); err != nil {
					return err
				}
				if fn.Parameters == nil {
					fn.Parameters = make(map[string]registry.ParamKind)
				}
				fn.Parameters[name] = registry.ParamKind(kind)
				return nil
			})
		if err != nil {
			return nil, err
		}

		err = c.each(ctx, `SELECT note FROM notes WHERE model_id = ? ORDER BY position`, h.id,
			func(rows *sql.Rows) error {
				var note string
				if err := rows.Scan(&note); err != nil {
					return err
				}
				fn.Notes = append(fn.Notes, note)
				return nil
			})
		if err != nil {
			return nil, err
		}
		return fn, nil
	}
	return nil, fmt.Errorf("unhandled kind %s", kind)
}

func (c *Catalog) each(ctx context.Context, query, id string, scan func(*sql.Rows) error) error {
	rows, err := c.db.QueryContext(ctx, query, id)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
