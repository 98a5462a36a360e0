// Package catalog persists registry models in a SQLite database so a
// store can be exported and loaded back later.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/funvibe/softbind/internal/registry"
)

// Catalog is a SQLite file holding model definitions.
type Catalog struct {
	db *sql.DB
}

// Open opens (creating if needed) the catalog at path.
func Open(path string) (*Catalog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps transactions and schema setup on the same handle.
	db.SetMaxOpenConns(1)

	c := &Catalog{db: db}
	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return c, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS models (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL DEFAULT '',
		source_kind TEXT,
		source_uri TEXT
	);

	CREATE TABLE IF NOT EXISTS constants (
		model_id TEXT NOT NULL REFERENCES models(id),
		symbol TEXT NOT NULL,
		value INTEGER NOT NULL,
		comment TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (model_id, symbol)
	);

	CREATE TABLE IF NOT EXISTS enum_values (
		model_id TEXT NOT NULL REFERENCES models(id),
		position INTEGER NOT NULL,
		symbol TEXT NOT NULL,
		PRIMARY KEY (model_id, position)
	);

	CREATE TABLE IF NOT EXISTS imports (
		model_id TEXT NOT NULL REFERENCES models(id),
		position INTEGER NOT NULL,
		source TEXT NOT NULL,
		splat INTEGER NOT NULL,
		PRIMARY KEY (model_id, position)
	);

	CREATE TABLE IF NOT EXISTS parameters (
		model_id TEXT NOT NULL REFERENCES models(id),
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		PRIMARY KEY (model_id, name)
	);

	CREATE TABLE IF NOT EXISTS notes (
		model_id TEXT NOT NULL REFERENCES models(id),
		position INTEGER NOT NULL,
		note TEXT NOT NULL,
		PRIMARY KEY (model_id, position)
	);
	`
	_, err := c.db.Exec(schema)
	return err
}

// Save replaces the catalog content with models.
func (c *Catalog) Save(ctx context.Context, models []registry.Model) (err error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, table := range []string{"notes", "parameters", "imports", "enum_values", "constants", "models"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for pos, m := range models {
		if err = saveModel(ctx, tx, pos, m); err != nil {
			return fmt.Errorf("failed to save %s: %w", m.ModelID(), err)
		}
	}

	return tx.Commit()
}

func saveModel(ctx context.Context, tx *sql.Tx, pos int, m registry.Model) error {
	var name, body, sourceKind, sourceURI string
	switch mm := m.(type) {
	case *registry.Constants:
		name = mm.Name
	case *registry.Function:
		name = mm.Name
		body = mm.BodyName()
		if mm.Source != nil {
			sourceKind, sourceURI = mm.Source.Kind, mm.Source.URI
		}
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO models (id, kind, position, name, body, source_kind, source_uri)
		VALUES (?, ?, ?, ?, ?, NULLIF(?, ''), NULLIF(?, ''))
	`, m.ModelID(), m.Kind().String(), pos, name, body, sourceKind, sourceURI)
	if err != nil {
		return err
	}

	switch mm := m.(type) {
	case *registry.Constants:
		for symbol, c := range mm.Values {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO constants (model_id, symbol, value, comment) VALUES (?, ?, ?, ?)`,
				mm.ID, symbol, c.Value, c.Comment); err != nil {
				return err
			}
		}
	case *registry.Enum:
		for i, symbol := range mm.Values {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO enum_values (model_id, position, symbol) VALUES (?, ?, ?)`,
				mm.ID, i, symbol); err != nil {
				return err
			}
		}
	case *registry.Function:
		for i, imp := range mm.Imports {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO imports (model_id, position, source, splat) VALUES (?, ?, ?, ?)`,
				mm.ID, i, imp.From, imp.Splat); err != nil {
				return err
			}
		}
		for param, kind := range mm.Parameters {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO parameters (model_id, name, kind) VALUES (?, ?, ?)`,
				mm.ID, param, string(kind)); err != nil {
				return err
			}
		}
		for i, note := range mm.Notes {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO notes (model_id, position, note) VALUES (?, ?, ?)`,
				mm.ID, i, note); err != nil {
				return err
			}
		}
	}
	return nil
}
