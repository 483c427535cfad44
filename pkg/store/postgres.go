package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type postgresBackend struct {
	db *sql.DB
}

// NewPostgres stores each collection as one JSONB row in the collections
// table created by cmd/migrate.
func NewPostgres(db *sql.DB) Backend {
	return &postgresBackend{db: db}
}

func (p *postgresBackend) Location() string {
	return "postgres:collections"
}

func (p *postgresBackend) Ensure(ctx context.Context, name string) error {
	if name == "" {
		return ErrInvalidName
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO collections(name, data)
		VALUES ($1, '[]'::jsonb)
		ON CONFLICT (name) DO NOTHING`,
		name,
	)
	if err != nil {
		return fmt.Errorf("insert collection: %w", err)
	}
	return nil
}

func (p *postgresBackend) Read(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := p.db.QueryRowContext(ctx,
		"SELECT data FROM collections WHERE name = $1",
		name,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select collection: %w", err)
	}
	return data, nil
}

func (p *postgresBackend) Write(ctx context.Context, name string, data []byte) error {
	if name == "" {
		return ErrInvalidName
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO collections(name, data, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (name) DO UPDATE
		SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		name, string(data),
	)
	if err != nil {
		return fmt.Errorf("upsert collection: %w", err)
	}
	return nil
}
